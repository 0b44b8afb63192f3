package core

import "testing"

func TestSeedRewinds(t *testing.T) {
	r := NewRNG(42)
	first := []float64{r.Float64(), r.Float64(), r.Float64()}
	r.Seed(42)
	for i, want := range first {
		if got := r.Float64(); got != want {
			t.Fatalf("draw %d after reseed = %v, want %v", i, got, want)
		}
	}
}

func TestChanceBounds(t *testing.T) {
	r := NewRNG(7)
	for i := 0; i < 1000; i++ {
		if Chance(r, 0) {
			t.Fatal("p=0 succeeded")
		}
		if !Chance(r, 1) {
			t.Fatal("p=1 failed")
		}
	}
}

func TestIntNRange(t *testing.T) {
	r := NewRNG(3)
	for i := 0; i < 500; i++ {
		if v := r.IntN(5); v < 0 || v >= 5 {
			t.Fatalf("IntN(5) = %d", v)
		}
	}
}
