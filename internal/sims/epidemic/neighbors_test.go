package epidemic

import (
	"slices"
	"testing"

	"epigrid/internal/core"
	pcore "epigrid/pkg/core"
)

func manhattan(g core.Grid, a, b int) int {
	ax, ay := g.Coord(a)
	bx, by := g.Coord(b)
	return absInt(ax-bx) + absInt(ay-by)
}

func TestVonNeumannNeighborsOfInteriorCell(t *testing.T) {
	g := core.NewGrid(5, 5)
	s := NewSampler(g, 1, 4)
	center := g.Index(2, 2)

	got := slices.Clone(s.Candidates(center))
	want := []int{g.Index(1, 2), g.Index(2, 3), g.Index(2, 1), g.Index(3, 2)}
	if !slices.Equal(got, want) {
		t.Fatalf("candidates %v, want %v", got, want)
	}

	sample := slices.Clone(s.Sample(pcore.NewRNG(1), center))
	slices.Sort(sample)
	slices.Sort(want)
	if !slices.Equal(sample, want) {
		t.Fatalf("sample %v, want all of %v", sample, want)
	}
}

func TestCandidatesFillTheDiamond(t *testing.T) {
	g := core.NewGrid(21, 21)
	for radius := 1; radius <= 5; radius++ {
		s := NewSampler(g, radius, 1)
		got := s.Candidates(g.Index(10, 10))
		if want := 2 * radius * (radius + 1); len(got) != want {
			t.Fatalf("radius %d: %d candidates, want %d", radius, len(got), want)
		}
	}
}

func TestCandidatesAtCornerStayInGrid(t *testing.T) {
	g := core.NewGrid(5, 5)
	s := NewSampler(g, 2, 10)
	got := slices.Clone(s.Candidates(0))
	slices.Sort(got)
	want := []int{g.Index(1, 0), g.Index(2, 0), g.Index(0, 1), g.Index(1, 1), g.Index(0, 2)}
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Fatalf("corner candidates %v, want %v", got, want)
	}
}

func TestCandidatesAreDistinctAndRingOrdered(t *testing.T) {
	g := core.NewGrid(7, 6)
	s := NewSampler(g, 4, 1)
	for idx := 0; idx < g.Len(); idx++ {
		seen := map[int]bool{}
		prev := 0
		for _, c := range s.Candidates(idx) {
			if seen[c] {
				t.Fatalf("cell %d: duplicate candidate %d", idx, c)
			}
			seen[c] = true
			d := manhattan(g, idx, c)
			if d < 1 || d > 4 {
				t.Fatalf("cell %d: candidate %d at distance %d", idx, c, d)
			}
			if d < prev {
				t.Fatalf("cell %d: ring order broken at candidate %d", idx, c)
			}
			prev = d
		}
	}
}

func TestSampleIsDistinctInGridAndBounded(t *testing.T) {
	g := core.NewGrid(12, 9)
	for _, meetings := range []int{1, 3, 8, 50} {
		s := NewSampler(g, 3, meetings)
		rng := pcore.NewRNG(int64(meetings))
		for idx := 0; idx < g.Len(); idx++ {
			total := len(s.Candidates(idx))
			sample := s.Sample(rng, idx)
			if want := min(total, meetings); len(sample) != want {
				t.Fatalf("meetings %d cell %d: %d contacts, want %d", meetings, idx, len(sample), want)
			}
			seen := map[int]bool{}
			for _, c := range sample {
				if !g.Contains(c) {
					t.Fatalf("contact %d outside grid", c)
				}
				if c == idx {
					t.Fatalf("cell %d met itself", idx)
				}
				if seen[c] {
					t.Fatalf("cell %d met %d twice", idx, c)
				}
				seen[c] = true
			}
		}
	}
}

func TestSampleDeterministicForSeed(t *testing.T) {
	g := core.NewGrid(30, 30)
	a := NewSampler(g, 5, 6)
	b := NewSampler(g, 5, 6)
	ra := pcore.NewRNG(42)
	rb := pcore.NewRNG(42)
	for i := 0; i < 50; i++ {
		idx := (i * 37) % g.Len()
		if !slices.Equal(a.Sample(ra, idx), b.Sample(rb, idx)) {
			t.Fatalf("draw %d diverged for equal seeds", i)
		}
	}
}
