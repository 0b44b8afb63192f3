package epidemic

import "testing"

func TestTransitionsRequireMatchingState(t *testing.T) {
	src := &scriptedSource{}
	for _, s := range States {
		if got := s.Recover(src, 1); s != Infectious && got != s {
			t.Fatalf("Recover moved %s to %s", s, got)
		}
		if got := s.Die(src, 1); s != Infectious && got != s {
			t.Fatalf("Die moved %s to %s", s, got)
		}
	}
	if got := Infectious.Recover(src, 1); got != Recovered {
		t.Fatalf("Recover(1) = %s, want recovered", got)
	}
	if got := Infectious.Die(src, 1); got != Dead {
		t.Fatalf("Die(1) = %s, want dead", got)
	}
	if got := Infectious.Infect(src, 1); got != Infectious {
		t.Fatalf("Infect on infectious = %s", got)
	}
}

func TestDeadIsAbsorbingForEveryTransition(t *testing.T) {
	src := &scriptedSource{}
	s := Dead
	s = s.Recover(src, 1)
	s = s.Die(src, 1)
	s = s.Vaccinate(src, 1)
	s = s.Infect(src, 1)
	if s != Dead {
		t.Fatalf("dead individual became %s", s)
	}
}

func TestZeroRateNeverFires(t *testing.T) {
	src := &scriptedSource{floats: []float64{0, 0, 0, 0}}
	if Infectious.Recover(src, 0) != Infectious {
		t.Fatal("recover fired with rate 0")
	}
	if Infectious.Die(src, 0) != Infectious {
		t.Fatal("die fired with rate 0")
	}
	if Susceptible.Vaccinate(src, 0) != Susceptible {
		t.Fatal("vaccinate fired with rate 0")
	}
	if Susceptible.Infect(src, 0) != Susceptible {
		t.Fatal("infect fired with rate 0")
	}
}

func TestOrderedTransitionsSkipDeathAfterRecovery(t *testing.T) {
	// First draw recovers; die must not consume or act on the second.
	src := &scriptedSource{floats: []float64{0.1, 0.1, 0.9}}
	s := Infectious.Recover(src, 0.5)
	s = s.Die(src, 0.5)
	if s != Recovered {
		t.Fatalf("got %s, want recovered", s)
	}
	if len(src.floats) != 2 {
		t.Fatalf("die consumed a draw for a recovered individual")
	}
	s = s.Vaccinate(src, 0.5)
	if s != Vaccinated {
		t.Fatalf("vaccination should overwrite a same-step recovery, got %s", s)
	}
}

func TestCountsMoveKeepsTotal(t *testing.T) {
	c := Counts{Susceptible: 3, Infectious: 2}
	c.move(Infectious, Recovered)
	c.move(Susceptible, Infectious)
	c.move(Dead, Dead)
	want := Counts{Susceptible: 2, Infectious: 2, Recovered: 1}
	if c != want {
		t.Fatalf("got %v, want %v", c, want)
	}
	if c.Total() != 5 {
		t.Fatalf("total %d, want 5", c.Total())
	}
	if got := c.Percent(Susceptible, 5); got != 40 {
		t.Fatalf("percent %f, want 40", got)
	}
}
