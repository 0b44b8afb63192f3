package epidemic

import (
	"testing"
)

// scriptedSource replays fixed draws so individual trials can be forced.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.5
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0] % n
	s.ints = s.ints[1:]
	return v
}

func quietConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	cfg.TravelRadius = 1
	cfg.Meetings = 4
	cfg.PercentStartInfected = 0.01
	cfg.Rates = Rates{}
	cfg.MaxSteps = 100
	return cfg
}

func mustModel(t *testing.T, cfg Config, opts ...Option) *Model {
	t.Helper()
	m, err := NewWithConfig(cfg, opts...)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	return m
}

// setStates overwrites the population and rebuilds the derived bookkeeping
// as if states had been seeded at step 0.
func setStates(t *testing.T, m *Model, states []HealthState) {
	t.Helper()
	if len(states) != len(m.states) {
		t.Fatalf("setStates: got %d states for a population of %d", len(states), len(m.states))
	}
	copy(m.states, states)
	m.infectious.Clear()
	var c Counts
	var infected []int
	for i, s := range states {
		*c.ptr(s)++
		if s == Infectious {
			m.infectious.Add(i)
			infected = append(infected, i)
		}
	}
	m.counts = c
	m.step = 0
	m.history.reset(len(states), c, infected)
}

func recount(states []HealthState) Counts {
	var c Counts
	for _, s := range states {
		*c.ptr(s)++
	}
	return c
}
