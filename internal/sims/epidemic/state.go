package epidemic

import (
	"fmt"

	pcore "epigrid/pkg/core"
)

// HealthState is the condition of a single individual.
type HealthState uint8

const (
	Susceptible HealthState = iota
	Infectious
	Recovered
	Dead
	Vaccinated

	numStates
)

// States lists every health state in display order.
var States = [numStates]HealthState{Susceptible, Infectious, Recovered, Dead, Vaccinated}

func (s HealthState) String() string {
	switch s {
	case Susceptible:
		return "susceptible"
	case Infectious:
		return "infectious"
	case Recovered:
		return "recovered"
	case Dead:
		return "dead"
	case Vaccinated:
		return "vaccinated"
	default:
		return fmt.Sprintf("HealthState(%d)", uint8(s))
	}
}

// Valid reports whether s is one of the five known states.
func (s HealthState) Valid() bool { return s < numStates }

// Recover moves an infectious individual to Recovered with probability rate.
// Other states are returned unchanged without consuming a draw.
func (s HealthState) Recover(src pcore.Source, rate float64) HealthState {
	if s == Infectious && pcore.Chance(src, rate) {
		return Recovered
	}
	return s
}

// Die moves an infectious individual to Dead with probability rate.
func (s HealthState) Die(src pcore.Source, rate float64) HealthState {
	if s == Infectious && pcore.Chance(src, rate) {
		return Dead
	}
	return s
}

// Vaccinate moves anyone still alive to Vaccinated with probability rate,
// including an individual that recovered earlier in the same step.
func (s HealthState) Vaccinate(src pcore.Source, rate float64) HealthState {
	if s != Dead && pcore.Chance(src, rate) {
		return Vaccinated
	}
	return s
}

// Infect moves a susceptible, recovered or vaccinated individual to
// Infectious with probability rate. The caller picks the rate that matches s.
func (s HealthState) Infect(src pcore.Source, rate float64) HealthState {
	switch s {
	case Susceptible, Recovered, Vaccinated:
		if pcore.Chance(src, rate) {
			return Infectious
		}
	}
	return s
}

// Counts holds the number of individuals in each health state.
type Counts struct {
	Susceptible int
	Infectious  int
	Recovered   int
	Dead        int
	Vaccinated  int
}

// Get returns the count for state s.
func (c Counts) Get(s HealthState) int {
	switch s {
	case Susceptible:
		return c.Susceptible
	case Infectious:
		return c.Infectious
	case Recovered:
		return c.Recovered
	case Dead:
		return c.Dead
	case Vaccinated:
		return c.Vaccinated
	}
	return 0
}

func (c *Counts) ptr(s HealthState) *int {
	switch s {
	case Susceptible:
		return &c.Susceptible
	case Infectious:
		return &c.Infectious
	case Recovered:
		return &c.Recovered
	case Dead:
		return &c.Dead
	case Vaccinated:
		return &c.Vaccinated
	}
	return nil
}

// move shifts one individual from one state's count to another's.
func (c *Counts) move(from, to HealthState) {
	if from == to {
		return
	}
	*c.ptr(from)--
	*c.ptr(to)++
}

// Total returns the sum over all states.
func (c Counts) Total() int {
	return c.Susceptible + c.Infectious + c.Recovered + c.Dead + c.Vaccinated
}

// Percent returns the share of state s in a population of n, in percent.
func (c Counts) Percent(s HealthState, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(c.Get(s)) / float64(n) * 100
}

// clampNegative zeroes any negative count and returns the states it touched.
func (c *Counts) clampNegative() []HealthState {
	var touched []HealthState
	for _, s := range States {
		if p := c.ptr(s); *p < 0 {
			*p = 0
			touched = append(touched, s)
		}
	}
	return touched
}

func (c Counts) String() string {
	return fmt.Sprintf("S=%d I=%d R=%d D=%d V=%d", c.Susceptible, c.Infectious, c.Recovered, c.Dead, c.Vaccinated)
}
