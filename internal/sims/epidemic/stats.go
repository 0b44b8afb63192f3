package epidemic

// History records the aggregate counts after every step, starting with the
// seeded configuration at step 0, and the cells that changed in the latest
// step. Its exported methods only ever hand out copies.
type History struct {
	population int
	series     []Counts
	changed    []int
}

func (h *History) reset(population int, initial Counts, changed []int) {
	h.population = population
	h.series = append(h.series[:0], initial)
	h.changed = append(h.changed[:0], changed...)
}

func (h *History) record(c Counts, changed []int) {
	h.series = append(h.series, c)
	h.changed = append(h.changed[:0], changed...)
}

// Len returns the number of recorded steps, including step 0.
func (h *History) Len() int { return len(h.series) }

// At returns the counts recorded for step.
func (h *History) At(step int) (Counts, bool) {
	if step < 0 || step >= len(h.series) {
		return Counts{}, false
	}
	return h.series[step], true
}

// Last returns the most recent counts.
func (h *History) Last() Counts {
	if len(h.series) == 0 {
		return Counts{}
	}
	return h.series[len(h.series)-1]
}

// Series returns a copy of the full time series indexed by step.
func (h *History) Series() []Counts {
	return append([]Counts(nil), h.series...)
}

// StateSeries returns the count of state s at every step.
func (h *History) StateSeries(s HealthState) []int {
	out := make([]int, len(h.series))
	for i, c := range h.series {
		out[i] = c.Get(s)
	}
	return out
}

// Percentages returns the share of state s in the population at every
// step, in percent.
func (h *History) Percentages(s HealthState) []float64 {
	out := make([]float64, len(h.series))
	for i, c := range h.series {
		out[i] = c.Percent(s, h.population)
	}
	return out
}

// Peak returns the highest count state s reached and the first step at
// which it did.
func (h *History) Peak(s HealthState) (count, step int) {
	for i, c := range h.series {
		if v := c.Get(s); v > count {
			count, step = v, i
		}
	}
	return count, step
}

// Changed returns the cells whose state changed in the most recent step.
// After a reset it lists the seeded cells.
func (h *History) Changed() []int {
	return append([]int(nil), h.changed...)
}

// Population returns the number of individuals the series describes.
func (h *History) Population() int { return h.population }
