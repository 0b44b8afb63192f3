package epidemic

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// OutbreakResult summarises a finished run.
type OutbreakResult struct {
	// Steps is the number of steps executed.
	Steps int
	// PeakInfectious is the largest infectious count seen, first reached at PeakStep.
	PeakInfectious int
	PeakStep       int
	// Final holds the counts when the run stopped.
	Final Counts
	// AttackRate is the share of the population no longer susceptible at the end.
	AttackRate float64
	// Extinct is true when the run ended because nobody was infectious.
	Extinct bool
}

// Summarize builds an OutbreakResult from a model's history.
func Summarize(m *Model) OutbreakResult {
	h := m.History()
	peak, peakStep := h.Peak(Infectious)
	final := h.Last()
	n := h.Population()
	res := OutbreakResult{
		Steps:          m.StepCount(),
		PeakInfectious: peak,
		PeakStep:       peakStep,
		Final:          final,
		Extinct:        final.Infectious == 0,
	}
	if n > 0 {
		res.AttackRate = float64(n-final.Susceptible) / float64(n)
	}
	return res
}

// RunOutbreak builds a model from cfg and steps it until it finishes.
func RunOutbreak(cfg Config, opts ...Option) (OutbreakResult, error) {
	m, err := NewWithConfig(cfg, opts...)
	if err != nil {
		return OutbreakResult{}, err
	}
	for !m.IsFinished() {
		m.Advance()
	}
	return Summarize(m), nil
}

// SweepGrid lists the values explored by Sweep. Empty axes keep the base
// configuration's value.
type SweepGrid struct {
	InfectionRates []float64
	TravelRadii    []int
	Meetings       []int
	Seeds          []int64
}

// SweepRecord aggregates the runs of one parameter set over all seeds.
type SweepRecord struct {
	Config Config
	Runs   int

	MeanAttackRate float64
	MeanPeak       float64
	MeanSteps      float64
	MeanDead       float64
	ExtinctRuns    int
}

func (r SweepRecord) String() string {
	return fmt.Sprintf("i_rate=%.3f radius=%d meetings=%d attack=%.3f peak=%.1f steps=%.1f dead=%.1f extinct=%d/%d",
		r.Config.Rates.Infection, r.Config.TravelRadius, r.Config.Meetings,
		r.MeanAttackRate, r.MeanPeak, r.MeanSteps, r.MeanDead, r.ExtinctRuns, r.Runs)
}

// Configs expands the grid over base into one configuration per parameter
// set, in axis order.
func (g SweepGrid) Configs(base Config) []Config {
	rates := g.InfectionRates
	if len(rates) == 0 {
		rates = []float64{base.Rates.Infection}
	}
	radii := g.TravelRadii
	if len(radii) == 0 {
		radii = []int{base.TravelRadius}
	}
	meetings := g.Meetings
	if len(meetings) == 0 {
		meetings = []int{base.Meetings}
	}
	var out []Config
	for _, rate := range rates {
		for _, radius := range radii {
			for _, meet := range meetings {
				cfg := base
				cfg.Rates.Infection = rate
				cfg.TravelRadius = radius
				cfg.Meetings = meet
				out = append(out, cfg)
			}
		}
	}
	return out
}

// Sweep runs every parameter set of g over every seed using up to workers
// goroutines, one model per run. Records come back sorted by mean attack
// rate, highest first. Invalid parameter sets are reported together.
func Sweep(base Config, g SweepGrid, workers int) ([]SweepRecord, error) {
	if workers <= 0 {
		workers = 1
	}
	seeds := g.Seeds
	if len(seeds) == 0 {
		seeds = []int64{base.Seed}
	}
	configs := g.Configs(base)

	var errs []error
	for _, cfg := range configs {
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	results := make([][]OutbreakResult, len(configs))
	for i := range results {
		results[i] = make([]OutbreakResult, len(seeds))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	sem := make(chan struct{}, workers)

	for ci, cfg := range configs {
		for si, seed := range seeds {
			wg.Add(1)
			sem <- struct{}{}
			go func(ci, si int, cfg Config) {
				defer wg.Done()
				defer func() { <-sem }()
				res, err := RunOutbreak(cfg)
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return
				}
				results[ci][si] = res
			}(ci, si, withSeed(cfg, seed))
		}
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	records := make([]SweepRecord, len(configs))
	for ci, cfg := range configs {
		records[ci] = aggregate(cfg, results[ci])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MeanAttackRate > records[j].MeanAttackRate
	})
	return records, nil
}

func withSeed(cfg Config, seed int64) Config {
	cfg.Seed = seed
	return cfg
}

func aggregate(cfg Config, runs []OutbreakResult) SweepRecord {
	rec := SweepRecord{Config: cfg, Runs: len(runs)}
	if len(runs) == 0 {
		return rec
	}
	for _, r := range runs {
		rec.MeanAttackRate += r.AttackRate
		rec.MeanPeak += float64(r.PeakInfectious)
		rec.MeanSteps += float64(r.Steps)
		rec.MeanDead += float64(r.Final.Dead)
		if r.Extinct {
			rec.ExtinctRuns++
		}
	}
	n := float64(len(runs))
	rec.MeanAttackRate /= n
	rec.MeanPeak /= n
	rec.MeanSteps /= n
	rec.MeanDead /= n
	return rec
}
