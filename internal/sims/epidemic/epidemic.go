package epidemic

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"epigrid/internal/core"
	pcore "epigrid/pkg/core"
)

// StepResult is what a single step hands to renderers and charts. Both
// fields are copies owned by the caller.
type StepResult struct {
	Step    int
	Changed []int
	Counts  Counts
}

// Model is the spatial epidemic: a W*H grid with one individual per cell.
type Model struct {
	cfg  Config
	grid core.Grid

	states     []HealthState
	display    []uint8
	infectious *IndexSet
	pending    *IndexSet
	cohort     []int

	changed     []int
	changedMark []uint32
	stamp       uint32

	counts  Counts
	history History
	step    int
	clamps  int

	sampler *Sampler
	src     pcore.Source
	seed    int64

	log *slog.Logger
}

// Option customises a Model at construction.
type Option func(*Model)

// WithSource injects the random source. Sources that implement pcore.Seeder
// are rewound on every Reset; others keep their own sequence.
func WithSource(src pcore.Source) Option {
	return func(m *Model) { m.src = src }
}

// WithLogger routes model diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.log = l }
}

// New returns a model on a w*h grid using the default rates.
func New(w, h int, opts ...Option) (*Model, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	if limit := MaxTravelRadius(w, h); cfg.TravelRadius > limit && limit >= 1 {
		cfg.TravelRadius = limit
	}
	return NewWithConfig(cfg, opts...)
}

// NewWithConfig validates cfg and returns a seeded model.
func NewWithConfig(cfg Config, opts ...Option) (*Model, error) {
	m := &Model{}
	for _, opt := range opts {
		opt(m)
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	if err := m.Setup(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// Setup replaces the configuration, reallocates the population and seeds it
// with cfg.Seed. On error the model is left untouched.
func (m *Model) Setup(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	total := cfg.Population()
	m.cfg = cfg
	m.grid = core.NewGrid(cfg.Width, cfg.Height)
	m.states = make([]HealthState, total)
	m.display = make([]uint8, total)
	m.infectious = NewIndexSet(total)
	m.pending = NewIndexSet(total)
	m.changedMark = make([]uint32, total)
	m.cohort = make([]int, 0, total)
	m.sampler = NewSampler(m.grid, cfg.TravelRadius, cfg.Meetings)
	if m.src == nil {
		m.src = pcore.NewRNG(cfg.Seed)
	}
	m.Reset(0)
	return nil
}

// Name returns the simulation identifier.
func (m *Model) Name() string { return "epidemic" }

// Size reports the grid dimensions.
func (m *Model) Size() core.Size { return m.grid.Size() }

// Grid returns the topology of the model.
func (m *Model) Grid() core.Grid { return m.grid }

// Config returns the active configuration.
func (m *Model) Config() Config { return m.cfg }

// StepInterval is the pacing requested for drivers of this model.
func (m *Model) StepInterval() time.Duration { return m.cfg.StepInterval }

// MaxSteps returns the step limit of a run.
func (m *Model) MaxSteps() int { return m.cfg.MaxSteps }

// Seed returns the seed used by the latest Reset.
func (m *Model) Seed() int64 { return m.seed }

// Reset discards the population and its history and seeds a new outbreak.
// A zero seed falls back to the configured one.
func (m *Model) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = m.cfg.Seed
	}
	m.seed = effective
	if s, ok := m.src.(pcore.Seeder); ok {
		s.Seed(effective)
	}

	for i := range m.states {
		m.states[i] = Susceptible
	}
	m.infectious.Clear()
	m.pending.Clear()
	m.step = 0
	m.clamps = 0
	m.changed = m.changed[:0]
	m.stamp = 0
	for i := range m.changedMark {
		m.changedMark[i] = 0
	}

	seeded := m.seedInfections()
	for _, idx := range seeded {
		m.states[idx] = Infectious
		m.infectious.Add(idx)
	}
	m.counts = Counts{
		Susceptible: len(m.states) - len(seeded),
		Infectious:  len(seeded),
	}
	m.history.reset(len(m.states), m.counts, seeded)
	m.verify()

	m.log.Debug("epidemic reset",
		"seed", effective,
		"width", m.grid.W,
		"height", m.grid.H,
		"infected", len(seeded),
		"cluster", m.cfg.ClusterMode,
		"variant", m.cfg.Variant.String(),
	)
}

// seedInfections picks StartInfected distinct cells, either uniformly over
// the grid or from a square window around the centre in cluster mode.
func (m *Model) seedInfections() []int {
	k := m.cfg.StartInfected()
	if !m.cfg.ClusterMode {
		pool := make([]int, len(m.states))
		for i := range pool {
			pool[i] = i
		}
		return m.pick(pool, k)
	}

	cx, cy := m.grid.Center()
	half := int(math.Sqrt(float64(k)))
	for {
		pool := m.clusterWindow(cx, cy, half)
		if len(pool) >= k {
			return m.pick(pool, k)
		}
		half++
	}
}

// clusterWindow lists the distinct in-grid cells of the window spanning
// [c-half, c+half) on both axes, or just the centre when half is zero.
func (m *Model) clusterWindow(cx, cy, half int) []int {
	lo, hi := -half, half-1
	if half == 0 {
		hi = 0
	}
	x0, y0 := m.grid.Clamp(cx+lo, cy+lo)
	x1, y1 := m.grid.Clamp(cx+hi, cy+hi)
	pool := make([]int, 0, (x1-x0+1)*(y1-y0+1))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			pool = append(pool, m.grid.Index(x, y))
		}
	}
	return pool
}

// pick draws k distinct members of pool with a partial Fisher-Yates shuffle.
func (m *Model) pick(pool []int, k int) []int {
	for i := 0; i < k; i++ {
		j := i + m.src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return append([]int(nil), pool[:k]...)
}

// Step advances the outbreak by one step. It satisfies core.Sim; use
// Advance to receive the step's deltas.
func (m *Model) Step() { m.Advance() }

// Advance runs one step and returns the cells that changed and the counts
// afterwards. With nobody infectious it changes nothing and records nothing.
func (m *Model) Advance() StepResult {
	if m.infectious.Len() == 0 {
		return StepResult{Step: m.step, Counts: m.counts}
	}

	m.changed = m.changed[:0]
	m.stamp++
	m.pending.Clear()
	m.cohort = m.infectious.AppendTo(m.cohort[:0])

	rates := m.cfg.Rates
	for _, idx := range m.cohort {
		s := m.states[idx]
		s = s.Recover(m.src, rates.Recovery)
		s = s.Die(m.src, rates.Death)
		s = s.Vaccinate(m.src, rates.Vaccination)
		if s != Infectious {
			m.states[idx] = s
			m.counts.move(Infectious, s)
			m.infectious.Remove(idx)
			m.markChanged(idx)
			continue
		}
		m.spread(idx)
	}

	for _, idx := range m.pending.items {
		if !m.grid.Contains(idx) {
			m.fail(fmt.Sprintf("new infection at index %d outside [0, %d)", idx, m.grid.Len()))
		}
		m.infectious.Add(idx)
	}

	m.step++
	m.reconcile()
	m.history.record(m.counts, m.changed)

	return StepResult{
		Step:    m.step,
		Changed: append([]int(nil), m.changed...),
		Counts:  m.counts,
	}
}

// spread lets the infectious individual at idx meet its sampled contacts.
func (m *Model) spread(idx int) {
	for _, n := range m.sampler.Sample(m.src, idx) {
		prev := m.states[n]
		rate, ok := m.cfg.contactRate(prev)
		if !ok {
			continue
		}
		if prev.Infect(m.src, rate) != Infectious {
			continue
		}
		m.states[n] = Infectious
		m.counts.move(prev, Infectious)
		m.markChanged(n)
		m.pending.Add(n)
	}
}

func (m *Model) markChanged(idx int) {
	if m.changedMark[idx] == m.stamp {
		return
	}
	m.changedMark[idx] = m.stamp
	m.changed = append(m.changed, idx)
}

// reconcile derives the susceptible count from the others, repairs negative
// counts and then checks the books.
func (m *Model) reconcile() {
	c := m.counts
	derived := len(m.states) - c.Infectious - c.Recovered - c.Dead - c.Vaccinated
	if derived != c.Susceptible {
		m.fail(fmt.Sprintf("susceptible count %d disagrees with derived %d", c.Susceptible, derived))
	}
	m.counts.Susceptible = derived
	if touched := m.counts.clampNegative(); len(touched) > 0 {
		m.clamps++
		m.log.Warn("epidemic counts clamped",
			"step", m.step,
			"states", fmt.Sprint(touched),
			"counts", c.String(),
		)
	}
	m.verify()
}

// verify panics unless the counts are non-negative, sum to the population
// and match the infectious set.
func (m *Model) verify() {
	c := m.counts
	if c.Total() != len(m.states) {
		m.fail(fmt.Sprintf("counts %s sum to %d, want %d", c, c.Total(), len(m.states)))
	}
	for _, s := range States {
		if c.Get(s) < 0 {
			m.fail(fmt.Sprintf("negative %s count %d", s, c.Get(s)))
		}
	}
	if c.Infectious != m.infectious.Len() {
		m.fail(fmt.Sprintf("infectious count %d but %d cells tracked", c.Infectious, m.infectious.Len()))
	}
}

func (m *Model) fail(reason string) {
	err := &InvariantViolation{Step: m.step, Reason: reason}
	m.log.Error("epidemic invariant violated", "step", m.step, "reason", reason)
	panic(err)
}

// IsFinished reports whether nobody is infectious or MaxSteps has elapsed.
func (m *Model) IsFinished() bool {
	return m.infectious.Len() == 0 || m.step >= m.cfg.MaxSteps
}

// StepCount returns the number of steps taken since the last reset.
func (m *Model) StepCount() int { return m.step }

// Counts returns the current aggregate counts.
func (m *Model) Counts() Counts { return m.counts }

// History exposes the recorded time series.
func (m *Model) History() *History { return &m.history }

// Changed returns the cells changed by the latest step.
func (m *Model) Changed() []int { return m.history.Changed() }

// ClampEvents counts the steps whose counts needed repairing. It stays zero
// unless the bookkeeping is broken.
func (m *Model) ClampEvents() int { return m.clamps }

// State returns the health state of the individual at idx.
func (m *Model) State(idx int) HealthState { return m.states[idx] }

// States returns a copy of the population.
func (m *Model) States() []HealthState {
	return append([]HealthState(nil), m.states...)
}

// Infectious returns the indices of the infectious individuals.
func (m *Model) Infectious() []int { return m.infectious.Items() }

// Cells returns the population as palette indices. The buffer is rewritten
// on every call and is not read back by the model.
func (m *Model) Cells() []uint8 {
	for i, s := range m.states {
		m.display[i] = uint8(s)
	}
	return m.display
}

func init() {
	core.Register("epidemic", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewWithConfig(c)
	})
}
