package core

import "math/rand/v2"

// Source is the randomness a simulation draws from. *rand.Rand from
// math/rand/v2 satisfies it, as does RNG.
type Source interface {
	Float64() float64
	IntN(n int) int
}

// Seeder is implemented by sources that can be rewound to a seed.
type Seeder interface {
	Seed(seed int64)
}

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	pcg *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	pcg := rand.NewPCG(uint64(seed), 0)
	return &RNG{pcg: pcg, r: rand.New(pcg)}
}

// Seed rewinds the generator to the sequence for seed.
func (r *RNG) Seed(seed int64) {
	r.pcg.Seed(uint64(seed), 0)
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n). It panics if n <= 0.
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Chance draws once and reports whether the draw fell below p. p <= 0 never
// succeeds and p >= 1 always does, but the draw is consumed either way.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }
