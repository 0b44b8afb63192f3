package epidemic

import (
	"epigrid/internal/core"
	pcore "epigrid/pkg/core"
)

type offset struct{ dx, dy int }

// Sampler picks the contacts of an individual: up to meetings distinct cells
// within Manhattan distance radius, excluding the individual itself.
type Sampler struct {
	grid     core.Grid
	radius   int
	meetings int

	// ring-ordered offsets of the full diamond, computed once per radius
	offsets []offset
	pool    []int
	out     []int
}

// NewSampler prepares a sampler for grid. radius and meetings must be >= 1.
func NewSampler(grid core.Grid, radius, meetings int) *Sampler {
	s := &Sampler{grid: grid, meetings: meetings}
	s.setRadius(radius)
	return s
}

// Radius returns the travel radius.
func (s *Sampler) Radius() int { return s.radius }

// Meetings returns the maximum number of contacts per call.
func (s *Sampler) Meetings() int { return s.meetings }

func (s *Sampler) setRadius(radius int) {
	s.radius = radius
	s.offsets = s.offsets[:0]
	for d := 1; d <= radius; d++ {
		for i := -d; i <= d; i++ {
			c := d - absInt(i)
			s.offsets = append(s.offsets, offset{i, c})
			if c != 0 {
				s.offsets = append(s.offsets, offset{i, -c})
			}
		}
	}
}

// Candidates lists every in-grid cell within the radius of idx, ring by ring
// from distance 1 outwards. The slice is reused by the next call.
func (s *Sampler) Candidates(idx int) []int {
	x, y := s.grid.Coord(idx)
	s.pool = s.pool[:0]
	for _, o := range s.offsets {
		nx, ny := x+o.dx, y+o.dy
		if s.grid.InGrid(nx, ny) {
			s.pool = append(s.pool, s.grid.Index(nx, ny))
		}
	}
	return s.pool
}

// Sample returns the contacts of idx. When no more than meetings candidates
// exist they are all returned; otherwise exactly meetings are drawn from src
// without replacement. The slice is reused by the next call.
func (s *Sampler) Sample(src pcore.Source, idx int) []int {
	pool := s.Candidates(idx)
	if len(pool) <= s.meetings {
		return pool
	}
	s.out = s.out[:0]
	for i := 0; i < s.meetings; i++ {
		j := src.IntN(len(pool))
		s.out = append(s.out, pool[j])
		last := len(pool) - 1
		pool[j] = pool[last]
		pool = pool[:last]
	}
	return s.out
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
