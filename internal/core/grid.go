package core

// Grid maps between linear cell indices and (x, y) coordinates of a W*H
// lattice stored in row-major order. Index and Coord trust the caller; use
// InGrid before relying on a derived coordinate.
type Grid struct {
	W, H int
}

// NewGrid returns the topology for a w*h lattice.
func NewGrid(w, h int) Grid {
	return Grid{W: w, H: h}
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.W * g.H }

// Size returns the grid dimensions.
func (g Grid) Size() Size { return Size{W: g.W, H: g.H} }

// Index returns the linear slice index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.W + x }

// Coord returns the coordinates of a linear index.
func (g Grid) Coord(idx int) (int, int) {
	x := idx % g.W
	return x, (idx - x) / g.W
}

// InGrid reports whether (x, y) lies inside the lattice.
func (g Grid) InGrid(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Contains reports whether idx is a valid linear index.
func (g Grid) Contains(idx int) bool {
	return idx >= 0 && idx < g.Len()
}

// Center returns the cell at the middle of the lattice, rounding down.
func (g Grid) Center() (int, int) {
	return g.W / 2, g.H / 2
}

// Clamp pulls (x, y) onto the nearest in-grid cell.
func (g Grid) Clamp(x, y int) (int, int) {
	if x < 0 {
		x = 0
	} else if x >= g.W {
		x = g.W - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.H {
		y = g.H - 1
	}
	return x, y
}
