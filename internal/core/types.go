package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of lattice sites.
func (s Size) Cells() int { return s.W * s.H }
