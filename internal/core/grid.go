package core

// Grid stores two same-shape generations of byte-sized cell values in
// row-major order: a current buffer that is read-only while a generation is
// being computed, and a next buffer that receives the new states. Committing
// a generation swaps the two slice headers; cell data is never copied.
type Grid struct {
	W, H int
	cur  []uint8
	nxt  []uint8
}

// NewGrid allocates both generation buffers for the given dimensions.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{
		W:   w,
		H:   h,
		cur: make([]uint8, w*h),
		nxt: make([]uint8, w*h),
	}
}

// Cur exposes the current generation for reading.
func (g *Grid) Cur() []uint8 { return g.cur }

// Next exposes the in-progress generation for writing.
func (g *Grid) Next() []uint8 { return g.nxt }

// Swap commits the in-progress generation by exchanging the roles of the two
// buffers. O(1): only the slice headers move.
func (g *Grid) Swap() {
	g.cur, g.nxt = g.nxt, g.cur
}

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// Clear fills both buffers with zeros.
func (g *Grid) Clear() {
	for i := range g.cur {
		g.cur[i] = 0
	}
	for i := range g.nxt {
		g.nxt[i] = 0
	}
}
