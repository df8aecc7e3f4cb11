package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions. Non-positive
// dimensions produce an empty grid.
func NewByteGrid(w, h int) *ByteGrid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &ByteGrid{W: w, H: h, data: make([]uint8, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Len returns the number of cells.
func (g *ByteGrid) Len() int { return len(g.data) }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Row returns the backing slice for row y. Out-of-range rows and rows of a
// zero-width grid return nil.
func (g *ByteGrid) Row(y int) []uint8 {
	if y < 0 || y >= g.H || g.W == 0 {
		return nil
	}
	start := y * g.W
	return g.data[start : start+g.W]
}

// Last returns the final cell value, or 0 for an empty grid.
func (g *ByteGrid) Last() uint8 {
	if len(g.data) == 0 {
		return 0
	}
	return g.data[len(g.data)-1]
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
