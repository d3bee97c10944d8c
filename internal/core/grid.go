package core

import "fmt"

// BitGrid stores a 2D grid of boolean cells packed one bit per cell in
// row-major order, least significant bit first within each byte.
type BitGrid struct {
	W, H int
	data []byte
}

// NewBitGrid allocates a grid with the given dimensions.
func NewBitGrid(w, h int) *BitGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &BitGrid{W: w, H: h, data: make([]byte, Size{W: w, H: h}.PackedLen())}
}

// Bytes exposes the packed backing slice.
func (g *BitGrid) Bytes() []byte { return g.data }

// Index returns the bit index for (row, col).
func (g *BitGrid) Index(row, col int) int { return row*g.W + col }

// Get reports whether the bit at index i is set.
func (g *BitGrid) Get(i int) bool { return g.data[i>>3]&(1<<(uint(i)&7)) != 0 }

// Set assigns the bit at index i.
func (g *BitGrid) Set(i int, v bool) {
	if v {
		g.data[i>>3] |= 1 << (uint(i) & 7)
		return
	}
	g.data[i>>3] &^= 1 << (uint(i) & 7)
}

// Toggle flips the cell at (row, col).
func (g *BitGrid) Toggle(row, col int) error {
	if row < 0 || row >= g.H || col < 0 || col >= g.W {
		return fmt.Errorf("toggle (%d,%d) in %dx%d grid: %w", row, col, g.W, g.H, ErrOutOfRange)
	}
	i := g.Index(row, col)
	g.data[i>>3] ^= 1 << (uint(i) & 7)
	return nil
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *BitGrid) Wrap(row, col int) (int, int) {
	row = (row%g.H + g.H) % g.H
	col = (col%g.W + g.W) % g.W
	return row, col
}

// Clear resets every cell to dead.
func (g *BitGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
