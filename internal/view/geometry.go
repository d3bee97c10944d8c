package view

import (
	"errors"
	"fmt"
)

// ErrGeometry reports an unusable grid geometry.
var ErrGeometry = errors.New("invalid grid geometry")

// Geometry fixes the grid dimensions and pixel layout for one session.
type Geometry struct {
	Width      int // cells
	Height     int // cells
	CellSize   int // pixels
	BorderSize int // pixels
}

// Validate checks that the geometry can be laid out.
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Height <= 0:
		return fmt.Errorf("%w: grid %dx%d", ErrGeometry, g.Width, g.Height)
	case g.CellSize <= 0:
		return fmt.Errorf("%w: cell size %d", ErrGeometry, g.CellSize)
	case g.BorderSize < 0:
		return fmt.Errorf("%w: border size %d", ErrGeometry, g.BorderSize)
	}
	return nil
}

// Pitch is the distance between the origins of adjacent cells.
func (g Geometry) Pitch() float64 { return float64(g.CellSize + g.BorderSize) }

// CanvasSize returns the backing pixel dimensions needed to draw the grid.
func (g Geometry) CanvasSize() (int, int) {
	pitch := g.CellSize + g.BorderSize
	return pitch*g.Width + g.BorderSize, pitch*g.Height + g.BorderSize
}

// LineOffset is the shift applied to grid lines so strokes centre on the
// border between cells.
func (g Geometry) LineOffset() float64 { return float64(g.BorderSize) / 2 }

// CellOrigin returns the canvas position of the top-left pixel of a cell fill.
func (g Geometry) CellOrigin(row, col int) (float64, float64) {
	p := g.Pitch()
	b := float64(g.BorderSize)
	return float64(col)*p + b, float64(row)*p + b
}

// CellCenter returns the canvas position of the centre of a cell fill.
func (g Geometry) CellCenter(row, col int) (float64, float64) {
	x, y := g.CellOrigin(row, col)
	half := float64(g.CellSize) / 2
	return x + half, y + half
}
