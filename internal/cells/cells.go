// Package cells decodes the engine's packed cell-state buffer.
//
// The buffer holds one bit per cell in row-major order; bit i lives in byte
// i/8 at position i%8, least significant bit first. The layout is shared
// with every engine in internal/sims and must not change.
package cells

import (
	"errors"
	"fmt"
)

// ErrOutOfRange reports a query outside the grid or past the buffer end.
var ErrOutOfRange = errors.New("cells: coordinate out of range")

// PackedLen returns the number of bytes needed to hold width*height cells.
func PackedLen(width, height int) int {
	return (width*height + 7) / 8
}

// Bit reports whether bit i of buf is set. It does no bounds checking
// beyond the slice access itself.
func Bit(buf []byte, i int) bool {
	return buf[i>>3]&(1<<(uint(i)&7)) != 0
}

// Buffer is a read-only view of one frame's packed cell states.
type Buffer struct {
	data          []byte
	width, height int
}

// NewBuffer wraps data for a width×height grid. The slice is not copied and
// must not be retained past the frame it was fetched for.
func NewBuffer(data []byte, width, height int) Buffer {
	return Buffer{data: data, width: width, height: height}
}

// Width returns the grid width in cells.
func (b Buffer) Width() int { return b.width }

// Height returns the grid height in cells.
func (b Buffer) Height() int { return b.height }

// Complete reports whether the buffer holds a bit for every cell.
func (b Buffer) Complete() bool {
	return len(b.data) >= PackedLen(b.width, b.height)
}

// IsAlive reports whether the cell at (row, col) is alive.
func (b Buffer) IsAlive(row, col int) (bool, error) {
	if row < 0 || row >= b.height || col < 0 || col >= b.width {
		return false, fmt.Errorf("cell (%d,%d) in %dx%d grid: %w", row, col, b.width, b.height, ErrOutOfRange)
	}
	i := row*b.width + col
	if i>>3 >= len(b.data) {
		return false, fmt.Errorf("bit %d past %d-byte buffer: %w", i, len(b.data), ErrOutOfRange)
	}
	return Bit(b.data, i), nil
}
