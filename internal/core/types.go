package core

import (
	"errors"
	"sort"
)

// ErrOutOfRange reports a cell coordinate outside the grid.
var ErrOutOfRange = errors.New("cell coordinate out of range")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells covered by the size.
func (s Size) Cells() int { return s.W * s.H }

// PackedLen returns the byte length of a one-bit-per-cell buffer of this size.
func (s Size) PackedLen() int { return (s.Cells() + 7) / 8 }

// Contains reports whether (row, col) addresses a cell inside the grid.
func (s Size) Contains(row, col int) bool {
	return row >= 0 && row < s.H && col >= 0 && col < s.W
}

// Engine defines the cellular automaton surface consumed by the viewer.
//
// Cells returns the packed state buffer: one bit per cell, row-major,
// least significant bit first within each byte. The returned slice is owned
// by the engine and may be overwritten by the next Tick.
type Engine interface {
	Name() string
	Size() Size
	Cells() []byte
	Tick()
	Toggle(row, col int) error
	Stamp(p Pattern, row, col int)
	Clear()
	Randomize(seed int64)
}

// Factory constructs an Engine for the requested grid size and options.
type Factory func(size Size, opts map[string]string) Engine

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}

// EngineNames lists registered engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
