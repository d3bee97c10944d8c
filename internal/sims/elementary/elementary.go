package elementary

import (
	"strconv"

	"lifeview/internal/core"
)

// Config holds parameters for the elementary cellular automaton.
type Config struct {
	Width  int
	Height int
	Rule   uint8
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64, Rule: 110}
}

// FromMap populates a Config from the grid size and a string map.
func FromMap(size core.Size, cfg map[string]string) Config {
	c := DefaultConfig()
	if size.W > 0 {
		c.Width = size.W
	}
	if size.H > 0 {
		c.Height = size.H
	}
	if v, ok := cfg["rule"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 && parsed <= 255 {
			c.Rule = uint8(parsed)
		}
	}
	return c
}

// Elementary implements a one-dimensional Wolfram code projected vertically.
// Row 0 holds the newest generation; older generations scroll downwards.
type Elementary struct {
	w, h int
	rule uint8
	cur  *core.BitGrid
	nxt  *core.BitGrid
}

// New creates an automaton with the given dimensions and rule, seeded with a
// single live cell in the middle of the top row.
func New(w, h int, rule uint8) *Elementary {
	cur := core.NewBitGrid(w, h)
	e := &Elementary{w: cur.W, h: cur.H, rule: rule, cur: cur, nxt: core.NewBitGrid(cur.W, cur.H)}
	e.seedCenter()
	return e
}

// Name returns the engine identifier.
func (e *Elementary) Name() string { return "elementary" }

// Size returns the grid dimensions.
func (e *Elementary) Size() core.Size { return core.Size{W: e.w, H: e.h} }

// Cells exposes the packed grid.
func (e *Elementary) Cells() []byte { return e.cur.Bytes() }

// Rule returns the Wolfram rule number.
func (e *Elementary) Rule() uint8 { return e.rule }

// Tick computes the next generation from row 0 and scrolls history down.
func (e *Elementary) Tick() {
	w := e.w
	for row := e.h - 1; row > 0; row-- {
		for col := 0; col < w; col++ {
			e.nxt.Set(row*w+col, e.cur.Get((row-1)*w+col))
		}
	}
	for col := 0; col < w; col++ {
		var idx uint8
		if e.cur.Get((col - 1 + w) % w) {
			idx |= 4
		}
		if e.cur.Get(col) {
			idx |= 2
		}
		if e.cur.Get((col + 1) % w) {
			idx |= 1
		}
		e.nxt.Set(col, (e.rule>>idx)&1 == 1)
	}
	e.cur, e.nxt = e.nxt, e.cur
}

// Toggle flips a single cell.
func (e *Elementary) Toggle(row, col int) error { return e.cur.Toggle(row, col) }

// Stamp copies p into the grid with its top-left corner at (row, col),
// dropping cells outside the grid.
func (e *Elementary) Stamp(p core.Pattern, row, col int) {
	for pr := 0; pr < p.H; pr++ {
		for pc := 0; pc < p.W; pc++ {
			r, c := row+pr, col+pc
			if r < 0 || r >= e.h || c < 0 || c >= e.w {
				continue
			}
			e.cur.Set(e.cur.Index(r, c), p.At(pr, pc))
		}
	}
}

// Clear kills every cell.
func (e *Elementary) Clear() { e.cur.Clear() }

// Randomize assigns every cell an independent random state.
func (e *Elementary) Randomize(seed int64) {
	core.FillBits(core.NewRNG(seed).Source(), e.cur)
}

func (e *Elementary) seedCenter() {
	e.cur.Clear()
	e.cur.Set(e.w/2, true)
}

func init() {
	core.Register("elementary", func(size core.Size, cfg map[string]string) core.Engine {
		c := FromMap(size, cfg)
		return New(c.Width, c.Height, c.Rule)
	})
}
