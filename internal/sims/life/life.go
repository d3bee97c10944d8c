package life

import (
	"strconv"

	"lifeview/internal/core"
)

// Config holds parameters for the Life engine.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Width: 64, Height: 64}
}

// FromMap overrides defaults from a string map.
func FromMap(size core.Size, cfg map[string]string) Config {
	c := DefaultConfig()
	if size.W > 0 {
		c.Width = size.W
	}
	if size.H > 0 {
		c.Height = size.H
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	return c
}

// Life implements Conway's Game of Life with toroidal wrapping on a packed
// bit grid.
type Life struct {
	w, h int
	cur  *core.BitGrid
	nxt  *core.BitGrid
}

// New returns a Life engine with every cell dead.
func New(w, h int) *Life {
	cur := core.NewBitGrid(w, h)
	return &Life{w: cur.W, h: cur.H, cur: cur, nxt: core.NewBitGrid(cur.W, cur.H)}
}

// Name returns the engine identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// Cells exposes the packed current generation.
func (l *Life) Cells() []byte { return l.cur.Bytes() }

// Alive reports whether the cell at (row, col) is alive.
func (l *Life) Alive(row, col int) bool { return l.cur.Get(l.cur.Index(row, col)) }

// Set assigns a cell directly.
func (l *Life) Set(row, col int, alive bool) { l.cur.Set(l.cur.Index(row, col), alive) }

// Tick advances the simulation by one generation.
func (l *Life) Tick() {
	w, h := l.w, l.h
	for y := 0; y < h; y++ {
		north := (y - 1 + h) % h
		south := (y + 1) % h
		for x := 0; x < w; x++ {
			west := (x - 1 + w) % w
			east := (x + 1) % w
			neighbors := 0
			for _, i := range [8]int{
				north*w + west, north*w + x, north*w + east,
				y*w + west, y*w + east,
				south*w + west, south*w + x, south*w + east,
			} {
				if l.cur.Get(i) {
					neighbors++
				}
			}
			idx := y*w + x
			alive := l.cur.Get(idx)
			l.nxt.Set(idx, neighbors == 3 || (alive && neighbors == 2))
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
}

// Toggle flips a single cell.
func (l *Life) Toggle(row, col int) error { return l.cur.Toggle(row, col) }

// Stamp copies p into the grid with its top-left corner at (row, col).
// Pattern cells falling outside the grid are dropped.
func (l *Life) Stamp(p core.Pattern, row, col int) {
	for pr := 0; pr < p.H; pr++ {
		for pc := 0; pc < p.W; pc++ {
			r, c := row+pr, col+pc
			if r < 0 || r >= l.h || c < 0 || c >= l.w {
				continue
			}
			l.cur.Set(l.cur.Index(r, c), p.At(pr, pc))
		}
	}
}

// Clear kills every cell.
func (l *Life) Clear() { l.cur.Clear() }

// Randomize assigns every cell an independent random state.
func (l *Life) Randomize(seed int64) {
	core.FillBits(core.NewRNG(seed).Source(), l.cur)
}

func init() {
	core.Register("life", func(size core.Size, cfg map[string]string) core.Engine {
		c := FromMap(size, cfg)
		return New(c.Width, c.Height)
	})
}
