package briansbrain

import "lifeview/internal/core"

// Brain implements Brian's Brain. Firing cells are the visible bits; the
// refractory ("dying") state lives in a second grid the viewer never sees.
type Brain struct {
	w, h   int
	on     *core.BitGrid
	dying  *core.BitGrid
	nxtOn  *core.BitGrid
	nxtDie *core.BitGrid
}

// New creates a Brain simulation with every cell dead.
func New(w, h int) *Brain {
	on := core.NewBitGrid(w, h)
	w, h = on.W, on.H
	return &Brain{
		w: w, h: h,
		on:     on,
		dying:  core.NewBitGrid(w, h),
		nxtOn:  core.NewBitGrid(w, h),
		nxtDie: core.NewBitGrid(w, h),
	}
}

// Name identifies the simulation.
func (b *Brain) Name() string { return "briansbrain" }

// Size returns the grid dimensions.
func (b *Brain) Size() core.Size { return core.Size{W: b.w, H: b.h} }

// Cells exposes the packed firing bits.
func (b *Brain) Cells() []byte { return b.on.Bytes() }

// Dying reports whether a cell is refractory.
func (b *Brain) Dying(row, col int) bool { return b.dying.Get(b.dying.Index(row, col)) }

// Randomize fires roughly one cell in eight and clears the rest.
func (b *Brain) Randomize(seed int64) {
	rng := core.NewRNG(seed).Source()
	b.dying.Clear()
	for i := 0; i < b.w*b.h; i++ {
		b.on.Set(i, rng.IntN(8) == 0)
	}
}

// Tick advances the automaton: firing cells start dying, dying cells die,
// and dead cells with exactly two firing neighbours fire.
func (b *Brain) Tick() {
	w, h := b.w, b.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			switch {
			case b.on.Get(idx):
				b.nxtOn.Set(idx, false)
				b.nxtDie.Set(idx, true)
			case b.dying.Get(idx):
				b.nxtOn.Set(idx, false)
				b.nxtDie.Set(idx, false)
			default:
				neighbors := 0
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						if b.on.Get(b.on.Index(b.on.Wrap(y+dy, x+dx))) {
							neighbors++
						}
					}
				}
				b.nxtOn.Set(idx, neighbors == 2)
				b.nxtDie.Set(idx, false)
			}
		}
	}
	b.on, b.nxtOn = b.nxtOn, b.on
	b.dying, b.nxtDie = b.nxtDie, b.dying
}

// Toggle flips a cell between firing and dead.
func (b *Brain) Toggle(row, col int) error {
	if err := b.on.Toggle(row, col); err != nil {
		return err
	}
	b.dying.Set(b.dying.Index(row, col), false)
	return nil
}

// Stamp fires the pattern's live cells and kills its dead ones, clipped to
// the grid.
func (b *Brain) Stamp(p core.Pattern, row, col int) {
	for pr := 0; pr < p.H; pr++ {
		for pc := 0; pc < p.W; pc++ {
			r, c := row+pr, col+pc
			if !b.Size().Contains(r, c) {
				continue
			}
			i := b.on.Index(r, c)
			b.on.Set(i, p.At(pr, pc))
			b.dying.Set(i, false)
		}
	}
}

// Clear kills every cell.
func (b *Brain) Clear() {
	b.on.Clear()
	b.dying.Clear()
}

func init() {
	core.Register("briansbrain", func(size core.Size, _ map[string]string) core.Engine {
		return New(size.W, size.H)
	})
}
