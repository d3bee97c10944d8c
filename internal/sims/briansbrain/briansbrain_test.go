package briansbrain

import (
	"testing"

	"lifeview/internal/core"
)

func TestFiringPairSpawns(t *testing.T) {
	b := New(6, 6)
	if err := b.Toggle(2, 2); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if err := b.Toggle(2, 3); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	b.Tick()

	if b.on.Get(b.on.Index(2, 2)) || !b.Dying(2, 2) {
		t.Fatalf("firing cell should start dying")
	}
	// Cells above and below the pair see exactly two firing neighbours.
	for _, rc := range [][2]int{{1, 2}, {1, 3}, {3, 2}, {3, 3}} {
		if !b.on.Get(b.on.Index(rc[0], rc[1])) {
			t.Fatalf("cell %v should fire", rc)
		}
	}

	b.Tick()
	if b.Dying(2, 2) || b.on.Get(b.on.Index(2, 2)) {
		t.Fatalf("dying cell should be dead after one more tick")
	}
}

func TestToggleClearsRefractory(t *testing.T) {
	b := New(4, 4)
	_ = b.Toggle(0, 0)
	b.Tick()
	if !b.Dying(0, 0) {
		t.Fatalf("expected dying cell")
	}
	if err := b.Toggle(0, 0); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if b.Dying(0, 0) || b.Cells()[0]&1 == 0 {
		t.Fatalf("toggle should fire the cell and drop its refractory state")
	}
	if err := b.Toggle(4, 0); err == nil {
		t.Fatalf("expected out-of-range error")
	}
}

func TestRandomizeAndClear(t *testing.T) {
	b := New(32, 32)
	b.Randomize(7)
	count := 0
	for i := 0; i < 32*32; i++ {
		if b.on.Get(i) {
			count++
		}
	}
	if count == 0 || count > 32*32/3 {
		t.Fatalf("unexpected firing count %d", count)
	}
	b.Clear()
	for _, v := range b.Cells() {
		if v != 0 {
			t.Fatalf("clear left firing cells")
		}
	}
}

func TestRegistered(t *testing.T) {
	f, ok := core.Engines()["briansbrain"]
	if !ok {
		t.Fatalf("briansbrain not registered")
	}
	e := f(core.Size{W: 9, H: 5}, nil)
	if e.Size() != (core.Size{W: 9, H: 5}) || len(e.Cells()) != 6 {
		t.Fatalf("unexpected engine shape %v / %d bytes", e.Size(), len(e.Cells()))
	}
}

func TestNeighboursWrapAround(t *testing.T) {
	b := New(6, 6)
	// (0,0) and (0,5) are horizontal neighbours across the seam.
	_ = b.Toggle(0, 0)
	_ = b.Toggle(0, 5)

	b.Tick()

	for _, rc := range [][2]int{{5, 0}, {5, 5}, {1, 0}, {1, 5}} {
		if !b.on.Get(b.on.Index(rc[0], rc[1])) {
			t.Fatalf("cell %v should fire across the edge", rc)
		}
	}
	if b.on.Get(b.on.Index(1, 1)) {
		t.Fatalf("cell (1,1) has one firing neighbour and must stay dead")
	}
}
