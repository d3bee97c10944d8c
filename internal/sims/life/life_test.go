package life

import (
	"testing"

	"lifeview/internal/core"
)

func TestBlinkerOscillation(t *testing.T) {
	life := New(5, 5)
	life.Set(1, 2, true)
	life.Set(2, 2, true)
	life.Set(3, 2, true)

	life.Tick()

	expects := map[[2]int]bool{
		{2, 1}: true,
		{2, 2}: true,
		{2, 3}: true,
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if expects[[2]int{row, col}] != life.Alive(row, col) {
				t.Fatalf("cell (%d,%d) alive=%v, expected %v", row, col, life.Alive(row, col), expects[[2]int{row, col}])
			}
		}
	}

	life.Tick()

	expects = map[[2]int]bool{
		{1, 2}: true,
		{2, 2}: true,
		{3, 2}: true,
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			if expects[[2]int{row, col}] != life.Alive(row, col) {
				t.Fatalf("after second tick cell (%d,%d) alive=%v, expected %v", row, col, life.Alive(row, col), expects[[2]int{row, col}])
			}
		}
	}
}

func TestGliderAdvances(t *testing.T) {
	life := New(6, 6)
	for _, rc := range [][2]int{{1, 2}, {2, 3}, {3, 1}, {3, 2}, {3, 3}} {
		life.Set(rc[0], rc[1], true)
	}
	life.Tick()

	want := New(6, 6)
	for _, rc := range [][2]int{{2, 1}, {2, 3}, {3, 2}, {3, 3}, {4, 2}} {
		want.Set(rc[0], rc[1], true)
	}
	if core.Format(life) != core.Format(want) {
		t.Fatalf("glider tick mismatch:\n%s\nwant:\n%s", core.Format(life), core.Format(want))
	}
}

func TestStampClipsAndOverwrites(t *testing.T) {
	life := New(4, 4)
	life.Set(0, 0, true)
	glider, ok := core.LookupPattern(core.Glider)
	if !ok {
		t.Fatal("glider pattern missing")
	}

	life.Stamp(glider, -1, -1)

	// Pattern row 1, col 1 (dead) lands on (0,0); row 1, col 2 (alive) on (0,1).
	if life.Alive(0, 0) {
		t.Fatal("stamp must clear cells where the pattern is dead")
	}
	if !life.Alive(0, 1) {
		t.Fatal("stamp must set cells where the pattern is alive")
	}
	if !life.Alive(1, 0) || !life.Alive(1, 1) {
		t.Fatal("bottom glider row should be visible after clipping")
	}
}

func TestToggleOutOfRange(t *testing.T) {
	life := New(3, 3)
	if err := life.Toggle(3, 0); err == nil {
		t.Fatal("expected out-of-range error")
	}
	if err := life.Toggle(1, 1); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !life.Alive(1, 1) {
		t.Fatal("toggle must flip the cell alive")
	}
}

func TestClearAndRandomize(t *testing.T) {
	life := New(16, 16)
	life.Randomize(3)
	first := core.Format(life)
	life.Clear()
	for _, b := range life.Cells() {
		if b != 0 {
			t.Fatal("clear must kill every cell")
		}
	}
	life.Randomize(3)
	if core.Format(life) != first {
		t.Fatal("randomize must be deterministic for a seed")
	}
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Engines()["life"]
	if !ok {
		t.Fatal("life engine not registered")
	}
	e := factory(core.Size{W: 8, H: 4}, nil)
	if e.Size() != (core.Size{W: 8, H: 4}) {
		t.Fatalf("size = %+v", e.Size())
	}
	if len(e.Cells()) != 4 {
		t.Fatalf("packed length = %d, want 4", len(e.Cells()))
	}
}
