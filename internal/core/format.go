package core

import "strings"

// Format renders an engine's grid as text, one line per row, using ◼ for
// alive cells and ◻ for dead ones.
func Format(e Engine) string {
	size := e.Size()
	cells := e.Cells()
	var b strings.Builder
	for row := 0; row < size.H; row++ {
		for col := 0; col < size.W; col++ {
			i := row*size.W + col
			if cells[i>>3]&(1<<(uint(i)&7)) != 0 {
				b.WriteRune('◼')
				continue
			}
			b.WriteRune('◻')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
