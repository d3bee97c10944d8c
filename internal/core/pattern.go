package core

import (
	"fmt"
	"sort"
)

// Pattern is a predefined block of cells stamped into a grid. Cells holds
// W*H entries in row-major order.
type Pattern struct {
	Name  string
	W, H  int
	Cells []bool
}

// At reports whether the pattern cell at (row, col) is alive.
func (p Pattern) At(row, col int) bool { return p.Cells[row*p.W+col] }

// Pattern identifiers shipped with the viewer.
const (
	Glider       = "glider"
	Lightweight  = "lightweight"
	Middleweight = "middleweight"
	Heavyweight  = "heavyweight"
)

var patterns = map[string]Pattern{}

// RegisterPattern adds p to the pattern library, replacing any pattern of
// the same name.
func RegisterPattern(p Pattern) error {
	if p.Name == "" {
		return fmt.Errorf("register pattern: empty name")
	}
	if p.W <= 0 || p.H <= 0 || len(p.Cells) != p.W*p.H {
		return fmt.Errorf("register pattern %q: %dx%d does not match %d cells", p.Name, p.W, p.H, len(p.Cells))
	}
	patterns[p.Name] = p
	return nil
}

// LookupPattern returns the pattern registered under name.
func LookupPattern(name string) (Pattern, bool) {
	p, ok := patterns[name]
	return p, ok
}

// PatternNames lists registered pattern names in sorted order.
func PatternNames() []string {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// parsePattern builds a pattern from rows of '#' (alive) and '.' (dead).
func parsePattern(name string, rows ...string) Pattern {
	p := Pattern{Name: name, W: len(rows[0]), H: len(rows)}
	for _, row := range rows {
		for _, c := range row {
			p.Cells = append(p.Cells, c == '#')
		}
	}
	return p
}

func init() {
	for _, p := range []Pattern{
		parsePattern(Glider,
			".#.",
			"..#",
			"###",
		),
		parsePattern(Lightweight,
			".####",
			"#...#",
			"....#",
			"#..#.",
		),
		parsePattern(Middleweight,
			".#####",
			"#....#",
			".....#",
			"#...#.",
			"..#...",
		),
		parsePattern(Heavyweight,
			".######",
			"#.....#",
			"......#",
			".....#.",
		),
	} {
		if err := RegisterPattern(p); err != nil {
			panic(err)
		}
	}
}
