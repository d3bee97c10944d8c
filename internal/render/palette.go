package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Palette holds the colors used to draw a frame.
type Palette struct {
	Background color.RGBA
	Grid       color.RGBA
	Dead       color.RGBA
	Alive      color.RGBA
}

// DefaultPalette returns light-grey grid lines, off-white dead cells and
// charcoal live cells.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Grid:       color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff},
		Dead:       color.RGBA{R: 0xee, G: 0xee, B: 0xee, A: 0xff},
		Alive:      color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	}
}

// ParseHex parses "#RGB", "#RRGGBB" or "#RRGGBBAA" (the leading # is
// optional).
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want #RGB, #RRGGBB or #RRGGBBAA", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// FormatHex renders c as "#RRGGBB", appending alpha only when not opaque.
func FormatHex(c color.RGBA) string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}
