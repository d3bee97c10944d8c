// Package raster implements render.Surface on a gg software context, for
// snapshots, tests and the terminal host.
package raster

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
)

type pathOp struct {
	move bool
	x, y float64
}

// Surface draws into an in-memory RGBA canvas.
//
// gg shares one path and one brush between fill and stroke, so the
// surface keeps its own pending path and both colors and hands them to gg
// only when painting. Path points use the transform in effect at Stroke.
type Surface struct {
	dc     *gg.Context
	stroke color.Color
	fill   color.Color
	path   []pathOp
}

// New allocates a w×h canvas cleared to transparent.
func New(w, h int) *Surface {
	return &Surface{
		dc:     gg.NewContext(w, h),
		stroke: color.Black,
		fill:   color.Black,
	}
}

// Width returns the canvas width in pixels.
func (s *Surface) Width() int { return s.dc.Width() }

// Height returns the canvas height in pixels.
func (s *Surface) Height() int { return s.dc.Height() }

// Save pushes the current transform.
func (s *Surface) Save() { s.dc.Push() }

// Restore pops the transform pushed by the matching Save.
func (s *Surface) Restore() { s.dc.Pop() }

// Clear fills the whole canvas with c, ignoring the transform.
func (s *Surface) Clear(c color.Color) { s.dc.ClearWithColor(gg.FromColor(c)) }

// Translate composes a translation onto the current transform.
func (s *Surface) Translate(x, y float64) { s.dc.Translate(x, y) }

// Scale composes a scale onto the current transform.
func (s *Surface) Scale(sx, sy float64) { s.dc.Scale(sx, sy) }

// SetStrokeColor sets the color used by Stroke.
func (s *Surface) SetStrokeColor(c color.Color) { s.stroke = c }

// SetLineWidth sets the stroke width in user space.
func (s *Surface) SetLineWidth(w float64) { s.dc.SetLineWidth(w) }

// BeginPath discards any pending path.
func (s *Surface) BeginPath() { s.path = s.path[:0] }

// MoveTo starts a new subpath.
func (s *Surface) MoveTo(x, y float64) { s.path = append(s.path, pathOp{move: true, x: x, y: y}) }

// LineTo extends the current subpath.
func (s *Surface) LineTo(x, y float64) { s.path = append(s.path, pathOp{x: x, y: y}) }

// Stroke paints the pending path and clears it.
func (s *Surface) Stroke() error {
	if len(s.path) == 0 {
		return nil
	}
	s.dc.ClearPath()
	for _, op := range s.path {
		if op.move {
			s.dc.MoveTo(op.x, op.y)
		} else {
			s.dc.LineTo(op.x, op.y)
		}
	}
	s.path = s.path[:0]
	s.dc.SetColor(s.stroke)
	return s.dc.Stroke()
}

// SetFillColor sets the color used by FillRect.
func (s *Surface) SetFillColor(c color.Color) { s.fill = c }

// FillRect fills an axis-aligned rectangle. The pending path is kept.
func (s *Surface) FillRect(x, y, w, h float64) error {
	s.dc.ClearPath()
	s.dc.SetColor(s.fill)
	s.dc.DrawRectangle(x, y, w, h)
	return s.dc.Fill()
}

// At returns the pixel at (x, y); pixels outside the canvas are
// transparent.
func (s *Surface) At(x, y int) color.RGBA {
	pm := s.dc.ResizeTarget()
	if x < 0 || y < 0 || x >= pm.Width() || y >= pm.Height() {
		return color.RGBA{}
	}
	i := (y*pm.Width() + x) * 4
	d := pm.Data()
	return color.RGBA{R: d[i], G: d[i+1], B: d[i+2], A: d[i+3]}
}

// Image returns a copy of the canvas.
func (s *Surface) Image() image.Image { return s.dc.Image() }

// SavePNG writes the canvas to a PNG file.
func (s *Surface) SavePNG(path string) error { return s.dc.SavePNG(path) }

// EncodePNG writes the canvas as PNG to w.
func (s *Surface) EncodePNG(w io.Writer) error { return s.dc.EncodePNG(w) }

// Close releases the gg context.
func (s *Surface) Close() error { return s.dc.Close() }
