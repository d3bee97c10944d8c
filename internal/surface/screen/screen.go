//go:build ebiten

package screen

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

type segment struct {
	x0, y0, x1, y1 float64
}

// Surface draws onto an offscreen canvas image that the game blits to the
// window each frame.
type Surface struct {
	canvas *ebiten.Image

	geo   ebiten.GeoM
	stack []ebiten.GeoM

	stroke    color.Color
	fill      color.Color
	lineWidth float64

	path   []segment
	cx, cy float64
	open   bool
}

// New allocates a w×h canvas.
func New(w, h int) *Surface {
	return &Surface{
		canvas:    ebiten.NewImage(w, h),
		stroke:    color.Black,
		fill:      color.Black,
		lineWidth: 1,
	}
}

// Image returns the canvas image.
func (s *Surface) Image() *ebiten.Image { return s.canvas }

// Save pushes the current transform.
func (s *Surface) Save() { s.stack = append(s.stack, s.geo) }

// Restore pops the transform pushed by the matching Save.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.geo = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Clear fills the whole canvas with c.
func (s *Surface) Clear(c color.Color) { s.canvas.Fill(c) }

// Translate composes a translation onto the current transform.
func (s *Surface) Translate(x, y float64) {
	var t ebiten.GeoM
	t.Translate(x, y)
	t.Concat(s.geo)
	s.geo = t
}

// Scale composes a scale onto the current transform.
func (s *Surface) Scale(sx, sy float64) {
	var t ebiten.GeoM
	t.Scale(sx, sy)
	t.Concat(s.geo)
	s.geo = t
}

// SetStrokeColor sets the color used by Stroke.
func (s *Surface) SetStrokeColor(c color.Color) { s.stroke = c }

// SetLineWidth sets the stroke width in user space.
func (s *Surface) SetLineWidth(w float64) { s.lineWidth = w }

// BeginPath discards any pending path.
func (s *Surface) BeginPath() {
	s.path = s.path[:0]
	s.open = false
}

// MoveTo starts a new subpath.
func (s *Surface) MoveTo(x, y float64) {
	s.cx, s.cy = s.geo.Apply(x, y)
	s.open = true
}

// LineTo extends the current subpath.
func (s *Surface) LineTo(x, y float64) {
	nx, ny := s.geo.Apply(x, y)
	if s.open {
		s.path = append(s.path, segment{s.cx, s.cy, nx, ny})
	}
	s.cx, s.cy, s.open = nx, ny, true
}

// Stroke draws the pending segments and clears the path. The line width
// follows the transform's scale along each segment's normal.
func (s *Surface) Stroke() error {
	sx := math.Abs(s.geo.Element(0, 0))
	sy := math.Abs(s.geo.Element(1, 1))
	for _, seg := range s.path {
		w := s.lineWidth * math.Sqrt(sx*sy)
		switch {
		case seg.x0 == seg.x1:
			w = s.lineWidth * sx
		case seg.y0 == seg.y1:
			w = s.lineWidth * sy
		}
		vector.StrokeLine(s.canvas, float32(seg.x0), float32(seg.y0), float32(seg.x1), float32(seg.y1), float32(w), s.stroke, false)
	}
	s.BeginPath()
	return nil
}

// SetFillColor sets the color used by FillRect.
func (s *Surface) SetFillColor(c color.Color) { s.fill = c }

// FillRect fills an axis-aligned rectangle.
func (s *Surface) FillRect(x, y, w, h float64) error {
	x0, y0 := s.geo.Apply(x, y)
	x1, y1 := s.geo.Apply(x+w, y+h)
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	vector.DrawFilledRect(s.canvas, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), s.fill, false)
	return nil
}
