// Package render draws the cell grid onto an abstract 2D surface.
package render

import (
	"errors"
	"fmt"

	"lifeview/internal/cells"
	"lifeview/internal/view"
)

// ErrBufferSize reports a cell buffer shorter than the grid geometry needs.
var ErrBufferSize = errors.New("render: cell buffer too short for grid")

// Renderer draws grid lines and cell fills for one session's geometry.
type Renderer struct {
	geom    view.Geometry
	palette Palette
	dead    []int
}

// NewRenderer returns a renderer for geom using palette p.
func NewRenderer(geom view.Geometry, p Palette) *Renderer {
	return &Renderer{geom: geom, palette: p}
}

// Palette returns the active palette.
func (r *Renderer) Palette() Palette { return r.palette }

// SetPalette replaces the colors used from the next frame on.
func (r *Renderer) SetPalette(p Palette) { r.palette = p }

// Render draws one frame of data under the viewport transform. data is read
// during the call only.
func (r *Renderer) Render(s Surface, vp *view.Viewport, data []byte) error {
	buf := cells.NewBuffer(data, r.geom.Width, r.geom.Height)
	if !buf.Complete() {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrBufferSize, len(data), cells.PackedLen(r.geom.Width, r.geom.Height))
	}

	s.Save()
	defer s.Restore()

	s.Clear(r.palette.Background)
	ox, oy := vp.Offset()
	s.Translate(ox, oy)
	s.Scale(vp.Scale(), vp.Scale())

	if err := r.drawGrid(s); err != nil {
		return err
	}
	return r.drawCells(s, buf)
}

func (r *Renderer) drawGrid(s Surface) error {
	if r.geom.BorderSize == 0 {
		return nil
	}
	pitch := r.geom.Pitch()
	off := r.geom.LineOffset()
	right := pitch*float64(r.geom.Width) + off
	bottom := pitch*float64(r.geom.Height) + off

	s.SetStrokeColor(r.palette.Grid)
	s.SetLineWidth(float64(r.geom.BorderSize))
	s.BeginPath()
	for col := 0; col <= r.geom.Width; col++ {
		x := float64(col)*pitch + off
		s.MoveTo(x, 0)
		s.LineTo(x, bottom)
	}
	for row := 0; row <= r.geom.Height; row++ {
		y := float64(row)*pitch + off
		s.MoveTo(0, y)
		s.LineTo(right, y)
	}
	return s.Stroke()
}

// drawCells fills live cells first and dead cells second so the fill color
// changes only twice per frame.
func (r *Renderer) drawCells(s Surface, buf cells.Buffer) error {
	size := float64(r.geom.CellSize)
	r.dead = r.dead[:0]

	s.SetFillColor(r.palette.Alive)
	for row := 0; row < r.geom.Height; row++ {
		for col := 0; col < r.geom.Width; col++ {
			alive, err := buf.IsAlive(row, col)
			if err != nil {
				return err
			}
			if !alive {
				r.dead = append(r.dead, row*r.geom.Width+col)
				continue
			}
			x, y := r.geom.CellOrigin(row, col)
			if err := s.FillRect(x, y, size, size); err != nil {
				return err
			}
		}
	}

	s.SetFillColor(r.palette.Dead)
	for _, i := range r.dead {
		x, y := r.geom.CellOrigin(i/r.geom.Width, i%r.geom.Width)
		if err := s.FillRect(x, y, size, size); err != nil {
			return err
		}
	}
	return nil
}
