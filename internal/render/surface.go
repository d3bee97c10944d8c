package render

import "image/color"

// Surface is an immediate-mode 2D drawing context.
//
// Translate and Scale compose onto the current transform so that later
// coordinates are expressed in the pre-transform space, as with an HTML
// canvas. Save and Restore push and pop the transform. Clear always covers
// the whole backing buffer regardless of the transform.
type Surface interface {
	Save()
	Restore()
	Clear(c color.Color)

	Translate(x, y float64)
	Scale(sx, sy float64)

	SetStrokeColor(c color.Color)
	SetLineWidth(w float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Stroke() error

	SetFillColor(c color.Color)
	FillRect(x, y, w, h float64) error
}
