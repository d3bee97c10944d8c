// Package view owns the pan/zoom transform between the screen, the canvas
// and the cell grid.
//
// Screen coordinates are pointer positions in display units. The device
// scale converts them to backing pixels. The pan/zoom transform then maps
// canvas pixels to backing pixels: backing = canvas*scale + offset.
package view

import "math"

const (
	// DefaultSensitivity is the fractional scale change per wheel notch.
	DefaultSensitivity = 0.1
	// DefaultMinScale bounds repeated zoom-out away from zero.
	DefaultMinScale = 1e-3
)

// Zoom selects the direction of a zoom step.
type Zoom int

const (
	ZoomOut Zoom = -1
	ZoomIn  Zoom = 1
)

// Viewport is the mutable pan/zoom state of one viewer. It is not safe for
// concurrent use; a session confines it to its event thread.
type Viewport struct {
	geom Geometry

	scale            float64
	offsetX, offsetY float64
	home             float64

	sensitivity      float64
	minScale         float64
	deviceX, deviceY float64
}

// NewViewport returns an identity viewport over geom.
func NewViewport(geom Geometry) *Viewport {
	return &Viewport{
		geom:        geom,
		scale:       1,
		home:        1,
		sensitivity: DefaultSensitivity,
		minScale:    DefaultMinScale,
		deviceX:     1,
		deviceY:     1,
	}
}

// Geometry returns the grid geometry the viewport maps onto.
func (v *Viewport) Geometry() Geometry { return v.geom }

// Scale returns the current zoom factor.
func (v *Viewport) Scale() float64 { return v.scale }

// Offset returns the current pan offset in backing pixels.
func (v *Viewport) Offset() (float64, float64) { return v.offsetX, v.offsetY }

// SetOffset replaces the pan offset, in backing pixels.
func (v *Viewport) SetOffset(x, y float64) {
	v.offsetX, v.offsetY = x, y
}

// SetSensitivity changes the per-step zoom factor. Non-positive values are
// ignored.
func (v *Viewport) SetSensitivity(s float64) {
	if s > 0 && !math.IsInf(s, 0) {
		v.sensitivity = s
	}
}

// Sensitivity returns the per-step zoom factor.
func (v *Viewport) Sensitivity() float64 { return v.sensitivity }

// SetMinScale changes the lower zoom bound. Non-positive values are ignored.
func (v *Viewport) SetMinScale(s float64) {
	if s > 0 {
		v.minScale = s
	}
}

// SetDeviceScale sets the ratio of backing pixels to display units on each
// axis. Non-positive factors are ignored.
func (v *Viewport) SetDeviceScale(x, y float64) {
	if x > 0 {
		v.deviceX = x
	}
	if y > 0 {
		v.deviceY = y
	}
}

// DeviceScale returns the backing-per-display ratios.
func (v *Viewport) DeviceScale() (float64, float64) { return v.deviceX, v.deviceY }

// SetHomeScale changes the zoom that Reset returns to. Non-positive values
// are ignored.
func (v *Viewport) SetHomeScale(s float64) {
	if s > 0 && !math.IsInf(s, 0) {
		v.home = s
	}
}

// Reset restores the home zoom with no pan.
func (v *Viewport) Reset() {
	v.scale = v.home
	v.offsetX, v.offsetY = 0, 0
}

// ToBacking converts a screen position to backing pixels.
func (v *Viewport) ToBacking(sx, sy float64) (float64, float64) {
	return sx * v.deviceX, sy * v.deviceY
}

// ZoomAt scales the view by one step in dir while keeping the canvas point
// under the screen position (sx, sy) fixed.
func (v *Viewport) ZoomAt(sx, sy float64, dir Zoom) {
	old := v.scale
	next := old
	switch {
	case dir > 0:
		next = old * (1 + v.sensitivity)
	case dir < 0:
		next = old / (1 + v.sensitivity)
	default:
		return
	}
	if next < v.minScale {
		next = v.minScale
	}
	if math.IsInf(next, 0) || math.IsNaN(next) || next == old {
		return
	}
	ax, ay := v.ToBacking(sx, sy)
	v.offsetX -= (ax - v.offsetX) * (next - old) / old
	v.offsetY -= (ay - v.offsetY) * (next - old) / old
	v.scale = next
}

// PanBy shifts the view by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	bx, by := v.ToBacking(dx, dy)
	v.offsetX += bx
	v.offsetY += by
}

// CanvasToScreen maps a canvas point to screen coordinates.
func (v *Viewport) CanvasToScreen(cx, cy float64) (float64, float64) {
	return (cx*v.scale + v.offsetX) / v.deviceX, (cy*v.scale + v.offsetY) / v.deviceY
}

// ScreenToCanvas maps a screen position to canvas coordinates.
func (v *Viewport) ScreenToCanvas(sx, sy float64) (float64, float64) {
	bx, by := v.ToBacking(sx, sy)
	return (bx - v.offsetX) / v.scale, (by - v.offsetY) / v.scale
}

// Locate maps a screen position to the cell whose pitch square contains it.
// inside is false when the position falls outside the grid.
func (v *Viewport) Locate(sx, sy float64) (row, col int, inside bool) {
	cx, cy := v.ScreenToCanvas(sx, sy)
	p := v.geom.Pitch()
	col = int(math.Floor(cx / p))
	row = int(math.Floor(cy / p))
	inside = row >= 0 && row < v.geom.Height && col >= 0 && col < v.geom.Width
	return row, col, inside
}

// ScreenToGrid maps a screen position to a cell, clamped into the grid.
func (v *Viewport) ScreenToGrid(sx, sy float64) (int, int) {
	row, col, _ := v.Locate(sx, sy)
	return clampInt(row, 0, v.geom.Height-1), clampInt(col, 0, v.geom.Width-1)
}

// GridToScreen returns the screen position of the centre of a cell.
func (v *Viewport) GridToScreen(row, col int) (float64, float64) {
	return v.CanvasToScreen(v.geom.CellCenter(row, col))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
