//go:build ebiten

package ui

import (
	"image/color"

	"lifeview/internal/core"
	"lifeview/internal/render"
	"lifeview/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Scene is what the overlay inspects.
type Scene interface {
	Engine() core.Engine
	Viewport() *view.Viewport
	Renderer() *render.Renderer
	Hover(x, y float64) (row, col int, inside bool)
}

// Overlay draws the hovered-cell highlight and a minimap on top of the
// canvas view. H toggles the highlight and M the minimap.
type Overlay struct {
	scene Scene

	showHover   bool
	showMinimap bool

	hoverRow, hoverCol int
	hoverOK            bool

	miniImg *ebiten.Image
	miniBuf []byte
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(scene Scene) *Overlay {
	return &Overlay{scene: scene, showHover: true, showMinimap: true}
}

// Update handles the overlay's key toggles and tracks the cell under the
// pointer at (mx, my) when inView.
func (o *Overlay) Update(mx, my int, inView bool) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHover = !o.showHover
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		o.showMinimap = !o.showMinimap
	}
	o.hoverOK = false
	if inView {
		o.hoverRow, o.hoverCol, o.hoverOK = o.scene.Hover(float64(mx), float64(my))
	}
}

// Draw renders the overlay onto the canvas view.
func (o *Overlay) Draw(dst *ebiten.Image) {
	if o.showHover && o.hoverOK {
		o.drawHover(dst)
	}
	if o.showMinimap {
		o.drawMinimap(dst)
	}
}

func (o *Overlay) drawHover(dst *ebiten.Image) {
	vp := o.scene.Viewport()
	geom := vp.Geometry()
	cx, cy := geom.CellOrigin(o.hoverRow, o.hoverCol)
	x0, y0 := vp.CanvasToScreen(cx, cy)
	size := float64(geom.CellSize)
	x1, y1 := vp.CanvasToScreen(cx+size, cy+size)
	vector.StrokeRect(dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, color.RGBA{R: 255, G: 140, B: 0, A: 220}, false)
}

const (
	minimapMax    = 128
	minimapMargin = 8
)

func (o *Overlay) drawMinimap(dst *ebiten.Image) {
	size := o.scene.Engine().Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.miniImg == nil || o.miniImg.Bounds().Dx() != size.W || o.miniImg.Bounds().Dy() != size.H {
		o.miniImg = ebiten.NewImage(size.W, size.H)
		o.miniBuf = make([]byte, 4*size.Cells())
	}
	p := o.scene.Renderer().Palette()
	render.FillPackedRGBA(o.miniBuf, o.scene.Engine().Cells(), size.Cells(), p.Alive, p.Dead)
	o.miniImg.WritePixels(o.miniBuf)

	scale := float64(minimapMax) / float64(max(size.W, size.H))
	w, h := float64(size.W)*scale, float64(size.H)*scale
	b := dst.Bounds()
	left := float64(b.Max.X) - w - minimapMargin
	top := float64(b.Max.Y) - h - minimapMargin
	if left < float64(b.Min.X) || top < float64(b.Min.Y) {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(left, top)
	op.ColorScale.ScaleAlpha(0.85)
	dst.DrawImage(o.miniImg, op)
	vector.StrokeRect(dst, float32(left), float32(top), float32(w), float32(h), 1, p.Grid, false)

	// Outline the part of the grid visible in the view.
	vp := o.scene.Viewport()
	pitch := vp.Geometry().Pitch()
	ax, ay := vp.ScreenToCanvas(float64(b.Min.X), float64(b.Min.Y))
	bx, by := vp.ScreenToCanvas(float64(b.Max.X), float64(b.Max.Y))
	rx0 := clamp(ax/pitch, 0, float64(size.W))*scale + left
	ry0 := clamp(ay/pitch, 0, float64(size.H))*scale + top
	rx1 := clamp(bx/pitch, 0, float64(size.W))*scale + left
	ry1 := clamp(by/pitch, 0, float64(size.H))*scale + top
	if rx1 > rx0 && ry1 > ry0 {
		vector.StrokeRect(dst, float32(rx0), float32(ry0), float32(rx1-rx0), float32(ry1-ry0), 1, color.RGBA{R: 255, G: 140, B: 0, A: 255}, false)
	}
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
