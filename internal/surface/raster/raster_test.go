package raster

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeview/internal/render"
	"lifeview/internal/view"
)

func assertColor(t *testing.T, want, got color.RGBA, msgAndArgs ...any) {
	t.Helper()
	const tol = 2
	for _, c := range [][2]uint8{{want.R, got.R}, {want.G, got.G}, {want.B, got.B}, {want.A, got.A}} {
		if assert.InDelta(t, float64(c[0]), float64(c[1]), tol, msgAndArgs...) {
			continue
		}
		t.Logf("want %v, got %v", want, got)
		return
	}
}

var (
	red  = color.RGBA{R: 0xff, A: 0xff}
	blue = color.RGBA{B: 0xff, A: 0xff}
)

func TestClearIgnoresTransform(t *testing.T) {
	s := New(10, 10)
	defer s.Close()
	s.Translate(50, 50)
	s.Scale(0.1, 0.1)
	s.Clear(red)
	assertColor(t, red, s.At(0, 0))
	assertColor(t, red, s.At(9, 9))
	assert.Equal(t, color.RGBA{}, s.At(-1, 3))
}

func TestFillRectUnderTransform(t *testing.T) {
	s := New(20, 20)
	defer s.Close()
	s.Clear(red)

	s.Save()
	s.Translate(4, 6)
	s.Scale(2, 2)
	s.SetFillColor(blue)
	require.NoError(t, s.FillRect(1, 1, 3, 2))
	s.Restore()

	// (1,1)-(4,3) in user space lands on (6,8)-(12,12).
	assertColor(t, blue, s.At(6, 8))
	assertColor(t, blue, s.At(11, 11))
	assertColor(t, red, s.At(5, 8))
	assertColor(t, red, s.At(12, 11))

	s.SetFillColor(blue)
	require.NoError(t, s.FillRect(0, 0, 1, 1))
	assertColor(t, blue, s.At(0, 0), "restore must drop the transform")
}

func TestPendingPathSurvivesFill(t *testing.T) {
	s := New(10, 10)
	defer s.Close()
	s.Clear(color.White)

	s.SetStrokeColor(red)
	s.SetLineWidth(1)
	s.BeginPath()
	s.MoveTo(0, 4.5)
	s.LineTo(10, 4.5)
	s.SetFillColor(blue)
	require.NoError(t, s.FillRect(0, 0, 2, 2))
	require.NoError(t, s.Stroke())

	assertColor(t, red, s.At(5, 4))
	assertColor(t, blue, s.At(1, 1))
	assert.NoError(t, s.Stroke(), "stroke with no path is a no-op")
}

func TestRendererPixels(t *testing.T) {
	geom := view.Geometry{Width: 4, Height: 4, CellSize: 3, BorderSize: 1}
	w, h := geom.CanvasSize()
	require.Equal(t, 17, w)
	require.Equal(t, 17, h)

	s := New(w, h)
	defer s.Close()
	p := render.DefaultPalette()
	r := render.NewRenderer(geom, p)
	vp := view.NewViewport(geom)

	// Cell (1,2) is bit 6.
	data := []byte{1 << 6, 0}
	require.NoError(t, r.Render(s, vp, data))

	assertColor(t, p.Alive, s.At(10, 6), "alive cell centre")
	assertColor(t, p.Dead, s.At(2, 2), "dead cell centre")
	assertColor(t, p.Grid, s.At(0, 10), "left border")
	assertColor(t, p.Grid, s.At(10, 8), "row boundary")

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 17, img.Bounds().Dx())
}

func TestRendererZoomedPixels(t *testing.T) {
	geom := view.Geometry{Width: 2, Height: 2, CellSize: 4, BorderSize: 0}
	s := New(24, 24)
	defer s.Close()
	p := render.DefaultPalette()
	r := render.NewRenderer(geom, p)
	vp := view.NewViewport(geom)
	for vp.Scale() < 2 {
		vp.ZoomAt(0, 0, view.ZoomIn)
	}
	scale := vp.Scale()

	// Cell (0,1) alive.
	require.NoError(t, r.Render(s, vp, []byte{1 << 1}))

	x := int(4*scale + 2*scale)
	assertColor(t, p.Alive, s.At(x, 2))
	assertColor(t, p.Dead, s.At(2, 2))
	assertColor(t, p.Background, s.At(22, 22))
}
