//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"
	"unicode"

	"lifeview/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// Target is what the HUD controls: the panel inputs and the session
// actions behind its buttons.
type Target interface {
	core.ParameterSource
	core.IntParameterSetter
	core.FloatParameterSetter
	TogglePlay()
	Step() error
	Randomize() error
	Clear() error
	Status() (label, fps string)
}

// HUD renders the control panel to the right of the canvas view.
type HUD struct {
	target     Target
	width      int
	panel      *ebiten.Image
	lastHeight int

	actions      []hudAction
	controls     []hudControlState
	panelOffsetX int
	title        string
	playLabel    string
	fps          string
	err          error

	pixel *ebiten.Image
}

type hudAction struct {
	label func(h *HUD) string
	run   func(t Target) error
	rect  image.Rectangle
}

// NewHUD constructs a HUD for the engine named name and panel width.
func NewHUD(target Target, name string, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{target: target, width: width, title: buildTitle(name)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.actions = []hudAction{
		{label: func(h *HUD) string { return h.playLabel }, run: func(t Target) error { t.TogglePlay(); return nil }},
		{label: constLabel("Step"), run: Target.Step},
		{label: constLabel("Random"), run: Target.Randomize},
		{label: constLabel("Clear"), run: Target.Clear},
	}
	controls := target.ParameterControls()
	h.controls = make([]hudControlState, len(controls))
	for i, ctrl := range controls {
		h.controls[i] = hudControlState{control: ctrl, value: "--"}
	}
	h.layout()
	return h
}

func constLabel(s string) func(*HUD) string { return func(*HUD) string { return s } }

// Width returns the panel width.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update refreshes the cached values from the target and handles clicks
// on the panel. It returns the error of a failed button action.
func (h *HUD) Update(panelOffsetX int) error {
	if h == nil || h.width <= 0 {
		return nil
	}
	h.panelOffsetX = panelOffsetX
	h.playLabel, h.fps = h.target.Status()
	h.refreshControlValues()
	return h.handleInput()
}

// Draw paints the HUD panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width <= 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(name string) string {
	if name == "" {
		return "Controls"
	}
	r := []rune(name)
	r[0] = unicode.ToUpper(r[0])
	return string(r) + " Controls"
}

func (h *HUD) refreshControlValues() {
	values := map[string]float64{}
	for _, p := range h.target.Parameters() {
		values[p.Key] = p.Value
	}
	for i := range h.controls {
		state := &h.controls[i]
		v, ok := values[state.control.Key]
		state.hasValue = ok
		if !ok {
			state.value = "--"
			continue
		}
		state.current = v
		switch state.control.Type {
		case core.ParamTypeInt:
			state.value = strconv.Itoa(int(math.Round(v)))
		case core.ParamTypeFloat:
			state.value = formatFloat(state.control, v)
		}
	}
}

func (h *HUD) handleInput() error {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return nil
	}
	px := mx - h.panelOffsetX
	for _, a := range h.actions {
		if pointInRect(px, my, a.rect) {
			return a.run(h.target)
		}
	}
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		if pointInRect(px, my, state.minusRect) {
			h.applyAdjustment(state, -1)
			return nil
		}
		if pointInRect(px, my, state.plusRect) {
			h.applyAdjustment(state, 1)
			return nil
		}
	}
	return nil
}

// target returns the value one step from the current one in direction,
// clamped to the control's bounds.
func (s *hudControlState) target(direction int) float64 {
	step := s.control.Step
	if step <= 0 {
		step = 1
		if s.control.Type == core.ParamTypeFloat {
			step = 0.05
		}
	}
	return s.control.Clamp(s.current + float64(direction)*step)
}

func (h *HUD) applyAdjustment(state *hudControlState, direction int) {
	next := state.target(direction)
	if math.Abs(next-state.current) < 1e-9 {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.target.SetIntParameter(state.control.Key, int(math.Round(next))) {
			state.current = math.Round(next)
			state.value = strconv.Itoa(int(state.current))
		}
	case core.ParamTypeFloat:
		if h.target.SetFloatParameter(state.control.Key, next) {
			state.current = next
			state.value = formatFloat(state.control, next)
		}
	}
}

func (h *HUD) canAdjust(state *hudControlState, direction int) bool {
	return state.hasValue && math.Abs(state.target(direction)-state.current) >= 1e-9
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})

	for _, a := range h.actions {
		h.drawButton(a.rect, a.label(h), true)
	}

	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !state.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		bounds := text.BoundString(face, state.value)
		valueX := state.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.value, face, valueX, labelY, valueColor)

		h.drawButton(state.minusRect, "-", h.canAdjust(state, -1))
		h.drawButton(state.plusRect, "+", h.canAdjust(state, 1))
	}

	if h.fps == "" {
		return
	}
	y := h.fpsTop()
	for _, line := range strings.Split(h.fps, "\n") {
		y += fpsLineHeight
		text.Draw(h.panel, line, face, panelPadding, y, color.RGBA{R: 160, G: 200, B: 160, A: 255})
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

// layout places the action buttons in a two-column grid under the title,
// then one row per parameter control.
func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	colW := (h.width - 2*panelPadding - buttonGap) / 2
	for i := range h.actions {
		x := panelPadding + (i%2)*(colW+buttonGap)
		y := controlsTop + (i/2)*(buttonSize+buttonGap)
		h.actions[i].rect = image.Rect(x, y, x+colW, y+buttonSize)
	}
	rows := (len(h.actions) + 1) / 2
	top := controlsTop + rows*(buttonSize+buttonGap) + buttonGap
	for i := range h.controls {
		rowTop := top + i*lineHeight
		buttonY := rowTop + (lineHeight-buttonSize)/2
		plusRect := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = rowTop
		h.controls[i].minusRect = minusRect
		h.controls[i].plusRect = plusRect
	}
}

func (h *HUD) fpsTop() int {
	rows := (len(h.actions) + 1) / 2
	return controlsTop + rows*(buttonSize+buttonGap) + buttonGap + len(h.controls)*lineHeight + infoSpacing/2
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	precision := 1
	switch step := ctrl.Step; {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

type hudControlState struct {
	control core.ParameterControl
	value   string

	current  float64
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	fpsLineHeight  = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
