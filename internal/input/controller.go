// Package input turns pointer, wheel and keyboard events into viewport
// changes, grid edits and loop commands.
package input

import (
	"fmt"
	"math"

	"lifeview/internal/core"
	"lifeview/internal/view"
)

// Editor applies cell edits to the engine.
type Editor interface {
	Toggle(row, col int) error
	Stamp(p core.Pattern, row, col int)
}

// Commands are the session actions bound to keys. Step, Randomize and
// Clear redraw on their own.
type Commands interface {
	TogglePlay()
	Step() error
	Randomize() error
	Clear() error
	Quit()
}

// StampBinding stamps Pattern when a click is made with Mod held. The
// pattern's top-left corner is placed at the clicked cell shifted by
// (DRow, DCol) so the pattern lands centred near the pointer.
type StampBinding struct {
	Mod     Modifiers
	Pattern string
	DRow    int
	DCol    int
}

// DefaultStamps binds Ctrl to a glider and Shift to a heavyweight spaceship.
func DefaultStamps() []StampBinding {
	return []StampBinding{
		{Mod: ModCtrl, Pattern: core.Glider, DRow: -1, DCol: -1},
		{Mod: ModShift, Pattern: core.Heavyweight, DRow: -2, DCol: -3},
	}
}

// Options tunes a Controller.
type Options struct {
	PanButton     Button
	DragThreshold float64
	KeyPanStep    float64
	Stamps        []StampBinding
}

// DefaultOptions pans with the primary button.
func DefaultOptions() Options {
	return Options{
		PanButton:     ButtonPrimary,
		DragThreshold: 3,
		KeyPanStep:    32,
		Stamps:        DefaultStamps(),
	}
}

type stamp struct {
	mod        Modifiers
	pattern    core.Pattern
	drow, dcol int
}

// dragOrigin is the state of one press-to-release gesture.
type dragOrigin struct {
	button           Button
	x, y             float64
	offsetX, offsetY float64
	moved            bool
}

// Controller interprets input events for one viewer.
type Controller struct {
	vp     *view.Viewport
	edit   Editor
	cmds   Commands
	redraw func() error

	panButton Button
	threshold float64
	keyPan    float64
	stamps    []stamp

	drag *dragOrigin
}

// NewController wires a controller. redraw is invoked after every visible
// change so edits and zooms show up even while paused.
func NewController(vp *view.Viewport, edit Editor, cmds Commands, redraw func() error, opts Options) (*Controller, error) {
	c := &Controller{
		vp:        vp,
		edit:      edit,
		cmds:      cmds,
		redraw:    redraw,
		panButton: opts.PanButton,
		threshold: math.Max(opts.DragThreshold, 0),
		keyPan:    opts.KeyPanStep,
	}
	for _, b := range opts.Stamps {
		p, ok := core.LookupPattern(b.Pattern)
		if !ok {
			return nil, fmt.Errorf("stamp binding: unknown pattern %q", b.Pattern)
		}
		c.stamps = append(c.stamps, stamp{mod: b.Mod, pattern: p, drow: b.DRow, dcol: b.DCol})
	}
	return c, nil
}

// SetPanButton changes which button drags the view.
func (c *Controller) SetPanButton(b Button) { c.panButton = b }

// SuppressContextMenu reports whether hosts should swallow the context menu
// on the canvas because the secondary button pans.
func (c *Controller) SuppressContextMenu() bool { return c.panButton == ButtonSecondary }

// Dragging reports whether a press-to-release gesture is in progress.
func (c *Controller) Dragging() bool { return c.drag != nil }

// Wheel zooms around the pointer. dy follows the browser convention:
// negative values scroll away from the user and zoom in.
func (c *Controller) Wheel(x, y, dy float64) error {
	switch {
	case dy < 0:
		c.vp.ZoomAt(x, y, view.ZoomIn)
	case dy > 0:
		c.vp.ZoomAt(x, y, view.ZoomOut)
	default:
		return nil
	}
	return c.redraw()
}

// Press starts a gesture. Presses while another gesture is active are
// ignored.
func (c *Controller) Press(x, y float64, b Button) {
	if c.drag != nil {
		return
	}
	ox, oy := c.vp.Offset()
	c.drag = &dragOrigin{button: b, x: x, y: y, offsetX: ox, offsetY: oy}
}

// Move updates an active pan. The offset is recomputed from the press
// position every time rather than accumulated per event.
func (c *Controller) Move(x, y float64) error {
	d := c.drag
	if d == nil {
		return nil
	}
	if !d.moved && math.Hypot(x-d.x, y-d.y) <= c.threshold {
		return nil
	}
	d.moved = true
	if d.button != c.panButton {
		return nil
	}
	c.vp.SetOffset(d.offsetX, d.offsetY)
	c.vp.PanBy(x-d.x, y-d.y)
	return c.redraw()
}

// Release ends the gesture started by b. Hosts must report releases that
// happen outside the canvas too. A primary press released without moving
// past the drag threshold is a click.
func (c *Controller) Release(x, y float64, b Button, mods Modifiers) error {
	d := c.drag
	if d == nil || d.button != b {
		return nil
	}
	c.drag = nil
	if d.moved || b != ButtonPrimary {
		return nil
	}
	return c.Click(x, y, mods)
}

// Cancel abandons any gesture in progress without acting on it.
func (c *Controller) Cancel() { c.drag = nil }

// Click edits the cell under (x, y): a stamp when a bound modifier is held,
// otherwise a single-cell toggle.
func (c *Controller) Click(x, y float64, mods Modifiers) error {
	row, col := c.vp.ScreenToGrid(x, y)
	edited := false
	for _, s := range c.stamps {
		if s.mod != 0 && mods.Has(s.mod) {
			c.edit.Stamp(s.pattern, row+s.drow, col+s.dcol)
			edited = true
			break
		}
	}
	if !edited {
		if err := c.edit.Toggle(row, col); err != nil {
			return err
		}
	}
	return c.redraw()
}

// Key handles a key press.
func (c *Controller) Key(k Key) error {
	switch k {
	case KeySpace:
		c.cmds.TogglePlay()
		return nil
	case KeyN:
		return c.cmds.Step()
	case KeyR:
		return c.cmds.Randomize()
	case KeyC:
		return c.cmds.Clear()
	case KeyQ, KeyEscape:
		c.cmds.Quit()
		return nil
	case Key0:
		c.vp.Reset()
	case KeyLeft:
		c.vp.PanBy(c.keyPan, 0)
	case KeyRight:
		c.vp.PanBy(-c.keyPan, 0)
	case KeyUp:
		c.vp.PanBy(0, c.keyPan)
	case KeyDown:
		c.vp.PanBy(0, -c.keyPan)
	case KeyPlus, KeyMinus:
		dir := view.ZoomIn
		if k == KeyMinus {
			dir = view.ZoomOut
		}
		x, y := c.viewCenter()
		c.vp.ZoomAt(x, y, dir)
	default:
		return nil
	}
	return c.redraw()
}

// viewCenter returns the screen position of the middle of the canvas
// element.
func (c *Controller) viewCenter() (float64, float64) {
	w, h := c.vp.Geometry().CanvasSize()
	dx, dy := c.vp.DeviceScale()
	return float64(w) / dx / 2, float64(h) / dy / 2
}
