// Package term hosts a viewer session in a terminal.
//
// The canvas is a raster surface; each terminal cell shows two vertically
// stacked canvas pixels using an upper half block, so the device scale is
// one column by two pixel rows. The view starts at, and resets to, a zoom of
// homeZoom, which gives every canvas pixel a whole character row and two
// columns. The bottom screen row is a status line.
package term

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/sync/errgroup"

	"lifeview/internal/app"
	"lifeview/internal/input"
	"lifeview/internal/logging"
	"lifeview/internal/surface/raster"
)

const (
	halfBlock = '▀'
	homeZoom  = 2
)

// Host runs one session on a tcell screen.
type Host struct {
	screen  tcell.Screen
	canvas  *raster.Surface
	session *app.Session
	log     *slog.Logger

	reload <-chan app.Config
	held   tcell.ButtonMask
	tps    int
}

// New initialises screen and starts a session drawn onto it.
func New(screen tcell.Screen, cfg app.Config, log *slog.Logger) (*Host, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse()
	screen.Clear()

	w, hgt := cfg.Geometry().CanvasSize()
	h := &Host{
		screen: screen,
		canvas: raster.New(w*homeZoom, hgt*homeZoom),
		log:    logging.OrNop(log),
	}
	s, err := app.NewSession(cfg, h.canvas, app.SessionOptions{Logger: log, AfterDraw: h.present})
	if err != nil {
		screen.Fini()
		return nil, err
	}
	h.session = s
	vp := s.Viewport()
	vp.SetDeviceScale(1, 2)
	vp.SetHomeScale(homeZoom)
	vp.Reset()
	h.tps = s.Panel().TPS()
	if err := s.Redraw(); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// Session returns the hosted session.
func (h *Host) Session() *app.Session { return h.session }

// WatchConfig makes Run apply configs received on ch.
func (h *Host) WatchConfig(ch <-chan app.Config) { h.reload = ch }

// Close ends the session and restores the terminal.
func (h *Host) Close() {
	h.session.Close()
	h.canvas.Close()
	h.screen.Fini()
}

// Run pumps terminal events and animation frames until the user quits,
// ctx is cancelled or the animation fails.
func (h *Host) Run(ctx context.Context) error {
	events := make(chan tcell.Event)
	stop := make(chan struct{})
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-stop:
				return nil
			}
		}
	})
	g.Go(func() error {
		defer func() {
			close(stop)
			h.screen.PostEvent(tcell.NewEventInterrupt(nil))
		}()
		return h.pump(ctx, events)
	})
	return g.Wait()
}

func (h *Host) pump(ctx context.Context, events <-chan tcell.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.tps))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if err := h.handle(ev); err != nil {
				return err
			}
		case cfg, ok := <-h.reload:
			if !ok {
				h.reload = nil
				continue
			}
			if err := h.session.ApplyConfig(cfg); err != nil {
				h.log.Warn("config not applied", "err", err)
			}
		case <-ticker.C:
			h.session.RunFrame()
			if tps := h.session.Panel().TPS(); tps != h.tps {
				h.tps = tps
				ticker.Reset(time.Second / time.Duration(tps))
			}
		}
		if h.session.Done() {
			return nil
		}
		if err := h.session.Err(); err != nil {
			return err
		}
	}
}

func (h *Host) handle(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.key(ev.Key(), ev.Rune(), ev.Modifiers())
	case *tcell.EventMouse:
		x, y := ev.Position()
		return h.mouse(x, y, ev.Buttons(), ev.Modifiers())
	case *tcell.EventResize:
		h.screen.Sync()
		h.present()
	}
	return nil
}

var runeKeys = map[rune]input.Key{
	' ': input.KeySpace,
	'n': input.KeyN,
	'r': input.KeyR,
	'c': input.KeyC,
	'0': input.Key0,
	'q': input.KeyQ,
	'+': input.KeyPlus,
	'=': input.KeyPlus,
	'-': input.KeyMinus,
	'h': input.KeyLeft,
	'l': input.KeyRight,
	'k': input.KeyUp,
	'j': input.KeyDown,
}

var specialKeys = map[tcell.Key]input.Key{
	tcell.KeyEscape: input.KeyEscape,
	tcell.KeyLeft:   input.KeyLeft,
	tcell.KeyRight:  input.KeyRight,
	tcell.KeyUp:     input.KeyUp,
	tcell.KeyDown:   input.KeyDown,
}

func (h *Host) key(k tcell.Key, r rune, _ tcell.ModMask) error {
	if k == tcell.KeyCtrlC {
		h.session.Quit()
		return nil
	}
	ik, ok := specialKeys[k]
	if k == tcell.KeyRune {
		ik, ok = runeKeys[r]
	}
	if !ok {
		return nil
	}
	err := h.session.Input().Key(ik)
	h.present()
	return err
}

var mouseButtons = []struct {
	mask   tcell.ButtonMask
	button input.Button
}{
	{tcell.Button1, input.ButtonPrimary},
	{tcell.Button2, input.ButtonSecondary},
	{tcell.Button3, input.ButtonMiddle},
}

// mouse turns tcell's held-button snapshots into press, move and release
// events. Positions are taken at the centre of the terminal cell.
func (h *Host) mouse(x, y int, btns tcell.ButtonMask, mods tcell.ModMask) error {
	ctrl := h.session.Input()
	sx, sy := float64(x)+0.5, float64(y)+0.5

	switch {
	case btns&tcell.WheelUp != 0:
		return ctrl.Wheel(sx, sy, -1)
	case btns&tcell.WheelDown != 0:
		return ctrl.Wheel(sx, sy, 1)
	}

	var im input.Modifiers
	if mods&tcell.ModShift != 0 {
		im |= input.ModShift
	}
	if mods&tcell.ModCtrl != 0 {
		im |= input.ModCtrl
	}
	if mods&tcell.ModAlt != 0 {
		im |= input.ModAlt
	}

	prev := h.held
	h.held = btns & (tcell.Button1 | tcell.Button2 | tcell.Button3)
	for _, b := range mouseButtons {
		was, is := prev&b.mask != 0, h.held&b.mask != 0
		switch {
		case is && !was:
			ctrl.Press(sx, sy, b.button)
		case was && !is:
			if err := ctrl.Release(sx, sy, b.button, im); err != nil {
				return err
			}
		}
	}
	if ctrl.Dragging() {
		return ctrl.Move(sx, sy)
	}
	return nil
}

// present copies the canvas to the screen and redraws the status line.
func (h *Host) present() {
	cols, rows := h.screen.Size()
	canvasRows := rows - 1
	for r := 0; r < canvasRows; r++ {
		for c := 0; c < cols; c++ {
			if c >= h.canvas.Width() || 2*r >= h.canvas.Height() {
				h.screen.SetContent(c, r, ' ', nil, tcell.StyleDefault)
				continue
			}
			top := h.canvas.At(c, 2*r)
			bottom := h.canvas.At(c, 2*r+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B)))
			if 2*r+1 < h.canvas.Height() {
				style = style.Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			}
			h.screen.SetContent(c, r, halfBlock, nil, style)
		}
	}
	if canvasRows >= 0 {
		h.drawStatus(canvasRows, cols)
	}
	h.screen.Show()
}

func (h *Host) drawStatus(row, cols int) {
	line := "space play  n step  r random  c clear  0 reset  q quit"
	if h.session != nil {
		p := h.session.Panel()
		fps := strings.SplitN(p.FPS(), "\n", 3)
		latest := ""
		if len(fps) > 1 {
			latest = strings.TrimPrefix(fps[1], "latest = ")
		}
		line = fmt.Sprintf("[%s] steps %d  fps %s  zoom %.2f  |  %s",
			p.PlayLabel(), p.StepsPerFrame(), latest, h.session.Viewport().Scale(), line)
	}
	style := tcell.StyleDefault.Reverse(true)
	col := 0
	for _, r := range line {
		if col >= cols {
			break
		}
		h.screen.SetContent(col, row, r, nil, style)
		col++
	}
	for ; col < cols; col++ {
		h.screen.SetContent(col, row, ' ', nil, style)
	}
}
