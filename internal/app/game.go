//go:build ebiten

package app

import (
	"errors"
	"image"
	"log/slog"

	"lifeview/internal/input"
	"lifeview/internal/logging"
	"lifeview/internal/surface/screen"
	"lifeview/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const maxView = 960

// Game adapts a Session to the ebiten.Game interface. The canvas is drawn
// 1:1 at the top left of the window; the HUD sits to its right.
type Game struct {
	session *Session
	canvas  *screen.Surface
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *slog.Logger

	reload <-chan Config
	tps    int

	viewW, viewH int
}

var keyMap = map[ebiten.Key]input.Key{
	ebiten.KeySpace:      input.KeySpace,
	ebiten.KeyN:          input.KeyN,
	ebiten.KeyR:          input.KeyR,
	ebiten.KeyC:          input.KeyC,
	ebiten.KeyDigit0:     input.Key0,
	ebiten.KeyQ:          input.KeyQ,
	ebiten.KeyEscape:     input.KeyEscape,
	ebiten.KeyArrowLeft:  input.KeyLeft,
	ebiten.KeyArrowRight: input.KeyRight,
	ebiten.KeyArrowUp:    input.KeyUp,
	ebiten.KeyArrowDown:  input.KeyDown,
	ebiten.KeyEqual:      input.KeyPlus,
	ebiten.KeyMinus:      input.KeyMinus,
}

var mouseMap = []struct {
	ebiten ebiten.MouseButton
	button input.Button
}{
	{ebiten.MouseButtonLeft, input.ButtonPrimary},
	{ebiten.MouseButtonRight, input.ButtonSecondary},
	{ebiten.MouseButtonMiddle, input.ButtonMiddle},
}

// NewGame builds a session for cfg on an offscreen canvas.
func NewGame(cfg Config, log *slog.Logger) (*Game, error) {
	w, h := cfg.Geometry().CanvasSize()
	canvas := screen.New(w, h)
	s, err := NewSession(cfg, canvas, SessionOptions{Logger: log})
	if err != nil {
		return nil, err
	}
	return &Game{
		session: s,
		canvas:  canvas,
		hud:     ui.NewHUD(s, s.Engine().Name(), cfg.HUDWidth),
		overlay: ui.NewOverlay(s),
		log:     logging.OrNop(log),
		viewW:   min(w, maxView),
		viewH:   min(h, maxView),
	}, nil
}

// Session returns the hosted session.
func (g *Game) Session() *Session { return g.session }

// WatchConfig makes Update apply configs received on ch.
func (g *Game) WatchConfig(ch <-chan Config) { g.reload = ch }

// Run opens the window and blocks until it closes.
func (g *Game) Run() error {
	g.tps = g.session.Panel().TPS()
	ebiten.SetWindowTitle("lifeview - " + g.session.Engine().Name())
	ebiten.SetTPS(g.tps)
	ebiten.SetWindowSize(g.viewW+g.hud.Width(), g.viewH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(g)
	g.session.Close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Update handles input, config reloads and the animation frame.
func (g *Game) Update() error {
	if err := g.session.Err(); err != nil {
		return err
	}
	if g.session.Done() {
		return ebiten.Termination
	}
	g.applyReloads()

	for k, ik := range keyMap {
		if inpututil.IsKeyJustPressed(k) {
			if err := g.session.Input().Key(ik); err != nil {
				return err
			}
		}
	}
	mx, my := ebiten.CursorPosition()
	inView := mx >= 0 && my >= 0 && mx < g.viewW && my < g.viewH
	if err := g.pointer(float64(mx), float64(my), inView); err != nil {
		return err
	}
	if err := g.hud.Update(g.viewW); err != nil {
		return err
	}
	g.overlay.Update(mx, my, inView)

	g.session.RunFrame()
	if tps := g.session.Panel().TPS(); tps != g.tps {
		g.tps = tps
		ebiten.SetTPS(tps)
	}
	return nil
}

// pointer feeds mouse state to the controller. Presses and the wheel only
// count inside the view; moves and releases are forwarded anywhere so a
// drag always ends.
func (g *Game) pointer(x, y float64, inView bool) error {
	ctrl := g.session.Input()
	if _, dy := ebiten.Wheel(); dy != 0 && inView {
		if err := ctrl.Wheel(x, y, -dy); err != nil {
			return err
		}
	}
	var mods input.Modifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= input.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= input.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= input.ModAlt
	}
	for _, m := range mouseMap {
		if inpututil.IsMouseButtonJustPressed(m.ebiten) && inView {
			ctrl.Press(x, y, m.button)
		}
		if inpututil.IsMouseButtonJustReleased(m.ebiten) {
			if err := ctrl.Release(x, y, m.button, mods); err != nil {
				return err
			}
		}
	}
	if ctrl.Dragging() {
		return ctrl.Move(x, y)
	}
	return nil
}

func (g *Game) applyReloads() {
	for {
		select {
		case cfg, ok := <-g.reload:
			if !ok {
				g.reload = nil
				return
			}
			if err := g.session.ApplyConfig(cfg); err != nil {
				g.log.Warn("config not applied", "err", err)
			}
		default:
			return
		}
	}
}

// Draw blits the canvas, the overlay and the HUD.
func (g *Game) Draw(dst *ebiten.Image) {
	dst.Fill(g.session.Renderer().Palette().Background)
	view := dst.SubImage(image.Rect(0, 0, g.viewW, g.viewH)).(*ebiten.Image)
	view.DrawImage(g.canvas.Image(), nil)
	g.overlay.Draw(view)
	g.hud.Draw(dst, g.viewW, dst.Bounds().Dy())
}

// Layout tracks the window size; the view takes whatever the HUD leaves.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewW = max(outsideWidth-g.hud.Width(), 0)
	g.viewH = outsideHeight
	return outsideWidth, outsideHeight
}
