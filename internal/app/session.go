package app

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"lifeview/internal/core"
	"lifeview/internal/input"
	"lifeview/internal/logging"
	"lifeview/internal/loop"
	"lifeview/internal/render"
	"lifeview/internal/view"
)

// SessionOptions carries host hooks for a Session.
type SessionOptions struct {
	Logger *slog.Logger
	// Now is the frame clock's time source; nil uses time.Now.
	Now func() time.Time
	// AfterDraw runs after every successful redraw, e.g. to present a
	// terminal screen.
	AfterDraw func()
}

// Session is one viewer: an engine, the viewport and renderer that show it
// on a surface, the input controller, and the animation loop. All methods
// must be called from the host's event thread.
type Session struct {
	cfg Config
	log *slog.Logger

	engine   core.Engine
	vp       *view.Viewport
	renderer *render.Renderer
	surface  render.Surface

	queue *loop.FrameQueue
	loop  *loop.Loop
	panel *Panel
	input *input.Controller
	rng   *core.RNG

	afterDraw func()
	quit      bool
	closed    bool
}

// NewSession builds the engine named by cfg, fills it at random, draws the
// first frame onto surface and, unless cfg.Paused, starts the animation.
// surface must be backed by at least cfg.Geometry().CanvasSize() pixels.
func NewSession(cfg Config, surface render.Surface, opts SessionOptions) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	geom := cfg.Geometry()
	size := core.Size{W: geom.Width, H: geom.Height}
	engine := core.Engines()[cfg.Engine](size, cfg.Options)
	if got := engine.Size(); got != size {
		return nil, fmt.Errorf("%w: engine %q built a %dx%d grid, want %dx%d",
			ErrInvalidConfig, cfg.Engine, got.W, got.H, size.W, size.H)
	}
	palette, err := cfg.Palette()
	if err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		log:       logging.OrNop(opts.Logger),
		engine:    engine,
		vp:        view.NewViewport(geom),
		renderer:  render.NewRenderer(geom, palette),
		surface:   surface,
		queue:     &loop.FrameQueue{},
		panel:     NewPanel(cfg.Steps, cfg.TPS),
		rng:       core.NewRNG(cfg.Seed),
		afterDraw: opts.AfterDraw,
	}
	s.vp.SetSensitivity(cfg.ZoomSensitivity)
	s.vp.SetMinScale(cfg.MinScale)
	s.loop = loop.New(loop.Config{
		Scheduler: s.queue,
		Engine:    engine,
		Draw:      s.Redraw,
		Clock:     loop.NewFrameClock(opts.Now),
		Controls:  s.panel,
		Logger:    s.log,
	})
	s.input, err = input.NewController(s.vp, engine, s, s.Redraw, cfg.InputOptions())
	if err != nil {
		return nil, err
	}

	engine.Randomize(s.rng.Source().Int64())
	if err := s.Redraw(); err != nil {
		return nil, err
	}
	if !cfg.Paused {
		s.loop.Play()
	}
	s.log.Info("session started", "engine", engine.Name(), "width", size.W, "height", size.H, "playing", s.loop.Running())
	return s, nil
}

// Config returns the configuration the session was built from, updated by
// ApplyConfig.
func (s *Session) Config() Config { return s.cfg }

// Engine returns the simulation engine.
func (s *Session) Engine() core.Engine { return s.engine }

// Viewport returns the pan/zoom state.
func (s *Session) Viewport() *view.Viewport { return s.vp }

// Renderer returns the grid renderer.
func (s *Session) Renderer() *render.Renderer { return s.renderer }

// Panel returns the page-control values.
func (s *Session) Panel() *Panel { return s.panel }

// Loop returns the animation loop.
func (s *Session) Loop() *loop.Loop { return s.loop }

// Input returns the input controller.
func (s *Session) Input() *input.Controller { return s.input }

// RunFrame runs the animation callbacks due at this host frame. Hosts call
// it once per display refresh.
func (s *Session) RunFrame() int {
	if s.closed {
		return 0
	}
	return s.queue.RunPending()
}

// Redraw renders the current cell buffer under the current transform.
func (s *Session) Redraw() error {
	if err := s.renderer.Render(s.surface, s.vp, s.engine.Cells()); err != nil {
		return err
	}
	if s.afterDraw != nil {
		s.afterDraw()
	}
	return nil
}

// Play starts the animation.
func (s *Session) Play() { s.loop.Play() }

// Pause stops the animation after the frame in progress.
func (s *Session) Pause() { s.loop.Pause() }

// TogglePlay switches between playing and paused.
func (s *Session) TogglePlay() { s.loop.Toggle() }

// Step advances one generation while paused.
func (s *Session) Step() error { return s.loop.Step() }

// Randomize gives every cell an independent random state and redraws.
func (s *Session) Randomize() error {
	s.engine.Randomize(s.rng.Source().Int64())
	return s.Redraw()
}

// Clear kills every cell and redraws.
func (s *Session) Clear() error {
	s.engine.Clear()
	return s.Redraw()
}

// Quit asks the host to end the session.
func (s *Session) Quit() { s.quit = true }

// Done reports whether Quit was requested.
func (s *Session) Done() bool { return s.quit }

// Err returns the error that stopped the animation, if any.
func (s *Session) Err() error { return s.loop.Err() }

// Status returns the play/pause label and the FPS readout.
func (s *Session) Status() (label, fps string) {
	return s.panel.PlayLabel(), s.panel.FPS()
}

// Hover reports the cell under a screen position.
func (s *Session) Hover(x, y float64) (row, col int, inside bool) {
	return s.vp.Locate(x, y)
}

// Close stops the animation and drops pending frames. It is safe to call
// more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.loop.Pause()
	s.input.Cancel()
	s.closed = true
	s.log.Info("session closed", "frames", s.loop.Frames())
}

// ApplyConfig applies the session-mutable fields of next: colors, steps,
// frame rate, zoom sensitivity and pan button. Grid geometry and engine selection are
// fixed per session, so changes to them are logged and ignored.
func (s *Session) ApplyConfig(next Config) error {
	if err := next.Validate(); err != nil {
		return err
	}
	palette, err := next.Palette()
	if err != nil {
		return err
	}
	pan, err := next.Button()
	if err != nil {
		return err
	}
	if next.Geometry() != s.cfg.Geometry() || next.Engine != s.cfg.Engine {
		s.log.Warn("config change needs a new session; ignoring geometry and engine",
			"engine", next.Engine, "width", next.Width, "height", next.Height)
	}
	s.renderer.SetPalette(palette)
	s.panel.SetSteps(next.Steps)
	s.panel.SetTPS(next.TPS)
	s.vp.SetSensitivity(next.ZoomSensitivity)
	s.input.SetPanButton(pan)

	s.cfg.Colors = next.Colors
	s.cfg.Steps = next.Steps
	s.cfg.TPS = next.TPS
	s.cfg.ZoomSensitivity = next.ZoomSensitivity
	s.cfg.PanButton = next.PanButton
	return s.Redraw()
}

const (
	paramSteps = "steps"
	paramTPS   = "tps"
	paramZoom  = "zoom"
)

// ParameterControls lists the panel inputs adjustable from a HUD.
func (s *Session) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: paramSteps, Label: "Steps/frame", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
		{Key: paramTPS, Label: "Frames/sec", Type: core.ParamTypeInt, Step: 5, Min: 1, Max: 240, HasMin: true, HasMax: true},
		{Key: paramZoom, Label: "Zoom step", Type: core.ParamTypeFloat, Step: 0.05, Min: 0.05, Max: 1, HasMin: true, HasMax: true},
	}
}

// Parameters reports the current value of each control.
func (s *Session) Parameters() []core.Parameter {
	return []core.Parameter{
		{Key: paramSteps, Value: float64(s.panel.StepsPerFrame())},
		{Key: paramTPS, Value: float64(s.panel.TPS())},
		{Key: paramZoom, Value: s.vp.Sensitivity()},
	}
}

// SetIntParameter updates an integer panel input.
func (s *Session) SetIntParameter(key string, value int) bool {
	ctrl, ok := s.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	value = int(ctrl.Clamp(float64(value)))
	switch key {
	case paramSteps:
		s.panel.SetSteps(value)
	case paramTPS:
		s.panel.SetTPS(value)
	}
	return true
}

// SetFloatParameter updates a floating point panel input.
func (s *Session) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := s.control(key, core.ParamTypeFloat)
	if !ok || math.IsNaN(value) {
		return false
	}
	s.vp.SetSensitivity(ctrl.Clamp(value))
	return true
}

func (s *Session) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range s.ParameterControls() {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}
