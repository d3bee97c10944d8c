package app

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifeview/internal/core"
	"lifeview/internal/input"
	"lifeview/internal/render"
	"lifeview/internal/sims/life"
	"lifeview/internal/surface/raster"
)

type countingEngine struct {
	*life.Life
	ticks int
}

func (c *countingEngine) Tick() {
	c.ticks++
	c.Life.Tick()
}

type shortEngine struct{ *life.Life }

func (shortEngine) Cells() []byte { return nil }

func init() {
	core.Register("counting", func(size core.Size, _ map[string]string) core.Engine {
		return &countingEngine{Life: life.New(size.W, size.H)}
	})
	core.Register("short", func(size core.Size, _ map[string]string) core.Engine {
		return shortEngine{life.New(size.W, size.H)}
	})
	core.Register("tiny", func(core.Size, map[string]string) core.Engine {
		return life.New(2, 2)
	})
}

func testConfig() Config {
	cfg := NewConfig()
	cfg.Width, cfg.Height = 8, 8
	cfg.Paused = true
	return *cfg
}

func newTestSession(t *testing.T, cfg Config) (*Session, *raster.Surface) {
	t.Helper()
	w, h := cfg.Geometry().CanvasSize()
	surf := raster.New(w, h)
	s, err := NewSession(cfg, surf, SessionOptions{})
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Close()
		surf.Close()
	})
	return s, surf
}

func TestClickTogglesExactlyOneCell(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.Clear())

	x, y := s.Viewport().GridToScreen(3, 5)
	s.Input().Press(x, y, 0)
	require.NoError(t, s.Input().Release(x, y, 0, 0))

	e := s.Engine().(*life.Life)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			assert.Equal(t, row == 3 && col == 5, e.Alive(row, col), "cell (%d,%d)", row, col)
		}
	}

	s.Input().Press(x, y, 0)
	require.NoError(t, s.Input().Release(x, y, 0, 0))
	assert.Equal(t, make([]byte, 8), e.Cells())
}

func TestClickIsVisibleWithoutTick(t *testing.T) {
	s, surf := newTestSession(t, testConfig())
	require.NoError(t, s.Clear())
	p := render.DefaultPalette()

	x, y := s.Viewport().GridToScreen(3, 5)
	require.NoError(t, s.Input().Click(x, y, 0))
	assert.InDelta(t, float64(p.Alive.R), float64(surf.At(int(x), int(y)).R), 2)
	assert.Zero(t, s.Loop().Frames())
}

func TestStepsPerFrame(t *testing.T) {
	cfg := testConfig()
	cfg.Engine = "counting"
	cfg.Steps = 3
	cfg.Paused = false
	s, _ := newTestSession(t, cfg)
	e := s.Engine().(*countingEngine)

	require.True(t, s.Loop().Running())
	assert.Equal(t, 1, s.RunFrame())
	assert.Equal(t, 3, e.ticks)
	assert.Equal(t, 1, s.RunFrame())
	assert.Equal(t, 6, e.ticks)

	s.Panel().SetSteps(0)
	s.RunFrame()
	assert.Equal(t, 6, e.ticks)
	assert.Equal(t, uint64(3), s.Loop().Frames())
}

func TestStartsPlayingAndCloses(t *testing.T) {
	cfg := testConfig()
	cfg.Paused = false
	s, _ := newTestSession(t, cfg)
	assert.True(t, s.Loop().Running())
	assert.Equal(t, "Pause", s.Panel().PlayLabel())

	s.Close()
	assert.False(t, s.Loop().Running())
	assert.Zero(t, s.RunFrame())
	s.Close()
}

func TestPauseDuringFramesNeverDoubleSchedules(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	s.Play()
	s.Pause()
	s.Play()
	assert.Equal(t, 1, s.RunFrame())
	s.TogglePlay()
	assert.Zero(t, s.RunFrame())
}

func TestStepOnlyWhilePaused(t *testing.T) {
	cfg := testConfig()
	cfg.Engine = "counting"
	s, _ := newTestSession(t, cfg)
	e := s.Engine().(*countingEngine)

	require.NoError(t, s.Step())
	assert.Equal(t, 1, e.ticks)
	s.Play()
	require.NoError(t, s.Step())
	assert.Equal(t, 1, e.ticks)
}

func TestShortBufferFailsFirstDraw(t *testing.T) {
	cfg := testConfig()
	cfg.Engine = "short"
	w, h := cfg.Geometry().CanvasSize()
	_, err := NewSession(cfg, raster.New(w, h), SessionOptions{})
	assert.True(t, errors.Is(err, render.ErrBufferSize))
}

func TestEngineSizeMismatch(t *testing.T) {
	cfg := testConfig()
	cfg.Engine = "tiny"
	_, err := NewSession(cfg, raster.New(1, 1), SessionOptions{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestRandomizeAndClear(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.Clear())
	assert.Equal(t, make([]byte, 8), s.Engine().Cells())

	require.NoError(t, s.Randomize())
	first := append([]byte(nil), s.Engine().Cells()...)
	assert.NotEqual(t, make([]byte, 8), first)
	require.NoError(t, s.Randomize())
	assert.NotEqual(t, first, s.Engine().Cells(), "each randomize draws a new state")
}

func TestFPSReadout(t *testing.T) {
	cfg := testConfig()
	cfg.Paused = false
	now := time.Unix(0, 0)
	w, h := cfg.Geometry().CanvasSize()
	surf := raster.New(w, h)
	defer surf.Close()
	s, err := NewSession(cfg, surf, SessionOptions{Now: func() time.Time { return now }})
	require.NoError(t, err)
	defer s.Close()

	s.RunFrame()
	now = now.Add(20 * time.Millisecond)
	s.RunFrame()
	assert.Equal(t, "Frames per Second:\nlatest = 50\navg = 50\nmin = 50\nmax = 50", s.Panel().FPS())
}

func TestParameters(t *testing.T) {
	s, _ := newTestSession(t, testConfig())

	assert.True(t, s.SetIntParameter("steps", 500))
	assert.Equal(t, 64, s.Panel().StepsPerFrame())
	assert.True(t, s.SetIntParameter("tps", 0))
	assert.Equal(t, 1, s.Panel().TPS())
	assert.True(t, s.SetFloatParameter("zoom", 0.25))
	assert.Equal(t, 0.25, s.Viewport().Sensitivity())
	assert.False(t, s.SetIntParameter("zoom", 1))
	assert.False(t, s.SetFloatParameter("nope", 1))

	got := map[string]float64{}
	for _, p := range s.Parameters() {
		got[p.Key] = p.Value
	}
	assert.Equal(t, map[string]float64{"steps": 64, "tps": 1, "zoom": 0.25}, got)
	assert.Len(t, s.ParameterControls(), 3)
}

func TestApplyConfig(t *testing.T) {
	s, surf := newTestSession(t, testConfig())
	require.NoError(t, s.Clear())

	next := testConfig()
	next.Colors.Dead = "#ff0000"
	next.Steps = 7
	next.TPS = 30
	next.ZoomSensitivity = 0.5
	next.Width = 99
	require.NoError(t, s.ApplyConfig(next))

	assert.Equal(t, 7, s.Panel().StepsPerFrame())
	assert.Equal(t, 30, s.Panel().TPS())
	assert.Equal(t, 0.5, s.Viewport().Sensitivity())
	assert.Equal(t, 8, s.Config().Width, "geometry is fixed per session")
	x, y := s.Viewport().GridToScreen(0, 0)
	assert.InDelta(t, 255, float64(surf.At(int(x), int(y)).R), 2)

	bad := testConfig()
	bad.PanButton = "thumb"
	assert.ErrorIs(t, s.ApplyConfig(bad), ErrInvalidConfig)

	bad = testConfig()
	bad.Colors.Alive = "purple"
	assert.ErrorIs(t, s.ApplyConfig(bad), ErrInvalidConfig)
}

func TestPanel(t *testing.T) {
	p := NewPanel(-2, 0)
	assert.Equal(t, 0, p.StepsPerFrame())
	assert.Equal(t, 1, p.TPS())
	assert.Equal(t, "Play", p.PlayLabel())
	p.SetPlaying(true)
	assert.True(t, p.Playing())
	assert.Equal(t, "Pause", p.PlayLabel())
}

func TestApplyConfigSwitchesPanButton(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	require.NoError(t, s.Clear())
	ctrl := s.Input()

	drag := func() {
		ctrl.Press(10, 10, input.ButtonSecondary)
		require.NoError(t, ctrl.Move(60, 40))
		require.NoError(t, ctrl.Release(60, 40, input.ButtonSecondary, 0))
	}

	drag()
	x, y := s.Viewport().Offset()
	assert.Zero(t, x, "secondary button does not pan with the default config")
	assert.Zero(t, y)

	next := testConfig()
	next.PanButton = "right"
	require.NoError(t, s.ApplyConfig(next))
	assert.Equal(t, "right", s.Config().PanButton)
	assert.True(t, ctrl.SuppressContextMenu())

	drag()
	x, y = s.Viewport().Offset()
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 30.0, y)
	assert.Equal(t, make([]byte, 8), s.Engine().Cells(), "a pan must not edit")
}

func TestHoverReportsCellUnderPointer(t *testing.T) {
	s, _ := newTestSession(t, testConfig())
	s.Viewport().PanBy(7, 3)

	x, y := s.Viewport().GridToScreen(2, 3)
	row, col, inside := s.Hover(x, y)
	assert.True(t, inside)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	_, _, inside = s.Hover(-20, y)
	assert.False(t, inside)
}
