// Package loop drives the tick-and-redraw animation cycle.
//
// Everything here runs on the host's single event thread: the loop is a
// self-rescheduling callback, never a goroutine.
package loop

import (
	"errors"
	"log/slog"

	"lifeview/internal/logging"
	"lifeview/internal/render"
)

// Ticker advances a simulation by one step.
type Ticker interface {
	Tick()
}

// Controls is the page-control surface the loop reads and writes.
type Controls interface {
	StepsPerFrame() int
	SetPlaying(playing bool)
	SetFPS(summary string)
}

// Config wires a Loop to its collaborators.
type Config struct {
	Scheduler Scheduler
	Engine    Ticker
	Draw      func() error
	Clock     *FrameClock
	Controls  Controls
	Logger    *slog.Logger
}

// Loop is the Stopped/Running animation state machine.
type Loop struct {
	sched    Scheduler
	engine   Ticker
	draw     func() error
	clock    *FrameClock
	controls Controls
	log      *slog.Logger

	handle  Handle
	running bool
	inFrame bool
	err     error
	frames  uint64
}

// New builds a stopped loop.
func New(cfg Config) *Loop {
	clock := cfg.Clock
	if clock == nil {
		clock = NewFrameClock(nil)
	}
	return &Loop{
		sched:    cfg.Scheduler,
		engine:   cfg.Engine,
		draw:     cfg.Draw,
		clock:    clock,
		controls: cfg.Controls,
		log:      logging.OrNop(cfg.Logger),
	}
}

// Running reports whether a frame is scheduled or in progress.
func (l *Loop) Running() bool { return l.running }

// Frames returns the number of animation frames completed.
func (l *Loop) Frames() uint64 { return l.frames }

// Clock returns the loop's frame clock.
func (l *Loop) Clock() *FrameClock { return l.clock }

// Err returns the error that stopped the loop, if any.
func (l *Loop) Err() error { return l.err }

// Play starts the animation. It is a no-op while already running.
func (l *Loop) Play() {
	if l.running {
		return
	}
	l.running = true
	l.err = nil
	l.controls.SetPlaying(true)
	if !l.inFrame {
		l.handle = l.sched.Schedule(l.frame)
	}
}

// Pause stops the animation at the next frame boundary.
func (l *Loop) Pause() {
	if !l.running {
		return
	}
	l.running = false
	if l.handle != 0 {
		l.sched.Cancel(l.handle)
		l.handle = 0
	}
	l.controls.SetPlaying(false)
}

// Toggle switches between playing and paused.
func (l *Loop) Toggle() {
	if l.running {
		l.Pause()
		return
	}
	l.Play()
}

// Step advances the engine once and redraws. It is ignored while running.
func (l *Loop) Step() error {
	if l.running {
		return nil
	}
	l.engine.Tick()
	return l.draw()
}

func (l *Loop) frame() {
	l.handle = 0
	l.inFrame = true

	l.controls.SetFPS(l.clock.Sample().String())
	steps := l.controls.StepsPerFrame()
	for i := 0; i < steps; i++ {
		l.engine.Tick()
	}
	if err := l.draw(); err != nil {
		l.fail(err)
	}
	l.frames++

	l.inFrame = false
	if l.running {
		l.handle = l.sched.Schedule(l.frame)
	}
}

func (l *Loop) fail(err error) {
	if errors.Is(err, render.ErrBufferSize) {
		l.log.Warn("frame skipped", "err", err)
		return
	}
	l.log.Error("animation stopped", "err", err)
	l.err = err
	l.Pause()
}
