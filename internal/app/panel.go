package app

// Panel holds the values of the page controls: the play/pause button label,
// the steps-per-frame and frame-rate inputs, and the FPS readout. Hosts
// draw it; the loop and session read and write it.
type Panel struct {
	steps   int
	tps     int
	playing bool
	fps     string
}

// NewPanel returns a paused panel.
func NewPanel(steps, tps int) *Panel {
	p := &Panel{}
	p.SetSteps(steps)
	p.SetTPS(tps)
	return p
}

// StepsPerFrame returns the number of engine steps per animation frame.
func (p *Panel) StepsPerFrame() int { return p.steps }

// SetSteps updates the steps-per-frame input. Negative values become 0.
func (p *Panel) SetSteps(n int) {
	if n < 0 {
		n = 0
	}
	p.steps = n
}

// TPS returns the requested animation frame rate.
func (p *Panel) TPS() int { return p.tps }

// SetTPS updates the frame rate input. Values below 1 become 1.
func (p *Panel) SetTPS(n int) {
	if n < 1 {
		n = 1
	}
	p.tps = n
}

// SetPlaying records the loop state for the play/pause button.
func (p *Panel) SetPlaying(playing bool) { p.playing = playing }

// Playing reports whether the loop is running.
func (p *Panel) Playing() bool { return p.playing }

// PlayLabel is the text of the play/pause button: the action a press
// would take.
func (p *Panel) PlayLabel() string {
	if p.playing {
		return "Pause"
	}
	return "Play"
}

// SetFPS replaces the FPS readout.
func (p *Panel) SetFPS(summary string) { p.fps = summary }

// FPS returns the FPS readout.
func (p *Panel) FPS() string { return p.fps }
