package loop

import (
	"fmt"
	"math"
	"time"
)

// WindowSize is the number of FPS samples the frame clock retains.
const WindowSize = 100

// Stats summarises the retained FPS samples.
type Stats struct {
	Latest  float64
	Average float64
	Min     float64
	Max     float64
	Samples int
}

// String formats the stats as the multi-line FPS readout.
func (s Stats) String() string {
	return fmt.Sprintf("Frames per Second:\nlatest = %.0f\navg = %.0f\nmin = %.0f\nmax = %.0f",
		math.Round(s.Latest), math.Round(s.Average), math.Round(s.Min), math.Round(s.Max))
}

// FrameClock estimates frame rate over a rolling window of samples.
type FrameClock struct {
	now  func() time.Time
	last time.Time

	window [WindowSize]float64
	head   int
	n      int
	latest float64
}

// NewFrameClock starts a clock at now(). A nil now uses time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now, last: now()}
}

// Sample records the time since the previous sample as an instantaneous
// FPS value and returns the updated stats. Non-positive intervals advance
// the timestamp without recording a sample.
func (c *FrameClock) Sample() Stats {
	now := c.now()
	delta := now.Sub(c.last)
	c.last = now
	if delta > 0 {
		c.push(float64(time.Second) / float64(delta))
	}
	return c.Stats()
}

func (c *FrameClock) push(fps float64) {
	c.latest = fps
	idx := (c.head + c.n) % WindowSize
	if c.n == WindowSize {
		c.head = (c.head + 1) % WindowSize
	} else {
		c.n++
	}
	c.window[idx] = fps
}

// Stats recomputes the summary from the retained window.
func (c *FrameClock) Stats() Stats {
	if c.n == 0 {
		return Stats{}
	}
	s := Stats{Latest: c.latest, Min: math.Inf(1), Max: math.Inf(-1), Samples: c.n}
	sum := 0.0
	for i := 0; i < c.n; i++ {
		v := c.window[(c.head+i)%WindowSize]
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Average = sum / float64(c.n)
	return s
}

// Window returns the retained samples, oldest first.
func (c *FrameClock) Window() []float64 {
	out := make([]float64, c.n)
	for i := range out {
		out[i] = c.window[(c.head+i)%WindowSize]
	}
	return out
}
