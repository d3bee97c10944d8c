package loop

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

func TestWindowKeepsLatestHundred(t *testing.T) {
	ft := &fakeTime{t: time.Unix(100, 0)}
	c := NewFrameClock(ft.now)

	var all []float64
	for i := 1; i <= 150; i++ {
		d := time.Duration(i) * time.Millisecond
		ft.t = ft.t.Add(d)
		c.Sample()
		all = append(all, float64(time.Second)/float64(d))
	}

	window := c.Window()
	require.Len(t, window, WindowSize)
	assert.Equal(t, all[50:], window)

	sum, lo, hi := 0.0, math.Inf(1), math.Inf(-1)
	for _, v := range all[50:] {
		sum += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	s := c.Stats()
	assert.Equal(t, WindowSize, s.Samples)
	assert.InDelta(t, sum/WindowSize, s.Average, 1e-9)
	assert.Equal(t, lo, s.Min)
	assert.Equal(t, hi, s.Max)
	assert.Equal(t, all[149], s.Latest)
}

func TestZeroDeltaRecordsNothing(t *testing.T) {
	ft := &fakeTime{t: time.Unix(5, 0)}
	c := NewFrameClock(ft.now)
	s := c.Sample()
	assert.Zero(t, s.Samples)

	ft.t = ft.t.Add(10 * time.Millisecond)
	s = c.Sample()
	assert.Equal(t, 1, s.Samples)
	assert.InDelta(t, 100, s.Latest, 1e-9)
}

func TestStatsString(t *testing.T) {
	s := Stats{Latest: 59.6, Average: 60.2, Min: 30.49, Max: 120.5}
	assert.Equal(t, "Frames per Second:\nlatest = 60\navg = 60\nmin = 30\nmax = 121", s.String())
}

func TestFrameQueueDefersSelfScheduling(t *testing.T) {
	q := &FrameQueue{}
	runs := 0
	var fn func()
	fn = func() {
		runs++
		q.Schedule(fn)
	}
	q.Schedule(fn)
	assert.Equal(t, 1, q.RunPending())
	assert.Equal(t, 1, q.RunPending())
	assert.Equal(t, 2, runs)
	assert.Equal(t, 1, q.Pending())
}

func TestFrameQueueCancel(t *testing.T) {
	q := &FrameQueue{}
	ran := false
	h := q.Schedule(func() { ran = true })
	assert.NotZero(t, h)
	q.Cancel(h)
	assert.Zero(t, q.RunPending())
	assert.False(t, ran)
}
