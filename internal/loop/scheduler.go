package loop

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs a callback once at the next frame boundary. A callback
// that wants to keep running must schedule itself again.
type Scheduler interface {
	Schedule(fn func()) Handle
	Cancel(h Handle)
}

type queued struct {
	h  Handle
	fn func()
}

// FrameQueue is a Scheduler driven by the host: each call to RunPending
// runs the callbacks queued before it. Callbacks scheduled while running
// wait for the next RunPending.
type FrameQueue struct {
	next    Handle
	pending []queued
	running []queued
}

// Schedule queues fn for the next RunPending.
func (q *FrameQueue) Schedule(fn func()) Handle {
	q.next++
	q.pending = append(q.pending, queued{h: q.next, fn: fn})
	return q.next
}

// Cancel drops the callback for h if it has not run yet.
func (q *FrameQueue) Cancel(h Handle) {
	for i, item := range q.pending {
		if item.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i, item := range q.running {
		if item.h == h {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting to run.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// RunPending runs every callback queued before the call and reports how
// many ran.
func (q *FrameQueue) RunPending() int {
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		if fn := q.running[i].fn; fn != nil {
			fn()
			ran++
		}
	}
	q.running = q.running[:0]
	return ran
}
