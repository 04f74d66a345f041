package game

import (
	"time"

	"github.com/iburimskiy/box-breathing/internal/breath"
)

type frameRequest struct {
	handle breath.FrameHandle
	fn     breath.FrameFunc
}

// frameQueue holds one-shot frame callbacks. Callbacks requested while the
// queue is running are deferred to the next run, so a self-rescheduling
// callback fires exactly once per tick.
type frameQueue struct {
	pending []frameRequest
	running []frameRequest
	next    breath.FrameHandle
}

func (q *frameQueue) request(fn breath.FrameFunc) breath.FrameHandle {
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, fn: fn})
	return q.next
}

func (q *frameQueue) cancel(h breath.FrameHandle) {
	for i := range q.running {
		if q.running[i].handle == h {
			q.running[i].fn = nil
		}
	}
	for i := range q.pending {
		if q.pending[i].handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

func (q *frameQueue) len() int { return len(q.pending) }

// run fires every callback pending at call time, skipping any canceled
// meanwhile, and returns how many ran.
func (q *frameQueue) run(ts time.Duration) int {
	q.running, q.pending = q.pending, nil
	ran := 0
	for i := range q.running {
		if fn := q.running[i].fn; fn != nil {
			fn(ts)
			ran++
		}
	}
	q.running = nil
	return ran
}
