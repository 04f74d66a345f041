package breath

import "time"

// Subscription is returned by the Surface listener registrations. Remove
// unregisters the listener; calling it more than once is harmless.
type Subscription interface {
	Remove()
}

// FrameHandle identifies a pending frame request.
type FrameHandle uint64

// FrameFunc receives a monotonically increasing timestamp.
type FrameFunc func(timestamp time.Duration)

// PointerFunc receives pointer coordinates in viewport space.
type PointerFunc func(x, y float64)

// Surface is the presentation layer the widget is mounted on. All callbacks
// run on one goroutine and never concurrently with each other.
type Surface interface {
	Viewport() (width, height float64)
	OnResize(fn func(width, height float64)) Subscription

	OnPointerDown(fn PointerFunc) Subscription
	OnPointerMove(fn PointerFunc) Subscription
	OnPointerUp(fn PointerFunc) Subscription

	// RequestFrame schedules fn once, on the next display frame.
	RequestFrame(fn FrameFunc) FrameHandle
	CancelFrame(h FrameHandle)

	Draw(s Scene)
}
