package breath

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSurface records registrations and lets tests drive events by hand.
type fakeSurface struct {
	w, h float64

	resize []func(float64, float64)
	down   []PointerFunc
	move   []PointerFunc
	up     []PointerFunc

	nextFrame FrameHandle
	frames    map[FrameHandle]FrameFunc
	canceled  []FrameHandle
	drawn     []Scene
}

func newFakeSurface(w, h float64) *fakeSurface {
	return &fakeSurface{w: w, h: h, frames: map[FrameHandle]FrameFunc{}}
}

type fakeSub struct{ remove func() }

func (s fakeSub) Remove() { s.remove() }

func subscribe[T any](list *[]T, fn T) Subscription {
	*list = append(*list, fn)
	idx := len(*list) - 1
	return fakeSub{remove: func() {
		var zero T
		(*list)[idx] = zero
	}}
}

func (s *fakeSurface) Viewport() (float64, float64) { return s.w, s.h }

func (s *fakeSurface) OnResize(fn func(float64, float64)) Subscription {
	return subscribe(&s.resize, fn)
}
func (s *fakeSurface) OnPointerDown(fn PointerFunc) Subscription { return subscribe(&s.down, fn) }
func (s *fakeSurface) OnPointerMove(fn PointerFunc) Subscription { return subscribe(&s.move, fn) }
func (s *fakeSurface) OnPointerUp(fn PointerFunc) Subscription   { return subscribe(&s.up, fn) }

func (s *fakeSurface) RequestFrame(fn FrameFunc) FrameHandle {
	s.nextFrame++
	s.frames[s.nextFrame] = fn
	return s.nextFrame
}

func (s *fakeSurface) CancelFrame(h FrameHandle) {
	s.canceled = append(s.canceled, h)
	delete(s.frames, h)
}

func (s *fakeSurface) Draw(sc Scene) { s.drawn = append(s.drawn, sc) }

// frame runs every pending frame callback once at ts.
func (s *fakeSurface) frame(ts time.Duration) {
	pending := s.frames
	s.frames = map[FrameHandle]FrameFunc{}
	for _, fn := range pending {
		fn(ts)
	}
}

func (s *fakeSurface) emitResize(w, h float64) {
	s.w, s.h = w, h
	for _, fn := range s.resize {
		if fn != nil {
			fn(w, h)
		}
	}
}

func emit(list []PointerFunc, x, y float64) {
	for _, fn := range list {
		if fn != nil {
			fn(x, y)
		}
	}
}

func (s *fakeSurface) listeners() int {
	n := 0
	for _, fn := range s.resize {
		if fn != nil {
			n++
		}
	}
	for _, l := range [][]PointerFunc{s.down, s.move, s.up} {
		for _, fn := range l {
			if fn != nil {
				n++
			}
		}
	}
	return n
}

func newTestWidget(opts Options) *Widget {
	opts.Logger = zerolog.Nop()
	return New(opts)
}

func TestWidgetMountCentersAndSchedules(t *testing.T) {
	s := newFakeSurface(800, 600)
	w := newTestWidget(Options{Width: 200, Height: 100, Speed: 80})

	require.NoError(t, w.Mount(s))
	assert.True(t, w.Mounted())
	assert.Equal(t, Rect{X: 300, Y: 250, Width: 200, Height: 100}, w.Rect())
	assert.Equal(t, 4, s.listeners())
	assert.Len(t, s.frames, 1)

	assert.ErrorIs(t, w.Mount(s), ErrMounted)
}

func TestWidgetFirstFrameStartsAtBottomLeft(t *testing.T) {
	s := newFakeSurface(800, 600)
	w := newTestWidget(Options{Width: 200, Height: 100, Speed: 80})
	require.NoError(t, w.Mount(s))

	// The clock starts at the first frame's timestamp, whatever it is.
	s.frame(5 * time.Second)
	require.Len(t, s.drawn, 1)
	sc := s.drawn[0]
	assert.Equal(t, Inhale, sc.Phase)
	assert.Equal(t, Circle{CenterX: 300, CenterY: 350, Radius: DotDiameter / 2}, sc.Dot)
	assert.Equal(t, 0.0, sc.Fill.Height)
	assert.Equal(t, FillColor(0), sc.FillColor)
	assert.Len(t, s.frames, 1, "reschedules itself")

	// 200x100 at 80 px/s: the inhale ends 1.25s later at the top-left corner.
	s.frame(5*time.Second + 1250*time.Millisecond)
	sc = s.drawn[1]
	assert.InDelta(t, 300.0, sc.Dot.CenterX, 1e-6)
	assert.InDelta(t, 250.0, sc.Dot.CenterY, 1e-6)
	assert.InDelta(t, 100.0, sc.Fill.Height, 1e-6)
	assert.Equal(t, w.Scene(), sc)
}

func TestWidgetPhaseChangeHook(t *testing.T) {
	s := newFakeSurface(800, 600)
	type change struct{ from, to Phase }
	var changes []change
	w := newTestWidget(Options{
		Width: 200, Height: 100, Speed: 80,
		OnPhaseChange: func(prev, next Phase) {
			changes = append(changes, change{prev, next})
		},
	})
	require.NoError(t, w.Mount(s))

	for _, ms := range []int{0, 500, 2000, 2500, 4500, 6000, 8000} {
		s.frame(time.Duration(ms) * time.Millisecond)
	}

	assert.Equal(t, []change{
		{Inhale, HoldFull},
		{HoldFull, Exhale},
		{Exhale, HoldEmpty},
		{HoldEmpty, Inhale},
	}, changes)
}

func TestWidgetUnmountIsSymmetric(t *testing.T) {
	s := newFakeSurface(800, 600)
	w := newTestWidget(Options{})
	require.NoError(t, w.Mount(s))
	s.frame(0)
	require.Len(t, s.frames, 1)

	w.Unmount()
	assert.False(t, w.Mounted())
	assert.Equal(t, 0, s.listeners())
	assert.Empty(t, s.frames)
	assert.Len(t, s.canceled, 1)

	s.frame(time.Second)
	assert.Len(t, s.drawn, 1, "no frames after unmount")

	w.Unmount()
	assert.Len(t, s.canceled, 1, "second unmount is a no-op")
}

func TestWidgetRemountKeepsSize(t *testing.T) {
	first := newFakeSurface(800, 600)
	w := newTestWidget(Options{Width: 200, Height: 200})
	require.NoError(t, w.Mount(first))

	emit(first.down, 500, 400)
	emit(first.move, 550, 450)
	emit(first.up, 550, 450)
	require.Equal(t, 300.0, w.Rect().Width)
	w.Unmount()

	second := newFakeSurface(1000, 1000)
	require.NoError(t, w.Mount(second))
	assert.Equal(t, Rect{X: 350, Y: 350, Width: 300, Height: 300}, w.Rect())
	assert.Equal(t, 0, first.listeners())
	assert.Equal(t, 4, second.listeners())
}

func TestWidgetResizeRecenters(t *testing.T) {
	s := newFakeSurface(800, 600)
	w := newTestWidget(Options{Width: 200, Height: 120})
	require.NoError(t, w.Mount(s))

	s.emitResize(1280, 720)
	r := w.Rect()
	cx, cy := r.Center()
	assert.Equal(t, 640.0, cx)
	assert.Equal(t, 360.0, cy)
	assert.Equal(t, 200.0, r.Width)
	assert.Equal(t, 120.0, r.Height)
}

func TestWidgetDragFlow(t *testing.T) {
	s := newFakeSurface(800, 600)
	w := newTestWidget(Options{Width: 200, Height: 200})
	require.NoError(t, w.Mount(s))

	// Miss: too far from the corner at (500, 400).
	emit(s.down, 520, 400)
	assert.False(t, w.Dragging())
	emit(s.move, 700, 500)
	assert.Equal(t, 200.0, w.Rect().Width)
	emit(s.up, 700, 500)

	emit(s.down, 500, 400)
	assert.True(t, w.Dragging())
	emit(s.move, 600, 450)
	assert.Equal(t, 400.0, w.Rect().Width)
	assert.Equal(t, 300.0, w.Rect().Height)

	s.frame(0)
	assert.True(t, s.drawn[0].HandleActive)

	emit(s.up, 10, 10)
	assert.False(t, w.Dragging())
	s.frame(time.Millisecond)
	assert.False(t, s.drawn[1].HandleActive)
}

func TestWidgetHoverHighlightsHandle(t *testing.T) {
	s := newFakeSurface(800, 600)
	w := newTestWidget(Options{Width: 200, Height: 200})
	require.NoError(t, w.Mount(s))

	emit(s.move, 505, 405)
	s.frame(0)
	assert.True(t, s.drawn[0].HandleActive)
	assert.False(t, w.Dragging())

	emit(s.move, 300, 300)
	s.frame(time.Millisecond)
	assert.False(t, s.drawn[1].HandleActive)
}

func TestWidgetUnmountFromPhaseHook(t *testing.T) {
	s := newFakeSurface(800, 600)
	var w *Widget
	w = newTestWidget(Options{
		Width: 200, Height: 100, Speed: 80,
		OnPhaseChange: func(prev, next Phase) { w.Unmount() },
	})
	require.NoError(t, w.Mount(s))

	s.frame(0)
	s.frame(2 * time.Second)
	assert.False(t, w.Mounted())
	assert.Empty(t, s.frames)
}
