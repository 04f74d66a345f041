package game

import (
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/box-breathing/internal/breath"
)

// --- handler registry ---

func TestRegistryRemove(t *testing.T) {
	var reg handlerRegistry
	var got []string

	a := reg.addPointer(eventPointerDown, func(x, y float64) { got = append(got, "a") })
	reg.addPointer(eventPointerDown, func(x, y float64) { got = append(got, "b") })
	reg.addPointer(eventPointerUp, func(x, y float64) { got = append(got, "up") })

	reg.firePointer(eventPointerDown, 0, 0)
	assert.Equal(t, []string{"a", "b"}, got)

	a.Remove()
	a.Remove()
	got = nil
	reg.firePointer(eventPointerDown, 0, 0)
	reg.firePointer(eventPointerMove, 0, 0)
	assert.Equal(t, []string{"b"}, got)
	assert.Equal(t, 2, reg.len())
}

func TestRegistryHandlerCanRemoveItself(t *testing.T) {
	var reg handlerRegistry
	calls := 0
	var sub breath.Subscription
	sub = reg.addResize(func(w, h float64) {
		calls++
		sub.Remove()
	})
	reg.addResize(func(w, h float64) { calls++ })

	reg.fireResize(10, 10)
	assert.Equal(t, 2, calls)
	reg.fireResize(10, 10)
	assert.Equal(t, 3, calls)
}

func TestZeroCallbackHandleRemove(t *testing.T) {
	assert.NotPanics(t, func() { callbackHandle{}.Remove() })
}

// --- frame queue ---

func TestFrameQueueRunsOncePerTick(t *testing.T) {
	var q frameQueue
	var stamps []time.Duration
	var loop breath.FrameFunc
	loop = func(ts time.Duration) {
		stamps = append(stamps, ts)
		q.request(loop)
	}
	q.request(loop)

	assert.Equal(t, 1, q.run(time.Second))
	assert.Equal(t, 1, q.run(2*time.Second))
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, stamps)
	assert.Equal(t, 1, q.len())
}

func TestFrameQueueCancel(t *testing.T) {
	var q frameQueue
	ran := 0
	h := q.request(func(time.Duration) { ran++ })
	q.request(func(time.Duration) { ran++ })

	q.cancel(h)
	q.cancel(h)
	assert.Equal(t, 1, q.run(0))
	assert.Equal(t, 1, ran)
	assert.Equal(t, 0, q.len())
}

func TestFrameQueueCancelDuringRun(t *testing.T) {
	var q frameQueue
	ran := 0
	var second breath.FrameHandle
	q.request(func(time.Duration) { q.cancel(second) })
	second = q.request(func(time.Duration) { ran++ })

	assert.Equal(t, 1, q.run(0))
	assert.Equal(t, 0, ran)
}

// --- pointer tracker ---

func TestPointerTracker(t *testing.T) {
	var tr pointerTracker

	assert.Empty(t, tr.step(pointerSample{x: 10, y: 10}), "first sample only sets position")
	assert.Empty(t, tr.step(pointerSample{x: 10, y: 10}))

	assert.Equal(t, []pointerEvent{{kind: eventPointerMove, x: 20, y: 15}},
		tr.step(pointerSample{x: 20, y: 15}))

	assert.Equal(t, []pointerEvent{
		{kind: eventPointerMove, x: 21, y: 15},
		{kind: eventPointerDown, x: 21, y: 15},
	}, tr.step(pointerSample{x: 21, y: 15, justPressed: true}))

	assert.Empty(t, tr.step(pointerSample{x: 21, y: 15, justPressed: true}), "no double press")

	assert.Equal(t, []pointerEvent{
		{kind: eventPointerMove, x: 30, y: 40},
		{kind: eventPointerUp, x: 30, y: 40},
	}, tr.step(pointerSample{x: 30, y: 40, justReleased: true}))

	assert.Empty(t, tr.step(pointerSample{x: 30, y: 40, justReleased: true}), "no release without press")
}

// --- glow ---

func TestGlowFadesOut(t *testing.T) {
	g := newGlow(0.5, nil)
	assert.Equal(t, float32(0), g.update(0.1), "idle until pulsed")

	g.pulse()
	assert.Equal(t, float32(1), g.value)
	v1 := g.update(0.1)
	v2 := g.update(0.1)
	assert.Less(t, v1, float32(1))
	assert.Less(t, v2, v1)

	g.update(1)
	assert.Equal(t, float32(0), g.value)
	assert.Nil(t, g.tween)
}

func TestGlowDisabled(t *testing.T) {
	g := newGlow(0, nil)
	g.pulse()
	assert.Nil(t, g.tween)
	assert.Equal(t, float32(0), g.update(0.1))
}

func TestLookupEasing(t *testing.T) {
	fn, err := LookupEasing("outCubic")
	require.NoError(t, err)
	require.NotNil(t, fn)

	lin, err := LookupEasing("LINEAR")
	require.NoError(t, err)
	assert.Equal(t, float32(0.5), lin(1, 0, 1, 2))

	_, err = LookupEasing("wobbly")
	assert.ErrorContains(t, err, `unknown easing "wobbly"`)
	assert.ErrorContains(t, err, "linear")
}

// --- game surface ---

type testClock struct{ t time.Time }

func (c *testClock) now() time.Time { return c.t }

func newTestGame(w, h int) (*Game, *testClock) {
	g := New(Options{Width: w, Height: h, GlowSeconds: 0.5, Logger: zerolog.Nop()})
	clk := &testClock{t: g.start}
	g.now = clk.now
	return g, clk
}

func TestSurfaceViewportFollowsLayout(t *testing.T) {
	g, _ := newTestGame(800, 600)
	s := g.Surface()

	var sizes [][2]float64
	s.OnResize(func(w, h float64) { sizes = append(sizes, [2]float64{w, h}) })

	ow, oh := g.Layout(800, 600)
	assert.Equal(t, 800, ow)
	assert.Equal(t, 600, oh)
	g.tick(pointerSample{}, 0)
	assert.Empty(t, sizes, "unchanged size is not a resize")

	g.Layout(1000, 700)
	g.Layout(1280, 720)
	g.tick(pointerSample{}, 0)
	assert.Equal(t, [][2]float64{{1280, 720}}, sizes, "only the last size is delivered")

	w, h := s.Viewport()
	assert.Equal(t, 1280.0, w)
	assert.Equal(t, 720.0, h)

	g.Layout(0, 0)
	w, _ = s.Viewport()
	assert.Equal(t, 1280.0, w, "minimized window keeps the last size")
}

func TestGameDrivesWidget(t *testing.T) {
	g, clk := newTestGame(800, 600)
	var phases []breath.Phase
	w := breath.New(breath.Options{
		Width: 200, Height: 200, Speed: 80,
		OnPhaseChange: func(prev, next breath.Phase) {
			phases = append(phases, next)
			g.Pulse()
		},
		Logger: zerolog.Nop(),
	})
	require.NoError(t, w.Mount(g.Surface()))
	assert.Equal(t, 4, g.handlers.len())

	g.tick(pointerSample{x: 0, y: 0}, 0)
	require.True(t, g.hasScene)
	assert.Equal(t, breath.Inhale, g.scene.Phase)
	assert.Equal(t, 300.0, g.scene.Dot.CenterX)
	assert.Equal(t, 400.0, g.scene.Dot.CenterY)

	// 200x200 at 80 px/s: top-left corner after 2.5s, on the top edge after 3s.
	clk.t = clk.t.Add(3 * time.Second)
	g.tick(pointerSample{x: 0, y: 0}, 1.0/60)
	assert.Equal(t, breath.HoldFull, g.scene.Phase)
	assert.Equal(t, []breath.Phase{breath.HoldFull}, phases)
	assert.Equal(t, float32(1), g.glow.value)

	// Grab the corner at (500, 400) and drag it out.
	g.tick(pointerSample{x: 500, y: 400, justPressed: true}, 1.0/60)
	assert.True(t, w.Dragging())
	g.tick(pointerSample{x: 600, y: 450}, 1.0/60)
	assert.Equal(t, breath.Rect{X: 200, Y: 150, Width: 400, Height: 300}, w.Rect())
	assert.Equal(t, w.Rect(), g.scene.Bounds, "the frame sees the resized rect")
	assert.True(t, g.scene.HandleActive)

	g.tick(pointerSample{x: 50, y: 50, justReleased: true}, 1.0/60)
	assert.False(t, w.Dragging())

	// Window resize recenters.
	g.Layout(1000, 1000)
	g.tick(pointerSample{x: 50, y: 50}, 1.0/60)
	cx, cy := w.Rect().Center()
	assert.Equal(t, 500.0, cx)
	assert.Equal(t, 500.0, cy)

	w.Unmount()
	assert.Equal(t, 0, g.handlers.len())
	assert.Equal(t, 0, g.frames.len())
}

func TestStatus(t *testing.T) {
	g, _ := newTestGame(800, 600)
	g.BindKey(ebiten.KeyO, "O: cue sound", func() error { return nil })
	g.BindKey(ebiten.KeyM, "M: mute", func() error { return nil })

	assert.Equal(t, "O: cue sound  M: mute  Esc/Q: quit", g.status())

	g.Surface().Draw(breath.Scene{Phase: breath.Exhale, Elapsed: 75.4, CycleDuration: 10})
	g.lastErr = errors.New("no audio device")
	assert.Equal(t,
		"Exhale  01:15  cycle 10.0s\nO: cue sound  M: mute  Esc/Q: quit | Error: no audio device",
		g.status())
}

type fixedMeter float64

func (m fixedMeter) Level() float64 { return float64(m) }

func TestSetLevelMeter(t *testing.T) {
	g, _ := newTestGame(800, 600)
	g.SetLevelMeter(fixedMeter(0.4))
	require.NotNil(t, g.meter)
	assert.Equal(t, 0.4, g.meter.Level())
}

func TestWithAlpha(t *testing.T) {
	c := withAlpha(glowColor, 0.5)
	assert.Equal(t, uint8(60), c.R)
	assert.Equal(t, uint8(127), c.A)
	assert.Equal(t, glowColor, withAlpha(glowColor, 3))
	assert.Equal(t, uint8(0), withAlpha(glowColor, -1).A)
}

func TestIsTermination(t *testing.T) {
	assert.True(t, IsTermination(ebiten.Termination))
	assert.True(t, IsTermination(errors.Join(errors.New("x"), ebiten.Termination)))
	assert.False(t, IsTermination(errors.New("boom")))
	assert.False(t, IsTermination(nil))
}
