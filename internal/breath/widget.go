package breath

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// ErrMounted is returned when mounting a widget that is already mounted.
var ErrMounted = errors.New("breath: widget already mounted")

// Options configures a Widget.
type Options struct {
	// Initial rectangle size; raised to MinSide if smaller.
	Width, Height float64
	// Dot speed in px/s; DefaultSpeed if not positive.
	Speed float64
	// OnPhaseChange, if set, is called when the dot moves onto a new edge.
	// It is not called for the first frame after mounting.
	OnPhaseChange func(prev, next Phase)
	Logger        zerolog.Logger
}

// Widget is the box-breathing animation bound to a Surface. It owns the
// geometry, the drag controller and the self-rescheduling frame task.
type Widget struct {
	opts  Options
	clock Clock
	log   zerolog.Logger

	geom *Geometry
	ctrl *Controller

	surface Surface
	subs    []Subscription
	frame   FrameHandle
	mounted bool

	started   bool
	startedAt time.Duration
	hasPhase  bool
	phase     Phase
	hover     bool
	scene     Scene
}

// New creates an unmounted widget.
func New(opts Options) *Widget {
	if opts.Width <= 0 {
		opts.Width = 200
	}
	if opts.Height <= 0 {
		opts.Height = 200
	}
	return &Widget{
		opts:  opts,
		clock: NewClock(opts.Speed),
		log:   opts.Logger.With().Str("component", "breath").Logger(),
	}
}

// Mount attaches the widget to s: it centers the rectangle in the
// viewport, subscribes to resize and pointer events and starts the frame
// task. The rectangle size survives an Unmount/Mount cycle.
func (w *Widget) Mount(s Surface) error {
	if w.mounted {
		return ErrMounted
	}
	vw, vh := s.Viewport()
	if w.geom == nil {
		w.geom = NewGeometry(w.opts.Width, w.opts.Height, vw, vh)
		w.ctrl = NewController(w.geom)
	} else {
		w.geom.Recenter(vw, vh)
	}

	w.surface = s
	w.mounted = true
	w.started = false
	w.hasPhase = false
	w.subs = append(w.subs,
		s.OnResize(w.onResize),
		s.OnPointerDown(w.onPointerDown),
		s.OnPointerMove(w.onPointerMove),
		s.OnPointerUp(w.onPointerUp),
	)
	w.frame = s.RequestFrame(w.tick)

	r := w.geom.Rect()
	w.log.Debug().
		Float64("width", r.Width).
		Float64("height", r.Height).
		Float64("viewportW", vw).
		Float64("viewportH", vh).
		Msg("mounted")
	return nil
}

// Unmount cancels the pending frame and removes every listener Mount added.
// It is safe to call on an unmounted widget.
func (w *Widget) Unmount() {
	if !w.mounted {
		return
	}
	w.surface.CancelFrame(w.frame)
	for _, sub := range w.subs {
		sub.Remove()
	}
	w.subs = w.subs[:0]
	w.ctrl.PointerUp()
	w.mounted = false
	w.surface = nil
	w.frame = 0
	w.log.Debug().Msg("unmounted")
}

// Mounted reports whether the widget is attached to a surface.
func (w *Widget) Mounted() bool { return w.mounted }

// Rect returns the current rectangle. It is the zero Rect before the first Mount.
func (w *Widget) Rect() Rect {
	if w.geom == nil {
		return Rect{}
	}
	return w.geom.Rect()
}

// Dragging reports whether the corner handle is being dragged.
func (w *Widget) Dragging() bool {
	return w.ctrl != nil && w.ctrl.Dragging()
}

// Scene returns the last scene handed to the surface.
func (w *Widget) Scene() Scene { return w.scene }

func (w *Widget) tick(ts time.Duration) {
	if !w.mounted {
		return
	}
	surface := w.surface
	if !w.started {
		w.started = true
		w.startedAt = ts
	}
	elapsed := (ts - w.startedAt).Seconds()

	r := w.geom.Rect()
	st := w.clock.At(r, elapsed)
	if w.hasPhase && st.Phase != w.phase {
		w.log.Trace().
			Stringer("from", w.phase).
			Stringer("to", st.Phase).
			Float64("elapsed", elapsed).
			Msg("phase change")
		if w.opts.OnPhaseChange != nil {
			w.opts.OnPhaseChange(w.phase, st.Phase)
		}
	}
	w.phase, w.hasPhase = st.Phase, true

	w.scene = Compose(r, st, w.hover || w.ctrl.Dragging())
	surface.Draw(w.scene)

	// OnPhaseChange may have unmounted the widget.
	if w.mounted {
		w.frame = surface.RequestFrame(w.tick)
	}
}

func (w *Widget) onResize(width, height float64) {
	w.geom.Recenter(width, height)
}

func (w *Widget) onPointerDown(x, y float64) {
	if w.ctrl.PointerDown(x, y) {
		r := w.geom.Rect()
		w.log.Debug().Float64("width", r.Width).Float64("height", r.Height).Msg("drag start")
	}
}

func (w *Widget) onPointerMove(x, y float64) {
	w.hover = w.ctrl.NearHandle(x, y)
	w.ctrl.PointerMove(x, y)
}

func (w *Widget) onPointerUp(x, y float64) {
	if w.ctrl.PointerUp() {
		r := w.geom.Rect()
		w.log.Debug().Float64("width", r.Width).Float64("height", r.Height).Msg("drag end")
	}
	w.hover = w.ctrl.NearHandle(x, y)
}
