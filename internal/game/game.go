package game

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/tanema/gween/ease"

	"github.com/iburimskiy/box-breathing/internal/breath"
)

// LevelMeter reports an audio level in [0, 1] for the dot halo.
type LevelMeter interface {
	Level() float64
}

type keyBinding struct {
	key   ebiten.Key
	label string
	fn    func() error
}

// Options configures the surface.
type Options struct {
	Width, Height int // initial viewport
	GlowSeconds   float64
	GlowEasing    ease.TweenFunc
	Logger        zerolog.Logger
}

// Game is the ebiten presentation surface. Ebiten ticks become frame
// callbacks, Layout changes become resize events and polled input becomes
// pointer events, all delivered on ebiten's game goroutine to whatever is
// mounted on Surface().
type Game struct {
	width, height int
	resized       bool

	handlers handlerRegistry
	frames   frameQueue
	start    time.Time
	now      func() time.Time

	poller  inputPoller
	tracker pointerTracker

	scene    breath.Scene
	hasScene bool
	glow     *glow
	meter    LevelMeter

	// input edge detection
	prevKey  map[ebiten.Key]bool
	bindings []keyBinding

	lastErr error
	log     zerolog.Logger
}

var _ ebiten.Game = (*Game)(nil)

// New creates a surface with the given initial viewport.
func New(opts Options) *Game {
	return &Game{
		width:   opts.Width,
		height:  opts.Height,
		now:     time.Now,
		start:   time.Now(),
		glow:    newGlow(opts.GlowSeconds, opts.GlowEasing),
		prevKey: map[ebiten.Key]bool{},
		log:     opts.Logger.With().Str("component", "surface").Logger(),
	}
}

// BindKey runs fn when key is pressed. An error is shown in the status line.
func (g *Game) BindKey(key ebiten.Key, label string, fn func() error) {
	g.bindings = append(g.bindings, keyBinding{key: key, label: label, fn: fn})
}

// SetLevelMeter sets the source of the dot halo level.
func (g *Game) SetLevelMeter(m LevelMeter) { g.meter = m }

// Pulse flashes the rectangle border.
func (g *Game) Pulse() { g.glow.pulse() }

// --- breath.Surface ---

// Surface adapts a Game to breath.Surface. Scenes drawn through it are
// painted by the next ebiten Draw.
type Surface struct {
	g *Game
}

var _ breath.Surface = (*Surface)(nil)

// Surface returns the breath.Surface view of g.
func (g *Game) Surface() *Surface { return &Surface{g: g} }

func (s *Surface) Viewport() (float64, float64) {
	return float64(s.g.width), float64(s.g.height)
}

func (s *Surface) OnResize(fn func(width, height float64)) breath.Subscription {
	return s.g.handlers.addResize(fn)
}

func (s *Surface) OnPointerDown(fn breath.PointerFunc) breath.Subscription {
	return s.g.handlers.addPointer(eventPointerDown, fn)
}

func (s *Surface) OnPointerMove(fn breath.PointerFunc) breath.Subscription {
	return s.g.handlers.addPointer(eventPointerMove, fn)
}

func (s *Surface) OnPointerUp(fn breath.PointerFunc) breath.Subscription {
	return s.g.handlers.addPointer(eventPointerUp, fn)
}

func (s *Surface) RequestFrame(fn breath.FrameFunc) breath.FrameHandle {
	return s.g.frames.request(fn)
}

func (s *Surface) CancelFrame(h breath.FrameHandle) {
	s.g.frames.cancel(h)
}

func (s *Surface) Draw(sc breath.Scene) {
	s.g.scene = sc
	s.g.hasScene = true
}

// --- ebiten.Game ---

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(breath.BackgroundColor)
	if g.hasScene {
		g.drawScene(screen, g.scene)
	}
	g.drawStatus(screen)
}

func (g *Game) Update() error {

	justPressed := func(k ebiten.Key) bool {
		pressed := ebiten.IsKeyPressed(k)
		jp := pressed && !g.prevKey[k]
		g.prevKey[k] = pressed
		return jp
	}

	if justPressed(ebiten.KeyEscape) || justPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	for _, b := range g.bindings {
		if justPressed(b.key) {
			if err := b.fn(); err != nil {
				g.log.Error().Err(err).Str("key", b.label).Msg("key action failed")
				g.lastErr = err
			} else {
				g.lastErr = nil
			}
		}
	}

	g.tick(g.poller.poll(), 1/float32(ebiten.TPS()))
	return nil
}

// tick delivers one tick's events in order: resize, pointer, then frame
// callbacks, so a frame always sees the geometry the events produced.
func (g *Game) tick(sample pointerSample, dt float32) {
	g.dispatchResize()
	g.dispatchPointer(g.tracker.step(sample))
	g.glow.update(dt)
	g.frames.run(g.now().Sub(g.start))
}

// Layout keeps one logical pixel per device-independent pixel, so the
// viewport follows the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.setViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) setViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if width != g.width || height != g.height {
		g.width, g.height = width, height
		g.resized = true
	}
}

// dispatchResize delivers a pending viewport change from Layout. Layout
// can run several times per tick; listeners see only the last size.
func (g *Game) dispatchResize() {
	if !g.resized {
		return
	}
	g.resized = false
	g.log.Debug().Int("width", g.width).Int("height", g.height).Msg("viewport resized")
	g.handlers.fireResize(float64(g.width), float64(g.height))
}

func (g *Game) dispatchPointer(events []pointerEvent) {
	for _, ev := range events {
		g.handlers.firePointer(ev.kind, ev.x, ev.y)
	}
}

// IsTermination reports whether err is the normal end of the game loop.
func IsTermination(err error) bool {
	return errors.Is(err, ebiten.Termination)
}
