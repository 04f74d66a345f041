package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerSample is one tick's worth of input for the single tracked pointer.
type pointerSample struct {
	x, y         float64
	justPressed  bool
	justReleased bool
}

type pointerEvent struct {
	kind eventType
	x, y float64
}

// pointerTracker turns polled samples into down/move/up events. A move is
// emitted whenever the position changes, pressed or not; within one tick the
// move comes before a press and before a release.
type pointerTracker struct {
	seen         bool
	down         bool
	lastX, lastY float64
}

func (t *pointerTracker) step(s pointerSample) []pointerEvent {
	var events []pointerEvent
	if !t.seen || s.x != t.lastX || s.y != t.lastY {
		if t.seen {
			events = append(events, pointerEvent{kind: eventPointerMove, x: s.x, y: s.y})
		}
		t.seen = true
		t.lastX, t.lastY = s.x, s.y
	}
	if s.justPressed && !t.down {
		t.down = true
		events = append(events, pointerEvent{kind: eventPointerDown, x: s.x, y: s.y})
	}
	if s.justReleased && t.down {
		t.down = false
		events = append(events, pointerEvent{kind: eventPointerUp, x: s.x, y: s.y})
	}
	return events
}

// inputPoller reads the mouse, or the first touch while one is active.
type inputPoller struct {
	touchID  ebiten.TouchID
	touching bool
	touchIDs []ebiten.TouchID
}

func (p *inputPoller) poll() pointerSample {
	if !p.touching {
		p.touchIDs = inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0])
		if len(p.touchIDs) > 0 {
			p.touchID = p.touchIDs[0]
			p.touching = true
			x, y := ebiten.TouchPosition(p.touchID)
			return pointerSample{x: float64(x), y: float64(y), justPressed: true}
		}
	}
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			x, y := inpututil.TouchPositionInPreviousTick(p.touchID)
			return pointerSample{x: float64(x), y: float64(y), justReleased: true}
		}
		x, y := ebiten.TouchPosition(p.touchID)
		return pointerSample{x: float64(x), y: float64(y)}
	}

	x, y := ebiten.CursorPosition()
	return pointerSample{
		x:            float64(x),
		y:            float64(y),
		justPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		justReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}
