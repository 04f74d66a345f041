package game

import "github.com/iburimskiy/box-breathing/internal/breath"

type eventType int

const (
	eventResize eventType = iota
	eventPointerDown
	eventPointerMove
	eventPointerUp
)

type resizeHandler struct {
	id uint32
	fn func(width, height float64)
}

type pointerHandler struct {
	id uint32
	fn breath.PointerFunc
}

type handlerRegistry struct {
	resize      []resizeHandler
	pointerDown []pointerHandler
	pointerMove []pointerHandler
	pointerUp   []pointerHandler
	nextID      uint32
}

// callbackHandle allows removing a registered surface listener.
type callbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event eventType
}

// Remove unregisters the listener so it no longer fires.
func (h callbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case eventResize:
		h.reg.resize = removeResizeHandler(h.reg.resize, h.id)
	case eventPointerDown:
		h.reg.pointerDown = removePointerHandler(h.reg.pointerDown, h.id)
	case eventPointerMove:
		h.reg.pointerMove = removePointerHandler(h.reg.pointerMove, h.id)
	case eventPointerUp:
		h.reg.pointerUp = removePointerHandler(h.reg.pointerUp, h.id)
	}
}

func (r *handlerRegistry) addResize(fn func(width, height float64)) breath.Subscription {
	r.nextID++
	r.resize = append(r.resize, resizeHandler{id: r.nextID, fn: fn})
	return callbackHandle{id: r.nextID, reg: r, event: eventResize}
}

func (r *handlerRegistry) addPointer(event eventType, fn breath.PointerFunc) breath.Subscription {
	r.nextID++
	h := pointerHandler{id: r.nextID, fn: fn}
	switch event {
	case eventPointerDown:
		r.pointerDown = append(r.pointerDown, h)
	case eventPointerMove:
		r.pointerMove = append(r.pointerMove, h)
	case eventPointerUp:
		r.pointerUp = append(r.pointerUp, h)
	}
	return callbackHandle{id: r.nextID, reg: r, event: event}
}

func (r *handlerRegistry) len() int {
	return len(r.resize) + len(r.pointerDown) + len(r.pointerMove) + len(r.pointerUp)
}

func (r *handlerRegistry) fireResize(width, height float64) {
	for _, h := range snapshot(r.resize) {
		h.fn(width, height)
	}
}

func (r *handlerRegistry) firePointer(event eventType, x, y float64) {
	var list []pointerHandler
	switch event {
	case eventPointerDown:
		list = r.pointerDown
	case eventPointerMove:
		list = r.pointerMove
	case eventPointerUp:
		list = r.pointerUp
	}
	for _, h := range snapshot(list) {
		h.fn(x, y)
	}
}

// snapshot copies s so handlers may unregister themselves while firing.
func snapshot[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func removeResizeHandler(s []resizeHandler, id uint32) []resizeHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = resizeHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func removePointerHandler(s []pointerHandler, id uint32) []pointerHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = pointerHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}
