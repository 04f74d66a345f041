package cue

import (
	"math"
	"sync"

	"github.com/faiface/beep"
)

// levelTap wraps a beep.Streamer and records the last N samples into a ring
// buffer so the renderer can draw a halo from the cue that is playing.
type levelTap struct {
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex
}

func newLevelTap(ringSize int) *levelTap {
	return &levelTap{buffer: make([][2]float64, ringSize)}
}

// wrap returns a streamer that records everything src produces.
func (t *levelTap) wrap(src beep.Streamer) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := src.Stream(samples)
		t.record(samples[:n])
		return n, ok
	})
}

func (t *levelTap) record(samples [][2]float64) {
	if len(samples) == 0 {
		return
	}
	t.mu.Lock()
	for _, s := range samples {
		t.buffer[t.nextIndex] = s
		t.nextIndex++
		if t.nextIndex >= len(t.buffer) {
			t.nextIndex = 0
		}
	}
	t.mu.Unlock()
}

// reset silences the ring, used once a cue has finished playing.
func (t *levelTap) reset() {
	t.mu.Lock()
	clear(t.buffer)
	t.nextIndex = 0
	t.mu.Unlock()
}

// level returns the RMS of the ring, mixed down to mono, in [0, 1].
func (t *levelTap) level() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(t.buffer) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range t.buffer {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	return math.Min(1, math.Sqrt(sumSquares/float64(len(t.buffer))))
}
