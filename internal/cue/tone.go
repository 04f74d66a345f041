package cue

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// toneAmplitude keeps overlapping cues from clipping.
const toneAmplitude = 0.5

// tone returns a sine wave of freq Hz lasting d, fading out linearly so it
// ends without a click.
func tone(sr beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	total := sr.N(d)
	pos := 0
	step := 2 * math.Pi * freq / float64(sr)
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for n < len(samples) && pos < total {
			env := 1 - float64(pos)/float64(total)
			v := toneAmplitude * env * math.Sin(step*float64(pos))
			samples[n][0], samples[n][1] = v, v
			n++
			pos++
		}
		return n, true
	})
}
