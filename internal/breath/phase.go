package breath

import "math"

// DefaultSpeed is how fast the dot travels along the perimeter, in pixels per second.
const DefaultSpeed = 80.0

// Phase is one step of the breathing cycle. Its value is also the index of
// the perimeter edge the dot is on, walking clockwise from the bottom-left
// corner.
type Phase int

const (
	Inhale    Phase = iota // up the left side
	HoldFull               // across the top
	Exhale                 // down the right side
	HoldEmpty              // across the bottom
)

func (p Phase) String() string {
	switch p {
	case Inhale:
		return "Inhale"
	case HoldFull:
		return "Hold"
	case Exhale:
		return "Exhale"
	case HoldEmpty:
		return "Hold"
	default:
		return "Unknown"
	}
}

// Edge returns the perimeter edge index (0..3) for the phase.
func (p Phase) Edge() int { return int(p) }

// Point is an absolute position in pixels.
type Point struct {
	X, Y float64
}

// PhaseState is the result of evaluating the clock for one frame.
type PhaseState struct {
	Phase         Phase
	LocalDistance float64 // distance travelled along the current edge
	Elapsed       float64 // seconds since the animation started
	CycleDuration float64 // seconds for one lap at the current size
	Dot           Point
	Fill          float64 // 0 = empty, 1 = full
}

// Clock maps elapsed time and the rectangle's size to a dot position and a
// fill fraction. Every call derives the state from absolute elapsed time;
// nothing is integrated between frames, so a resize mid-cycle moves the dot.
type Clock struct {
	Speed float64
}

// NewClock returns a clock travelling at speed px/s, or DefaultSpeed if
// speed is not positive.
func NewClock(speed float64) Clock {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	return Clock{Speed: speed}
}

// CycleDuration returns the seconds one lap of r takes.
func (c Clock) CycleDuration(r Rect) float64 {
	if c.Speed <= 0 {
		return 0
	}
	return r.Perimeter() / c.Speed
}

// At evaluates the breathing cycle for rectangle r after elapsed seconds.
func (c Clock) At(r Rect, elapsed float64) PhaseState {
	st := PhaseState{
		Phase:   Inhale,
		Elapsed: elapsed,
		Dot:     Point{X: r.X, Y: r.Bottom()},
	}
	perimeter := r.Perimeter()
	cycle := c.CycleDuration(r)
	if perimeter <= 0 || cycle <= 0 {
		return st
	}
	st.CycleDuration = cycle

	frac := math.Mod(elapsed, cycle) / cycle
	if frac < 0 {
		frac++
	}
	dist := perimeter * frac

	h, w := r.Height, r.Width
	switch {
	case dist <= h:
		st.Phase, st.LocalDistance = Inhale, dist
	case dist <= h+w:
		st.Phase, st.LocalDistance = HoldFull, dist-h
	case dist <= 2*h+w:
		st.Phase, st.LocalDistance = Exhale, dist-(h+w)
	default:
		st.Phase, st.LocalDistance = HoldEmpty, dist-(2*h+w)
	}

	local := st.LocalDistance
	switch st.Phase {
	case Inhale:
		st.Dot = Point{X: r.X, Y: r.Bottom() - local}
		st.Fill = ratio(local, h)
	case HoldFull:
		st.Dot = Point{X: r.X + local, Y: r.Y}
		st.Fill = 1
	case Exhale:
		st.Dot = Point{X: r.Right(), Y: r.Y + local}
		if h > 0 {
			st.Fill = clamp01(1 - local/h)
		}
	case HoldEmpty:
		st.Dot = Point{X: r.Right() - local, Y: r.Bottom()}
		st.Fill = 0
	}
	return st
}

// ratio returns num/den clamped to [0, 1], or 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return clamp01(num / den)
}
