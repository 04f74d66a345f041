package breath

import (
	"image/color"
	"math"
)

const (
	DotDiameter    = 16.0
	HandleDiameter = 16.0
	BorderWidth    = 2.0
)

var (
	// EmptyColor is the fill color at fraction 0, FullColor at fraction 1.
	EmptyColor = color.RGBA{R: 0, G: 31, B: 127, A: 255}
	FullColor  = color.RGBA{R: 0, G: 51, B: 255, A: 255}

	BackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	BorderColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	DotColor        = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	HandleColor     = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 255}
)

// FillColor interpolates between EmptyColor and FullColor. Each channel is
// linear in frac and rounded to the nearest integer on its own.
func FillColor(frac float64) color.RGBA {
	frac = clamp01(frac)
	lerp := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + frac*(float64(b)-float64(a))))
	}
	return color.RGBA{
		R: lerp(EmptyColor.R, FullColor.R),
		G: lerp(EmptyColor.G, FullColor.G),
		B: lerp(EmptyColor.B, FullColor.B),
		A: 255,
	}
}

// FillHeight is the height of the fill region for a fill fraction.
func FillHeight(frac float64, r Rect) float64 {
	return clamp01(frac) * r.Height
}

// Scene is everything a presentation surface needs to paint one frame.
type Scene struct {
	Bounds    Rect
	Fill      Rect // bottom-anchored, full width
	FillColor color.RGBA
	Dot       Circle
	Handle    Circle
	// HandleActive is set while the handle is hovered or dragged.
	HandleActive bool

	Phase         Phase
	Elapsed       float64
	CycleDuration float64
}

// Compose maps a rectangle and its phase state to drawable attributes.
func Compose(r Rect, st PhaseState, handleActive bool) Scene {
	fh := FillHeight(st.Fill, r)
	return Scene{
		Bounds: r,
		Fill: Rect{
			X:      r.X,
			Y:      r.Bottom() - fh,
			Width:  r.Width,
			Height: fh,
		},
		FillColor:     FillColor(st.Fill),
		Dot:           Circle{CenterX: st.Dot.X, CenterY: st.Dot.Y, Radius: DotDiameter / 2},
		Handle:        Circle{CenterX: r.Right(), CenterY: r.Bottom(), Radius: HandleDiameter / 2},
		HandleActive:  handleActive,
		Phase:         st.Phase,
		Elapsed:       st.Elapsed,
		CycleDuration: st.CycleDuration,
	}
}
