package breath

import "math"

// MinSide is the smallest width or height the breathing rectangle may have.
const MinSide = 50.0

// Rect is an axis-aligned rectangle anchored at its top-left corner, in pixels.
type Rect struct {
	X, Y, Width, Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Perimeter is the length of one full lap around the rectangle.
func (r Rect) Perimeter() float64 {
	return 2*r.Width + 2*r.Height
}

// centeredRect returns a width x height rectangle whose center is (cx, cy).
func centeredRect(cx, cy, width, height float64) Rect {
	return Rect{X: cx - width/2, Y: cy - height/2, Width: width, Height: height}
}

// Geometry owns the single breathing rectangle. It keeps the rectangle
// centered on the viewport and never lets either side drop below MinSide.
type Geometry struct {
	rect      Rect
	viewportW float64
	viewportH float64
}

// NewGeometry creates a width x height rectangle centered in the viewport.
// Sizes below MinSide are raised to it.
func NewGeometry(width, height, viewportW, viewportH float64) *Geometry {
	g := &Geometry{viewportW: viewportW, viewportH: viewportH}
	g.rect = centeredRect(viewportW/2, viewportH/2, math.Max(MinSide, width), math.Max(MinSide, height))
	return g
}

// Rect returns the current rectangle.
func (g *Geometry) Rect() Rect { return g.rect }

// Viewport returns the last viewport size the model was told about.
func (g *Geometry) Viewport() (float64, float64) { return g.viewportW, g.viewportH }

// Corner returns the bottom-right corner, where the resize handle lives.
func (g *Geometry) Corner() (float64, float64) {
	return g.rect.Right(), g.rect.Bottom()
}

// Recenter moves the rectangle to the center of a viewport of the given size.
// Width and height are unchanged.
func (g *Geometry) Recenter(viewportW, viewportH float64) {
	g.viewportW, g.viewportH = viewportW, viewportH
	g.rect = centeredRect(viewportW/2, viewportH/2, g.rect.Width, g.rect.Height)
}

// ResizeFromCorner resizes the rectangle so that its bottom-right corner
// follows (cornerX, cornerY) while the viewport center stays fixed. Width
// follows the horizontal displacement and height the vertical one. A corner
// dragged past the center counts as zero displacement, so the result is
// clamped to MinSide.
func (g *Geometry) ResizeFromCorner(cornerX, cornerY float64) {
	cx, cy := g.viewportW/2, g.viewportH/2
	dx := math.Max(cornerX, cx) - cx
	dy := math.Max(cornerY, cy) - cy
	width := math.Max(MinSide, dx*2)
	height := math.Max(MinSide, dy*2)
	g.rect = centeredRect(cx, cy, width, height)
}
