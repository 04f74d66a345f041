package breath

// HitRadius is how close, in pixels, a pointer-down must land to the
// bottom-right corner to grab the resize handle.
const HitRadius = 15.0

// Circle is a circle in absolute pixel coordinates.
type Circle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies strictly inside the circle.
func (c Circle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy < c.Radius*c.Radius
}

// DragState is the state of the corner-drag interaction.
type DragState int

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller turns pointer events into corner resizes of a Geometry.
// It assumes a single pointer.
type Controller struct {
	geom  *Geometry
	state DragState
	// signed offset from the corner to the pointer at grab time
	grabX, grabY float64
}

// NewController returns an idle controller that resizes g.
func NewController(g *Geometry) *Controller {
	return &Controller{geom: g}
}

// State returns the current drag state.
func (c *Controller) State() DragState { return c.state }

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool { return c.state == Dragging }

// Handle returns the hit area around the current bottom-right corner.
func (c *Controller) Handle() Circle {
	x, y := c.geom.Corner()
	return Circle{CenterX: x, CenterY: y, Radius: HitRadius}
}

// NearHandle reports whether (x, y) would grab the handle.
func (c *Controller) NearHandle(x, y float64) bool {
	return c.Handle().Contains(x, y)
}

// PointerDown starts a drag when (x, y) is within HitRadius of the corner.
// It reports whether a drag started.
func (c *Controller) PointerDown(x, y float64) bool {
	if c.state == Dragging {
		return false
	}
	if !c.NearHandle(x, y) {
		return false
	}
	cx, cy := c.geom.Corner()
	c.grabX, c.grabY = x-cx, y-cy
	c.state = Dragging
	return true
}

// PointerMove resizes the rectangle while dragging and is a no-op otherwise.
// It reports whether the geometry was updated.
func (c *Controller) PointerMove(x, y float64) bool {
	if c.state != Dragging {
		return false
	}
	c.geom.ResizeFromCorner(x-c.grabX, y-c.grabY)
	return true
}

// PointerUp ends any drag, wherever the pointer is. It reports whether a
// drag was in progress.
func (c *Controller) PointerUp() bool {
	was := c.state == Dragging
	c.state = Idle
	c.grabX, c.grabY = 0, 0
	return was
}
