package pack

import "math"

// State is the growth state of a circle.
type State uint8

const (
	// Growing circles gain radius every tick.
	Growing State = iota
	// Stopped circles never grow again.
	Stopped
)

// String returns the lowercase state name used in scene files.
func (s State) String() string {
	if s == Stopped {
		return "stopped"
	}
	return "growing"
}

// Point is a position in region coordinates.
type Point struct {
	X, Y float64
}

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 {
	return math.Hypot(q.X-p.X, q.Y-p.Y)
}

// Circle is a packed disk. Its identity is its index in the owning [Field].
type Circle struct {
	Center Point
	Radius float64
	State  State
}

// NewCircle returns a growing circle centered on the nearest integer point
// to (x, y). Rounding keeps coordinates stable for rendering.
func NewCircle(x, y, radius float64) Circle {
	return Circle{
		Center: Point{X: roundHalfUp(x), Y: roundHalfUp(y)},
		Radius: radius,
		State:  Growing,
	}
}

func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }

// IsGrowing reports whether the circle still grows.
func (c Circle) IsGrowing() bool { return c.State == Growing }

// Intersects reports whether the gap between c and o is at most eps.
func (c Circle) Intersects(o Circle, eps float64) bool {
	return c.Center.Dist(o.Center)-eps <= c.Radius+o.Radius
}

// Contain stops the circle when its disk reaches any of the four lines
// x0, y0, x1, y1 and reports whether it did.
func (c *Circle) Contain(x0, y0, x1, y1 float64) bool {
	touches := c.Center.X-c.Radius <= x0 ||
		c.Center.X+c.Radius >= x1 ||
		c.Center.Y-c.Radius <= y0 ||
		c.Center.Y+c.Radius >= y1
	if touches {
		c.Stop()
	}
	return touches
}

// Stop moves the circle to [Stopped]. There is no way back.
func (c *Circle) Stop() { c.State = Stopped }

// Grow adds step to the radius of a growing circle, capped at maxRadius.
// A circle that reaches maxRadius stops.
func (c *Circle) Grow(step, maxRadius float64) {
	if c.State != Growing {
		return
	}
	if c.Radius < maxRadius {
		c.Radius = min(c.Radius+step, maxRadius)
	}
	if c.Radius >= maxRadius {
		c.Stop()
	}
}
