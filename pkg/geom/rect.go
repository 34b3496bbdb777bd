package geom

import (
	"fmt"
	"math"
)

// Rect is an axis-aligned rectangle positioned at (X, Y).
type Rect struct {
	X, Y, Width, Height float64
}

// RectAt builds a rectangle from an origin offset and a size.
func RectAt(o Offset, s Size) Rect {
	return Rect{X: o.X, Y: o.Y, Width: s.Width, Height: s.Height}
}

// Origin returns the rectangle's top-left corner.
func (r Rect) Origin() Offset {
	return Offset{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains reports whether the point lies inside the rectangle. Edges on the
// min side are inclusive, on the max side exclusive.
func (r Rect) Contains(o Offset) bool {
	return o.X >= r.X && o.X < r.X+r.Width && o.Y >= r.Y && o.Y < r.Y+r.Height
}

// Intersect returns the overlapping region of two rectangles. The result is
// empty when they do not overlap.
func (r Rect) Intersect(q Rect) Rect {
	x0 := math.Max(r.X, q.X)
	y0 := math.Max(r.Y, q.Y)
	x1 := math.Min(r.X+r.Width, q.X+q.Width)
	y1 := math.Min(r.Y+r.Height, q.Y+q.Height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Translate returns the rectangle shifted by o.
func (r Rect) Translate(o Offset) Rect {
	return Rect{X: r.X + o.X, Y: r.Y + o.Y, Width: r.Width, Height: r.Height}
}

// String returns the rectangle as "WxH@(x, y)".
func (r Rect) String() string {
	return fmt.Sprintf("%gx%g@(%g, %g)", r.Width, r.Height, r.X, r.Y)
}
