package geom

import "fmt"

// Offset is a 2D translation, typically a child's position relative to its
// parent's origin.
type Offset struct {
	X, Y float64
}

// Off is a convenience function to create an Offset.
func Off(x, y float64) Offset {
	return Offset{X: x, Y: y}
}

// Add returns the sum of two offsets.
func (o Offset) Add(p Offset) Offset {
	return Offset{X: o.X + p.X, Y: o.Y + p.Y}
}

// Sub returns the difference of two offsets.
func (o Offset) Sub(p Offset) Offset {
	return Offset{X: o.X - p.X, Y: o.Y - p.Y}
}

// Scale returns the offset scaled by s.
func (o Offset) Scale(s float64) Offset {
	return Offset{X: o.X * s, Y: o.Y * s}
}

// IsZero reports whether the offset is exactly (0, 0).
func (o Offset) IsZero() bool {
	return o.X == 0 && o.Y == 0
}

// Along returns the component of the offset on the given axis.
func (o Offset) Along(a Axis) float64 {
	if a == Horizontal {
		return o.X
	}
	return o.Y
}

// ByAxis builds an offset from a main-axis and cross-axis component.
func ByAxis(a Axis, main, cross float64) Offset {
	if a == Horizontal {
		return Offset{X: main, Y: cross}
	}
	return Offset{X: cross, Y: main}
}

// String returns the offset as "(x, y)".
func (o Offset) String() string {
	return fmt.Sprintf("(%g, %g)", o.X, o.Y)
}
