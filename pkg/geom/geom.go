// Package geom provides the float64 geometry primitives shared across the
// layout engine: sizes, offsets, rectangles, edge insets, and axes.
package geom

// Axis identifies one of the two layout axes.
type Axis uint8

const (
	// Horizontal runs along the x axis.
	Horizontal Axis = iota
	// Vertical runs along the y axis.
	Vertical
)

// Flip returns the perpendicular axis.
func (a Axis) Flip() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// String returns the axis name.
func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Clamp limits v to the range [lo, hi]. When lo > hi, lo wins, matching the
// constraint-resolution rule used throughout the layout engine.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
