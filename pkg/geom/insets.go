package geom

import "fmt"

// EdgeInsets describes spacing on each of a rectangle's four edges.
type EdgeInsets struct {
	Left, Top, Right, Bottom float64
}

// InsetsAll returns insets with the same value on every edge.
func InsetsAll(v float64) EdgeInsets {
	return EdgeInsets{Left: v, Top: v, Right: v, Bottom: v}
}

// InsetsSymmetric returns insets with h on the left/right edges and v on the
// top/bottom edges.
func InsetsSymmetric(h, v float64) EdgeInsets {
	return EdgeInsets{Left: h, Top: v, Right: h, Bottom: v}
}

// Horizontal returns the combined left and right inset.
func (in EdgeInsets) Horizontal() float64 {
	return in.Left + in.Right
}

// Vertical returns the combined top and bottom inset.
func (in EdgeInsets) Vertical() float64 {
	return in.Top + in.Bottom
}

// TopLeft returns the offset contributed by the leading edges.
func (in EdgeInsets) TopLeft() Offset {
	return Offset{X: in.Left, Y: in.Top}
}

// IsZero reports whether every edge inset is zero.
func (in EdgeInsets) IsZero() bool {
	return in == EdgeInsets{}
}

// String returns the insets as "(l, t, r, b)".
func (in EdgeInsets) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", in.Left, in.Top, in.Right, in.Bottom)
}
