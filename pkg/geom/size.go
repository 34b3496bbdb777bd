package geom

import (
	"fmt"
	"math"
)

// Size is a width/height pair. It is the geometry produced by rectangular
// layout: dimensions only, no position.
type Size struct {
	Width, Height float64
}

// Sz is a convenience function to create a Size.
func Sz(w, h float64) Size {
	return Size{Width: w, Height: h}
}

// SizeByAxis builds a size from a main-axis and cross-axis dimension.
func SizeByAxis(a Axis, main, cross float64) Size {
	if a == Horizontal {
		return Size{Width: main, Height: cross}
	}
	return Size{Width: cross, Height: main}
}

// IsEmpty reports whether either dimension is non-positive.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// IsFinite reports whether both dimensions are finite.
func (s Size) IsFinite() bool {
	return !math.IsInf(s.Width, 0) && !math.IsInf(s.Height, 0)
}

// Along returns the dimension on the given axis.
func (s Size) Along(a Axis) float64 {
	if a == Horizontal {
		return s.Width
	}
	return s.Height
}

// Across returns the dimension on the axis perpendicular to a.
func (s Size) Across(a Axis) float64 {
	return s.Along(a.Flip())
}

// Expand grows the size by the given insets on all four edges.
func (s Size) Expand(in EdgeInsets) Size {
	return Size{Width: s.Width + in.Horizontal(), Height: s.Height + in.Vertical()}
}

// Max returns the component-wise maximum of two sizes.
func (s Size) Max(t Size) Size {
	return Size{Width: math.Max(s.Width, t.Width), Height: math.Max(s.Height, t.Height)}
}

// String returns the size as "WxH".
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}
