// Package box defines the rectangular layout protocol: immutable min/max
// width and height constraints flowing down the tree, and the per-child
// metadata rectangular parents attach. Geometry for this protocol is a plain
// [geom.Size].
package box

import (
	"fmt"
	"math"

	"github.com/easelkit/easel/pkg/geom"
)

// Constraints bounds the sizes a rectangular node may take. A dimension is
// tight when its min equals its max; constraints are normalized when
// min <= max on both axes. The zero value is tight at 0x0.
type Constraints struct {
	MinWidth, MaxWidth   float64
	MinHeight, MaxHeight float64
}

// Tight returns constraints that admit exactly the size s.
func Tight(s geom.Size) Constraints {
	return Constraints{
		MinWidth: s.Width, MaxWidth: s.Width,
		MinHeight: s.Height, MaxHeight: s.Height,
	}
}

// Loose returns constraints from zero up to s.
func Loose(s geom.Size) Constraints {
	return Constraints{MaxWidth: s.Width, MaxHeight: s.Height}
}

// Unbounded returns constraints with no upper limit on either axis.
func Unbounded() Constraints {
	return Constraints{MaxWidth: math.Inf(1), MaxHeight: math.Inf(1)}
}

// Along builds constraints from main-axis and cross-axis bounds.
func Along(a geom.Axis, minMain, maxMain, minCross, maxCross float64) Constraints {
	if a == geom.Horizontal {
		return Constraints{MinWidth: minMain, MaxWidth: maxMain, MinHeight: minCross, MaxHeight: maxCross}
	}
	return Constraints{MinWidth: minCross, MaxWidth: maxCross, MinHeight: minMain, MaxHeight: maxMain}
}

// HasTightWidth reports whether only one width satisfies the constraints.
func (c Constraints) HasTightWidth() bool {
	return c.MinWidth == c.MaxWidth
}

// HasTightHeight reports whether only one height satisfies the constraints.
func (c Constraints) HasTightHeight() bool {
	return c.MinHeight == c.MaxHeight
}

// IsTight reports whether the constraints admit exactly one size.
func (c Constraints) IsTight() bool {
	return c.HasTightWidth() && c.HasTightHeight()
}

// IsNormalized reports whether min <= max on both axes.
func (c Constraints) IsNormalized() bool {
	return c.MinWidth <= c.MaxWidth && c.MinHeight <= c.MaxHeight
}

// HasBoundedWidth reports whether the max width is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether the max height is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math.IsInf(c.MaxHeight, 1)
}

// ConstrainWidth clamps w into the width bounds.
func (c Constraints) ConstrainWidth(w float64) float64 {
	return geom.Clamp(w, c.MinWidth, c.MaxWidth)
}

// ConstrainHeight clamps h into the height bounds.
func (c Constraints) ConstrainHeight(h float64) float64 {
	return geom.Clamp(h, c.MinHeight, c.MaxHeight)
}

// Constrain clamps s into the constraints on both axes.
func (c Constraints) Constrain(s geom.Size) geom.Size {
	return geom.Size{Width: c.ConstrainWidth(s.Width), Height: c.ConstrainHeight(s.Height)}
}

// Biggest returns the largest size satisfying the constraints.
func (c Constraints) Biggest() geom.Size {
	return geom.Size{Width: c.ConstrainWidth(math.Inf(1)), Height: c.ConstrainHeight(math.Inf(1))}
}

// Smallest returns the smallest size satisfying the constraints.
func (c Constraints) Smallest() geom.Size {
	return geom.Size{Width: c.MinWidth, Height: c.MinHeight}
}

// Loosen drops the minimums to zero, keeping the maximums.
func (c Constraints) Loosen() Constraints {
	return Constraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Deflate shrinks the constraints by the insets on both axes, flooring at
// zero. Padding-style wrappers lay out their child against the deflated
// (and usually loosened) constraints.
func (c Constraints) Deflate(in geom.EdgeInsets) Constraints {
	h, v := in.Horizontal(), in.Vertical()
	return Constraints{
		MinWidth:  math.Max(0, c.MinWidth-h),
		MaxWidth:  math.Max(0, c.MaxWidth-h),
		MinHeight: math.Max(0, c.MinHeight-v),
		MaxHeight: math.Max(0, c.MaxHeight-v),
	}
}

// TightenWidth clamps w into the width bounds and makes the width tight.
func (c Constraints) TightenWidth(w float64) Constraints {
	w = c.ConstrainWidth(w)
	c.MinWidth, c.MaxWidth = w, w
	return c
}

// TightenHeight clamps h into the height bounds and makes the height tight.
func (c Constraints) TightenHeight(h float64) Constraints {
	h = c.ConstrainHeight(h)
	c.MinHeight, c.MaxHeight = h, h
	return c
}

// MainAxis returns the min and max bound along a.
func (c Constraints) MainAxis(a geom.Axis) (min, max float64) {
	if a == geom.Horizontal {
		return c.MinWidth, c.MaxWidth
	}
	return c.MinHeight, c.MaxHeight
}

// String returns the constraints as "min<=w<=max, min<=h<=max".
func (c Constraints) String() string {
	return fmt.Sprintf("%g<=w<=%g, %g<=h<=%g", c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight)
}
