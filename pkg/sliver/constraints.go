package sliver

import (
	"fmt"
	"math"

	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
)

// Constraints is the layout input a viewport hands each of its slivers:
// where the sliver sits in the scrollable area and how much viewport space
// is still available to paint into.
type Constraints struct {
	// AxisDirection orders the viewport's content.
	AxisDirection AxisDirection
	// GrowthDirection is the sliver's growth relative to AxisDirection.
	GrowthDirection GrowthDirection
	// CrossAxisDirection orders content across the main axis.
	CrossAxisDirection AxisDirection

	// ScrollOffset is how far past this sliver's leading edge the viewport
	// has scrolled. Zero when the leading edge is at or after the
	// viewport's edge; negative values express overlap from the previous
	// sliver.
	ScrollOffset float64
	// PrecedingScrollExtent is the total scroll extent of all slivers
	// before this one.
	PrecedingScrollExtent float64
	// RemainingPaintExtent is the viewport space left to paint into.
	RemainingPaintExtent float64
	// CrossAxisExtent is the viewport's extent across the main axis.
	CrossAxisExtent float64
	// ViewportMainAxisExtent is the viewport's full main-axis extent.
	ViewportMainAxisExtent float64
}

// NewConstraints returns constraints for a sliver at the top of a viewport,
// deriving the cross-axis direction from the axis direction.
func NewConstraints(dir AxisDirection, scrollOffset, remainingPaint, viewportExtent, crossExtent float64) Constraints {
	return Constraints{
		AxisDirection:          dir,
		GrowthDirection:        GrowthForward,
		CrossAxisDirection:     dir.Flip(),
		ScrollOffset:           scrollOffset,
		RemainingPaintExtent:   remainingPaint,
		CrossAxisExtent:        crossExtent,
		ViewportMainAxisExtent: viewportExtent,
	}
}

// Axis returns the axis the viewport scrolls along.
func (c Constraints) Axis() geom.Axis {
	return c.AxisDirection.Axis()
}

// IsTight reports whether the constraints admit exactly one geometry.
// Sliver geometry always depends on scroll state, so this is always false;
// slivers never act as relayout boundaries.
func (c Constraints) IsTight() bool {
	return false
}

// IsNormalized reports whether the extents are non-negative.
func (c Constraints) IsNormalized() bool {
	return c.RemainingPaintExtent >= 0 && c.ViewportMainAxisExtent >= 0 && c.CrossAxisExtent >= 0
}

// Overlap returns how far the previous sliver painted into this one's
// space. Non-zero only when the scroll offset is negative.
func (c Constraints) Overlap() float64 {
	if c.ScrollOffset < 0 {
		return -c.ScrollOffset
	}
	return 0
}

// CorrectedScrollOffset returns the scroll offset floored at zero.
func (c Constraints) CorrectedScrollOffset() float64 {
	return math.Max(0, c.ScrollOffset)
}

// BoxConstraints converts the sliver constraints into rectangular
// constraints for a box child: tight across the main axis, bounded by
// [minExtent, maxExtent] along it.
func (c Constraints) BoxConstraints(minExtent, maxExtent float64) box.Constraints {
	return box.Along(c.Axis(), minExtent, maxExtent, c.CrossAxisExtent, c.CrossAxisExtent)
}

// String returns a compact description of the scroll state.
func (c Constraints) String() string {
	return fmt.Sprintf("%s scroll=%g remaining=%g cross=%g viewport=%g",
		c.AxisDirection, c.ScrollOffset, c.RemainingPaintExtent, c.CrossAxisExtent, c.ViewportMainAxisExtent)
}
