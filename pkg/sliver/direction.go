// Package sliver defines the scroll-viewport layout protocol: constraints
// carrying scroll state down to each viewport child, and the extent-based
// geometry those children report back.
package sliver

import "github.com/easelkit/easel/pkg/geom"

// AxisDirection is the direction content is ordered along an axis.
type AxisDirection uint8

const (
	// TopToBottom orders content downward along the vertical axis.
	TopToBottom AxisDirection = iota
	// BottomToTop orders content upward along the vertical axis.
	BottomToTop
	// LeftToRight orders content rightward along the horizontal axis.
	LeftToRight
	// RightToLeft orders content leftward along the horizontal axis.
	RightToLeft
)

// Axis returns the axis the direction runs along.
func (d AxisDirection) Axis() geom.Axis {
	if d == LeftToRight || d == RightToLeft {
		return geom.Horizontal
	}
	return geom.Vertical
}

// Reverse returns the opposite direction on the same axis.
func (d AxisDirection) Reverse() AxisDirection {
	switch d {
	case TopToBottom:
		return BottomToTop
	case BottomToTop:
		return TopToBottom
	case LeftToRight:
		return RightToLeft
	default:
		return LeftToRight
	}
}

// Flip returns the default direction on the perpendicular axis.
func (d AxisDirection) Flip() AxisDirection {
	if d.Axis() == geom.Vertical {
		return LeftToRight
	}
	return TopToBottom
}

// String returns the direction name.
func (d AxisDirection) String() string {
	switch d {
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	case LeftToRight:
		return "left-to-right"
	default:
		return "right-to-left"
	}
}

// GrowthDirection is the direction a sliver's content grows relative to the
// viewport's axis direction.
type GrowthDirection uint8

const (
	// GrowthForward grows content in the axis direction.
	GrowthForward GrowthDirection = iota
	// GrowthReverse grows content against the axis direction.
	GrowthReverse
)

// String returns the growth direction name.
func (g GrowthDirection) String() string {
	if g == GrowthForward {
		return "forward"
	}
	return "reverse"
}
