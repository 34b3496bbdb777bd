package sliver

import (
	"fmt"

	"github.com/easelkit/easel/pkg/geom"
)

// Geometry is what a sliver reports back after layout: how much scrollable
// space it occupies and how much of the viewport it currently paints into.
// The zero value is a zero-extent, invisible sliver.
type Geometry struct {
	// ScrollExtent is the space the sliver occupies in the scrollable
	// area: how far the user must scroll to get past it.
	ScrollExtent float64
	// PaintExtent is the viewport space the sliver currently paints into.
	// At most the constraints' RemainingPaintExtent.
	PaintExtent float64
	// PaintOrigin is the distance from the sliver's layout position to
	// where it starts painting. Usually zero; negative when the sliver
	// paints before its leading edge.
	PaintOrigin float64
	// LayoutExtent is the space the sliver consumes for positioning the
	// next sliver. Defaults to PaintExtent via NewGeometry.
	LayoutExtent float64
	// MaxPaintExtent is the most the sliver could paint given unlimited
	// room. Defaults to PaintExtent via NewGeometry.
	MaxPaintExtent float64
	// HitTestExtent is the space that responds to hit testing. Defaults
	// to PaintExtent via NewGeometry.
	HitTestExtent float64
	// CacheExtent is the space the sliver occupies in the viewport's
	// cache region. Defaults to PaintExtent via NewGeometry.
	CacheExtent float64
	// ScrollOffsetCorrection, when non-zero, asks the viewport to adjust
	// its scroll offset by this amount and lay out again.
	ScrollOffsetCorrection float64
	// Visible reports whether the sliver should paint this frame.
	Visible bool
	// HasVisualOverflow reports painting outside the allotted extent,
	// signalling the viewport to clip.
	HasVisualOverflow bool
}

// NewGeometry builds a geometry from the three primary extents, defaulting
// the secondary extents to the paint extent and deriving visibility.
func NewGeometry(scrollExtent, paintExtent, paintOrigin float64) Geometry {
	return Geometry{
		ScrollExtent:   scrollExtent,
		PaintExtent:    paintExtent,
		PaintOrigin:    paintOrigin,
		LayoutExtent:   paintExtent,
		MaxPaintExtent: paintExtent,
		HitTestExtent:  paintExtent,
		CacheExtent:    paintExtent,
		Visible:        paintExtent > 0,
	}
}

// WithLayoutExtent returns a copy with an explicit layout extent.
func (g Geometry) WithLayoutExtent(extent float64) Geometry {
	g.LayoutExtent = extent
	return g
}

// WithMaxPaintExtent returns a copy with an explicit max paint extent.
func (g Geometry) WithMaxPaintExtent(extent float64) Geometry {
	g.MaxPaintExtent = extent
	return g
}

// WithVisible returns a copy with visibility forced.
func (g Geometry) WithVisible(visible bool) Geometry {
	g.Visible = visible
	return g
}

// WithOverflow returns a copy flagged as visually overflowing.
func (g Geometry) WithOverflow() Geometry {
	g.HasVisualOverflow = true
	return g
}

// IsVisible reports whether the sliver paints anything this frame.
func (g Geometry) IsVisible() bool {
	return g.Visible && g.PaintExtent > 0
}

// IsEmpty reports whether the sliver occupies no space at all.
func (g Geometry) IsEmpty() bool {
	return g.ScrollExtent == 0 && g.PaintExtent == 0
}

// String returns the primary extents as "scroll g / paint g", the pair
// that matters when reading a tree dump.
func (g Geometry) String() string {
	return fmt.Sprintf("scroll %g / paint %g", g.ScrollExtent, g.PaintExtent)
}

// Check validates the geometry against its constraints. Layout fails fast
// on the first violation.
func (g Geometry) Check(c Constraints) error {
	switch {
	case g.ScrollExtent < 0:
		return fmt.Errorf("sliver geometry: negative scroll extent %g", g.ScrollExtent)
	case g.PaintExtent < 0:
		return fmt.Errorf("sliver geometry: negative paint extent %g", g.PaintExtent)
	case g.PaintExtent > c.RemainingPaintExtent:
		return fmt.Errorf("sliver geometry: paint extent %g exceeds remaining paint extent %g",
			g.PaintExtent, c.RemainingPaintExtent)
	case g.LayoutExtent > g.PaintExtent:
		return fmt.Errorf("sliver geometry: layout extent %g exceeds paint extent %g",
			g.LayoutExtent, g.PaintExtent)
	}
	return nil
}

// ParentData is the metadata a viewport attaches to each sliver child.
type ParentData struct {
	// LayoutOffset is the child's distance from the start of the
	// viewport's content, in scroll coordinates.
	LayoutOffset float64
	// PaintOffset is where the child paints relative to the viewport's
	// origin, written during the viewport's layout.
	PaintOffset geom.Offset
}
