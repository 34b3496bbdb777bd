package easel

import (
	"math"

	"github.com/easelkit/easel/pkg/geom"
	"github.com/easelkit/easel/pkg/sliver"
)

// SliverGap occupies a fixed scrollable extent and paints nothing.
type SliverGap struct {
	node   *SliverNode
	extent float64
}

var _ SliverObject = (*SliverGap)(nil)

// NewSliverGap builds a gap of the given extent, floored at zero.
func NewSliverGap(extent float64) *SliverGap {
	g := &SliverGap{extent: math.Max(0, extent)}
	g.node = NewSliverNode(g, nil)
	return g
}

// Node returns the behavior's render node.
func (g *SliverGap) Node() *SliverNode { return g.node }

// Extent returns the gap's scrollable extent.
func (g *SliverGap) Extent() float64 { return g.extent }

// SetExtent resizes the gap.
func (g *SliverGap) SetExtent(extent float64) error {
	extent = math.Max(0, extent)
	if extent == g.extent {
		return nil
	}
	g.extent = extent
	return g.node.MarkNeedsLayout()
}

// SizedByParent is false: the extent parameter feeds geometry, so marks
// must reach the viewport, which repositions the slivers after it.
func (g *SliverGap) SizedByParent() bool { return false }

func (g *SliverGap) PerformLayout(n *SliverNode, c sliver.Constraints) (sliver.Geometry, error) {
	painted := geom.Clamp(g.extent-c.CorrectedScrollOffset(), 0, c.RemainingPaintExtent)
	return sliver.NewGeometry(g.extent, painted, 0).
		WithMaxPaintExtent(g.extent).
		WithVisible(false), nil
}

func (g *SliverGap) Paint(n *SliverNode, p *PaintContext, at geom.Offset) error {
	return nil
}

// SliverBox adapts a single rectangular child into the scroll family:
// the child is laid out with a tight cross axis and an unbounded main
// axis, and its main-axis size becomes the sliver's scroll extent. The
// child sizes itself here; wrap greedy children in a fixed-size box.
type SliverBox struct {
	node *SliverNode
	kids *BoxChildren
}

var _ SliverObject = (*SliverBox)(nil)

// NewSliverBox wraps child as a sliver.
func NewSliverBox(child *BoxNode) (*SliverBox, error) {
	s := &SliverBox{kids: NewBoxChildren(Exact(1))}
	s.node = NewNode[sliver.Constraints, sliver.Geometry](ProtocolSliver, s, s.kids)
	if err := s.kids.Add(child); err != nil {
		return nil, err
	}
	return s, nil
}

// Node returns the behavior's render node.
func (s *SliverBox) Node() *SliverNode { return s.node }

// Child returns the wrapped rectangular child.
func (s *SliverBox) Child() *BoxNode { return s.kids.Only() }

// SizedByParent is false: geometry tracks the child's measured size.
func (s *SliverBox) SizedByParent() bool { return false }

func (s *SliverBox) PerformLayout(n *SliverNode, c sliver.Constraints) (sliver.Geometry, error) {
	child := s.kids.Only()
	sz, err := LayoutChild(child, c.BoxConstraints(0, math.Inf(1)))
	if err != nil {
		return sliver.Geometry{}, err
	}
	extent := sz.Along(c.Axis())
	scrolled := c.CorrectedScrollOffset()
	painted := geom.Clamp(extent-scrolled, 0, c.RemainingPaintExtent)
	// The child paints whole; scrolled-past content hangs above the
	// sliver's paint position.
	s.kids.Meta(0).Offset = geom.ByAxis(c.Axis(), -scrolled, 0)
	g := sliver.NewGeometry(extent, painted, 0).WithMaxPaintExtent(extent)
	if painted < extent {
		g = g.WithOverflow()
	}
	return g, nil
}

func (s *SliverBox) Paint(n *SliverNode, p *PaintContext, at geom.Offset) error {
	return PaintChild(p, s.kids.Only(), at.Add(s.kids.Meta(0).Offset))
}
