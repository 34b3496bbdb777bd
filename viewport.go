package easel

import (
	"fmt"
	"math"

	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
	"github.com/easelkit/easel/pkg/sliver"
)

// maxScrollCorrections bounds the relayout loop a sliver can request
// through ScrollOffsetCorrection within one viewport layout.
const maxScrollCorrections = 8

// Viewport bridges the two layout families: a rectangular node whose
// children speak the scroll protocol. It fills the space its parent
// gives it, walks its slivers in order handing each the scroll state at
// its position, and paints the visible ones shifted by the scroll
// offset.
type Viewport struct {
	node    *BoxNode
	kids    *SliverChildren
	dir     sliver.AxisDirection
	scroll  float64
	content float64
}

var _ BoxObject = (*Viewport)(nil)

// NewViewport builds an empty viewport scrolling along dir.
func NewViewport(dir sliver.AxisDirection) *Viewport {
	v := &Viewport{dir: dir, kids: NewSliverChildren(Variable())}
	v.node = NewNode[box.Constraints, geom.Size](ProtocolBox, v, v.kids)
	return v
}

// Node returns the behavior's render node.
func (v *Viewport) Node() *BoxNode { return v.node }

// Slivers returns the scroll-family child container.
func (v *Viewport) Slivers() *SliverChildren { return v.kids }

// Direction returns the scroll direction.
func (v *Viewport) Direction() sliver.AxisDirection { return v.dir }

// ScrollOffset returns the current scroll position.
func (v *Viewport) ScrollOffset() float64 { return v.scroll }

// ContentExtent returns the total scrollable extent measured by the last
// layout; zero before the first.
func (v *Viewport) ContentExtent() float64 { return v.content }

// ScrollTo jumps to the given offset, floored at zero.
func (v *Viewport) ScrollTo(offset float64) error {
	offset = math.Max(0, offset)
	if offset == v.scroll {
		return nil
	}
	v.scroll = offset
	return v.node.MarkNeedsLayout()
}

// ScrollBy shifts the scroll position by delta.
func (v *Viewport) ScrollBy(delta float64) error {
	return v.ScrollTo(v.scroll + delta)
}

// SizedByParent reports that the viewport fills whatever it is given;
// scrolling never resizes it.
func (v *Viewport) SizedByParent() bool { return true }

// PerformLayout sizes the viewport to its constraints and lays out the
// slivers, retrying when one asks for a scroll offset correction.
func (v *Viewport) PerformLayout(n *BoxNode, c box.Constraints) (geom.Size, error) {
	size := c.Biggest()
	if !size.IsFinite() {
		return geom.Size{}, fmt.Errorf("viewport needs bounded constraints, got %v", c)
	}
	axis := v.dir.Axis()
	mainExtent := size.Along(axis)
	crossExtent := size.Across(axis)
	for attempt := 0; ; attempt++ {
		correction, err := v.layoutSlivers(mainExtent, crossExtent)
		if err != nil {
			return geom.Size{}, err
		}
		if correction == 0 {
			break
		}
		if attempt+1 >= maxScrollCorrections {
			return geom.Size{}, fmt.Errorf("viewport did not converge after %d scroll corrections", maxScrollCorrections)
		}
		v.scroll = math.Max(0, v.scroll+correction)
	}
	return size, nil
}

// layoutSlivers runs one pass over the children in order. Each sliver
// sees how far it has been scrolled past, the scroll extent before it,
// and how much viewport remains to paint into; it reports back the space
// it occupies, which positions the next. A non-zero return is a scroll
// offset correction to apply before retrying.
func (v *Viewport) layoutSlivers(mainExtent, crossExtent float64) (float64, error) {
	axis := v.dir.Axis()
	offset := 0.0
	for i := 0; i < v.kids.Len(); i++ {
		child := v.kids.At(i)
		paintPos := offset - v.scroll
		sc := sliver.NewConstraints(
			v.dir,
			math.Max(0, v.scroll-offset),
			geom.Clamp(mainExtent-math.Max(0, paintPos), 0, mainExtent),
			mainExtent,
			crossExtent,
		)
		sc.PrecedingScrollExtent = offset
		g, err := LayoutChild(child, sc)
		if err != nil {
			return 0, err
		}
		if err := g.Check(sc); err != nil {
			return 0, fmt.Errorf("sliver %v: %w", child.ID(), err)
		}
		if g.ScrollOffsetCorrection != 0 {
			return g.ScrollOffsetCorrection, nil
		}
		meta := v.kids.Meta(i)
		meta.LayoutOffset = offset
		meta.PaintOffset = geom.ByAxis(axis, math.Max(0, paintPos)+g.PaintOrigin, 0)
		offset += g.ScrollExtent
	}
	v.content = offset
	return 0, nil
}

// Paint emits the visible slivers at their computed offsets.
func (v *Viewport) Paint(n *BoxNode, p *PaintContext, at geom.Offset) error {
	for i := 0; i < v.kids.Len(); i++ {
		child := v.kids.At(i)
		g, ok := child.Geometry()
		if !ok || !g.IsVisible() {
			continue
		}
		if err := PaintChild(p, child, at.Add(v.kids.Meta(i).PaintOffset)); err != nil {
			return err
		}
	}
	return nil
}
