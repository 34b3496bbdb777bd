package easel

import (
	"fmt"
	"math"

	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
)

// Flex lays out any number of children along one axis. Children with
// weight zero take their natural size; children with positive weights
// split the leftover main-axis space in proportion. Cross-axis size is
// the largest child's.
type Flex struct {
	node *BoxNode
	kids *BoxChildren
	axis geom.Axis
}

var _ BoxObject = (*Flex)(nil)

// NewFlex builds an empty run along axis; add children with Append.
func NewFlex(axis geom.Axis) *Flex {
	b := &Flex{axis: axis, kids: NewBoxChildren(Variable())}
	b.node = NewBoxNode(b, b.kids)
	return b
}

// Row builds an empty horizontal run.
func Row() *Flex { return NewFlex(geom.Horizontal) }

// Column builds an empty vertical run.
func Column() *Flex { return NewFlex(geom.Vertical) }

// Node returns the behavior's render node.
func (b *Flex) Node() *BoxNode { return b.node }

// Children returns the behavior's child container.
func (b *Flex) Children() *BoxChildren { return b.kids }

// Axis returns the main axis.
func (b *Flex) Axis() geom.Axis { return b.axis }

// Append adds child with the given flex weight.
func (b *Flex) Append(child *BoxNode, weight int) error {
	if weight < 0 {
		return fmt.Errorf("flex weight cannot be negative, got %d", weight)
	}
	if err := b.kids.Add(child); err != nil {
		return err
	}
	b.kids.Meta(b.kids.Len() - 1).Flex = weight
	return nil
}

// SetWeight changes the i-th child's flex weight.
func (b *Flex) SetWeight(i, weight int) error {
	if weight < 0 {
		return fmt.Errorf("flex weight cannot be negative, got %d", weight)
	}
	if b.kids.Meta(i).Flex == weight {
		return nil
	}
	b.kids.Meta(i).Flex = weight
	return b.node.MarkNeedsLayout()
}

// SizedByParent reports that size depends on the children.
func (b *Flex) SizedByParent() bool { return false }

// PerformLayout runs the three-phase flex algorithm.
func (b *Flex) PerformLayout(n *BoxNode, c box.Constraints) (geom.Size, error) {
	count := b.kids.Len()
	_, maxMain := c.MainAxis(b.axis)
	_, maxCross := c.MainAxis(b.axis.Flip())

	// Phase 1: natural sizes for fixed children, under loosened
	// constraints so they cannot be forced to fill.
	loose := c.Loosen()
	fixed := 0.0
	totalWeight := 0
	for i := 0; i < count; i++ {
		if w := b.kids.Meta(i).Flex; w > 0 {
			totalWeight += w
			continue
		}
		sz, err := LayoutChild(b.kids.At(i), loose)
		if err != nil {
			return geom.Size{}, err
		}
		fixed += sz.Along(b.axis)
	}

	// Phase 2: split the leftover main axis across weights, tight along
	// the main axis. The last flexible child takes the remainder rather
	// than its rounded share, so the children sum to the free space
	// exactly.
	if totalWeight > 0 {
		if math.IsInf(maxMain, 1) {
			return geom.Size{}, fmt.Errorf("flex children need a bounded main axis, got %v", c)
		}
		free := math.Max(0, maxMain-fixed)
		perWeight := free / float64(totalWeight)
		remaining := free
		seen := 0
		for i := 0; i < count; i++ {
			w := b.kids.Meta(i).Flex
			if w == 0 {
				continue
			}
			seen += w
			extent := perWeight * float64(w)
			if seen == totalWeight {
				extent = remaining
			}
			remaining -= extent
			cc := box.Along(b.axis, extent, extent, 0, maxCross)
			if _, err := LayoutChild(b.kids.At(i), cc); err != nil {
				return geom.Size{}, err
			}
		}
	}

	// Phase 3: offsets accumulate in child order.
	pos := 0.0
	cross := 0.0
	for i := 0; i < count; i++ {
		sz, _ := b.kids.At(i).Geometry()
		b.kids.Meta(i).Offset = geom.ByAxis(b.axis, pos, 0)
		pos += sz.Along(b.axis)
		cross = math.Max(cross, sz.Across(b.axis))
	}
	return c.Constrain(geom.SizeByAxis(b.axis, pos, cross)), nil
}

func (b *Flex) Paint(n *BoxNode, p *PaintContext, at geom.Offset) error {
	for i := 0; i < b.kids.Len(); i++ {
		if err := PaintChild(p, b.kids.At(i), at.Add(b.kids.Meta(i).Offset)); err != nil {
			return err
		}
	}
	return nil
}
