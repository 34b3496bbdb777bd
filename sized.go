package easel

import (
	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
)

// SizedBox imposes a preferred size, clamped by the incoming constraints,
// and lays out its optional child tight to the result.
type SizedBox struct {
	node *BoxNode
	kids *BoxChildren
	size geom.Size
}

var _ BoxObject = (*SizedBox)(nil)

// NewSizedBox builds a childless fixed-size node; attach a child with
// SetChild.
func NewSizedBox(size geom.Size) *SizedBox {
	b := &SizedBox{size: size, kids: NewBoxChildren(Optional())}
	b.node = NewBoxNode(b, b.kids)
	return b
}

// Node returns the behavior's render node.
func (b *SizedBox) Node() *BoxNode { return b.node }

// Children returns the behavior's child container.
func (b *SizedBox) Children() *BoxChildren { return b.kids }

// SetChild replaces the optional child; nil leaves the box empty.
func (b *SizedBox) SetChild(child *BoxNode) error {
	if cur := b.kids.Maybe(); cur != nil {
		if err := b.kids.Remove(cur); err != nil {
			return err
		}
	}
	if child == nil {
		return nil
	}
	return b.kids.Add(child)
}

// PreferredSize returns the size the box asks for.
func (b *SizedBox) PreferredSize() geom.Size { return b.size }

// Resize changes the preferred size.
func (b *SizedBox) Resize(size geom.Size) error {
	if size == b.size {
		return nil
	}
	b.size = size
	return b.node.MarkNeedsLayout()
}

// SizedByParent reports that size never depends on the child.
func (b *SizedBox) SizedByParent() bool { return true }

func (b *SizedBox) PerformLayout(n *BoxNode, c box.Constraints) (geom.Size, error) {
	sz := c.Constrain(b.size)
	if child := b.kids.Maybe(); child != nil {
		if _, err := LayoutChild(child, box.Tight(sz)); err != nil {
			return geom.Size{}, err
		}
		b.kids.Meta(0).Offset = geom.Offset{}
	}
	return sz, nil
}

func (b *SizedBox) Paint(n *BoxNode, p *PaintContext, at geom.Offset) error {
	if child := b.kids.Maybe(); child != nil {
		return PaintChild(p, child, at.Add(b.kids.Meta(0).Offset))
	}
	return nil
}
