package easel

import (
	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
)

// Padding insets its single child: the child is laid out inside the
// insets under loosened constraints, positioned at the top-left inset,
// and the node reports the child's size grown by the insets. The
// incoming constraints are not re-imposed on the result; a parent that
// needs conformance constrains downstream.
type Padding struct {
	node   *BoxNode
	kids   *BoxChildren
	insets geom.EdgeInsets
}

var _ BoxObject = (*Padding)(nil)

// NewPadding wraps child with insets. The child is adopted immediately;
// the container's arity holds it to exactly one child from here on.
func NewPadding(insets geom.EdgeInsets, child *BoxNode) (*Padding, error) {
	b := &Padding{insets: insets, kids: NewBoxChildren(Exact(1))}
	b.node = NewBoxNode(b, b.kids)
	if err := b.kids.Add(child); err != nil {
		return nil, err
	}
	return b, nil
}

// Node returns the behavior's render node.
func (b *Padding) Node() *BoxNode { return b.node }

// Children returns the behavior's child container.
func (b *Padding) Children() *BoxChildren { return b.kids }

// Insets returns the current insets.
func (b *Padding) Insets() geom.EdgeInsets { return b.insets }

// SetInsets changes the insets.
func (b *Padding) SetInsets(insets geom.EdgeInsets) error {
	if insets == b.insets {
		return nil
	}
	b.insets = insets
	return b.node.MarkNeedsLayout()
}

// SizedByParent reports that size follows the child.
func (b *Padding) SizedByParent() bool { return false }

func (b *Padding) PerformLayout(n *BoxNode, c box.Constraints) (geom.Size, error) {
	child := b.kids.Only()
	childSize, err := LayoutChild(child, c.Deflate(b.insets).Loosen())
	if err != nil {
		return geom.Size{}, err
	}
	b.kids.Meta(0).Offset = b.insets.TopLeft()
	return childSize.Expand(b.insets), nil
}

func (b *Padding) Paint(n *BoxNode, p *PaintContext, at geom.Offset) error {
	return PaintChild(p, b.kids.Only(), at.Add(b.kids.Meta(0).Offset))
}
