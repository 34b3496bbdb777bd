package easel

import (
	"image/color"

	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
)

// ColoredBox fills whatever space it is given with one color. A leaf
// whose size is the largest the constraints allow, so it is sized by
// parent and re-lays-out only when its constraints change.
type ColoredBox struct {
	node  *BoxNode
	color color.Color
}

var _ BoxObject = (*ColoredBox)(nil)

// NewColoredBox builds a leaf that fills its space with c.
func NewColoredBox(c color.Color) *ColoredBox {
	b := &ColoredBox{color: c}
	b.node = NewBoxNode(b, nil)
	return b
}

// Node returns the behavior's render node.
func (b *ColoredBox) Node() *BoxNode { return b.node }

// Color returns the current fill.
func (b *ColoredBox) Color() color.Color { return b.color }

// SetColor swaps the fill. Paint-only: geometry is untouched.
func (b *ColoredBox) SetColor(c color.Color) error {
	if c == b.color {
		return nil
	}
	b.color = c
	return b.node.MarkNeedsPaint()
}

// SizedByParent reports that size is a function of constraints alone.
func (b *ColoredBox) SizedByParent() bool { return true }

func (b *ColoredBox) PerformLayout(n *BoxNode, c box.Constraints) (geom.Size, error) {
	return c.Biggest(), nil
}

func (b *ColoredBox) Paint(n *BoxNode, p *PaintContext, at geom.Offset) error {
	sz, _ := n.Geometry()
	p.FillRect(geom.RectAt(at, sz), b.color)
	return nil
}
