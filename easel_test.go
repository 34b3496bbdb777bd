package easel

import (
	"image/color"

	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
)

// probeBox is the workhorse test behavior: a rectangular node that takes
// its preferred size within the constraints, stacks any children at its
// origin under loosened constraints, and counts every layout and paint
// so tests can see which tiers of the pipeline actually ran.
type probeBox struct {
	node *BoxNode
	kids *BoxChildren
	pref geom.Size

	sizedByParent bool
	layouts       int
	paints        int
	trace         *[]NodeID

	// onLayout, when set, runs at the top of PerformLayout. Tests use it
	// to raise marks mid-flush.
	onLayout func(*probeBox)
	// layoutErr, when set, fails PerformLayout.
	layoutErr error
}

var _ BoxObject = (*probeBox)(nil)

func newProbeBox(w, h float64) *probeBox {
	return newProbeWith(Variable(), w, h)
}

// newProbeWith picks the container arity, for tests about the container
// itself.
func newProbeWith(a Arity, w, h float64) *probeBox {
	p := &probeBox{pref: geom.Sz(w, h), kids: NewBoxChildren(a)}
	p.node = NewBoxNode(p, p.kids)
	return p
}

// newGreedyProbe reports sized-by-parent and fills its constraints, like
// ColoredBox but with counters.
func newGreedyProbe() *probeBox {
	p := &probeBox{sizedByParent: true, kids: NewBoxChildren(Variable())}
	p.node = NewBoxNode(p, p.kids)
	return p
}

func (p *probeBox) SizedByParent() bool { return p.sizedByParent }

func (p *probeBox) PerformLayout(n *BoxNode, c box.Constraints) (geom.Size, error) {
	p.layouts++
	if p.trace != nil {
		*p.trace = append(*p.trace, n.ID())
	}
	if p.onLayout != nil {
		p.onLayout(p)
	}
	if p.layoutErr != nil {
		return geom.Size{}, p.layoutErr
	}
	loose := c.Loosen()
	for i := 0; i < p.kids.Len(); i++ {
		if _, err := LayoutChild(p.kids.At(i), loose); err != nil {
			return geom.Size{}, err
		}
		p.kids.Meta(i).Offset = geom.Offset{}
	}
	if p.sizedByParent {
		return c.Biggest(), nil
	}
	return c.Constrain(p.pref), nil
}

func (p *probeBox) Paint(n *BoxNode, pc *PaintContext, at geom.Offset) error {
	p.paints++
	sz, _ := n.Geometry()
	pc.FillRect(geom.RectAt(at, sz), color.Gray{Y: 128})
	for i := 0; i < p.kids.Len(); i++ {
		if err := PaintChild(pc, p.kids.At(i), at.Add(p.kids.Meta(i).Offset)); err != nil {
			return err
		}
	}
	return nil
}

// mustCoordinator builds a coordinator or stops the test.
func mustCoordinator(t interface{ Fatalf(string, ...any) }, opts ...Option) *Coordinator {
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

// boxTight is shorthand for tight box constraints.
func boxTight(w, h float64) box.Constraints {
	return box.Tight(geom.Sz(w, h))
}
