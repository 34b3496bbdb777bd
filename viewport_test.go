package easel

import (
	"strings"
	"testing"

	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
	"github.com/easelkit/easel/pkg/sliver"
)

// stubSliver is a scroll-family test behavior with a fixed extent and a
// programmable scroll offset correction.
type stubSliver struct {
	node    *SliverNode
	extent  float64
	layouts int

	// correctOnce asks the viewport for one correction, then behaves.
	correctOnce float64
	// correctAlways never stops asking; the viewport must give up.
	correctAlways float64
	// overpaint claims more paint extent than the viewport has left.
	overpaint bool
}

var _ SliverObject = (*stubSliver)(nil)

func newStubSliver(extent float64) *stubSliver {
	s := &stubSliver{extent: extent}
	s.node = NewSliverNode(s, nil)
	return s
}

func (s *stubSliver) SizedByParent() bool { return false }

func (s *stubSliver) PerformLayout(n *SliverNode, c sliver.Constraints) (sliver.Geometry, error) {
	s.layouts++
	if s.correctAlways != 0 {
		return sliver.Geometry{ScrollOffsetCorrection: s.correctAlways}, nil
	}
	if s.correctOnce != 0 {
		corr := s.correctOnce
		s.correctOnce = 0
		return sliver.Geometry{ScrollOffsetCorrection: corr}, nil
	}
	if s.overpaint {
		return sliver.NewGeometry(s.extent, c.RemainingPaintExtent+50, 0), nil
	}
	painted := geom.Clamp(s.extent-c.CorrectedScrollOffset(), 0, c.RemainingPaintExtent)
	return sliver.NewGeometry(s.extent, painted, 0), nil
}

func (s *stubSliver) Paint(n *SliverNode, p *PaintContext, at geom.Offset) error {
	return nil
}

// scrollDemo builds the reference scene: a 360x600 viewport over a 200
// panel, a 100 gap, and a 300 panel.
func scrollDemo(t *testing.T) (*Viewport, *probeBox, *SliverGap, *probeBox) {
	t.Helper()
	vp := NewViewport(sliver.TopToBottom)
	p1 := newProbeBox(360, 200)
	s1, err := NewSliverBox(p1.node)
	if err != nil {
		t.Fatalf("NewSliverBox() error = %v", err)
	}
	gap := NewSliverGap(100)
	p2 := newProbeBox(360, 300)
	s2, err := NewSliverBox(p2.node)
	if err != nil {
		t.Fatalf("NewSliverBox() error = %v", err)
	}
	for _, n := range []*SliverNode{s1.Node(), gap.Node(), s2.Node()} {
		if err := vp.Slivers().Add(n); err != nil {
			t.Fatalf("Add() error = %v", err)
		}
	}
	return vp, p1, gap, p2
}

func TestViewport_LayoutAtRest(t *testing.T) {
	vp, p1, _, p2 := scrollDemo(t)
	got, err := LayoutChild(vp.Node(), boxTight(360, 600))
	if err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	if want := geom.Sz(360, 600); got != want {
		t.Errorf("viewport geometry = %v, want %v", got, want)
	}
	if vp.ContentExtent() != 600 {
		t.Errorf("ContentExtent() = %v, want 600", vp.ContentExtent())
	}

	// Slivers stack by scroll extent.
	wantLayout := []float64{0, 200, 300}
	wantPaintY := []float64{0, 200, 300}
	for i, want := range wantLayout {
		meta := vp.Slivers().Meta(i)
		if meta.LayoutOffset != want {
			t.Errorf("sliver %d LayoutOffset = %v, want %v", i, meta.LayoutOffset, want)
		}
		if meta.PaintOffset != geom.Off(0, wantPaintY[i]) {
			t.Errorf("sliver %d PaintOffset = %v, want (0, %v)", i, meta.PaintOffset, wantPaintY[i])
		}
	}

	// The panels size themselves under a tight cross axis.
	s1, _ := p1.node.Geometry()
	if want := geom.Sz(360, 200); s1 != want {
		t.Errorf("first panel geometry = %v, want %v", s1, want)
	}
	g1, _ := vp.Slivers().At(0).Geometry()
	if g1.ScrollExtent != 200 || g1.PaintExtent != 200 || !g1.IsVisible() {
		t.Errorf("first sliver geometry = %+v, want 200/200 visible", g1)
	}
	gGap, _ := vp.Slivers().At(1).Geometry()
	if gGap.ScrollExtent != 100 || gGap.IsVisible() {
		t.Errorf("gap geometry = %+v, want 100 scroll extent, never visible", gGap)
	}

	canvas := &RecordingCanvas{}
	if err := PaintChild(NewPaintContext(canvas), vp.Node(), geom.Off(0, 0)); err != nil {
		t.Fatalf("PaintChild() error = %v", err)
	}
	if len(canvas.Ops) != 2 {
		t.Fatalf("canvas ops = %d, want 2 (the gap paints nothing)", len(canvas.Ops))
	}
	if canvas.Ops[0].Rect != (geom.Rect{X: 0, Y: 0, Width: 360, Height: 200}) {
		t.Errorf("first panel painted at %v, want 360x200@(0, 0)", canvas.Ops[0].Rect)
	}
	if canvas.Ops[1].Rect != (geom.Rect{X: 0, Y: 300, Width: 360, Height: 300}) {
		t.Errorf("second panel painted at %v, want 360x300@(0, 300)", canvas.Ops[1].Rect)
	}
	if p1.paints != 1 || p2.paints != 1 {
		t.Errorf("panel paints = %d/%d, want 1/1", p1.paints, p2.paints)
	}
}

func TestViewport_Scrolled(t *testing.T) {
	vp, p1, _, p2 := scrollDemo(t)
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	boxLayouts := p1.layouts + p2.layouts

	if err := vp.ScrollTo(250); err != nil {
		t.Fatalf("ScrollTo() error = %v", err)
	}
	if !vp.Node().NeedsLayout() {
		t.Fatal("scroll did not mark the viewport")
	}
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}

	// The first panel is fully scrolled past.
	g1, _ := vp.Slivers().At(0).Geometry()
	if g1.PaintExtent != 0 || g1.IsVisible() {
		t.Errorf("first sliver geometry = %+v, want scrolled out of view", g1)
	}
	if !g1.HasVisualOverflow {
		t.Error("clipped sliver did not report overflow")
	}
	// The gap is half consumed.
	gGap, _ := vp.Slivers().At(1).Geometry()
	if gGap.PaintExtent != 50 {
		t.Errorf("gap paint extent = %v, want 50", gGap.PaintExtent)
	}
	// The second panel starts 50 below the viewport edge.
	if off := vp.Slivers().Meta(2).PaintOffset; off != geom.Off(0, 50) {
		t.Errorf("second panel PaintOffset = %v, want (0, 50)", off)
	}
	if vp.ContentExtent() != 600 {
		t.Errorf("ContentExtent() = %v, want 600 regardless of scroll", vp.ContentExtent())
	}

	// Scrolling repositions slivers without re-laying the box content.
	if p1.layouts+p2.layouts != boxLayouts {
		t.Errorf("box layouts = %d, want %d (scroll must not re-lay panels)",
			p1.layouts+p2.layouts, boxLayouts)
	}

	canvas := &RecordingCanvas{}
	if err := PaintChild(NewPaintContext(canvas), vp.Node(), geom.Off(0, 0)); err != nil {
		t.Fatalf("PaintChild() error = %v", err)
	}
	if len(canvas.Ops) != 1 {
		t.Fatalf("canvas ops = %d, want 1 (only the second panel shows)", len(canvas.Ops))
	}
	if canvas.Ops[0].Rect != (geom.Rect{X: 0, Y: 50, Width: 360, Height: 300}) {
		t.Errorf("second panel painted at %v, want 360x300@(0, 50)", canvas.Ops[0].Rect)
	}
	if p1.paints != 0 {
		t.Errorf("hidden panel painted %d times", p1.paints)
	}
}

func TestViewport_PartialScroll(t *testing.T) {
	vp, p1, _, _ := scrollDemo(t)
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	if err := vp.ScrollTo(120); err != nil {
		t.Fatalf("ScrollTo() error = %v", err)
	}
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}

	// 120 of the first panel is gone; the rest paints at the top with
	// the scrolled-past part hanging above.
	g1, _ := vp.Slivers().At(0).Geometry()
	if g1.PaintExtent != 80 || !g1.IsVisible() || !g1.HasVisualOverflow {
		t.Errorf("first sliver geometry = %+v, want 80 painted with overflow", g1)
	}
	if off := vp.Slivers().Meta(0).PaintOffset; off != geom.Off(0, 0) {
		t.Errorf("first sliver PaintOffset = %v, want (0, 0)", off)
	}

	canvas := &RecordingCanvas{}
	if err := PaintChild(NewPaintContext(canvas), vp.Node(), geom.Off(0, 0)); err != nil {
		t.Fatalf("PaintChild() error = %v", err)
	}
	// The panel's box paints whole, shifted up by the scrolled amount.
	if canvas.Ops[0].Rect != (geom.Rect{X: 0, Y: -120, Width: 360, Height: 200}) {
		t.Errorf("first panel painted at %v, want 360x200@(0, -120)", canvas.Ops[0].Rect)
	}
	if p1.paints != 1 {
		t.Errorf("first panel paints = %d, want 1", p1.paints)
	}
}

func TestViewport_ScrollBounds(t *testing.T) {
	vp, _, _, _ := scrollDemo(t)
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}

	if err := vp.ScrollTo(-40); err != nil {
		t.Fatalf("ScrollTo() error = %v", err)
	}
	if vp.ScrollOffset() != 0 {
		t.Errorf("ScrollOffset() = %v, want floored at 0", vp.ScrollOffset())
	}
	if vp.Node().NeedsLayout() {
		t.Error("no-op scroll marked the viewport")
	}

	if err := vp.ScrollBy(30); err != nil {
		t.Fatalf("ScrollBy() error = %v", err)
	}
	if vp.ScrollOffset() != 30 {
		t.Errorf("ScrollOffset() = %v, want 30", vp.ScrollOffset())
	}
}

func TestViewport_GapResizeReachesViewport(t *testing.T) {
	vp, _, gap, _ := scrollDemo(t)
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}

	// The gap is not a relayout boundary: its size feeds the positions
	// of everything after it, so the mark must climb to the viewport.
	if err := gap.SetExtent(150); err != nil {
		t.Fatalf("SetExtent() error = %v", err)
	}
	if !vp.Node().NeedsLayout() {
		t.Fatal("gap resize did not reach the viewport")
	}
	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	if off := vp.Slivers().Meta(2).LayoutOffset; off != 350 {
		t.Errorf("second panel LayoutOffset = %v, want 350", off)
	}
	if vp.ContentExtent() != 650 {
		t.Errorf("ContentExtent() = %v, want 650", vp.ContentExtent())
	}
}

func TestViewport_ScrollCorrection(t *testing.T) {
	vp := NewViewport(sliver.TopToBottom)
	s := newStubSliver(400)
	s.correctOnce = 120
	if err := vp.Slivers().Add(s.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if _, err := LayoutChild(vp.Node(), boxTight(360, 600)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	if vp.ScrollOffset() != 120 {
		t.Errorf("ScrollOffset() = %v, want corrected to 120", vp.ScrollOffset())
	}
	if s.layouts != 2 {
		t.Errorf("sliver layouts = %d, want 2 (correction forces a retry)", s.layouts)
	}
}

func TestViewport_CorrectionDivergence(t *testing.T) {
	vp := NewViewport(sliver.TopToBottom)
	s := newStubSliver(400)
	s.correctAlways = 5
	if err := vp.Slivers().Add(s.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err := LayoutChild(vp.Node(), boxTight(360, 600))
	if err == nil || !strings.Contains(err.Error(), "did not converge") {
		t.Fatalf("LayoutChild() error = %v, want convergence failure", err)
	}
	if s.layouts != maxScrollCorrections {
		t.Errorf("sliver layouts = %d, want %d", s.layouts, maxScrollCorrections)
	}
}

func TestViewport_RejectsBadGeometry(t *testing.T) {
	vp := NewViewport(sliver.TopToBottom)
	s := newStubSliver(100)
	s.overpaint = true
	if err := vp.Slivers().Add(s.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	_, err := LayoutChild(vp.Node(), boxTight(360, 600))
	if err == nil || !strings.Contains(err.Error(), "exceeds remaining paint extent") {
		t.Fatalf("LayoutChild() error = %v, want geometry check failure", err)
	}
}

func TestViewport_NeedsBoundedConstraints(t *testing.T) {
	vp := NewViewport(sliver.TopToBottom)
	_, err := LayoutChild(vp.Node(), box.Unbounded())
	if err == nil || !strings.Contains(err.Error(), "bounded constraints") {
		t.Fatalf("LayoutChild() error = %v, want bounded-constraints failure", err)
	}
}

func TestViewport_Horizontal(t *testing.T) {
	vp := NewViewport(sliver.LeftToRight)
	panel := newProbeBox(200, 80)
	sb, err := NewSliverBox(panel.node)
	if err != nil {
		t.Fatalf("NewSliverBox() error = %v", err)
	}
	if err := vp.Slivers().Add(sb.Node()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := vp.Slivers().Add(NewSliverGap(40).Node()); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if _, err := LayoutChild(vp.Node(), boxTight(500, 80)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	if vp.ContentExtent() != 240 {
		t.Errorf("ContentExtent() = %v, want 240", vp.ContentExtent())
	}
	// Cross axis is tight: the panel is forced to the viewport's height.
	sz, _ := panel.node.Geometry()
	if want := geom.Sz(200, 80); sz != want {
		t.Errorf("panel geometry = %v, want %v", sz, want)
	}
	if off := vp.Slivers().Meta(1).PaintOffset; off != geom.Off(200, 0) {
		t.Errorf("gap PaintOffset = %v, want (200, 0)", off)
	}
}
