package easel

import (
	"fmt"
	"image/color"

	"github.com/easelkit/easel/pkg/geom"
)

// Canvas receives paint output. Implementations rasterize however they
// like; the pipeline only promises parent-before-child call order within
// a subtree.
type Canvas interface {
	// FillRect fills r with c. Coordinates are absolute.
	FillRect(r geom.Rect, c color.Color)
}

// PaintContext carries the canvas through one paint pass, plus the
// counter the frame report reads.
type PaintContext struct {
	canvas  Canvas
	painted int
}

// NewPaintContext wraps canvas for a paint pass. A nil canvas paints into
// the void, which layout-only tests use.
func NewPaintContext(canvas Canvas) *PaintContext {
	return &PaintContext{canvas: canvas}
}

// Canvas returns the destination canvas, possibly nil.
func (p *PaintContext) Canvas() Canvas { return p.canvas }

// FillRect forwards to the canvas, dropping the call when there is none.
func (p *PaintContext) FillRect(r geom.Rect, c color.Color) {
	if p.canvas != nil {
		p.canvas.FillRect(r, c)
	}
}

// Painted returns how many nodes emitted paint through this context.
func (p *PaintContext) Painted() int { return p.painted }

// PaintChild paints n at the absolute offset at. Parents call it from
// Paint for each child they show; the coordinator calls it to repaint
// marked nodes from their recorded offsets. The node must have been laid
// out first.
func PaintChild[C Constraints, G any](p *PaintContext, n *Node[C, G], at geom.Offset) error {
	if p == nil {
		panic("easel: PaintChild on nil context")
	}
	if n == nil {
		panic("easel: PaintChild on nil node")
	}
	if n.state == Disposed {
		return fmt.Errorf("paint %v: %w", n.id, ErrDisposed)
	}
	if !n.hasLayout {
		return fmt.Errorf("paint %v before layout: %w", n.id, &LifecycleError{From: n.state, To: Painted})
	}
	n.paintAt = at
	n.hasPaint = true
	if err := n.obj.Paint(n, p, at); err != nil {
		return fmt.Errorf("paint %v (%s): %w", n.id, objectLabel(n.obj), err)
	}
	n.needsPaint = false
	if n.state != Detached && n.state.CanTransition(Painted) {
		n.state = Painted
	}
	p.painted++
	return nil
}

// PaintOffset returns the absolute offset the node was last painted at.
// Meaningful once the node has been painted; the zero offset before.
func (n *Node[C, G]) PaintOffset() geom.Offset { return n.paintAt }

// repaint re-emits a node's paint from its recorded offset during a paint
// flush. Nodes whose geometry went stale after they were marked wait for
// layout to settle; their flag survives and layout re-queues them. A node
// that has never painted has no recorded offset: its parent's paint places
// it, and the relayout that introduced it marked that parent.
func (n *Node[C, G]) repaint(p *PaintContext) error {
	if n.owner == nil || n.state == Disposed {
		return nil
	}
	if !n.needsPaint || !n.hasLayout || n.needsLayout {
		return nil
	}
	if !n.hasPaint && n.parent != nil {
		return nil
	}
	return PaintChild(p, n, n.paintAt)
}

// FillOp is one recorded FillRect call.
type FillOp struct {
	Rect  geom.Rect
	Color color.Color
}

// RecordingCanvas captures paint calls in order for assertions and debug
// dumps instead of rasterizing them.
type RecordingCanvas struct {
	Ops []FillOp
}

var _ Canvas = (*RecordingCanvas)(nil)

// FillRect records the call.
func (rc *RecordingCanvas) FillRect(r geom.Rect, c color.Color) {
	rc.Ops = append(rc.Ops, FillOp{Rect: r, Color: c})
}

// Reset drops the recorded calls.
func (rc *RecordingCanvas) Reset() {
	rc.Ops = rc.Ops[:0]
}
