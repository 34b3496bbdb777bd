package easel

import "fmt"

// LayoutChild lays out n under constraints c and returns its geometry.
// Parents call it from PerformLayout for each child; drivers call it on
// the root to start a tree. A free function rather than a method so the
// constraint and geometry types stay visible at the call site (methods
// cannot introduce type parameters).
//
// Work is skipped in two tiers before PerformLayout runs: a node-local
// fast path when the node is clean and both the constraints and the child
// topology match the previous layout, then the coordinator's shared cache
// keyed by node, constraints, and topology. A full layout stores its
// result in both tiers. Fresh geometry always marks the node for paint.
func LayoutChild[C Constraints, G any](n *Node[C, G], c C) (G, error) {
	var zero G
	if n == nil {
		panic("easel: LayoutChild on nil node")
	}
	if n.state == Disposed {
		return zero, fmt.Errorf("layout %v: %w", n.id, ErrDisposed)
	}

	fp := n.fingerprint()
	if !n.needsLayout && n.hasLayout && n.lastC == c && n.lastFP == fp {
		return n.geo, nil
	}

	var lc *LayoutCache
	if n.owner != nil {
		lc = n.owner.cache
	}
	key := cacheKey[C]{node: n.id, c: c, fp: fp}
	if g, ok := cacheGet[C, G](lc, key); ok {
		n.applyLaidOut(c, g, fp)
		return g, nil
	}

	g, err := n.obj.PerformLayout(n, c)
	if err != nil {
		return zero, fmt.Errorf("layout %v (%s): %w", n.id, objectLabel(n.obj), err)
	}
	cachePut(lc, key, g)
	n.applyLaidOut(c, g, fp)
	if n.owner != nil {
		n.owner.laidOut.Add(1)
	}
	return g, nil
}

// applyLaidOut installs a layout result: geometry, the inputs it was
// computed from, the boundary decision, and the lifecycle and dirty-flag
// consequences.
func (n *Node[C, G]) applyLaidOut(c C, g G, fp topologyFingerprint) {
	n.lastC = c
	n.geo = g
	n.lastFP = fp
	n.hasLayout = true
	n.needsLayout = false
	n.boundary = n.parent == nil || c.IsTight() || n.obj.SizedByParent()

	if n.state != Detached {
		// Parent-driven layout walks the tag the same way a marked
		// node's does: an Attached node passes through NeedsLayout.
		if n.state == Attached {
			n.state = NeedsLayout
		}
		if n.state == NeedsLayout {
			n.state = LaidOut
		}
	}

	// Geometry moved (or may have); the old pixels are stale either way.
	_ = n.markPaint()
}

// layoutBySelf re-runs a boundary node's layout from the worklist using
// the constraints its parent last applied. A node that has never been
// laid out has no constraints to replay; it keeps its flag and waits for
// a driven layout to reach it.
func (n *Node[C, G]) layoutBySelf() error {
	if n.owner == nil || n.state == Disposed {
		return nil
	}
	if !n.needsLayout || !n.hasLayout {
		return nil
	}
	_, err := LayoutChild(n, n.lastC)
	return err
}
