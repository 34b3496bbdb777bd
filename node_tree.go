package easel

import "fmt"

// markLayout implements MarkNeedsLayout for both public marks and the
// marks containers raise after structural mutation.
//
// The mark bumps the topology generation so every cache entry recorded
// before it can no longer be keyed, then travels toward the nearest
// relayout boundary: the boundary node joins the coordinator's layout
// worklist, and everything between it and this node is flagged so the
// boundary's layout recurses back down through them.
func (n *Node[C, G]) markLayout() error {
	if n.state == Disposed {
		return fmt.Errorf("mark layout %v: %w", n.id, ErrDisposed)
	}
	if n.owner != nil {
		n.owner.guardPaintPhase("MarkNeedsLayout")
	}
	if n.needsLayout {
		// Already flagged; re-ensure worklist membership in case the
		// flag outlived a dequeue (deferred layout of a never-laid-out
		// node).
		if n.owner != nil && (n.boundary || n.parent == nil) {
			n.owner.enqueueLayout(n)
		}
		return nil
	}
	n.needsLayout = true
	n.gen++
	if n.state != Detached {
		if err := n.transition(NeedsLayout); err != nil {
			return err
		}
	}
	if n.boundary || n.parent == nil {
		if n.owner != nil {
			n.owner.enqueueLayout(n)
		}
		return nil
	}
	return n.parent.markLayout()
}

// markPaint implements MarkNeedsPaint. Paint marks do not propagate: the
// node repaints from its recorded offset, so the parent's output is
// unaffected. A node whose lifecycle state is behind layout (the flag is
// set while it still awaits layout) keeps its state; layout already
// implies a repaint.
func (n *Node[C, G]) markPaint() error {
	if n.state == Disposed {
		return fmt.Errorf("mark paint %v: %w", n.id, ErrDisposed)
	}
	if n.owner != nil {
		n.owner.guardPaintPhase("MarkNeedsPaint")
	}
	if n.needsPaint {
		if n.owner != nil {
			n.owner.enqueuePaint(n)
		}
		return nil
	}
	n.needsPaint = true
	if n.state != Detached && n.state.CanTransition(NeedsPaint) {
		n.state = NeedsPaint
	}
	if n.owner != nil {
		n.owner.enqueuePaint(n)
	}
	return nil
}

// attachTo wires the node and its whole subtree to a coordinator,
// parent before children so an attached node never hangs under a detached
// ancestor once the walk completes. Dirty flags recorded while detached
// join the coordinator's worklists here.
func (n *Node[C, G]) attachTo(o *Coordinator) error {
	if n.state == Disposed {
		return fmt.Errorf("attach %v: %w", n.id, ErrDisposed)
	}
	if err := n.transition(Attached); err != nil {
		return err
	}
	n.owner = o
	o.register(n)
	if n.needsLayout {
		n.needsLayout = false
		if err := n.markLayout(); err != nil {
			return err
		}
	}
	if n.needsPaint {
		n.needsPaint = false
		if err := n.markPaint(); err != nil {
			return err
		}
	}
	for i := 0; i < n.kids.Len(); i++ {
		if err := n.kids.childAt(i).attachTo(o); err != nil {
			return err
		}
	}
	return nil
}

// detachFrom unwires the node and its subtree from its coordinator,
// children first. Dirty flags survive detachment so a later attach can
// resume where the node left off; worklist membership does not, stale
// entries are skipped at flush.
func (n *Node[C, G]) detachFrom() {
	if n.owner == nil {
		return
	}
	for i := n.kids.Len() - 1; i >= 0; i-- {
		n.kids.childAt(i).detachFrom()
	}
	n.owner.unregister(n)
	n.owner = nil
	n.queuedL = false
	n.queuedP = false
	if n.state != Disposed {
		n.state = Detached
	}
}

// disposeRec tears the subtree down post-order. Callers guarantee the
// entry node is detached; children are severed here before recursing so
// the in-tree guard in Dispose does not trip on them.
func (n *Node[C, G]) disposeRec() {
	for i := n.kids.Len() - 1; i >= 0; i-- {
		c := n.kids.childAt(i)
		c.setParent(nil)
		c.disposeRec()
	}
	n.kids.reset()
	n.state = Disposed
	n.hasLayout = false
	n.hasPaint = false
}

// wouldCycle reports whether adopting candidate under parent closes a
// loop: true when candidate is parent itself or an ancestor of parent.
func wouldCycle(parent TreeNode, candidate TreeNode) bool {
	for a := parent; a != nil; a = a.Parent() {
		if a.ID() == candidate.ID() {
			return true
		}
	}
	return false
}
