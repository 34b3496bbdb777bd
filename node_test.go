package easel

import (
	"errors"
	"testing"
)

func TestNode_NewDefaults(t *testing.T) {
	p := newProbeBox(10, 10)
	n := p.node

	if n.ID() == 0 {
		t.Error("ID() = 0, want allocated")
	}
	if got := n.State(); got != Detached {
		t.Errorf("State() = %s, want Detached", got)
	}
	if n.Parent() != nil {
		t.Error("Parent() != nil on a fresh node")
	}
	if n.Owner() != nil {
		t.Error("Owner() != nil on a fresh node")
	}
	if n.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", n.Depth())
	}
	if _, ok := n.Geometry(); ok {
		t.Error("Geometry() reports a layout before any ran")
	}
	if n.NeedsLayout() || n.NeedsPaint() {
		t.Error("fresh node carries dirty flags")
	}
}

func TestNode_IdentityIsUnique(t *testing.T) {
	seen := make(map[NodeID]bool)
	for i := 0; i < 100; i++ {
		id := newProbeBox(1, 1).node.ID()
		if seen[id] {
			t.Fatalf("ID %v allocated twice", id)
		}
		seen[id] = true
	}
}

func TestNode_DepthFollowsAdoption(t *testing.T) {
	// Build a detached chain a -> b -> c, then adopt a; depths renumber
	// through the whole subtree.
	a := newProbeBox(1, 1)
	b := newProbeBox(1, 1)
	cc := newProbeBox(1, 1)
	if err := b.kids.Add(cc.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := a.kids.Add(b.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	root := newProbeBox(10, 10)
	if err := root.kids.Add(a.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	wantDepths := map[NodeID]int{
		root.node.ID(): 0,
		a.node.ID():    1,
		b.node.ID():    2,
		cc.node.ID():   3,
	}
	WalkSubtree(root.node, func(n TreeNode) bool {
		if want, ok := wantDepths[n.ID()]; ok && n.Depth() != want {
			t.Errorf("node %v Depth() = %d, want %d", n.ID(), n.Depth(), want)
		}
		if p := n.Parent(); p != nil && n.Depth() != p.Depth()+1 {
			t.Errorf("node %v depth %d violates parent+1 (parent %d)", n.ID(), n.Depth(), p.Depth())
		}
		return true
	})
}

func TestNode_CycleRejected(t *testing.T) {
	a := newProbeBox(1, 1)
	b := newProbeBox(1, 1)
	if err := a.kids.Add(b.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	// b adopting its own ancestor closes a loop.
	if err := b.kids.Add(a.node); !errors.Is(err, ErrCycle) {
		t.Errorf("Add(ancestor) = %v, want ErrCycle", err)
	}
	if b.kids.Len() != 0 {
		t.Error("failed Add mutated the container")
	}

	// Self-adoption is the one-node cycle.
	if err := a.kids.Add(a.node); !errors.Is(err, ErrCycle) {
		t.Errorf("Add(self) = %v, want ErrCycle", err)
	}
}

func TestNode_DepthCeiling(t *testing.T) {
	c := mustCoordinator(t, WithMaxDepth(2))
	root := newProbeBox(10, 10)
	mid := newProbeBox(5, 5)
	leaf := newProbeBox(1, 1)
	deep := newProbeBox(1, 1)
	if err := mid.kids.Add(leaf.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := root.kids.Add(mid.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.AttachRoot(root.node); err != nil {
		t.Fatalf("AttachRoot() error = %v", err)
	}

	err := leaf.kids.Add(deep.node)
	var de *DepthError
	if !errors.As(err, &de) {
		t.Fatalf("Add() past ceiling = %v, want *DepthError", err)
	}
	if de.Max != 2 || de.Attempted != 3 {
		t.Errorf("DepthError = {max %d, attempted %d}, want {2, 3}", de.Max, de.Attempted)
	}
	if deep.node.Parent() != nil {
		t.Error("rejected child acquired a parent")
	}

	// The same ceiling binds whole-subtree attachment.
	c2 := mustCoordinator(t, WithMaxDepth(1))
	tall := newProbeBox(10, 10)
	t1 := newProbeBox(5, 5)
	t2 := newProbeBox(1, 1)
	_ = t1.kids.Add(t2.node)
	_ = tall.kids.Add(t1.node)
	if err := c2.AttachRoot(tall.node); !errors.As(err, &de) {
		t.Errorf("AttachRoot(tall) = %v, want *DepthError", err)
	}
}

func TestNode_DisposeRequiresDetached(t *testing.T) {
	parent := newProbeBox(10, 10)
	child := newProbeBox(1, 1)
	if err := parent.kids.Add(child.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	err := child.node.Dispose()
	var le *LifecycleError
	if !errors.As(err, &le) {
		t.Fatalf("Dispose() of parented node = %v, want *LifecycleError", err)
	}
	if le.To != Disposed {
		t.Errorf("LifecycleError.To = %s, want Disposed", le.To)
	}

	c := mustCoordinator(t)
	root := newProbeBox(10, 10)
	if err := c.AttachRoot(root.node); err != nil {
		t.Fatalf("AttachRoot() error = %v", err)
	}
	if err := root.node.Dispose(); !errors.As(err, &le) {
		t.Errorf("Dispose() of attached root = %v, want *LifecycleError", err)
	}
}

func TestNode_DisposeSubtreeIsTerminal(t *testing.T) {
	parent := newProbeBox(10, 10)
	child := newProbeBox(1, 1)
	grand := newProbeBox(1, 1)
	_ = child.kids.Add(grand.node)
	_ = parent.kids.Add(child.node)

	if err := parent.node.Dispose(); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
	for _, n := range []*BoxNode{parent.node, child.node, grand.node} {
		if got := n.State(); got != Disposed {
			t.Errorf("node %v State() = %s, want Disposed", n.ID(), got)
		}
	}
	if parent.node.ChildCount() != 0 {
		t.Error("disposed node still holds children")
	}

	// Double dispose fails; so does everything else.
	if err := parent.node.Dispose(); !errors.Is(err, ErrDisposed) {
		t.Errorf("second Dispose() = %v, want ErrDisposed", err)
	}
	if err := parent.node.MarkNeedsLayout(); !errors.Is(err, ErrDisposed) {
		t.Errorf("MarkNeedsLayout() after dispose = %v, want ErrDisposed", err)
	}
	if err := parent.node.MarkNeedsPaint(); !errors.Is(err, ErrDisposed) {
		t.Errorf("MarkNeedsPaint() after dispose = %v, want ErrDisposed", err)
	}
	if _, err := LayoutChild(parent.node, boxTight(10, 10)); !errors.Is(err, ErrDisposed) {
		t.Errorf("LayoutChild() after dispose = %v, want ErrDisposed", err)
	}

	// Disposed nodes cannot be re-adopted.
	next := newProbeBox(10, 10)
	if err := next.kids.Add(child.node); !errors.Is(err, ErrDisposed) {
		t.Errorf("Add(disposed) = %v, want ErrDisposed", err)
	}
}

func TestNode_DetachedMarksSurviveReattach(t *testing.T) {
	c := mustCoordinator(t)
	root := newProbeBox(100, 100)
	child := newProbeBox(10, 10)
	if err := root.kids.Add(child.node); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := c.AttachRoot(root.node); err != nil {
		t.Fatalf("AttachRoot() error = %v", err)
	}
	if _, err := LayoutChild(root.node, boxTight(100, 100)); err != nil {
		t.Fatalf("LayoutChild() error = %v", err)
	}
	if err := c.FlushLayout(); err != nil {
		t.Fatalf("FlushLayout() error = %v", err)
	}

	detached := c.DetachRoot()
	if detached != root.node {
		t.Fatal("DetachRoot() returned a different node")
	}
	if err := child.node.MarkNeedsLayout(); err != nil {
		t.Fatalf("MarkNeedsLayout() while detached error = %v", err)
	}
	if !child.node.NeedsLayout() {
		t.Fatal("detached mark did not set the flag")
	}

	if err := c.AttachRoot(root.node); err != nil {
		t.Fatalf("re-AttachRoot() error = %v", err)
	}
	if gotLayout, _ := c.DirtyCounts(); gotLayout == 0 {
		t.Error("pending detached mark did not join the worklist on attach")
	}
}
