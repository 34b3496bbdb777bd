package easel

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/easelkit/easel/pkg/geom"
)

// NodeID uniquely identifies a render node. IDs are allocated from a
// process-wide counter and never reused, so a stale ID can never alias a
// newer node.
type NodeID uint64

var nextNodeID atomic.Uint64

// String returns the ID as "#n".
func (id NodeID) String() string {
	return fmt.Sprintf("#%d", uint64(id))
}

// TreeNode is the protocol-independent handle every render node satisfies.
// The coordinator, containers, and debug tooling drive nodes through it;
// anything constraint- or geometry-typed goes through [LayoutChild] and
// [PaintChild] instead. Only nodes created by this package implement it.
type TreeNode interface {
	// ID returns the node's stable identity.
	ID() NodeID
	// Protocol returns the layout family the node speaks.
	Protocol() ProtocolID
	// Depth returns the node's distance from the root (root = 0).
	Depth() int
	// State returns the node's lifecycle state.
	State() Lifecycle
	// Parent returns the node's parent, or nil for a root. The parent
	// link is a lookup relation only; the parent owns the child through
	// its container, never the reverse.
	Parent() TreeNode
	// Owner returns the coordinator the node is attached to, or nil.
	Owner() *Coordinator
	// NeedsLayout reports whether the node awaits a layout flush.
	NeedsLayout() bool
	// NeedsPaint reports whether the node awaits a paint flush.
	NeedsPaint() bool
	// ChildCount returns the container's live child count.
	ChildCount() int

	// Everything below seals the interface to this package.
	store() ChildStore
	setParent(p TreeNode)
	renumberDepth(base int)
	subtreeHeight() int
	attachTo(o *Coordinator) error
	detachFrom()
	disposeRec()
	markLayout() error
	markPaint() error
	bumpGeneration()
	layoutBySelf() error
	repaint(p *PaintContext) error
	layoutQueued() bool
	setLayoutQueued(q bool)
	paintQueued() bool
	setPaintQueued(q bool)
	debugInfo() NodeInfo
}

// Node is one render node: a behavior object, a child container, and the
// bookkeeping the tree and pipeline need — identity, owner, parent link,
// depth, lifecycle state, the two dirty flags, last-applied constraints,
// and cached geometry. Node is generic over its own layout family; its
// container may speak a different family (a viewport is a rectangular node
// with sliver children).
//
// Nodes are not safe for concurrent use. The pipeline is single logical
// thread; the parallel layout extension confines each worker to a disjoint
// subtree.
type Node[C Constraints, G any] struct {
	id    NodeID
	proto ProtocolID
	obj   Object[C, G]
	kids  ChildStore

	owner  *Coordinator
	parent TreeNode
	depth  int

	state       Lifecycle
	needsLayout bool
	needsPaint  bool
	queuedL     bool
	queuedP     bool

	// boundary marks a relayout boundary: geometry independent of parent
	// constraints. Recomputed on every full layout.
	boundary bool

	hasLayout bool
	lastC     C
	lastFP    topologyFingerprint
	geo       G
	gen       uint32

	// paintAt is the absolute offset the node was last painted at, so a
	// paint flush can repaint it without consulting the parent. Meaningful
	// once hasPaint is set.
	hasPaint bool
	paintAt  geom.Offset
}

// NewNode constructs a detached node speaking the given protocol, driven
// by obj, with kids as its child container. A nil kids builds a None
// container; a non-nil kids must be freshly constructed and unbound.
// Panics if obj is nil or kids is already bound to another node.
func NewNode[C Constraints, G any](proto ProtocolID, obj Object[C, G], kids ChildStore) *Node[C, G] {
	if obj == nil {
		panic("easel: NewNode requires a behavior object")
	}
	n := &Node[C, G]{
		id:    NodeID(nextNodeID.Add(1)),
		proto: proto,
		obj:   obj,
		state: Detached,
	}
	if kids == nil {
		kids = NewChildren[C, G, struct{}](None(), proto)
	}
	kids.bindParent(n)
	n.kids = kids
	return n
}

// ID returns the node's stable identity.
func (n *Node[C, G]) ID() NodeID { return n.id }

// Protocol returns the layout family the node speaks.
func (n *Node[C, G]) Protocol() ProtocolID { return n.proto }

// Depth returns the node's distance from the root.
func (n *Node[C, G]) Depth() int { return n.depth }

// State returns the node's lifecycle state.
func (n *Node[C, G]) State() Lifecycle { return n.state }

// Parent returns the node's parent, or nil for a root.
func (n *Node[C, G]) Parent() TreeNode { return n.parent }

// Owner returns the coordinator the node is attached to, or nil.
func (n *Node[C, G]) Owner() *Coordinator { return n.owner }

// NeedsLayout reports whether the node awaits a layout flush.
func (n *Node[C, G]) NeedsLayout() bool { return n.needsLayout }

// NeedsPaint reports whether the node awaits a paint flush.
func (n *Node[C, G]) NeedsPaint() bool { return n.needsPaint }

// ChildCount returns the container's live child count.
func (n *Node[C, G]) ChildCount() int { return n.kids.Len() }

// Object returns the behavior driving the node.
func (n *Node[C, G]) Object() Object[C, G] { return n.obj }

// Geometry returns the node's cached geometry and whether a layout has
// ever produced one.
func (n *Node[C, G]) Geometry() (G, bool) {
	return n.geo, n.hasLayout
}

// LastConstraints returns the constraints last applied to the node and
// whether a layout has ever applied any.
func (n *Node[C, G]) LastConstraints() (C, bool) {
	return n.lastC, n.hasLayout
}

// IsRelayoutBoundary reports whether the node's last layout established it
// as a relayout boundary.
func (n *Node[C, G]) IsRelayoutBoundary() bool { return n.boundary }

// MarkNeedsLayout flags the node's geometry as stale. Boundary nodes join
// the coordinator's layout worklist directly; other nodes forward the mark
// to their parent, whose next layout revisits them. Marking an
// already-marked node is a no-op. Fails with ErrDisposed on a disposed
// node.
func (n *Node[C, G]) MarkNeedsLayout() error {
	return n.markLayout()
}

// MarkNeedsPaint flags the node's paint output as stale and joins the
// coordinator's paint worklist. Marking an already-marked node is a no-op.
// Fails with ErrDisposed on a disposed node.
func (n *Node[C, G]) MarkNeedsPaint() error {
	return n.markPaint()
}

// Dispose destroys the node and its subtree. The node must be detached
// (not attached to a coordinator and not held by a parent container);
// disposing a node still in a tree fails with a LifecycleError, and
// disposing twice fails with ErrDisposed. Disposal is terminal.
func (n *Node[C, G]) Dispose() error {
	if n.state == Disposed {
		return fmt.Errorf("dispose %v: %w", n.id, ErrDisposed)
	}
	if n.owner != nil || n.parent != nil {
		return fmt.Errorf("dispose %v still in tree: %w", n.id, &LifecycleError{From: n.state, To: Disposed})
	}
	n.disposeRec()
	return nil
}

func (n *Node[C, G]) store() ChildStore { return n.kids }

func (n *Node[C, G]) setParent(p TreeNode) { n.parent = p }

func (n *Node[C, G]) renumberDepth(base int) {
	n.depth = base
	for i := 0; i < n.kids.Len(); i++ {
		n.kids.childAt(i).renumberDepth(base + 1)
	}
}

func (n *Node[C, G]) subtreeHeight() int {
	h := 0
	for i := 0; i < n.kids.Len(); i++ {
		if ch := n.kids.childAt(i).subtreeHeight() + 1; ch > h {
			h = ch
		}
	}
	return h
}

func (n *Node[C, G]) bumpGeneration() { n.gen++ }

func (n *Node[C, G]) fingerprint() topologyFingerprint {
	return topologyFingerprint{children: n.kids.Len(), generation: n.gen}
}

func (n *Node[C, G]) transition(to Lifecycle) error {
	if !n.state.CanTransition(to) {
		return &LifecycleError{From: n.state, To: to}
	}
	n.state = to
	return nil
}

func (n *Node[C, G]) layoutQueued() bool     { return n.queuedL }
func (n *Node[C, G]) setLayoutQueued(q bool) { n.queuedL = q }
func (n *Node[C, G]) paintQueued() bool      { return n.queuedP }
func (n *Node[C, G]) setPaintQueued(q bool)  { n.queuedP = q }

func (n *Node[C, G]) debugInfo() NodeInfo {
	info := NodeInfo{
		ID:          n.id,
		Protocol:    n.proto,
		Depth:       n.depth,
		State:       n.state,
		Children:    n.kids.Len(),
		Label:       objectLabel(n.obj),
		NeedsLayout: n.needsLayout,
		NeedsPaint:  n.needsPaint,
	}
	if n.hasLayout {
		info.Geometry = fmt.Sprint(n.geo)
	}
	return info
}

// objectLabel names a behavior by its concrete type, without package
// clutter. Debug output only.
func objectLabel(obj any) string {
	s := fmt.Sprintf("%T", obj)
	s = strings.TrimPrefix(s, "*")
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	}
	return s
}
