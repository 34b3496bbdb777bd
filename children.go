package easel

import (
	"fmt"
	"slices"
)

// ChildStore is the protocol-independent view of a child container. The
// node and coordinator walk children through it; typed access stays on
// the concrete [Children]. Only containers created by this package
// implement it.
type ChildStore interface {
	// Len returns the live child count.
	Len() int
	// Arity returns the container's declared child-count discipline.
	Arity() Arity
	// ChildProtocol returns the layout family the children must speak.
	// It is independent of the host node's own family.
	ChildProtocol() ProtocolID
	// InTx reports whether an update transaction is open.
	InTx() bool

	childAt(i int) TreeNode
	bindParent(p TreeNode)
	reset()
}

// Children owns a node's children under a fixed arity and child protocol.
// C and G are the children's constraint and geometry types; M is the
// per-child metadata slot the parent's layout writes (offsets, flex
// weights). Metadata belongs to the parent: it is zeroed on adoption and
// carries no meaning once the child leaves.
//
// Structural mutation outside a transaction validates the resulting count
// and applies side effects immediately. Between BeginUpdate and
// CommitUpdate, mutations stage in place and validation and side effects
// wait for commit; a failed commit restores the pre-transaction children.
type Children[C Constraints, G any, M any] struct {
	arity  Arity
	proto  ProtocolID
	parent TreeNode

	nodes []*Node[C, G]
	meta  []M

	inTx      bool
	snapNodes []*Node[C, G]
	snapMeta  []M
}

// NewChildren constructs an unbound container with the given arity and
// child protocol. Pass it to [NewNode], which binds it; a container
// serves exactly one node for its lifetime.
func NewChildren[C Constraints, G any, M any](a Arity, proto ProtocolID) *Children[C, G, M] {
	return &Children[C, G, M]{arity: a, proto: proto}
}

// Len returns the live child count. Inside a transaction it reflects the
// staged children.
func (s *Children[C, G, M]) Len() int { return len(s.nodes) }

// Arity returns the container's declared child-count discipline.
func (s *Children[C, G, M]) Arity() Arity { return s.arity }

// ChildProtocol returns the layout family the children must speak.
func (s *Children[C, G, M]) ChildProtocol() ProtocolID { return s.proto }

// InTx reports whether an update transaction is open.
func (s *Children[C, G, M]) InTx() bool { return s.inTx }

// Only returns the single child of an Exact(1) container. Panics if the
// container's arity is not Exact(1) or the child is missing (possible
// only mid-transaction).
func (s *Children[C, G, M]) Only() *Node[C, G] {
	if !s.arity.isExactly(1) {
		panic(fmt.Sprintf("easel: Only requires an Exact(1) container, have %s", s.arity))
	}
	if len(s.nodes) != 1 {
		panic(fmt.Sprintf("easel: Only on container with %d children", len(s.nodes)))
	}
	return s.nodes[0]
}

// Maybe returns the child of an Optional container, or nil when empty.
// Panics if the container's arity is not Optional.
func (s *Children[C, G, M]) Maybe() *Node[C, G] {
	if s.arity.kind != arityOptional {
		panic(fmt.Sprintf("easel: Maybe requires an Optional container, have %s", s.arity))
	}
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[0]
}

// At returns the i-th child. Valid for Exact, Range, and Variable
// containers; None and Optional panic (Optional reads go through Maybe).
func (s *Children[C, G, M]) At(i int) *Node[C, G] {
	switch s.arity.kind {
	case arityNone, arityOptional:
		panic(fmt.Sprintf("easel: At not valid on %s container", s.arity))
	}
	return s.nodes[i]
}

// Meta returns a pointer to the i-th child's metadata slot. The parent's
// layout writes through it; the slot is repositioned with the child on
// reorder and dropped with it on removal.
func (s *Children[C, G, M]) Meta(i int) *M {
	if !s.arity.allowsChildren() {
		panic(fmt.Sprintf("easel: Meta not valid on %s container", s.arity))
	}
	return &s.meta[i]
}

// All returns a copy of the child slice in order.
func (s *Children[C, G, M]) All() []*Node[C, G] {
	return slices.Clone(s.nodes)
}

// Add appends child. Outside a transaction the resulting count must
// satisfy the arity; inside, the append stages until commit.
func (s *Children[C, G, M]) Add(child *Node[C, G]) error {
	return s.Insert(len(s.nodes), child)
}

// Insert places child at index i, shifting later children right.
// Outside a transaction the resulting count must satisfy the arity and
// adoption side effects apply immediately; inside, the insert stages
// until commit. Fails without mutating on a disposed child, a protocol
// mismatch, a cycle, a depth overflow, or an arity violation.
func (s *Children[C, G, M]) Insert(i int, child *Node[C, G]) error {
	s.mustBound("Insert")
	if i < 0 || i > len(s.nodes) {
		panic(fmt.Sprintf("easel: Insert index %d out of range [0,%d]", i, len(s.nodes)))
	}
	if err := s.checkChild(child); err != nil {
		return err
	}
	if s.inTx {
		s.nodes = slices.Insert(s.nodes, i, child)
		var zero M
		s.meta = slices.Insert(s.meta, i, zero)
		return nil
	}
	if err := s.checkAdopt(child); err != nil {
		return err
	}
	if err := s.arity.ValidateCount(len(s.nodes) + 1); err != nil {
		return err
	}
	s.nodes = slices.Insert(s.nodes, i, child)
	var zero M
	s.meta = slices.Insert(s.meta, i, zero)
	if err := s.adopt(child); err != nil {
		return err
	}
	return s.structureChanged()
}

// RemoveAt removes and returns the i-th child. The child is detached but
// not disposed; the caller decides whether it lives on. Outside a
// transaction the resulting count must satisfy the arity; inside, the
// removal stages until commit.
func (s *Children[C, G, M]) RemoveAt(i int) (*Node[C, G], error) {
	s.mustBound("RemoveAt")
	if i < 0 || i >= len(s.nodes) {
		panic(fmt.Sprintf("easel: RemoveAt index %d out of range [0,%d)", i, len(s.nodes)))
	}
	if s.parent.State() == Disposed {
		return nil, fmt.Errorf("remove from %v: %w", s.parent.ID(), ErrDisposed)
	}
	child := s.nodes[i]
	if s.inTx {
		s.nodes = slices.Delete(s.nodes, i, i+1)
		s.meta = slices.Delete(s.meta, i, i+1)
		return child, nil
	}
	s.guardStructure()
	if err := s.arity.ValidateCount(len(s.nodes) - 1); err != nil {
		return nil, err
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	s.meta = slices.Delete(s.meta, i, i+1)
	s.drop(child)
	if err := s.structureChanged(); err != nil {
		return nil, err
	}
	return child, nil
}

// Remove removes child by identity. Fails with ErrNodeNotFound if the
// container does not hold it.
func (s *Children[C, G, M]) Remove(child *Node[C, G]) error {
	s.mustBound("Remove")
	if child == nil {
		panic("easel: Remove nil child")
	}
	i := slices.Index(s.nodes, child)
	if i < 0 {
		return fmt.Errorf("remove %v from %v: %w", child.id, s.parent.ID(), ErrNodeNotFound)
	}
	_, err := s.RemoveAt(i)
	return err
}

// Clear removes every child. Outside a transaction it fails with an
// ArityError unless the arity allows zero children; inside, the empty
// state stages until commit.
func (s *Children[C, G, M]) Clear() error {
	s.mustBound("Clear")
	if s.parent.State() == Disposed {
		return fmt.Errorf("clear %v: %w", s.parent.ID(), ErrDisposed)
	}
	if s.inTx {
		s.nodes = s.nodes[:0]
		s.meta = s.meta[:0]
		return nil
	}
	s.guardStructure()
	if err := s.arity.ValidateCount(0); err != nil {
		return err
	}
	if len(s.nodes) == 0 {
		return nil
	}
	old := s.nodes
	s.nodes = nil
	s.meta = nil
	for _, c := range old {
		s.drop(c)
	}
	return s.structureChanged()
}

// Reorder moves the child at index from to index to, shifting the
// children between them. Metadata travels with the child. The count is
// unchanged, so arity is not rechecked; the parent is still marked for
// layout because child order is layout input.
func (s *Children[C, G, M]) Reorder(from, to int) error {
	s.mustBound("Reorder")
	if from < 0 || from >= len(s.nodes) || to < 0 || to >= len(s.nodes) {
		panic(fmt.Sprintf("easel: Reorder indices %d,%d out of range [0,%d)", from, to, len(s.nodes)))
	}
	if s.parent.State() == Disposed {
		return fmt.Errorf("reorder %v: %w", s.parent.ID(), ErrDisposed)
	}
	if from == to {
		return nil
	}
	if !s.inTx {
		s.guardStructure()
	}
	n := s.nodes[from]
	m := s.meta[from]
	s.nodes = slices.Delete(s.nodes, from, from+1)
	s.meta = slices.Delete(s.meta, from, from+1)
	s.nodes = slices.Insert(s.nodes, to, n)
	s.meta = slices.Insert(s.meta, to, m)
	if s.inTx {
		return nil
	}
	return s.structureChanged()
}

func (s *Children[C, G, M]) childAt(i int) TreeNode { return s.nodes[i] }

func (s *Children[C, G, M]) bindParent(p TreeNode) {
	if s.parent != nil {
		panic("easel: container already bound to a node")
	}
	s.parent = p
}

func (s *Children[C, G, M]) reset() {
	s.nodes = nil
	s.meta = nil
	s.inTx = false
	s.snapNodes = nil
	s.snapMeta = nil
}

func (s *Children[C, G, M]) mustBound(op string) {
	if s.parent == nil {
		panic("easel: " + op + " on container not bound to a node")
	}
}

func (s *Children[C, G, M]) guardStructure() {
	if o := s.parent.Owner(); o != nil {
		o.guardStructure("child mutation")
	}
}

// checkChild runs the validations that do not depend on what else the
// container holds, so they apply identically to staged and immediate
// mutation.
func (s *Children[C, G, M]) checkChild(child *Node[C, G]) error {
	if child == nil {
		panic("easel: insert nil child")
	}
	if !s.inTx {
		s.guardStructure()
	}
	if s.parent.State() == Disposed {
		return fmt.Errorf("insert into %v: %w", s.parent.ID(), ErrDisposed)
	}
	if child.state == Disposed {
		return fmt.Errorf("insert %v: %w", child.id, ErrDisposed)
	}
	if child.proto != s.proto {
		return fmt.Errorf("insert %v: container speaks %s, child speaks %s: %w",
			child.id, s.proto, child.proto, ErrProtocolMismatch)
	}
	if child.parent != nil {
		if child.parent.ID() != s.parent.ID() || slices.Index(s.nodes, child) >= 0 {
			panic(fmt.Sprintf("easel: node %v already has a parent", child.id))
		}
		// Staged re-insert of a child removed earlier in this
		// transaction: its parent link still points here because
		// side effects wait for commit.
	} else if child.owner != nil {
		panic(fmt.Sprintf("easel: node %v is an attached root", child.id))
	}
	return nil
}

// checkAdopt runs the validations that depend on tree shape: cycles and
// the depth ceiling.
func (s *Children[C, G, M]) checkAdopt(child *Node[C, G]) error {
	if wouldCycle(s.parent, child) {
		return fmt.Errorf("insert %v under %v: %w", child.id, s.parent.ID(), ErrCycle)
	}
	if o := s.parent.Owner(); o != nil {
		deepest := s.parent.Depth() + 1 + child.subtreeHeight()
		if deepest > o.maxDepth {
			return &DepthError{Max: o.maxDepth, Attempted: deepest}
		}
	}
	return nil
}

// adopt applies insertion side effects: parent link, depth renumbering,
// attachment, and the layout mark on the parent.
func (s *Children[C, G, M]) adopt(child *Node[C, G]) error {
	child.setParent(s.parent)
	child.renumberDepth(s.parent.Depth() + 1)
	if o := s.parent.Owner(); o != nil {
		if err := child.attachTo(o); err != nil {
			return err
		}
	}
	return nil
}

// drop applies removal side effects: detachment, parent unlink, and
// depth reset for the now free-standing subtree.
func (s *Children[C, G, M]) drop(child *Node[C, G]) {
	child.detachFrom()
	child.setParent(nil)
	child.renumberDepth(0)
}

// structureChanged records that the parent's child topology moved: the
// generation bump retires cached layouts keyed to the old topology, and
// the layout mark schedules a fresh pass.
func (s *Children[C, G, M]) structureChanged() error {
	s.parent.bumpGeneration()
	return s.parent.markLayout()
}
