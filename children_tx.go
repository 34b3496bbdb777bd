package easel

import (
	"fmt"
	"slices"
)

// BeginUpdate opens an update transaction. Until CommitUpdate, mutations
// stage in the container without arity validation or side effects, so a
// sequence that transiently violates the arity (remove then insert on an
// Exact container) can be expressed. One transaction at a time; nesting
// panics. Fails with ErrDisposed on a disposed node's container.
func (s *Children[C, G, M]) BeginUpdate() error {
	s.mustBound("BeginUpdate")
	if s.inTx {
		panic("easel: BeginUpdate while a transaction is open")
	}
	if s.parent.State() == Disposed {
		return fmt.Errorf("begin update on %v: %w", s.parent.ID(), ErrDisposed)
	}
	s.guardStructure()
	s.snapNodes = slices.Clone(s.nodes)
	s.snapMeta = slices.Clone(s.meta)
	s.inTx = true
	return nil
}

// CommitUpdate validates the staged children and applies them atomically:
// the staged count against the arity, then cycle, depth, and liveness for
// every newly adopted child. On any failure the container is restored to
// its pre-transaction children and the error reports the first violation.
// On success, removed children are detached, added children adopted, and
// the parent marked for layout once.
func (s *Children[C, G, M]) CommitUpdate() error {
	if !s.inTx {
		panic("easel: CommitUpdate without BeginUpdate")
	}
	s.guardStructure()

	if err := s.arity.ValidateCount(len(s.nodes)); err != nil {
		s.rollback()
		return err
	}

	var added []*Node[C, G]
	for _, c := range s.nodes {
		if !slices.Contains(s.snapNodes, c) {
			added = append(added, c)
		}
	}
	for _, c := range added {
		if c.state == Disposed {
			s.rollback()
			return fmt.Errorf("commit insert %v: %w", c.id, ErrDisposed)
		}
		if c.parent != nil && c.parent.ID() != s.parent.ID() {
			s.rollback()
			panic(fmt.Sprintf("easel: node %v already has a parent", c.id))
		}
		if c.parent == nil && c.owner != nil {
			s.rollback()
			panic(fmt.Sprintf("easel: node %v is an attached root", c.id))
		}
		if err := s.checkAdopt(c); err != nil {
			s.rollback()
			return err
		}
	}

	staged := s.nodes
	changed := !slices.Equal(staged, s.snapNodes)
	for _, c := range s.snapNodes {
		if !slices.Contains(staged, c) {
			s.drop(c)
		}
	}
	s.endTx()
	for _, c := range added {
		if err := s.adopt(c); err != nil {
			return err
		}
	}
	if !changed {
		return nil
	}
	return s.structureChanged()
}

// AbortUpdate discards the staged mutations and restores the
// pre-transaction children. Panics if no transaction is open.
func (s *Children[C, G, M]) AbortUpdate() {
	if !s.inTx {
		panic("easel: AbortUpdate without BeginUpdate")
	}
	s.rollback()
}

func (s *Children[C, G, M]) rollback() {
	s.nodes = s.snapNodes
	s.meta = s.snapMeta
	s.endTx()
}

func (s *Children[C, G, M]) endTx() {
	s.snapNodes = nil
	s.snapMeta = nil
	s.inTx = false
}
