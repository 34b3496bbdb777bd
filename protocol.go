package easel

import "github.com/easelkit/easel/pkg/geom"

// ProtocolID tags which layout family a node speaks. The tag exists for
// diagnostics and container consistency checks only; the tree, cache, and
// pipeline never dispatch on it.
type ProtocolID uint8

const (
	// ProtocolBox is the rectangular layout family: min/max constraints
	// in, a size out.
	ProtocolBox ProtocolID = iota
	// ProtocolSliver is the scroll-viewport layout family: scroll state
	// in, extents out.
	ProtocolSliver
)

// String returns the protocol name.
func (p ProtocolID) String() string {
	if p == ProtocolBox {
		return "box"
	}
	return "sliver"
}

// Constraints is the contract a layout family's constraint type satisfies:
// a comparable value (constraints are cache key components) that knows
// whether it admits exactly one geometry.
type Constraints interface {
	comparable
	// IsTight reports whether exactly one geometry satisfies the
	// constraints. Tight-constrained nodes are relayout boundaries.
	IsTight() bool
}

// Object is the capability set a render behavior exposes to the tree: how
// to compute geometry from constraints, how to emit paint output, and
// whether its geometry is a function of constraints alone.
//
// PerformLayout computes child constraints from c and local parameters,
// lays out each child through [LayoutChild], writes child offsets into the
// container's parent-owned metadata, and returns the node's own geometry.
// It must not mutate tree structure.
//
// Paint draws the node at the given absolute offset and forwards to
// children through [PaintChild]. It must not mutate layout state.
type Object[C Constraints, G any] interface {
	// SizedByParent reports whether geometry depends only on the
	// incoming constraints, never on children. Such nodes are relayout
	// boundaries under unchanged constraints.
	SizedByParent() bool

	PerformLayout(n *Node[C, G], c C) (G, error)
	Paint(n *Node[C, G], p *PaintContext, at geom.Offset) error
}
