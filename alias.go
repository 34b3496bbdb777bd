package easel

import (
	"github.com/easelkit/easel/pkg/box"
	"github.com/easelkit/easel/pkg/geom"
	"github.com/easelkit/easel/pkg/sliver"
)

// The rectangular family: box constraints in, a size out, parent data
// carrying the child's paint offset and flex weight.
type (
	BoxNode     = Node[box.Constraints, geom.Size]
	BoxObject   = Object[box.Constraints, geom.Size]
	BoxChildren = Children[box.Constraints, geom.Size, box.ParentData]
)

// The scroll-viewport family: scroll state in, extents out, parent data
// carrying the child's layout and paint positions along the axis.
type (
	SliverNode     = Node[sliver.Constraints, sliver.Geometry]
	SliverObject   = Object[sliver.Constraints, sliver.Geometry]
	SliverChildren = Children[sliver.Constraints, sliver.Geometry, sliver.ParentData]
)

// NewBoxNode builds a rectangular node around obj. A nil kids gets a
// childless container.
func NewBoxNode(obj BoxObject, kids ChildStore) *BoxNode {
	return NewNode[box.Constraints, geom.Size](ProtocolBox, obj, kids)
}

// NewBoxChildren builds an unbound rectangular-child container.
func NewBoxChildren(a Arity) *BoxChildren {
	return NewChildren[box.Constraints, geom.Size, box.ParentData](a, ProtocolBox)
}

// NewSliverNode builds a scroll-family node around obj. A nil kids gets a
// childless container.
func NewSliverNode(obj SliverObject, kids ChildStore) *SliverNode {
	return NewNode[sliver.Constraints, sliver.Geometry](ProtocolSliver, obj, kids)
}

// NewSliverChildren builds an unbound sliver-child container. Box nodes
// host these too: a viewport is a rectangular node whose children speak
// the scroll family.
func NewSliverChildren(a Arity) *SliverChildren {
	return NewChildren[sliver.Constraints, sliver.Geometry, sliver.ParentData](a, ProtocolSliver)
}
