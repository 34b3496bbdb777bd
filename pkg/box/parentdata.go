package box

import "github.com/easelkit/easel/pkg/geom"

// ParentData is the metadata a rectangular parent attaches to each child.
// The parent owns it: layout writes the child's offset here, and flex
// containers read the child's weight from here. A zero weight means the
// child is not flexible.
type ParentData struct {
	// Offset is the child's position relative to the parent's origin,
	// written during the parent's layout.
	Offset geom.Offset
	// Flex is the child's share weight when the parent distributes free
	// main-axis space.
	Flex int
}
