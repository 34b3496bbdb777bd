// Package easel is the layout and paint core of a retained-mode
// rendering engine: a typed render tree, arity-checked child containers,
// a memoizing layout pipeline, and a frame coordinator that flushes
// dirty layout and paint in dependency order.
//
// Nodes are generic over their layout protocol. The rectangular family
// ([BoxNode]) maps min/max constraints to a size; the scroll family
// ([SliverNode]) maps scroll state to extents. A node's children may
// speak a different family than the node itself, which is how viewports
// bridge the two. Behaviors implement [Object]; the tree, cache, and
// coordinator never look inside them.
package easel
