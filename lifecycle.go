package easel

// Lifecycle is a render node's position in the attach/layout/paint cycle.
// Nodes are created Detached, join a coordinator's tree as Attached, and
// then cycle through the layout and paint states as dirt arrives and
// flushes run. Disposed is terminal.
type Lifecycle uint8

const (
	// Detached means the node is not part of any coordinator's tree.
	Detached Lifecycle = iota
	// Attached means the node joined a tree but has never been laid out.
	Attached
	// NeedsLayout means the node is waiting for the next layout flush.
	NeedsLayout
	// LaidOut means the node's geometry is current.
	LaidOut
	// NeedsPaint means the node's geometry is current but its paint
	// output is stale.
	NeedsPaint
	// Painted means both geometry and paint output are current.
	Painted
	// Disposed means the node was destroyed. Terminal.
	Disposed
)

// String returns the state name.
func (l Lifecycle) String() string {
	switch l {
	case Detached:
		return "Detached"
	case Attached:
		return "Attached"
	case NeedsLayout:
		return "NeedsLayout"
	case LaidOut:
		return "LaidOut"
	case NeedsPaint:
		return "NeedsPaint"
	case Painted:
		return "Painted"
	case Disposed:
		return "Disposed"
	default:
		return "Unknown"
	}
}

// CanTransition reports whether moving from l to next is legal. Self
// transitions are legal everywhere except out of Disposed, any live state
// may dispose, and any live state may detach (dropping a subtree returns
// its nodes to Detached).
func (l Lifecycle) CanTransition(next Lifecycle) bool {
	if l == Disposed {
		return false
	}
	if l == next {
		return true
	}
	if next == Disposed || next == Detached {
		return true
	}
	switch l {
	case Detached:
		return next == Attached
	case Attached:
		return next == NeedsLayout
	case NeedsLayout:
		return next == LaidOut
	case LaidOut:
		return next == NeedsPaint || next == NeedsLayout
	case NeedsPaint:
		return next == Painted || next == NeedsLayout
	case Painted:
		return next == NeedsLayout || next == NeedsPaint
	default:
		return false
	}
}
