package easel

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree consistency violations. All are surfaced
// synchronously from the operation that detected them; no operation
// partially applies its mutation before failing.
var (
	// ErrCycle indicates a mutation would make a node its own ancestor.
	ErrCycle = errors.New("tree mutation would create a cycle")

	// ErrNodeNotFound indicates a lookup for a node the coordinator does
	// not know about.
	ErrNodeNotFound = errors.New("node not found")

	// ErrDisposed indicates an operation against a disposed node.
	// Disposal is terminal; double dispose fails the same way.
	ErrDisposed = errors.New("node is disposed")

	// ErrProtocolMismatch indicates a child speaking a different layout
	// protocol than its container expects.
	ErrProtocolMismatch = errors.New("child protocol does not match container")
)

// ArityError reports a mutation that would leave a container's child count
// outside its arity contract. The container is left unchanged.
type ArityError struct {
	// Expected is the container's arity contract.
	Expected Arity
	// Attempted is the child count the mutation would have produced.
	Attempted int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("arity violation: container expects %s, attempted count %d", e.Expected, e.Attempted)
}

// LifecycleError reports an illegal lifecycle transition.
type LifecycleError struct {
	From, To Lifecycle
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition %s -> %s", e.From, e.To)
}

// DepthError reports a mutation that would push part of the tree past the
// coordinator's depth ceiling.
type DepthError struct {
	// Max is the configured ceiling.
	Max int
	// Attempted is the depth the mutation would have produced.
	Attempted int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("depth limit exceeded: max %d, attempted %d", e.Max, e.Attempted)
}
