package easel

import "fmt"

type arityKind uint8

const (
	arityNone arityKind = iota
	arityOptional
	arityExact
	arityRange
	arityVariable
)

// Arity is a cardinality contract on a container's child count. The zero
// value is None (no children). Exact and Range require strictly positive
// bounds; a zero-only arity is expressed as None, not a degenerate range.
type Arity struct {
	kind     arityKind
	min, max int
}

// None permits no children.
func None() Arity {
	return Arity{kind: arityNone}
}

// Optional permits zero or one child.
func Optional() Arity {
	return Arity{kind: arityOptional, max: 1}
}

// Exact permits exactly n children. Panics if n is not positive.
func Exact(n int) Arity {
	if n <= 0 {
		panic(fmt.Sprintf("easel: Exact requires a positive count, got %d; use None for zero children", n))
	}
	return Arity{kind: arityExact, min: n, max: n}
}

// Range permits between min and max children inclusive. Panics unless
// 0 < min <= max.
func Range(min, max int) Arity {
	if min <= 0 || max < min {
		panic(fmt.Sprintf("easel: Range requires 0 < min <= max, got (%d, %d)", min, max))
	}
	return Arity{kind: arityRange, min: min, max: max}
}

// Variable permits any number of children.
func Variable() Arity {
	return Arity{kind: arityVariable}
}

// ValidateCount checks a child count of n against the contract, failing
// with an *ArityError that names both sides when it does not satisfy.
func (a Arity) ValidateCount(n int) error {
	if !a.Allows(n) {
		return &ArityError{Expected: a, Attempted: n}
	}
	return nil
}

// Allows reports whether a child count of n satisfies the contract.
func (a Arity) Allows(n int) bool {
	switch a.kind {
	case arityNone:
		return n == 0
	case arityOptional:
		return n >= 0 && n <= 1
	case arityExact:
		return n == a.min
	case arityRange:
		return n >= a.min && n <= a.max
	default: // arityVariable
		return n >= 0
	}
}

// Min returns the smallest permitted child count.
func (a Arity) Min() int {
	return a.min
}

// Max returns the largest permitted child count, or false when unbounded.
func (a Arity) Max() (int, bool) {
	if a.kind == arityVariable {
		return 0, false
	}
	return a.max, true
}

// AllowsZero reports whether an empty container satisfies the contract.
func (a Arity) AllowsZero() bool {
	return a.Allows(0)
}

// allowsChildren reports whether the contract can ever hold a child.
func (a Arity) allowsChildren() bool {
	return a.kind != arityNone
}

// isExactly reports whether the contract is Exact(n).
func (a Arity) isExactly(n int) bool {
	return a.kind == arityExact && a.min == n
}

// String returns the contract in constructor form, e.g. "Exact(3)".
func (a Arity) String() string {
	switch a.kind {
	case arityNone:
		return "None"
	case arityOptional:
		return "Optional"
	case arityExact:
		return fmt.Sprintf("Exact(%d)", a.min)
	case arityRange:
		return fmt.Sprintf("Range(%d,%d)", a.min, a.max)
	default:
		return "Variable"
	}
}
