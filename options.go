package easel

import (
	"fmt"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Option is a functional option for configuring a Coordinator.
type Option func(*Coordinator) error

// WithLogger routes the coordinator's structured logs to l. By default
// logs are discarded.
func WithLogger(l *charmlog.Logger) Option {
	return func(c *Coordinator) error {
		if l == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		c.log = l
		return nil
	}
}

// WithMaxDepth sets the tree depth ceiling. Mutations and attachments
// that would place a node deeper fail with a DepthError. Default is
// DefaultMaxDepth.
func WithMaxDepth(d int) Option {
	return func(c *Coordinator) error {
		if d < 1 {
			return fmt.Errorf("max depth must be at least 1, got %d", d)
		}
		c.maxDepth = d
		return nil
	}
}

// WithCacheLimit caps the layout cache's entry count; 0 removes the cap.
// Default is DefaultCacheLimit.
func WithCacheLimit(n int) Option {
	return func(c *Coordinator) error {
		if n < 0 {
			return fmt.Errorf("cache limit cannot be negative, got %d", n)
		}
		c.cacheLimit = n
		return nil
	}
}

// WithFrameBudget sets the duration a frame's phases are measured
// against. A layout or paint flush that meets or exceeds it is reported
// as an overrun in the frame's stats; nothing is interrupted. Zero, the
// default, disables the check.
func WithFrameBudget(d time.Duration) Option {
	return func(c *Coordinator) error {
		if d < 0 {
			return fmt.Errorf("frame budget cannot be negative, got %v", d)
		}
		c.budget = d
		return nil
	}
}

// WithParallelLayout lays out each depth stratum's boundary nodes across
// n workers. Nodes at equal depth are never in each other's subtrees, so
// their layouts touch disjoint state. n of 1, the default, keeps layout
// serial.
func WithParallelLayout(n int) Option {
	return func(c *Coordinator) error {
		if n < 1 {
			return fmt.Errorf("parallel layout needs at least 1 worker, got %d", n)
		}
		c.workers = n
		return nil
	}
}
