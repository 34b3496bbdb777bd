package easel

import (
	"fmt"
	"time"
)

// Overrun records a pipeline phase that met or exceeded the frame
// budget. The phase still ran to completion; the overrun is a report,
// not an interruption.
type Overrun struct {
	Elapsed time.Duration
	Budget  time.Duration
}

// Excess returns how far past the budget the phase ran.
func (o *Overrun) Excess() time.Duration {
	if o.Elapsed <= o.Budget {
		return 0
	}
	return o.Elapsed - o.Budget
}

func (o *Overrun) String() string {
	return fmt.Sprintf("%v over a %v budget", o.Excess(), o.Budget)
}

// FrameStats reports one frame's work: where the time went, how much of
// the tree moved, and how the layout cache fared.
type FrameStats struct {
	// Frame is the 1-based frame ordinal.
	Frame uint64

	Build  time.Duration
	Layout time.Duration
	Paint  time.Duration
	Total  time.Duration

	// LayoutPasses is how many worklist drains layout took to settle.
	LayoutPasses int
	NodesLaidOut uint64
	NodesPainted int

	CacheHits   uint64
	CacheMisses uint64

	// LayoutOverrun and PaintOverrun are set when the phase met or
	// exceeded the coordinator's frame budget; nil otherwise.
	LayoutOverrun *Overrun
	PaintOverrun  *Overrun
}

func (s FrameStats) String() string {
	return fmt.Sprintf("frame %d: build %v, layout %v (%d passes, %d nodes), paint %v (%d nodes), cache %d/%d",
		s.Frame, s.Build, s.Layout, s.LayoutPasses, s.NodesLaidOut,
		s.Paint, s.NodesPainted, s.CacheHits, s.CacheHits+s.CacheMisses)
}

// Frame runs one build/layout/paint cycle: build mutates the tree, the
// layout flush settles geometry, and the paint flush emits marked nodes
// onto canvas. Either closure half may be skipped with nil build or a nil
// canvas. Stats are returned even when a phase fails, covering the work
// done up to the failure.
func (c *Coordinator) Frame(build func() error, canvas Canvas) (stats FrameStats, err error) {
	stats.Frame = c.frame.Add(1)
	hits0, misses0 := c.cache.Stats()
	laid0 := c.laidOut.Load()
	frameStart := time.Now()
	defer func() {
		stats.Total = time.Since(frameStart)
		hits1, misses1 := c.cache.Stats()
		stats.CacheHits = hits1 - hits0
		stats.CacheMisses = misses1 - misses0
		stats.NodesLaidOut = c.laidOut.Load() - laid0
	}()

	if build != nil {
		c.enterPhase(phaseBuild, "Frame")
		t := time.Now()
		buildErr := build()
		stats.Build = time.Since(t)
		c.leavePhase()
		if buildErr != nil {
			return stats, fmt.Errorf("frame %d build: %w", stats.Frame, buildErr)
		}
	}

	t := time.Now()
	passes, layoutErr := c.flushLayout()
	stats.Layout = time.Since(t)
	stats.LayoutPasses = passes
	if c.budget > 0 && stats.Layout >= c.budget {
		stats.LayoutOverrun = &Overrun{Elapsed: stats.Layout, Budget: c.budget}
		c.log.Warn("layout overran frame budget", "frame", stats.Frame, "overrun", stats.LayoutOverrun)
	}
	if layoutErr != nil {
		return stats, fmt.Errorf("frame %d layout: %w", stats.Frame, layoutErr)
	}

	p := NewPaintContext(canvas)
	t = time.Now()
	paintErr := c.flushPaint(p)
	stats.Paint = time.Since(t)
	stats.NodesPainted = p.Painted()
	if c.budget > 0 && stats.Paint >= c.budget {
		stats.PaintOverrun = &Overrun{Elapsed: stats.Paint, Budget: c.budget}
		c.log.Warn("paint overran frame budget", "frame", stats.Frame, "overrun", stats.PaintOverrun)
	}
	if paintErr != nil {
		return stats, fmt.Errorf("frame %d paint: %w", stats.Frame, paintErr)
	}
	return stats, nil
}
