package easel

import "golang.org/x/sync/errgroup"

// runLayoutPassParallel replays one sorted pass with the work split into
// depth strata. Nodes at equal depth are never in each other's subtrees,
// so their layouts read and write disjoint node state; the shared
// surfaces they do touch (worklists, cache, counters) are guarded.
// Strata still run shallow-first, and within a failing stratum the
// remaining work is re-queued exactly as the serial pass would.
//
// Behaviors must not raise layout marks from inside PerformLayout when
// parallel layout is on; marks for paint are fine.
func (c *Coordinator) runLayoutPassParallel(work []TreeNode) error {
	for lo := 0; lo < len(work); {
		hi := lo + 1
		for hi < len(work) && work[hi].Depth() == work[lo].Depth() {
			hi++
		}
		stratum := work[lo:hi]
		if len(stratum) == 1 {
			n := stratum[0]
			n.setLayoutQueued(false)
			if n.Owner() == c && n.NeedsLayout() {
				if err := n.layoutBySelf(); err != nil {
					c.requeueLayout(work[lo:])
					return err
				}
			}
			lo = hi
			continue
		}
		var g errgroup.Group
		g.SetLimit(c.workers)
		for _, n := range stratum {
			g.Go(func() error {
				n.setLayoutQueued(false)
				if n.Owner() != c || !n.NeedsLayout() {
					return nil
				}
				return n.layoutBySelf()
			})
		}
		if err := g.Wait(); err != nil {
			c.requeueLayout(work[lo:])
			return err
		}
		lo = hi
	}
	return nil
}
