package easel

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Pipeline phases. The coordinator refuses structural mutation while
// layout or paint is flushing and refuses dirty marks while paint is
// flushing; everything is fair game while idle or building.
type phase uint32

const (
	phaseIdle phase = iota
	phaseBuild
	phaseLayout
	phasePaint
)

func (p phase) String() string {
	switch p {
	case phaseIdle:
		return "idle"
	case phaseBuild:
		return "build"
	case phaseLayout:
		return "layout"
	case phasePaint:
		return "paint"
	default:
		return "unknown"
	}
}

// maxLayoutPasses bounds the relayout loop within one flush. A behavior
// that re-marks itself every pass would otherwise hang the frame.
const maxLayoutPasses = 1024

// DefaultMaxDepth is the tree depth ceiling unless WithMaxDepth says
// otherwise.
const DefaultMaxDepth = 1024

// DefaultCacheLimit is the layout cache's entry cap unless WithCacheLimit
// says otherwise.
const DefaultCacheLimit = 4096

// Coordinator owns one render tree and drives its frames: it tracks which
// nodes need layout and paint, flushes layout shallow-first until the
// tree settles, flushes paint deep-first, and keeps the per-tree services
// (node registry, layout cache, depth ceiling) in one place.
//
// Structural mutation and flushes belong to one goroutine. Dirty marks
// raised from parallel layout workers are the one sanctioned concurrent
// entry point; the worklists and cache are guarded for them.
type Coordinator struct {
	log        *charmlog.Logger
	maxDepth   int
	cacheLimit int
	budget     time.Duration
	workers    int

	cache *LayoutCache

	mu          sync.Mutex
	registry    map[NodeID]TreeNode
	root        TreeNode
	dirtyLayout []TreeNode
	dirtyPaint  []TreeNode

	phase   atomic.Uint32
	frame   atomic.Uint64
	laidOut atomic.Uint64
}

// New constructs a coordinator with an empty tree. Logging is discarded
// unless WithLogger provides a destination.
func New(opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		log:        charmlog.New(io.Discard),
		maxDepth:   DefaultMaxDepth,
		cacheLimit: DefaultCacheLimit,
		workers:    1,
		registry:   make(map[NodeID]TreeNode),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.cache = newLayoutCache(c.cacheLimit)
	return c, nil
}

// Root returns the attached root, or nil.
func (c *Coordinator) Root() TreeNode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.root
}

// Cache returns the coordinator's layout cache.
func (c *Coordinator) Cache() *LayoutCache { return c.cache }

// MaxDepth returns the configured tree depth ceiling.
func (c *Coordinator) MaxDepth() int { return c.maxDepth }

// Node resolves an ID to its node. Fails with ErrNodeNotFound for IDs the
// coordinator has never seen or whose nodes have left the tree.
func (c *Coordinator) Node(id NodeID) (TreeNode, error) {
	c.mu.Lock()
	n, ok := c.registry[id]
	c.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("node %v: %w", id, ErrNodeNotFound)
	}
	return n, nil
}

// AttachRoot adopts a detached subtree as the coordinator's root. Its
// nodes become Attached; dirt recorded while the subtree was detached
// joins the worklists. Fails if a root is already attached, if any node
// of the subtree is disposed, or if the subtree is taller than the depth
// ceiling. Panics if root is already parented or attached elsewhere.
func (c *Coordinator) AttachRoot(root TreeNode) error {
	if root == nil {
		panic("easel: AttachRoot on nil node")
	}
	c.guardStructure("AttachRoot")
	if root.Parent() != nil {
		panic(fmt.Sprintf("easel: AttachRoot on parented node %v", root.ID()))
	}
	if root.Owner() != nil {
		panic(fmt.Sprintf("easel: AttachRoot on already attached node %v", root.ID()))
	}
	c.mu.Lock()
	held := c.root
	c.mu.Unlock()
	if held != nil {
		return fmt.Errorf("attach root %v: coordinator already holds root %v", root.ID(), held.ID())
	}
	if h := root.subtreeHeight(); h > c.maxDepth {
		return &DepthError{Max: c.maxDepth, Attempted: h}
	}
	root.renumberDepth(0)
	if err := root.attachTo(c); err != nil {
		root.detachFrom()
		return fmt.Errorf("attach root %v: %w", root.ID(), err)
	}
	c.mu.Lock()
	c.root = root
	nodes := len(c.registry)
	c.mu.Unlock()
	c.log.Debug("root attached", "node", root.ID(), "nodes", nodes)
	return nil
}

// DetachRoot detaches the root subtree and returns it, or nil when no
// root is attached. The subtree keeps its dirty flags and geometry and
// can be re-attached here or elsewhere.
func (c *Coordinator) DetachRoot() TreeNode {
	c.guardStructure("DetachRoot")
	c.mu.Lock()
	root := c.root
	c.mu.Unlock()
	if root == nil {
		return nil
	}
	root.detachFrom()
	c.mu.Lock()
	c.root = nil
	c.dirtyLayout = nil
	c.dirtyPaint = nil
	c.mu.Unlock()
	c.log.Debug("root detached", "node", root.ID())
	return root
}

// MarkNeedsLayout marks the identified node by ID. Equivalent to calling
// MarkNeedsLayout on the node itself.
func (c *Coordinator) MarkNeedsLayout(id NodeID) error {
	n, err := c.Node(id)
	if err != nil {
		return err
	}
	return n.markLayout()
}

// MarkNeedsPaint marks the identified node by ID. Equivalent to calling
// MarkNeedsPaint on the node itself.
func (c *Coordinator) MarkNeedsPaint(id NodeID) error {
	n, err := c.Node(id)
	if err != nil {
		return err
	}
	return n.markPaint()
}

// DirtyCounts returns how many nodes currently sit on the layout and
// paint worklists.
func (c *Coordinator) DirtyCounts() (layout, paint int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirtyLayout), len(c.dirtyPaint)
}

// FlushLayout drains the layout worklist: each pass pops the queued
// boundary nodes, orders them shallow-first so ancestors resolve before
// the descendants they may re-lay-out, and replays their layouts. Passes
// repeat because a node's layout can enqueue deeper dirt; the flush ends
// when a pass finds the worklist empty. On error the unprocessed dirt is
// re-queued and the flush stops.
func (c *Coordinator) FlushLayout() error {
	_, err := c.flushLayout()
	return err
}

func (c *Coordinator) flushLayout() (int, error) {
	c.enterPhase(phaseLayout, "FlushLayout")
	defer c.leavePhase()

	start := time.Now()
	before := c.laidOut.Load()
	passes := 0
	for {
		c.mu.Lock()
		work := c.dirtyLayout
		c.dirtyLayout = nil
		c.mu.Unlock()
		if len(work) == 0 {
			break
		}
		passes++
		if passes > maxLayoutPasses {
			c.requeueLayout(work)
			return passes, fmt.Errorf("layout did not settle after %d passes", maxLayoutPasses)
		}
		sort.SliceStable(work, func(i, j int) bool {
			return work[i].Depth() < work[j].Depth()
		})
		if err := c.runLayoutPass(work); err != nil {
			return passes, err
		}
	}
	if passes > 0 {
		c.log.Debug("layout flushed",
			"passes", passes,
			"nodes", c.laidOut.Load()-before,
			"took", time.Since(start))
	}
	return passes, nil
}

// runLayoutPass replays one sorted pass serially. The parallel variant
// takes over when WithParallelLayout raised the worker count.
func (c *Coordinator) runLayoutPass(work []TreeNode) error {
	if c.workers > 1 {
		return c.runLayoutPassParallel(work)
	}
	for i, n := range work {
		n.setLayoutQueued(false)
		if n.Owner() != c || !n.NeedsLayout() {
			continue
		}
		if err := n.layoutBySelf(); err != nil {
			c.requeueLayout(work[i:])
			return err
		}
	}
	return nil
}

// requeueLayout returns still-dirty nodes to the worklist after a failed
// pass so the next flush can resume.
func (c *Coordinator) requeueLayout(work []TreeNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range work {
		if n.Owner() == c && n.NeedsLayout() && !n.layoutQueued() {
			n.setLayoutQueued(true)
			c.dirtyLayout = append(c.dirtyLayout, n)
		}
	}
}

// FlushPaint repaints every marked node onto canvas, deepest first, each
// from its recorded offset. A single pass: nodes that defer (geometry
// stale again) wait for the next flush. Call after FlushLayout; marked
// nodes whose layout never settled defer rather than paint stale
// geometry.
func (c *Coordinator) FlushPaint(canvas Canvas) error {
	p := NewPaintContext(canvas)
	return c.flushPaint(p)
}

func (c *Coordinator) flushPaint(p *PaintContext) error {
	c.enterPhase(phasePaint, "FlushPaint")
	defer c.leavePhase()

	start := time.Now()
	c.mu.Lock()
	work := c.dirtyPaint
	c.dirtyPaint = nil
	c.mu.Unlock()
	if len(work) == 0 {
		return nil
	}
	sort.SliceStable(work, func(i, j int) bool {
		return work[i].Depth() > work[j].Depth()
	})
	for i, n := range work {
		n.setPaintQueued(false)
		if n.Owner() != c || !n.NeedsPaint() {
			continue
		}
		if err := n.repaint(p); err != nil {
			c.requeuePaint(work[i:])
			return err
		}
	}
	c.log.Debug("paint flushed", "painted", p.Painted(), "took", time.Since(start))
	return nil
}

func (c *Coordinator) requeuePaint(work []TreeNode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, n := range work {
		if n.Owner() == c && n.NeedsPaint() && !n.paintQueued() {
			n.setPaintQueued(true)
			c.dirtyPaint = append(c.dirtyPaint, n)
		}
	}
}

func (c *Coordinator) register(n TreeNode) {
	c.mu.Lock()
	c.registry[n.ID()] = n
	c.mu.Unlock()
}

func (c *Coordinator) unregister(n TreeNode) {
	c.mu.Lock()
	delete(c.registry, n.ID())
	c.mu.Unlock()
}

func (c *Coordinator) enqueueLayout(n TreeNode) {
	c.mu.Lock()
	if !n.layoutQueued() {
		n.setLayoutQueued(true)
		c.dirtyLayout = append(c.dirtyLayout, n)
	}
	c.mu.Unlock()
}

func (c *Coordinator) enqueuePaint(n TreeNode) {
	c.mu.Lock()
	if !n.paintQueued() {
		n.setPaintQueued(true)
		c.dirtyPaint = append(c.dirtyPaint, n)
	}
	c.mu.Unlock()
}

func (c *Coordinator) currentPhase() phase {
	return phase(c.phase.Load())
}

func (c *Coordinator) enterPhase(p phase, op string) {
	if !c.phase.CompareAndSwap(uint32(phaseIdle), uint32(p)) {
		panic(fmt.Sprintf("easel: %s during %s", op, c.currentPhase()))
	}
}

func (c *Coordinator) leavePhase() {
	c.phase.Store(uint32(phaseIdle))
}

// guardStructure panics when tree structure would change under a running
// flush. Structural mutation belongs to the build phase and idle time.
func (c *Coordinator) guardStructure(op string) {
	switch c.currentPhase() {
	case phaseLayout:
		panic("easel: " + op + " during layout")
	case phasePaint:
		panic("easel: " + op + " during paint")
	}
}

// guardPaintPhase panics when a dirty mark is raised while paint is
// flushing. Marks during build and layout are part of normal operation.
func (c *Coordinator) guardPaintPhase(op string) {
	if c.currentPhase() == phasePaint {
		panic("easel: " + op + " during paint")
	}
}
