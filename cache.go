package easel

import (
	"sync"
	"sync/atomic"
)

// topologyFingerprint summarizes a node's child topology for cache
// keying: the live child count plus a generation that moves whenever the
// node's parameters or structure change. Two equal fingerprints on the
// same node mean every input to its layout besides the constraints is
// unchanged.
type topologyFingerprint struct {
	children   int
	generation uint32
}

// cacheKey addresses one cached layout result: this node, under these
// constraints, with this child topology. The constraint type rides in the
// key's own type, so box and sliver entries can never collide even for a
// node ID reused across protocols (IDs are never reused, but the key does
// not depend on that).
type cacheKey[C Constraints] struct {
	node NodeID
	c    C
	fp   topologyFingerprint
}

// LayoutCache memoizes layout results across frames, shared by every node
// under one coordinator. Entries become unreachable rather than evicted
// when a node's generation moves; the entry cap bounds the resulting
// garbage by discarding the whole map when full, which costs at most one
// cold frame.
//
// The cache is safe for concurrent use; parallel layout workers consult
// it freely.
type LayoutCache struct {
	mu      sync.RWMutex
	entries map[any]any
	limit   int

	hits   atomic.Uint64
	misses atomic.Uint64
}

func newLayoutCache(limit int) *LayoutCache {
	return &LayoutCache{
		entries: make(map[any]any),
		limit:   limit,
	}
}

// Len returns the live entry count.
func (lc *LayoutCache) Len() int {
	lc.mu.RLock()
	defer lc.mu.RUnlock()
	return len(lc.entries)
}

// Clear drops every entry. Counters are unaffected.
func (lc *LayoutCache) Clear() {
	lc.mu.Lock()
	clear(lc.entries)
	lc.mu.Unlock()
}

// Stats returns the lifetime hit and miss counts.
func (lc *LayoutCache) Stats() (hits, misses uint64) {
	return lc.hits.Load(), lc.misses.Load()
}

// cacheGet looks up a layout result. Generic functions stand in for the
// methods Go cannot parameterize: the cache itself is type-erased, the
// call sites are not.
func cacheGet[C Constraints, G any](lc *LayoutCache, k cacheKey[C]) (G, bool) {
	var zero G
	if lc == nil {
		return zero, false
	}
	lc.mu.RLock()
	v, ok := lc.entries[k]
	lc.mu.RUnlock()
	if !ok {
		lc.misses.Add(1)
		return zero, false
	}
	g, ok := v.(G)
	if !ok {
		// A key's node has exactly one geometry type for its lifetime,
		// so this only trips if two coordinators share a cache across
		// conflicting instantiations. Treat it as a miss.
		lc.misses.Add(1)
		return zero, false
	}
	lc.hits.Add(1)
	return g, true
}

func cachePut[C Constraints, G any](lc *LayoutCache, k cacheKey[C], g G) {
	if lc == nil {
		return
	}
	lc.mu.Lock()
	if lc.limit > 0 && len(lc.entries) >= lc.limit {
		if _, exists := lc.entries[k]; !exists {
			clear(lc.entries)
		}
	}
	lc.entries[k] = g
	lc.mu.Unlock()
}
