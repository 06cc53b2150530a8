package vdom

import (
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// TemplateCache maps a shape identifier to a built tree. It is an explicit
// object handed to whoever renders, so its lifetime and invalidation are in
// the caller's hands. It is safe for concurrent use.
//
// Cached trees are shared. Callers must treat them as immutable, which the
// diff engine already does.
type TemplateCache struct {
	mu      sync.RWMutex
	entries map[string]Node
	builds  singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewTemplateCache creates an empty cache.
func NewTemplateCache() *TemplateCache {
	return &TemplateCache{entries: make(map[string]Node)}
}

// Get returns the tree cached under id.
func (c *TemplateCache) Get(id string) (Node, bool) {
	c.mu.RLock()
	n, ok := c.entries[id]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return n, ok
}

// Put caches n under id, replacing any previous entry.
func (c *TemplateCache) Put(id string, n Node) {
	c.mu.Lock()
	c.entries[id] = n
	c.mu.Unlock()
}

// GetOrBuild returns the tree cached under id, calling build to create it on
// a miss. Concurrent callers missing on the same id share one build. A
// failed build is not cached.
func (c *TemplateCache) GetOrBuild(id string, build func() (Node, error)) (Node, error) {
	if n, ok := c.Get(id); ok {
		return n, nil
	}
	v, err, _ := c.builds.Do(id, func() (any, error) {
		c.mu.RLock()
		n, ok := c.entries[id]
		c.mu.RUnlock()
		if ok {
			return n, nil
		}
		n, err := build()
		if err != nil {
			return nil, err
		}
		c.Put(id, n)
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(Node), nil
}

// Invalidate drops the entry for id and reports whether one existed.
func (c *TemplateCache) Invalidate(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	delete(c.entries, id)
	return ok
}

// Reset drops every entry and zeroes the counters.
func (c *TemplateCache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]Node)
	c.mu.Unlock()
	c.hits.Store(0)
	c.misses.Store(0)
}

// Len returns the number of cached trees.
func (c *TemplateCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the number of lookups that hit and missed.
func (c *TemplateCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
