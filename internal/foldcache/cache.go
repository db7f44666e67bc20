// internal/foldcache/cache.go

// Package foldcache memoizes folds of repeated sequences within a run.
package foldcache

import (
	"container/list"
	"sync"
)

// Cache is a size-bounded, concurrency-safe LRU map. A nil *Cache is a
// valid cache that never hits.
type Cache[K comparable, V any] struct {
	mu     sync.Mutex
	cap    int
	ll     *list.List
	m      map[K]*list.Element
	hits   int
	misses int
}

type node[K comparable, V any] struct {
	k K
	v V
}

// New returns a cache holding at most capacity entries, or nil when
// capacity <= 0.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		return nil
	}
	return &Cache[K, V]{cap: capacity, ll: list.New(), m: make(map[K]*list.Element, capacity)}
}

// Get returns the value for k and marks it recently used.
func (c *Cache[K, V]) Get(k K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.m[k]
	if !ok {
		c.misses++
		return zero, false
	}
	c.hits++
	c.ll.MoveToFront(e)
	return e.Value.(*node[K, V]).v, true
}

// Add inserts or refreshes k, evicting the least recently used entry when
// full.
func (c *Cache[K, V]) Add(k K, v V) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.m[k]; ok {
		e.Value.(*node[K, V]).v = v
		c.ll.MoveToFront(e)
		return
	}
	c.m[k] = c.ll.PushFront(&node[K, V]{k: k, v: v})
	if c.ll.Len() > c.cap {
		tail := c.ll.Back()
		c.ll.Remove(tail)
		delete(c.m, tail.Value.(*node[K, V]).k)
	}
}

// Len is the number of cached entries.
func (c *Cache[K, V]) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Stats reports lookups since creation.
func (c *Cache[K, V]) Stats() (hits, misses int) {
	if c == nil {
		return 0, 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
