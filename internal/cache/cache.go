// Package cache provides the bounded LRU object cache that sits between the
// service handlers and storage. Values are deep-copied on the way in and on
// the way out so callers can never mutate cached state through an alias.
package cache

import (
	"fmt"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Cloneable is satisfied by entity types that can produce a deep copy of
// themselves.
type Cloneable[T any] interface {
	Clone() T
}

// Stats reports cumulative cache counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int
}

// Cache is a bounded least-recently-used cache keyed by entity id. Both reads
// and writes promote the key to the most-recently-used end; eviction removes
// the least-recently-used key. All operations are serialized by a single
// mutex so the cache can be shared across concurrent requests.
type Cache[T Cloneable[T]] struct {
	mu        sync.Mutex
	lru       *simplelru.LRU[int64, T]
	hits      int64
	misses    int64
	evictions int64
}

// New creates a cache holding at most maxSize entries. maxSize must be >= 1.
func New[T Cloneable[T]](maxSize int) (*Cache[T], error) {
	if maxSize < 1 {
		return nil, fmt.Errorf("cache max size must be >= 1, got %d", maxSize)
	}
	lru, err := simplelru.NewLRU[int64, T](maxSize, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru: %w", err)
	}
	return &Cache[T]{lru: lru}, nil
}

// Get returns a deep copy of the cached value and promotes the key, or false
// on a miss. The returned value is never aliased with cached state.
func (c *Cache[T]) Get(key int64) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, ok := c.lru.Get(key)
	if !ok {
		c.misses++
		var zero T
		return zero, false
	}
	c.hits++
	return value.Clone(), true
}

// Put stores a deep copy of value and promotes the key, evicting the
// least-recently-used entry when the cache is full.
func (c *Cache[T]) Put(key int64, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if evicted := c.lru.Add(key, value.Clone()); evicted {
		c.evictions++
	}
}

// Invalidate removes the key if present.
func (c *Cache[T]) Invalidate(key int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Remove(key)
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
}

// Len returns the current number of cached entries.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache[T]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Size:      c.lru.Len(),
	}
}
