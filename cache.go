package msgformat

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// DefaultCacheSize is the capacity used when none is configured.
const DefaultCacheSize = 1000

type cacheEntry[V any] struct {
	key   string
	value V
}

// CacheStats is a point-in-time view of a Cache.
type CacheStats struct {
	Entries   int
	Capacity  int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// Cache is a bounded, exact least-recently-used table.
//
// A map gives O(1) lookups and a doubly-linked list keeps recency order: the
// most recently used entry sits at the front, the eviction candidate at the back.
// The mutex covers only those structural operations.
type Cache[V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// NewCache returns a cache holding at most capacity entries. A non-positive
// capacity selects DefaultCacheSize.
func NewCache[V any](capacity int) *Cache[V] {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache[V]{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the value stored under key and marks it most recently used.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	c.order.MoveToFront(elem)
	return elem.Value.(*cacheEntry[V]).value, true
}

// Set inserts or replaces key, marks it most recently used and evicts the
// least recently used entry when the cache grows past its capacity.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		elem.Value.(*cacheEntry[V]).value = value
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry[V]{key: key, value: value})
	if len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Fetch returns the cached value for key, or runs compute, stores its result
// and returns it. compute runs without the lock held, so concurrent misses on
// the same key may each compute; the last one stored wins. A failed compute
// stores nothing.
func (c *Cache[V]) Fetch(key string, compute func() (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}
	value, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	c.Set(key, value)
	return value, nil
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the number of entries.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns counters accumulated since the cache was created.
func (c *Cache[V]) Stats() CacheStats {
	return CacheStats{
		Entries:   c.Len(),
		Capacity:  c.capacity,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// evictOldest removes the least recently used entry. Caller must hold the mutex.
func (c *Cache[V]) evictOldest() {
	elem := c.order.Back()
	if elem == nil {
		return
	}
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*cacheEntry[V]).key)
	c.evictions.Add(1)
}
