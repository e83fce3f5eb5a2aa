// Package cache provides a generic LRU cache with an eviction hook.
//
// It backs caches of resources that must be released explicitly, such as GPU
// textures: evicted values are handed to the OnEvict callback instead of
// being dropped silently.
//
//	c := cache.New[int, Texture](256, func(_ int, t Texture) { retire(t) })
//	c.Set(3, tex)
//	tex, ok := c.Get(3)
package cache

import "sync"

// lruNode is a node in a doubly-linked LRU list.
type lruNode[K comparable, V any] struct {
	key   K
	value V
	prev  *lruNode[K, V]
	next  *lruNode[K, V]
}

// Cache is a thread-safe LRU cache. When it holds more than limit entries,
// the least recently used entries are evicted.
//
// Cache must not be copied after creation (has mutex).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	head    *lruNode[K, V] // most recently used
	tail    *lruNode[K, V] // least recently used
	limit   int
	onEvict func(K, V)

	hits, misses, evictions uint64
}

// New creates a cache holding at most limit entries. A limit of 0 means
// unlimited. onEvict, if not nil, is called with each entry removed by
// eviction, Delete or Clear. It runs with the cache locked and must not call
// back into the cache.
func New[K comparable, V any](limit int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*lruNode[K, V]),
		limit:   limit,
		onEvict: onEvict,
	}
}

// Get retrieves a value and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.moveToFront(node)
	return node.value, true
}

// Set stores a value. A value already stored under key is replaced and
// passed to onEvict.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		old := node.value
		node.value = value
		c.moveToFront(node)
		c.evicted(key, old)
		return
	}

	node := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = node
	c.pushFront(node)

	for c.limit > 0 && len(c.entries) > c.limit {
		oldest := c.tail
		c.unlink(oldest)
		delete(c.entries, oldest.key)
		c.evictions++
		c.evicted(oldest.key, oldest.value)
	}
}

// Delete removes an entry. Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		return false
	}
	c.unlink(node)
	delete(c.entries, key)
	c.evicted(key, node.value)
	return true
}

// Clear removes all entries, oldest first.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for node := c.tail; node != nil; node = node.prev {
		c.evicted(node.key, node.value)
	}
	c.entries = make(map[K]*lruNode[K, V])
	c.head = nil
	c.tail = nil
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats returns cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.limit,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

func (c *Cache[K, V]) evicted(key K, value V) {
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
}

func (c *Cache[K, V]) pushFront(node *lruNode[K, V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *Cache[K, V]) moveToFront(node *lruNode[K, V]) {
	if node == c.head {
		return
	}
	c.unlink(node)
	c.pushFront(node)
}

// unlink removes a node from the list and clears its pointers.
func (c *Cache[K, V]) unlink(node *lruNode[K, V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the entry limit, 0 when unlimited.
	Capacity int
	// Hits and Misses count Get calls.
	Hits, Misses uint64
	// HitRate is Hits over all Get calls, 0.0 to 1.0.
	HitRate float64
	// Evictions counts entries removed to stay under Capacity.
	Evictions uint64
}
