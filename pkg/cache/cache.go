// Package cache provides the bounded FIFO map used for candidate caching.
package cache

import (
	"container/list"
	"sync"

	"github.com/charmbracelet/log"
)

// Bounded is a fixed-capacity map that evicts the oldest inserted key when full.
// Re-inserting an existing key replaces its value in place without changing its age,
// and Get never affects eviction order.
type Bounded[K comparable, V any] struct {
	name     string
	capacity int
	order    *list.List // oldest at front
	entries  map[K]*list.Element
	hits     int64
	misses   int64
	mu       sync.Mutex
}

type entry[K comparable, V any] struct {
	key   K
	value V
}

// NewBounded creates a cache holding at most capacity entries. A capacity below 1 is treated as 1.
func NewBounded[K comparable, V any](name string, capacity int) *Bounded[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Bounded[K, V]{
		name:     name,
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[K]*list.Element, capacity),
	}
}

// Get returns the cached value for key.
func (c *Bounded[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.hits++
		return el.Value.(*entry[K, V]).value, true
	}
	c.misses++
	var zero V
	return zero, false
}

// Insert stores value under key, evicting the oldest entry when the cache is full.
func (c *Bounded[K, V]) Insert(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*entry[K, V]).value = value
		return
	}
	if c.order.Len() >= c.capacity {
		c.evictOldest()
	}
	c.entries[key] = c.order.PushBack(&entry[K, V]{key: key, value: value})
}

// Remove deletes key and reports whether it was present.
func (c *Bounded[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return false
	}
	c.order.Remove(el)
	delete(c.entries, key)
	return true
}

// Clear drops every entry.
func (c *Bounded[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.entries)
}

// Len returns the number of cached entries.
func (c *Bounded[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats reports size and hit counters, keyed the way the server exposes them.
func (c *Bounded[K, V]) Stats() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return map[string]int{
		c.name + "Entries":  c.order.Len(),
		c.name + "Capacity": c.capacity,
		c.name + "Hits":     int(c.hits),
		c.name + "Misses":   int(c.misses),
	}
}

func (c *Bounded[K, V]) evictOldest() {
	oldest := c.order.Front()
	if oldest == nil {
		return
	}
	e := c.order.Remove(oldest).(*entry[K, V])
	delete(c.entries, e.key)
	log.Debugf("Evicted %v from %s cache", e.key, c.name)
}
