package cache

import (
	"fmt"
	"sync"

	"github.com/c360/memocache/errors"
)

// boundedCache is a thread-safe cache with a capacity limit and a pluggable
// eviction policy. Inserting into a full cache evicts exactly one victim,
// chosen by the policy, before the new entry is stored.
type boundedCache[K comparable, V any] struct {
	mu       sync.Mutex
	strategy Strategy
	capacity int
	items    map[K]V
	policy   policy[K]
	stats    *Statistics         // ALWAYS initialized
	metrics  *cacheMetrics       // Optional, if metrics enabled
	evictFn  EvictCallback[K, V] // Optional callback
}

// newBoundedCache creates a bounded cache driven by the given policy.
// Returns an error if the capacity is invalid or metrics registration fails.
func newBoundedCache[K comparable, V any](
	strategy Strategy, capacity int, pol policy[K], opts *cacheOptions[K, V],
) (*boundedCache[K, V], error) {
	if capacity < 0 && capacity != Unbounded {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "newBoundedCache",
			fmt.Sprintf("capacity must be non-negative or Unbounded, got %d", capacity))
	}

	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *cacheMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "newBoundedCache", "metrics registration")
		}
	}

	return &boundedCache[K, V]{
		strategy: strategy,
		capacity: capacity,
		items:    make(map[K]V),
		policy:   pol,
		stats:    stats,   // ALWAYS present
		metrics:  metrics, // Optional
		evictFn:  opts.evictCallback,
	}, nil
}

// Get retrieves a value by key. A hit updates the policy's ordering state
// atomically with the lookup.
func (c *boundedCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	value, exists := c.items[key]
	if exists {
		c.policy.accessed(key)
	}
	c.mu.Unlock()

	// ALWAYS track in stats (observability is not optional)
	if exists {
		c.stats.Hit()
		// ALSO track in metrics if enabled
		if c.metrics != nil {
			c.metrics.recordHit()
		}
	} else {
		c.stats.Miss()
		if c.metrics != nil {
			c.metrics.recordMiss()
		}
	}

	return value, exists
}

// Set stores a value with the given key. Overwriting an existing key updates
// the policy as an access; inserting into a full cache first evicts the
// policy's victim. A zero-capacity cache cannot store anything and reports
// ErrCapacityExceeded.
func (c *boundedCache[K, V]) Set(key K, value V) (bool, error) {
	c.mu.Lock()

	if _, exists := c.items[key]; exists {
		c.items[key] = value
		c.policy.accessed(key)
		c.mu.Unlock()

		// ALWAYS track in stats (observability is not optional)
		c.stats.Set()
		if c.metrics != nil {
			c.metrics.recordSet()
		}
		return false, nil // existing entry was updated
	}

	if c.capacity == 0 {
		c.mu.Unlock()
		// The cache can never hold this entry; the operation is a no-op
		// signaled distinctly from a normal store.
		return false, errors.WrapInvalid(errors.ErrCapacityExceeded, "cache", "Set",
			"zero-capacity cache cannot store entries")
	}

	var evictKey K
	var evictValue V
	var evicted bool

	if c.capacity != Unbounded && len(c.items) >= c.capacity {
		victim, err := c.policy.victim()
		if err != nil {
			c.mu.Unlock()
			return false, err
		}
		evictKey = victim
		evictValue = c.items[victim]
		evicted = true

		delete(c.items, victim)
		c.policy.removed(victim)
	}

	c.items[key] = value
	c.policy.inserted(key)
	size := len(c.items)
	c.mu.Unlock()

	// ALWAYS track in stats (observability is not optional)
	c.stats.Set()
	c.stats.UpdateSize(int64(size))
	if evicted {
		c.stats.Eviction()
	}

	// ALSO track in metrics if enabled
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(size)
		if evicted {
			c.metrics.recordEviction()
		}
	}

	// Call eviction callback outside lock to prevent deadlock
	if evicted && c.evictFn != nil {
		c.evictFn(evictKey, evictValue)
	}

	return true, nil // new entry was created
}

// Delete removes an entry by key from both the entries and the policy.
func (c *boundedCache[K, V]) Delete(key K) (bool, error) {
	c.mu.Lock()
	value, exists := c.items[key]
	if !exists {
		c.mu.Unlock()
		return false, nil
	}

	delete(c.items, key)
	c.policy.removed(key)
	size := len(c.items)
	c.mu.Unlock()

	// ALWAYS track in stats (observability is not optional)
	c.stats.Delete()
	c.stats.UpdateSize(int64(size))
	// ALSO track in metrics if enabled
	if c.metrics != nil {
		c.metrics.recordDelete()
		c.metrics.updateSize(size)
	}

	// Call eviction callback outside lock to prevent deadlock
	if c.evictFn != nil {
		c.evictFn(key, value)
	}

	return true, nil
}

// Clear removes all entries from the cache.
func (c *boundedCache[K, V]) Clear() error {
	var evictItems map[K]V

	c.mu.Lock()
	if c.evictFn != nil {
		evictItems = c.items
	}
	c.items = make(map[K]V)
	c.policy.reset()
	c.mu.Unlock()

	// ALWAYS track size update in stats
	c.stats.UpdateSize(0)
	// ALSO track in metrics if enabled
	if c.metrics != nil {
		c.metrics.updateSize(0)
	}

	// Call eviction callbacks outside lock to prevent deadlock
	for key, value := range evictItems {
		c.evictFn(key, value)
	}

	return nil
}

// Size returns the current number of entries in the cache.
func (c *boundedCache[K, V]) Size() int {
	c.mu.Lock()
	size := len(c.items)
	c.mu.Unlock()
	return size
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *boundedCache[K, V]) Capacity() int {
	return c.capacity
}

// Strategy returns the eviction strategy this cache was built with.
func (c *boundedCache[K, V]) Strategy() Strategy {
	return c.strategy
}

// Keys returns a slice of all keys currently in the cache, in no particular
// order.
func (c *boundedCache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]K, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	return keys
}

// Stats returns cache statistics.
func (c *boundedCache[K, V]) Stats() *Statistics {
	return c.stats
}

// Close shuts down the cache. Bounded caches have no background goroutines.
func (c *boundedCache[K, V]) Close() error {
	return nil
}
