package cache

import (
	"sync"

	"github.com/c360/memocache/errors"
)

// simpleCache is a thread-safe cache with no eviction policy.
// It stores items indefinitely until explicitly deleted or cleared.
type simpleCache[K comparable, V any] struct {
	mu      sync.RWMutex
	items   map[K]V
	stats   *Statistics         // ALWAYS initialized
	metrics *cacheMetrics       // Optional, if metrics enabled
	evictFn EvictCallback[K, V] // Optional callback
}

// newSimpleCache creates a new simple cache instance.
// Returns an error if metrics registration fails when requested.
func newSimpleCache[K comparable, V any](opts *cacheOptions[K, V]) (*simpleCache[K, V], error) {
	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *cacheMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "newSimpleCache", "metrics registration")
		}
	}

	return &simpleCache[K, V]{
		items:   make(map[K]V),
		stats:   stats,   // ALWAYS present
		metrics: metrics, // Optional
		evictFn: opts.evictCallback,
	}, nil
}

// Get retrieves a value by key.
func (c *simpleCache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	value, exists := c.items[key]
	c.mu.RUnlock()

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

// Set stores a value with the given key.
func (c *simpleCache[K, V]) Set(key K, value V) (bool, error) {
	c.mu.Lock()
	_, exists := c.items[key]
	c.items[key] = value
	size := len(c.items)
	c.mu.Unlock()

	// ALWAYS track in stats (observability is not optional)
	c.stats.Set()
	c.stats.UpdateSize(int64(size))

	// ALSO track in metrics if enabled
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(size)
	}

	return !exists, nil // true if new entry was created
}

// Delete removes an entry by key.
func (c *simpleCache[K, V]) Delete(key K) (bool, error) {
	c.mu.Lock()
	value, exists := c.items[key]
	if exists {
		delete(c.items, key)
	}
	size := len(c.items)
	c.mu.Unlock()

	// ALWAYS track in stats if item was deleted
	if exists {
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
	}

	return exists, nil
}

// Clear removes all entries from the cache.
func (c *simpleCache[K, V]) Clear() error {
	var evictItems map[K]V

	c.mu.Lock()
	if c.evictFn != nil {
		evictItems = c.items
	}
	c.items = make(map[K]V)
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
func (c *simpleCache[K, V]) Size() int {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()
	return size
}

// Capacity reports Unbounded; the simple cache never evicts.
func (c *simpleCache[K, V]) Capacity() int {
	return Unbounded
}

// Strategy returns StrategySimple.
func (c *simpleCache[K, V]) Strategy() Strategy {
	return StrategySimple
}

// Keys returns a slice of all keys currently in the cache.
func (c *simpleCache[K, V]) Keys() []K {
	c.mu.RLock()
	keys := make([]K, 0, len(c.items))
	for key := range c.items {
		keys = append(keys, key)
	}
	c.mu.RUnlock()
	return keys
}

// Stats returns cache statistics.
func (c *simpleCache[K, V]) Stats() *Statistics {
	return c.stats
}

// Close shuts down the cache. For simple cache, this is a no-op.
func (c *simpleCache[K, V]) Close() error {
	return nil
}
