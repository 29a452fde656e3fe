package cache

import (
	"container/list"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/c360/memocache/errors"
)

// ttlEntry represents an entry in the TTL cache. Because every entry carries
// the same ttl, the expiry list stays ordered by simply appending on insert
// and moving to the back on overwrite.
type ttlEntry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	orderElem *list.Element // position in recency order
	expElem   *list.Element // position in expiry order
}

// ttlCache is a thread-safe cache whose entries expire a fixed duration after
// they are stored. Expired entries are treated as absent and purged lazily at
// the start of every operation; a lookup never returns an expired value.
// Capacity pressure among live entries falls back to LRU eviction. With
// capacity Unbounded only time-based eviction applies.
type ttlCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	timer    func() time.Time
	items    map[K]*ttlEntry[K, V]
	order    *list.List // recency order; front = most recently used
	exp      *list.List // expiry order; front = next to expire

	stats   *Statistics         // ALWAYS initialized
	metrics *cacheMetrics       // Optional, if metrics enabled
	evictFn EvictCallback[K, V] // Optional callback

	// Background cleanup coordination
	cleanupInterval time.Duration
	shutdown        chan struct{}
	done            chan struct{}
}

// newTTLCache creates a new TTL cache. Expiry is lazy unless a cleanup
// interval was configured, in which case a background sweep goroutine runs
// until the cache is closed or ctx is canceled.
func newTTLCache[K comparable, V any](
	ctx context.Context, capacity int, ttl time.Duration, opts *cacheOptions[K, V],
) (*ttlCache[K, V], error) {
	if capacity < 0 && capacity != Unbounded {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "newTTLCache",
			fmt.Sprintf("capacity must be non-negative or Unbounded, got %d", capacity))
	}
	if ttl < 0 {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "newTTLCache",
			fmt.Sprintf("ttl must be non-negative, got %v", ttl))
	}

	// Stats are ALWAYS initialized - observability is not optional
	stats := NewStatistics()

	var metrics *cacheMetrics
	// Optionally expose stats as Prometheus metrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "newTTLCache", "metrics registration")
		}
	}

	c := &ttlCache[K, V]{
		capacity:        capacity,
		ttl:             ttl,
		timer:           opts.timer,
		items:           make(map[K]*ttlEntry[K, V]),
		order:           list.New(),
		exp:             list.New(),
		stats:           stats,   // ALWAYS present
		metrics:         metrics, // Optional
		evictFn:         opts.evictCallback,
		cleanupInterval: opts.cleanupInterval,
		shutdown:        make(chan struct{}),
		done:            make(chan struct{}),
	}
	if c.timer == nil {
		c.timer = time.Now
	}

	if c.cleanupInterval > 0 {
		go c.cleanup(ctx, opts)
	} else {
		// No goroutine to wait for on Close.
		close(c.done)
	}

	return c, nil
}

// Get retrieves a value by key. Expired entries are purged first, so a lookup
// for an expired-but-present key misses and removes the entry as a side
// effect. A hit marks the entry as most recently used.
func (c *ttlCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	expired := c.expireLocked(c.timer())
	var value V
	entry, exists := c.items[key]
	if exists {
		// Copy under the lock; Set mutates entry.value in place for
		// overwrites of the same key.
		value = entry.value
		c.order.MoveToFront(entry.orderElem)
	}
	size := len(c.items)
	c.mu.Unlock()

	c.finishExpired(expired, size)

	// ALWAYS track in stats (observability is not optional)
	if exists {
		c.stats.Hit()
		// ALSO track in metrics if enabled
		if c.metrics != nil {
			c.metrics.recordHit()
		}
		return value, true
	}

	c.stats.Miss()
	if c.metrics != nil {
		c.metrics.recordMiss()
	}

	var zero V
	return zero, false
}

// Set stores a value with the given key and stamps its expiration. If the
// cache is full of live entries, the least recently used one is evicted.
func (c *ttlCache[K, V]) Set(key K, value V) (bool, error) {
	now := c.timer()

	c.mu.Lock()
	expired := c.expireLocked(now)

	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.expiresAt = now.Add(c.ttl)
		c.order.MoveToFront(entry.orderElem)
		c.exp.MoveToBack(entry.expElem)
		size := len(c.items)
		c.mu.Unlock()

		c.finishExpired(expired, size)

		// ALWAYS track in stats (observability is not optional)
		c.stats.Set()
		if c.metrics != nil {
			c.metrics.recordSet()
		}
		return false, nil // existing entry was updated
	}

	if c.capacity == 0 {
		c.mu.Unlock()
		c.finishExpired(expired, 0)
		return false, errors.WrapInvalid(errors.ErrCapacityExceeded, "cache", "Set",
			"zero-capacity cache cannot store entries")
	}

	var evicted *ttlEntry[K, V]
	if c.capacity != Unbounded && len(c.items) >= c.capacity {
		element := c.order.Back()
		if element != nil {
			evicted = element.Value.(*ttlEntry[K, V])
			c.removeEntryLocked(evicted)
		}
	}

	entry := &ttlEntry[K, V]{
		key:       key,
		value:     value,
		expiresAt: now.Add(c.ttl),
	}
	entry.orderElem = c.order.PushFront(entry)
	entry.expElem = c.exp.PushBack(entry)
	c.items[key] = entry
	size := len(c.items)
	c.mu.Unlock()

	c.finishExpired(expired, size)

	// ALWAYS track in stats (observability is not optional)
	c.stats.Set()
	c.stats.UpdateSize(int64(size))
	if evicted != nil {
		c.stats.Eviction()
	}
	// ALSO track in metrics if enabled
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(size)
		if evicted != nil {
			c.metrics.recordEviction()
		}
	}

	// Call eviction callback outside lock to prevent deadlock
	if evicted != nil && c.evictFn != nil {
		c.evictFn(evicted.key, evicted.value)
	}

	return true, nil // new entry was created
}

// Delete removes an entry by key.
func (c *ttlCache[K, V]) Delete(key K) (bool, error) {
	c.mu.Lock()
	expired := c.expireLocked(c.timer())
	entry, exists := c.items[key]
	if exists {
		c.removeEntryLocked(entry)
	}
	size := len(c.items)
	c.mu.Unlock()

	c.finishExpired(expired, size)

	// ALWAYS track in stats if item was deleted
	if exists {
		c.stats.Delete()
		c.stats.UpdateSize(int64(size))
		// ALSO track in metrics if enabled
		if c.metrics != nil {
			c.metrics.recordDelete()
			c.metrics.updateSize(size)
		}
		if c.evictFn != nil {
			c.evictFn(entry.key, entry.value)
		}
	}

	return exists, nil
}

// Clear removes all entries from the cache.
func (c *ttlCache[K, V]) Clear() error {
	var evictItems []*ttlEntry[K, V]

	c.mu.Lock()
	if c.evictFn != nil {
		evictItems = make([]*ttlEntry[K, V], 0, len(c.items))
		for element := c.order.Back(); element != nil; element = element.Prev() {
			evictItems = append(evictItems, element.Value.(*ttlEntry[K, V]))
		}
	}
	c.items = make(map[K]*ttlEntry[K, V])
	c.order.Init()
	c.exp.Init()
	c.mu.Unlock()

	// ALWAYS track size update in stats
	c.stats.UpdateSize(0)
	// ALSO track in metrics if enabled
	if c.metrics != nil {
		c.metrics.updateSize(0)
	}

	// Call eviction callbacks outside lock to prevent deadlock
	for _, entry := range evictItems {
		c.evictFn(entry.key, entry.value)
	}

	return nil
}

// Size returns the current number of live entries in the cache.
func (c *ttlCache[K, V]) Size() int {
	c.mu.Lock()
	expired := c.expireLocked(c.timer())
	size := len(c.items)
	c.mu.Unlock()

	c.finishExpired(expired, size)
	return size
}

// Capacity returns the maximum number of entries the cache can hold.
func (c *ttlCache[K, V]) Capacity() int {
	return c.capacity
}

// Strategy returns StrategyTTL.
func (c *ttlCache[K, V]) Strategy() Strategy {
	return StrategyTTL
}

// TTL returns the fixed entry lifetime.
func (c *ttlCache[K, V]) TTL() time.Duration {
	return c.ttl
}

// Keys returns all live keys, most recently used first.
func (c *ttlCache[K, V]) Keys() []K {
	c.mu.Lock()
	expired := c.expireLocked(c.timer())
	keys := make([]K, 0, len(c.items))
	for element := c.order.Front(); element != nil; element = element.Next() {
		keys = append(keys, element.Value.(*ttlEntry[K, V]).key)
	}
	size := len(c.items)
	c.mu.Unlock()

	c.finishExpired(expired, size)
	return keys
}

// Stats returns cache statistics.
func (c *ttlCache[K, V]) Stats() *Statistics {
	return c.stats
}

// Close shuts down the cache and stops the background sweep goroutine, if any.
func (c *ttlCache[K, V]) Close() error {
	// Signal shutdown via channel
	select {
	case <-c.shutdown:
		// Already shutting down
	default:
		close(c.shutdown)
	}

	// Wait for cleanup goroutine to finish with timeout
	select {
	case <-c.done:
		return nil
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for cleanup goroutine to finish")
	}
}

// expireLocked removes every entry whose expiration is at or before now and
// returns them. Must be called with mutex held. The expiry list is ordered
// soonest-first, so the sweep stops at the first live entry.
func (c *ttlCache[K, V]) expireLocked(now time.Time) []*ttlEntry[K, V] {
	var expired []*ttlEntry[K, V]
	for element := c.exp.Front(); element != nil; {
		entry := element.Value.(*ttlEntry[K, V])
		if entry.expiresAt.After(now) {
			break
		}
		next := element.Next()
		c.removeEntryLocked(entry)
		expired = append(expired, entry)
		element = next
	}
	return expired
}

// removeEntryLocked removes an entry from the map and both lists.
// Must be called with mutex held. Does NOT call the eviction callback -
// caller is responsible.
func (c *ttlCache[K, V]) removeEntryLocked(entry *ttlEntry[K, V]) {
	delete(c.items, entry.key)
	c.order.Remove(entry.orderElem)
	c.exp.Remove(entry.expElem)
}

// finishExpired records stats for purged entries and runs eviction callbacks
// outside the lock.
func (c *ttlCache[K, V]) finishExpired(expired []*ttlEntry[K, V], size int) {
	if len(expired) == 0 {
		return
	}

	// ALWAYS track expirations in stats
	for range expired {
		c.stats.Expiration()
	}
	c.stats.UpdateSize(int64(size))
	// ALSO track in metrics if enabled
	if c.metrics != nil {
		for range expired {
			c.metrics.recordExpiration()
		}
		c.metrics.updateSize(size)
	}

	if c.evictFn != nil {
		for _, entry := range expired {
			c.evictFn(entry.key, entry.value)
		}
	}
}

// cleanup runs in a background goroutine and periodically sweeps expired
// entries so they do not linger between lookups.
func (c *ttlCache[K, V]) cleanup(ctx context.Context, opts *cacheOptions[K, V]) {
	defer close(c.done)

	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.shutdown:
			return
		case <-ticker.C:
			c.mu.Lock()
			expired := c.expireLocked(c.timer())
			size := len(c.items)
			c.mu.Unlock()

			c.finishExpired(expired, size)

			if opts.logger != nil && len(expired) > 0 {
				opts.logger.Debug("swept expired cache entries",
					"expired", len(expired), "remaining", size)
			}
		}
	}
}
