// Package cache provides generic, thread-safe bounded caches with multiple
// eviction policies, built-in statistics tracking, and optional Prometheus
// metrics integration.
//
// # Overview
//
// The cache package offers seven cache implementations:
//   - Simple: no eviction (manual cleanup only)
//   - FIFO: First In First Out eviction
//   - LFU: Least Frequently Used eviction
//   - LRU: Least Recently Used eviction
//   - MRU: Most Recently Used eviction
//   - RR: Random Replacement eviction
//   - TTL: Time-To-Live expiration with LRU under capacity pressure
//
// All implementations are generic over key and value types, thread-safe, and
// provide observability through always-on statistics and optional metrics.
//
// # Quick Start
//
// LRU cache with a capacity limit:
//
//	c, err := cache.NewLRU[string, *User](1000)
//	if err != nil {
//		log.Fatal(err)
//	}
//	c.Set("user:42", user)
//	value, ok := c.Get("user:42")
//
// TTL cache with expiration:
//
//	c, err := cache.NewTTL[string, *Session](ctx, 5000, 30*time.Minute)
//
// Random replacement with a deterministic selection for tests:
//
//	c, err := cache.NewRR[int, string](100,
//		cache.WithChoice[int, string](func(keys []int) int { return keys[0] }),
//	)
//
// # Eviction Architecture
//
// A single bounded container owns the entry map, capacity accounting,
// statistics and eviction triggering. Each policy contributes only its
// ordering state through four hooks: inserted, accessed, removed and victim.
// Inserting into a full cache evicts exactly one victim before the new entry
// is stored, so Size() never exceeds Capacity().
//
// Policy behavior on access differs deliberately:
//   - FIFO preserves arrival order; hits and overwrites never reorder
//   - LRU and MRU move the key to the most-recent end on every hit and set
//   - LFU increments the key's access count on every hit and overwrite,
//     with no decay; ties evict the oldest insertion first
//   - RR ignores access order entirely
//
// The TTL cache stands alone: every operation first purges entries whose
// expiration has passed (lazy expiry, driven by an injectable clock), and
// capacity pressure among live entries falls back to LRU. A background sweep
// can be enabled with WithCleanupInterval for workloads with long idle gaps.
//
// # Degenerate capacities
//
// A zero-capacity cache stores nothing: every Set is a no-op reporting
// ErrCapacityExceeded and every Get misses, which makes a memoized function
// behave as a pass-through. The Unbounded sentinel disables capacity eviction
// entirely (useful for TTL-only operation).
//
// # Observability
//
// Statistics are always collected with atomic counters and are available via
// Stats(); they require no configuration and no external infrastructure.
// The same counts can additionally be exported as Prometheus metrics by
// passing WithMetrics(registry, name) at construction. Both sinks are updated
// independently so statistics keep working in tests and minimal deployments.
//
// # Configuration
//
// Caches can also be built from a serializable Config:
//
//	cfg := cache.Config{Enabled: true, Strategy: cache.StrategyLFU, MaxSize: 256}
//	c, err := cache.NewFromConfig[string, int](ctx, cfg)
//
// Config.UnmarshalJSON accepts durations as strings ("5m") or nanosecond
// integers. A disabled Config yields a noop cache that always misses.
package cache
