// Package memocache provides bounded, in-process memoization for Go.
//
// MemoCache wraps an arbitrary function so that repeated calls with equal
// arguments reuse a previously computed result. Results are held in a
// bounded, thread-safe container governed by a pluggable eviction policy.
// Everything is in-memory and process-local: there is no persistence, no
// cross-process sharing, and no external cache infrastructure.
//
// # Architecture
//
// The module is organized as small, focused packages:
//
//   - cache: the generic bounded container and its eviction policies.
//     A single container owns the entry map, capacity accounting, statistics
//     and eviction triggering; each policy contributes only its ordering
//     state through insert/access/remove/victim hooks. Six policies are
//     provided: FIFO, LFU, LRU, MRU, RR (random replacement) and TTL
//     (time-to-live with lazy expiry), plus an unbounded "simple" cache and
//     a noop cache for disabled configurations.
//
//   - memo: key derivation and the memoizing wrapper. Arguments are turned
//     into a hashable key by value (HashKey) or by value and dynamic type
//     (TypedKey); calls whose arguments cannot be hashed are computed
//     without caching. The wrapper consults the cache under its own lock
//     and always invokes the wrapped function outside that lock.
//
//   - errors: classified error handling (transient / invalid / fatal) shared
//     by all packages.
//
//   - metric: Prometheus registry management and an HTTP /metrics server for
//     optional observability export.
//
// # Concurrency model
//
// All caches are safe for concurrent use. The memoizing wrapper never holds
// its lock while the wrapped function runs, so recursive memoized calls are
// safe and a slow computation never blocks other callers' lookups. The
// trade-off is weak consistency: two goroutines that both miss on the same
// key both invoke the function, and the cache afterwards holds whichever
// result was stored last. Callers needing at-most-once computation must
// layer their own coordination on top.
//
// # Observability
//
// Statistics (hits, misses, sets, deletes, evictions, expirations, size) are
// always collected. They can additionally be exported as Prometheus metrics
// by attaching a metric.MetricsRegistry to any cache.
package memocache
