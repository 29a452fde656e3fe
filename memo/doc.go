// Package memo provides thread-safe function memoization backed by the
// bounded caches in the cache package.
//
// # Overview
//
// A Memo wraps a function so repeated calls with the same arguments return
// the cached result. One constructor exists per eviction policy:
//
//	expensive := func(args ...any) (int, error) {
//		n := args[0].(int)
//		return fib(n), nil
//	}
//	m, err := memo.LRU(expensive, memo.WithCapacity(256))
//	if err != nil {
//		log.Fatal(err)
//	}
//	v, err := m.Call(40)
//
// # Keys
//
// Cache keys are derived from the argument list. By default equal values of
// different numeric types share an entry; WithTypedKeys separates them, and
// WithKeyFunc replaces derivation entirely. Arguments that are not
// comparable (slices, maps, functions) cannot form a key; such calls are
// computed without caching rather than failing.
//
// # Concurrency
//
// Memo is safe for concurrent use and never holds a lock while the wrapped
// function runs, so the function may recurse into its own Memo. There is no
// duplicate suppression: concurrent callers that miss on the same key each
// invoke the function and the last result stored wins.
//
// # Errors
//
// An error returned by the wrapped function is propagated to the caller and
// never cached; the next call with the same arguments recomputes.
//
// # Observability
//
// Info reports hits, misses, capacity and current size. WithMetrics exports
// the underlying cache's counters through a metric.MetricsRegistry.
package memo
