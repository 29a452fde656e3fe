package memo

import (
	stderrors "errors"
	"time"

	"github.com/c360/memocache/cache"
	"github.com/c360/memocache/errors"
)

// Func is a computation whose results are worth caching. Arguments must be
// comparable values for the result to be cached; an error return is never
// cached.
type Func[V any] func(args ...any) (V, error)

// Memo wraps a Func with a cache so repeated calls with the same arguments
// return the stored result instead of recomputing it.
//
// Memo never holds a cache lock while the wrapped function runs, so the
// function may call back into the same Memo. The trade-off is weak
// consistency: concurrent callers that miss on the same key each compute the
// result and the last writer wins.
type Memo[V any] struct {
	fn     Func[V]
	keyFn  KeyFunc
	cache  cache.Cache[Key, V]
	params Parameters
}

// Parameters describes how a Memo was constructed. For New with a custom
// cache implementation that does not report its strategy, Strategy is empty
// and TTL is zero.
type Parameters struct {
	Strategy cache.Strategy
	Capacity int
	TTL      time.Duration
	Typed    bool
}

// Info is a snapshot of a Memo's cache effectiveness.
type Info struct {
	Hits     int64
	Misses   int64
	Capacity int
	Size     int
}

// Call invokes the wrapped function, serving the result from cache when the
// same arguments have been seen before. Unhashable arguments fall through to
// an uncached invocation; any other key derivation failure is returned as-is.
func (m *Memo[V]) Call(args ...any) (V, error) {
	key, err := m.keyFn(args...)
	if err != nil {
		if stderrors.Is(err, errors.ErrUnhashableKey) {
			return m.fn(args...)
		}
		var zero V
		return zero, err
	}

	if value, ok := m.cache.Get(key); ok {
		return value, nil
	}

	value, err := m.fn(args...)
	if err != nil {
		var zero V
		return zero, err
	}

	// Concurrent misses on the same key each compute; the last store wins.
	// A zero-capacity cache rejects the store, which makes the Memo a
	// pass-through.
	_, _ = m.cache.Set(key, value)

	return value, nil
}

// Clear removes all cached results.
func (m *Memo[V]) Clear() error {
	return m.cache.Clear()
}

// Info returns hit, miss and size counters for the underlying cache.
func (m *Memo[V]) Info() Info {
	info := Info{
		Capacity: m.cache.Capacity(),
		Size:     m.cache.Size(),
	}

	if stats := m.cache.Stats(); stats != nil {
		info.Hits = stats.Hits()
		info.Misses = stats.Misses()
	}

	return info
}

// Parameters returns the construction parameters of this Memo.
func (m *Memo[V]) Parameters() Parameters {
	return m.params
}

// Cache exposes the underlying cache for direct inspection or invalidation.
func (m *Memo[V]) Cache() cache.Cache[Key, V] {
	return m.cache
}

// Close releases the underlying cache's resources.
func (m *Memo[V]) Close() error {
	return m.cache.Close()
}
