package cache

import (
	"log/slog"
	"time"

	"github.com/c360/memocache/metric"
)

// Option configures cache behavior using the functional options pattern.
type Option[K comparable, V any] func(*cacheOptions[K, V])

// cacheOptions holds internal configuration for cache instances.
// Stats are ALWAYS collected - they are not optional.
// Metrics are optional and exposed via WithMetrics().
type cacheOptions[K comparable, V any] struct {
	// metricsReg is optional - if provided, cache stats are also exposed as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsPrefix is used as the cache label for Prometheus metrics
	metricsPrefix string

	// evictCallback is called when items are evicted from the cache
	evictCallback EvictCallback[K, V]

	// choice selects the eviction victim for the RR strategy
	choice Choice[K]

	// timer is the clock used by the TTL strategy; it must be monotonically
	// non-decreasing
	timer func() time.Time

	// cleanupInterval enables the optional background expiry sweep for the
	// TTL strategy; zero leaves expiry purely lazy
	cleanupInterval time.Duration

	// logger records background sweep activity if set
	logger *slog.Logger
}

// WithMetrics enables Prometheus metrics export for cache statistics.
// If registry is nil or prefix is empty, this option is ignored.
func WithMetrics[K comparable, V any](registry *metric.MetricsRegistry, prefix string) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		if registry != nil && prefix != "" {
			opts.metricsReg = registry
			opts.metricsPrefix = prefix
		}
	}
}

// WithEvictionCallback sets a callback function that is called when items are
// evicted or expired. The callback receives the key and value of the removed
// entry.
func WithEvictionCallback[K comparable, V any](callback EvictCallback[K, V]) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		opts.evictCallback = callback
	}
}

// WithChoice sets the selection function used by the RR strategy to pick an
// eviction victim. A nil choice keeps the default uniform random selection.
func WithChoice[K comparable, V any](choice Choice[K]) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		opts.choice = choice
	}
}

// WithTimer sets the clock used by the TTL strategy. The function must be
// monotonically non-decreasing. If timer is nil, time.Now is used.
func WithTimer[K comparable, V any](timer func() time.Time) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		if timer != nil {
			opts.timer = timer
		}
	}
}

// WithCleanupInterval enables a background goroutine that sweeps expired
// entries from a TTL cache at the given interval. Expiry stays lazy when the
// interval is zero or negative.
func WithCleanupInterval[K comparable, V any](interval time.Duration) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		if interval > 0 {
			opts.cleanupInterval = interval
		}
	}
}

// WithLogger sets the logger used to record background sweep activity.
func WithLogger[K comparable, V any](logger *slog.Logger) Option[K, V] {
	return func(opts *cacheOptions[K, V]) {
		opts.logger = logger
	}
}

// applyOptions applies functional options to create final cache configuration.
// This is an internal helper used by cache constructors.
func applyOptions[K comparable, V any](options ...Option[K, V]) *cacheOptions[K, V] {
	opts := &cacheOptions[K, V]{
		timer: time.Now,
	}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
