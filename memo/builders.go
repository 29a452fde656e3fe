package memo

import (
	"context"
	"time"

	"github.com/c360/memocache/cache"
	"github.com/c360/memocache/errors"
	"github.com/c360/memocache/metric"
)

const (
	// DefaultCapacity bounds a memoization cache when WithCapacity is not
	// given.
	DefaultCapacity = 128

	// DefaultTTL is the entry lifetime for TTL when WithTTL is not given.
	DefaultTTL = 600 * time.Second
)

// Option configures a Memo built by one of the policy constructors.
type Option func(*builderConfig)

// builderConfig collects construction parameters before the cache exists.
type builderConfig struct {
	capacity        int
	ttl             time.Duration
	typed           bool
	keyFn           KeyFunc
	choice          cache.Choice[Key]
	timer           func() time.Time
	cleanupInterval time.Duration
	metricsReg      *metric.MetricsRegistry
	metricsPrefix   string
}

// WithCapacity sets the maximum number of cached results. Zero disables
// caching (every call recomputes); cache.Unbounded disables capacity
// eviction.
func WithCapacity(capacity int) Option {
	return func(cfg *builderConfig) {
		cfg.capacity = capacity
	}
}

// WithTypedKeys caches equal argument values of different types separately.
func WithTypedKeys() Option {
	return func(cfg *builderConfig) {
		cfg.typed = true
	}
}

// WithKeyFunc replaces the default key derivation entirely. It overrides
// WithTypedKeys.
func WithKeyFunc(fn KeyFunc) Option {
	return func(cfg *builderConfig) {
		if fn != nil {
			cfg.keyFn = fn
		}
	}
}

// WithTTL sets the entry lifetime for the TTL constructor. Other
// constructors ignore it.
func WithTTL(ttl time.Duration) Option {
	return func(cfg *builderConfig) {
		cfg.ttl = ttl
	}
}

// WithChoice sets the eviction selection for the RR constructor. Other
// constructors ignore it.
func WithChoice(choice cache.Choice[Key]) Option {
	return func(cfg *builderConfig) {
		cfg.choice = choice
	}
}

// WithTimer sets the clock used by the TTL constructor. The function must be
// monotonically non-decreasing.
func WithTimer(timer func() time.Time) Option {
	return func(cfg *builderConfig) {
		cfg.timer = timer
	}
}

// WithCleanupInterval enables a background expiry sweep for the TTL
// constructor. Expiry stays lazy when the interval is zero.
func WithCleanupInterval(interval time.Duration) Option {
	return func(cfg *builderConfig) {
		cfg.cleanupInterval = interval
	}
}

// WithMetrics exports the underlying cache's counters as Prometheus metrics
// under the given name.
func WithMetrics(registry *metric.MetricsRegistry, name string) Option {
	return func(cfg *builderConfig) {
		cfg.metricsReg = registry
		cfg.metricsPrefix = name
	}
}

func applyBuilderOptions(options []Option) *builderConfig {
	cfg := &builderConfig{
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
	}

	for _, opt := range options {
		if opt != nil {
			opt(cfg)
		}
	}

	if cfg.keyFn == nil {
		if cfg.typed {
			cfg.keyFn = TypedKey
		} else {
			cfg.keyFn = HashKey
		}
	}

	return cfg
}

// cacheOptions translates builder configuration into cache options.
func cacheOptions[V any](cfg *builderConfig) []cache.Option[Key, V] {
	var opts []cache.Option[Key, V]

	if cfg.metricsReg != nil && cfg.metricsPrefix != "" {
		opts = append(opts, cache.WithMetrics[Key, V](cfg.metricsReg, cfg.metricsPrefix))
	}
	if cfg.choice != nil {
		opts = append(opts, cache.WithChoice[Key, V](cfg.choice))
	}
	if cfg.timer != nil {
		opts = append(opts, cache.WithTimer[Key, V](cfg.timer))
	}
	if cfg.cleanupInterval > 0 {
		opts = append(opts, cache.WithCleanupInterval[Key, V](cfg.cleanupInterval))
	}

	return opts
}

// New wraps fn with an existing cache. Use this when none of the policy
// constructors fit, e.g. to share one cache between functions or to plug in
// a custom implementation.
func New[V any](fn Func[V], c cache.Cache[Key, V], options ...Option) (*Memo[V], error) {
	if fn == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "memo", "New",
			"function must not be nil")
	}
	if c == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "memo", "New",
			"cache must not be nil")
	}

	cfg := applyBuilderOptions(options)

	params := Parameters{
		Capacity: c.Capacity(),
		Typed:    cfg.typed,
	}
	// Caches built by the cache package report their own construction
	// parameters; a custom implementation that reports neither leaves
	// Strategy empty and TTL zero.
	if s, ok := c.(interface{ Strategy() cache.Strategy }); ok {
		params.Strategy = s.Strategy()
	}
	if l, ok := c.(interface{ TTL() time.Duration }); ok {
		params.TTL = l.TTL()
	}

	return &Memo[V]{
		fn:     fn,
		keyFn:  cfg.keyFn,
		cache:  c,
		params: params,
	}, nil
}

// FIFO memoizes fn with first-in-first-out eviction.
func FIFO[V any](fn Func[V], options ...Option) (*Memo[V], error) {
	return build(fn, cache.StrategyFIFO, options, func(cfg *builderConfig) (cache.Cache[Key, V], error) {
		return cache.NewFIFO[Key, V](cfg.capacity, cacheOptions[V](cfg)...)
	})
}

// LFU memoizes fn with least-frequently-used eviction.
func LFU[V any](fn Func[V], options ...Option) (*Memo[V], error) {
	return build(fn, cache.StrategyLFU, options, func(cfg *builderConfig) (cache.Cache[Key, V], error) {
		return cache.NewLFU[Key, V](cfg.capacity, cacheOptions[V](cfg)...)
	})
}

// LRU memoizes fn with least-recently-used eviction.
func LRU[V any](fn Func[V], options ...Option) (*Memo[V], error) {
	return build(fn, cache.StrategyLRU, options, func(cfg *builderConfig) (cache.Cache[Key, V], error) {
		return cache.NewLRU[Key, V](cfg.capacity, cacheOptions[V](cfg)...)
	})
}

// MRU memoizes fn with most-recently-used eviction.
func MRU[V any](fn Func[V], options ...Option) (*Memo[V], error) {
	return build(fn, cache.StrategyMRU, options, func(cfg *builderConfig) (cache.Cache[Key, V], error) {
		return cache.NewMRU[Key, V](cfg.capacity, cacheOptions[V](cfg)...)
	})
}

// RR memoizes fn with random-replacement eviction. Use WithChoice to make
// victim selection deterministic.
func RR[V any](fn Func[V], options ...Option) (*Memo[V], error) {
	return build(fn, cache.StrategyRR, options, func(cfg *builderConfig) (cache.Cache[Key, V], error) {
		return cache.NewRR[Key, V](cfg.capacity, cacheOptions[V](cfg)...)
	})
}

// TTL memoizes fn with per-entry expiration, defaulting to DefaultTTL. Pass
// WithCapacity(cache.Unbounded) for time-based eviction only. The context
// bounds the optional background sweep.
func TTL[V any](ctx context.Context, fn Func[V], options ...Option) (*Memo[V], error) {
	return build(fn, cache.StrategyTTL, options, func(cfg *builderConfig) (cache.Cache[Key, V], error) {
		return cache.NewTTL[Key, V](ctx, cfg.capacity, cfg.ttl, cacheOptions[V](cfg)...)
	})
}

func build[V any](
	fn Func[V],
	strategy cache.Strategy,
	options []Option,
	newCache func(*builderConfig) (cache.Cache[Key, V], error),
) (*Memo[V], error) {
	if fn == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "memo", "build",
			"function must not be nil")
	}

	cfg := applyBuilderOptions(options)

	c, err := newCache(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "memo", "build", "cache construction")
	}

	params := Parameters{
		Strategy: strategy,
		Capacity: cfg.capacity,
		Typed:    cfg.typed,
	}
	if strategy == cache.StrategyTTL {
		params.TTL = cfg.ttl
	}

	return &Memo[V]{
		fn:     fn,
		keyFn:  cfg.keyFn,
		cache:  c,
		params: params,
	}, nil
}
