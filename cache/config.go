package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360/memocache/errors"
)

// Strategy defines the eviction strategy for the cache.
type Strategy string

const (
	// StrategySimple uses no eviction policy.
	StrategySimple Strategy = "simple"

	// StrategyFIFO evicts the oldest-inserted entry.
	StrategyFIFO Strategy = "fifo"

	// StrategyLFU evicts the least frequently used entry.
	StrategyLFU Strategy = "lfu"

	// StrategyLRU evicts the least recently used entry.
	StrategyLRU Strategy = "lru"

	// StrategyMRU evicts the most recently used entry.
	StrategyMRU Strategy = "mru"

	// StrategyRR evicts an entry chosen by a selection function,
	// uniformly at random by default.
	StrategyRR Strategy = "rr"

	// StrategyTTL expires entries a fixed duration after they are stored,
	// with LRU eviction under capacity pressure.
	StrategyTTL Strategy = "ttl"
)

// Config contains configuration for cache creation.
type Config struct {
	// Enabled determines if caching is enabled.
	Enabled bool `json:"enabled" schema:"editable,type:bool,description:Enable caching"`

	// Strategy determines the eviction strategy.
	Strategy Strategy `json:"strategy" schema:"editable,type:enum,description:Cache eviction strategy,enum:simple|fifo|lfu|lru|mru|rr|ttl"`

	// MaxSize is the maximum number of entries. Zero means the cache stores
	// nothing (every lookup misses); Unbounded disables capacity eviction.
	MaxSize int `json:"max_size" schema:"editable,type:int,description:Maximum number of cache entries,min:0"`

	// TTL is the time-to-live for entries (for the TTL strategy).
	TTL time.Duration `json:"ttl" schema:"editable,type:string,description:Time-to-live for entries (for TTL)"`

	// CleanupInterval enables a background expiry sweep for the TTL strategy
	// when positive; zero keeps expiry purely lazy.
	CleanupInterval time.Duration `json:"cleanup_interval" schema:"editable,type:string,description:How often to sweep expired entries (for TTL; 0 disables)"`
}

// DefaultConfig returns a default cache configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Strategy: StrategyLRU,
		MaxSize:  128,
		TTL:      10 * time.Minute,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil // No validation needed if disabled
	}

	switch c.Strategy {
	case StrategySimple:
		// No additional validation needed
	case StrategyFIFO, StrategyLFU, StrategyLRU, StrategyMRU, StrategyRR:
		if c.MaxSize < 0 && c.MaxSize != Unbounded {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
				fmt.Sprintf("max_size must be non-negative or Unbounded for %s cache, got %d", c.Strategy, c.MaxSize))
		}
	case StrategyTTL:
		if c.MaxSize < 0 && c.MaxSize != Unbounded {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
				fmt.Sprintf("max_size must be non-negative or Unbounded for TTL cache, got %d", c.MaxSize))
		}
		if c.TTL < 0 {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
				fmt.Sprintf("ttl must be non-negative for TTL cache, got %v", c.TTL))
		}
		if c.CleanupInterval < 0 {
			return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
				fmt.Sprintf("cleanup_interval must be non-negative for TTL cache, got %v", c.CleanupInterval))
		}
	default:
		return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
			fmt.Sprintf("unknown cache strategy: %s", c.Strategy))
	}

	return nil
}

// NewFromConfig creates a cache based on the provided configuration.
// Returns a disabled cache (NewNoop) if config.Enabled is false.
// Additional functional options can be passed to configure metrics,
// callbacks, timers, etc.
func NewFromConfig[K comparable, V any](
	ctx context.Context, config Config, options ...Option[K, V],
) (Cache[K, V], error) {
	if err := config.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "cache", "NewFromConfig", "config validation")
	}

	if !config.Enabled {
		return NewNoop[K, V](), nil
	}

	if config.CleanupInterval > 0 {
		options = append(options, WithCleanupInterval[K, V](config.CleanupInterval))
	}

	switch config.Strategy {
	case StrategySimple:
		return NewSimple[K, V](options...)

	case StrategyFIFO:
		return NewFIFO[K, V](config.MaxSize, options...)

	case StrategyLFU:
		return NewLFU[K, V](config.MaxSize, options...)

	case StrategyLRU:
		return NewLRU[K, V](config.MaxSize, options...)

	case StrategyMRU:
		return NewMRU[K, V](config.MaxSize, options...)

	case StrategyRR:
		return NewRR[K, V](config.MaxSize, options...)

	case StrategyTTL:
		return NewTTL[K, V](ctx, config.MaxSize, config.TTL, options...)

	default:
		msg := fmt.Sprintf("unsupported cache strategy: %s", config.Strategy)
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "cache",
			"NewFromConfig", msg)
	}
}

// NewFIFO creates a cache that evicts the oldest-inserted entry when full.
// Hits never change an entry's eviction order.
func NewFIFO[K comparable, V any](capacity int, options ...Option[K, V]) (Cache[K, V], error) {
	return newBoundedCache(StrategyFIFO, capacity, newFIFOPolicy[K](), applyOptions(options...))
}

// NewLFU creates a cache that evicts the least frequently used entry when
// full, oldest insertion first among ties.
func NewLFU[K comparable, V any](capacity int, options ...Option[K, V]) (Cache[K, V], error) {
	return newBoundedCache(StrategyLFU, capacity, newLFUPolicy[K](), applyOptions(options...))
}

// NewLRU creates a cache that evicts the least recently used entry when full.
func NewLRU[K comparable, V any](capacity int, options ...Option[K, V]) (Cache[K, V], error) {
	return newBoundedCache(StrategyLRU, capacity, newLRUPolicy[K](), applyOptions(options...))
}

// NewMRU creates a cache that evicts the most recently used entry when full.
func NewMRU[K comparable, V any](capacity int, options ...Option[K, V]) (Cache[K, V], error) {
	return newBoundedCache(StrategyMRU, capacity, newMRUPolicy[K](), applyOptions(options...))
}

// NewRR creates a cache that evicts an entry chosen by a selection function
// when full. Use WithChoice to inject a deterministic selection; the default
// picks uniformly at random.
func NewRR[K comparable, V any](capacity int, options ...Option[K, V]) (Cache[K, V], error) {
	opts := applyOptions(options...)
	return newBoundedCache(StrategyRR, capacity, newRRPolicy(opts.choice), opts)
}

// NewTTL creates a cache whose entries expire ttl after they are stored.
// Use WithTimer to inject a clock and WithCleanupInterval to enable a
// background sweep; expiry is otherwise lazy. Pass Unbounded as capacity for
// time-based eviction only.
func NewTTL[K comparable, V any](
	ctx context.Context, capacity int, ttl time.Duration, options ...Option[K, V],
) (Cache[K, V], error) {
	return newTTLCache[K, V](ctx, capacity, ttl, applyOptions(options...))
}

// NewSimple creates a cache with no eviction policy.
func NewSimple[K comparable, V any](options ...Option[K, V]) (Cache[K, V], error) {
	return newSimpleCache(applyOptions[K, V](options...))
}

// NewNoop creates a cache that does nothing (always returns cache misses).
// This is useful when caching is disabled via configuration.
func NewNoop[K comparable, V any]() Cache[K, V] {
	return &noopCache[K, V]{}
}

// noopCache is a cache implementation that does nothing.
type noopCache[K comparable, V any] struct{}

func (c *noopCache[K, V]) Get(_ K) (V, bool) {
	var zero V
	return zero, false
}

func (c *noopCache[K, V]) Set(_ K, _ V) (bool, error) {
	return false, nil
}

func (c *noopCache[K, V]) Delete(_ K) (bool, error) {
	return false, nil
}

func (c *noopCache[K, V]) Clear() error {
	return nil
}

func (c *noopCache[K, V]) Size() int {
	return 0
}

func (c *noopCache[K, V]) Capacity() int {
	return 0
}

func (c *noopCache[K, V]) Keys() []K {
	return nil
}

func (c *noopCache[K, V]) Stats() *Statistics {
	return nil
}

func (c *noopCache[K, V]) Close() error {
	return nil
}

// UnmarshalJSON implements custom JSON unmarshaling for Config to support
// duration strings (e.g., "1h", "5m", "30s") in addition to nanosecond
// integers.
func (c *Config) UnmarshalJSON(data []byte) error {
	// Use an alias to avoid infinite recursion
	type Alias Config

	// Temporary struct that accepts durations as either int64 or string
	aux := &struct {
		TTL             json.RawMessage `json:"ttl,omitempty"`
		CleanupInterval json.RawMessage `json:"cleanup_interval,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	// Parse TTL (supports both int64 nanoseconds and duration strings)
	if len(aux.TTL) > 0 {
		ttl, err := parseDurationField(aux.TTL, "ttl")
		if err != nil {
			return err
		}
		c.TTL = ttl
	}

	// Parse CleanupInterval
	if len(aux.CleanupInterval) > 0 {
		interval, err := parseDurationField(aux.CleanupInterval, "cleanup_interval")
		if err != nil {
			return err
		}
		c.CleanupInterval = interval
	}

	return nil
}

// parseDurationField parses a JSON duration field that can be either:
// - An integer (nanoseconds) for backward compatibility
// - A string (duration like "1h", "5m", "30s")
func parseDurationField(data json.RawMessage, fieldName string) (time.Duration, error) {
	// Try parsing as string first (most common case)
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		duration, err := time.ParseDuration(str)
		if err != nil {
			return 0, fmt.Errorf("invalid duration string for %s: %w", fieldName, err)
		}
		return duration, nil
	}

	// Fall back to integer (nanoseconds) for backward compatibility
	var nsec int64
	if err := json.Unmarshal(data, &nsec); err != nil {
		return 0, fmt.Errorf("field %s must be either a duration string (e.g., '1h') or integer nanoseconds", fieldName)
	}
	return time.Duration(nsec), nil
}
