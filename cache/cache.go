package cache

// Unbounded disables capacity-based eviction when used as a cache capacity.
// Entries are then removed only by explicit deletes, clears, or expiry.
const Unbounded = -1

// Cache represents a generic cache interface that all cache implementations
// must satisfy. The cache is parameterized by key type K and value type V.
type Cache[K comparable, V any] interface {
	// Get retrieves a value by key. Returns the value and true if found,
	// zero value and false otherwise.
	Get(key K) (V, bool)

	// Set stores a value with the given key. Returns true if a new entry was
	// created, false if an existing entry was updated.
	// Returns an error if the entry cannot be stored (e.g., zero capacity).
	Set(key K, value V) (bool, error)

	// Delete removes an entry by key. Returns true if the key existed and was
	// deleted. Returns an error if the operation fails.
	Delete(key K) (bool, error)

	// Clear removes all entries from the cache.
	// Returns an error if the operation fails.
	Clear() error

	// Size returns the current number of entries in the cache.
	Size() int

	// Capacity returns the maximum number of entries the cache can hold,
	// or Unbounded if capacity-based eviction is disabled.
	Capacity() int

	// Keys returns a slice of all keys currently in the cache.
	Keys() []K

	// Stats returns cache statistics, or nil for caches that do not track any.
	Stats() *Statistics

	// Close shuts down the cache and releases any resources
	// (e.g., background goroutines).
	Close() error
}

// EvictCallback is called when an entry is evicted from the cache.
// It receives the key and value of the evicted entry.
type EvictCallback[K comparable, V any] func(key K, value V)
