package cache

// policy tracks the eviction ordering for a bounded cache. The container owns
// the entries, capacity accounting and eviction triggering; a policy owns only
// its ordering state. All methods are called with the container's lock held.
//
// Invariant: the set of keys a policy tracks always equals the container's
// entry set.
type policy[K comparable] interface {
	// inserted records a brand-new key.
	inserted(key K)

	// accessed records a hit on an existing key, or an overwrite of its value.
	accessed(key K)

	// removed forgets a key after the container deleted its entry.
	removed(key K)

	// victim selects the key to evict from a full cache. It is only called
	// when at least one key is tracked.
	victim() (K, error)

	// reset forgets all keys.
	reset()
}
