package cache

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/c360/memocache/errors"
)

// fakeClock is a manually advanced clock for deterministic TTL tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// testBasicOperations tests basic cache operations.
func testBasicOperations(t *testing.T, cache Cache[string, string]) {
	// Test Get on empty cache
	if value, exists := cache.Get("key1"); exists {
		t.Errorf("Expected cache miss, got value: %s", value)
	}

	// Test Set and Get
	isNew, err := cache.Set("key1", "value1")
	if err != nil {
		t.Fatalf("Unexpected error setting key: %v", err)
	}
	if !isNew {
		t.Error("Expected new entry creation")
	}

	if value, exists := cache.Get("key1"); !exists || value != "value1" {
		t.Errorf("Expected 'value1', got value: %s, exists: %t", value, exists)
	}

	// Test Update
	isNew, err = cache.Set("key1", "value1_updated")
	if err != nil {
		t.Fatalf("Unexpected error updating key: %v", err)
	}
	if isNew {
		t.Error("Expected existing entry update")
	}

	if value, exists := cache.Get("key1"); !exists || value != "value1_updated" {
		t.Errorf("Expected 'value1_updated', got value: %s, exists: %t", value, exists)
	}

	// Test Delete
	deleted, err := cache.Delete("key1")
	if err != nil {
		t.Fatalf("Unexpected error deleting key: %v", err)
	}
	if !deleted {
		t.Error("Expected successful deletion")
	}

	deleted, err = cache.Delete("key1")
	if err != nil {
		t.Fatalf("Unexpected error deleting non-existent key: %v", err)
	}
	if deleted {
		t.Error("Expected deletion failure for non-existent key")
	}

	if value, exists := cache.Get("key1"); exists {
		t.Errorf("Expected cache miss after deletion, got value: %s", value)
	}
}

// testSizeOperations tests cache size tracking.
func testSizeOperations(t *testing.T, cache Cache[string, string]) {
	if cache.Size() != 0 {
		t.Errorf("Expected size 0, got %d", cache.Size())
	}

	_, _ = cache.Set("key1", "value1")
	_, _ = cache.Set("key2", "value2")

	if cache.Size() != 2 {
		t.Errorf("Expected size 2, got %d", cache.Size())
	}

	_, _ = cache.Delete("key1")

	if cache.Size() != 1 {
		t.Errorf("Expected size 1, got %d", cache.Size())
	}
}

// testKeysOperation tests cache key listing.
func testKeysOperation(t *testing.T, cache Cache[string, string]) {
	if len(cache.Keys()) != 0 {
		t.Errorf("Expected no keys, got %v", cache.Keys())
	}

	_, _ = cache.Set("key1", "value1")
	_, _ = cache.Set("key2", "value2")

	keys := cache.Keys()
	if len(keys) != 2 {
		t.Errorf("Expected 2 keys, got %d", len(keys))
	}

	keyMap := make(map[string]bool)
	for _, key := range keys {
		keyMap[key] = true
	}

	if !keyMap["key1"] || !keyMap["key2"] {
		t.Errorf("Expected keys 'key1' and 'key2', got %v", keys)
	}
}

// testClearOperation tests cache clearing.
func testClearOperation(t *testing.T, cache Cache[string, string]) {
	_, _ = cache.Set("key1", "value1")
	_, _ = cache.Set("key2", "value2")

	_ = cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", cache.Size())
	}

	if value, exists := cache.Get("key1"); exists {
		t.Errorf("Expected cache miss after clear, got value: %s", value)
	}
}

// testCapacityInvariant verifies size never exceeds capacity under churn.
func testCapacityInvariant(t *testing.T, cache Cache[string, string]) {
	capacity := cache.Capacity()
	if capacity == Unbounded {
		t.Skip("unbounded cache has no capacity invariant")
	}

	for i := 0; i < capacity*4; i++ {
		_, err := cache.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
		if err != nil {
			t.Fatalf("Unexpected error at insert %d: %v", i, err)
		}
		if cache.Size() > capacity {
			t.Fatalf("Size %d exceeds capacity %d", cache.Size(), capacity)
		}
	}

	if cache.Size() != capacity {
		t.Errorf("Expected full cache of size %d, got %d", capacity, cache.Size())
	}
}

// testRepeatedHitIdempotence verifies that repeated hits on one key never
// change the cache size or evict anything, whatever the policy.
func testRepeatedHitIdempotence(t *testing.T, cache Cache[string, string]) {
	_, _ = cache.Set("key1", "value1")
	_, _ = cache.Set("key2", "value2")
	_, _ = cache.Set("key3", "value3")

	sizeBefore := cache.Size()
	for i := 0; i < 25; i++ {
		if value, exists := cache.Get("key2"); !exists || value != "value2" {
			t.Fatalf("Expected hit on key2, got value: %s, exists: %t", value, exists)
		}
	}

	if cache.Size() != sizeBefore {
		t.Errorf("Expected size %d after repeated hits, got %d", sizeBefore, cache.Size())
	}
	if cache.Stats().Evictions() != 0 {
		t.Errorf("Expected no evictions from hits, got %d", cache.Stats().Evictions())
	}
	for _, key := range []string{"key1", "key2", "key3"} {
		if _, exists := cache.Get(key); !exists {
			t.Errorf("Expected %s to survive repeated hits", key)
		}
	}
}

// testSameKeyContention hammers a single key with a reading and a writing
// goroutine. Torn reads surface under the race detector.
func testSameKeyContention(t *testing.T, cache Cache[string, string]) {
	const iterations = 500

	var wg sync.WaitGroup
	start := make(chan struct{})

	wg.Add(2)
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < iterations; i++ {
			_, _ = cache.Set("shared", fmt.Sprintf("value%d", i))
		}
	}()
	go func() {
		defer wg.Done()
		<-start
		for i := 0; i < iterations; i++ {
			if value, exists := cache.Get("shared"); exists && value == "" {
				t.Error("Got empty value for a present key")
			}
		}
	}()

	close(start)
	wg.Wait()
}

// testSuite runs common cache tests across all implementations.
func testSuite(t *testing.T, createCache func() Cache[string, string]) {
	t.Run("BasicOperations", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testBasicOperations(t, cache)
	})

	t.Run("Size", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testSizeOperations(t, cache)
	})

	t.Run("Keys", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testKeysOperation(t, cache)
	})

	t.Run("Clear", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testClearOperation(t, cache)
	})

	t.Run("CapacityInvariant", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testCapacityInvariant(t, cache)
	})

	t.Run("RepeatedHitIdempotence", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testRepeatedHitIdempotence(t, cache)
	})

	t.Run("SameKeyContention", func(t *testing.T) {
		cache := createCache()
		defer cache.Close()
		testSameKeyContention(t, cache)
	})
}

// TestSimpleCache tests the simple cache implementation.
func TestSimpleCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewSimple[string, string]()
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("NoEviction", func(t *testing.T) {
		cache, err := NewSimple[string, string]()
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		// Add many items to ensure no eviction
		for i := 0; i < 1000; i++ {
			_, _ = cache.Set(fmt.Sprintf("key%d", i), fmt.Sprintf("value%d", i))
		}

		if cache.Size() != 1000 {
			t.Errorf("Expected size 1000, got %d", cache.Size())
		}

		for i := 0; i < 1000; i++ {
			if value, exists := cache.Get(fmt.Sprintf("key%d", i)); !exists || value != fmt.Sprintf("value%d", i) {
				t.Errorf("Item %d missing or incorrect", i)
			}
		}
	})
}

// TestFIFOCache tests the FIFO cache implementation.
func TestFIFOCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewFIFO[string, string](10)
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("EvictsOldestInsertion", func(t *testing.T) {
		cache, err := NewFIFO[string, string](3)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")
		_, _ = cache.Set("key2", "value2")
		_, _ = cache.Set("key3", "value3")

		// Hits must not save key1 from eviction
		cache.Get("key1")
		cache.Get("key1")

		_, _ = cache.Set("key4", "value4")

		if _, exists := cache.Get("key1"); exists {
			t.Error("Expected key1 to be evicted despite recent hits")
		}
		for _, key := range []string{"key2", "key3", "key4"} {
			if _, exists := cache.Get(key); !exists {
				t.Errorf("Expected %s to exist", key)
			}
		}
	})

	t.Run("OverwriteKeepsInsertionOrder", func(t *testing.T) {
		cache, err := NewFIFO[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")
		_, _ = cache.Set("key2", "value2")
		_, _ = cache.Set("key1", "updated") // overwrite, key1 stays oldest
		_, _ = cache.Set("key3", "value3")  // evicts key1

		if _, exists := cache.Get("key1"); exists {
			t.Error("Expected key1 to be evicted after overwrite")
		}
		if value, exists := cache.Get("key2"); !exists || value != "value2" {
			t.Error("Expected key2 to survive")
		}
	})
}

// TestLRUCache tests the LRU cache implementation.
func TestLRUCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewLRU[string, string](10)
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("EvictsLeastRecentlyUsed", func(t *testing.T) {
		cache, err := NewLRU[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		cache.Get("a")             // a becomes most recent
		_, _ = cache.Set("c", "3") // evicts b

		if _, exists := cache.Get("b"); exists {
			t.Error("Expected b to be evicted")
		}
		if _, exists := cache.Get("a"); !exists {
			t.Error("Expected a to exist")
		}
		if _, exists := cache.Get("c"); !exists {
			t.Error("Expected c to exist")
		}
	})

	t.Run("RepeatedHitsAreIdempotent", func(t *testing.T) {
		cache, err := NewLRU[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")

		// Hitting a once or many times must produce the same eviction
		cache.Get("a")
		cache.Get("a")
		cache.Get("a")

		_, _ = cache.Set("c", "3")

		if _, exists := cache.Get("b"); exists {
			t.Error("Expected b to be evicted")
		}
	})

	t.Run("ZeroCapacityStoresNothing", func(t *testing.T) {
		cache, err := NewLRU[string, string](0)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		isNew, err := cache.Set("a", "1")
		if isNew {
			t.Error("Expected no entry creation in zero-capacity cache")
		}
		if !stderrors.Is(err, errors.ErrCapacityExceeded) {
			t.Errorf("Expected ErrCapacityExceeded, got %v", err)
		}
		if _, exists := cache.Get("a"); exists {
			t.Error("Expected miss from zero-capacity cache")
		}
		if cache.Size() != 0 {
			t.Errorf("Expected size 0, got %d", cache.Size())
		}
	})

	t.Run("UnboundedNeverEvicts", func(t *testing.T) {
		cache, err := NewLRU[string, string](Unbounded)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		for i := 0; i < 1000; i++ {
			_, _ = cache.Set(fmt.Sprintf("key%d", i), "v")
		}

		if cache.Size() != 1000 {
			t.Errorf("Expected size 1000, got %d", cache.Size())
		}
		if cache.Stats().Evictions() != 0 {
			t.Errorf("Expected no evictions, got %d", cache.Stats().Evictions())
		}
	})
}

// TestMRUCache tests the MRU cache implementation.
func TestMRUCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewMRU[string, string](10)
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("EvictsMostRecentlyUsed", func(t *testing.T) {
		cache, err := NewMRU[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		cache.Get("a")             // a becomes most recent
		_, _ = cache.Set("c", "3") // evicts a

		if _, exists := cache.Get("a"); exists {
			t.Error("Expected a to be evicted")
		}
		if _, exists := cache.Get("b"); !exists {
			t.Error("Expected b to exist")
		}
		if _, exists := cache.Get("c"); !exists {
			t.Error("Expected c to exist")
		}
	})
}

// TestLFUCache tests the LFU cache implementation.
func TestLFUCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewLFU[string, string](10)
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("EvictsLeastFrequentlyUsed", func(t *testing.T) {
		cache, err := NewLFU[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		cache.Get("a")             // a count 1, b count 0
		_, _ = cache.Set("c", "3") // evicts b

		if _, exists := cache.Get("b"); exists {
			t.Error("Expected b to be evicted")
		}
		if _, exists := cache.Get("a"); !exists {
			t.Error("Expected a to exist")
		}
	})

	t.Run("TieBreaksByOldestInsertion", func(t *testing.T) {
		cache, err := NewLFU[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		// Both counts are zero; a was inserted first
		_, _ = cache.Set("c", "3")

		if _, exists := cache.Get("a"); exists {
			t.Error("Expected a to be evicted on frequency tie")
		}
		if _, exists := cache.Get("b"); !exists {
			t.Error("Expected b to exist")
		}
	})

	t.Run("OverwriteCountsAsUse", func(t *testing.T) {
		cache, err := NewLFU[string, string](2)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		_, _ = cache.Set("a", "1_updated") // a count 1
		_, _ = cache.Set("c", "3")         // evicts b

		if _, exists := cache.Get("b"); exists {
			t.Error("Expected b to be evicted")
		}
		if value, exists := cache.Get("a"); !exists || value != "1_updated" {
			t.Error("Expected updated a to survive")
		}
	})
}

// TestRRCache tests the random replacement cache implementation.
func TestRRCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewRR[string, string](10)
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("DeterministicChoice", func(t *testing.T) {
		// Always evict the lexicographically smallest key
		cache, err := NewRR[string, string](2, WithChoice[string, string](func(keys []string) string {
			min := keys[0]
			for _, k := range keys[1:] {
				if k < min {
					min = k
				}
			}
			return min
		}))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("b", "2")
		_, _ = cache.Set("c", "3")
		_, _ = cache.Set("a", "1") // evicts b

		if _, exists := cache.Get("b"); exists {
			t.Error("Expected b to be evicted")
		}
		if _, exists := cache.Get("a"); !exists {
			t.Error("Expected a to exist")
		}
		if _, exists := cache.Get("c"); !exists {
			t.Error("Expected c to exist")
		}
	})

	t.Run("InvalidSelectionIsRejected", func(t *testing.T) {
		cache, err := NewRR[string, string](1, WithChoice[string, string](func(_ []string) string {
			return "not-in-cache"
		}))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, err = cache.Set("b", "2")
		if !stderrors.Is(err, errors.ErrInvalidSelection) {
			t.Errorf("Expected ErrInvalidSelection, got %v", err)
		}

		// The cache keeps its previous contents when selection fails
		if value, exists := cache.Get("a"); !exists || value != "1" {
			t.Error("Expected a to survive failed eviction")
		}
	})

	t.Run("DefaultChoiceEvictsSomeKey", func(t *testing.T) {
		cache, err := NewRR[string, string](3)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		for i := 0; i < 10; i++ {
			_, _ = cache.Set(fmt.Sprintf("key%d", i), "v")
			if cache.Size() > 3 {
				t.Fatalf("Size %d exceeds capacity 3", cache.Size())
			}
		}
	})
}

// TestTTLCache tests the TTL cache implementation.
func TestTTLCache(t *testing.T) {
	testSuite(t, func() Cache[string, string] {
		cache, err := NewTTL[string, string](context.Background(), 100, time.Minute)
		if err != nil {
			panic(err)
		}
		return cache
	})

	t.Run("LazyExpiration", func(t *testing.T) {
		clock := newFakeClock()
		cache, err := NewTTL[string, string](context.Background(), 100, 5*time.Second,
			WithTimer[string, string](clock.Now))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")

		clock.Advance(4 * time.Second)
		if value, exists := cache.Get("key1"); !exists || value != "value1" {
			t.Error("Expected key1 to be live at 4s")
		}

		clock.Advance(2 * time.Second)
		if _, exists := cache.Get("key1"); exists {
			t.Error("Expected key1 to be expired at 6s")
		}

		if cache.Stats().Expirations() != 1 {
			t.Errorf("Expected 1 expiration, got %d", cache.Stats().Expirations())
		}
		if cache.Stats().Evictions() != 0 {
			t.Errorf("Expected 0 evictions, got %d", cache.Stats().Evictions())
		}
	})

	t.Run("OverwriteRefreshesExpiry", func(t *testing.T) {
		clock := newFakeClock()
		cache, err := NewTTL[string, string](context.Background(), 100, 5*time.Second,
			WithTimer[string, string](clock.Now))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")
		clock.Advance(4 * time.Second)
		_, _ = cache.Set("key1", "value2") // fresh 5s lease
		clock.Advance(4 * time.Second)

		if value, exists := cache.Get("key1"); !exists || value != "value2" {
			t.Error("Expected refreshed key1 to be live at 8s")
		}
	})

	t.Run("CapacityEvictsLeastRecentlyUsed", func(t *testing.T) {
		clock := newFakeClock()
		cache, err := NewTTL[string, string](context.Background(), 2, time.Hour,
			WithTimer[string, string](clock.Now))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		cache.Get("a")
		_, _ = cache.Set("c", "3") // all live, LRU evicts b

		if _, exists := cache.Get("b"); exists {
			t.Error("Expected b to be evicted under capacity pressure")
		}
		if cache.Stats().Evictions() != 1 {
			t.Errorf("Expected 1 eviction, got %d", cache.Stats().Evictions())
		}
	})

	t.Run("ExpiredEntriesFreeCapacity", func(t *testing.T) {
		clock := newFakeClock()
		cache, err := NewTTL[string, string](context.Background(), 2, 5*time.Second,
			WithTimer[string, string](clock.Now))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("a", "1")
		_, _ = cache.Set("b", "2")
		clock.Advance(6 * time.Second)

		// Both entries expired; the insert must not trigger a capacity
		// eviction
		_, _ = cache.Set("c", "3")

		if cache.Size() != 1 {
			t.Errorf("Expected size 1, got %d", cache.Size())
		}
		if cache.Stats().Evictions() != 0 {
			t.Errorf("Expected 0 evictions, got %d", cache.Stats().Evictions())
		}
		if cache.Stats().Expirations() != 2 {
			t.Errorf("Expected 2 expirations, got %d", cache.Stats().Expirations())
		}
	})

	t.Run("UnboundedCapacity", func(t *testing.T) {
		clock := newFakeClock()
		cache, err := NewTTL[string, string](context.Background(), Unbounded, time.Hour,
			WithTimer[string, string](clock.Now))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		for i := 0; i < 500; i++ {
			_, _ = cache.Set(fmt.Sprintf("key%d", i), "v")
		}
		if cache.Size() != 500 {
			t.Errorf("Expected size 500, got %d", cache.Size())
		}
	})

	t.Run("BackgroundCleanup", func(t *testing.T) {
		cache, err := NewTTL[string, string](context.Background(), 100, 30*time.Millisecond,
			WithCleanupInterval[string, string](10*time.Millisecond))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")
		_, _ = cache.Set("key2", "value2")

		// Wait for the sweep without touching the cache
		time.Sleep(100 * time.Millisecond)

		if got := cache.Stats().Expirations(); got != 2 {
			t.Errorf("Expected 2 expirations from background sweep, got %d", got)
		}
	})
}

// TestNoopCache tests the disabled cache implementation.
func TestNoopCache(t *testing.T) {
	cache := NewNoop[string, string]()
	defer cache.Close()

	isNew, err := cache.Set("key1", "value1")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if isNew {
		t.Error("Noop cache should never create entries")
	}

	if _, exists := cache.Get("key1"); exists {
		t.Error("Noop cache should always miss")
	}
	if cache.Size() != 0 || cache.Capacity() != 0 {
		t.Error("Noop cache should report zero size and capacity")
	}
	if cache.Stats() != nil {
		t.Error("Noop cache should not track statistics")
	}
}

// runConcurrentOperations performs concurrent cache operations for testing.
func runConcurrentOperations(t *testing.T, cache Cache[string, string], numGoroutines, numOperations int) {
	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	// Concurrent reads and writes
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			for j := 0; j < numOperations; j++ {
				key := fmt.Sprintf("key%d-%d", id, j)
				value := fmt.Sprintf("value%d-%d", id, j)

				_, _ = cache.Set(key, value)

				if retrievedValue, exists := cache.Get(key); exists && retrievedValue != value {
					t.Errorf("Expected %s, got %s", value, retrievedValue)
				}

				if j%10 == 0 {
					_, _ = cache.Delete(key)
				}
			}
		}(i)
	}

	wg.Wait()
}

// TestConcurrency tests thread safety of cache implementations.
func TestConcurrency(t *testing.T) {
	createCaches := func() []struct {
		name  string
		cache Cache[string, string]
	} {
		simple, _ := NewSimple[string, string]()
		fifo, _ := NewFIFO[string, string](100)
		lfu, _ := NewLFU[string, string](100)
		lru, _ := NewLRU[string, string](100)
		mru, _ := NewMRU[string, string](100)
		rr, _ := NewRR[string, string](100)
		ttl, _ := NewTTL[string, string](context.Background(), 100, time.Second,
			WithCleanupInterval[string, string](100*time.Millisecond))

		return []struct {
			name  string
			cache Cache[string, string]
		}{
			{"Simple", simple},
			{"FIFO", fifo},
			{"LFU", lfu},
			{"LRU", lru},
			{"MRU", mru},
			{"RR", rr},
			{"TTL", ttl},
		}
	}

	for _, tc := range createCaches() {
		t.Run(tc.name, func(t *testing.T) {
			cache := tc.cache
			defer cache.Close()

			const numGoroutines = 10
			const numOperations = 100

			runConcurrentOperations(t, cache, numGoroutines, numOperations)
		})
	}
}

// TestEvictCallback tests the eviction callback functionality.
func TestEvictCallback(t *testing.T) {
	t.Run("LRUEvictCallback", func(t *testing.T) {
		var evictedKeys []string
		var mu sync.Mutex

		cache, err := NewLRU[string, string](2, WithEvictionCallback[string, string](func(key string, _ string) {
			mu.Lock()
			evictedKeys = append(evictedKeys, key)
			mu.Unlock()
		}))
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")
		_, _ = cache.Set("key2", "value2")
		_, _ = cache.Set("key3", "value3") // Should evict key1

		mu.Lock()
		if len(evictedKeys) != 1 || evictedKeys[0] != "key1" {
			t.Errorf("Expected evicted keys [key1], got %v", evictedKeys)
		}
		mu.Unlock()
	})

	t.Run("TTLExpiryCallback", func(t *testing.T) {
		var evictedKeys []string
		var mu sync.Mutex

		clock := newFakeClock()
		cache, err := NewTTL[string, string](
			context.Background(),
			100,
			5*time.Second,
			WithTimer[string, string](clock.Now),
			WithEvictionCallback[string, string](func(key string, _ string) {
				mu.Lock()
				evictedKeys = append(evictedKeys, key)
				mu.Unlock()
			}),
		)
		if err != nil {
			t.Fatal(err)
		}
		defer cache.Close()

		_, _ = cache.Set("key1", "value1")
		clock.Advance(6 * time.Second)
		cache.Get("key1") // lazy expiry fires the callback

		mu.Lock()
		if len(evictedKeys) != 1 || evictedKeys[0] != "key1" {
			t.Errorf("Expected evicted keys [key1], got %v", evictedKeys)
		}
		mu.Unlock()
	})
}

// TestStatistics tests the statistics functionality.
func TestStatistics(t *testing.T) {
	// Note: Stats are always enabled
	cache, err := NewLRU[string, string](10)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	stats := cache.Stats()
	if stats == nil {
		t.Fatal("Expected stats to be enabled")
	}

	_, _ = cache.Set("key1", "value1")
	_, _ = cache.Set("key2", "value2")
	cache.Get("key1") // hit
	cache.Get("key3") // miss
	_, _ = cache.Delete("key2")

	if stats.Sets() != 2 {
		t.Errorf("Expected 2 sets, got %d", stats.Sets())
	}

	if stats.Hits() != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits())
	}

	if stats.Misses() != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses())
	}

	if stats.Deletes() != 1 {
		t.Errorf("Expected 1 delete, got %d", stats.Deletes())
	}

	if stats.HitRatio() != 0.5 {
		t.Errorf("Expected hit ratio 0.5, got %f", stats.HitRatio())
	}

	if stats.CurrentSize() != 1 {
		t.Errorf("Expected current size 1, got %d", stats.CurrentSize())
	}

	summary := stats.Summary()
	if summary.Hits != 1 || summary.Misses != 1 {
		t.Errorf("Summary mismatch: %+v", summary)
	}

	stats.Reset()
	if stats.Hits() != 0 || stats.CurrentSize() != 0 {
		t.Error("Expected reset statistics to be zero")
	}
}
