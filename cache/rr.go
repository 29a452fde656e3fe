package cache

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/c360/memocache/errors"
)

// Choice selects one key from a non-empty key slice. It must be a pure
// function of its input and must not mutate the slice.
type Choice[K comparable] func(keys []K) K

// rrPolicy evicts a key chosen by a pluggable selection function, uniformly
// at random by default. Hits have no effect on eviction candidacy.
type rrPolicy[K comparable] struct {
	keys   []K
	index  map[K]int
	choice Choice[K]
}

// newRRPolicy creates a random-replacement policy. A nil choice falls back to
// a uniform selection backed by a per-policy random source; no process-wide
// state is shared between instances.
func newRRPolicy[K comparable](choice Choice[K]) *rrPolicy[K] {
	if choice == nil {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		choice = func(keys []K) K {
			return keys[rng.Intn(len(keys))]
		}
	}
	return &rrPolicy[K]{
		index:  make(map[K]int),
		choice: choice,
	}
}

func (p *rrPolicy[K]) inserted(key K) {
	p.index[key] = len(p.keys)
	p.keys = append(p.keys, key)
}

func (p *rrPolicy[K]) accessed(_ K) {
	// Access order does not matter for random replacement.
}

func (p *rrPolicy[K]) removed(key K) {
	i, ok := p.index[key]
	if !ok {
		return
	}
	last := len(p.keys) - 1
	p.keys[i] = p.keys[last]
	p.index[p.keys[i]] = i
	p.keys = p.keys[:last]
	delete(p.index, key)
}

func (p *rrPolicy[K]) victim() (K, error) {
	if len(p.keys) == 0 {
		var zero K
		return zero, errors.WrapInvalid(errors.ErrKeyNotFound, "cache", "victim",
			"rr policy has no keys to evict")
	}
	key := p.choice(p.keys)
	if _, ok := p.index[key]; !ok {
		var zero K
		return zero, errors.WrapInvalid(errors.ErrInvalidSelection, "cache", "victim",
			fmt.Sprintf("selection function returned unknown key %v", key))
	}
	return key, nil
}

func (p *rrPolicy[K]) reset() {
	p.keys = p.keys[:0]
	clear(p.index)
}
