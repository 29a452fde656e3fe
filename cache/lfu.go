package cache

import (
	"container/heap"

	"github.com/c360/memocache/errors"
)

// lfuEntry tracks a key's access count and insertion sequence for the LFU
// policy. Counts start at zero on insert and grow without bound; there is no
// decay.
type lfuEntry[K comparable] struct {
	key   K
	count uint64
	seq   uint64 // insertion order, breaks ties among equal counts
	index int    // heap index, maintained by lfuHeap
}

// lfuHeap is a min-heap ordered by (count, seq): the victim is the key with
// the fewest accesses, oldest insertion first among ties.
type lfuHeap[K comparable] []*lfuEntry[K]

func (h lfuHeap[K]) Len() int { return len(h) }

func (h lfuHeap[K]) Less(i, j int) bool {
	if h[i].count != h[j].count {
		return h[i].count < h[j].count
	}
	return h[i].seq < h[j].seq
}

func (h lfuHeap[K]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *lfuHeap[K]) Push(x any) {
	entry := x.(*lfuEntry[K])
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *lfuHeap[K]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// lfuPolicy evicts the least frequently used key. Every hit and every
// overwrite increments the key's access count.
type lfuPolicy[K comparable] struct {
	entries map[K]*lfuEntry[K]
	heap    lfuHeap[K]
	nextSeq uint64
}

func newLFUPolicy[K comparable]() *lfuPolicy[K] {
	return &lfuPolicy[K]{
		entries: make(map[K]*lfuEntry[K]),
	}
}

func (p *lfuPolicy[K]) inserted(key K) {
	entry := &lfuEntry[K]{key: key, seq: p.nextSeq}
	p.nextSeq++
	p.entries[key] = entry
	heap.Push(&p.heap, entry)
}

func (p *lfuPolicy[K]) accessed(key K) {
	if entry, ok := p.entries[key]; ok {
		entry.count++
		heap.Fix(&p.heap, entry.index)
	}
}

func (p *lfuPolicy[K]) removed(key K) {
	if entry, ok := p.entries[key]; ok {
		heap.Remove(&p.heap, entry.index)
		delete(p.entries, key)
	}
}

func (p *lfuPolicy[K]) victim() (K, error) {
	if len(p.heap) == 0 {
		var zero K
		return zero, errors.WrapInvalid(errors.ErrKeyNotFound, "cache", "victim",
			"lfu policy has no keys to evict")
	}
	return p.heap[0].key, nil
}

func (p *lfuPolicy[K]) reset() {
	clear(p.entries)
	p.heap = p.heap[:0]
	p.nextSeq = 0
}
