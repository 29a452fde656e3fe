package cache

import (
	"container/list"

	"github.com/c360/memocache/errors"
)

// recencyPolicy maintains a doubly-linked recency order shared by the LRU and
// MRU strategies: every hit, overwrite and insert moves the key to the
// most-recent end. LRU evicts the least-recent end; MRU evicts the most-recent
// end instead, on the belief that just-used items are least likely to be
// reused soon.
type recencyPolicy[K comparable] struct {
	order       *list.List // front = most recently used
	elems       map[K]*list.Element
	evictRecent bool // MRU eviction when true
}

func newLRUPolicy[K comparable]() *recencyPolicy[K] {
	return &recencyPolicy[K]{
		order: list.New(),
		elems: make(map[K]*list.Element),
	}
}

func newMRUPolicy[K comparable]() *recencyPolicy[K] {
	return &recencyPolicy[K]{
		order:       list.New(),
		elems:       make(map[K]*list.Element),
		evictRecent: true,
	}
}

func (p *recencyPolicy[K]) inserted(key K) {
	p.elems[key] = p.order.PushFront(key)
}

func (p *recencyPolicy[K]) accessed(key K) {
	if element, ok := p.elems[key]; ok {
		p.order.MoveToFront(element)
	}
}

func (p *recencyPolicy[K]) removed(key K) {
	if element, ok := p.elems[key]; ok {
		p.order.Remove(element)
		delete(p.elems, key)
	}
}

func (p *recencyPolicy[K]) victim() (K, error) {
	element := p.order.Back()
	if p.evictRecent {
		element = p.order.Front()
	}
	if element == nil {
		var zero K
		return zero, errors.WrapInvalid(errors.ErrKeyNotFound, "cache", "victim",
			"recency policy has no keys to evict")
	}
	return element.Value.(K), nil
}

func (p *recencyPolicy[K]) reset() {
	p.order.Init()
	clear(p.elems)
}
