package cache

import (
	"container/list"

	"github.com/c360/memocache/errors"
)

// fifoPolicy evicts the oldest-inserted key. Hits and overwrites never change
// a key's position; the original arrival order is preserved for its lifetime.
type fifoPolicy[K comparable] struct {
	order *list.List // front = oldest insertion
	elems map[K]*list.Element
}

func newFIFOPolicy[K comparable]() *fifoPolicy[K] {
	return &fifoPolicy[K]{
		order: list.New(),
		elems: make(map[K]*list.Element),
	}
}

func (p *fifoPolicy[K]) inserted(key K) {
	p.elems[key] = p.order.PushBack(key)
}

func (p *fifoPolicy[K]) accessed(_ K) {
	// Insertion order is preserved on hits and overwrites.
}

func (p *fifoPolicy[K]) removed(key K) {
	if element, ok := p.elems[key]; ok {
		p.order.Remove(element)
		delete(p.elems, key)
	}
}

func (p *fifoPolicy[K]) victim() (K, error) {
	element := p.order.Front()
	if element == nil {
		var zero K
		return zero, errors.WrapInvalid(errors.ErrKeyNotFound, "cache", "victim",
			"fifo policy has no keys to evict")
	}
	return element.Value.(K), nil
}

func (p *fifoPolicy[K]) reset() {
	p.order.Init()
	clear(p.elems)
}
