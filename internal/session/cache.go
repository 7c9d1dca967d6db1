package session

import (
	"container/list"
	"sync"
)

type (
	lruCache[K comparable, T any] struct {
		cache   map[K]*list.Element
		lru     *list.List
		maxSize int
		onEvict func(K, T)
		mu      sync.Mutex
	}

	cacheEntry[K comparable, T any] struct {
		value T
		key   K
	}
)

func newLRUCache[K comparable, T any](
	maxSize int, onEvict func(K, T),
) *lruCache[K, T] {
	return &lruCache[K, T]{
		cache:   map[K]*list.Element{},
		lru:     list.New(),
		maxSize: maxSize,
		onEvict: onEvict,
	}
}

func (c *lruCache[K, T]) get(key K) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[key]
	if !ok {
		var zero T
		return zero, false
	}
	c.lru.MoveToFront(elem)
	return elem.Value.(*cacheEntry[K, T]).value, true
}

func (c *lruCache[K, T]) put(key K, value T) {
	c.mu.Lock()
	if elem, ok := c.cache[key]; ok {
		elem.Value.(*cacheEntry[K, T]).value = value
		c.lru.MoveToFront(elem)
		c.mu.Unlock()
		return
	}

	entry := &cacheEntry[K, T]{key: key, value: value}
	c.cache[key] = c.lru.PushFront(entry)

	var evicted *cacheEntry[K, T]
	if c.lru.Len() > c.maxSize {
		evicted = c.evictLast()
	}
	c.mu.Unlock()

	if evicted != nil && c.onEvict != nil {
		c.onEvict(evicted.key, evicted.value)
	}
}

func (c *lruCache[K, T]) remove(key K) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.cache[key]
	if !ok {
		var zero T
		return zero, false
	}
	c.lru.Remove(elem)
	delete(c.cache, key)
	return elem.Value.(*cacheEntry[K, T]).value, true
}

// keys returns the cached keys, most recently used first
func (c *lruCache[K, T]) keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	res := make([]K, 0, c.lru.Len())
	for e := c.lru.Front(); e != nil; e = e.Next() {
		res = append(res, e.Value.(*cacheEntry[K, T]).key)
	}
	return res
}

func (c *lruCache[K, T]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func (c *lruCache[K, T]) evictLast() *cacheEntry[K, T] {
	back := c.lru.Back()
	if back == nil {
		return nil
	}
	c.lru.Remove(back)
	entry := back.Value.(*cacheEntry[K, T])
	delete(c.cache, entry.key)
	return entry
}
