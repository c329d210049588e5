package store

import "sync"

// Collection is a mutex-guarded in-memory collection keyed by id, keeping
// insertion order for listings. It offers the insert / find-by-id /
// find-by-predicate / update-by-id contract the core needs; a production
// deployment swaps a real store in behind the same operations.
type Collection[T any] struct {
	mu    sync.RWMutex
	items map[string]T
	order []string
}

// NewCollection creates an empty collection.
func NewCollection[T any]() *Collection[T] {
	return &Collection[T]{items: make(map[string]T)}
}

// Insert stores an item under id, overwriting any previous value.
func (c *Collection[T]) Insert(id string, item T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = item
}

// Get returns the item stored under id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, ok := c.items[id]
	return item, ok
}

// Find returns every item matching the predicate, in insertion order.
func (c *Collection[T]) Find(pred func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []T
	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// FindOne returns the first item matching the predicate.
func (c *Collection[T]) FindOne(pred func(T) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, id := range c.order {
		if item := c.items[id]; pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Update applies fn to the item under id and stores the result. Returns
// false when the id is unknown.
func (c *Collection[T]) Update(id string, fn func(T) T) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[id]
	if !ok {
		return false
	}
	c.items[id] = fn(item)
	return true
}

// List returns all items in insertion order.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// Len returns the number of stored items.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
