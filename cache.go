package ecs

import "fmt"

// Cache is a dense, capacity-bounded string→index registry with O(1)
// index→item lookup, the same shape as the reference's cache.go. Schema
// uses one per kind as its id-assignment table: Register is register()'s
// "assign the next free id, remember it by name" step, and GetItem/
// GetItem32 back every Schema accessor's id→descriptor lookup.
type Cache[T any] interface {
	GetIndex(key string) (int, bool)
	GetItem(index int) *T
	GetItem32(index uint32) *T
	Register(key string, item T) (int, error)
	Clear()
}

var _ Cache[any] = &SimpleCache[any]{}

// SimpleCache is the reference's SimpleCache[T], unchanged.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

func (c *SimpleCache[T]) GetItem(index int) *T {
	item := &c.items[index]
	return item
}

func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	item := &c.items[index]
	return item
}

func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if idx, ok := c.itemIndices[key]; ok {
		return idx, nil
	}
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}

	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item) // Use append instead of direct assignment

	return idx, nil
}

func (c *SimpleCache[T]) Clear() {
	c.items = nil
	c.itemIndices = make(map[string]int)
}
