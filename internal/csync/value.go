// Package csync provides small concurrency-safe containers.
package csync

import (
	"fmt"
	"reflect"
	"sync"
)

// Value is a mutex-guarded cell holding a copyable value. It refuses
// reference types (pointers, slices, maps, channels, funcs) at
// construction, since sharing those through a guarded copy only hides the
// race instead of fixing it.
type Value[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewValue creates a value cell. It panics when T's concrete kind is a
// reference type.
func NewValue[T any](v T) *Value[T] {
	switch kind := reflect.TypeOf(&v).Elem().Kind(); kind {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		panic(fmt.Sprintf("csync: NewValue called with reference kind %s", kind))
	}
	return &Value[T]{v: v}
}

// Get returns the current value.
func (c *Value[T]) Get() T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.v
}

// Set replaces the current value.
func (c *Value[T]) Set(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v = v
}

// Swap replaces the current value and returns the previous one.
func (c *Value[T]) Swap(v T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	old := c.v
	c.v = v
	return old
}
