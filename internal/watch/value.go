// Package watch provides a small observable value holder: one writer,
// arbitrarily many readers and subscribers.
package watch

import "sync"

// Value holds a T and notifies subscribers on every Set. Reads return
// the stored value by copy; subscribers must not block for long, as
// notification is synchronous with Set.
type Value[T any] struct {
	mu      sync.RWMutex
	current T
	nextID  int
	subs    map[int]func(T)
}

// NewValue creates a Value seeded with initial.
func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{
		current: initial,
		subs:    make(map[int]func(T)),
	}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.current
}

// Set stores next and notifies every subscriber with it.
func (v *Value[T]) Set(next T) {
	v.mu.Lock()
	v.current = next
	subs := make([]func(T), 0, len(v.subs))
	for _, fn := range v.subs {
		subs = append(subs, fn)
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers fn to run on every subsequent Set and returns a
// cancel function. fn is not called with the current value.
func (v *Value[T]) Subscribe(fn func(T)) (cancel func()) {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		delete(v.subs, id)
		v.mu.Unlock()
	}
}
