package ecs

// PtrComponentStore is a generic typed map store keyed by any comparable id.
// No reflect, no interface{} — pure generics.
type PtrComponentStore[K comparable, T any] struct {
	data map[K]*T
}

func NewPtrComponentStore[K comparable, T any](capacity int) *PtrComponentStore[K, T] {
	return &PtrComponentStore[K, T]{
		data: make(map[K]*T, capacity),
	}
}

func (s *PtrComponentStore[K, T]) Set(id K, c *T) {
	s.data[id] = c
}

func (s *PtrComponentStore[K, T]) Get(id K) (*T, bool) {
	c, ok := s.data[id]
	return c, ok
}

// GetOrCreate returns the stored component, inserting a value built by
// newFn when id is absent. The bool reports whether it was created.
func (s *PtrComponentStore[K, T]) GetOrCreate(id K, newFn func() *T) (*T, bool) {
	if c, ok := s.data[id]; ok {
		return c, false
	}
	c := newFn()
	s.data[id] = c
	return c, true
}

func (s *PtrComponentStore[K, T]) Remove(id K) {
	delete(s.data, id)
}

func (s *PtrComponentStore[K, T]) Has(id K) bool {
	_, ok := s.data[id]
	return ok
}

func (s *PtrComponentStore[K, T]) Len() int {
	return len(s.data)
}

// Each visits every component. Iteration order is unspecified.
func (s *PtrComponentStore[K, T]) Each(fn func(K, *T)) {
	for id, c := range s.data {
		fn(id, c)
	}
}

// RemoveIf deletes every component for which pred returns true and reports
// how many were removed.
func (s *PtrComponentStore[K, T]) RemoveIf(pred func(K, *T) bool) int {
	n := 0
	for id, c := range s.data {
		if pred(id, c) {
			delete(s.data, id)
			n++
		}
	}
	return n
}

// Clear drops every component but keeps the store usable.
func (s *PtrComponentStore[K, T]) Clear() {
	clear(s.data)
}
