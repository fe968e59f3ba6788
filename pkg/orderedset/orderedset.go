// Package orderedset provides a set that remembers insertion order.
package orderedset

type Set[T comparable] struct {
	seen  map[T]struct{}
	order []T
}

func New[T comparable]() *Set[T] {
	return &Set[T]{seen: map[T]struct{}{}}
}

func FromSlice[T comparable](vals []T) *Set[T] {
	set := New[T]()
	for _, v := range vals {
		set.Add(v)
	}
	return set
}

// Add inserts v and reports whether it was not already present.
func (s *Set[T]) Add(v T) bool {
	if _, ok := s.seen[v]; ok {
		return false
	}
	s.seen[v] = struct{}{}
	s.order = append(s.order, v)
	return true
}

func (s *Set[T]) Has(v T) bool {
	_, ok := s.seen[v]
	return ok
}

func (s *Set[T]) Len() int {
	return len(s.order)
}

// Values returns the elements in insertion order. The returned slice is
// shared; callers must not mutate it.
func (s *Set[T]) Values() []T {
	return s.order
}
