package set

import (
	"iter"
	"maps"
)

// Set is a uniqueness preserving collection backed by a map[T]struct{}.
// The zero value is ready to use.
type Set[T comparable] struct {
	values map[T]struct{}
}

// Insert adds value to the set. It returns false if the value was
// already present.
func (s *Set[T]) Insert(value T) bool {
	if s.values == nil {
		s.values = make(map[T]struct{})
	}

	if _, exists := s.values[value]; exists {
		return false
	}

	s.values[value] = struct{}{}
	return true
}

// Remove drops value from the set. Removing an absent value is a no-op.
func (s *Set[T]) Remove(value T) {
	delete(s.values, value)
}

func (s *Set[T]) Has(value T) bool {
	_, exists := s.values[value]
	return exists
}

// Values iterates over the set in no particular order.
func (s *Set[T]) Values() iter.Seq[T] {
	return maps.Keys(s.values)
}

func (s *Set[T]) Len() int {
	return len(s.values)
}
