package filter

import (
	"fmt"
	"sync"
)

// ChannelStorage maps channel keys to values for one phase of one paint
// call. T is LayoutBounds during layout and *Channel during apply.
type ChannelStorage[T any] struct {
	values  map[Key]T
	derived map[Key]func() T
}

// NewChannelStorage returns an empty storage.
func NewChannelStorage[T any]() *ChannelStorage[T] {
	return &ChannelStorage[T]{
		values:  make(map[Key]T),
		derived: make(map[Key]func() T),
	}
}

// Put stores v under key. Any key other than LastResult also updates
// LastResult.
func (s *ChannelStorage[T]) Put(key Key, v T) {
	s.set(key, v)
	if key != LastResult {
		s.set(LastResult, v)
	}
}

func (s *ChannelStorage[T]) set(key Key, v T) {
	delete(s.derived, key)
	s.values[key] = v
}

// keepLast returns a func that puts LastResult back to its current state.
func (s *ChannelStorage[T]) keepLast() func() {
	v, ok := s.values[LastResult]
	return func() {
		if ok {
			s.set(LastResult, v)
			return
		}
		delete(s.values, LastResult)
	}
}

// PutDerived registers a value computed on first Get. It does not touch
// LastResult.
func (s *ChannelStorage[T]) PutDerived(key Key, fn func() T) {
	delete(s.values, key)
	s.derived[key] = sync.OnceValue(fn)
}

// Get returns the value stored under key or an error wrapping
// ErrChannelNotFound.
func (s *ChannelStorage[T]) Get(key Key) (T, error) {
	if v, ok := s.values[key]; ok {
		return v, nil
	}
	if fn, ok := s.derived[key]; ok {
		return fn(), nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s", ErrChannelNotFound, key)
}

// Has reports whether key holds a value.
func (s *ChannelStorage[T]) Has(key Key) bool {
	_, ok := s.values[key]
	if !ok {
		_, ok = s.derived[key]
	}
	return ok
}
