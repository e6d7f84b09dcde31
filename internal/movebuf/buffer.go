// Package movebuf provides a bounded, order-preserving buffer used for move
// lists and move history.
package movebuf

import (
	"errors"

	"golang.org/x/exp/slices"
)

var (
	ErrFull          = errors.New("buffer is full")
	ErrEmpty         = errors.New("buffer is empty")
	ErrOutOfRange    = errors.New("index out of range")
	ErrInvalidLength = errors.New("capacity must be positive")
)

// Buffer holds at most Cap() elements in insertion order.
type Buffer[T any] struct {
	items []T
	limit int
}

// New returns an empty buffer that can hold up to capacity elements.
func New[T any](capacity int) (*Buffer[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidLength
	}
	return &Buffer[T]{items: make([]T, 0, capacity), limit: capacity}, nil
}

func (b *Buffer[T]) Len() int    { return len(b.items) }
func (b *Buffer[T]) Cap() int    { return b.limit }
func (b *Buffer[T]) Empty() bool { return len(b.items) == 0 }
func (b *Buffer[T]) Full() bool  { return len(b.items) >= b.limit }

// Clear drops every element but keeps the capacity.
func (b *Buffer[T]) Clear() { b.items = b.items[:0] }

// At returns the element at index i.
func (b *Buffer[T]) At(i int) (T, error) {
	var zero T
	if i < 0 || i >= len(b.items) {
		return zero, ErrOutOfRange
	}
	return b.items[i], nil
}

// Last returns the most recently appended element.
func (b *Buffer[T]) Last() (T, error) {
	var zero T
	if len(b.items) == 0 {
		return zero, ErrEmpty
	}
	return b.items[len(b.items)-1], nil
}

// PushBack appends v.
func (b *Buffer[T]) PushBack(v T) error {
	return b.InsertAt(len(b.items), v)
}

// PushFront inserts v before every other element.
func (b *Buffer[T]) PushFront(v T) error {
	return b.InsertAt(0, v)
}

// InsertAt inserts v at index i, shifting later elements right.
func (b *Buffer[T]) InsertAt(i int, v T) error {
	if b.Full() {
		return ErrFull
	}
	if i < 0 || i > len(b.items) {
		return ErrOutOfRange
	}
	b.items = slices.Insert(b.items, i, v)
	return nil
}

// RemoveAt removes and returns the element at index i.
func (b *Buffer[T]) RemoveAt(i int) (T, error) {
	var zero T
	if len(b.items) == 0 {
		return zero, ErrEmpty
	}
	if i < 0 || i >= len(b.items) {
		return zero, ErrOutOfRange
	}
	v := b.items[i]
	b.items = slices.Delete(b.items, i, i+1)
	return v, nil
}

// PopFront removes the oldest element.
func (b *Buffer[T]) PopFront() (T, error) { return b.RemoveAt(0) }

// PopBack removes the newest element.
func (b *Buffer[T]) PopBack() (T, error) { return b.RemoveAt(len(b.items) - 1) }

// PushEvict appends v, dropping the oldest element first when the buffer is
// full. It reports whether an element was evicted.
func (b *Buffer[T]) PushEvict(v T) (bool, error) {
	evicted := false
	if b.Full() {
		if _, err := b.PopFront(); err != nil {
			return false, err
		}
		evicted = true
	}
	return evicted, b.PushBack(v)
}

// Items returns a copy of the elements in order.
func (b *Buffer[T]) Items() []T {
	return slices.Clone(b.items)
}

// SortStable orders the elements by less, keeping equal elements in place.
func (b *Buffer[T]) SortStable(less func(x, y T) bool) {
	for i := len(b.items) - 1; i > 0; i-- {
		swapped := false
		for j := 0; j < i; j++ {
			if less(b.items[j+1], b.items[j]) {
				b.items[j], b.items[j+1] = b.items[j+1], b.items[j]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// Clone returns an independent buffer with the same capacity and contents.
func (b *Buffer[T]) Clone() *Buffer[T] {
	items := make([]T, len(b.items), b.limit)
	copy(items, b.items)
	return &Buffer[T]{items: items, limit: b.limit}
}
