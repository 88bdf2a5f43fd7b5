// Package assets provides a generational registry for heavyweight resources
// such as GPU mesh buffers and shader programs.
//
// The registry owns its values. Everything else refers to them through a
// Handle, which is a plain value that can be stored in ECS components and
// copied freely. Removing an asset invalidates every handle that named it,
// even if the slot is later reused.
package assets

import (
	"errors"
	"fmt"
)

// ErrStaleHandle is returned when a handle does not name a live asset.
var ErrStaleHandle = errors.New("stale or unknown asset handle")

// Handle names an asset in a registry.
// The zero Handle never resolves.
type Handle struct {
	Generation uint32
	Slot       int
}

// String returns the handle as "slot@generation".
func (h Handle) String() string {
	return fmt.Sprintf("%d@%d", h.Slot, h.Generation)
}

// IsZero reports whether h is the zero handle.
func (h Handle) IsZero() bool {
	return h == Handle{}
}

type slot[T any] struct {
	generation uint32
	occupied   bool
	value      T
}

// Assets stores values of one type behind generational handles.
// The backing slot array never shrinks; only handles are reclaimed.
type Assets[T any] struct {
	slots      []slot[T]
	generation uint32
}

// New creates an empty registry.
func New[T any]() *Assets[T] {
	return &Assets[T]{}
}

// Add stores v in the lowest vacant slot and returns its handle.
func (a *Assets[T]) Add(v T) Handle {
	// Generation 0 is reserved for the zero Handle. The counter may wrap;
	// after 2^32 insertions a stale handle can alias a fresh value.
	a.generation++
	if a.generation == 0 {
		a.generation = 1
	}

	idx := -1
	for i := range a.slots {
		if !a.slots[i].occupied {
			idx = i
			break
		}
	}
	if idx < 0 {
		a.slots = append(a.slots, slot[T]{})
		idx = len(a.slots) - 1
	}

	a.slots[idx] = slot[T]{generation: a.generation, occupied: true, value: v}
	return Handle{Generation: a.generation, Slot: idx}
}

// lookup returns the slot named by h, or nil.
func (a *Assets[T]) lookup(h Handle) *slot[T] {
	if h.Slot < 0 || h.Slot >= len(a.slots) {
		return nil
	}
	s := &a.slots[h.Slot]
	if !s.occupied || s.generation != h.Generation {
		return nil
	}
	return s
}

// Get returns the asset named by h.
func (a *Assets[T]) Get(h Handle) (T, bool) {
	if s := a.lookup(h); s != nil {
		return s.value, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the asset named by h.
// The pointer is valid until the next call to Add.
func (a *Assets[T]) GetMut(h Handle) (*T, bool) {
	if s := a.lookup(h); s != nil {
		return &s.value, true
	}
	return nil, false
}

// Contains reports whether h names a live asset.
func (a *Assets[T]) Contains(h Handle) bool {
	return a.lookup(h) != nil
}

// Remove clears the slot named by h and returns the value it held so the
// caller can release any external resources.
func (a *Assets[T]) Remove(h Handle) (T, error) {
	s := a.lookup(h)
	if s == nil {
		var zero T
		return zero, fmt.Errorf("remove %s: %w", h, ErrStaleHandle)
	}
	v := s.value
	*s = slot[T]{generation: s.generation}
	return v, nil
}

// Len returns the number of slots, occupied or not.
func (a *Assets[T]) Len() int {
	return len(a.slots)
}

// Count returns the number of live assets.
func (a *Assets[T]) Count() int {
	n := 0
	for i := range a.slots {
		if a.slots[i].occupied {
			n++
		}
	}
	return n
}

// Each calls fn for every live asset in slot order.
func (a *Assets[T]) Each(fn func(Handle, T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.occupied {
			fn(Handle{Generation: s.generation, Slot: i}, s.value)
		}
	}
}
