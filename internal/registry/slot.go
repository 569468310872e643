// Package registry holds the process-wide single-slot registries through
// which external callers reach the current renderer view without holding
// a reference to it.
package registry

import (
	"reflect"
	"sync"
)

// slot holds at most one value. The lock only guards reads and writes of
// the slot itself; callers invoke the value after releasing it.
type slot[T comparable] struct {
	mu      sync.Locker
	current T
}

func newSlot[T comparable](lock sync.Locker) *slot[T] {
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &slot[T]{mu: lock}
}

func (s *slot[T]) set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = v
}

// clear empties the slot only if it still holds v, so a stale owner
// cannot erase a newer registration. It reports whether it did.
func (s *slot[T]) clear(v T) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	var zero T
	if isZero(v) || !same(s.current, v) {
		return false
	}
	s.current = zero
	return true
}

func (s *slot[T]) get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func isZero[T comparable](v T) bool {
	return reflect.ValueOf(&v).Elem().IsZero()
}

// same reports whether a and b are the same registration. Values whose
// dynamic type cannot be compared with == (funcs, maps, slices, or
// structs holding them) never panic: maps and slices match when they
// share storage, funcs when they share code, anything else never matches.
func same[T comparable](a, b T) bool {
	va, vb := reflect.ValueOf(any(a)), reflect.ValueOf(any(b))
	if !va.IsValid() || !vb.IsValid() {
		return va.IsValid() == vb.IsValid()
	}
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	switch va.Kind() {
	case reflect.Func, reflect.Map:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	return false
}
