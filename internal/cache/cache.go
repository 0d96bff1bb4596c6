// Package cache provides the per-source TTL store that shields the
// rate-limited upstream boards. Each source owns one slot; a slot is
// replaced wholesale on every successful fetch and its previous value is
// retained for stale serving when a refresh attempt fails.
package cache

import (
	"sync"
	"time"
)

// DefaultTTL matches the upstream-conserving window used for every source.
const DefaultTTL = time.Hour

// entry pairs a cached value with its capture time.
type entry[T any] struct {
	value    T
	captured time.Time
}

// Store is a TTL-gated slot map. The zero value is not usable; construct
// with New.
type Store[T any] struct {
	mu    sync.RWMutex
	slots map[string]entry[T]
	ttl   time.Duration
	now   func() time.Time
}

// New creates a Store with the given TTL. A non-positive TTL falls back to
// DefaultTTL.
func New[T any](ttl time.Duration) *Store[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store[T]{
		slots: make(map[string]entry[T]),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Fresh returns the slot value if one exists and is within the TTL window.
func (s *Store[T]) Fresh(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.slots[key]
	if !ok || s.now().Sub(e.captured) >= s.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Stale returns the slot value regardless of age. Used to degrade
// gracefully when a refresh fails: something already fetched beats nothing.
func (s *Store[T]) Stale(key string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.slots[key]
	if !ok {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Put replaces the slot with a fresh capture.
func (s *Store[T]) Put(key string, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots[key] = entry[T]{value: value, captured: s.now()}
}

// SetClock overrides the time source, for tests.
func (s *Store[T]) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}
