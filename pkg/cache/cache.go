// Package cache provides short-lived in-memory caches for drag geometry.
//
// During a drag gesture the engine reads element bounds on every pointer
// move. Reading live geometry is cheap but not free, so hot paths keep a
// snapshot behind a very short TTL (100ms by default). The cache is purely
// advisory: correctness never depends on an entry being present, because an
// expired or cleared entry simply forces recomputation.
//
// Stores are used from a single goroutine in the engine (the UI event loop
// model), but are guarded by a mutex anyway so tests and tools can share
// them freely.
package cache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL is the maximum age of a cached geometry snapshot.
// Bounds older than this are treated as misses and recomputed.
const DefaultTTL = 100 * time.Millisecond

// Store is a TTL-bounded key/value cache.
//
// Get must never return a value older than the store's TTL. Clear may be
// called at any time; a cleared store only forces recomputation, never
// incorrect results.
type Store[V any] interface {
	// Get returns the cached value for key and whether it was present
	// and fresh.
	Get(key string) (V, bool)

	// Set stores a value for key, stamped with the current time.
	Set(key string, value V)

	// Delete removes the entry for key, if any.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// Len returns the number of live (unexpired) entries.
	Len() int
}

// entry wraps a cached value with its write timestamp.
type entry[V any] struct {
	value    V
	storedAt time.Time
}

// Memory is an in-memory TTL store.
type Memory[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]
	ttl     time.Duration
	keyType string
	now     func() time.Time
}

// Option configures a Memory store.
type Option[V any] func(*Memory[V])

// WithTTL overrides the default entry TTL.
func WithTTL[V any](ttl time.Duration) Option[V] {
	return func(m *Memory[V]) { m.ttl = ttl }
}

// WithNow overrides the clock used for timestamps and expiry checks.
// Tests use this to simulate the passage of time.
func WithNow[V any](now func() time.Time) Option[V] {
	return func(m *Memory[V]) { m.now = now }
}

// NewMemory creates an in-memory store with DefaultTTL.
// The keyType labels hook events so backends can distinguish the bounds
// cache from the spatial index.
func NewMemory[V any](keyType string, opts ...Option[V]) *Memory[V] {
	m := &Memory[V]{
		entries: make(map[string]entry[V]),
		ttl:     DefaultTTL,
		keyType: keyType,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the value for key if present and younger than the TTL.
// Expired entries are removed on access.
func (m *Memory[V]) Get(key string) (V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if ok && m.now().Sub(e.storedAt) < m.ttl {
		hooks().OnCacheHit(context.Background(), m.keyType)
		return e.value, true
	}
	if ok {
		delete(m.entries, key)
	}
	hooks().OnCacheMiss(context.Background(), m.keyType)
	var zero V
	return zero, false
}

// Set stores value under key with the current timestamp.
func (m *Memory[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry[V]{value: value, storedAt: m.now()}
	hooks().OnCacheSet(context.Background(), m.keyType)
}

// Delete removes the entry for key.
func (m *Memory[V]) Delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

// Clear removes all entries.
func (m *Memory[V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]entry[V])
}

// Len returns the number of unexpired entries.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	now := m.now()
	for _, e := range m.entries {
		if now.Sub(e.storedAt) < m.ttl {
			n++
		}
	}
	return n
}

// Ensure Memory implements Store.
var _ Store[int] = (*Memory[int])(nil)
