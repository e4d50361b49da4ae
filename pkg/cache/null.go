package cache

import "github.com/vietanhdev/kirapilot-dnd/pkg/observability"

// hooks returns the registered cache hooks.
func hooks() observability.CacheHooks { return observability.Cache() }

// Null is a no-op store that never caches anything.
// Useful for testing or when caching should be disabled.
type Null[V any] struct{}

// NewNull creates a null store.
func NewNull[V any]() *Null[V] { return &Null[V]{} }

// Get always returns a miss.
func (Null[V]) Get(string) (V, bool) {
	var zero V
	return zero, false
}

// Set does nothing.
func (Null[V]) Set(string, V) {}

// Delete does nothing.
func (Null[V]) Delete(string) {}

// Clear does nothing.
func (Null[V]) Clear() {}

// Len always returns zero.
func (Null[V]) Len() int { return 0 }

// Ensure Null implements Store.
var _ Store[int] = (*Null[int])(nil)
