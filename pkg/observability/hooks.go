// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about collision detection, placeholder transitions, and
// bounds-cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logs, etc.)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCollisionHooks(&myCollisionHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	// ... detect collision ...
//	observability.Collision().OnDetect(ctx, columnID, itemCount, time.Since(start))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Collision Hooks
// =============================================================================

// CollisionHooks receives events from placeholder and collision calculations.
type CollisionHooks interface {
	// OnDetect records a completed placeholder calculation for a column.
	OnDetect(ctx context.Context, columnID string, itemCount int, duration time.Duration)

	// OnIndexRebuild records a spatial index rebuild for a column.
	OnIndexRebuild(ctx context.Context, columnID string, itemCount int)

	// OnFallback records a pointer that matched no column and was delegated
	// to the fallback detector.
	OnFallback(ctx context.Context)
}

// =============================================================================
// Transition Hooks
// =============================================================================

// TransitionHooks receives events from the placeholder transition manager.
type TransitionHooks interface {
	// OnStateChange records a transition between two named states.
	OnStateChange(ctx context.Context, from, to string)

	// OnNotify records a committed placeholder notification. visible is false
	// when the notification cleared the placeholder.
	OnNotify(ctx context.Context, visible bool)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from bounds-cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss (absent or expired entry).
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCollisionHooks is a no-op implementation of CollisionHooks.
type NoopCollisionHooks struct{}

func (NoopCollisionHooks) OnDetect(context.Context, string, int, time.Duration) {}
func (NoopCollisionHooks) OnIndexRebuild(context.Context, string, int)          {}
func (NoopCollisionHooks) OnFallback(context.Context)                           {}

// NoopTransitionHooks is a no-op implementation of TransitionHooks.
type NoopTransitionHooks struct{}

func (NoopTransitionHooks) OnStateChange(context.Context, string, string) {}
func (NoopTransitionHooks) OnNotify(context.Context, bool)                {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)  {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string) {}
func (NoopCacheHooks) OnCacheSet(context.Context, string)  {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	collisionHooks  CollisionHooks  = NoopCollisionHooks{}
	transitionHooks TransitionHooks = NoopTransitionHooks{}
	cacheHooks      CacheHooks      = NoopCacheHooks{}
	hooksMu         sync.RWMutex
)

// SetCollisionHooks registers custom collision hooks.
// This should be called once at application startup before any drag operations.
func SetCollisionHooks(h CollisionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		collisionHooks = h
	}
}

// SetTransitionHooks registers custom transition hooks.
// This should be called once at application startup before any drag operations.
func SetTransitionHooks(h TransitionHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transitionHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Collision returns the registered collision hooks.
func Collision() CollisionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return collisionHooks
}

// Transition returns the registered transition hooks.
func Transition() TransitionHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transitionHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	collisionHooks = NoopCollisionHooks{}
	transitionHooks = NoopTransitionHooks{}
	cacheHooks = NoopCacheHooks{}
}
