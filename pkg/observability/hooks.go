// Package observability lets callers watch the layout engine without tying
// gridsolve to a metrics or tracing backend.
//
// Hooks are plain interfaces with no-op defaults. A process registers its
// implementations once at startup; an [layout.Engine] can also be given its
// own layout hooks, which take precedence over the registered ones.
//
//	observability.SetLayoutHooks(promHooks{})
//	observability.SetCacheHooks(promHooks{})
//
// Events, in the order the engine emits them for one uncached call:
//
//	Cache().OnCacheMiss("layout")
//	Layout().OnClassify(orthogonal, subplots)
//	Layout().OnSolveComplete(strategy, elapsed, err)
//	Layout().OnFallback(err)          // only when the solve failed
//	Cache().OnCacheSet("layout", size)
//
// [layout.Engine]: https://pkg.go.dev/github.com/matzehuels/gridsolve/pkg/layout#Engine
package observability

import (
	"sync"
	"time"
)

// =============================================================================
// Layout Hooks
// =============================================================================

// LayoutHooks receives events from the layout engine.
type LayoutHooks interface {
	// OnClassify records the classification of an arrangement.
	OnClassify(orthogonal bool, subplots int)

	// OnSolveComplete records one positioning attempt by the named strategy.
	OnSolveComplete(strategy string, duration time.Duration, err error)

	// OnFallback records a switch from the constraint solver to the grid
	// fallback. reason is the solver's error.
	OnFallback(reason error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives memoization events. keyType names what was cached,
// "layout" for engine results.
type CacheHooks interface {
	OnCacheHit(keyType string)
	OnCacheMiss(keyType string)
	// OnCacheSet reports a write of size encoded bytes.
	OnCacheSet(keyType string, size int)
}

// =============================================================================
// Defaults
// =============================================================================

// NoopLayoutHooks ignores every event.
type NoopLayoutHooks struct{}

func (NoopLayoutHooks) OnClassify(bool, int)                         {}
func (NoopLayoutHooks) OnSolveComplete(string, time.Duration, error) {}
func (NoopLayoutHooks) OnFallback(error)                             {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(string)      {}
func (NoopCacheHooks) OnCacheMiss(string)     {}
func (NoopCacheHooks) OnCacheSet(string, int) {}

// =============================================================================
// Registry
// =============================================================================

var registry = struct {
	sync.RWMutex
	layout LayoutHooks
	cache  CacheHooks
}{layout: NoopLayoutHooks{}, cache: NoopCacheHooks{}}

// SetLayoutHooks registers h for every engine without its own hooks. A nil h
// is ignored.
func SetLayoutHooks(h LayoutHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.layout = h
	registry.Unlock()
}

// SetCacheHooks registers h for cache events. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	registry.Lock()
	registry.cache = h
	registry.Unlock()
}

// Layout returns the registered layout hooks.
func Layout() LayoutHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.layout
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	registry.RLock()
	defer registry.RUnlock()
	return registry.cache
}

// Reset restores the no-op hooks. Tests that register hooks call it when
// they finish.
func Reset() {
	registry.Lock()
	registry.layout, registry.cache = NoopLayoutHooks{}, NoopCacheHooks{}
	registry.Unlock()
}
