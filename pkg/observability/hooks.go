// Package observability lets binaries watch the packing pipeline.
//
// The pipeline reports packing, rendering and cache events to whatever hooks
// are registered. Nothing is recorded until a binary registers hooks; the
// serve command registers [Counters] and exposes them at /metrics.
//
//	counters := observability.NewCounters()
//	counters.Register()
//	defer observability.Reset()
//
// Hooks run on the pipeline's goroutine, OnTick once per tick, so
// implementations must be cheap and safe for concurrent use.
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Pack Hooks
// =============================================================================

// PackHooks receives events from pipeline.Pack and pipeline.Render.
// OnPackComplete is called exactly once per OnPackStart, with the error that
// ended the run (nil, a tick limit or a cancellation).
type PackHooks interface {
	OnPackStart(ctx context.Context, size float64, seed uint64)
	OnTick(ctx context.Context, tick, circles, growing int)
	OnPackComplete(ctx context.Context, circles, ticks int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives cache lookups made by the pipeline runner. kind is
// "scene" or "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, kind string)
	OnCacheMiss(ctx context.Context, kind string)
	OnCacheSet(ctx context.Context, kind string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopPackHooks is a no-op implementation of PackHooks.
type NoopPackHooks struct{}

func (NoopPackHooks) OnPackStart(context.Context, float64, uint64)                     {}
func (NoopPackHooks) OnTick(context.Context, int, int, int)                            {}
func (NoopPackHooks) OnPackComplete(context.Context, int, int, time.Duration, error)   {}
func (NoopPackHooks) OnRenderStart(context.Context, []string)                          {}
func (NoopPackHooks) OnRenderComplete(context.Context, []string, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	packHooks  PackHooks  = NoopPackHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetPackHooks registers custom pack hooks. Nil is ignored.
func SetPackHooks(h PackHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		packHooks = h
	}
}

// SetCacheHooks registers custom cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Pack returns the registered pack hooks.
func Pack() PackHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return packHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	packHooks = NoopPackHooks{}
	cacheHooks = NoopCacheHooks{}
}
