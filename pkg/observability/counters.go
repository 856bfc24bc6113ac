package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is an in-memory PackHooks and CacheHooks implementation. The
// serve command registers one and exposes its Snapshot at /metrics.
type Counters struct {
	packs       atomic.Int64
	packErrors  atomic.Int64
	ticks       atomic.Int64
	circles     atomic.Int64
	packNanos   atomic.Int64
	renders     atomic.Int64
	renderErrs  atomic.Int64
	renderNanos atomic.Int64
	cacheHits   atomic.Int64
	cacheMisses atomic.Int64
	cacheBytes  atomic.Int64
	inFlight    atomic.Int64
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters { return &Counters{} }

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Packs         int64         `json:"packs"`
	PackErrors    int64         `json:"pack_errors"`
	PacksInFlight int64         `json:"packs_in_flight"`
	Ticks         int64         `json:"ticks"`
	Circles       int64         `json:"circles"`
	PackTime      time.Duration `json:"pack_time_ns"`
	Renders       int64         `json:"renders"`
	RenderErrors  int64         `json:"render_errors"`
	RenderTime    time.Duration `json:"render_time_ns"`
	CacheHits     int64         `json:"cache_hits"`
	CacheMisses   int64         `json:"cache_misses"`
	CacheBytes    int64         `json:"cache_bytes_written"`
}

func (c *Counters) OnPackStart(context.Context, float64, uint64) { c.inFlight.Add(1) }

// OnTick is called for every tick; keep it to one atomic add.
func (c *Counters) OnTick(context.Context, int, int, int) { c.ticks.Add(1) }

func (c *Counters) OnPackComplete(_ context.Context, circles, _ int, d time.Duration, err error) {
	c.inFlight.Add(-1)
	c.packs.Add(1)
	c.packNanos.Add(int64(d))
	if err != nil {
		c.packErrors.Add(1)
		return
	}
	c.circles.Add(int64(circles))
}

func (c *Counters) OnRenderStart(context.Context, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	c.renders.Add(1)
	c.renderNanos.Add(int64(d))
	if err != nil {
		c.renderErrs.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.cacheMisses.Add(1) }
func (c *Counters) OnCacheSet(_ context.Context, _ string, size int) {
	c.cacheBytes.Add(int64(size))
}

// Snapshot reads every counter. Counters are read one by one, so a
// snapshot taken during a run may be off by the events of that run.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Packs:         c.packs.Load(),
		PackErrors:    c.packErrors.Load(),
		PacksInFlight: c.inFlight.Load(),
		Ticks:         c.ticks.Load(),
		Circles:       c.circles.Load(),
		PackTime:      time.Duration(c.packNanos.Load()),
		Renders:       c.renders.Load(),
		RenderErrors:  c.renderErrs.Load(),
		RenderTime:    time.Duration(c.renderNanos.Load()),
		CacheHits:     c.cacheHits.Load(),
		CacheMisses:   c.cacheMisses.Load(),
		CacheBytes:    c.cacheBytes.Load(),
	}
}

// Register installs c as both the pack and the cache hooks.
func (c *Counters) Register() {
	SetPackHooks(c)
	SetCacheHooks(c)
}

// Ensure Counters implements both hook interfaces.
var (
	_ PackHooks  = (*Counters)(nil)
	_ CacheHooks = (*Counters)(nil)
)
