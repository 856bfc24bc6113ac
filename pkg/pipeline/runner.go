package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/circlepack/pkg/cache"
	"github.com/matzehuels/circlepack/pkg/errors"
	"github.com/matzehuels/circlepack/pkg/observability"
	"github.com/matzehuels/circlepack/pkg/pack"
	"github.com/matzehuels/circlepack/pkg/scene"
)

// TickFunc observes a packing after each tick. It runs on the packing
// goroutine and must not retain f.
type TickFunc func(tick int, f *pack.Field, res pack.TickResult)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs pack then render with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{}

	packStart := time.Now()
	s, packHit, err := r.PackWithCacheInfo(ctx, opts, opts.OnTick)
	if err != nil {
		return nil, err
	}
	result.Scene = s
	result.SceneHash = SceneHash(s)
	result.CacheInfo.PackHit = packHit
	result.Stats = Stats{
		Circles:  len(s.Circles),
		Contacts: len(s.Contacts),
		Ticks:    s.Ticks,
		Coverage: s.Coverage(),
		PackTime: time.Since(packStart),
	}

	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", renderHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// PackWithCacheInfo returns the scene for opts, packing it if it is not
// cached, and reports whether it came from the cache. onTick is only called
// when the packing actually runs.
func (r *Runner) PackWithCacheInfo(ctx context.Context, opts Options, onTick TickFunc) (*scene.Scene, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.ValidateForPack(); err != nil {
		return nil, false, err
	}

	cfgData, err := json.Marshal(opts.Config)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	cacheKey := r.Keyer.SceneKey(cache.Hash(cfgData), opts.Seed)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if s, err := scene.Unmarshal(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "scene")
				opts.Logger.Info("loaded cached packing", "circles", len(s.Circles), "ticks", s.Ticks)
				return s, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "scene")
	}

	s, err := Pack(ctx, opts, onTick)
	if err != nil {
		return nil, false, err
	}

	if data, err := scene.Marshal(s); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLScene); err == nil {
			observability.Cache().OnCacheSet(ctx, "scene", len(data))
		} else {
			opts.Logger.Warn("cache write failed", "kind", "scene", "error", err)
		}
	}
	return s, false, nil
}

// Pack is a convenience wrapper that calls PackWithCacheInfo and discards
// the cache hit info.
func (r *Runner) Pack(ctx context.Context, opts Options, onTick TickFunc) (*scene.Scene, error) {
	s, _, err := r.PackWithCacheInfo(ctx, opts, onTick)
	return s, err
}

// RenderWithCacheInfo renders every requested format of s, reusing cached
// artifacts, and reports whether all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	opts.SetDefaults()
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	sceneHash := SceneHash(s)
	artifacts := make(map[string][]byte, len(opts.Formats))
	var missing []string

	for _, format := range opts.Formats {
		if !cacheable(format) {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
		missing = append(missing, format)
	}

	if len(missing) == 0 {
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, s, opts, missing)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !cacheable(format) {
			continue
		}
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and
// discards the cache hit info.
func (r *Runner) Render(ctx context.Context, s *scene.Scene, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, s, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// JSON embeds the scene ID, so it is always rendered fresh.
func cacheable(format string) bool {
	return format != FormatJSON
}

// SceneHash hashes the geometry of s: size, border, circles and contacts.
// Two runs that pack identically hash identically regardless of ID or time.
func SceneHash(s *scene.Scene) string {
	data, _ := json.Marshal(struct {
		Size     float64         `json:"size"`
		Border   float64         `json:"border"`
		Circles  []scene.Circle  `json:"circles"`
		Contacts []scene.Contact `json:"contacts"`
	}{s.Size, s.Border, s.Circles, s.Contacts})
	return cache.Hash(data)
}
