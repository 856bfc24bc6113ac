// Package cache provides pluggable byte caches for packed scenes and
// rendered artifacts.
//
// The pipeline stores two kinds of entries: scenes keyed by the packing
// configuration and seed, and artifacts keyed by the scene content and the
// render options. Both are opaque bytes to the cache.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a local directory (CLI default)
//   - [RedisCache]: a shared Redis instance (the serve command)
//   - [NullCache]: stores nothing (--no-cache)
//
// # Keys
//
// Keys are produced by a [Keyer] so that callers never hand-assemble them.
// [ScopedKeyer] adds a namespace prefix in front of another keyer.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiration.
//
// Get reports a miss with hit=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs per entry kind. A zero TTL never expires.
const (
	// TTLScene keeps packed scenes for a week. A scene is a pure function of
	// its configuration and seed, so it never goes stale.
	TTLScene = 7 * 24 * time.Hour

	// TTLArtifact keeps rendered outputs for a day.
	TTLArtifact = 24 * time.Hour
)
