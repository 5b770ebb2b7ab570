// Package cache stores rendered code rasters and output artifacts.
//
// A build rasterizes one code per record. Rasterization is cheap per label but
// dominates large sheets, and payloads rarely change between runs, so the
// pipeline looks each raster up by a key derived from the payload and the
// code options before encoding it.
//
// # Backends
//
//   - [NullCache] stores nothing (caching disabled).
//   - [FileCache] keeps JSON entries under a directory, for the CLI.
//   - [RedisCache] shares entries between machines through Redis.
//
// # Keys
//
// A [Keyer] derives keys; [ScopedKeyer] prefixes them so several label
// collections can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Entry lifetimes.
const (
	TTLRaster   = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)
