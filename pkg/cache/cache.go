// Package cache provides the byte-oriented cache used by the layout
// pipeline and the HTTP API.
//
// Three backends are available:
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: stores nothing (caching disabled)
//
// Keys are built by a [Keyer] so that callers never assemble key strings by
// hand; [ScopedKeyer] prefixes every key for tenant isolation.
package cache

import (
	"context"
	"time"
)

// Default time-to-live per entry kind.
const (
	TTLLayout    = 7 * 24 * time.Hour
	TTLPartition = 7 * 24 * time.Hour
	TTLArtifact  = 30 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys.
//
// Get reports a miss as (nil, false, nil); errors are reserved for backend
// failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
