// Package cache provides pluggable caching for pipeline stages.
//
// Three backends are available: FileCache for CLI usage, RedisCache and
// MongoCache for server deployments, and NullCache to disable caching.
// Keys are generated by a Keyer so every backend sees the same keyspace.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Decoded networks and enumerated patterns are
// pure functions of their inputs, so long TTLs are safe; rendered
// artifacts are cheap to regenerate and expire sooner.
const (
	TTLNetwork  = 30 * 24 * time.Hour
	TTLPattern  = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage interface shared by all backends.
// Get reports a miss with (nil, false, nil); errors are reserved for
// backend failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
