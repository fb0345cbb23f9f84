// Package cache stores rendered diagram artifacts.
//
// Rendering a script is deterministic, so artifacts are keyed by a hash of
// the script plus the render options and can be shared between the CLI,
// the watch loop and the server.
//
// Three backends are provided:
//
//   - [NullCache]: never stores anything (caching disabled)
//   - [FileCache]: JSON envelopes on disk, for CLI usage
//   - [RedisCache]: a shared Redis instance, for the server
//
// Keys are produced by a [Keyer]; [ScopedKeyer] prefixes them so several
// tenants can share one backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether it was found. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default lifetimes.
const (
	// TTLArtifact applies to rendered PNG/SVG/DOT output.
	TTLArtifact = 7 * 24 * time.Hour
	// TTLLayout applies to JSON layout snapshots.
	TTLLayout = 7 * 24 * time.Hour
)
