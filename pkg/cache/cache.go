// Package cache provides byte-oriented caching for rendered diagram
// artifacts and render-server responses.
//
// The [Cache] interface has three implementations:
//   - FileCache: file-based storage for CLI usage
//   - RedisCache: Redis-backed storage for multi-instance server deployments
//   - NullCache: no-op storage when caching is disabled
//
// The [Keyer] interface derives stable artifact keys from the things that
// determine a rendered artifact: the diagram text hash, the backend, the
// format, and the render server when one is involved. Use [NewScopedKeyer]
// to isolate key spaces when several deployments share one Redis instance.
package cache

import (
	"context"
	"time"
)

// Default TTLs per cached concern.
const (
	// TTLHTTP bounds cached render-server responses.
	TTLHTTP = 24 * time.Hour

	// TTLArtifact bounds rendered diagram artifacts. Artifacts are keyed by
	// the hash of the diagram text, so a long TTL is safe: stale entries can
	// only be reached by regenerating identical text.
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache stores opaque byte values with optional expiration.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero or less stores without expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys for rendered artifacts.
type Keyer interface {
	// ArtifactKey generates a key for an artifact rendered from the diagram
	// text with the given hash.
	ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts captures everything besides the diagram text that changes
// a rendered artifact.
type ArtifactKeyOpts struct {
	// Format is the output format, e.g. "svg".
	Format string

	// Renderer identifies the rendering backend, e.g. "plantuml" or
	// "graphviz".
	Renderer string

	// Server is the render server base URL when the backend uses one.
	// Different servers may produce different output for the same text.
	Server string
}

// DefaultKeyer is the standard Keyer. Artifact keys carry a full SHA-256
// hash of their components.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// ArtifactKey generates a key for rendered artifact caching.
func (k *DefaultKeyer) ArtifactKey(diagramHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", diagramHash, opts.Format, opts.Renderer, opts.Server)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
