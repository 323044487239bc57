package render

import (
	"context"

	"github.com/archmap/archmap/pkg/cache"
	"github.com/archmap/archmap/pkg/observability"
)

// Cached wraps a Renderer with artifact caching. The cache key is derived
// from the diagram text hash plus the backend name, format, and render
// server when the backend uses one, so identical text rendered the same way
// is fetched once.
type Cached struct {
	inner Renderer
	cache cache.Cache
	keyer cache.Keyer

	// Refresh skips cache reads so every render goes through the backend.
	// Fresh artifacts are still written back to the cache.
	Refresh bool
}

// NewCached creates a caching renderer. A nil cache disables caching and a
// nil keyer selects the default key scheme.
func NewCached(inner Renderer, c cache.Cache, keyer cache.Keyer) *Cached {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Cached{inner: inner, cache: c, keyer: keyer}
}

// Name reports the wrapped backend's name.
func (c *Cached) Name() string { return c.inner.Name() }

// Format reports the wrapped backend's format.
func (c *Cached) Format() string { return c.inner.Format() }

// Render returns the cached artifact for text when present, otherwise
// renders through the wrapped backend and stores the result. Cache write
// failures are ignored; the artifact was already produced.
func (c *Cached) Render(ctx context.Context, text string) ([]byte, error) {
	opts := cache.ArtifactKeyOpts{
		Format:   c.inner.Format(),
		Renderer: c.inner.Name(),
	}
	// Different servers may produce different artifacts for the same text.
	if s, ok := c.inner.(interface{ Server() string }); ok {
		opts.Server = s.Server()
	}
	key := c.keyer.ArtifactKey(cache.Hash([]byte(text)), opts)

	if !c.Refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := c.inner.Render(ctx, text)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, nil
}

// Ensure Cached implements Renderer.
var _ Renderer = (*Cached)(nil)
