// Package httputil provides HTTP utilities for render server clients.
//
// # Overview
//
// This package provides infrastructure used by clients that talk to remote
// rendering services such as a PlantUML server:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/archmap/)
// with configurable TTL. Rendering a diagram is a full server roundtrip,
// so caching dramatically speeds up repeated runs over unchanged metadata
// and reduces load on shared render servers.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, _ := cache.Get("plantuml:"+hash, &svg)  // Check cache
//	if !ok {
//	    svg = renderOnServer()
//	    cache.Set("plantuml:"+hash, svg)        // Store for later
//	}
//
// Cache keys should be namespaced by backend to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// It uses exponential backoff to avoid hammering a struggling server:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchSVG(url)
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/archmap/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `archmap cache clear` or by deleting the
// cache directory.
package httputil
