// Package plantuml renders diagram text through a PlantUML server.
//
// The server API takes the diagram text compressed and encoded into the
// URL path, so rendering is a single GET per diagram. The client retries
// transient failures and can cache raw responses on disk for repeated runs
// over unchanged metadata.
package plantuml

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/archmap/archmap/pkg/errors"
	"github.com/archmap/archmap/pkg/httputil"
	"github.com/archmap/archmap/pkg/observability"
)

const (
	// DefaultServer is the public PlantUML rendering service.
	DefaultServer = "https://www.plantuml.com/plantuml"

	// DefaultFormat is the artifact format requested from the server.
	DefaultFormat = "svg"
)

// Options configure the client.
type Options struct {
	// Server is the PlantUML server base URL. Empty selects DefaultServer.
	Server string

	// Format is the artifact format to request, e.g. "svg" or "png".
	// Empty selects DefaultFormat.
	Format string

	// Cache holds raw server responses. nil disables response caching.
	Cache *httputil.Cache

	// HTTPClient overrides the HTTP client, mostly for tests.
	// nil selects a client with a 30-second timeout.
	HTTPClient *http.Client
}

// Client fetches rendered diagrams from a PlantUML server.
type Client struct {
	http   *http.Client
	cache  *httputil.Cache
	server string
	format string
}

// NewClient creates a render client with the given options.
func NewClient(opts Options) (*Client, error) {
	if opts.Server == "" {
		opts.Server = DefaultServer
	}
	if err := apperrors.ValidateURL(opts.Server); err != nil {
		return nil, err
	}
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		http:   httpClient,
		cache:  opts.Cache,
		server: strings.TrimSuffix(opts.Server, "/"),
		format: opts.Format,
	}, nil
}

// Name identifies the backend.
func (c *Client) Name() string { return "plantuml" }

// Format reports the artifact format requested from the server.
func (c *Client) Format() string { return c.format }

// Server returns the configured server base URL.
func (c *Client) Server() string { return c.server }

// Render encodes text into a server URL and fetches the artifact.
// Transient failures (network errors, 5xx, 429) are retried with backoff.
func (c *Client) Render(ctx context.Context, text string) ([]byte, error) {
	encoded, err := Encode(text)
	if err != nil {
		return nil, err
	}

	// The response cache key carries the server, format, and raw text; the
	// cache hashes it.
	key := c.server + ":" + c.format + ":" + text
	if c.cache != nil {
		var data []byte
		if ok, _ := c.cache.Get(key, &data); ok {
			return data, nil
		}
	}

	url := c.server + "/" + c.format + "/" + encoded
	var data []byte
	err = httputil.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		data, fetchErr = c.fetch(ctx, url)
		return fetchErr
	})
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		_ = c.cache.Set(key, data)
	}
	return data, nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
		return nil, &httputil.RetryableError{
			Err: apperrors.Wrap(apperrors.ErrCodeNetwork, err, "fetch %s", req.URL.Host),
		}
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests:
		return &httputil.RetryableError{
			Err: apperrors.New(apperrors.ErrCodeRateLimited, "render server rate limited"),
		}
	case code >= 500:
		return &httputil.RetryableError{
			Err: apperrors.New(apperrors.ErrCodeRenderFailed, "render server returned status %d", code),
		}
	default:
		return apperrors.New(apperrors.ErrCodeRenderFailed, "render server returned status %d", code)
	}
}
