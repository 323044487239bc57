package plantuml

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "github.com/archmap/archmap/pkg/errors"
	"github.com/archmap/archmap/pkg/httputil"
)

func TestNewClientDefaults(t *testing.T) {
	c, err := NewClient(Options{})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Server() != DefaultServer {
		t.Errorf("got server %q, want %q", c.Server(), DefaultServer)
	}
	if c.Format() != DefaultFormat {
		t.Errorf("got format %q, want %q", c.Format(), DefaultFormat)
	}
	if c.Name() != "plantuml" {
		t.Errorf("got name %q, want plantuml", c.Name())
	}
}

func TestNewClientRejectsBadServer(t *testing.T) {
	if _, err := NewClient(Options{Server: "ftp://example.com"}); err == nil {
		t.Error("expected error for non-HTTP server URL")
	}
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	c, err := NewClient(Options{Server: "http://localhost:8080/"})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if c.Server() != "http://localhost:8080" {
		t.Errorf("got server %q, want trimmed", c.Server())
	}
}

func TestClientRender(t *testing.T) {
	const diagram = "@startuml\n skinparam componentStyle uml2\n\npackage \"Orders\" {}\n@enduml\n"

	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte("<svg>ok</svg>"))
	}))
	defer ts.Close()

	c, err := NewClient(Options{Server: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	data, err := c.Render(context.Background(), diagram)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(data) != "<svg>ok</svg>" {
		t.Errorf("got artifact %q", data)
	}

	// The URL path carries the encoded diagram; decoding it must recover
	// the exact text that was rendered.
	if !strings.HasPrefix(gotPath, "/svg/") {
		t.Fatalf("got path %q, want /svg/ prefix", gotPath)
	}
	decoded, err := Decode(strings.TrimPrefix(gotPath, "/svg/"))
	if err != nil {
		t.Fatalf("Decode of request path: %v", err)
	}
	if decoded != diagram {
		t.Errorf("server received %q, want %q", decoded, diagram)
	}
}

func TestClientRenderUsesResponseCache(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte("<svg/>"))
	}))
	defer ts.Close()

	respCache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache: %v", err)
	}
	c, err := NewClient(Options{Server: ts.URL, Cache: respCache})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	for range 2 {
		if _, err := c.Render(context.Background(), "@startuml\n@enduml\n"); err != nil {
			t.Fatalf("Render: %v", err)
		}
	}
	if requests != 1 {
		t.Errorf("identical text should hit the server once, got %d requests", requests)
	}
}

func TestClientRenderRetriesServerErrors(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("<svg/>"))
	}))
	defer ts.Close()

	c, err := NewClient(Options{Server: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	data, err := c.Render(context.Background(), "@startuml\n@enduml\n")
	if err != nil {
		t.Fatalf("Render should succeed after retry: %v", err)
	}
	if string(data) != "<svg/>" {
		t.Errorf("got artifact %q", data)
	}
	if requests != 2 {
		t.Errorf("got %d requests, want 2", requests)
	}
}

func TestClientRenderClientErrorNotRetried(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	c, err := NewClient(Options{Server: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = c.Render(context.Background(), "@startuml\n@enduml\n")
	if err == nil {
		t.Fatal("expected error for 400 response")
	}
	if apperrors.GetCode(err) != apperrors.ErrCodeRenderFailed {
		t.Errorf("got code %s, want %s", apperrors.GetCode(err), apperrors.ErrCodeRenderFailed)
	}
	if requests != 1 {
		t.Errorf("client errors should not be retried, got %d requests", requests)
	}
}
