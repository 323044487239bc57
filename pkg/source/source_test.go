package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFileLoaderLoadProjects(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", ProjectFile),
		`{"tag":"a","projectName":"Service A","system":"Shop","subsystem":"Checkout","moduleDependencies":{"m1":["m2"]}}`)
	writeFile(t, filepath.Join(root, "b", "nested", ProjectFile),
		`{"tag":"b","projectName":"Service B","system":"Shop","subsystem":"Billing"}`)
	// API metadata must not be picked up by the project walk.
	writeFile(t, filepath.Join(root, "a", APIFile), `{"serviceName":"Service A"}`)

	projects, err := NewFileLoader(root).LoadProjects(context.Background())
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}

	// Lexical walk order: a/ before b/.
	if projects[0].Tag != "a" || projects[1].Tag != "b" {
		t.Errorf("got order %q, %q; want a, b", projects[0].Tag, projects[1].Tag)
	}
	if projects[0].Name != "Service A" {
		t.Errorf("got name %q, want %q", projects[0].Name, "Service A")
	}
	if got := projects[0].ModuleDependencies["m1"]; len(got) != 1 || got[0] != "m2" {
		t.Errorf("got deps %v, want [m2]", got)
	}

	// Absent moduleDependencies stays nil so the builders know data was
	// never collected.
	if projects[1].ModuleDependencies != nil {
		t.Error("absent moduleDependencies should decode as nil")
	}
}

func TestFileLoaderLoadAPIs(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "svc", APIFile),
		`{"serviceName":"Orders","provided":[{"packageName":"com.shop.orders","method":"GET","path":"/orders"}],"consumed":[{"serviceName":"Billing","packageName":"com.shop.orders.client","method":"POST","path":"/invoices"}]}`)
	writeFile(t, filepath.Join(root, "svc", ProjectFile), `{"tag":"orders"}`)

	apis, err := NewFileLoader(root).LoadAPIs(context.Background())
	if err != nil {
		t.Fatalf("LoadAPIs: %v", err)
	}
	if len(apis) != 1 {
		t.Fatalf("got %d APIs, want 1", len(apis))
	}
	api := apis[0]
	if api.Service != "Orders" {
		t.Errorf("got service %q, want Orders", api.Service)
	}
	if len(api.Provided) != 1 || api.Provided[0].Path != "/orders" {
		t.Errorf("unexpected provided endpoints: %+v", api.Provided)
	}
	if len(api.Consumed) != 1 || api.Consumed[0].Service != "Billing" {
		t.Errorf("unexpected consumed endpoints: %+v", api.Consumed)
	}
}

func TestFileLoaderMultipleRoots(t *testing.T) {
	root1 := t.TempDir()
	root2 := t.TempDir()
	writeFile(t, filepath.Join(root1, ProjectFile), `{"tag":"one"}`)
	writeFile(t, filepath.Join(root2, ProjectFile), `{"tag":"two"}`)

	projects, err := NewFileLoader(root1, root2).LoadProjects(context.Background())
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("got %d projects, want 2", len(projects))
	}
	// Roots contribute in the order they were configured.
	if projects[0].Tag != "one" || projects[1].Tag != "two" {
		t.Errorf("got order %q, %q; want one, two", projects[0].Tag, projects[1].Tag)
	}
}

func TestFileLoaderMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "absent")
	_, err := NewFileLoader(missing).LoadProjects(context.Background())
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error should name the root: %v", err)
	}
}

func TestFileLoaderMalformedJSON(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ProjectFile)
	writeFile(t, path, `{"tag": `)

	_, err := NewFileLoader(root).LoadProjects(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestFileLoaderCancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ProjectFile), `{"tag":"a"}`)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileLoader(root).LoadProjects(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestReadProject(t *testing.T) {
	p, err := ReadProject(strings.NewReader(
		`{"tag":"a","projectName":"A","moduleDependencies":{},"modules":[{"tag":"m1","moduleName":"Module One"}]}`))
	if err != nil {
		t.Fatalf("ReadProject: %v", err)
	}
	if p.Tag != "a" {
		t.Errorf("got tag %q, want a", p.Tag)
	}
	// Present-but-empty dependency data decodes as a non-nil empty map.
	if p.ModuleDependencies == nil {
		t.Error("empty moduleDependencies should decode as non-nil")
	}
	if len(p.Modules) != 1 || p.Modules[0].Name != "Module One" {
		t.Errorf("unexpected modules: %+v", p.Modules)
	}
}

func TestStaticLoader(t *testing.T) {
	loader := &StaticLoader{}
	projects, err := loader.LoadProjects(context.Background())
	if err != nil {
		t.Fatalf("LoadProjects: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("empty loader should return no projects, got %d", len(projects))
	}
	apis, err := loader.LoadAPIs(context.Background())
	if err != nil {
		t.Fatalf("LoadAPIs: %v", err)
	}
	if len(apis) != 0 {
		t.Errorf("empty loader should return no APIs, got %d", len(apis))
	}
}
