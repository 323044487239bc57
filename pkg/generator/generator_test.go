package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/archmap/archmap/pkg/cache"
	"github.com/archmap/archmap/pkg/metadata"
	"github.com/archmap/archmap/pkg/plantuml"
	"github.com/archmap/archmap/pkg/source"
)

func testProjects() []metadata.Project {
	return []metadata.Project{
		{
			Tag:    "inv",
			Name:   "Inventory",
			System: "Shop",
			ModuleDependencies: map[string][]string{
				"inv-api":  {"inv-core"},
				"inv-core": {},
			},
			Modules: []metadata.Module{
				{Tag: "inv-api", Name: "inventory-api"},
				{Tag: "inv-core", Name: "inventory-core"},
			},
			Components: []metadata.ModuleComponents{
				{Module: "inventory-api", Components: []metadata.Component{
					{Package: "com.shop.inv.api", DependsOn: []string{"com.shop.inv.core"}},
				}},
				{Module: "inventory-core", Components: []metadata.Component{
					{Package: "com.shop.inv.core"},
				}},
			},
		},
		{
			Tag:       "bil",
			Name:      "Billing",
			System:    "Shop",
			Subsystem: "Finance",
			ModuleDependencies: map[string][]string{
				"bil-api": {},
			},
			Modules: []metadata.Module{
				{Tag: "bil-api", Name: "billing-api"},
			},
			Components: []metadata.ModuleComponents{
				{Module: "billing-api", Components: []metadata.Component{
					{Package: "com.shop.bil.api"},
				}},
			},
		},
	}
}

func testAPIs() []metadata.API {
	return []metadata.API{
		{
			Service: "Inventory",
			Consumed: []metadata.Endpoint{
				{Service: "Billing", Package: "com.shop.inv.api", Method: "POST", Path: "/invoices"},
			},
		},
		{
			Service: "Billing",
			Provided: []metadata.Endpoint{
				{Package: "com.shop.bil.api", Method: "POST", Path: "/invoices"},
			},
		},
	}
}

func testLoader() *source.StaticLoader {
	return &source.StaticLoader{Projects: testProjects(), APIs: testAPIs()}
}

type stubRenderer struct {
	calls int
}

func (r *stubRenderer) Name() string   { return "stub" }
func (r *stubRenderer) Format() string { return "svg" }

func (r *stubRenderer) Render(_ context.Context, text string) ([]byte, error) {
	r.calls++
	return []byte("img:" + text), nil
}

type failingLoader struct {
	err error
}

func (l *failingLoader) LoadProjects(context.Context) ([]metadata.Project, error) {
	return nil, l.err
}

func (l *failingLoader) LoadAPIs(context.Context) ([]metadata.API, error) {
	return nil, l.err
}

func TestRunInMemory(t *testing.T) {
	gen := NewGenerator(testLoader(), nil, nil, nil)

	res, err := gen.Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	wantKeys := []string{
		"all_components.txt",
		"all_modules.txt",
		"bil_plantUML_components.txt",
		"bil_plantUML_modules.txt",
		"inv_plantUML_components.txt",
		"inv_plantUML_modules.txt",
		"services.txt",
		"systems.txt",
	}
	var gotKeys []string
	for key := range res.Diagrams {
		gotKeys = append(gotKeys, key)
	}
	slices.Sort(gotKeys)
	if !reflect.DeepEqual(gotKeys, wantKeys) {
		t.Errorf("diagram keys = %v, want %v", gotKeys, wantKeys)
	}

	for key, text := range res.Diagrams {
		if !strings.HasPrefix(text, plantuml.Begin) || !strings.HasSuffix(text, plantuml.End) {
			t.Errorf("diagram %s is not wrapped in the preamble", key)
		}
	}
	if !strings.Contains(res.Diagrams[plantuml.KeyServices], `"Inventory"-->"Billing" : "POST : /invoices"`) {
		t.Errorf("services diagram missing call edge:\n%s", res.Diagrams[plantuml.KeyServices])
	}

	if res.Files != nil {
		t.Errorf("Files = %v, want none in in-memory mode", res.Files)
	}
	if res.Artifacts != nil {
		t.Errorf("Artifacts = %v, want none without visualize", res.Artifacts)
	}

	if res.Stats.Projects != 2 || res.Stats.APIs != 2 {
		t.Errorf("Stats counts = %d projects, %d apis, want 2 and 2", res.Stats.Projects, res.Stats.APIs)
	}
	if res.Stats.CallDependencies != 1 {
		t.Errorf("Stats.CallDependencies = %d, want 1", res.Stats.CallDependencies)
	}
	if res.Stats.Diagrams != len(res.Diagrams) {
		t.Errorf("Stats.Diagrams = %d, want %d", res.Stats.Diagrams, len(res.Diagrams))
	}
}

func TestRunFileModeMatchesInMemory(t *testing.T) {
	ctx := context.Background()

	memRes, err := NewGenerator(testLoader(), nil, nil, nil).Run(ctx, Options{})
	if err != nil {
		t.Fatalf("in-memory Run() error = %v", err)
	}

	dir := t.TempDir()
	fileRes, err := NewGenerator(testLoader(), nil, nil, nil).Run(ctx, Options{TargetDir: dir})
	if err != nil {
		t.Fatalf("file mode Run() error = %v", err)
	}

	if !reflect.DeepEqual(memRes.Diagrams, fileRes.Diagrams) {
		t.Error("diagram text differs between in-memory and file mode")
	}
	if len(fileRes.Files) != len(fileRes.Diagrams) {
		t.Fatalf("wrote %d files, want %d", len(fileRes.Files), len(fileRes.Diagrams))
	}

	for _, f := range fileRes.Files {
		if filepath.Base(filepath.Dir(f)) != "txt" {
			t.Errorf("file %s not under txt/", f)
		}
		data, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("ReadFile(%s) error = %v", f, err)
		}
		if got := string(data); got != fileRes.Diagrams[filepath.Base(f)] {
			t.Errorf("file %s content does not match diagram text", f)
		}
	}
}

func TestRunVisualizeInMemory(t *testing.T) {
	r := &stubRenderer{}
	gen := NewGenerator(testLoader(), r, nil, nil)

	res, err := gen.Run(context.Background(), Options{Visualize: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(res.Artifacts) != len(res.Diagrams) {
		t.Fatalf("got %d artifacts, want %d", len(res.Artifacts), len(res.Diagrams))
	}
	if res.Files != nil {
		t.Errorf("Files = %v, want none in in-memory mode", res.Files)
	}
	if got := string(res.Artifacts["services.svg"]); got != "img:"+res.Diagrams[plantuml.KeyServices] {
		t.Errorf("services.svg = %q, want rendered services diagram", got)
	}
	if r.calls != len(res.Diagrams) {
		t.Errorf("renderer ran %d times, want %d", r.calls, len(res.Diagrams))
	}
}

func TestRunVisualizeFileMode(t *testing.T) {
	dir := t.TempDir()
	r := &stubRenderer{}
	gen := NewGenerator(testLoader(), r, nil, nil)

	res, err := gen.Run(context.Background(), Options{TargetDir: dir, Visualize: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(res.Files) != 2*len(res.Diagrams) {
		t.Fatalf("got %d files, want %d text plus %d rendered", len(res.Files), len(res.Diagrams), len(res.Diagrams))
	}
	if res.Artifacts != nil {
		t.Errorf("Artifacts = %v, want none in file mode", res.Artifacts)
	}
	if _, err := os.Stat(filepath.Join(dir, "svg", "services.svg")); err != nil {
		t.Errorf("rendered artifact missing: %v", err)
	}
}

func TestRunArtifactCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := &stubRenderer{}
	gen := NewGenerator(testLoader(), r, c, nil)
	ctx := context.Background()

	first, err := gen.Run(ctx, Options{Visualize: true})
	if err != nil {
		t.Fatalf("first Run() error = %v", err)
	}
	if r.calls != len(first.Diagrams) {
		t.Fatalf("first run rendered %d diagrams, want %d", r.calls, len(first.Diagrams))
	}

	second, err := gen.Run(ctx, Options{Visualize: true})
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if r.calls != len(first.Diagrams) {
		t.Errorf("second run hit the renderer %d extra times, want all artifacts cached", r.calls-len(first.Diagrams))
	}
	if !reflect.DeepEqual(first.Artifacts, second.Artifacts) {
		t.Error("cached artifacts differ from rendered ones")
	}

	if _, err := gen.Run(ctx, Options{Visualize: true, Refresh: true}); err != nil {
		t.Fatalf("refresh Run() error = %v", err)
	}
	if r.calls != 2*len(first.Diagrams) {
		t.Errorf("refresh run rendered %d diagrams total, want %d", r.calls, 2*len(first.Diagrams))
	}
}

func TestRunSourceRootsDefaultLoader(t *testing.T) {
	dir := t.TempDir()
	project := `{"tag":"pay","projectName":"Payments","system":"Shop","moduleDependencies":{}}`
	if err := os.MkdirAll(filepath.Join(dir, "pay"), 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "pay", source.ProjectFile)
	if err := os.WriteFile(path, []byte(project), 0o644); err != nil {
		t.Fatal(err)
	}

	gen := NewGenerator(nil, nil, nil, nil)
	res, err := gen.Run(context.Background(), Options{SourceRoots: []string{dir}})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stats.Projects != 1 {
		t.Fatalf("Stats.Projects = %d, want 1", res.Stats.Projects)
	}
	if _, ok := res.Diagrams["pay_plantUML_modules.txt"]; !ok {
		t.Error("missing module diagram for loaded project")
	}
}

func TestRunOptionErrors(t *testing.T) {
	ctx := context.Background()

	if _, err := NewGenerator(nil, nil, nil, nil).Run(ctx, Options{}); err == nil {
		t.Error("expected error without source roots or loader")
	}

	gen := NewGenerator(testLoader(), nil, nil, nil)
	if _, err := gen.Run(ctx, Options{Visualize: true}); err == nil {
		t.Error("expected error for visualize without renderer")
	}
}

func TestRunLoadError(t *testing.T) {
	gen := NewGenerator(&failingLoader{err: errors.New("disk gone")}, nil, nil, nil)

	_, err := gen.Run(context.Background(), Options{})
	if err == nil {
		t.Fatal("expected error from failing loader")
	}
	if !strings.Contains(err.Error(), "load projects") {
		t.Errorf("error = %v, want load stage wrapping", err)
	}
}
