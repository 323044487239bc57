package plantuml

import (
	"testing"

	"github.com/archmap/archmap/pkg/metadata"
)

func TestBuildModules(t *testing.T) {
	projects := []metadata.Project{
		{
			Tag:  "a",
			Name: "service-a",
			Modules: []metadata.Module{
				{Tag: "m1", Name: "Module One"},
				{Tag: "m2", Name: "Module Two"},
			},
			ModuleDependencies: map[string][]string{
				"m1": {"m2"},
				"m2": {},
			},
		},
		{
			Tag:  "b",
			Name: "service-b",
			// no module dependency data collected
		},
	}

	out := BuildModules(projects, Options{})

	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2 (unit a and all_modules): %v", len(out), keys(out))
	}
	if _, ok := out["b_plantUML_modules.txt"]; ok {
		t.Error("unit without dependency data must not produce a diagram")
	}

	wantUnit := Begin +
		"package \"Module One\" {}\n" +
		"package \"Module Two\" {}\n" +
		"\n" +
		"\"Module One\" --> \"Module Two\"\n" +
		End
	if got := out["a_plantUML_modules.txt"]; got != wantUnit {
		t.Errorf("unit diagram = %q, want %q", got, wantUnit)
	}

	wantAll := Begin +
		"package \"service: service-a\" { \n" +
		"package \"Module One\" {}\n" +
		"package \"Module Two\" {}\n" +
		"\n" +
		"\"Module One\" --> \"Module Two\"\n" +
		"}\n\n" +
		End
	if got := out[KeyAllModules]; got != wantAll {
		t.Errorf("all_modules = %q, want %q", got, wantAll)
	}
}

func TestBuildModulesEmptyDependencyData(t *testing.T) {
	projects := []metadata.Project{
		{Tag: "a", Name: "service-a", ModuleDependencies: map[string][]string{}},
	}

	out := BuildModules(projects, Options{})

	// Collected but empty data still yields a diagram: wrapper around the
	// empty declaration/edge separator.
	want := Begin + "\n" + End
	if got := out["a_plantUML_modules.txt"]; got != want {
		t.Errorf("empty-data diagram = %q, want %q", got, want)
	}
}

func TestBuildModulesFallsBackToTag(t *testing.T) {
	projects := []metadata.Project{
		{
			Tag:                "a",
			Name:               "service-a",
			ModuleDependencies: map[string][]string{"m1": {"m9"}},
			Modules:            []metadata.Module{{Tag: "M1", Name: "Named Module"}},
		},
	}

	out := BuildModules(projects, Options{})

	// m1 resolves case-insensitively to its display name, m9 is unregistered
	// and falls back to its tag.
	want := Begin +
		"package \"Named Module\" {}\n" +
		"\n" +
		"\"Named Module\" --> \"m9\"\n" +
		End
	if got := out["a_plantUML_modules.txt"]; got != want {
		t.Errorf("diagram = %q, want %q", got, want)
	}
}

func TestBuildModulesNoProjects(t *testing.T) {
	out := BuildModules(nil, Options{})

	if len(out) != 1 {
		t.Fatalf("got %d entries, want just all_modules", len(out))
	}
	if got := out[KeyAllModules]; got != Begin+End {
		t.Errorf("all_modules = %q, want bare wrapper", got)
	}
}

func TestBuildModulesDeterministic(t *testing.T) {
	projects := []metadata.Project{
		{
			Tag:  "a",
			Name: "service-a",
			ModuleDependencies: map[string][]string{
				"m3": {"m1"},
				"m1": {"m2", "m3"},
				"m2": {},
			},
		},
	}

	first := BuildModules(projects, Options{})["a_plantUML_modules.txt"]
	for i := 0; i < 5; i++ {
		if got := BuildModules(projects, Options{})["a_plantUML_modules.txt"]; got != first {
			t.Fatalf("run %d produced different output:\n%q\nvs\n%q", i, got, first)
		}
	}

	// Sorted key order: declarations m1, m2, m3.
	want := Begin +
		"package \"m1\" {}\n" +
		"package \"m2\" {}\n" +
		"package \"m3\" {}\n" +
		"\n" +
		"\"m1\" --> \"m2\"\n" +
		"\"m1\" --> \"m3\"\n" +
		"\"m3\" --> \"m1\"\n" +
		End
	if first != want {
		t.Errorf("diagram = %q, want %q", first, want)
	}
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
