package plantuml

import "testing"

func TestWrapStripRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"single declaration", "package \"core\" {}\n"},
		{"declarations and edges", "package \"a\" {}\npackage \"b\" {}\n\n\"a\" --> \"b\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := Wrap(tt.body)

			if got := Strip(wrapped); got != tt.body {
				t.Errorf("Strip(Wrap(body)) = %q, want %q", got, tt.body)
			}
			if got := Wrap(Strip(wrapped)); got != wrapped {
				t.Errorf("Wrap(Strip(d)) = %q, want %q", got, wrapped)
			}
		})
	}
}

func TestWrapUsesFixedBoilerplate(t *testing.T) {
	got := Wrap("body\n")
	want := "@startuml\n skinparam componentStyle uml2\n\nbody\n@enduml\n"
	if got != want {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
}

func TestDiagramKey(t *testing.T) {
	if got := DiagramKey("inv", TypeModules); got != "inv_plantUML_modules.txt" {
		t.Errorf("DiagramKey() = %q, want inv_plantUML_modules.txt", got)
	}
	if got := DiagramKey("pay", TypeComponents); got != "pay_plantUML_components.txt" {
		t.Errorf("DiagramKey() = %q, want pay_plantUML_components.txt", got)
	}
}

func TestSplitKey(t *testing.T) {
	tests := []struct {
		key      string
		wantName string
		wantExt  string
	}{
		{"all_modules.txt", "all_modules", "txt"},
		{"inv_plantUML_components.txt", "inv_plantUML_components", "txt"},
		{"systems.txt", "systems", "txt"},
		{"noext", "noext", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			name, ext := SplitKey(tt.key)
			if name != tt.wantName || ext != tt.wantExt {
				t.Errorf("SplitKey(%q) = (%q, %q), want (%q, %q)", tt.key, name, ext, tt.wantName, tt.wantExt)
			}
		})
	}
}
