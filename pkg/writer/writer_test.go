package writer

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter()

	files, err := w.Write("@startuml\n@enduml\n", "a_plantUML_modules", "txt", dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("got %d files, want 1", len(files))
	}

	want := filepath.Join(dir, "txt", "a_plantUML_modules.txt")
	if files[0] != want {
		t.Errorf("got path %q, want %q", files[0], want)
	}

	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "@startuml\n@enduml\n" {
		t.Errorf("got content %q", data)
	}
}

func TestWriteEmptyExtension(t *testing.T) {
	dir := t.TempDir()
	files, err := NewFileWriter().Write("body", "noext", "", dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}

	// No trailing dot when the name carried no extension.
	want := filepath.Join(dir, "txt", "noext")
	if files[0] != want {
		t.Errorf("got path %q, want %q", files[0], want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestWriteCreatesMissingDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deeply", "nested", "target")
	files, err := NewFileWriter().Write("content", "systems", "txt", dir)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(files[0]); err != nil {
		t.Errorf("file not written: %v", err)
	}
}

func TestWriteOverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	w := NewFileWriter()

	if _, err := w.Write("old", "services", "txt", dir); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	files, err := w.Write("new", "services", "txt", dir)
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}

	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "new" {
		t.Errorf("got content %q, want new", data)
	}
}
