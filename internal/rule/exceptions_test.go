package rule

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadExceptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exceptions.txt")
	content := "application/x-dropped # comment\n\n# full line comment\napplication/octet-stream\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	set, err := LoadExceptions(path)
	if err != nil {
		t.Fatalf("LoadExceptions: %v", err)
	}
	if !set.Contains("application/x-dropped") {
		t.Errorf("expected application/x-dropped to be present")
	}
	if !set.Contains("application/octet-stream") {
		t.Errorf("expected application/octet-stream to be present")
	}
	if set.Contains("application/pdf") {
		t.Errorf("did not expect application/pdf to be present")
	}
}

func TestLoadExceptionsMissingFile(t *testing.T) {
	if _, err := LoadExceptions(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Fatalf("expected an error for a missing exception file")
	}
}
