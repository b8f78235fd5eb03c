package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewFileWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")

	w, err := NewFileWriter(dir)
	if err != nil {
		t.Fatalf("NewFileWriter() error = %v", err)
	}
	defer w.Close()

	if w.Filename != filepath.Join(dir, FileName) {
		t.Errorf("Expected log file %s, got %s", filepath.Join(dir, FileName), w.Filename)
	}
	if _, err := w.Write([]byte("hello\n")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if _, err := os.Stat(w.Filename); err != nil {
		t.Errorf("Expected log file to exist: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, ".write-test")); !os.IsNotExist(err) {
		t.Errorf("Expected write probe to be removed")
	}
}

func TestNewFileWriter_PathIsAFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileWriter(file); err == nil {
		t.Error("Expected an error when the log directory is a regular file")
	}
}
