package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingBinaryIsFatal(t *testing.T) {
	l := New(filepath.Join(t.TempDir(), "nope.dll"), "", nil)
	_, err := l.Load()
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Load() error = %v, want ErrFileNotFound", err)
	}
}

func TestLoadGarbageBinaryFailsSymbolResolution(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-a-pe.dll")
	if err := os.WriteFile(path, []byte("not a PE image"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	l := New(path, "", nil)
	_, err := l.Load()
	if !errors.Is(err, ErrSymbolResolutionFailed) {
		t.Fatalf("Load() error = %v, want ErrSymbolResolutionFailed", err)
	}
}
