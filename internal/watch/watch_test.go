package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherSignalsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layouts.toml")
	if err := os.WriteFile(path, []byte("version = \"1.0.0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	// Writes to siblings are ignored.
	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("version = \"1.1.0\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case _, ok := <-w.Changes():
		if !ok {
			t.Fatal("Changes closed before Close")
		}
	case err := <-w.Errors():
		t.Fatalf("watch error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no change signalled")
	}
}

func TestWatcherClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layouts.toml")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	w, err := New(path)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-w.Changes():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Changes not closed after Close")
		}
	}
}

func TestNewMissingDirectory(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "absent", "layouts.toml")); err == nil {
		t.Error("New on missing directory succeeded")
	}
}
