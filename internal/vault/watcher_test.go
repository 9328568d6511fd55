package vault

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOp_Has(t *testing.T) {
	op := OpCreate | OpWrite

	if !op.Has(OpCreate) || !op.Has(OpWrite) {
		t.Error("combined op missing component")
	}
	if op.Has(OpRemove) {
		t.Error("combined op reports absent component")
	}
}

func TestOp_String(t *testing.T) {
	tests := []struct {
		op       Op
		expected string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
		{OpCreate | OpWrite, "CREATE|WRITE"},
		{OpWrite | OpRename, "WRITE|RENAME"},
		{Op(0), "NONE"},
	}

	for _, tt := range tests {
		if got := tt.op.String(); got != tt.expected {
			t.Errorf("Op(%d).String() = %q, want %q", tt.op, got, tt.expected)
		}
	}
}

func TestFSWatcher_WatchErrors(t *testing.T) {
	root := t.TempDir()
	w, err := NewFSWatcher(root)
	if err != nil {
		t.Fatalf("NewFSWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.Watch(filepath.Join(root, "missing")); !errors.Is(err, ErrPathNotExist) {
		t.Errorf("expected ErrPathNotExist, got %v", err)
	}

	if err := w.Watch(root); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	if err := w.Watch(root); !errors.Is(err, ErrAlreadyWatching) {
		t.Errorf("expected ErrAlreadyWatching, got %v", err)
	}
	if !w.IsWatching(root) {
		t.Error("IsWatching should report the watched root")
	}

	if err := w.Unwatch(root); err != nil {
		t.Fatalf("Unwatch failed: %v", err)
	}
	if err := w.Unwatch(root); !errors.Is(err, ErrNotWatching) {
		t.Errorf("expected ErrNotWatching, got %v", err)
	}
}

func TestFSWatcher_WatchRecursiveSkipsIgnored(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"notes", "notes/sub", ".git", ".textdir"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir failed: %v", err)
		}
	}

	w, err := NewFSWatcher(root)
	if err != nil {
		t.Fatalf("NewFSWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.WatchRecursive(root); err != nil {
		t.Fatalf("WatchRecursive failed: %v", err)
	}

	if !w.IsWatching(filepath.Join(root, "notes", "sub")) {
		t.Error("subdirectory not watched")
	}
	if w.IsWatching(filepath.Join(root, ".git")) {
		t.Error(".git should be skipped")
	}
	if w.IsWatching(filepath.Join(root, ".textdir")) {
		t.Error("config directory should be skipped")
	}
}

func TestFSWatcher_ReceivesWriteEvent(t *testing.T) {
	root := t.TempDir()
	w, err := NewFSWatcher(root)
	if err != nil {
		t.Fatalf("NewFSWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.WatchRecursive(root); err != nil {
		t.Fatalf("WatchRecursive failed: %v", err)
	}

	target := filepath.Join(root, "a.md")
	if err := os.WriteFile(target, []byte("hello"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if ev.Path == target && (ev.Op.Has(OpCreate) || ev.Op.Has(OpWrite)) {
				return // got it
			}
		case <-deadline:
			t.Fatal("timeout waiting for filesystem event")
		}
	}
}

func TestFSWatcher_IgnoredFileProducesNoEvent(t *testing.T) {
	root := t.TempDir()
	ig := NewIgnore()
	ig.AddExtension("md")

	w, err := NewFSWatcher(root, WithIgnore(ig))
	if err != nil {
		t.Fatalf("NewFSWatcher failed: %v", err)
	}
	defer w.Close()

	if err := w.WatchRecursive(root); err != nil {
		t.Fatalf("WatchRecursive failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(root, "skip.png"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	marker := filepath.Join(root, "seen.md")
	if err := os.WriteFile(marker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// The marker write must arrive without the png ever showing up.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-w.Events():
			if filepath.Base(ev.Path) == "skip.png" {
				t.Fatalf("ignored file produced event: %+v", ev)
			}
			if ev.Path == marker {
				return
			}
		case <-deadline:
			t.Fatal("timeout waiting for marker event")
		}
	}
}

func TestFSWatcher_CloseIdempotent(t *testing.T) {
	w, err := NewFSWatcher(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSWatcher failed: %v", err)
	}

	if err := w.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}

	if err := w.Watch(t.TempDir()); !errors.Is(err, ErrWatcherClosed) {
		t.Errorf("expected ErrWatcherClosed, got %v", err)
	}
}
