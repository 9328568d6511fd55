package vault

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"notes/a.md", "notes/a.md"},
		{"./notes/a.md", "notes/a.md"},
		{"notes//a.md", "notes/a.md"},
		{"notes/../a.md", "a.md"},
		{"a.md", "a.md"},
		{".", "."},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.input); got != tt.expected {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestMem_ReadWrite(t *testing.T) {
	m := NewMem()

	if err := m.WriteFile("notes/a.md", []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := m.ReadFile("notes/a.md")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("ReadFile = %q, want %q", data, "hello")
	}

	// Paths normalize to the same key.
	if _, err := m.ReadFile("./notes/a.md"); err != nil {
		t.Errorf("ReadFile with ./ prefix failed: %v", err)
	}

	if !m.Exists("notes/a.md") {
		t.Error("Exists = false for written file")
	}
	if !m.Exists("notes") {
		t.Error("Exists = false for implicit parent directory")
	}
	if m.Exists("missing.md") {
		t.Error("Exists = true for missing file")
	}
}

func TestMem_ReadMissing(t *testing.T) {
	m := NewMem()
	_, err := m.ReadFile("missing.md")
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadFile(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMem_Rename(t *testing.T) {
	m := NewMem()
	if err := m.WriteFile("a.md", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if err := m.Rename("a.md", "b.md"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if m.Exists("a.md") {
		t.Error("old path still exists after rename")
	}
	data, err := m.ReadFile("b.md")
	if err != nil || string(data) != "x" {
		t.Errorf("ReadFile(b.md) = %q, %v", data, err)
	}

	if err := m.Rename("missing.md", "c.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Rename(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMem_Remove(t *testing.T) {
	m := NewMem()
	if err := m.WriteFile("a.md", []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := m.Remove("a.md"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if m.Exists("a.md") {
		t.Error("file exists after Remove")
	}
	if err := m.Remove("a.md"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Remove(missing) error = %v, want fs.ErrNotExist", err)
	}
}

func TestMem_WalkDir(t *testing.T) {
	m := NewMem()
	for _, p := range []string{"a.md", "notes/b.md", "notes/deep/c.md", ".textdir/directions.json"} {
		if err := m.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s) failed: %v", p, err)
		}
	}

	var files []string
	err := m.WalkDir(".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p == ConfigDirName {
				return fs.SkipDir
			}
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir failed: %v", err)
	}

	want := []string{"a.md", "notes/b.md", "notes/deep/c.md"}
	if len(files) != len(want) {
		t.Fatalf("files = %v, want %v", files, want)
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], want[i])
		}
	}
}

func TestOS_RootedPaths(t *testing.T) {
	root := t.TempDir()
	o := NewOS(root)

	if err := o.MkdirAll("notes", 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := o.WriteFile("notes/a.md", []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Written relative to root on the real filesystem.
	onDisk := filepath.Join(root, "notes", "a.md")
	if _, err := os.Stat(onDisk); err != nil {
		t.Fatalf("file not at expected location: %v", err)
	}

	data, err := o.ReadFile("notes/a.md")
	if err != nil || string(data) != "content" {
		t.Errorf("ReadFile = %q, %v", data, err)
	}

	if err := o.Rename("notes/a.md", "notes/b.md"); err != nil {
		t.Fatalf("Rename failed: %v", err)
	}
	if o.Exists("notes/a.md") {
		t.Error("old path exists after rename")
	}
	if !o.Exists("notes/b.md") {
		t.Error("new path missing after rename")
	}
}

func TestOS_WalkDirRelativePaths(t *testing.T) {
	root := t.TempDir()
	o := NewOS(root)

	for _, p := range []string{"a.md", "notes/b.md"} {
		if err := o.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("MkdirAll failed: %v", err)
		}
		if err := o.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	seen := make(map[string]bool)
	err := o.WalkDir(".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			seen[p] = true
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir failed: %v", err)
	}

	for _, want := range []string{"a.md", "notes/b.md"} {
		if !seen[want] {
			t.Errorf("WalkDir did not report %q (saw %v)", want, seen)
		}
	}
}
