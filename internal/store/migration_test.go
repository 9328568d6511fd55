package store

import (
	"testing"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/vault"
)

func TestDocumentVersion(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{"current", `{"version": 1, "fileDirections": {}}`, 1},
		{"legacy flat map", `{"a.md": "rtl"}`, 0},
		{"empty object", `{}`, 0},
		{"future", `{"version": 7}`, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := documentVersion([]byte(tt.doc)); got != tt.want {
				t.Errorf("documentVersion = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMigrate_LegacyFlatMap(t *testing.T) {
	legacy := `{
  "notes/a.md": "rtl",
  "b.md": "ltr",
  "defaultDirection": "rtl",
  "rememberPerFile": false
}`

	mem := vault.NewMem()
	path := "conf/directions.json"
	if err := mem.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(path, WithFS(mem))
	if err := s.Load(); err != nil {
		t.Fatalf("Load legacy document: %v", err)
	}

	if d, ok := s.Get("notes/a.md"); !ok || d != direction.RTL {
		t.Errorf("notes/a.md = (%v, %v), want (rtl, true)", d, ok)
	}
	if d, ok := s.Get("b.md"); !ok || d != direction.LTR {
		t.Errorf("b.md = (%v, %v), want (ltr, true)", d, ok)
	}
	if got := s.DefaultDirection(); got != direction.RTL {
		t.Errorf("defaultDirection = %v, want rtl (lifted from legacy meta key)", got)
	}
	if s.RememberPerFile() {
		t.Error("rememberPerFile should be lifted as false")
	}

	// The meta keys must not leak in as file entries.
	if _, ok := s.Get("defaultDirection"); ok {
		t.Error("legacy meta key became a file entry")
	}
}

func TestMigrate_LegacyWithoutMetaKeys(t *testing.T) {
	mem := vault.NewMem()
	path := "conf/directions.json"
	if err := mem.WriteFile(path, []byte(`{"a.md": "rtl"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(path, WithFS(mem))
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := s.DefaultDirection(); got != direction.Default {
		t.Errorf("defaultDirection = %v, want default when legacy has no meta key", got)
	}
	if !s.RememberPerFile() {
		t.Error("rememberPerFile should default to true when legacy has no meta key")
	}
	if d, ok := s.Get("a.md"); !ok || d != direction.RTL {
		t.Errorf("a.md = (%v, %v), want (rtl, true)", d, ok)
	}
}

func TestMigrate_CurrentVersionPassesThrough(t *testing.T) {
	doc := []byte(`{"version": 1, "fileDirections": {"a.md": "rtl"}}`)
	out, err := defaultMigrator().Migrate(doc)
	if err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	if string(out) != string(doc) {
		t.Error("document at current version should pass through unchanged")
	}
}

func TestMigrate_SavingLegacyUpgradesOnDisk(t *testing.T) {
	mem := vault.NewMem()
	path := "conf/directions.json"
	if err := mem.WriteFile(path, []byte(`{"a.md": "rtl"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s := New(path, WithFS(mem))
	if err := s.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := mem.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got := documentVersion(data); got != currentVersion {
		t.Errorf("on-disk version after save = %d, want %d", got, currentVersion)
	}
}
