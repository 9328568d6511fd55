package vault

import "testing"

func TestIgnore_Match(t *testing.T) {
	ig := DefaultIgnore()

	tests := []struct {
		path    string
		isDir   bool
		ignored bool
	}{
		{"notes/a.md", false, false},
		{"a.md", false, false},
		{".git", true, true},
		{".git/config", false, true},
		{"sub/.git/config", false, true},
		{".textdir", true, true},
		{".textdir/directions.json", false, true},
		{"node_modules/pkg/index.js", false, true},
		{".obsidian/workspace.json", false, true},
		{"notes", true, false},
		{".", true, false},
	}

	for _, tt := range tests {
		if got := ig.Match(tt.path, tt.isDir); got != tt.ignored {
			t.Errorf("Match(%q, isDir=%v) = %v, want %v", tt.path, tt.isDir, got, tt.ignored)
		}
	}
}

func TestIgnore_ExtensionFilter(t *testing.T) {
	ig := NewIgnore()
	ig.AddExtensions([]string{"md", ".txt"})

	tests := []struct {
		path    string
		ignored bool
	}{
		{"a.md", false},
		{"a.MD", false}, // case-insensitive
		{"a.txt", false},
		{"a.png", true},
		{"Makefile", true}, // no extension
		{"notes/deep/b.md", false},
	}

	for _, tt := range tests {
		if got := ig.Match(tt.path, false); got != tt.ignored {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.ignored)
		}
	}

	// Directories are never extension-filtered.
	if ig.Match("notes", true) {
		t.Error("directory rejected by extension filter")
	}
}

func TestIgnore_NoExtensionFilterAllowsEverything(t *testing.T) {
	ig := NewIgnore()

	for _, p := range []string{"a.md", "a.png", "Makefile"} {
		if ig.Match(p, false) {
			t.Errorf("Match(%q) = true with no extension filter", p)
		}
	}
}

func TestIgnore_ConfigDirAlwaysExcluded(t *testing.T) {
	ig := NewIgnore()

	if !ig.Match(ConfigDirName+"/directions.json", false) {
		t.Error("config directory contents not excluded")
	}
	if !ig.IgnoreDir(ConfigDirName) {
		t.Error("IgnoreDir should report the config directory")
	}
}

func TestIgnore_AddDirNormalization(t *testing.T) {
	ig := NewIgnore()
	ig.AddDir("  build/ ")
	ig.AddDir("")

	if !ig.IgnoreDir("build") {
		t.Error("trimmed directory name not registered")
	}
	if !ig.Match("build/out.md", false) {
		t.Error("file under added directory not ignored")
	}
}
