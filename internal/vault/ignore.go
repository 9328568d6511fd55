package vault

import (
	"path"
	"strings"
	"sync"
)

// Ignore filters vault paths out of watching and pruning. Two rule kinds
// cover what a direction manager needs: directory names excluded wherever
// they appear, and an extension allow-list applied to files. The config
// directory is always excluded so the store's own saves never echo back as
// vault events.
type Ignore struct {
	mu   sync.RWMutex
	dirs map[string]struct{}
	exts map[string]struct{}
}

// NewIgnore creates an Ignore that excludes only the vault config directory.
func NewIgnore() *Ignore {
	ig := &Ignore{
		dirs: make(map[string]struct{}),
		exts: make(map[string]struct{}),
	}
	ig.AddDir(ConfigDirName)
	return ig
}

// DefaultIgnore returns the standard rule set: the config directory plus
// the directories no vault wants watched.
func DefaultIgnore() *Ignore {
	ig := NewIgnore()
	for _, d := range []string{".git", ".obsidian", "node_modules", ".trash"} {
		ig.AddDir(d)
	}
	return ig
}

// AddDir excludes a directory name wherever it appears in the vault.
func (ig *Ignore) AddDir(name string) {
	name = strings.Trim(strings.TrimSpace(name), "/")
	if name == "" {
		return
	}
	ig.mu.Lock()
	ig.dirs[name] = struct{}{}
	ig.mu.Unlock()
}

// AddExtension restricts watching to the given file extensions. The first
// call switches the file filter from allow-everything to allow-listed.
// Extensions are matched case-insensitively, with or without leading dot.
func (ig *Ignore) AddExtension(ext string) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	ig.mu.Lock()
	ig.exts[ext] = struct{}{}
	ig.mu.Unlock()
}

// AddExtensions restricts watching to the given extensions.
func (ig *Ignore) AddExtensions(exts []string) {
	for _, e := range exts {
		ig.AddExtension(e)
	}
}

// IgnoreDir returns true if the directory name is excluded.
func (ig *Ignore) IgnoreDir(name string) bool {
	ig.mu.RLock()
	defer ig.mu.RUnlock()
	_, ok := ig.dirs[name]
	return ok
}

// Match returns true if the slash-separated vault-relative path should be
// ignored. Directories match by name at any depth; files additionally pass
// through the extension allow-list when one is set.
func (ig *Ignore) Match(relPath string, isDir bool) bool {
	relPath = NormalizePath(relPath)
	if relPath == "." || relPath == "" {
		return false
	}

	ig.mu.RLock()
	defer ig.mu.RUnlock()

	parts := strings.Split(relPath, "/")
	dirParts := parts
	if !isDir {
		dirParts = parts[:len(parts)-1]
	}
	for _, c := range dirParts {
		if _, ok := ig.dirs[c]; ok {
			return true
		}
	}
	if isDir {
		return false
	}

	if len(ig.exts) == 0 {
		return false
	}
	ext := strings.ToLower(path.Ext(relPath))
	if ext == "" {
		return true
	}
	_, ok := ig.exts[ext]
	return !ok
}
