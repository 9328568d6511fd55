package vault

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the file access abstraction the store, surfaces, and commands use.
// Paths may be vault-relative (slash-separated) or absolute; implementations
// resolve relative paths against their root.
type FS interface {
	// ReadFile reads the entire file content.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to a file, creating it if necessary.
	WriteFile(path string, data []byte, perm fs.FileMode) error

	// MkdirAll creates a directory and all parent directories.
	MkdirAll(path string, perm fs.FileMode) error

	// Rename renames (moves) a file.
	Rename(oldPath, newPath string) error

	// Remove removes a file.
	Remove(path string) error

	// Stat returns file information.
	Stat(path string) (fs.FileInfo, error)

	// Exists returns true if the path exists.
	Exists(path string) bool

	// ReadDir lists the entries of a directory, sorted by name.
	ReadDir(path string) ([]fs.DirEntry, error)

	// WalkDir walks the tree rooted at root in lexical order.
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// OS implements FS on the operating system's filesystem, resolving relative
// paths against a root directory.
type OS struct {
	root string
}

// NewOS creates an OS filesystem rooted at the given directory.
// An empty root resolves paths against the working directory.
func NewOS(root string) *OS {
	return &OS{root: root}
}

// Ensure OS implements FS.
var _ FS = (*OS)(nil)

// Root returns the root directory.
func (o *OS) Root() string {
	return o.root
}

// resolve maps a vault-relative path onto the real filesystem.
func (o *OS) resolve(p string) string {
	if filepath.IsAbs(p) || o.root == "" {
		return filepath.FromSlash(p)
	}
	return filepath.Join(o.root, filepath.FromSlash(p))
}

// ReadFile reads the entire file content.
func (o *OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(o.resolve(path))
}

// WriteFile writes data to a file, creating it if necessary.
func (o *OS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(o.resolve(path), data, perm)
}

// MkdirAll creates a directory and all parent directories.
func (o *OS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(o.resolve(path), perm)
}

// Rename renames (moves) a file.
func (o *OS) Rename(oldPath, newPath string) error {
	return os.Rename(o.resolve(oldPath), o.resolve(newPath))
}

// Remove removes a file.
func (o *OS) Remove(path string) error {
	return os.Remove(o.resolve(path))
}

// Stat returns file information.
func (o *OS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(o.resolve(path))
}

// Exists returns true if the path exists.
func (o *OS) Exists(path string) bool {
	_, err := os.Stat(o.resolve(path))
	return err == nil
}

// ReadDir lists the entries of a directory, sorted by name.
func (o *OS) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(o.resolve(path))
}

// WalkDir walks the tree rooted at root in lexical order.
// Paths passed to fn are vault-relative when the walk root is.
func (o *OS) WalkDir(root string, fn fs.WalkDirFunc) error {
	resolved := o.resolve(root)
	return filepath.WalkDir(resolved, func(p string, d fs.DirEntry, err error) error {
		rel, relErr := filepath.Rel(resolved, p)
		if relErr != nil {
			rel = p
		}
		if root != "" && root != "." {
			rel = filepath.Join(root, rel)
		}
		return fn(NormalizePath(rel), d, err)
	})
}
