package vault

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// Mem implements FS entirely in memory. It is used by tests and anywhere a
// throwaway filesystem is convenient.
type Mem struct {
	mu    sync.RWMutex
	files map[string]*memFile
	dirs  map[string]bool
}

// memFile holds a file's content and metadata.
type memFile struct {
	data    []byte
	mode    fs.FileMode
	modTime time.Time
}

// NewMem creates an empty in-memory filesystem.
func NewMem() *Mem {
	return &Mem{
		files: make(map[string]*memFile),
		dirs:  map[string]bool{".": true},
	}
}

// Ensure Mem implements FS.
var _ FS = (*Mem)(nil)

// ReadFile reads the entire file content.
func (m *Mem) ReadFile(p string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	f, ok := m.files[NormalizePath(p)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: p, Err: fs.ErrNotExist}
	}
	data := make([]byte, len(f.data))
	copy(data, f.data)
	return data, nil
}

// WriteFile writes data to a file, creating it if necessary.
func (m *Mem) WriteFile(p string, data []byte, perm fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	np := NormalizePath(p)
	stored := make([]byte, len(data))
	copy(stored, data)
	m.files[np] = &memFile{data: stored, mode: perm, modTime: time.Now()}
	m.addParents(np)
	return nil
}

// MkdirAll records a directory and all parent directories.
func (m *Mem) MkdirAll(p string, _ fs.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	np := NormalizePath(p)
	m.dirs[np] = true
	m.addParents(np + "/x")
	return nil
}

// addParents marks every ancestor directory of a file path as existing.
// Caller must hold the lock.
func (m *Mem) addParents(filePath string) {
	dir := path.Dir(filePath)
	for dir != "." && dir != "/" {
		m.dirs[dir] = true
		dir = path.Dir(dir)
	}
}

// Rename renames (moves) a file.
func (m *Mem) Rename(oldPath, newPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldNP, newNP := NormalizePath(oldPath), NormalizePath(newPath)
	f, ok := m.files[oldNP]
	if !ok {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	delete(m.files, oldNP)
	m.files[newNP] = f
	m.addParents(newNP)
	return nil
}

// Remove removes a file.
func (m *Mem) Remove(p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	np := NormalizePath(p)
	if _, ok := m.files[np]; !ok {
		return &fs.PathError{Op: "remove", Path: p, Err: fs.ErrNotExist}
	}
	delete(m.files, np)
	return nil
}

// Stat returns file information.
func (m *Mem) Stat(p string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	np := NormalizePath(p)
	if f, ok := m.files[np]; ok {
		return &memInfo{name: path.Base(np), size: int64(len(f.data)), mode: f.mode, modTime: f.modTime}, nil
	}
	if m.dirs[np] {
		return &memInfo{name: path.Base(np), mode: fs.ModeDir | 0o755, isDir: true}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
}

// Exists returns true if the path exists.
func (m *Mem) Exists(p string) bool {
	_, err := m.Stat(p)
	return err == nil
}

// ReadDir lists the direct children of a directory, sorted by name.
func (m *Mem) ReadDir(p string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	np := NormalizePath(p)
	if !m.dirs[np] {
		return nil, &fs.PathError{Op: "readdir", Path: p, Err: fs.ErrNotExist}
	}

	entries := make(map[string]fs.DirEntry)
	for d := range m.dirs {
		if d != "." && d != np && path.Dir(d) == np {
			name := path.Base(d)
			entries[name] = fs.FileInfoToDirEntry(&memInfo{name: name, mode: fs.ModeDir | 0o755, isDir: true})
		}
	}
	for f, mf := range m.files {
		if path.Dir(f) == np {
			name := path.Base(f)
			entries[name] = fs.FileInfoToDirEntry(&memInfo{name: name, size: int64(len(mf.data)), mode: mf.mode, modTime: mf.modTime})
		}
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]fs.DirEntry, 0, len(names))
	for _, name := range names {
		out = append(out, entries[name])
	}
	return out, nil
}

// WalkDir walks the tree rooted at root in lexical order.
func (m *Mem) WalkDir(root string, fn fs.WalkDirFunc) error {
	m.mu.RLock()
	rootNP := NormalizePath(root)
	var paths []string
	isDir := make(map[string]bool)
	for d := range m.dirs {
		if underRoot(d, rootNP) {
			paths = append(paths, d)
			isDir[d] = true
		}
	}
	for f := range m.files {
		if underRoot(f, rootNP) {
			paths = append(paths, f)
		}
	}
	m.mu.RUnlock()

	sort.Strings(paths)

	var skipped []string
	for _, p := range paths {
		if isSkipped(p, skipped) {
			continue
		}
		info, err := m.Stat(p)
		if err != nil {
			continue
		}
		entry := fs.FileInfoToDirEntry(info)
		if err := fn(p, entry, nil); err != nil {
			if err == fs.SkipDir {
				if isDir[p] {
					skipped = append(skipped, p+"/")
				}
				continue
			}
			if err == fs.SkipAll {
				return nil
			}
			return err
		}
	}
	return nil
}

// underRoot reports whether p is the root or inside it.
func underRoot(p, root string) bool {
	if root == "." || root == "" {
		return true
	}
	return p == root || strings.HasPrefix(p, root+"/")
}

// isSkipped reports whether p lies under any skipped directory prefix.
func isSkipped(p string, skipped []string) bool {
	for _, prefix := range skipped {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// memInfo implements fs.FileInfo for in-memory entries.
type memInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (i *memInfo) Name() string       { return i.name }
func (i *memInfo) Size() int64        { return i.size }
func (i *memInfo) Mode() fs.FileMode  { return i.mode }
func (i *memInfo) ModTime() time.Time { return i.modTime }
func (i *memInfo) IsDir() bool        { return i.isDir }
func (i *memInfo) Sys() any           { return nil }
