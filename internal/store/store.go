// Package store persists per-file text direction preferences together with
// the two user settings that govern them: the default direction and the
// remember-per-file flag. Everything lives in one human-editable JSON
// document; deleting a key from it is the supported way to forget a file's
// direction.
package store

import (
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/vault"
)

// StoreFileName is the name of the directions document inside the vault's
// configuration directory.
const StoreFileName = "directions.json"

// DefaultStorePath returns the directions document path for a vault root.
// With an empty root the path is relative, suitable for a rooted FS.
func DefaultStorePath(root string) string {
	return filepath.Join(root, vault.ConfigDirName, StoreFileName)
}

// Store is the direction store: a mapping from vault-relative file paths to
// directions, plus the default direction and remember-per-file settings.
// Every mutation saves the whole document.
//
// Methods are safe for concurrent use; dispatch in the application is
// sequential but the filesystem watcher runs on its own goroutine.
type Store struct {
	mu   sync.RWMutex
	path string
	fs   vault.FS

	fileDirections   map[string]direction.Direction
	defaultDirection direction.Direction
	rememberPerFile  bool
}

// Option configures a Store.
type Option func(*Store)

// WithFS sets the filesystem the store reads and writes through.
func WithFS(fs vault.FS) Option {
	return func(s *Store) {
		s.fs = fs
	}
}

// WithDefaultDirection sets the initial default direction used until a
// document is loaded.
func WithDefaultDirection(d direction.Direction) Option {
	return func(s *Store) {
		if d.IsValid() {
			s.defaultDirection = d
		}
	}
}

// WithRememberPerFile sets the initial remember-per-file flag used until a
// document is loaded.
func WithRememberPerFile(remember bool) Option {
	return func(s *Store) {
		s.rememberPerFile = remember
	}
}

// New creates a store backed by the JSON document at path.
// The store starts with defaults; call Load to read the document.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:             path,
		fs:               vault.NewOS(""),
		fileDirections:   make(map[string]direction.Direction),
		defaultDirection: direction.Default,
		rememberPerFile:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored direction for a path.
func (s *Store) Get(path string) (direction.Direction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.fileDirections[vault.NormalizePath(path)]
	return d, ok
}

// Set stores a direction for a path and saves.
func (s *Store) Set(path string, d direction.Direction) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %q", direction.ErrUnknownDirection, string(d))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.fileDirections[vault.NormalizePath(path)] = d
	return s.save()
}

// Remove deletes a path's entry and saves.
// Removing an absent path is a no-op and does not touch the document.
func (s *Store) Remove(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	np := vault.NormalizePath(path)
	if _, ok := s.fileDirections[np]; !ok {
		return nil
	}
	delete(s.fileDirections, np)
	return s.save()
}

// Rename moves a path's entry to a new path and saves.
// Renaming a path with no entry is a no-op and does not touch the document.
func (s *Store) Rename(oldPath, newPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	oldNP := vault.NormalizePath(oldPath)
	d, ok := s.fileDirections[oldNP]
	if !ok {
		return nil
	}
	delete(s.fileDirections, oldNP)
	s.fileDirections[vault.NormalizePath(newPath)] = d
	return s.save()
}

// Clear drops all entries and saves.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.fileDirections) == 0 {
		return nil
	}
	s.fileDirections = make(map[string]direction.Direction)
	return s.save()
}

// Prune removes entries whose path fails the exists predicate, saves once,
// and returns the removed paths sorted. Entries are never pruned
// automatically; this runs only when the user asks.
func (s *Store) Prune(exists func(string) bool) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []string
	for path := range s.fileDirections {
		if !exists(path) {
			removed = append(removed, path)
		}
	}
	if len(removed) == 0 {
		return nil, nil
	}

	for _, path := range removed {
		delete(s.fileDirections, path)
	}
	sort.Strings(removed)

	if err := s.save(); err != nil {
		return removed, err
	}
	return removed, nil
}

// DefaultDirection returns the configured default direction.
func (s *Store) DefaultDirection() direction.Direction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultDirection
}

// SetDefaultDirection updates the default direction and saves.
func (s *Store) SetDefaultDirection(d direction.Direction) error {
	if !d.IsValid() {
		return fmt.Errorf("%w: %q", direction.ErrUnknownDirection, string(d))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.defaultDirection == d {
		return nil
	}
	s.defaultDirection = d
	return s.save()
}

// RememberPerFile returns the remember-per-file flag.
func (s *Store) RememberPerFile() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rememberPerFile
}

// SetRememberPerFile updates the remember-per-file flag and saves.
// Turning it off preserves stored entries; they simply stop being consulted.
func (s *Store) SetRememberPerFile(remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rememberPerFile == remember {
		return nil
	}
	s.rememberPerFile = remember
	return s.save()
}

// Entries returns a copy of all stored path to direction mappings.
func (s *Store) Entries() map[string]direction.Direction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make(map[string]direction.Direction, len(s.fileDirections))
	for path, d := range s.fileDirections {
		entries[path] = d
	}
	return entries
}

// Paths returns all stored paths sorted.
func (s *Store) Paths() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.fileDirections))
	for path := range s.fileDirections {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Len returns the number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fileDirections)
}
