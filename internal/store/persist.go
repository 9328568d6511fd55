package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"time"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/vault"
)

// currentVersion is the persisted document format version.
const currentVersion = 1

// persistedConfig is the JSON-serializable form of the store.
// The document is deliberately human-editable: deleting an entry from
// fileDirections is the documented way to forget a file's direction.
type persistedConfig struct {
	Version          int                 `json:"version"`
	SavedAt          time.Time           `json:"savedAt"`
	DefaultDirection direction.Direction `json:"defaultDirection"`
	RememberPerFile  bool                `json:"rememberPerFile"`
	FileDirections   map[string]string   `json:"fileDirections"`
}

// Load reads the directions document from disk.
// A missing document is not an error: the store keeps its defaults. An
// unreadable or unparsable document also keeps the defaults but returns
// the error so the caller can log it and continue. Legacy documents are
// migrated to the current format before decoding.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read directions file: %w", err)
	}

	data, err = defaultMigrator().Migrate(data)
	if err != nil {
		return fmt.Errorf("failed to migrate directions file: %w", err)
	}

	var doc persistedConfig
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to unmarshal directions file: %w", err)
	}

	if doc.Version > currentVersion {
		return fmt.Errorf("unsupported directions file version: %d (max supported: %d)",
			doc.Version, currentVersion)
	}

	if doc.DefaultDirection.IsValid() {
		s.defaultDirection = doc.DefaultDirection
	}
	s.rememberPerFile = doc.RememberPerFile

	s.fileDirections = make(map[string]direction.Direction, len(doc.FileDirections))
	for p, raw := range doc.FileDirections {
		d, err := direction.Parse(raw)
		if err != nil {
			// Entries with unrecognized values are dropped, not fatal.
			// The next save rewrites the document without them.
			continue
		}
		s.fileDirections[vault.NormalizePath(p)] = d
	}

	return nil
}

// Save serializes the whole document and overwrites the directions file.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save()
}

// save writes the full document atomically via a temp file and rename.
// Caller must hold the lock. Every mutation funnels through here, so the
// on-disk document always reflects the complete current state.
func (s *Store) save() error {
	doc := persistedConfig{
		Version:          currentVersion,
		SavedAt:          time.Now().UTC(),
		DefaultDirection: s.defaultDirection,
		RememberPerFile:  s.rememberPerFile,
		FileDirections:   make(map[string]string, len(s.fileDirections)),
	}
	for p, d := range s.fileDirections {
		doc.FileDirections[p] = d.String()
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal directions: %w", err)
	}
	data = append(data, '\n')

	dir := path.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempPath := s.path + ".tmp"
	if err := s.fs.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := s.fs.Rename(tempPath, s.path); err != nil {
		_ = s.fs.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}
