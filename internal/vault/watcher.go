package vault

import (
	"errors"
	"strings"
	"time"
)

// Errors returned by watcher operations.
var (
	ErrWatcherClosed   = errors.New("watcher is closed")
	ErrAlreadyWatching = errors.New("path is already being watched")
	ErrNotWatching     = errors.New("path is not being watched")
	ErrPathNotExist    = errors.New("path does not exist")
)

// Op is a bitmask of filesystem operations observed on a path. Debouncing
// combines the ops of coalesced events, so a saved-then-renamed file can
// carry OpWrite|OpRename in a single event.
type Op uint32

const (
	// OpCreate indicates a file or directory was created.
	OpCreate Op = 1 << iota
	// OpWrite indicates a file was written to.
	OpWrite
	// OpRemove indicates a file or directory was removed.
	OpRemove
	// OpRename indicates a file or directory was renamed away.
	OpRename
	// OpChmod indicates file permissions were changed.
	OpChmod
)

// Has returns true if the operation includes the given op.
func (op Op) Has(o Op) bool {
	return op&o == o
}

// String returns a human-readable representation, joining combined
// operations with "|".
func (op Op) String() string {
	if op == 0 {
		return "NONE"
	}

	var parts []string
	for _, f := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	} {
		if op.Has(f.op) {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "UNKNOWN"
	}
	return strings.Join(parts, "|")
}

// Event is a filesystem change observed by a watcher. Path is absolute;
// the Publisher relativizes it against the vault root.
type Event struct {
	// Path is the absolute path of the affected file or directory.
	Path string

	// Op is the operation (or coalesced operations) that occurred.
	Op Op

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Watcher monitors filesystem changes under the vault.
type Watcher interface {
	// Watch starts watching a single path.
	// Returns ErrAlreadyWatching if the path is already being watched.
	Watch(path string) error

	// WatchRecursive starts watching a directory and all subdirectories,
	// skipping ignored ones. Returns ErrPathNotExist if the path is missing.
	WatchRecursive(path string) error

	// Unwatch stops watching a path.
	// Returns ErrNotWatching if the path isn't being watched.
	Unwatch(path string) error

	// Events returns the channel of change events.
	// The channel is closed when the watcher is closed.
	Events() <-chan Event

	// Errors returns the channel of watcher errors.
	// The channel is closed when the watcher is closed.
	Errors() <-chan error

	// Close stops the watcher and releases resources.
	Close() error

	// IsWatching returns true if the path is being watched.
	IsWatching(path string) bool

	// WatchedPaths returns all paths being watched.
	WatchedPaths() []string
}

// WatchConfig holds watcher configuration.
type WatchConfig struct {
	// BufferSize is the size of the event and error channels.
	// Default: 100
	BufferSize int

	// Ignore filters paths out of the event stream.
	Ignore *Ignore
}

// DefaultWatchConfig returns a WatchConfig with sensible defaults.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		BufferSize: 100,
		Ignore:     DefaultIgnore(),
	}
}

// WatchOption configures a watcher.
type WatchOption func(*WatchConfig)

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) WatchOption {
	return func(c *WatchConfig) {
		c.BufferSize = size
	}
}

// WithIgnore sets the ignore rules.
func WithIgnore(ig *Ignore) WatchOption {
	return func(c *WatchConfig) {
		c.Ignore = ig
	}
}
