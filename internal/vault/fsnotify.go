package vault

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FSWatcher implements Watcher using fsnotify. It watches directories;
// fsnotify reports changes to the files inside them. New directories
// created under a watched tree are picked up automatically.
type FSWatcher struct {
	mu sync.RWMutex

	watcher *fsnotify.Watcher
	config  WatchConfig
	root    string

	paths map[string]bool

	events chan Event
	errors chan error

	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// NewFSWatcher creates a watcher for the vault rooted at root.
func NewFSWatcher(root string, opts ...WatchOption) (*FSWatcher, error) {
	config := DefaultWatchConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Ignore == nil {
		config.Ignore = NewIgnore()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	bufSize := config.BufferSize
	if bufSize <= 0 {
		bufSize = 100
	}

	w := &FSWatcher{
		watcher: fsw,
		config:  config,
		root:    absRoot,
		paths:   make(map[string]bool),
		events:  make(chan Event, bufSize),
		errors:  make(chan error, bufSize),
		closeCh: make(chan struct{}),
	}

	w.wg.Add(1)
	go w.processLoop()

	return w, nil
}

// Ensure FSWatcher implements Watcher.
var _ Watcher = (*FSWatcher)(nil)

// Root returns the absolute vault root the watcher was created for.
func (w *FSWatcher) Root() string {
	return w.root
}

// Watch starts watching a single path.
func (w *FSWatcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	if w.paths[absPath] {
		return ErrAlreadyWatching
	}

	if err := w.watcher.Add(absPath); err != nil {
		return err
	}

	w.paths[absPath] = true
	return nil
}

// WatchRecursive watches a directory and all non-ignored subdirectories.
func (w *FSWatcher) WatchRecursive(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}
	if !info.IsDir() {
		return w.Watch(absPath)
	}

	return filepath.WalkDir(absPath, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries, keep walking
		}
		if !d.IsDir() {
			return nil
		}
		if w.shouldIgnore(p, true) {
			return filepath.SkipDir
		}
		if watchErr := w.Watch(p); watchErr != nil && watchErr != ErrAlreadyWatching {
			w.sendError(watchErr)
		}
		return nil
	})
}

// Unwatch stops watching a path.
func (w *FSWatcher) Unwatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if !w.paths[absPath] {
		return ErrNotWatching
	}

	if err := w.watcher.Remove(absPath); err != nil {
		return err
	}

	delete(w.paths, absPath)
	return nil
}

// Events returns the event channel.
func (w *FSWatcher) Events() <-chan Event {
	return w.events
}

// Errors returns the error channel.
func (w *FSWatcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher.
func (w *FSWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.wg.Wait()

	close(w.events)
	close(w.errors)

	return w.watcher.Close()
}

// IsWatching returns true if the path is being watched.
func (w *FSWatcher) IsWatching(path string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()

	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	return w.paths[absPath]
}

// WatchedPaths returns all watched paths.
func (w *FSWatcher) WatchedPaths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	paths := make([]string, 0, len(w.paths))
	for p := range w.paths {
		paths = append(paths, p)
	}
	return paths
}

// processLoop handles incoming fsnotify events.
func (w *FSWatcher) processLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case fsEvent, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleFSEvent(fsEvent)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendError(err)
		}
	}
}

// handleFSEvent converts and forwards an fsnotify event.
func (w *FSWatcher) handleFSEvent(fsEvent fsnotify.Event) {
	op := convertOp(fsEvent.Op)
	if op == 0 {
		return
	}

	// New directories under a watched tree get watched too. Check before
	// the ignore filter so ignored dirs are neither forwarded nor added.
	isDir := false
	if op.Has(OpCreate) {
		if info, err := os.Stat(fsEvent.Name); err == nil && info.IsDir() {
			isDir = true
		}
	}

	if w.shouldIgnore(fsEvent.Name, isDir) {
		return
	}

	if isDir {
		_ = w.Watch(fsEvent.Name)
		return
	}

	w.sendEvent(Event{
		Path:      fsEvent.Name,
		Op:        op,
		Timestamp: time.Now(),
	})
}

// convertOp converts fsnotify.Op to Op.
func convertOp(fsOp fsnotify.Op) Op {
	var op Op
	if fsOp.Has(fsnotify.Create) {
		op |= OpCreate
	}
	if fsOp.Has(fsnotify.Write) {
		op |= OpWrite
	}
	if fsOp.Has(fsnotify.Remove) {
		op |= OpRemove
	}
	if fsOp.Has(fsnotify.Rename) {
		op |= OpRename
	}
	if fsOp.Has(fsnotify.Chmod) {
		op |= OpChmod
	}
	return op
}

// shouldIgnore checks a path against the ignore rules, relative to the
// vault root.
func (w *FSWatcher) shouldIgnore(path string, isDir bool) bool {
	if w.config.Ignore == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	return w.config.Ignore.Match(filepath.ToSlash(rel), isDir)
}

// sendEvent sends an event, dropping it if the channel is full.
func (w *FSWatcher) sendEvent(event Event) {
	select {
	case w.events <- event:
	default:
	}
}

// sendError sends an error, dropping it if the channel is full.
func (w *FSWatcher) sendError(err error) {
	select {
	case w.errors <- err:
	default:
	}
}
