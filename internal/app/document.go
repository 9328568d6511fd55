package app

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"github.com/dshills/textdir/internal/event"
	"github.com/dshills/textdir/internal/event/events"
	"github.com/dshills/textdir/internal/logging"
	"github.com/dshills/textdir/internal/vault"
)

// Document is an open file tracked by the application.
type Document struct {
	// Path is the vault-relative path.
	Path string

	// Name is the display name, the path's base component.
	Name string

	// OpenedAt is when the document was opened in this session.
	OpenedAt time.Time
}

// DocumentManager tracks which files are open and which one is active.
// Opening a file publishes FileOpened, which is what makes the resolver
// push the file's direction into the surfaces.
type DocumentManager struct {
	mu     sync.RWMutex
	fs     vault.FS
	bus    *event.Bus
	logger *logging.Logger
	docs   map[string]*Document
	order  []string
	active string
}

// NewDocumentManager creates a manager publishing on bus. bus may be nil,
// in which case opens are tracked but not announced.
func NewDocumentManager(fsys vault.FS, bus *event.Bus) *DocumentManager {
	return &DocumentManager{
		fs:     fsys,
		bus:    bus,
		logger: logging.GetLogger().WithComponent("documents"),
		docs:   make(map[string]*Document),
	}
}

// Open tracks a file as open, makes it active, and publishes FileOpened.
// Opening an already-open file just makes it active again.
func (dm *DocumentManager) Open(ctx context.Context, path string) (*Document, error) {
	np := vault.NormalizePath(path)

	dm.mu.Lock()
	if doc, ok := dm.docs[np]; ok {
		dm.active = np
		dm.mu.Unlock()
		return doc, nil
	}

	if dm.fs != nil && !dm.fs.Exists(np) {
		dm.mu.Unlock()
		return nil, NewOperationError("open", np, fs.ErrNotExist)
	}

	doc := &Document{
		Path:     np,
		Name:     baseName(np),
		OpenedAt: time.Now(),
	}
	dm.docs[np] = doc
	dm.order = append(dm.order, np)
	dm.active = np
	bus := dm.bus
	dm.mu.Unlock()

	if bus != nil {
		// Publish outside the lock; handlers may call back into the
		// manager.
		if err := bus.Publish(ctx, events.FileOpened{Path: np}); err != nil {
			dm.logger.Warn("failed to publish file opened for %s: %v", np, err)
		}
	}
	return doc, nil
}

// Close stops tracking a file. The most recently opened remaining document
// becomes active.
func (dm *DocumentManager) Close(path string) error {
	np := vault.NormalizePath(path)

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if _, ok := dm.docs[np]; !ok {
		return ErrDocumentNotFound
	}
	delete(dm.docs, np)
	for i, p := range dm.order {
		if p == np {
			dm.order = append(dm.order[:i], dm.order[i+1:]...)
			break
		}
	}
	if dm.active == np {
		if len(dm.order) > 0 {
			dm.active = dm.order[len(dm.order)-1]
		} else {
			dm.active = ""
		}
	}
	return nil
}

// Active returns the active document, or nil when nothing is open.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	if dm.active == "" {
		return nil
	}
	return dm.docs[dm.active]
}

// SetActive makes an already-open document the active one.
func (dm *DocumentManager) SetActive(path string) error {
	np := vault.NormalizePath(path)

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if _, ok := dm.docs[np]; !ok {
		return ErrDocumentNotFound
	}
	dm.active = np
	return nil
}

// Get returns a tracked document by path.
func (dm *DocumentManager) Get(path string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	doc, ok := dm.docs[vault.NormalizePath(path)]
	return doc, ok
}

// List returns open documents in the order they were opened.
func (dm *DocumentManager) List() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	out := make([]*Document, 0, len(dm.order))
	for _, p := range dm.order {
		if doc, ok := dm.docs[p]; ok {
			out = append(out, doc)
		}
	}
	return out
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.docs)
}

// renameTracked relocates an open document when its file moves. Active
// state follows the path. No-op when the old path is not tracked.
func (dm *DocumentManager) renameTracked(oldPath, newPath string) {
	oldNP, newNP := vault.NormalizePath(oldPath), vault.NormalizePath(newPath)

	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, ok := dm.docs[oldNP]
	if !ok {
		return
	}
	delete(dm.docs, oldNP)
	doc.Path = newNP
	doc.Name = baseName(newNP)
	dm.docs[newNP] = doc
	for i, p := range dm.order {
		if p == oldNP {
			dm.order[i] = newNP
			break
		}
	}
	if dm.active == oldNP {
		dm.active = newNP
	}
}

// baseName returns the last path component.
func baseName(p string) string {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i] == '/' {
			return p[i+1:]
		}
	}
	return p
}
