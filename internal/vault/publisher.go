package vault

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dshills/textdir/internal/event"
	"github.com/dshills/textdir/internal/event/events"
	"github.com/dshills/textdir/internal/logging"
)

// Publisher turns debounced watcher events into bus payloads. Remove and
// rename ops are re-checked against the filesystem at fire time: editors
// that save through a temp-file rename make a live file look deleted for a
// moment, so a path that still exists is demoted to a change. External
// renames therefore surface as deleted(old) plus created(new); paired
// FileRenamed events only come from in-process rename operations.
type Publisher struct {
	watcher Watcher
	bus     *event.Bus
	fs      FS
	root    string
	logger  *logging.Logger
}

// PublisherOption configures a Publisher.
type PublisherOption func(*Publisher)

// WithPublisherLogger sets the logger.
func WithPublisherLogger(l *logging.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = l
	}
}

// NewPublisher creates a publisher reading from w and publishing on bus.
// Existence re-checks go through fsys; root relativizes the watcher's
// absolute paths into vault-relative ones.
func NewPublisher(w Watcher, bus *event.Bus, fsys FS, root string, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		watcher: w,
		bus:     bus,
		fs:      fsys,
		root:    root,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = logging.GetLogger().WithComponent("vault-watch")
	}
	return p
}

// Run consumes watcher events until ctx is cancelled or the watcher
// closes. It blocks; callers run it in a goroutine.
func (p *Publisher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-p.watcher.Events():
			if !ok {
				return
			}
			p.handle(ctx, ev)

		case err, ok := <-p.watcher.Errors():
			if !ok {
				return
			}
			p.logger.Warn("watcher error: %v", err)
		}
	}
}

// handle classifies one debounced event and publishes the matching payload.
func (p *Publisher) handle(ctx context.Context, ev Event) {
	rel, ok := p.relative(ev.Path)
	if !ok {
		return
	}

	switch {
	case ev.Op.Has(OpRemove) || ev.Op.Has(OpRename):
		if p.fs.Exists(rel) {
			// Atomic-save pattern: the path was replaced, not removed.
			p.publish(ctx, events.FileChanged{Path: rel})
			return
		}
		p.publish(ctx, events.FileDeleted{Path: rel})

	case ev.Op.Has(OpCreate):
		if !p.fs.Exists(rel) {
			return // created and gone within the debounce window
		}
		p.publish(ctx, events.FileCreated{Path: rel})

	case ev.Op.Has(OpWrite):
		p.publish(ctx, events.FileChanged{Path: rel})

	default:
		// chmod only, nothing to publish
	}
}

// relative maps an absolute watcher path into a vault-relative one.
// Paths outside the root are dropped.
func (p *Publisher) relative(abs string) (string, bool) {
	if p.root == "" || !filepath.IsAbs(abs) {
		return NormalizePath(abs), true
	}
	rel, err := filepath.Rel(p.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, "../") {
		return "", false
	}
	return NormalizePath(filepath.ToSlash(rel)), true
}

// publish delivers a payload, logging failures.
func (p *Publisher) publish(ctx context.Context, payload event.TopicProvider) {
	if err := p.bus.Publish(ctx, payload); err != nil {
		p.logger.Warn("failed to publish %s: %v", payload.Topic(), err)
		return
	}
	p.logger.Debug("published %s", payload.Topic())
}
