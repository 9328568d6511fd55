package resolver

import (
	"context"
	"errors"

	"github.com/dshills/textdir/internal/event"
	"github.com/dshills/textdir/internal/event/events"
)

// ErrAlreadyBound is returned when Bind is called twice without Unbind.
var ErrAlreadyBound = errors.New("resolver already bound to a bus")

// Bind subscribes the resolver to the vault file lifecycle: opened files
// get their direction applied, renames relocate the stored entry, and
// deletes drop it. Handler failures are logged and never propagated back
// to the publisher. If no publishing bus was configured, Bind adopts this
// one.
func (r *Resolver) Bind(bus *event.Bus) error {
	if r.sub != nil {
		return ErrAlreadyBound
	}

	sub := event.NewSubscriber(bus)

	_, err := event.SubscribePayload(sub, events.TopicVaultFileOpened, r.onFileOpened)
	if err != nil {
		_ = sub.Close()
		return err
	}
	_, err = event.SubscribePayload(sub, events.TopicVaultFileRenamed, r.onFileRenamed)
	if err != nil {
		_ = sub.Close()
		return err
	}
	_, err = event.SubscribePayload(sub, events.TopicVaultFileDeleted, r.onFileDeleted)
	if err != nil {
		_ = sub.Close()
		return err
	}

	r.sub = sub
	if r.bus == nil {
		r.bus = bus
	}
	return nil
}

// Unbind cancels the resolver's subscriptions.
func (r *Resolver) Unbind() {
	if r.sub == nil {
		return
	}
	_ = r.sub.Close()
	r.sub = nil
}

func (r *Resolver) onFileOpened(_ context.Context, p events.FileOpened) error {
	d := r.ApplyFor(p.Path)
	r.logger.Debug("applied %s for opened file %s", d, p.Path)
	return nil
}

func (r *Resolver) onFileRenamed(_ context.Context, p events.FileRenamed) error {
	if err := r.store.Rename(p.OldPath, p.NewPath); err != nil {
		r.logger.Error("failed to relocate entry %s -> %s: %v", p.OldPath, p.NewPath, err)
	}
	return nil
}

func (r *Resolver) onFileDeleted(_ context.Context, p events.FileDeleted) error {
	if err := r.store.Remove(p.Path); err != nil {
		r.logger.Error("failed to remove entry for deleted file %s: %v", p.Path, err)
	}
	return nil
}
