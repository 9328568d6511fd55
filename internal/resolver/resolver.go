// Package resolver computes the effective text direction for a file and
// pushes it into the presentation surfaces. Resolution walks a fixed chain:
// stored entry, rule engine, content detection, store default. The first
// two hinge on configuration (remember-per-file, a configured rule source)
// and detection is off unless explicitly enabled, so the base configuration
// resolves purely stored-or-default.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/dshills/textdir/internal/direction"
	"github.com/dshills/textdir/internal/event"
	"github.com/dshills/textdir/internal/event/events"
	"github.com/dshills/textdir/internal/logging"
	"github.com/dshills/textdir/internal/store"
	"github.com/dshills/textdir/internal/surface"
	"github.com/dshills/textdir/internal/vault"
)

// ErrNoEditSurface is returned by Toggle when no edit surface is attached.
// Callers treat it as "nothing to toggle".
var ErrNoEditSurface = errors.New("no edit surface attached")

// RuleSource supplies a direction for paths matched by user rules.
// DirectionFor returns false when no rule claims the path.
type RuleSource interface {
	DirectionFor(path string) (direction.Direction, bool)
}

// Resolver resolves directions and applies them to surfaces. It carries no
// state of its own beyond its collaborators; everything persistent lives in
// the store.
type Resolver struct {
	store    *store.Store
	surfaces surface.Set
	rules    RuleSource
	detect   bool
	fs       vault.FS
	bus      *event.Bus
	sub      *event.Subscriber
	logger   *logging.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSurfaces attaches the presentation surfaces directions are pushed into.
func WithSurfaces(s surface.Set) Option {
	return func(r *Resolver) {
		r.surfaces = s
	}
}

// WithRules attaches a rule source consulted after the store.
func WithRules(rs RuleSource) Option {
	return func(r *Resolver) {
		r.rules = rs
	}
}

// WithContentDetection enables first-strong content detection, reading file
// content through the given filesystem.
func WithContentDetection(fsys vault.FS) Option {
	return func(r *Resolver) {
		r.detect = true
		r.fs = fsys
	}
}

// WithBus attaches the event bus direction and settings changes are
// published on.
func WithBus(b *event.Bus) Option {
	return func(r *Resolver) {
		r.bus = b
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) {
		r.logger = l
	}
}

// New creates a Resolver backed by the given store.
func New(st *store.Store, opts ...Option) *Resolver {
	r := &Resolver{store: st}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.GetLogger().WithComponent("resolver")
	}
	return r
}

// Store returns the backing store.
func (r *Resolver) Store() *store.Store {
	return r.store
}

// Surfaces returns the attached surface set.
func (r *Resolver) Surfaces() surface.Set {
	return r.surfaces
}

// Resolve returns the effective direction for a path.
func (r *Resolver) Resolve(path string) direction.Direction {
	d, _ := r.ResolveWithSource(path)
	return d
}

// ResolveWithSource returns the effective direction for a path along with
// which link of the resolution chain produced it.
func (r *Resolver) ResolveWithSource(path string) (direction.Direction, Source) {
	p := vault.NormalizePath(path)

	if r.store.RememberPerFile() {
		if d, ok := r.store.Get(p); ok {
			return d, SourceStored
		}
	}
	if r.rules != nil {
		if d, ok := r.rules.DirectionFor(p); ok {
			return d, SourceRule
		}
	}
	if r.detect {
		if d, ok := r.detectContent(p); ok {
			return d, SourceDetected
		}
	}
	return r.store.DefaultDirection(), SourceDefault
}

// detectContent reads the file and runs first-strong detection on it.
// Read failures disable detection for this resolution only.
func (r *Resolver) detectContent(p string) (direction.Direction, bool) {
	if r.fs == nil {
		return direction.Default, false
	}
	data, err := r.fs.ReadFile(p)
	if err != nil {
		r.logger.Debug("failed to read %s for detection: %v", p, err)
		return direction.Default, false
	}
	return direction.Detect(string(data))
}

// Apply pushes a direction into every attached surface. Surfaces are
// best-effort; absent ones are skipped.
func (r *Resolver) Apply(d direction.Direction) {
	r.surfaces.Apply(d)
}

// ApplyFor resolves a path's direction and applies it, returning the
// resolved direction.
func (r *Resolver) ApplyFor(path string) direction.Direction {
	d := r.Resolve(path)
	r.Apply(d)
	return d
}

// Toggle flips the edit surface's current direction, applies the result to
// all surfaces, and stores it for the path when remember-per-file is on.
// Two consecutive toggles restore the starting direction.
func (r *Resolver) Toggle(path string) (direction.Direction, error) {
	if !r.surfaces.HasEdit() {
		return "", ErrNoEditSurface
	}

	next := r.surfaces.Edit.Direction().Flip()
	r.Apply(next)

	p := vault.NormalizePath(path)
	if r.store.RememberPerFile() {
		if err := r.store.Set(p, next); err != nil {
			return next, fmt.Errorf("failed to store direction for %s: %w", p, err)
		}
	}

	r.publishDirection(p, next, "toggle")
	return next, nil
}

// SetFor stores a direction for a path and applies it.
func (r *Resolver) SetFor(path string, d direction.Direction) error {
	p := vault.NormalizePath(path)
	if err := r.store.Set(p, d); err != nil {
		return err
	}
	r.Apply(d)
	r.publishDirection(p, d, "set")
	return nil
}

// ClearFor removes a path's stored entry. The path falls back to the rest
// of the resolution chain, and the re-resolved direction is applied.
func (r *Resolver) ClearFor(path string) error {
	p := vault.NormalizePath(path)
	if err := r.store.Remove(p); err != nil {
		return err
	}
	d := r.ApplyFor(p)
	r.publishDirection(p, d, "clear")
	return nil
}

// SetDefaultDirection updates the vault default and publishes a settings
// change when the value actually changed.
func (r *Resolver) SetDefaultDirection(d direction.Direction) error {
	old := r.store.DefaultDirection()
	if err := r.store.SetDefaultDirection(d); err != nil {
		return err
	}
	if old != d {
		r.publishSettings("defaultDirection", old, d)
	}
	return nil
}

// SetRememberPerFile updates the remember-per-file setting and publishes a
// settings change when the value actually changed.
func (r *Resolver) SetRememberPerFile(remember bool) error {
	old := r.store.RememberPerFile()
	if err := r.store.SetRememberPerFile(remember); err != nil {
		return err
	}
	if old != remember {
		r.publishSettings("rememberPerFile", old, remember)
	}
	return nil
}

// publishDirection emits a DirectionChanged event. Publish failures are
// logged; the change itself has already taken effect.
func (r *Resolver) publishDirection(path string, d direction.Direction, source string) {
	if r.bus == nil {
		return
	}
	err := r.bus.Publish(context.Background(), events.DirectionChanged{
		Path:      path,
		Direction: d,
		Source:    source,
	})
	if err != nil {
		r.logger.Warn("failed to publish direction change for %s: %v", path, err)
	}
}

// publishSettings emits a SettingsChanged event.
func (r *Resolver) publishSettings(key string, old, newValue any) {
	if r.bus == nil {
		return
	}
	err := r.bus.Publish(context.Background(), events.SettingsChanged{
		Key: key,
		Old: old,
		New: newValue,
	})
	if err != nil {
		r.logger.Warn("failed to publish settings change for %s: %v", key, err)
	}
}
