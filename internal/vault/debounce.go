package vault

import (
	"sync"
	"time"
)

// Debounced wraps a Watcher and coalesces rapid events on the same path
// into one. Editors commonly write a file several times in quick
// succession (temp file, write, rename); debouncing turns that burst into
// a single event carrying the combined op bitmask.
type Debounced struct {
	inner Watcher
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingEvent
	events  chan Event
	errors  chan error
	closed  bool
	closeCh chan struct{}
	wg      sync.WaitGroup
}

// pendingEvent tracks a coalesced event waiting for its timer.
type pendingEvent struct {
	event Event
	timer *time.Timer
	ops   Op
}

// NewDebounced creates a debouncing wrapper around a watcher. Events are
// held for the delay; further events on the same path merge into the
// pending one and reset the timer.
func NewDebounced(inner Watcher, delay time.Duration) *Debounced {
	if delay <= 0 {
		delay = 100 * time.Millisecond
	}

	d := &Debounced{
		inner:   inner,
		delay:   delay,
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, 100),
		errors:  make(chan error, 100),
		closeCh: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.processLoop()

	return d
}

// Ensure Debounced implements Watcher.
var _ Watcher = (*Debounced)(nil)

// Watch starts watching a path.
func (d *Debounced) Watch(path string) error {
	return d.inner.Watch(path)
}

// WatchRecursive starts watching a directory recursively.
func (d *Debounced) WatchRecursive(path string) error {
	return d.inner.WatchRecursive(path)
}

// Unwatch stops watching a path.
func (d *Debounced) Unwatch(path string) error {
	return d.inner.Unwatch(path)
}

// Events returns the debounced event channel.
func (d *Debounced) Events() <-chan Event {
	return d.events
}

// Errors returns the error channel.
func (d *Debounced) Errors() <-chan error {
	return d.errors
}

// Close stops the wrapper and the inner watcher.
func (d *Debounced) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.closeCh)

	for path, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, path)
	}
	d.mu.Unlock()

	d.wg.Wait()

	close(d.events)
	close(d.errors)

	return d.inner.Close()
}

// IsWatching returns true if the path is being watched.
func (d *Debounced) IsWatching(path string) bool {
	return d.inner.IsWatching(path)
}

// WatchedPaths returns all watched paths.
func (d *Debounced) WatchedPaths() []string {
	return d.inner.WatchedPaths()
}

// processLoop pulls events from the inner watcher.
func (d *Debounced) processLoop() {
	defer d.wg.Done()

	for {
		select {
		case <-d.closeCh:
			return

		case event, ok := <-d.inner.Events():
			if !ok {
				return
			}
			d.handleEvent(event)

		case err, ok := <-d.inner.Errors():
			if !ok {
				return
			}
			d.forwardError(err)
		}
	}
}

// handleEvent coalesces an event into the pending map.
func (d *Debounced) handleEvent(event Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if p, exists := d.pending[event.Path]; exists {
		p.ops |= event.Op
		p.event.Op = p.ops
		p.event.Timestamp = event.Timestamp
		p.timer.Reset(d.delay)
		return
	}

	p := &pendingEvent{
		event: event,
		ops:   event.Op,
	}
	p.timer = time.AfterFunc(d.delay, func() {
		d.fireEvent(event.Path)
	})
	d.pending[event.Path] = p
}

// fireEvent delivers a pending event.
func (d *Debounced) fireEvent(path string) {
	d.mu.Lock()
	p, exists := d.pending[path]
	if !exists {
		d.mu.Unlock()
		return
	}
	delete(d.pending, path)
	event := p.event
	d.mu.Unlock()

	select {
	case d.events <- event:
	case <-d.closeCh:
	default:
	}
}

// forwardError forwards an error from the inner watcher.
func (d *Debounced) forwardError(err error) {
	select {
	case d.errors <- err:
	case <-d.closeCh:
	default:
	}
}

// Flush immediately fires all pending events. Used by tests and at
// shutdown so nothing is lost to a still-running timer.
func (d *Debounced) Flush() {
	d.mu.Lock()
	paths := make([]string, 0, len(d.pending))
	for path, p := range d.pending {
		p.timer.Stop()
		paths = append(paths, path)
	}
	d.mu.Unlock()

	for _, path := range paths {
		d.fireEvent(path)
	}
}

// PendingCount returns the number of events waiting on timers.
func (d *Debounced) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
