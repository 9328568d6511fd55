package config

import (
	"strings"
	"sync"
)

// Change is a single configuration value change.
type Change struct {
	// Path is the dot-separated config path ("direction.default").
	Path string

	// Old is the previous value.
	Old any

	// New is the current value.
	New any

	// Source identifies where the change came from ("reload", "cli", ...).
	Source string
}

// Observer is called when a configuration value changes.
type Observer func(change Change)

// Subscription is an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier delivers configuration changes to observers. Delivery is
// synchronous on the notifying goroutine.
type Notifier struct {
	mu sync.RWMutex

	global map[uint64]Observer
	byPath map[string]map[uint64]Observer
	nextID uint64
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{
		global: make(map[uint64]Observer),
		byPath: make(map[string]map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.global[id] = observer

	return &Subscription{id: id, notifier: n}
}

// SubscribePath registers an observer for one config path. Subscribing to
// a parent path receives changes to its children: "direction" sees
// "direction.default".
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	if n.byPath[path] == nil {
		n.byPath[path] = make(map[uint64]Observer)
	}
	n.byPath[path][id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers a change to every matching observer.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.global))
	for _, o := range n.global {
		observers = append(observers, o)
	}
	for path, subs := range n.byPath {
		if path == change.Path || isParentPath(path, change.Path) {
			for _, o := range subs {
				observers = append(observers, o)
			}
		}
	}
	n.mu.RUnlock()

	for _, o := range observers {
		o(change)
	}
}

// NotifyAll delivers a batch of changes in order.
func (n *Notifier) NotifyAll(changes []Change) {
	for _, c := range changes {
		n.Notify(c)
	}
}

// unsubscribe removes an observer by id.
func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for path, subs := range n.byPath {
		delete(subs, id)
		if len(subs) == 0 {
			delete(n.byPath, path)
		}
	}
}

// isParentPath reports whether parent is a dotted-path ancestor of child.
func isParentPath(parent, child string) bool {
	return strings.HasPrefix(child, parent+".")
}
