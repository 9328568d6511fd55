// Package event provides a synchronous publish/subscribe bus with
// hierarchical topics. Handlers run in-line on the publisher's goroutine,
// ordered by priority then subscription age, which keeps direction updates
// strictly sequential.
package event

import (
	"context"
	"sort"
	"sync"

	"github.com/dshills/textdir/internal/event/topic"
)

// Bus routes published payloads to matching subscriptions.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription
	seq    uint64
	source string
	closed bool
}

// Option configures a Bus.
type Option func(*Bus)

// WithSource sets the source recorded in envelope metadata.
func WithSource(source string) Option {
	return func(b *Bus) {
		b.source = source
	}
}

// New creates an empty bus.
func New(opts ...Option) *Bus {
	b := &Bus{source: "textdir"}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for topics matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, ErrInvalidTopic
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrBusClosed
	}

	b.seq++
	sub := newSubscription(b, pattern, handler, b.seq, opts...)
	b.subs = append(b.subs, sub)
	return sub, nil
}

// SubscribeFunc registers a function handler for topics matching pattern.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Unsubscribe removes a subscription from the bus.
func (b *Bus) Unsubscribe(sub *Subscription) error {
	if sub == nil {
		return ErrSubscriptionNotFound
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, tracked := range b.subs {
		if tracked.id == sub.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Publish delivers a payload on the topic it declares.
func (b *Bus) Publish(ctx context.Context, payload TopicProvider) error {
	if payload == nil {
		return ErrInvalidTopic
	}
	return b.PublishTo(ctx, payload.Topic(), payload)
}

// PublishTo delivers a payload on an explicit topic.
// Handlers execute synchronously in priority order; all handler errors are
// collected into a PublishError rather than stopping dispatch.
func (b *Bus) PublishTo(ctx context.Context, t topic.Topic, payload any) error {
	if !t.IsValid() {
		return ErrInvalidTopic
	}

	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return ErrBusClosed
	}
	matched := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if t.Matches(sub.pattern) {
			matched = append(matched, sub)
		}
	}
	source := b.source
	b.mu.RUnlock()

	if len(matched) == 0 {
		return nil
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].priority != matched[j].priority {
			return matched[i].priority < matched[j].priority
		}
		return matched[i].seq < matched[j].seq
	})

	env := newEnvelope(t, payload, source)

	var errs []error
	for _, sub := range matched {
		if err := sub.handler.Handle(ctx, env); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &PublishError{Topic: t, Errs: errs}
	}
	return nil
}

// SubscriptionCount returns the number of active subscriptions.
func (b *Bus) SubscriptionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close removes all subscriptions and rejects further use.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true
	b.subs = nil
	return nil
}
