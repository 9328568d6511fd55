package event

import (
	"context"
	"sync"

	"github.com/dshills/textdir/internal/event/topic"
)

// Subscriber manages a component's subscriptions and cancels them together
// on Close.
type Subscriber struct {
	bus    *Bus
	mu     sync.Mutex
	subs   []*Subscription
	closed bool
}

// NewSubscriber creates a Subscriber wrapping the given bus.
func NewSubscriber(bus *Bus) *Subscriber {
	return &Subscriber{bus: bus}
}

// Subscribe creates a tracked subscription for the given topic pattern.
func (s *Subscriber) Subscribe(pattern topic.Topic, handler Handler, opts ...SubscriptionOption) (*Subscription, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSubscriberClosed
	}

	sub, err := s.bus.Subscribe(pattern, handler, opts...)
	if err != nil {
		return nil, err
	}
	s.subs = append(s.subs, sub)
	return sub, nil
}

// SubscribeFunc creates a tracked subscription with a function handler.
func (s *Subscriber) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return s.Subscribe(pattern, fn, opts...)
}

// SubscribePayload creates a tracked subscription whose handler receives the
// payload already asserted to T. Envelopes carrying a different payload type
// are skipped silently.
func SubscribePayload[T any](s *Subscriber, pattern topic.Topic, handler func(ctx context.Context, payload T) error, opts ...SubscriptionOption) (*Subscription, error) {
	fn := HandlerFunc(func(ctx context.Context, event any) error {
		env, ok := event.(Envelope)
		if !ok {
			return nil
		}
		payload, ok := env.Payload.(T)
		if !ok {
			return nil
		}
		return handler(ctx, payload)
	})
	return s.Subscribe(pattern, fn, opts...)
}

// Count returns the number of tracked subscriptions.
func (s *Subscriber) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Close cancels all tracked subscriptions and prevents new ones.
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	for _, sub := range s.subs {
		_ = s.bus.Unsubscribe(sub)
	}
	s.subs = nil
	return nil
}
