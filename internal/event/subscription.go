package event

import (
	"github.com/google/uuid"

	"github.com/dshills/textdir/internal/event/topic"
)

// Subscription represents a registered handler on the bus.
type Subscription struct {
	id       string
	pattern  topic.Topic
	handler  Handler
	priority Priority
	seq      uint64
	bus      *Bus
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Pattern returns the topic pattern this subscription matches.
func (s *Subscription) Pattern() topic.Topic {
	return s.pattern
}

// Priority returns the subscription priority.
func (s *Subscription) Priority() Priority {
	return s.priority
}

// Cancel removes the subscription from its bus.
// Cancelling an already-removed subscription is a no-op.
func (s *Subscription) Cancel() {
	if s.bus != nil {
		_ = s.bus.Unsubscribe(s)
	}
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*Subscription)

// WithPriority sets the subscription's dispatch priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *Subscription) {
		s.priority = p
	}
}

// newSubscription creates a subscription with defaults applied.
func newSubscription(bus *Bus, pattern topic.Topic, handler Handler, seq uint64, opts ...SubscriptionOption) *Subscription {
	sub := &Subscription{
		id:       uuid.NewString(),
		pattern:  pattern,
		handler:  handler,
		priority: PriorityNormal,
		seq:      seq,
		bus:      bus,
	}
	for _, opt := range opts {
		opt(sub)
	}
	return sub
}
