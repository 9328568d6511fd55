package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/textdir/internal/event/topic"
)

// TopicProvider is implemented by payloads that know their own topic.
// All payload types in the events package implement it.
type TopicProvider interface {
	Topic() topic.Topic
}

// Metadata contains standard information attached to every envelope.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was published.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// Envelope wraps a payload with its topic and metadata for delivery.
// Handlers receive the envelope type-erased and assert on Payload.
type Envelope struct {
	// Topic is the topic the payload was published on.
	Topic topic.Topic

	// Payload is the event-specific data.
	Payload any

	// Metadata carries the event identity.
	Metadata Metadata
}

// newEnvelope wraps a payload for dispatch.
func newEnvelope(t topic.Topic, payload any, source string) Envelope {
	return Envelope{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}
