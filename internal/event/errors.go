package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/textdir/internal/event/topic"
)

// Sentinel errors for the event bus.
var (
	// ErrBusClosed is returned when operations are attempted on a closed bus.
	ErrBusClosed = errors.New("event bus is closed")

	// ErrInvalidTopic is returned when a topic is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrNilHandler is returned when subscribing with a nil handler.
	ErrNilHandler = errors.New("handler is nil")

	// ErrSubscriptionNotFound is returned when unsubscribing a subscription
	// the bus does not hold.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrSubscriberClosed is returned when subscribing through a closed
	// Subscriber.
	ErrSubscriberClosed = errors.New("subscriber is closed")
)

// PublishError aggregates handler failures from a single publish.
// Dispatch continues past failing handlers; the publisher receives all
// errors at once.
type PublishError struct {
	// Topic is the topic that was published.
	Topic topic.Topic

	// Errs holds one error per failed handler.
	Errs []error
}

// Error implements the error interface.
func (e *PublishError) Error() string {
	if len(e.Errs) == 1 {
		return fmt.Sprintf("publish %s: %v", e.Topic, e.Errs[0])
	}
	msgs := make([]string, 0, len(e.Errs))
	for _, err := range e.Errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("publish %s: %d handlers failed: %s", e.Topic, len(e.Errs), strings.Join(msgs, "; "))
}

// Unwrap returns the individual handler errors.
func (e *PublishError) Unwrap() []error {
	return e.Errs
}
