package event

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/textdir/internal/event/topic"
)

func TestSubscriber_CloseCancelsAll(t *testing.T) {
	bus := New()
	sub := NewSubscriber(bus)

	for _, pattern := range []topic.Topic{"test.a", "test.b", "test.c"} {
		if _, err := sub.SubscribeFunc(pattern, func(_ context.Context, _ any) error { return nil }); err != nil {
			t.Fatalf("Subscribe(%s) failed: %v", pattern, err)
		}
	}
	if got := sub.Count(); got != 3 {
		t.Fatalf("Count = %d, want 3", got)
	}
	if got := bus.SubscriptionCount(); got != 3 {
		t.Fatalf("bus SubscriptionCount = %d, want 3", got)
	}

	if err := sub.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if got := bus.SubscriptionCount(); got != 0 {
		t.Errorf("bus SubscriptionCount after Close = %d, want 0", got)
	}
	if got := sub.Count(); got != 0 {
		t.Errorf("Count after Close = %d, want 0", got)
	}
}

func TestSubscriber_SubscribeAfterClose(t *testing.T) {
	sub := NewSubscriber(New())
	if err := sub.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	_, err := sub.SubscribeFunc("test.a", func(_ context.Context, _ any) error { return nil })
	if !errors.Is(err, ErrSubscriberClosed) {
		t.Errorf("Subscribe after Close error = %v, want ErrSubscriberClosed", err)
	}
}

func TestSubscribePayload_TypeFiltering(t *testing.T) {
	bus := New()
	sub := NewSubscriber(bus)
	var got []string

	_, err := SubscribePayload(sub, "test.payload", func(_ context.Context, p testPayload) error {
		got = append(got, p.Value)
		return nil
	})
	if err != nil {
		t.Fatalf("SubscribePayload failed: %v", err)
	}

	if err := bus.Publish(context.Background(), testPayload{Value: "typed"}); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}
	// A different payload type on the same topic is skipped, not an error.
	if err := bus.PublishTo(context.Background(), "test.payload", 42); err != nil {
		t.Fatalf("PublishTo failed: %v", err)
	}

	if len(got) != 1 || got[0] != "typed" {
		t.Errorf("got = %v, want [typed]", got)
	}
}
