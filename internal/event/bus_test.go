package event_test

import (
	"testing"

	"github.com/dshills/keywarden/internal/event"
)

func TestBusPublishSubscribe(t *testing.T) {
	bus := event.NewBus()

	var got []event.Event
	bus.Subscribe(event.TypeConflictDetected, func(ev event.Event) {
		got = append(got, ev)
	})

	bus.Publish(event.TypeConflictDetected, "payload")
	bus.Publish(event.TypeSessionExpired, nil)

	if len(got) != 1 {
		t.Fatalf("expected 1 delivered event, got %d", len(got))
	}
	if got[0].Type != event.TypeConflictDetected {
		t.Errorf("unexpected type %q", got[0].Type)
	}
	if got[0].Payload != "payload" {
		t.Errorf("unexpected payload %v", got[0].Payload)
	}
	if got[0].Time.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestBusSubscribeAll(t *testing.T) {
	bus := event.NewBus()

	count := 0
	bus.SubscribeAll(func(event.Event) { count++ })

	bus.Publish(event.TypeHandlerRegistered, nil)
	bus.Publish(event.TypeFlagChanged, nil)

	if count != 2 {
		t.Errorf("expected 2 deliveries, got %d", count)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := event.NewBus()

	count := 0
	sub := bus.Subscribe(event.TypeFlagChanged, func(event.Event) { count++ })

	bus.Publish(event.TypeFlagChanged, nil)
	bus.Unsubscribe(sub)
	bus.Publish(event.TypeFlagChanged, nil)

	if count != 1 {
		t.Errorf("expected 1 delivery after unsubscribe, got %d", count)
	}

	// Unsubscribing twice is a no-op.
	bus.Unsubscribe(sub)
}

func TestBusStats(t *testing.T) {
	bus := event.NewBus()

	bus.Subscribe(event.TypeSessionExpired, func(event.Event) {})
	bus.SubscribeAll(func(event.Event) {})

	bus.Publish(event.TypeSessionExpired, nil)

	stats := bus.Stats()
	if stats.Published != 1 {
		t.Errorf("expected 1 published, got %d", stats.Published)
	}
	if stats.Delivered != 2 {
		t.Errorf("expected 2 delivered, got %d", stats.Delivered)
	}
	if stats.Subscribers != 2 {
		t.Errorf("expected 2 subscribers, got %d", stats.Subscribers)
	}
}
