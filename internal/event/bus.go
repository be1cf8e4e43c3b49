// Package event provides a small synchronous pub/sub bus for registry
// and security observability events. Delivery happens inline on the
// publishing goroutine; handlers must not block.
package event

import (
	"sort"
	"sync"
	"time"
)

// Type identifies a category of observability event.
type Type string

// Event types published by the core.
const (
	TypeHandlerRegistered   Type = "handler.registered"
	TypeHandlerUnregistered Type = "handler.unregistered"
	TypeConflictDetected    Type = "conflict.detected"
	TypeSessionExpired      Type = "session.expired"
	TypeFlagChanged         Type = "flag.changed"
)

// Event carries one observability notification.
type Event struct {
	// Type identifies the event category.
	Type Type

	// Time is when the event was published.
	Time time.Time

	// Payload holds type-specific data.
	Payload any
}

// Handler receives published events.
type Handler func(Event)

// Subscription identifies an active subscription for later removal.
type Subscription uint64

type subscriber struct {
	id Subscription
	fn Handler
}

// Bus delivers events synchronously to subscribers.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Type][]subscriber
	all    []subscriber
	nextID Subscription

	published uint64
	delivered uint64
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[Type][]subscriber),
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t Type, fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[t] = append(b.subs[t], subscriber{id: b.nextID, fn: fn})
	return b.nextID
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(fn Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.all = append(b.all, subscriber{id: b.nextID, fn: fn})
	return b.nextID
}

// Unsubscribe removes a subscription. Unknown subscriptions are a no-op.
func (b *Bus) Unsubscribe(sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for t, subs := range b.subs {
		b.subs[t] = removeSub(subs, sub)
	}
	b.all = removeSub(b.all, sub)
}

func removeSub(subs []subscriber, id Subscription) []subscriber {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}

// Publish delivers an event to all matching subscribers synchronously.
// The event's Time field is set if zero.
func (b *Bus) Publish(t Type, payload any) {
	ev := Event{Type: t, Time: time.Now(), Payload: payload}

	b.mu.RLock()
	targets := make([]subscriber, 0, len(b.subs[t])+len(b.all))
	targets = append(targets, b.subs[t]...)
	targets = append(targets, b.all...)
	b.mu.RUnlock()

	b.mu.Lock()
	b.published++
	b.delivered += uint64(len(targets))
	b.mu.Unlock()

	// Deliver in subscription order.
	sort.Slice(targets, func(i, j int) bool { return targets[i].id < targets[j].id })
	for _, s := range targets {
		s.fn(ev)
	}
}

// Stats reports bus counters.
type Stats struct {
	Published   uint64
	Delivered   uint64
	Subscribers int
}

// Stats returns a snapshot of bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := len(b.all)
	for _, subs := range b.subs {
		n += len(subs)
	}
	return Stats{
		Published:   b.published,
		Delivered:   b.delivered,
		Subscribers: n,
	}
}
