package event

import (
	"slices"
	"sync"
	"time"
)

// Handler processes specific event types
// Systems implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from Publish
	HandleEvent(ev GameEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a plain function to a single-type subscription
type HandlerFunc func(ev GameEvent)

// Subscription identifies one registration for Unsubscribe
type Subscription struct {
	Type EventType
	id   uint64
}

type subscriber struct {
	id uint64
	fn HandlerFunc
}

// Bus is the observer registry shared by one session
//
// Architecture:
//   - Publish is synchronous: every current subscriber runs before Publish returns
//   - Subscribers run in registration order
//   - Subscriber lists are copy-on-write, so handlers may subscribe or unsubscribe during dispatch;
//     changes apply from the next Publish
//   - Re-entrant mutation of the publishing component is the publisher's concern (see ScoreTracker)
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscriber
	nextID   uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]subscriber),
	}
}

// Subscribe registers fn for one event type
func (b *Bus) Subscribe(t EventType, fn HandlerFunc) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := subscriber{id: b.nextID, fn: fn}

	current := b.handlers[t]
	next := make([]subscriber, len(current), len(current)+1)
	copy(next, current)
	b.handlers[t] = append(next, sub)

	return Subscription{Type: t, id: sub.id}
}

// Register adds a handler for its declared event types
func (b *Bus) Register(h Handler) []Subscription {
	types := h.EventTypes()
	subs := make([]Subscription, 0, len(types))
	for _, t := range types {
		subs = append(subs, b.Subscribe(t, h.HandleEvent))
	}
	return subs
}

// Unsubscribe removes a registration, unknown subscriptions are ignored
func (b *Bus) Unsubscribe(s Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.handlers[s.Type]
	idx := slices.IndexFunc(current, func(sub subscriber) bool { return sub.id == s.id })
	if idx < 0 {
		return
	}
	next := make([]subscriber, 0, len(current)-1)
	next = append(next, current[:idx]...)
	next = append(next, current[idx+1:]...)
	b.handlers[s.Type] = next
}

// Publish delivers ev to all current subscribers of its type
func (b *Bus) Publish(ev GameEvent) {
	b.mu.RLock()
	subs := b.handlers[ev.Type]
	b.mu.RUnlock()

	for _, sub := range subs {
		sub.fn(ev)
	}
}

// Emit builds and publishes an event stamped with game time
func (b *Bus) Emit(t EventType, payload any, now time.Time) {
	b.Publish(GameEvent{Type: t, Payload: payload, Time: now})
}

// HandlerCount returns the number of subscribers for the given type
func (b *Bus) HandlerCount(t EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[t])
}
