// Package event provides a small synchronous pub/sub bus for engine
// lifecycle notifications. Handlers run on the publisher's goroutine;
// subscribers that need decoupling should hand off to their own.
package event

import "sync"

// Type identifies an event category.
type Type string

const (
	// CommandExecuted fires after a command completes, success or failure.
	CommandExecuted Type = "command.executed"
	// CommandUndone fires after a successful undo.
	CommandUndone Type = "command.undone"
	// CommandRedone fires after a successful redo.
	CommandRedone Type = "command.redone"
	// SelectionChanged fires when the backend reports a new selection.
	SelectionChanged Type = "selection.changed"
)

// Event is one published notification.
type Event struct {
	Type Type
	// Data is event-specific payload; see the publisher for its shape.
	Data map[string]any
}

// Handler receives published events. Handlers must not block.
type Handler func(Event)

// Bus fans published events out to type-matched subscribers.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Type]map[int]Handler
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Type]map[int]Handler)}
}

// Subscribe registers a handler for one event type and returns an
// unsubscribe function. Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(t Type, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	if b.subs[t] == nil {
		b.subs[t] = make(map[int]Handler)
	}
	b.subs[t][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[t], id)
	}
}

// Publish delivers the event to every subscriber of its type, in
// unspecified order. A handler panic propagates to the publisher.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[ev.Type]))
	for _, h := range b.subs[ev.Type] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}

// SubscriberCount reports the number of live subscriptions for a type.
func (b *Bus) SubscriberCount(t Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[t])
}
