package events

import (
	"context"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler) (unsubscribe func())
}

// inMemoryDispatcher is a simple synchronous dispatcher. Handlers run in
// registration order, strictly after the triggering mutation is applied.
type inMemoryDispatcher struct {
	mu     sync.RWMutex
	nextID int
	order  map[EventType][]int
	byID   map[EventType]map[int]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{
		order: make(map[EventType][]int),
		byID:  make(map[EventType]map[int]EventHandler),
	}
}

// Publish synchronously invokes handlers for the given event. The handler list
// is snapshotted before fan-out, so unsubscribing mid-pass does not affect the
// handlers already scheduled for this event.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := make([]EventHandler, 0, len(d.order[event.Type]))
	for _, id := range d.order[event.Type] {
		if handler, ok := d.byID[event.Type][id]; ok {
			handlers = append(handlers, handler)
		}
	}
	d.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			// continue processing other handlers despite errors
		}
	}
	return nil
}

// Subscribe registers a handler for the given event type and returns a
// function that removes it. The returned function is idempotent.
func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) func() {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	if d.byID[eventType] == nil {
		d.byID[eventType] = make(map[int]EventHandler)
	}
	d.byID[eventType][id] = handler
	d.order[eventType] = append(d.order[eventType], id)

	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		delete(d.byID[eventType], id)
	}
}
