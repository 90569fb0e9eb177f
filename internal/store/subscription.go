package store

import "sync"

// subscriberList is the listener registry shared by both stores. Listeners are
// notified in registration order with the notification list snapshotted before
// fan-out: unsubscribing during a pass never affects the callbacks already
// scheduled for that pass. Unsubscribe functions are idempotent.
type subscriberList[T any] struct {
	mu     sync.Mutex
	nextID int
	order  []int
	byID   map[int]func(T)
}

func newSubscriberList[T any]() *subscriberList[T] {
	return &subscriberList[T]{byID: make(map[int]func(T))}
}

// Subscribe registers fn and returns its removal function.
func (l *subscriberList[T]) Subscribe(fn func(T)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.byID[id] = fn
	l.order = append(l.order, id)

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.byID, id)
	}
}

// Notify invokes every registered listener with v, outside the registry lock
// so listeners may subscribe, unsubscribe or query stores reentrantly.
func (l *subscriberList[T]) Notify(v T) {
	l.mu.Lock()
	fns := make([]func(T), 0, len(l.order))
	kept := l.order[:0]
	for _, id := range l.order {
		if fn, ok := l.byID[id]; ok {
			fns = append(fns, fn)
			kept = append(kept, id)
		}
	}
	l.order = kept
	l.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}
