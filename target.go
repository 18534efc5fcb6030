package chordkeys

import (
	"slices"
	"sync"
)

// Target is an in-memory Source. Hosts that produce key events themselves
// (a terminal, a test, a replay of a log) dispatch them on a Target and
// attach the Matcher and Recorder to it.
type Target struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener
}

type listener struct {
	id uint64
	fn func(Event)
}

// NewTarget creates a Target without listeners.
func NewTarget() *Target {
	return &Target{}
}

// Subscribe adds fn to the listener list. The returned function removes it
// and is safe to call more than once.
func (t *Target) Subscribe(fn func(Event)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.listeners = append(t.listeners, listener{id: id, fn: fn})

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.listeners = slices.DeleteFunc(t.listeners, func(l listener) bool {
			return l.id == id
		})
	}
}

// Dispatch delivers e synchronously to every listener, in subscription order.
// Listeners added or removed while e is being delivered take effect for the
// next event. A panicking listener stops the delivery of e.
//
// Parameters:
//   - e: Event to deliver.
func (t *Target) Dispatch(e Event) {
	t.mu.Lock()
	listeners := slices.Clone(t.listeners)
	t.mu.Unlock()

	for _, l := range listeners {
		l.fn(e)
	}
}

// Len returns the number of attached listeners.
func (t *Target) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}
