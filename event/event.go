// Package event is the notification channel between velvet's selection core
// and its consumers. Instead of DOM-style event retargeting, the core
// publishes typed events on a [Stream] and widgets re-broadcast them as
// Bubble Tea messages.
package event

import (
	"sync"

	"github.com/charmbracelet/velvet/item"
)

// Type identifies a notification kind.
type Type string

// Selection notifications. Input and Change always fire as a pair, Input
// first, and only when the canonical selection actually changed.
const (
	Input  Type = "input"
	Change Type = "change"
)

// Overlay lifecycle notifications, re-broadcast by the open/close
// controller in the order they occur.
const (
	Opening Type = "opening"
	Opened  Type = "opened"
	Closing Type = "closing"
	Closed  Type = "closed"
)

// Event is a single notification.
type Event struct {
	Type Type

	// Item and Index describe the selection for Input/Change events. Index
	// is -1 when nothing is selected.
	Item  *item.Item
	Index int

	// Value mirrors the canonical selection's value at emission time.
	Value string

	// Reason carries the close reason for Closing/Closed events, when one
	// was given.
	Reason string
}

// Listener receives published events.
type Listener func(Event)

// Stream is a small publish/subscribe channel. Subscription and publishing
// are safe to interleave from command goroutines; listeners run
// synchronously on the publishing goroutine in subscription order.
type Stream struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// NewStream creates an empty stream.
func NewStream() *Stream {
	return &Stream{}
}

// Subscribe registers a listener and returns a func that removes it.
func (s *Stream) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, subscription{id: id, fn: fn})
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.listeners {
			if sub.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every listener in subscription order.
func (s *Stream) Publish(ev Event) {
	s.mu.Lock()
	subs := append(s.listeners[:0:0], s.listeners...)
	s.mu.Unlock()
	for _, sub := range subs {
		sub.fn(ev)
	}
}
