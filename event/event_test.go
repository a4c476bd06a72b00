package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/velvet/item"
)

func TestStreamDeliversInSubscriptionOrder(t *testing.T) {
	t.Parallel()

	s := NewStream()
	var order []string
	s.Subscribe(func(Event) { order = append(order, "first") })
	s.Subscribe(func(Event) { order = append(order, "second") })
	s.Subscribe(func(Event) { order = append(order, "third") })

	s.Publish(Event{Type: Input})
	require.Equal(t, []string{"first", "second", "third"}, order)
}

func TestStreamCarriesEventFields(t *testing.T) {
	t.Parallel()

	s := NewStream()
	var got Event
	s.Subscribe(func(ev Event) { got = ev })

	it := item.New("2", "Banana")
	s.Publish(Event{Type: Change, Item: it, Index: 1, Value: "2"})
	require.Equal(t, Change, got.Type)
	require.Same(t, it, got.Item)
	require.Equal(t, 1, got.Index)
	require.Equal(t, "2", got.Value)
}

func TestStreamUnsubscribe(t *testing.T) {
	t.Parallel()

	s := NewStream()
	var a, b int
	unsubscribe := s.Subscribe(func(Event) { a++ })
	s.Subscribe(func(Event) { b++ })

	s.Publish(Event{Type: Input})
	unsubscribe()
	s.Publish(Event{Type: Input})

	require.Equal(t, 1, a)
	require.Equal(t, 2, b)

	// A second unsubscribe is a no-op.
	unsubscribe()
	s.Publish(Event{Type: Input})
	require.Equal(t, 1, a)
	require.Equal(t, 3, b)
}

func TestStreamUnsubscribeDuringPublish(t *testing.T) {
	t.Parallel()

	s := NewStream()
	var unsubscribe func()
	var later int
	s.Subscribe(func(Event) { unsubscribe() })
	unsubscribe = s.Subscribe(func(Event) { later++ })

	// The in-flight delivery completes against the snapshot taken at
	// publish time; removal applies from the next publish on.
	s.Publish(Event{Type: Opening})
	require.Equal(t, 1, later)

	s.Publish(Event{Type: Opened})
	require.Equal(t, 1, later)
}
