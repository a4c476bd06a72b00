package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/velvet/event"
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/selection"
)

func newController(items ...*item.Item) (*Controller, *selection.Registry, *event.Stream) {
	stream := event.NewStream()
	reg := selection.NewRegistry(item.NewSliceSource(items...), stream)
	return NewController(reg, stream), reg, stream
}

func TestControllerLifecycleOrder(t *testing.T) {
	t.Parallel()

	c, _, stream := newController(item.New("1", "One"))
	var seen []event.Type
	stream.Subscribe(func(ev event.Event) { seen = append(seen, ev.Type) })

	require.True(t, c.RequestOpen())
	require.True(t, c.FinishOpen())
	require.True(t, c.RequestClose(ReasonEscape))
	require.True(t, c.FinishClose())

	require.Equal(t, []event.Type{event.Opening, event.Opened, event.Closing, event.Closed}, seen)
	require.Equal(t, Closed, c.Phase())
	require.Equal(t, ReasonEscape, c.CloseReason())
}

func TestControllerIdempotentRequests(t *testing.T) {
	t.Parallel()

	c, _, _ := newController()

	require.False(t, c.RequestClose(ReasonEscape), "close while closed")
	require.False(t, c.FinishOpen(), "finish before request")

	require.True(t, c.RequestOpen())
	require.False(t, c.RequestOpen(), "open while opening")
	require.False(t, c.RequestClose(ReasonEscape), "close while still opening")

	require.True(t, c.FinishOpen())
	require.False(t, c.FinishOpen())

	require.True(t, c.RequestClose(ReasonSelection))
	require.False(t, c.RequestOpen(), "open while closing")
	require.False(t, c.RequestClose(ReasonEscape))

	require.True(t, c.FinishClose())
	require.False(t, c.FinishClose())
}

func TestControllerClosedOnlyAfterSettle(t *testing.T) {
	t.Parallel()

	c, _, _ := newController()
	c.RequestOpen()
	c.FinishOpen()
	c.RequestClose(ReasonDismiss)

	require.Equal(t, Closing, c.Phase())
	require.True(t, c.Visible(), "exit animation still showing")
	require.False(t, c.AnnouncementsEnabled())

	c.FinishClose()
	require.Equal(t, Closed, c.Phase())
	require.False(t, c.Visible())
	require.True(t, c.AnnouncementsEnabled())
}

func TestControllerOpenActivatesSelection(t *testing.T) {
	t.Parallel()

	items := []*item.Item{
		item.New("1", "One"),
		item.New("2", "Two"),
		item.New("3", "Three"),
	}
	c, reg, _ := newController(items...)
	reg.Select(items[2])

	// Simulate a stale highlight left on another item.
	items[0].SetActive(true)

	c.RequestOpen()
	require.False(t, items[0].Active(), "stale highlight cleared")
	require.True(t, items[2].Active(), "selection becomes active")
}

func TestControllerOpenWithoutSelection(t *testing.T) {
	t.Parallel()

	items := []*item.Item{item.New("1", "One"), item.New("2", "Two")}
	c, _, _ := newController(items...)
	items[1].SetActive(true)

	c.RequestOpen()
	require.False(t, items[1].Active())
	require.False(t, items[0].Active())
}
