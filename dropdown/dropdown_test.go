package dropdown

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/velvet/event"
	"github.com/charmbracelet/velvet/interaction"
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/overlay"
	"github.com/charmbracelet/velvet/styles"
)

func colorSelect(opts ...Option) *Select {
	m := New([]*item.Item{
		item.New("red", "Red"),
		item.New("green", "Green"),
		item.New("blue", "Blue"),
	}, append([]Option{WithQuickMotion()}, opts...)...)
	m.Focus()
	return m
}

func press(t *testing.T, m *Select, msgs ...tea.Msg) *Select {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func keyEnter() tea.Msg  { return tea.KeyPressMsg{Code: tea.KeyEnter} }
func keyEsc() tea.Msg    { return tea.KeyPressMsg{Code: tea.KeyEscape} }
func keyDown() tea.Msg   { return tea.KeyPressMsg{Code: tea.KeyDown} }
func keyUp() tea.Msg     { return tea.KeyPressMsg{Code: tea.KeyUp} }
func keyEnd() tea.Msg    { return tea.KeyPressMsg{Code: tea.KeyEnd} }
func keySpace() tea.Msg  { return tea.KeyPressMsg{Code: ' ', Text: " "} }
func keyRune(r rune) tea.Msg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestOpenKeysExpandMenu(t *testing.T) {
	t.Parallel()
	for _, msg := range []tea.Msg{keyEnter(), keySpace(), keyDown(), keyUp()} {
		m := colorSelect()
		m = press(t, m, msg)
		require.Equal(t, overlay.Open, m.Phase())
	}
}

func TestUnfocusedIgnoresKeys(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.Blur()
	m = press(t, m, keyEnter())
	require.Equal(t, overlay.Closed, m.Phase())
}

func TestNavigateAndConfirm(t *testing.T) {
	t.Parallel()
	m := colorSelect()

	var types []event.Type
	m.Subscribe(func(ev event.Event) {
		if ev.Type == event.Input || ev.Type == event.Change {
			types = append(types, ev.Type)
		}
	})

	m = press(t, m, keyEnter(), keyDown(), keyEnter())
	require.Equal(t, "red", m.Value())
	require.Equal(t, 0, m.SelectedIndex())
	require.Equal(t, overlay.Closed, m.Phase())
	require.Equal(t, []event.Type{event.Input, event.Change}, types)
}

func TestConfirmSameItemEmitsNothing(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("red")

	var n int
	m.Subscribe(func(ev event.Event) {
		if ev.Type == event.Input || ev.Type == event.Change {
			n++
		}
	})

	m = press(t, m, keyEnter(), keyEnter())
	require.Equal(t, overlay.Closed, m.Phase())
	require.Zero(t, n)
	require.Equal(t, "red", m.Value())
}

func TestEscapeKeepsValue(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("green")

	m = press(t, m, keyEnter(), keyDown(), keyEsc())
	require.Equal(t, overlay.Closed, m.Phase())
	require.Equal(t, "green", m.Value())
	for _, it := range m.Options() {
		require.False(t, it.Active() && !it.Selected())
	}
}

func TestCloseReasonDistinguishesSelection(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	var reasons []overlay.Reason
	m.Subscribe(func(ev event.Event) {
		if ev.Type == event.Closed {
			reasons = append(reasons, overlay.Reason(ev.Reason))
		}
	})

	m = press(t, m, keyEnter(), keyDown(), keyEnter()) // choose
	m = press(t, m, keyEnter(), keyEsc())              // abandon
	require.Equal(t, []overlay.Reason{overlay.ReasonSelection, overlay.ReasonEscape}, reasons)
	require.True(t, reasons[0].Selecting())
	require.False(t, reasons[1].Selecting())
}

func TestTypeaheadWhileClosedSelectsWithoutOpening(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m = press(t, m, keyRune('g'))
	require.Equal(t, overlay.Closed, m.Phase())
	require.Equal(t, "green", m.Value())
	require.Equal(t, "Green", m.Announcement())
}

func TestSpaceExtendsHotBuffer(t *testing.T) {
	t.Parallel()
	m := New([]*item.Item{
		item.New("red", "Red"),
		item.New("blue", "Blue"),
		item.New("blue green", "Blue Green"),
	}, WithQuickMotion(), WithTypeaheadInterval(time.Hour))
	m.Focus()

	for _, r := range "blue g" {
		m = press(t, m, keyRune(r))
	}
	require.Equal(t, overlay.Closed, m.Phase())
	require.Equal(t, "blue green", m.Value())
}

func TestTypeaheadWhileOpenOnlyMovesHighlight(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m = press(t, m, keyEnter(), keyRune('b'))
	require.Equal(t, overlay.Open, m.Phase())
	require.Empty(t, m.Value())
	require.True(t, m.Options()[2].Active())
}

func TestAnnouncementSuppressedWhileOpen(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m = press(t, m, keyEnter(), keyRune('b'))
	require.Empty(t, m.Announcement())
}

func TestSetValueEmitsInputThenChange(t *testing.T) {
	t.Parallel()
	m := colorSelect()

	var seen []event.Event
	m.Subscribe(func(ev event.Event) { seen = append(seen, ev) })

	m.SetValue("green")
	require.Len(t, seen, 2)
	require.Equal(t, event.Input, seen[0].Type)
	require.Equal(t, event.Change, seen[1].Type)
	require.Equal(t, 1, seen[0].Index)
	require.Equal(t, "green", seen[0].Value)

	// The same value again is silent.
	seen = nil
	m.SetValue("green")
	require.Empty(t, seen)
}

func TestDeferredSetValue(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("violet")
	require.Empty(t, m.Value())

	m.AppendOptions(item.New("violet", "Violet"))
	require.Equal(t, "violet", m.Value())
	require.Equal(t, 3, m.SelectedIndex())
}

func TestRemovedSelectionKeepsLastValue(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("green")

	green, _, ok := m.Selected()
	require.True(t, ok)
	m.RemoveOption(green)

	require.Equal(t, "green", m.Value())
	_, _, ok = m.Selected()
	require.False(t, ok)
	require.Empty(t, m.SelectedItems())

	m = press(t, m, keyEnter(), keyDown(), keyEnter())
	require.Equal(t, "red", m.Value())
}

func TestInterceptCancelKeepsMenuOpen(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("red")

	remove := m.Intercept(func(in interaction.Interaction) bool {
		return in.Item.Value() == "blue"
	})

	m = press(t, m, keyEnter(), keyEnd(), keyEnter())
	require.Equal(t, overlay.Open, m.Phase())
	require.Equal(t, "red", m.Value())

	remove()
	m = press(t, m, keyEnter())
	require.Equal(t, "blue", m.Value())
	require.Equal(t, overlay.Closed, m.Phase())
}

func TestViewPlaceholderAndArrow(t *testing.T) {
	t.Parallel()
	m := colorSelect(WithPlaceholder("Pick a color"))
	view := m.View()
	require.Contains(t, view, "Pick a color")
	require.Contains(t, view, styles.ArrowCollapsed)

	m = press(t, m, keyEnter())
	view = m.View()
	require.Contains(t, view, styles.ArrowExpanded)
	require.Contains(t, view, "Green")
}

func TestViewShowsSelectionMark(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("blue")
	m = press(t, m, keyEnter())
	require.Contains(t, m.View(), styles.CheckIcon+" Blue")
	require.Contains(t, m.FieldView(), "Blue")
}

func letterItems() []*item.Item {
	var items []*item.Item
	for _, label := range strings.Fields("a b c d e f g h i j k l m n o p q r s t") {
		items = append(items, item.New(label, label))
	}
	return items
}

func TestEndRevealsLastRow(t *testing.T) {
	t.Parallel()
	m := New(letterItems(), WithQuickMotion(), WithMaxHeight(5))
	m.Focus()

	m = press(t, m, keyEnter(), keyEnd())
	require.Equal(t, 15, m.offset)
	require.Contains(t, m.MenuView(), "t")
}

func TestOpenRevealsPreselectionInstantly(t *testing.T) {
	t.Parallel()
	m := New(letterItems(), WithMaxHeight(5))
	m.Focus()
	m.SetValue("t")

	m = press(t, m, keyEnter())
	require.Equal(t, overlay.Opening, m.Phase())
	require.Equal(t, 15, m.offset, "restoration jumps, no easing frames")
}

func TestNavigationScrollEases(t *testing.T) {
	t.Parallel()
	m := New(letterItems(), WithMaxHeight(5))
	m.Focus()

	m = press(t, m, keyEnter(), keyEnd())
	require.Equal(t, 15, m.targetOffset)
	require.Zero(t, m.offset, "easing starts on the next frame")

	for i := 0; i < 10 && m.offset != m.targetOffset; i++ {
		m = press(t, m, scrollStepMsg{id: m.id})
	}
	require.Equal(t, 15, m.offset)
}

func TestClickTogglesAndSelects(t *testing.T) {
	t.Parallel()
	m := colorSelect()

	_ = m.HandleClick(1, 1)
	require.Equal(t, overlay.Open, m.Phase())

	// Second menu row.
	_ = m.HandleClick(2, fieldHeight+2)
	require.Equal(t, "green", m.Value())
	require.Equal(t, overlay.Closed, m.Phase())
}

func TestOutsideClickDismisses(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m.SetValue("red")

	_ = m.HandleClick(1, 1)
	require.Equal(t, overlay.Open, m.Phase())

	_ = m.HandleClick(m.width+5, 1)
	require.Equal(t, overlay.Closed, m.Phase())
	require.Equal(t, overlay.ReasonDismiss, m.ctrl.CloseReason())
	require.Equal(t, "red", m.Value())
}

func TestBlurDismissesOpenMenu(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m = press(t, m, keyEnter())
	require.Equal(t, overlay.Open, m.Phase())

	_ = m.Blur()
	require.Equal(t, overlay.Closed, m.Phase())
	require.False(t, m.Focused())
}

func TestAnimatedOpenSettlesThroughFrames(t *testing.T) {
	t.Parallel()
	m := New([]*item.Item{
		item.New("red", "Red"),
		item.New("green", "Green"),
		item.New("blue", "Blue"),
	}, WithMaxHeight(8))
	m.Focus()

	m = press(t, m, keyEnter())
	require.Equal(t, overlay.Opening, m.Phase())

	for i := 0; i < 10 && m.Phase() == overlay.Opening; i++ {
		m = press(t, m, animStepMsg{id: m.id, tag: m.tag})
	}
	require.Equal(t, overlay.Open, m.Phase())

	m = press(t, m, keyEsc())
	require.Equal(t, overlay.Closing, m.Phase())
	for i := 0; i < 10 && m.Phase() == overlay.Closing; i++ {
		m = press(t, m, animStepMsg{id: m.id, tag: m.tag})
	}
	require.Equal(t, overlay.Closed, m.Phase())
}

func TestStaleAnimFramesIgnored(t *testing.T) {
	t.Parallel()
	m := colorSelect()
	m = press(t, m, animStepMsg{id: m.id, tag: 99})
	require.Equal(t, overlay.Closed, m.Phase())
}
