package dropdown

import (
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/overlay"
)

// SelectionInputMsg is sent when the canonical selection changes identity,
// whether from a user commit or a programmatic call such as
// [Select.SetValue]. It fires exactly once per change, never for a
// redundant re-selection.
type SelectionInputMsg struct {
	Item  *item.Item
	Index int
	Value string
}

// SelectionChangeMsg is sent immediately after [SelectionInputMsg] once the
// committed choice has become the canonical value.
type SelectionChangeMsg struct {
	Item  *item.Item
	Index int
	Value string
}

// OpenedMsg is sent when the menu's enter transition has settled.
type OpenedMsg struct{}

// ClosedMsg is sent when the menu's exit transition has settled.
type ClosedMsg struct {
	Reason overlay.Reason
}
