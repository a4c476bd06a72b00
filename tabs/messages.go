package tabs

import "github.com/charmbracelet/velvet/item"

// TabInputMsg is sent when the user activates a tab, before the activation
// settles. It fires once per user activation and never for programmatic
// mutation.
type TabInputMsg struct {
	Item  *item.Item
	Index int
	Value string
}

// TabChangeMsg is sent immediately after [TabInputMsg] once the activated
// tab has become the canonical one.
type TabChangeMsg struct {
	Item  *item.Item
	Index int
	Value string
}
