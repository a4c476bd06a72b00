// Package item defines the selectable unit shared by velvet's widgets and
// the sources that provide them.
//
// An [Item] is identified by its pointer, never by its value: two items that
// happen to share a value remain distinct as far as selection tracking is
// concerned. The selection core never holds on to an item list either; it
// asks a [Source] for the current ordered set on every operation, so a
// surrounding program is free to add and remove items at any time.
package item

import "strings"

// Item is a single selectable unit: an option in a dropdown menu, or a tab
// in a tab bar.
type Item struct {
	value    string
	label    string
	disabled bool

	selected bool
	active   bool
}

// New creates an item with the given value and label. An empty label falls
// back to the value.
func New(value, label string) *Item {
	if strings.TrimSpace(label) == "" {
		label = value
	}
	return &Item{value: value, label: label}
}

// NewDisabled creates an item that cannot be selected or focused.
func NewDisabled(value, label string) *Item {
	it := New(value, label)
	it.disabled = true
	return it
}

// Value returns the item's value.
func (it *Item) Value() string { return it.value }

// Label returns the item's display label.
func (it *Item) Label() string { return it.label }

// Disabled reports whether the item is disabled.
func (it *Item) Disabled() bool { return it.disabled }

// SetDisabled sets the item's disabled state.
func (it *Item) SetDisabled(disabled bool) { it.disabled = disabled }

// Selected reports whether the item is part of the canonical selection.
func (it *Item) Selected() bool { return it.selected }

// SetSelected sets the item's selected flag. Selection bookkeeping lives in
// the selection registry; widgets should go through it rather than flip
// this flag directly.
func (it *Item) SetSelected(selected bool) { it.selected = selected }

// Active reports whether the item carries the transient focus highlight.
// Active is independent of selection: it tracks where the user currently
// is, not what they have chosen.
func (it *Item) Active() bool { return it.active }

// SetActive sets the item's focus highlight flag.
func (it *Item) SetActive(active bool) { it.active = active }
