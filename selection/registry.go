// Package selection tracks the canonical selection of a widget: which item
// out of a source's current set is chosen, independent of the transient
// focus highlight.
//
// The registry owns nothing. It keeps a reference to the tracked item plus
// cached value/label mirrors, and re-enumerates the source on every
// operation so that external mutation of the item set between calls is
// always observed. A selected item disappearing from the source goes stale
// lazily: queries report no selection, but nothing fires until the next
// selection-affecting operation.
//
// The registry is also the single emission point for selection
// notifications: every identity change publishes input then change on its
// stream, whether the change came from user input or a programmatic call.
package selection

import (
	"github.com/charmbracelet/velvet/event"
	"github.com/charmbracelet/velvet/item"
)

// Registry is the authoritative record of a container's selection.
type Registry struct {
	src    item.Source
	stream *event.Stream

	// tracked is the identity of the current selection. Identity is the
	// pointer, so two items with equal values stay distinguishable.
	tracked *item.Item

	// Cached mirrors of the tracked selection, recomputed on every
	// selection change.
	value string
	label string

	// Deferred selection request, applied once a matching item shows up in
	// the source. Only the most recent request is kept.
	pendingValue *string
	pendingIndex *int
}

// NewRegistry creates a registry over the given source. A nil stream
// disables notifications.
func NewRegistry(src item.Source, stream *event.Stream) *Registry {
	return &Registry{src: src, stream: stream}
}

// Items returns the source's current ordered items. The slice is fetched
// fresh on every call; callers must not cache it across mutations.
func (r *Registry) Items() []*item.Item {
	if r.src == nil {
		return nil
	}
	return r.src.Items()
}

// Selected returns the tracked item and its current index. ok is false when
// nothing is selected or when the tracked item is no longer present in the
// source.
func (r *Registry) Selected() (it *item.Item, idx int, ok bool) {
	if r.tracked == nil {
		return nil, -1, false
	}
	for i, candidate := range r.Items() {
		if candidate == r.tracked {
			return candidate, i, true
		}
	}
	return nil, -1, false
}

// SelectedIndex returns the index of the tracked selection, or -1.
func (r *Registry) SelectedIndex() int {
	_, idx, _ := r.Selected()
	return idx
}

// SelectedItems returns every item in the source currently flagged
// selected. Single-select registries keep this at most one long.
func (r *Registry) SelectedItems() []*item.Item {
	var out []*item.Item
	for _, it := range r.Items() {
		if it.Selected() {
			out = append(out, it)
		}
	}
	return out
}

// Value returns the cached value mirror of the canonical selection.
func (r *Registry) Value() string { return r.value }

// Label returns the cached display label mirror of the canonical selection.
func (r *Registry) Label() string { return r.label }

// Select makes it the canonical selection, unsetting the selected flag on
// every other item in the source. A nil item clears the selection. The
// return value reports whether the canonical selection changed identity;
// re-selecting the current item returns false and emits nothing, while an
// actual change publishes input then change on the stream.
func (r *Registry) Select(it *item.Item) bool {
	r.pendingValue = nil
	r.pendingIndex = nil
	changed := it != r.tracked
	for _, other := range r.Items() {
		other.SetSelected(other == it && it != nil)
	}
	if it != nil {
		it.SetSelected(true)
	}
	r.tracked = it
	r.refreshMirrors()
	if changed {
		r.emit(it)
	}
	return changed
}

// SelectValue selects the first item whose value matches. When no item
// matches, the current selection is left alone and the request is kept as a
// deferred one, applied by [Registry.Sync] once a matching item appears.
// Returns whether the canonical selection changed.
func (r *Registry) SelectValue(value string) bool {
	for _, it := range r.Items() {
		if it.Value() == value {
			return r.Select(it)
		}
	}
	v := value
	r.pendingValue = &v
	r.pendingIndex = nil
	return false
}

// SelectIndex selects the item at the given index. Index -1 clears the
// selection. An out-of-range index leaves the selection alone and defers
// the request like [Registry.SelectValue]. Returns whether the canonical
// selection changed.
func (r *Registry) SelectIndex(idx int) bool {
	if idx == -1 {
		return r.Select(nil)
	}
	items := r.Items()
	if idx >= 0 && idx < len(items) {
		return r.Select(items[idx])
	}
	i := idx
	r.pendingIndex = &i
	r.pendingValue = nil
	return false
}

// Sync applies any deferred selection request against the source's current
// items. It returns whether the canonical selection changed. Without a
// pending request it only refreshes the cached mirrors.
func (r *Registry) Sync() bool {
	switch {
	case r.pendingValue != nil:
		value := *r.pendingValue
		for _, it := range r.Items() {
			if it.Value() == value {
				return r.Select(it)
			}
		}
	case r.pendingIndex != nil:
		idx := *r.pendingIndex
		items := r.Items()
		if idx >= 0 && idx < len(items) {
			return r.Select(items[idx])
		}
	default:
		r.refreshMirrors()
	}
	return false
}

// Deselect handles an item reporting that it no longer wants to be
// selected. The flag is cleared, and if the item was the tracked selection
// the registry recomputes: the first other item still flagged selected
// becomes canonical, otherwise the selection falls back to none. This is
// bookkeeping, not an error, and it emits nothing.
func (r *Registry) Deselect(it *item.Item) {
	if it == nil {
		return
	}
	it.SetSelected(false)
	if it != r.tracked {
		return
	}
	r.tracked = nil
	for _, candidate := range r.Items() {
		if candidate.Selected() {
			r.tracked = candidate
			break
		}
	}
	r.refreshMirrors()
}

// emit publishes the input-then-change pair for a settled identity change.
func (r *Registry) emit(it *item.Item) {
	if r.stream == nil {
		return
	}
	idx := -1
	if it != nil {
		for i, candidate := range r.Items() {
			if candidate == it {
				idx = i
				break
			}
		}
	}
	ev := event.Event{Item: it, Index: idx, Value: r.value}
	ev.Type = event.Input
	r.stream.Publish(ev)
	ev.Type = event.Change
	r.stream.Publish(ev)
}

// refreshMirrors recomputes the cached value/label from the tracked item.
func (r *Registry) refreshMirrors() {
	if r.tracked == nil {
		r.value = ""
		r.label = ""
		return
	}
	r.value = r.tracked.Value()
	r.label = r.tracked.Label()
}
