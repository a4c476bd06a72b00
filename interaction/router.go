// Package interaction translates raw input intents (open keys, printable
// characters, navigation, confirms, escapes) into selection changes,
// respecting cancellation.
//
// The router is a state machine over three states: Idle, TypingAhead (a
// typeahead buffer is hot), and PendingConfirmation (a confirm is being
// offered to interceptors). It never caches the item set or an index across
// operations; counts and positions are re-derived from the registry each
// time, so external mutation of the items between any two calls is safe.
package interaction

import (
	"github.com/charmbracelet/velvet/item"
	"github.com/charmbracelet/velvet/overlay"
	"github.com/charmbracelet/velvet/selection"
	"github.com/charmbracelet/velvet/typeahead"
)

// State is the router's current interaction state.
type State int

const (
	// Idle means no interaction is in flight.
	Idle State = iota
	// TypingAhead means the typeahead buffer is hot; printable keys extend
	// it and open keys are swallowed as ordinary characters.
	TypingAhead
	// PendingConfirmation means a confirm is mid-flight, being offered to
	// interceptors before it commits.
	PendingConfirmation
)

// Source says where a confirm originated.
type Source int

const (
	// SourceKeyboard is enter/space on a focused item, or a focus move in
	// select-on-focus mode.
	SourceKeyboard Source = iota
	// SourcePointer is a click on an item.
	SourcePointer
	// SourceTypeahead is a typeahead match resolving to an item.
	SourceTypeahead
	// SourceOverlay is an overlay closing with a "selection" reason.
	SourceOverlay
)

// Interaction describes a selection-changing action offered to
// interceptors before it commits.
type Interaction struct {
	Item   *item.Item
	Index  int
	Source Source
}

// Interceptor inspects a pending interaction and may cancel it by
// returning true. All interceptors run exactly once, synchronously, before
// the commit; if any cancels, the selection is untouched and nothing is
// emitted.
type Interceptor func(Interaction) (cancel bool)

// ConfirmResult reports what a confirm did.
type ConfirmResult struct {
	// Cancelled is true when an interceptor vetoed the interaction.
	Cancelled bool
	// Changed is true when the canonical selection changed identity and
	// the input/change pair was emitted.
	Changed bool
	// Item and Index identify the confirmed item. Index is -1 when the
	// confirm was a no-op.
	Item  *item.Item
	Index int
}

// Config wires a router's collaborators. Registry is required; the rest
// are optional.
type Config struct {
	Registry *selection.Registry
	Overlay  *overlay.Controller
	Matcher  *typeahead.Matcher

	// SelectOnFocus routes focus traversal through the confirm path, so
	// moving the highlight also selects (tab-bar auto-activation mode).
	SelectOnFocus bool
}

// Router is the interaction state machine.
type Router struct {
	cfg        Config
	confirming bool

	nextInterceptorID int
	interceptors      []interceptorEntry
}

type interceptorEntry struct {
	id int
	fn Interceptor
}

// NewRouter creates a router.
func NewRouter(cfg Config) *Router {
	return &Router{cfg: cfg}
}

// State returns the current interaction state. TypingAhead is derived from
// the matcher's own timer, so it reverts to Idle by itself once the buffer
// expires.
func (r *Router) State() State {
	if r.confirming {
		return PendingConfirmation
	}
	if r.cfg.Matcher != nil && r.cfg.Matcher.Active() {
		return TypingAhead
	}
	return Idle
}

// Intercept registers an interceptor and returns a func that removes it.
func (r *Router) Intercept(fn Interceptor) (remove func()) {
	id := r.nextInterceptorID
	r.nextInterceptorID++
	r.interceptors = append(r.interceptors, interceptorEntry{id: id, fn: fn})
	return func() {
		for i, entry := range r.interceptors {
			if entry.id == id {
				r.interceptors = append(r.interceptors[:i], r.interceptors[i+1:]...)
				return
			}
		}
	}
}

// ActiveIndex returns the index of the item carrying the focus highlight,
// re-derived from the current item set. Returns -1 when none does.
func (r *Router) ActiveIndex() int {
	for i, it := range r.items() {
		if it.Active() {
			return i
		}
	}
	return -1
}

// Open requests the overlay to open. Swallowed while the typeahead buffer
// is hot, so that a space mid-sequence extends the buffer instead of
// popping the menu. Returns whether the open was accepted.
func (r *Router) Open() bool {
	if r.State() == TypingAhead {
		return false
	}
	if r.cfg.Overlay == nil {
		return false
	}
	return r.cfg.Overlay.RequestOpen()
}

// TypeResult reports what a typed character did.
type TypeResult struct {
	// Matched is true when the typeahead resolved the buffer to an item.
	Matched bool
	// Index is the matched item's index, -1 otherwise.
	Index int
	// Confirm is the confirm outcome when the match requested selection
	// (overlay closed, or select-on-focus). Zero-valued otherwise.
	Confirm ConfirmResult
}

// TypeChar feeds one printable character to the typeahead matcher. While
// the overlay is closed a match immediately requests selection of the item
// without opening; while it is open a match only moves the focus highlight
// (unless select-on-focus is set).
func (r *Router) TypeChar(ch rune) TypeResult {
	res := TypeResult{Index: -1, Confirm: ConfirmResult{Index: -1}}
	if r.cfg.Matcher == nil {
		return res
	}
	items := r.items()
	idx, ok := r.cfg.Matcher.Keystroke(ch, items, r.ActiveIndex())
	if !ok {
		return res
	}
	res.Matched = true
	res.Index = idx

	overlayOpen := r.cfg.Overlay != nil && r.cfg.Overlay.Visible()
	if !overlayOpen || r.cfg.SelectOnFocus {
		res.Confirm = r.Confirm(idx, SourceTypeahead)
		return res
	}

	r.setActive(idx)
	return res
}

// Navigate moves the focus highlight by delta with modulo wrap, skipping
// disabled items. With no highlight yet, movement starts from the canonical
// selection. Empty sets are a no-op. Returns the new focus index, or -1.
//
// Navigation does not mutate selection unless select-on-focus is set, in
// which case the focused item goes through the confirm path.
func (r *Router) Navigate(delta int) int {
	items := r.items()
	n := len(items)
	if n == 0 || delta == 0 {
		return -1
	}

	step := 1
	if delta < 0 {
		step = -1
		delta = -delta
	}

	current := r.ActiveIndex()
	if current < 0 {
		current = r.cfg.Registry.SelectedIndex()
	}

	idx := current
	for moved := 0; moved < delta; moved++ {
		next, ok := r.nextEnabled(idx, step, n, items)
		if !ok {
			return -1
		}
		idx = next
	}
	return r.focus(idx)
}

// Home moves the focus highlight to the first enabled item.
func (r *Router) Home() int {
	items := r.items()
	for i, it := range items {
		if !it.Disabled() {
			return r.focus(i)
		}
	}
	return -1
}

// End moves the focus highlight to the last enabled item.
func (r *Router) End() int {
	items := r.items()
	for i := len(items) - 1; i >= 0; i-- {
		if !items[i].Disabled() {
			return r.focus(i)
		}
	}
	return -1
}

// Confirm runs the full confirm path for the item at idx: offer the
// pending interaction to every interceptor once, then commit through the
// registry, which emits input-then-change if the selection actually
// changed. Out-of-range indices and disabled items are no-ops.
func (r *Router) Confirm(idx int, src Source) ConfirmResult {
	items := r.items()
	if idx < 0 || idx >= len(items) {
		return ConfirmResult{Index: -1}
	}
	it := items[idx]
	if it.Disabled() {
		return ConfirmResult{Index: -1}
	}

	r.confirming = true
	cancelled := false
	for _, entry := range r.interceptors {
		if entry.fn(Interaction{Item: it, Index: idx, Source: src}) {
			cancelled = true
			break
		}
	}
	r.confirming = false

	if cancelled {
		return ConfirmResult{Cancelled: true, Item: it, Index: idx}
	}

	changed := r.cfg.Registry.Select(it)
	r.setActive(idx)
	return ConfirmResult{Changed: changed, Item: it, Index: idx}
}

// Escape closes the overlay without selecting, clears any mid-interaction
// highlight, and drops the typeahead buffer.
func (r *Router) Escape() {
	r.dismiss(overlay.ReasonEscape)
}

// Dismiss closes the overlay without selecting, for focus loss or an
// outside click.
func (r *Router) Dismiss() {
	r.dismiss(overlay.ReasonDismiss)
}

func (r *Router) dismiss(reason overlay.Reason) {
	if r.cfg.Overlay != nil {
		r.cfg.Overlay.RequestClose(reason)
	}
	r.clearActive()
	if r.cfg.Matcher != nil {
		r.cfg.Matcher.Reset()
	}
}

// focus applies the highlight to idx and, in select-on-focus mode, routes
// it through the confirm path. Returns the focused index, or -1 when a
// select-on-focus confirm was cancelled.
func (r *Router) focus(idx int) int {
	if r.cfg.SelectOnFocus {
		res := r.Confirm(idx, SourceKeyboard)
		if res.Cancelled {
			return -1
		}
		return res.Index
	}
	r.setActive(idx)
	return idx
}

// nextEnabled returns the index one step away from idx, wrapping, skipping
// disabled items. ok is false when every item is disabled.
func (r *Router) nextEnabled(idx, step, n int, items []*item.Item) (int, bool) {
	for hop := 1; hop <= n; hop++ {
		cand := ((idx+step*hop)%n + n) % n
		if !items[cand].Disabled() {
			return cand, true
		}
	}
	return -1, false
}

// setActive moves the single-focus highlight to idx.
func (r *Router) setActive(idx int) {
	for i, it := range r.items() {
		it.SetActive(i == idx)
	}
}

func (r *Router) clearActive() {
	r.setActive(-1)
}

func (r *Router) items() []*item.Item {
	return r.cfg.Registry.Items()
}
