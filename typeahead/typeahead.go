// Package typeahead matches buffered keystrokes against item labels so a
// user can jump to an option by typing its name.
//
// The matcher owns the inactivity timer: keystrokes within the interval
// extend the current buffer, while a pause starts a fresh one. Matching is
// case-insensitive prefix first, starting after the active item so that
// repeating a character cycles through same-letter options, with a fuzzy
// fallback when no label has the buffer as a prefix.
package typeahead

import (
	"strings"
	"time"
	"unicode"

	"github.com/sahilm/fuzzy"

	"github.com/charmbracelet/velvet/item"
)

// DefaultInterval is the keystroke inactivity window after which the
// buffer is considered expired.
const DefaultInterval = 200 * time.Millisecond

// Matcher accumulates keystrokes and resolves them to an item index.
type Matcher struct {
	interval time.Duration
	now      func() time.Time

	buffer  string
	lastKey time.Time
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithInterval sets the buffer expiry window.
func WithInterval(d time.Duration) Option {
	return func(m *Matcher) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithClock sets the time source. Tests use this to step time explicitly.
func WithClock(now func() time.Time) Option {
	return func(m *Matcher) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates a matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		interval: DefaultInterval,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Active reports whether a multi-keystroke sequence is still hot, i.e. the
// buffer is non-empty and the inactivity window has not elapsed.
func (m *Matcher) Active() bool {
	return m.buffer != "" && m.now().Sub(m.lastKey) < m.interval
}

// Buffer returns the current keystroke buffer.
func (m *Matcher) Buffer() string {
	if !m.Active() {
		return ""
	}
	return m.buffer
}

// Reset clears the buffer immediately.
func (m *Matcher) Reset() {
	m.buffer = ""
}

// Keystroke feeds one printable rune into the buffer and resolves it
// against the given items. activeIdx is the index currently carrying the
// focus highlight (-1 for none); single-character buffers search strictly
// after it so repeated keystrokes cycle. Returns the matched index and
// whether a match was found. Disabled items never match.
func (m *Matcher) Keystroke(r rune, items []*item.Item, activeIdx int) (int, bool) {
	if !unicode.IsPrint(r) || unicode.IsControl(r) {
		return -1, false
	}
	if !m.Active() {
		m.buffer = ""
	}
	m.buffer += strings.ToLower(string(r))
	m.lastKey = m.now()

	if len(items) == 0 {
		return -1, false
	}

	if idx, ok := m.prefixMatch(items, activeIdx); ok {
		return idx, true
	}
	return m.fuzzyMatch(items)
}

// prefixMatch finds the first non-disabled item whose label starts with the
// buffer. Search begins after the active item for single-char buffers and
// at the active item otherwise, wrapping around the full set.
func (m *Matcher) prefixMatch(items []*item.Item, activeIdx int) (int, bool) {
	start := activeIdx
	if len(m.buffer) == 1 || start < 0 {
		start++
	}
	n := len(items)
	for offset := 0; offset < n; offset++ {
		idx := ((start+offset)%n + n) % n
		it := items[idx]
		if it.Disabled() {
			continue
		}
		if strings.HasPrefix(strings.ToLower(it.Label()), m.buffer) {
			return idx, true
		}
	}
	return -1, false
}

// fuzzyMatch ranks all labels against the buffer and returns the best
// non-disabled hit.
func (m *Matcher) fuzzyMatch(items []*item.Item) (int, bool) {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = strings.ToLower(it.Label())
	}
	for _, match := range fuzzy.Find(m.buffer, labels) {
		if !items[match.Index].Disabled() {
			return match.Index, true
		}
	}
	return -1, false
}
