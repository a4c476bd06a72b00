package typeahead

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/charmbracelet/velvet/item"
)

// fakeClock steps time manually.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time         { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func fruitItems() []*item.Item {
	return []*item.Item{
		item.New("1", "Apple"),
		item.New("2", "Apricot"),
		item.New("3", "Banana"),
		item.New("4", "Cherry"),
	}
}

func TestMatcherPrefix(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(WithClock(clock.now))
	items := fruitItems()

	idx, ok := m.Keystroke('b', items, -1)
	require.True(t, ok)
	require.Equal(t, 2, idx)
}

func TestMatcherMultiKeyBuffer(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(WithClock(clock.now))
	items := fruitItems()

	idx, ok := m.Keystroke('a', items, -1)
	require.True(t, ok)
	require.Equal(t, 0, idx)
	require.True(t, m.Active())

	clock.advance(50 * time.Millisecond)
	idx, ok = m.Keystroke('p', items, idx)
	require.True(t, ok)
	require.Equal(t, 0, idx) // "ap" still matches Apple first

	clock.advance(50 * time.Millisecond)
	idx, ok = m.Keystroke('r', items, idx)
	require.True(t, ok)
	require.Equal(t, 1, idx) // "apr" narrows to Apricot
}

func TestMatcherSingleCharCycles(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(WithClock(clock.now))
	items := fruitItems()

	idx, _ := m.Keystroke('a', items, -1)
	require.Equal(t, 0, idx)

	// Let the buffer expire so the next 'a' starts fresh after the active
	// item and cycles to the second A-item.
	clock.advance(DefaultInterval)
	require.False(t, m.Active())

	idx, _ = m.Keystroke('a', items, idx)
	require.Equal(t, 1, idx)

	clock.advance(DefaultInterval)
	idx, _ = m.Keystroke('a', items, idx)
	require.Equal(t, 0, idx) // wraps back around
}

func TestMatcherExpiry(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(WithClock(clock.now), WithInterval(100*time.Millisecond))
	items := fruitItems()

	m.Keystroke('a', items, -1)
	require.True(t, m.Active())
	require.Equal(t, "a", m.Buffer())

	clock.advance(100 * time.Millisecond)
	require.False(t, m.Active())
	require.Empty(t, m.Buffer())

	// A fresh keystroke starts a new buffer rather than extending "a".
	idx, ok := m.Keystroke('c', items, 1)
	require.True(t, ok)
	require.Equal(t, 3, idx)
}

func TestMatcherSkipsDisabled(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(WithClock(clock.now))
	items := []*item.Item{
		item.NewDisabled("1", "Apple"),
		item.New("2", "Apricot"),
	}

	idx, ok := m.Keystroke('a', items, -1)
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestMatcherFuzzyFallback(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{t: time.Unix(0, 0)}
	m := New(WithClock(clock.now))
	items := fruitItems()

	// No label starts with "apt", but fuzzy matching still lands on the
	// a-p-t subsequence in Apricot.
	var (
		idx int
		ok  bool
	)
	for i, r := range "apt" {
		if i > 0 {
			clock.advance(10 * time.Millisecond)
		}
		idx, ok = m.Keystroke(r, items, -1)
	}
	require.True(t, ok)
	require.Equal(t, 1, idx)
}

func TestMatcherEmptySet(t *testing.T) {
	t.Parallel()

	m := New()
	idx, ok := m.Keystroke('a', nil, -1)
	require.False(t, ok)
	require.Equal(t, -1, idx)
}
