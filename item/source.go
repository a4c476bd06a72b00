package item

import "sync"

// Source provides the current ordered list of items on demand. Consumers
// must re-enumerate on every operation instead of caching the returned
// slice; the set may change between any two calls.
type Source interface {
	Items() []*Item
}

// SliceSource is a mutable, concurrency-safe [Source] backed by a slice.
// Mutations may come from a different goroutine than reads (for example a
// tea.Cmd appending options while the UI navigates); the selection core
// tolerates that because it re-derives counts and indices per operation.
type SliceSource struct {
	mu    sync.RWMutex
	items []*Item
}

var _ Source = (*SliceSource)(nil)

// NewSliceSource creates a source holding the given items.
func NewSliceSource(items ...*Item) *SliceSource {
	s := &SliceSource{}
	s.Set(items...)
	return s
}

// Items returns a snapshot of the current items.
func (s *SliceSource) Items() []*Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the current item count.
func (s *SliceSource) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Set replaces all items.
func (s *SliceSource) Set(items ...*Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items[:0:0], items...)
}

// Append adds items to the end of the set.
func (s *SliceSource) Append(items ...*Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, items...)
}

// Remove removes the given item from the set. Removing an item that is not
// present is a no-op.
func (s *SliceSource) Remove(it *Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, candidate := range s.items {
		if candidate == it {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// RemoveIndex removes the item at the given index. Out-of-range indices are
// a no-op.
func (s *SliceSource) RemoveIndex(idx int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx < 0 || idx >= len(s.items) {
		return
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
}
