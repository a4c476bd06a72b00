// Package viewsync defers visual side effects (scroll-into-view, focus
// updates, announcement toggling) until after the current render pass, and
// coalesces repeated requests so only the most recent one per container
// runs.
//
// The scheduler is frame-agnostic: widgets call [Scheduler.Flush] when
// their framework reports that layout has settled (for Bubble Tea, on the
// tick following the render that enqueued the op). State needed by an op
// must be re-read inside it, never captured across the deferral.
package viewsync

import (
	"sync"

	"github.com/charmbracelet/x/exp/ordered"
)

// Op is a deferred visual side effect.
type Op func()

// Scheduler queues ops keyed by container. Scheduling twice under one key
// before a flush replaces the earlier op; keys run in first-scheduled
// order.
type Scheduler struct {
	mu    sync.Mutex
	order []string
	ops   map[string]Op
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{ops: make(map[string]Op)}
}

// Schedule queues op under key, replacing any op already queued there.
func (s *Scheduler) Schedule(key string, op Op) {
	if op == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, queued := s.ops[key]; !queued {
		s.order = append(s.order, key)
	}
	s.ops[key] = op
}

// Pending reports whether any ops are queued.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order) > 0
}

// Flush runs every queued op and clears the queue. Ops scheduled while
// flushing land in the next batch. Returns the number of ops run.
func (s *Scheduler) Flush() int {
	s.mu.Lock()
	order := s.order
	ops := s.ops
	s.order = nil
	s.ops = make(map[string]Op)
	s.mu.Unlock()

	for _, key := range order {
		ops[key]()
	}
	return len(order)
}

// Mode selects the scroll easing for a reveal.
type Mode int

const (
	// Instant jumps straight to the target offset. Used when restoring an
	// initial selection, where animating from nowhere would only flash.
	Instant Mode = iota
	// Smooth eases toward the target over successive flushes. Used for
	// keyboard focus traversal.
	Smooth
)

// Margin is the number of lines kept between a revealed item and the
// viewport edge when scrolling.
const Margin = 2

// SmoothStepLines bounds how far a smooth reveal moves per flush.
const SmoothStepLines = 3

// RevealOffset returns the scroll offset that brings the item spanning
// [itemStart, itemEnd) fully into a viewport of the given height, moving
// the minimum distance and keeping [Margin] lines of context where room
// allows. An item already fully visible leaves the offset untouched. The
// result never overshoots either content boundary.
func RevealOffset(offset, height, contentHeight, itemStart, itemEnd int) int {
	if height <= 0 || itemEnd <= itemStart {
		return offset
	}
	maxOffset := max(0, contentHeight-height)

	// Fully visible already: minimum distance is zero.
	if itemStart >= offset && itemEnd <= offset+height {
		return ordered.Clamp(offset, 0, maxOffset)
	}

	var target int
	if itemStart < offset {
		target = itemStart - Margin
	} else {
		target = itemEnd + Margin - height
	}
	return ordered.Clamp(target, 0, maxOffset)
}

// Step eases current toward target, moving at most SmoothStepLines. Widgets
// call this once per flush until the two meet.
func Step(current, target int) int {
	switch {
	case current < target:
		return min(current+SmoothStepLines, target)
	case current > target:
		return max(current-SmoothStepLines, target)
	default:
		return current
	}
}
