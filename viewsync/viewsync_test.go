package viewsync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSchedulerCoalesces(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	var got []int
	s.Schedule("menu", func() { got = append(got, 1) })
	s.Schedule("menu", func() { got = append(got, 2) })
	s.Schedule("menu", func() { got = append(got, 3) })

	require.True(t, s.Pending())
	require.Equal(t, 1, s.Flush())
	require.Equal(t, []int{3}, got)
	require.False(t, s.Pending())
}

func TestSchedulerKeyOrder(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	var got []string
	s.Schedule("a", func() { got = append(got, "a1") })
	s.Schedule("b", func() { got = append(got, "b1") })
	s.Schedule("a", func() { got = append(got, "a2") })

	require.Equal(t, 2, s.Flush())
	require.Equal(t, []string{"a2", "b1"}, got)
}

func TestSchedulerReentrantSchedule(t *testing.T) {
	t.Parallel()

	s := NewScheduler()
	ran := false
	s.Schedule("a", func() {
		s.Schedule("a", func() { ran = true })
	})

	s.Flush()
	require.False(t, ran, "ops scheduled during a flush run on the next one")
	require.True(t, s.Pending())
	s.Flush()
	require.True(t, ran)
}

func TestRevealOffset(t *testing.T) {
	t.Parallel()

	const (
		height  = 10
		content = 40
	)

	tests := []struct {
		name               string
		offset             int
		itemStart, itemEnd int
		want               int
	}{
		{"already visible", 5, 7, 8, 5},
		{"above viewport", 10, 4, 5, 2},               // itemStart - margin
		{"below viewport", 0, 15, 16, 8},              // itemEnd + margin - height
		{"clamped at top", 5, 0, 1, 0},                // margin would overshoot
		{"clamped at bottom", 0, 39, 40, content - 10}, // margin would overshoot
		{"empty item is a no-op", 5, 3, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := RevealOffset(tt.offset, height, content, tt.itemStart, tt.itemEnd)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRevealOffsetShortContent(t *testing.T) {
	t.Parallel()

	// Content shorter than the viewport never scrolls.
	require.Equal(t, 0, RevealOffset(0, 10, 4, 3, 4))
}

func TestStep(t *testing.T) {
	t.Parallel()

	require.Equal(t, 3, Step(0, 10))
	require.Equal(t, 10, Step(9, 10))
	require.Equal(t, 7, Step(10, 0))
	require.Equal(t, 5, Step(5, 5))
}
