package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDayBounds(t *testing.T) {
	ref := time.Date(2026, 3, 14, 15, 9, 26, 535000000, time.Local)
	start, end := DayBounds(ref)

	require.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local), start)
	require.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local), end)
	require.Equal(t, "2026-03-14", DayKey(ref))
}

func TestDayBoundsAtMidnight(t *testing.T) {
	ref := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	start, end := DayBounds(ref)

	require.Equal(t, ref, start)
	require.Equal(t, ref.AddDate(0, 0, 1), end)
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 6, 0, 0, 0, time.Local)
	night := time.Date(2026, 3, 14, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2026, 3, 15, 0, 0, 1, 0, time.Local)

	require.True(t, SameDay(morning, night))
	require.False(t, SameDay(night, nextDay))
}
