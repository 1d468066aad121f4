package history

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/habitd/internal/model"
)

func TestBucketLengthsAreFixed(t *testing.T) {
	now := time.Date(2024, 2, 29, 10, 0, 0, 0, time.Local) // leap day
	for _, tc := range []struct {
		r    model.TimeRange
		want int
	}{
		{model.TimeRangeWeek, 7},
		{model.TimeRangeMonth, 30},
		{model.TimeRangeYear, 12},
	} {
		got := Bucket(nil, tc.r, now)
		require.Len(t, got, tc.want, "range %s", tc.r)
		for _, v := range got {
			require.Zero(t, v)
		}
	}
}

func TestBucketWeekMapsTrailingDays(t *testing.T) {
	h := model.History{
		"2024-01-01": 2,
		"2024-01-03": 1,
	}
	now := time.Date(2024, 1, 7, 18, 0, 0, 0, time.Local)

	got := Bucket(h, model.TimeRangeWeek, now)
	// Window is Jan 1..Jan 7, oldest first.
	require.Equal(t, []float64{2, 0, 1, 0, 0, 0, 0}, got)
}

func TestBucketWeekDropsOutOfWindowDays(t *testing.T) {
	h := model.History{
		"2024-01-01": 2,
		"2024-01-03": 1,
	}
	now := time.Date(2024, 1, 9, 8, 0, 0, 0, time.Local)

	got := Bucket(h, model.TimeRangeWeek, now)
	// Window is Jan 3..Jan 9; Jan 1 falls outside it.
	require.Equal(t, []float64{1, 0, 0, 0, 0, 0, 0}, got)
}

func TestBucketMonthCounts30TrailingDays(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	h := model.History{
		model.DayKey(now):                    3,
		model.DayKey(now.AddDate(0, 0, -29)): 1, // oldest in-window day
		model.DayKey(now.AddDate(0, 0, -30)): 9, // just outside
	}

	got := Bucket(h, model.TimeRangeMonth, now)
	require.Len(t, got, 30)
	require.Equal(t, 1.0, got[0])
	require.Equal(t, 3.0, got[29])
}

func TestBucketYearSumsCalendarMonths(t *testing.T) {
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	h := model.History{
		"2024-06-01": 1,
		"2024-06-09": 2, // same month as now
		"2023-07-15": 4, // oldest in-window month
		"2023-06-20": 8, // 12 months back, outside the window
	}

	got := Bucket(h, model.TimeRangeYear, now)
	require.Len(t, got, 12)
	require.Equal(t, 4.0, got[0])
	require.Equal(t, 3.0, got[11])
	require.Equal(t, 7.0, sum(got))
}

func TestBucketYearHandlesShortMonthAnchors(t *testing.T) {
	// May 31 minus N months lands in months without a 31st; anchoring on
	// the first of the month keeps every bucket a distinct calendar month.
	now := time.Date(2024, 5, 31, 23, 0, 0, 0, time.Local)
	h := model.History{
		"2024-02-15": 5,
		"2023-09-02": 1,
	}

	got := Bucket(h, model.TimeRangeYear, now)
	require.Equal(t, 6.0, sum(got))
}

func TestBucketIsPure(t *testing.T) {
	h := model.History{"2024-01-03": 1}
	now := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)

	first := Bucket(h, model.TimeRangeWeek, now)
	second := Bucket(h, model.TimeRangeWeek, now)
	require.Equal(t, first, second)
	require.Equal(t, model.History{"2024-01-03": 1}, h)
}

func TestCurrentStreak(t *testing.T) {
	now := time.Date(2026, 2, 9, 20, 0, 0, 0, time.Local)
	h := model.History{
		"2026-02-09": 1,
		"2026-02-08": 2,
		"2026-02-07": 1,
		"2026-02-05": 1, // gap on the 6th ends the streak
	}
	require.Equal(t, 3, CurrentStreak(h, now))

	// Nothing yet today: yesterday's run still counts.
	delete(h, "2026-02-09")
	require.Equal(t, 2, CurrentStreak(h, now))

	require.Equal(t, 0, CurrentStreak(model.History{}, now))
}

func TestMaxAndTotal(t *testing.T) {
	require.Equal(t, 0.0, Max(nil))
	require.Equal(t, 4.0, Max([]float64{1, 4, 2}))
	require.Equal(t, 7, Total(model.History{"2024-01-01": 3, "2024-01-02": 4}))
}

func sum(series []float64) float64 {
	total := 0.0
	for _, v := range series {
		total += v
	}
	return total
}
