// Package history turns a sparse day-keyed completion history into the
// fixed-length series the detail chart renders. Everything here is pure:
// same history and reference time in, same series out.
package history

import (
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

// Bucket produces the chart series for the requested range, oldest bucket
// first. Week and month are trailing calendar days ending at now; year is
// the trailing 12 calendar months ending at now's month, each bucket the
// sum of that month's recorded days. Days and months with no entry
// contribute zero.
func Bucket(h model.History, r model.TimeRange, now time.Time) []float64 {
	if r == model.TimeRangeYear {
		return bucketMonths(h, now)
	}
	return bucketDays(h, r.BucketCount(), now)
}

func bucketDays(h model.History, n int, now time.Time) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		day := now.AddDate(0, 0, -(n - 1 - i))
		out[i] = float64(h.On(day))
	}
	return out
}

func bucketMonths(h model.History, now time.Time) []float64 {
	const n = 12
	out := make([]float64, n)

	// Anchor month arithmetic on the first of the month so short months
	// and leap days cannot shift the window.
	anchor := StartOfMonth(now)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		month := anchor.AddDate(0, -(n - 1 - i), 0)
		index[monthKey(month)] = i
	}

	for dayKey, count := range h {
		day, err := model.ParseDay(dayKey)
		if err != nil {
			continue
		}
		if i, ok := index[monthKey(StartOfMonth(day))]; ok {
			out[i] += float64(count)
		}
	}
	return out
}

// StartOfDay normalizes a timestamp to local midnight.
func StartOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// StartOfMonth normalizes a timestamp to the first of its month, local
// midnight.
func StartOfMonth(t time.Time) time.Time {
	year, month, _ := t.Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// Max returns the largest value in the series, used for chart scaling.
func Max(series []float64) float64 {
	max := 0.0
	for _, v := range series {
		if v > max {
			max = v
		}
	}
	return max
}

// Total sums every recorded completion in the history.
func Total(h model.History) int {
	total := 0
	for _, count := range h {
		total += count
	}
	return total
}

// CurrentStreak counts consecutive days with at least one completion,
// ending today or yesterday (a streak is not broken until a full day is
// missed).
func CurrentStreak(h model.History, now time.Time) int {
	day := StartOfDay(now)
	if h.On(day) == 0 {
		day = day.AddDate(0, 0, -1)
	}
	streak := 0
	for h.On(day) > 0 {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
