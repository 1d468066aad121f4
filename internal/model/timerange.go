package model

import "errors"

var ErrInvalidTimeRange = errors.New("model: invalid time range")

// TimeRange selects the chart window on the detail screen.
type TimeRange string

const (
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

func (r TimeRange) IsValid() bool {
	switch r {
	case TimeRangeWeek, TimeRangeMonth, TimeRangeYear:
		return true
	default:
		return false
	}
}

// BucketCount is the fixed series length for the range: 7 trailing days,
// 30 trailing days, or 12 trailing calendar months.
func (r TimeRange) BucketCount() int {
	switch r {
	case TimeRangeMonth:
		return 30
	case TimeRangeYear:
		return 12
	default:
		return 7
	}
}
