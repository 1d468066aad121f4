package model

import "time"

// DayLayout is the canonical key format for per-day history entries.
const DayLayout = "2006-01-02"

// History maps a civil day (DayLayout key, local calendar) to the number of
// completions recorded on that day. Absent days mean zero.
type History map[string]int

// DayKey normalizes a timestamp to its local calendar day key.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// ParseDay parses a history key back into a local-midnight time.
func ParseDay(key string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, key, time.Local)
}

// On returns the count recorded on the given day.
func (h History) On(day time.Time) int {
	return h[DayKey(day)]
}

// Record adjusts the count for a day by delta, flooring at zero. Days that
// reach zero are dropped so the map stays sparse.
func (h History) Record(day time.Time, delta int) {
	key := DayKey(day)
	next := h[key] + delta
	if next <= 0 {
		delete(h, key)
		return
	}
	h[key] = next
}

func (h History) Clone() History {
	if h == nil {
		return nil
	}
	out := make(History, len(h))
	for day, count := range h {
		out[day] = count
	}
	return out
}
