package heatmap

import (
	"time"

	"github.com/samber/lo"
)

// DayCount is one calendar day's completed test count. Valid is false
// when the service has no record for that day, which is distinct from
// a recorded zero-activity day.
type DayCount struct {
	Count int
	Valid bool
}

// Day returns a recorded count.
func Day(n int) DayCount {
	return DayCount{Count: n, Valid: true}
}

// NoData marks a day outside the recorded range.
var NoData = DayCount{}

// Normalize re-expresses a daily series over exactly the window's 371
// days. The series is oldest-first and ends on lastDay. Days between
// lastDay and the window end, and days before the series began, become
// NoData. Oversized input keeps its most recent 371 entries. Never
// fails, including on empty input.
func Normalize(series []DayCount, lastDay time.Time, w Window) []DayCount {
	padded := make([]DayCount, 0, len(series)+daysPerWeek)
	padded = append(padded, series...)

	for n := daysBetween(lastDay, w.End); n > 0; n-- {
		padded = append(padded, NoData)
	}

	if len(padded) > TotalDays {
		padded = padded[len(padded)-TotalDays:]
	}

	out := make([]DayCount, TotalDays)
	copy(out[TotalDays-len(padded):], padded)
	return out
}

// Total sums all recorded counts in a series.
func Total(series []DayCount) int {
	return lo.SumBy(series, func(d DayCount) int {
		if !d.Valid {
			return 0
		}
		return d.Count
	})
}
