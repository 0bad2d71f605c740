package heatmap

import "time"

const (
	daysPerWeek = 7
	gridWeeks   = 53

	// TotalDays is the number of calendar days every heatmap displays.
	TotalDays = daysPerWeek * gridWeeks
)

// Window is the calendar-aligned span a heatmap displays: 53 full
// weeks, Sunday through Saturday, 371 days inclusive.
type Window struct {
	Start time.Time // always a Sunday
	End   time.Time // always a Saturday
}

// ResolveWindow computes the window for a given reference date. End is
// the next Saturday on or after the reference date, Start is 370 days
// earlier. Times are normalized to midnight UTC.
func ResolveWindow(today time.Time) Window {
	d := midnight(today)
	end := d.AddDate(0, 0, (int(time.Saturday)-int(d.Weekday())+daysPerWeek)%daysPerWeek)
	return Window{
		Start: end.AddDate(0, 0, -(TotalDays - 1)),
		End:   end,
	}
}

// Days returns the inclusive day count of the window.
func (w Window) Days() int {
	return daysBetween(w.Start, w.End) + 1
}

func midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(midnight(to).Sub(midnight(from)) / (24 * time.Hour))
}
