package stats

import (
	"fmt"
	"math"
	"time"
)

// Level/XP formulas match the ones the Monkeytype frontend uses, so
// the dashboard agrees with the website.

// Level returns the level reached with the given total XP.
func Level(xp int64) int {
	return int(math.Floor((math.Sqrt(float64(392*xp+22801)) - 53) / 98))
}

// LevelMaxXP returns the XP required to complete the given level.
func LevelMaxXP(level int) int64 {
	return int64(49*(level-1) + 100)
}

// LevelTotalXP returns the total XP required to reach the given level.
func LevelTotalXP(level int) int64 {
	l := int64(level)
	return (49*l*l + 53*l - 102) / 2
}

// LevelCurrentXP returns the XP earned within the current level.
func LevelCurrentXP(xp int64) int64 {
	return xp - LevelTotalXP(Level(xp))
}

const suffixes = "kmbtqQsSond"

// ShortenNumber renders a large number in a compact human form, e.g.
// 1234 -> "1.2k", 5600000 -> "5.6m".
func ShortenNumber(n int64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}

	magnitude := int(math.Floor(math.Log(float64(n)) / math.Log(1000)))
	if magnitude > len(suffixes) {
		magnitude = len(suffixes)
	}
	value := float64(n) / math.Pow(1000, float64(magnitude))

	return fmt.Sprintf("%.1f%c", value, suffixes[magnitude-1])
}

// FormatDuration renders a duration the way the dashboard shows time
// spans: "42s", "4m 02s", "3h 07m".
func FormatDuration(d time.Duration) string {
	total := int64(d.Seconds())
	if total < 0 {
		total = 0
	}

	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case total < 60:
		return fmt.Sprintf("%ds", seconds)
	case total < 3600:
		return fmt.Sprintf("%dm %02ds", minutes, seconds)
	default:
		return fmt.Sprintf("%dh %02dm", hours, minutes)
	}
}

// CompletionRate returns the percentage of started tests that were
// completed, 0 when nothing was started.
func CompletionRate(completed, started int) float64 {
	if started == 0 {
		return 0
	}
	return float64(completed) / float64(started) * 100
}
