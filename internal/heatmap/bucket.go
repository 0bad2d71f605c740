package heatmap

import (
	"math"
	"sort"

	"github.com/samber/lo"
)

// Level is an ordinal intensity bucket, 0 (quietest) through 5
// (personal maximum). LevelNone marks days with no recorded data.
type Level int

const (
	LevelNone Level = -1

	// NumLevels is the number of intensity buckets.
	NumLevels = 6
)

// Bucketize maps every day of a normalized series to an intensity
// level. Thresholds adapt to the observed distribution: an outlier-
// resistant trimmed mean anchors the lower buckets while the top two
// are reserved for near-maximum and maximum days.
func Bucketize(padded []DayCount) []Level {
	filtered := make([]int, 0, len(padded))
	for _, d := range padded {
		if d.Valid {
			filtered = append(filtered, d.Count)
		}
	}

	levels := make([]Level, len(padded))
	if len(filtered) == 0 {
		for i, d := range padded {
			if !d.Valid {
				levels[i] = LevelNone
			}
		}
		return levels
	}

	limits := thresholds(filtered)
	for i, d := range padded {
		if !d.Valid {
			levels[i] = LevelNone
			continue
		}
		levels[i] = Level(NumLevels - 1)
		for j, limit := range limits {
			if d.Count <= limit {
				levels[i] = Level(j)
				break
			}
		}
	}
	return levels
}

// thresholds returns the six bucket upper bounds for a non-empty set
// of observed counts. The mean is computed after discarding the lowest
// and highest 10% of sorted observations so a single extreme day does
// not compress the rest of the palette; the maximum is untrimmed so
// the best day always lands in the top bucket. Bounds are clamped to
// non-decreasing, which also absorbs the max-1 underflow when the
// maximum is small.
func thresholds(filtered []int) [NumLevels]int {
	sorted := append([]int(nil), filtered...)
	sort.Ints(sorted)

	trim := len(sorted) / 10
	trimmed := sorted[trim : len(sorted)-trim]

	mean := float64(lo.Sum(trimmed)) / float64(len(trimmed))
	max := sorted[len(sorted)-1]

	limits := [NumLevels]int{
		0,
		int(math.Ceil(mean / 2)),
		int(math.Ceil(mean)),
		int(math.Ceil(mean * 1.5)),
		max - 1,
		max,
	}
	for i := 1; i < NumLevels; i++ {
		if limits[i] < limits[i-1] {
			limits[i] = limits[i-1]
		}
	}
	return limits
}
