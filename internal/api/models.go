package api

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/mizrakjian/monkeystats/internal/heatmap"
)

// TestCounts aggregates a user's lifetime test activity.
type TestCounts struct {
	Completed  int
	Started    int
	TimeTyping float64 // seconds
}

// Profile is the user profile resource.
type Profile struct {
	Username      string
	Joined        time.Time
	XP            int64
	Tests         TestCounts
	PersonalBests []PersonalBest
}

// PersonalBest is one flattened personal-best record. The API nests
// them mode -> mode unit -> records; flattening keeps lookups simple.
type PersonalBest struct {
	Mode        string
	ModeUnit    int
	Language    string
	Punctuation bool
	Numbers     bool
	WPM         float64
	Accuracy    float64
	Consistency float64
	Timestamp   time.Time
}

// LastTest is the most recent completed test result.
type LastTest struct {
	Mode        string
	ModeUnit    int
	Language    string
	Punctuation bool
	Numbers     bool
	WPM         float64
	Accuracy    float64
	Consistency float64
	Timestamp   time.Time
	IsPB        bool
}

// Streak is the user's daily test streak.
type Streak struct {
	LastResult time.Time
	Length     int
	MaxLength  int
}

// Claimed reports whether the streak was already extended on the
// calendar day containing now (UTC).
func (s Streak) Claimed(now time.Time) bool {
	y1, m1, d1 := s.LastResult.UTC().Date()
	y2, m2, d2 := now.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Activity is the daily test-count series. Days is oldest first and
// ends on LastDay; days the service never recorded are not valid.
type Activity struct {
	Days    []heatmap.DayCount
	LastDay time.Time
}

// modeUnit tolerates the API encoding mode2 as either a JSON string
// or a number; unit-less modes like "zen" decode to 0.
type modeUnit int

func (m *modeUnit) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	n, err := strconv.Atoi(s)
	if err != nil {
		*m = 0
		return nil
	}
	*m = modeUnit(n)
	return nil
}

type rawBest struct {
	WPM         float64 `json:"wpm"`
	Accuracy    float64 `json:"acc"`
	Consistency float64 `json:"consistency"`
	Language    string  `json:"language"`
	Punctuation bool    `json:"punctuation"`
	Numbers     bool    `json:"numbers"`
	Timestamp   int64   `json:"timestamp"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        string `json:"name"`
		AddedAt     int64  `json:"addedAt"`
		XP          int64  `json:"xp"`
		TypingStats struct {
			CompletedTests int     `json:"completedTests"`
			StartedTests   int     `json:"startedTests"`
			TimeTyping     float64 `json:"timeTyping"`
		} `json:"typingStats"`
		PersonalBests map[string]map[string][]rawBest `json:"personalBests"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Profile{
		Username: raw.Name,
		Joined:   fromMillis(raw.AddedAt),
		XP:       raw.XP,
		Tests: TestCounts{
			Completed:  raw.TypingStats.CompletedTests,
			Started:    raw.TypingStats.StartedTests,
			TimeTyping: raw.TypingStats.TimeTyping,
		},
		PersonalBests: flattenBests(raw.PersonalBests),
	}
	return nil
}

func flattenBests(nested map[string]map[string][]rawBest) []PersonalBest {
	var bests []PersonalBest
	for mode, units := range nested {
		for unit, records := range units {
			for _, r := range records {
				n, _ := strconv.Atoi(unit)
				language := r.Language
				if language == "" {
					language = "english"
				}
				bests = append(bests, PersonalBest{
					Mode:        mode,
					ModeUnit:    n,
					Language:    language,
					Punctuation: r.Punctuation,
					Numbers:     r.Numbers,
					WPM:         r.WPM,
					Accuracy:    r.Accuracy,
					Consistency: r.Consistency,
					Timestamp:   fromMillis(r.Timestamp),
				})
			}
		}
	}
	return bests
}

func (t *LastTest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Mode        string   `json:"mode"`
		ModeUnit    modeUnit `json:"mode2"`
		Language    string   `json:"language"`
		Punctuation bool     `json:"punctuation"`
		Numbers     bool     `json:"numbers"`
		WPM         float64  `json:"wpm"`
		Accuracy    float64  `json:"acc"`
		Consistency float64  `json:"consistency"`
		Timestamp   int64    `json:"timestamp"`
		IsPB        bool     `json:"isPb"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	language := raw.Language
	if language == "" {
		language = "english"
	}
	*t = LastTest{
		Mode:        raw.Mode,
		ModeUnit:    int(raw.ModeUnit),
		Language:    language,
		Punctuation: raw.Punctuation,
		Numbers:     raw.Numbers,
		WPM:         raw.WPM,
		Accuracy:    raw.Accuracy,
		Consistency: raw.Consistency,
		Timestamp:   fromMillis(raw.Timestamp),
		IsPB:        raw.IsPB,
	}
	return nil
}

func (s *Streak) UnmarshalJSON(data []byte) error {
	var raw struct {
		LastResultTimestamp int64 `json:"lastResultTimestamp"`
		Length              int   `json:"length"`
		MaxLength           int   `json:"maxLength"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Streak{
		LastResult: fromMillis(raw.LastResultTimestamp),
		Length:     raw.Length,
		MaxLength:  raw.MaxLength,
	}
	return nil
}

func (a *Activity) UnmarshalJSON(data []byte) error {
	var raw struct {
		TestsByDays []*int `json:"testsByDays"`
		LastDay     int64  `json:"lastDay"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	days := make([]heatmap.DayCount, len(raw.TestsByDays))
	for i, v := range raw.TestsByDays {
		if v != nil {
			days[i] = heatmap.Day(*v)
		}
	}
	*a = Activity{Days: days, LastDay: fromMillis(raw.LastDay)}
	return nil
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
