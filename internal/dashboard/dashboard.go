package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mizrakjian/monkeystats/internal/api"
	"github.com/mizrakjian/monkeystats/internal/heatmap"
	"github.com/mizrakjian/monkeystats/pkg/stats"
	"github.com/samber/lo"
)

// labelAlign right-justifies the row labels of the summary block.
const labelAlign = 9

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	claimedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))

	unclaimedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	pbStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("3"))
)

// Data bundles everything one dashboard render needs. All four
// resources are fetched up front so the output is a consistent view.
type Data struct {
	Profile  api.Profile
	Streak   api.Streak
	Activity api.Activity
	LastTest api.LastTest
}

// Render produces the complete dashboard text. now anchors streak
// countdowns, relative times, and (unless anchorLastDay is set) the
// heatmap window.
func Render(d Data, now time.Time, palette heatmap.Palette, anchorLastDay bool) string {
	sections := []string{
		"",
		titleStyle.Render(fmt.Sprintf("Monkeytype info for %s:", d.Profile.Username)),
		"",
		joinedLine(d.Profile, now),
		levelLine(d.Profile),
		streakLine(d.Streak, now),
		"",
		testCountLines(d.Profile, now),
		"",
		ActivityBlock(d.Activity, now, palette, anchorLastDay),
		"",
		lastTestLines(d.LastTest, d.Profile.PersonalBests, now),
		"",
	}
	return strings.Join(sections, "\n")
}

func label(name string) string {
	return labelStyle.Render(fmt.Sprintf("%*s", labelAlign, name))
}

func joinedLine(p api.Profile, now time.Time) string {
	return fmt.Sprintf("%s %s (%d days ago)",
		label("joined:"),
		p.Joined.Format("02 Jan 2006"),
		daysSince(p.Joined, now),
	)
}

func levelLine(p api.Profile) string {
	level := stats.Level(p.XP)
	current := stats.LevelCurrentXP(p.XP)
	max := stats.LevelMaxXP(level)

	return fmt.Sprintf("%s %d | %s xp | %s/%s (%s to go)",
		label("level:"),
		level,
		stats.ShortenNumber(p.XP),
		stats.ShortenNumber(current),
		stats.ShortenNumber(max),
		stats.ShortenNumber(max-current),
	)
}

func streakLine(s api.Streak, now time.Time) string {
	reset := now.UTC().Truncate(24 * time.Hour).AddDate(0, 0, 1)
	timeLeft := stats.FormatDuration(reset.Sub(now))

	status := claimedStyle.Render(fmt.Sprintf("claimed — resets in %s", timeLeft))
	if !s.Claimed(now) {
		status = unclaimedStyle.Render(fmt.Sprintf("unclaimed — lost in %s", timeLeft))
	}

	return fmt.Sprintf("%s %d days (%s) | best: %d days",
		label("streak:"), s.Length, status, s.MaxLength)
}

func testCountLines(p api.Profile, now time.Time) string {
	days := daysSince(p.Joined, now)
	if days < 1 {
		days = 1
	}
	completed := p.Tests.Completed
	if completed < 1 {
		completed = 1
	}

	typing := time.Duration(p.Tests.TimeTyping * float64(time.Second))
	perDay := typing / time.Duration(days)
	perTest := typing / time.Duration(completed)

	return fmt.Sprintf("%s %d started | %d completed (%.1f%%)\n%s %s | ~%s/day | ~%s/test",
		label("tests:"),
		p.Tests.Started,
		p.Tests.Completed,
		stats.CompletionRate(p.Tests.Completed, p.Tests.Started),
		label("time:"),
		stats.FormatDuration(typing),
		stats.FormatDuration(perDay),
		stats.FormatDuration(perTest),
	)
}

// ActivityBlock renders just the heatmap section. The window anchors
// on now by default; anchorLastDay instead anchors on the service's
// last recorded day, which pins the final column to the data.
func ActivityBlock(a api.Activity, now time.Time, palette heatmap.Palette, anchorLastDay bool) string {
	ref := now
	if anchorLastDay {
		ref = a.LastDay
	}

	window := heatmap.ResolveWindow(ref)
	padded := heatmap.Normalize(a.Days, a.LastDay, window)
	levels := heatmap.Bucketize(padded)

	return heatmap.Render(levels, window, heatmap.Total(padded), palette)
}

func lastTestLines(t api.LastTest, bests []api.PersonalBest, now time.Time) string {
	modifiers := fmt.Sprintf("@%s #%s", onOff(t.Punctuation), onOff(t.Numbers))
	when := t.Timestamp.UTC().Format("2006-01-02 15:04:05 UTC")
	ago := stats.FormatDuration(now.Sub(t.Timestamp))

	pbText := "no pb on record"
	if pb, ok := FindBest(bests, t); ok {
		pbText = fmt.Sprintf("pb: %.1f wpm %.0f%% acc", pb.WPM, pb.Accuracy)
	}
	if t.IsPB {
		pbText = pbStyle.Render("★ new pb ★")
	}

	return fmt.Sprintf("  %s %s %d | %s | %s | %s (%s ago)\n  %s %.1f wpm %.0f%% acc | %s",
		labelStyle.Render("last test:"),
		t.Mode, t.ModeUnit, modifiers, t.Language, when, ago,
		labelStyle.Render("result:"),
		t.WPM, t.Accuracy, pbText,
	)
}

// FindBest returns the personal best matching a test's fingerprint:
// same mode, unit, language, and modifier switches.
func FindBest(bests []api.PersonalBest, t api.LastTest) (api.PersonalBest, bool) {
	return lo.Find(bests, func(pb api.PersonalBest) bool {
		return pb.Mode == t.Mode &&
			pb.ModeUnit == t.ModeUnit &&
			pb.Language == t.Language &&
			pb.Punctuation == t.Punctuation &&
			pb.Numbers == t.Numbers
	})
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func daysSince(t, now time.Time) int {
	return int(now.Sub(t).Hours() / 24)
}
