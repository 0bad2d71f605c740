package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/mizrakjian/monkeystats/internal/api"
	"github.com/mizrakjian/monkeystats/internal/config"
	"github.com/mizrakjian/monkeystats/internal/dashboard"
	"github.com/mizrakjian/monkeystats/internal/heatmap"
	"github.com/mizrakjian/monkeystats/internal/logging"
	"github.com/mizrakjian/monkeystats/internal/storage"
	"github.com/mizrakjian/monkeystats/internal/tui"
	"github.com/mizrakjian/monkeystats/pkg/stats"
)

var (
	themeName     string
	debug         bool
	anchorLastDay bool

	// Flags for bests/history
	bestsFilter string
	historyDays int
)

var rootCmd = &cobra.Command{
	Use:   "monkeystats",
	Short: "Monkeytype stats in your terminal",
	Long:  `A terminal dashboard for Monkeytype: profile, personal bests, streak and a yearly activity heatmap.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard()
	},
}

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show the last 12 months of test activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHeatmap()
	},
}

var bestsCmd = &cobra.Command{
	Use:   "bests",
	Short: "Show personal bests",
	Long: `Show personal bests across modes.

Examples:
  monkeystats bests                # All recorded bests
  monkeystats bests -f "time 60"   # Fuzzy-filter by mode and unit
  monkeystats bests -f punctuation # Only bests with punctuation on`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBests()
	},
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the current daily streak",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStreak()
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show locally recorded daily snapshots",
	Long:  `Show day-over-day progress from snapshots recorded on previous dashboard runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runHistory()
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Live dashboard that refreshes periodically",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&themeName, "theme", "t", "default", "Heatmap color theme: "+strings.Join(heatmap.PaletteNames, ", "))
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&anchorLastDay, "anchor", false, "Anchor the heatmap to the last recorded day instead of today")

	bestsCmd.Flags().StringVarP(&bestsFilter, "filter", "f", "", "Fuzzy filter, e.g. \"time 60\" or \"words english\"")
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 14, "Number of days to show")

	rootCmd.AddCommand(heatmapCmd)
	rootCmd.AddCommand(bestsCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup() (*api.Client, error) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	logger := logging.New(level, os.Stderr)
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return api.New(cfg, api.WithLogger(logger)), nil
}

func palette() heatmap.Palette {
	p, ok := heatmap.PaletteByName(themeName)
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q, using default\n", themeName)
	}
	return p
}

func runDashboard() error {
	client, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var d dashboard.Data
	if d.Profile, err = client.Profile(ctx); err != nil {
		return err
	}
	if d.Streak, err = client.Streak(ctx); err != nil {
		return err
	}
	if d.Activity, err = client.Activity(ctx); err != nil {
		return err
	}
	if d.LastTest, err = client.LastTest(ctx); err != nil {
		return err
	}

	now := time.Now().UTC()
	fmt.Println(dashboard.Render(d, now, palette(), anchorLastDay))

	recordSnapshot(d, now)
	return nil
}

// recordSnapshot persists today's counters so the history command can
// show day-over-day progress. Failures only cost the snapshot.
func recordSnapshot(d dashboard.Data, now time.Time) {
	store, err := storage.New()
	if err != nil {
		slog.Debug("snapshot store unavailable", "error", err)
		return
	}
	defer store.Close()

	snap := storage.Snapshot{
		Date:         now.Format("2006-01-02"),
		Completed:    d.Profile.Tests.Completed,
		Started:      d.Profile.Tests.Started,
		TimeTyping:   d.Profile.Tests.TimeTyping,
		XP:           d.Profile.XP,
		StreakLength: d.Streak.Length,
		LastWPM:      d.LastTest.WPM,
		LastAccuracy: d.LastTest.Accuracy,
	}
	if err := store.RecordSnapshot(snap); err != nil {
		slog.Debug("snapshot not recorded", "error", err)
	}
}

func runHeatmap() error {
	client, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	activity, err := client.Activity(ctx)
	if err != nil {
		return err
	}

	fmt.Println(dashboard.ActivityBlock(activity, time.Now().UTC(), palette(), anchorLastDay))
	return nil
}

func runBests() error {
	client, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	profile, err := client.Profile(ctx)
	if err != nil {
		return err
	}

	bests := profile.PersonalBests
	if bestsFilter != "" {
		bests = filterBests(bests, bestsFilter)
	}
	if len(bests) == 0 {
		fmt.Println("no personal bests match")
		return nil
	}

	sort.SliceStable(bests, func(i, j int) bool {
		if bests[i].Mode != bests[j].Mode {
			return bests[i].Mode < bests[j].Mode
		}
		return bests[i].ModeUnit < bests[j].ModeUnit
	})

	fmt.Printf("Personal bests for %s:\n", profile.Username)
	for _, b := range bests {
		fmt.Printf("  %-10s %5.1f wpm  %5.1f%% acc  %s\n",
			bestLabel(b), b.WPM, b.Accuracy, bestModifiers(b))
	}
	return nil
}

func bestLabel(b api.PersonalBest) string {
	if b.ModeUnit == 0 {
		return b.Mode
	}
	return fmt.Sprintf("%s %d", b.Mode, b.ModeUnit)
}

func bestModifiers(b api.PersonalBest) string {
	mods := []string{b.Language}
	if b.Punctuation {
		mods = append(mods, "punctuation")
	}
	if b.Numbers {
		mods = append(mods, "numbers")
	}
	return strings.Join(mods, " ")
}

func filterBests(bests []api.PersonalBest, query string) []api.PersonalBest {
	haystack := make([]string, len(bests))
	for i, b := range bests {
		haystack[i] = bestLabel(b) + " " + bestModifiers(b)
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]api.PersonalBest, 0, len(matches))
	for _, m := range matches {
		out = append(out, bests[m.Index])
	}
	return out
}

func runStreak() error {
	client, err := setup()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	streak, err := client.Streak(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	state := "unclaimed"
	if streak.Claimed(now) {
		state = "claimed"
	}
	reset := now.Truncate(24 * time.Hour).AddDate(0, 0, 1)

	fmt.Printf("Streak:  %d days (best %d)\n", streak.Length, streak.MaxLength)
	fmt.Printf("Today:   %s, resets in %s\n", state, stats.FormatDuration(reset.Sub(now)))
	return nil
}

func runHistory() error {
	store, err := storage.New()
	if err != nil {
		return err
	}
	defer store.Close()

	snaps, err := store.GetRecent(historyDays, time.Now().UTC())
	if err != nil {
		return err
	}
	if len(snaps) < 2 {
		fmt.Println("not enough snapshots yet; run the dashboard on a few different days")
		return nil
	}

	type delta struct {
		date  string
		tests int
		xp    int64
	}

	deltas := make([]delta, 0, len(snaps)-1)
	maxTests := 1
	for i := 1; i < len(snaps); i++ {
		d := delta{
			date:  snaps[i].Date,
			tests: snaps[i].Completed - snaps[i-1].Completed,
			xp:    snaps[i].XP - snaps[i-1].XP,
		}
		if d.tests > maxTests {
			maxTests = d.tests
		}
		deltas = append(deltas, d)
	}

	fmt.Printf("Tests per day (last %d days):\n", historyDays)
	for _, d := range deltas {
		width := d.tests * 20 / maxTests
		if width < 0 {
			width = 0
		}
		bar := strings.Repeat("█", width)

		xp, sign := d.xp, "+"
		if xp < 0 {
			xp, sign = -xp, "-"
		}
		fmt.Printf("  %s %4d tests %s%s xp  %s\n", d.date, d.tests, sign, stats.ShortenNumber(xp), bar)
	}
	return nil
}

func runWatch() error {
	client, err := setup()
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		tui.New(client, palette(), anchorLastDay),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
