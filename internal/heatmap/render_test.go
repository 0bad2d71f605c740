package heatmap

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func renderFixture(t *testing.T) (string, Window) {
	t.Helper()

	window := ResolveWindow(date(2025, time.January, 8))
	series := make([]DayCount, 200)
	for i := range series {
		series[i] = Day((i * 7) % 23)
	}

	padded := Normalize(series, date(2025, time.January, 8), window)
	levels := Bucketize(padded)
	palette, _ := PaletteByName("default")

	return Render(levels, window, Total(padded), palette), window
}

func TestRenderDeterministic(t *testing.T) {
	first, _ := renderFixture(t)
	second, _ := renderFixture(t)

	if first != second {
		t.Error("identical inputs produced different output bytes")
	}
}

func TestRenderShape(t *testing.T) {
	out, _ := renderFixture(t)
	lines := strings.Split(out, "\n")

	// header + 4 half-block rows + month footer
	if len(lines) != 6 {
		t.Fatalf("output has %d lines, want 6", len(lines))
	}

	if !strings.Contains(lines[0], "last 12 months") {
		t.Errorf("header missing summary: %q", lines[0])
	}
	if !strings.Contains(lines[0], "less") || !strings.Contains(lines[0], "more") {
		t.Errorf("header missing legend: %q", lines[0])
	}

	for i := 1; i < 5; i++ {
		if got := strings.Count(lines[i], "▄"); got != gridWeeks {
			t.Errorf("row %d has %d cells, want %d", i, got, gridWeeks)
		}
	}
}

func TestRenderTotalInHeader(t *testing.T) {
	window := ResolveWindow(date(2025, time.January, 4))
	series := []DayCount{Day(10), Day(0), Day(5), NoData, Day(20)}

	padded := Normalize(series, window.End, window)
	levels := Bucketize(padded)
	palette, _ := PaletteByName("default")

	out := Render(levels, window, Total(padded), palette)
	if !strings.Contains(out, "35 tests") {
		t.Error("header does not report the summed test count")
	}
}

func TestMonthLabels(t *testing.T) {
	// Window starting Sunday 2024-12-29: month-start weeks fall at
	// columns 0 (jan), 4, 8 (mar), 13, 17 (may), 22, 26 (jul), 30,
	// 35 (sep), 39, 43 (nov), 48; every other one is labeled.
	got := monthLabels(date(2024, time.December, 29))

	if len(got) != gridWeeks {
		t.Fatalf("label row is %d cells, want %d", len(got), gridWeeks)
	}

	want := map[int]string{0: "jan", 8: "mar", 17: "may", 26: "jul", 35: "sep", 43: "nov"}
	for col, label := range want {
		if got[col:col+3] != label {
			t.Errorf("column %d = %q, want %q", col, got[col:col+3], label)
		}
	}

	stripped := strings.ReplaceAll(got, " ", "")
	if stripped != "janmarmayjulsepnov" {
		t.Errorf("unexpected extra labels: %q", got)
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range PaletteNames {
		if _, ok := PaletteByName(name); !ok {
			t.Errorf("palette %q not found", name)
		}
	}

	p, ok := PaletteByName("no-such-palette")
	if ok {
		t.Error("unknown palette reported as found")
	}
	if p.Name != "Default" {
		t.Errorf("fallback palette = %q, want Default", p.Name)
	}
}

func TestNewPalette(t *testing.T) {
	levels := [NumLevels]lipgloss.Color{"236", "239", "243", "246", "252", "3"}

	if _, err := NewPalette("custom", levels, "0"); err != nil {
		t.Errorf("valid palette rejected: %v", err)
	}

	levels[2] = "not-a-color"
	if _, err := NewPalette("custom", levels, "0"); err == nil {
		t.Error("invalid color accepted")
	}
}
