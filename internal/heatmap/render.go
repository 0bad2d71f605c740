package heatmap

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Render draws a leveled series as a 53-column heatmap: a summary
// header with a color legend, four half-block rows covering the seven
// weekdays (two calendar rows per printed line), and a month-label
// footer. Output uses 256-indexed colors regardless of the detected
// terminal so identical inputs always produce identical bytes.
//
// levels must hold exactly TotalDays entries aligned to w; that is the
// caller's contract, guaranteed by Normalize and Bucketize.
func Render(levels []Level, w Window, total int, p Palette) string {
	r := lipgloss.NewRenderer(io.Discard, termenv.WithProfile(termenv.ANSI256))
	bg := r.NewStyle().Background(p.Background)

	// Transpose day-major into weekday rows: row 0 holds Sundays,
	// row 6 Saturdays, one column per week.
	var grid [daysPerWeek][gridWeeks]Level
	for row := range grid {
		for col := range grid[row] {
			grid[row][col] = LevelNone
		}
	}
	for i, lv := range levels {
		if i >= TotalDays {
			break
		}
		grid[i%daysPerWeek][i/daysPerWeek] = lv
	}

	rows := []string{header(r, bg, p, total)}
	rows = append(rows, drawRows(r, p, grid)...)
	rows = append(rows, bg.Render(monthLabels(w.Start)))

	return strings.Join(indentAndMargin(bg, rows), "\n")
}

// drawRows renders the grid with "▄" cells whose background colors the
// upper calendar row and foreground the lower. An all-background row
// is prepended so the first printed line pairs (blank, Sunday), which
// keeps the grid vertically aligned and doubles as the top border.
func drawRows(r *lipgloss.Renderer, p Palette, grid [daysPerWeek][gridWeeks]Level) []string {
	colorAt := func(row, col int) lipgloss.Color {
		if row < 0 || grid[row][col] == LevelNone {
			return p.Background
		}
		return p.Levels[grid[row][col]]
	}

	var lines []string
	for top := -1; top < daysPerWeek-1; top += 2 {
		var sb strings.Builder
		for col := 0; col < gridWeeks; col++ {
			cell := r.NewStyle().
				Background(colorAt(top, col)).
				Foreground(colorAt(top+1, col))
			sb.WriteString(cell.Render("▄"))
		}
		lines = append(lines, sb.String())
	}
	return lines
}

func header(r *lipgloss.Renderer, bg lipgloss.Style, p Palette, total int) string {
	left := fmt.Sprintf("last 12 months — %d tests", total)

	var swatches strings.Builder
	for _, c := range p.Levels {
		swatches.WriteString(r.NewStyle().Foreground(c).Background(p.Background).Render("■"))
	}

	const legendWidth = len("less ") + NumLevels + len(" more")
	pad := gridWeeks - utf8.RuneCountInString(left) - legendWidth
	if pad < 1 {
		pad = 1
	}

	return bg.Render(left+strings.Repeat(" ", pad)+"less ") + swatches.String() + bg.Render(" more")
}

// monthLabels places a lowercase three-letter month abbreviation under
// the column whose week contains that month's first seven days,
// labeling every other month start to avoid crowding.
func monthLabels(start time.Time) string {
	cells := []byte(strings.Repeat(" ", gridWeeks))

	labeled := 0
	for week := 0; week < gridWeeks-2; week++ {
		weekEnd := start.AddDate(0, 0, week*daysPerWeek+6)
		if weekEnd.Day() >= 8 {
			continue
		}
		if labeled%2 == 0 {
			copy(cells[week:], strings.ToLower(weekEnd.Format("Jan")))
		}
		labeled++
	}
	return string(cells)
}

func indentAndMargin(bg lipgloss.Style, rows []string) []string {
	margin := bg.Render(" ")
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = " " + margin + row + margin
	}
	return out
}
