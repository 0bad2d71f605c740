package heatmap

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the explicit color configuration for one heatmap render:
// one color per intensity level plus the background used for no-data
// cells, margins, and labels. Values are immutable once built.
type Palette struct {
	Name       string
	Levels     [NumLevels]lipgloss.Color
	Background lipgloss.Color
}

// Available palettes
var palettes = map[string]Palette{
	"default": {
		Name:       "Default",
		Background: "0",
		Levels: [NumLevels]lipgloss.Color{
			"236", // Dark gray
			"239", // Dim gray
			"243", // Medium gray
			"246", // Light gray
			"252", // Near white
			"3",   // Yellow
		},
	},
	"gruvbox": {
		Name:       "Gruvbox",
		Background: "#1d2021",
		Levels: [NumLevels]lipgloss.Color{
			"#3c3836", // bg1
			"#504945", // bg2
			"#665c54", // bg3
			"#928374", // gray
			"#a89984", // light gray
			"#d65d0e", // orange
		},
	},
	"tokyonight": {
		Name:       "Tokyo Night",
		Background: "#16161e",
		Levels: [NumLevels]lipgloss.Color{
			"#292e42", // bg highlight
			"#3b4261", // fg gutter
			"#565f89", // comment
			"#7aa2f7", // blue
			"#7dcfff", // cyan
			"#9ece6a", // green
		},
	},
	"catppuccin": {
		Name:       "Catppuccin",
		Background: "#11111b",
		Levels: [NumLevels]lipgloss.Color{
			"#313244", // Surface0
			"#45475a", // Surface1
			"#585b70", // Surface2
			"#89b4fa", // Blue
			"#cba6f7", // Mauve
			"#f5c2e7", // Pink
		},
	},
}

// PaletteNames lists the built-in palette names in display order.
var PaletteNames = []string{"default", "gruvbox", "tokyonight", "catppuccin"}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

// PaletteByName looks up a built-in palette. Unknown names fall back
// to the default palette and report false.
func PaletteByName(name string) (Palette, bool) {
	if p, ok := palettes[name]; ok {
		return p, true
	}
	return palettes["default"], false
}

// NewPalette builds a custom palette, rejecting colors that are
// neither a 256-color index nor a #rrggbb value.
func NewPalette(name string, levels [NumLevels]lipgloss.Color, background lipgloss.Color) (Palette, error) {
	for _, c := range append(levels[:], background) {
		if !colorPattern.MatchString(string(c)) {
			return Palette{}, fmt.Errorf("invalid color %q in palette %q", c, name)
		}
	}
	return Palette{Name: name, Levels: levels, Background: background}, nil
}
