package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is a named set of colors the styles are built from
type Palette struct {
	Name string

	Base  lipgloss.Color // screen background, text on accent fills
	Text  lipgloss.Color
	Muted lipgloss.Color

	Accent    lipgloss.Color
	AccentAlt lipgloss.Color
	Selected  lipgloss.Color

	Good   lipgloss.Color
	Warn   lipgloss.Color
	Danger lipgloss.Color

	Edge      lipgloss.Color
	EdgeFocus lipgloss.Color
}

var TokyoNight = Palette{
	Name:      "tokyo-night",
	Base:      "#1a1b26",
	Text:      "#c0caf5",
	Muted:     "#565f89",
	Accent:    "#7aa2f7",
	AccentAlt: "#bb9af7",
	Selected:  "#33467c",
	Good:      "#9ece6a",
	Warn:      "#e0af68",
	Danger:    "#f7768e",
	Edge:      "#3b4261",
	EdgeFocus: "#7aa2f7",
}

var Gruvbox = Palette{
	Name:      "gruvbox",
	Base:      "#282828",
	Text:      "#ebdbb2",
	Muted:     "#928374",
	Accent:    "#fabd2f",
	AccentAlt: "#d3869b",
	Selected:  "#3c3836",
	Good:      "#b8bb26",
	Warn:      "#fe8019",
	Danger:    "#fb4934",
	Edge:      "#504945",
	EdgeFocus: "#fabd2f",
}

var palettes = []Palette{TokyoNight, Gruvbox}

// Current is the palette NewStyles reads from
var Current = TokyoNight

// Use selects a palette by name. An empty name keeps the default.
func Use(name string) error {
	if name == "" {
		return nil
	}
	for _, p := range palettes {
		if strings.EqualFold(p.Name, name) {
			Current = p
			return nil
		}
	}
	return fmt.Errorf("unknown theme %q", name)
}

// StatusColor picks a color for a project or task status value
func StatusColor(status string) lipgloss.Color {
	switch status {
	case "completed":
		return Current.Good
	case "on_hold", "in_progress":
		return Current.Warn
	default:
		return Current.Accent
	}
}

// MaxWidth caps how wide the content column grows
const MaxWidth = 100

func ContentWidth(terminalWidth int) int {
	return min(terminalWidth, MaxWidth)
}

// CenterView places content in the middle of wide terminals
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight, lipgloss.Center, lipgloss.Top, content)
}

type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	Tab       lipgloss.Style
	TabActive lipgloss.Style

	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// task search bar and overdue marker
	FilterBar    lipgloss.Style
	FilterButton lipgloss.Style
	TaskOverdue  lipgloss.Style

	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonPrimary lipgloss.Style

	Input        lipgloss.Style
	InputFocused lipgloss.Style

	Help           lipgloss.Style
	HelpKey        lipgloss.Style
	StatusBar      lipgloss.Style
	StatusBarError lipgloss.Style
}

// NewStyles builds the style set from Current
func NewStyles() *Styles {
	p := Current

	text := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := func(fg, edge lipgloss.Color, padX int) lipgloss.Style {
		return text(fg).Border(lipgloss.RoundedBorder()).BorderForeground(edge).Padding(0, padX)
	}
	filled := text(p.Base).Background(p.Accent).Padding(0, 2).Bold(true)
	line := text(p.Muted).Padding(1, 2)

	return &Styles{
		Title:      text(p.Accent).Bold(true),
		TitleMuted: text(p.Muted),

		Tab:       text(p.Muted).Padding(0, 2),
		TabActive: filled,

		ListItem:     text(p.Text).Padding(0, 2),
		ListSelected: text(p.Accent).Background(p.Selected).Padding(0, 2).Bold(true),

		FilterBar:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Edge).Padding(0, 1),
		FilterButton: text(p.AccentAlt).Padding(0, 1),
		TaskOverdue:  text(p.Danger).Padding(0, 1).Bold(true),

		Button:        boxed(p.Text, p.Edge, 2),
		ButtonFocused: boxed(p.Accent, p.EdgeFocus, 2).Bold(true),
		ButtonPrimary: filled,

		Input:        boxed(p.Text, p.Edge, 1),
		InputFocused: boxed(p.Text, p.EdgeFocus, 1),

		Help:           line,
		HelpKey:        text(p.Accent).Bold(true),
		StatusBar:      line,
		StatusBarError: text(p.Danger).Padding(1, 2),
	}
}
