// Package styles holds the terminal UI palette and the lipgloss styles
// built from it.
package styles

import (
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Theme is the palette. The defaults follow the colours the datasets use
// for their category and month tabs.
type Theme struct {
	Accent  lipgloss.Color // active tab, selection, titles
	Accent2 lipgloss.Color // section headers
	Text    lipgloss.Color
	Dim     lipgloss.Color
	Surface lipgloss.Color // status bar and highlight ink
	Line    lipgloss.Color
	Good    lipgloss.Color
	Caution lipgloss.Color // query highlights
	Bad     lipgloss.Color
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#4a69bd"),
		Accent2: lipgloss.Color("#38ada9"),
		Text:    lipgloss.Color("#dfe4ea"),
		Dim:     lipgloss.Color("#8395a7"),
		Surface: lipgloss.Color("#1e272e"),
		Line:    lipgloss.Color("#485460"),
		Good:    lipgloss.Color("#78e08f"),
		Caution: lipgloss.Color("#f6b93b"),
		Bad:     lipgloss.Color("#e55039"),
	}
}

// Styles are the rendered styles shared by every view.
type Styles struct {
	theme *Theme

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Help     lipgloss.Style

	// InputField and Border are rounded frames; Card uses the accent.
	InputField lipgloss.Style
	Border     lipgloss.Style
	Card       lipgloss.Style
	StatusBar  lipgloss.Style

	// Highlight marks query matches inside titles and snippets.
	Highlight lipgloss.Style

	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
}

// NewStyles builds styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	fg := func(c lipgloss.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }
	frame := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(c)
	}
	filled := lipgloss.NewStyle().Bold(true).Foreground(theme.Text).Background(theme.Accent)

	return &Styles{
		theme: theme,

		Title:    fg(theme.Accent).Bold(true),
		Subtitle: fg(theme.Accent2).Bold(true),
		Normal:   fg(theme.Text),
		Muted:    fg(theme.Dim),
		Selected: filled,
		Error:    fg(theme.Bad),
		Success:  fg(theme.Good),
		Help:     fg(theme.Dim).Italic(true),

		InputField: frame(theme.Line).Padding(0, 1),
		Border:     frame(theme.Line),
		Card:       frame(theme.Accent).Padding(0, 1),
		StatusBar:  fg(theme.Dim).Background(theme.Surface).Padding(0, 1),

		Highlight: lipgloss.NewStyle().Bold(true).Foreground(theme.Surface).Background(theme.Caution),

		Tab:       fg(theme.Dim).Padding(0, 1),
		ActiveTab: filled.Padding(0, 1),
	}
}

// DefaultStyles returns NewStyles(DefaultTheme()).
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the palette the styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Swatch is a bold style in a dataset colour token. Hex tokens are used
// as-is; anything else, such as a CSS variable, renders in the text colour.
func (s *Styles) Swatch(color string) lipgloss.Style {
	c := s.theme.Text
	if hexColor.MatchString(color) {
		c = lipgloss.Color(color)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}
