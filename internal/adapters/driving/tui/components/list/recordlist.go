// Package list provides list display components for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/core/domain"
)

// Ellipsis terminates truncated text.
const Ellipsis = "…"

// Item is one row of a RecordList.
type Item struct {
	// Index is the record's position in the loaded dataset.
	Index int

	// Title is the row's main line, split around query matches.
	Title []domain.Span

	// Subtitle is an optional muted second line.
	Subtitle string

	// Color is a dataset colour token for the row marker; empty for none.
	Color string
}

// RecordList displays dataset rows in a navigable list.
type RecordList struct {
	items    []Item
	selected int
	styles   *styles.Styles
	empty    string
	width    int
	height   int
}

// NewRecordList creates a new record list component.
func NewRecordList(s *styles.Styles) *RecordList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &RecordList{
		styles: s,
		empty:  domain.MsgNoResults,
		width:  80,
		height: 10,
	}
}

// Init initialises the record list.
func (l *RecordList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *RecordList) Update(msg tea.Msg) (*RecordList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			l.MoveUp()
		case "down", "j":
			l.MoveDown()
		case "home", "g":
			l.selected = 0
		case "end", "G":
			if len(l.items) > 0 {
				l.selected = len(l.items) - 1
			}
		}
	}
	return l, nil
}

// View renders the visible window of rows around the selection.
func (l *RecordList) View() string {
	if len(l.items) == 0 {
		return l.styles.Muted.Render(l.empty)
	}

	// Each row takes two lines.
	visible := l.height / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.items) {
		end = len(l.items)
	}

	lines := make([]string, 0, (end-start)*2)
	for i := start; i < end; i++ {
		lines = append(lines, l.renderItem(i, l.items[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *RecordList) renderItem(i int, item Item) string {
	indicator := "  "
	base := l.styles.Normal
	if i == l.selected {
		indicator = "> "
		base = l.styles.Selected
	}

	marker := "  "
	if item.Color != "" {
		marker = l.styles.Swatch(item.Color).Render("●") + " "
	}

	width := l.width - 6
	if width < 10 {
		width = 10
	}
	line := indicator + marker + l.renderSpans(item.Title, width, base)
	if item.Subtitle == "" {
		return line
	}
	return line + "\n" + l.styles.Muted.Render("    "+Truncate(item.Subtitle, width))
}

// renderSpans renders spans within max display cells, styling matches.
func (l *RecordList) renderSpans(spans []domain.Span, max int, base lipgloss.Style) string {
	var b strings.Builder
	remaining := max
	for _, sp := range spans {
		if remaining <= 0 {
			break
		}
		text := sp.Text
		if runewidth.StringWidth(text) > remaining {
			text = Truncate(text, remaining)
		}
		remaining -= runewidth.StringWidth(text)

		style := base
		if sp.Match {
			style = l.styles.Highlight
		}
		b.WriteString(style.Render(text))
	}
	return b.String()
}

// Truncate shortens s to at most width display cells. Wide characters
// such as Hangul count as two cells.
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, Ellipsis)
}

// SetItems replaces the rows and resets the selection.
func (l *RecordList) SetItems(items []Item) {
	l.items = items
	l.selected = 0
}

// Items returns the current rows.
func (l *RecordList) Items() []Item {
	return l.items
}

// SetEmptyMessage sets the text shown when there are no rows.
func (l *RecordList) SetEmptyMessage(msg string) {
	l.empty = msg
}

// Selected returns the position of the selected row.
func (l *RecordList) Selected() int {
	return l.selected
}

// SetSelected sets the selected row.
func (l *RecordList) SetSelected(i int) {
	if i >= 0 && i < len(l.items) {
		l.selected = i
	}
}

// SelectedItem returns the selected row, or nil if the list is empty.
func (l *RecordList) SelectedItem() *Item {
	if l.selected < 0 || l.selected >= len(l.items) {
		return nil
	}
	return &l.items[l.selected]
}

// MoveUp moves selection up.
func (l *RecordList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *RecordList) MoveDown() {
	if l.selected < len(l.items)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *RecordList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of rows.
func (l *RecordList) Count() int {
	return len(l.items)
}

// IsEmpty returns whether the list is empty.
func (l *RecordList) IsEmpty() bool {
	return len(l.items) == 0
}
