// Package voc provides the monthly VOC summary view for the TUI.
package voc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// ErrNoVOCService indicates that no VOC service was provided.
var ErrNoVOCService = errors.New("voc service is required")

// View shows one VOC month at a time with the months as tabs.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	vocService driving.VOCService
	ctx        context.Context

	months       []domain.VOCMonth
	current      int
	scrollOffset int
	loading      bool
	width        int
	height       int
	err          error
}

// NewView creates a new VOC view.
func NewView(s *styles.Styles, km *keymap.KeyMap, vocService driving.VOCService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	return &View{
		styles:     s,
		keymap:     km,
		vocService: vocService,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads the months.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches the VOC months.
func (v *View) Load() tea.Cmd {
	v.loading = true
	svc, ctx := v.vocService, v.ctx
	return func() tea.Msg {
		if svc == nil {
			return messages.VOCLoaded{Err: ErrNoVOCService}
		}
		months, err := svc.Months(ctx)
		return messages.VOCLoaded{Months: months, Err: err}
	}
}

// Update handles messages for the VOC view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.VOCLoaded:
		v.loading = false
		v.err = msg.Err
		v.months = msg.Months
		v.current = 0
		v.scrollOffset = 0
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	k := msg.String()
	switch {
	case k == "q", k == "ctrl+c":
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.NextTab), keymap.Matches(k, v.keymap.NextPage):
		v.SelectMonth(v.current + 1)
	case keymap.Matches(k, v.keymap.PrevTab), keymap.Matches(k, v.keymap.PrevPage):
		v.SelectMonth(v.current - 1)
	case keymap.Matches(k, v.keymap.Up):
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case keymap.Matches(k, v.keymap.Down):
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	}
	return v, nil
}

// SelectMonth switches to month i, wrapping around, and scrolls to the top.
func (v *View) SelectMonth(i int) {
	if len(v.months) == 0 {
		return
	}
	v.current = (i + len(v.months)) % len(v.months)
	v.scrollOffset = 0
}

// Current returns the displayed month, or nil before loading.
func (v *View) Current() *domain.VOCMonth {
	if v.current < 0 || v.current >= len(v.months) {
		return nil
	}
	return &v.months[v.current]
}

func (v *View) visibleLines() int {
	available := v.height - 10
	if available < 1 {
		available = 1
	}
	return available
}

func (v *View) maxScrollOffset() int {
	max := len(v.buildContent()) - v.visibleLines()
	if max < 0 {
		max = 0
	}
	return max
}

// buildContent renders the current month's entries, one block each.
func (v *View) buildContent() []string {
	m := v.Current()
	if m == nil {
		return nil
	}
	width := v.width - 6
	if width < 20 {
		width = 20
	}

	var lines []string
	for i, item := range m.Items {
		head := fmt.Sprintf("%d. ", i+1)
		if c := item.Text("category"); c != "" {
			head += "[" + c + "] "
		}
		lines = append(lines, v.styles.Subtitle.Render(list.Truncate(head+item.Text("title"), width)))
		if c := item.Text("content"); c != "" {
			lines = append(lines, "   "+v.styles.Normal.Render(list.Truncate(c, width)))
		}
		if s := item.Text("solution"); s != "" {
			lines = append(lines, "   "+v.styles.Success.Render(list.Truncate("→ "+s, width)))
		}
		lines = append(lines, "")
	}
	return lines
}

// View renders the VOC view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("VOC"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errorText(v.err)))
	case len(v.months) == 0:
		b.WriteString(v.styles.Muted.Render(domain.MsgNoResults))
	default:
		b.WriteString(v.renderTabs())
		b.WriteString("\n\n")
		m := v.Current()
		b.WriteString(v.styles.Subtitle.Render(m.VOCTitle))
		b.WriteString("\n")
		if m.PodcastTitle != "" {
			b.WriteString(v.styles.Muted.Render(m.PodcastTitle + "  " + m.PodcastSrc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		lines := v.buildContent()
		end := minInt(v.scrollOffset+v.visibleLines(), len(lines))
		b.WriteString(strings.Join(lines[v.scrollOffset:end], "\n"))
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[tab/←→] month  [↑/↓] scroll  [esc] back"))
	return b.String()
}

func (v *View) renderTabs() string {
	tabs := make([]string, 0, len(v.months))
	for i, m := range v.months {
		if i == v.current {
			tabs = append(tabs, v.styles.ActiveTab.Render(m.Name))
			continue
		}
		tabs = append(tabs, v.styles.Tab.Render(m.Name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func errorText(err error) string {
	if msg := domain.UserMessage(err, domain.Dataset{}); msg != "" {
		return msg
	}
	return "Error: " + err.Error()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
}

// Months returns the loaded months.
func (v *View) Months() []domain.VOCMonth {
	return v.months
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
