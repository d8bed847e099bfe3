// Package detail provides the selected-record detail view for the TUI.
package detail

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// ErrNoDetailService indicates that no detail service was provided.
var ErrNoDetailService = errors.New("detail service is required")

// guideFields are shown first, in this order, when present.
var guideFields = []string{"Sub Category", "Item", "Sub item", "Field", "Purpose", "Path"}

// View shows the record handed over by the last selection.
type View struct {
	styles *styles.Styles

	detailService driving.DetailService
	sessionID     string
	ctx           context.Context

	detail       *domain.Detail
	scrollOffset int
	width        int
	height       int
	ready        bool
	err          error
}

// NewView creates a detail view bound to a session.
func NewView(s *styles.Styles, detailService driving.DetailService, sessionID string) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles:        s,
		detailService: detailService,
		sessionID:     sessionID,
		ctx:           context.Background(),
		width:         80,
		height:        24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Select stores the record at index of dataset for the session and
// loads it into the view.
func (v *View) Select(dataset string, index int) tea.Cmd {
	svc, ctx, id := v.detailService, v.ctx, v.sessionID
	return func() tea.Msg {
		if svc == nil {
			return messages.DetailLoaded{Err: ErrNoDetailService}
		}
		if _, err := svc.Select(ctx, id, dataset, index); err != nil {
			return messages.DetailLoaded{Err: err}
		}
		d, err := svc.Detail(ctx, id)
		return messages.DetailLoaded{Detail: d, Err: err}
	}
}

// Reload reads the session's stored record again.
func (v *View) Reload() tea.Cmd {
	svc, ctx, id := v.detailService, v.ctx, v.sessionID
	return func() tea.Msg {
		if svc == nil {
			return messages.DetailLoaded{Err: ErrNoDetailService}
		}
		d, err := svc.Detail(ctx, id)
		return messages.DetailLoaded{Detail: d, Err: err}
	}
}

// Update handles messages for the detail view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.DetailLoaded:
		v.detail = msg.Detail
		v.err = msg.Err
		v.scrollOffset = 0
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.scrollOffset > 0 {
			v.scrollOffset--
		}
	case "down", "j":
		if v.scrollOffset < v.maxScrollOffset() {
			v.scrollOffset++
		}
	case "q", "ctrl+c":
		return v, tea.Quit
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewBrowse}
		}
	}
	return v, nil
}

func (v *View) visibleLines() int {
	available := v.height - 8
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

// buildContent lists the guide fields first, then any other fields in
// name order. Multi-line values continue on indented lines.
func (v *View) buildContent() []string {
	if v.detail == nil {
		return nil
	}
	r := v.detail.Record

	shown := make(map[string]bool, len(guideFields))
	var lines []string
	add := func(field, value string) {
		shown[field] = true
		if value == "" {
			return
		}
		label := v.styles.Subtitle.Render(fmt.Sprintf("%-13s", field+":"))
		switch field {
		case "Sub Category":
			value = v.styles.Swatch(v.detail.SubCategoryColorOrDefault()).Render(value)
		case "Item":
			value = v.styles.Swatch(v.detail.ItemColorOrDefault()).Render(value)
		}
		for i, part := range strings.Split(value, "\n") {
			if i == 0 {
				lines = append(lines, label+" "+part)
				continue
			}
			lines = append(lines, strings.Repeat(" ", 14)+part)
		}
	}

	for _, f := range guideFields {
		if f == "Path" {
			add(f, v.detail.Path())
			continue
		}
		add(f, r.Text(f))
	}
	for _, f := range r.Fields() {
		if shown[f] {
			continue
		}
		add(f, list.Truncate(r.Text(f), 400))
	}
	return lines
}

// View renders the detail view.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Detail"))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", minInt(v.width-4, 60)))
	b.WriteString("\n\n")

	switch {
	case v.err != nil:
		msg := domain.UserMessage(v.err, domain.Dataset{})
		if msg == "" {
			msg = "Error: " + v.err.Error()
		}
		b.WriteString(v.styles.Error.Render(msg))
	case v.detail == nil:
		b.WriteString(v.styles.Muted.Render(domain.MsgNoDetail))
	default:
		lines := v.buildContent()
		visible := v.visibleLines()
		for i := v.scrollOffset; i < len(lines) && i < v.scrollOffset+visible; i++ {
			b.WriteString(lines[i])
			b.WriteString("\n")
		}
		if len(lines) > visible {
			b.WriteString("\n")
			b.WriteString(v.styles.Muted.Render(fmt.Sprintf("  [Line %d-%d of %d]",
				v.scrollOffset+1,
				minInt(v.scrollOffset+visible, len(lines)),
				len(lines))))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[↑/↓] scroll  [esc] back"))
	return b.String()
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Detail returns the displayed record.
func (v *View) Detail() *domain.Detail {
	return v.detail
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
