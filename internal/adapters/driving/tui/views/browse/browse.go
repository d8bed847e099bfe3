// Package browse provides the dataset browse view for the TUI.
package browse

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// View shows one dataset with category tabs, a query input, the current
// page of rows and pagination.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.QueryInput
	list      *list.RecordList
	statusbar *status.Bar

	browseService driving.BrowseService
	ctx           context.Context

	dataset domain.Dataset
	filter  domain.FilterState
	page    domain.PageState
	result  *domain.BrowseResult

	width      int
	height     int
	ready      bool
	err        error
	focusInput bool // true = typing a query, false = navigating rows
}

// NewView creates a new browse view.
func NewView(s *styles.Styles, km *keymap.KeyMap, browseService driving.BrowseService) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:        s,
		keymap:        km,
		input:         input.NewQueryInput(s, "Search"),
		list:          list.NewRecordList(s),
		statusbar:     status.NewBar(s, km),
		browseService: browseService,
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

// Open switches the view to a dataset in its initial state and loads
// the first page.
func (v *View) Open(name string) tea.Cmd {
	if v.browseService == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoBrowseService}
		}
	}
	ds, err := v.browseService.Dataset(name)
	if err != nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: err}
		}
	}

	v.dataset = ds
	v.filter = ds.InitialFilter()
	v.page = ds.InitialPage()
	v.result = nil
	v.err = nil
	v.focusInput = false
	v.input.Blur()
	v.input.Reset()
	v.list.SetItems(nil)
	v.statusbar.Clear()
	return v.performBrowse()
}

// Update handles messages for the browse view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.BrowseCompleted:
		v.handleBrowseCompleted(msg)
		return v, nil

	case messages.ErrorOccurred:
		v.setError(msg.Err)
		return v, nil
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.focusInput {
		return v.handleInputKey(msg)
	}

	k := msg.String()
	switch {
	case k == "ctrl+c", k == "q":
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.Focus):
		v.focusInput = true
		return v, v.input.Focus()
	case keymap.Matches(k, v.keymap.NextTab):
		return v, v.moveCategory(1)
	case keymap.Matches(k, v.keymap.PrevTab):
		return v, v.moveCategory(-1)
	case keymap.Matches(k, v.keymap.NextPage):
		return v, v.goToPage(v.page.Page + 1)
	case keymap.Matches(k, v.keymap.PrevPage):
		return v, v.goToPage(v.page.Page - 1)
	case keymap.Matches(k, v.keymap.Select):
		item := v.list.SelectedItem()
		if item == nil {
			return v, nil
		}
		sel := messages.RecordSelected{Dataset: v.dataset.Name, Index: item.Index}
		return v, func() tea.Msg { return sel }
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleInputKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyCtrlC:
		return v, tea.Quit
	case tea.KeyEsc:
		v.focusInput = false
		v.input.Blur()
		v.input.SetValue(v.filter.Query)
		return v, nil
	case tea.KeyEnter:
		v.focusInput = false
		v.input.Blur()
		v.filter = v.filter.WithQuery(strings.TrimSpace(v.input.Value()))
		v.page = v.page.Reset()
		return v, v.performBrowse()
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// moveCategory selects the tab delta positions away, wrapping around.
func (v *View) moveCategory(delta int) tea.Cmd {
	if v.result == nil || len(v.result.Categories) < 2 || !v.TabsVisible() {
		return nil
	}
	cats := v.result.Categories
	cur := 0
	for i, c := range cats {
		if c == v.filter.Category {
			cur = i
			break
		}
	}
	next := (cur + delta + len(cats)) % len(cats)
	v.filter = v.filter.WithCategory(cats[next])
	v.page = v.page.Reset()
	return v.performBrowse()
}

func (v *View) goToPage(page int) tea.Cmd {
	if v.result == nil || page < 1 || page > v.result.TotalPages || page == v.page.Page {
		return nil
	}
	v.page = v.page.WithPage(page)
	return v.performBrowse()
}

// performBrowse computes the current filter and page state.
func (v *View) performBrowse() tea.Cmd {
	if v.browseService == nil {
		return func() tea.Msg {
			return messages.ErrorOccurred{Err: ErrNoBrowseService}
		}
	}
	v.statusbar.SetState(status.StateLoading)

	ctx, svc, name := v.ctx, v.browseService, v.dataset.Name
	filter, page := v.filter, v.page
	return func() tea.Msg {
		res, err := svc.Browse(ctx, name, filter, page)
		return messages.BrowseCompleted{Result: res, Err: err}
	}
}

func (v *View) handleBrowseCompleted(msg messages.BrowseCompleted) {
	if msg.Err != nil {
		v.setError(msg.Err)
		v.list.SetItems(nil)
		return
	}

	res := msg.Result
	v.err = nil
	v.result = res
	v.page = res.Page
	v.list.SetItems(Items(res))
	v.statusbar.SetState(status.StateResults)
	v.statusbar.SetMessage("")
	v.statusbar.SetCounts(res.Total, res.Page.Page, res.TotalPages)
}

func (v *View) setError(err error) {
	v.err = err
	v.statusbar.SetState(status.StateError)
	v.statusbar.SetMessage(ErrorText(err, v.dataset))
}

// ErrorText returns the user-facing message for err, falling back to
// the error text when no message is defined.
func ErrorText(err error, ds domain.Dataset) string {
	if msg := domain.UserMessage(err, ds); msg != "" {
		return msg
	}
	return err.Error()
}

// Items converts a browse result's rows into list rows.
//
// The title is the record's title field, or its display path once a
// query is active. The subtitle is the matching body snippet when the
// title does not match, otherwise the body field. Rows carry the colour
// of their category when the dataset colour-codes it.
func Items(res *domain.BrowseResult) []list.Item {
	if res == nil {
		return nil
	}
	ds := res.Dataset
	_, coloured := res.Colors[ds.Schema.CategoryField]

	items := make([]list.Item, 0, len(res.Rows))
	for _, row := range res.Rows {
		title := row.Record.Text(ds.TitleField)
		if res.ListMode() && row.Record.Has("Path") {
			title = domain.DisplayPath(row.Record.Text("Path"))
		}

		subtitle := row.Record.Text(ds.BodyField)
		if snippet := res.Snippet(row); snippet != "" {
			subtitle = "..." + snippet + "..."
		}

		item := list.Item{
			Index:    row.Index,
			Title:    res.Spans(title),
			Subtitle: firstLine(subtitle),
		}
		if coloured {
			item.Color = res.Colors.Color(ds.Schema.CategoryField, row.Record)
		}
		items = append(items, item)
	}
	return items
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// TabsVisible reports whether category tabs apply. Datasets whose query
// ignores the category hide the tabs while a query is active.
func (v *View) TabsVisible() bool {
	if v.dataset.Schema.CategoryField == "" {
		return false
	}
	return !(v.dataset.QueryIgnoresCategory && v.filter.HasQuery())
}

// View renders the browse view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	sections := make([]string, 0, 12)

	title := v.dataset.Title
	if title == "" {
		title = v.dataset.Name
	}
	sections = append(sections, v.styles.Title.Render(title), "")

	if tabs := v.renderTabs(); tabs != "" {
		sections = append(sections, tabs, "")
	}

	sections = append(sections, v.input.View(), "")

	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(ErrorText(v.err, v.dataset)), "")
	} else {
		sections = append(sections, v.list.View())
	}

	if pages := v.renderPages(); pages != "" {
		sections = append(sections, "", pages)
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderTabs() string {
	if v.result == nil || !v.TabsVisible() {
		return ""
	}
	tabs := make([]string, 0, len(v.result.Categories))
	for _, c := range v.result.Categories {
		if c == v.filter.Category {
			tabs = append(tabs, v.styles.ActiveTab.Render(c))
			continue
		}
		tabs = append(tabs, v.styles.Tab.Render(c))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (v *View) renderPages() string {
	if v.result == nil || len(v.result.Controls) == 0 {
		return ""
	}
	parts := make([]string, 0, len(v.result.Controls))
	for _, c := range v.result.Controls {
		label := c.Label()
		switch {
		case c.Active:
			parts = append(parts, v.styles.Selected.Render("["+label+"]"))
		case c.Disabled, c.Kind == domain.ControlEllipsis:
			parts = append(parts, v.styles.Muted.Render(label))
		default:
			parts = append(parts, v.styles.Normal.Render(label))
		}
	}
	return strings.Join(parts, " ")
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-14) // header, tabs, input, pages, status
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Dataset returns the open dataset.
func (v *View) Dataset() domain.Dataset {
	return v.dataset
}

// Filter returns the current filter state.
func (v *View) Filter() domain.FilterState {
	return v.filter
}

// Page returns the current page state.
func (v *View) Page() domain.PageState {
	return v.page
}

// Result returns the last computed result.
func (v *View) Result() *domain.BrowseResult {
	return v.result
}

// Err returns the current error, if any.
func (v *View) Err() error {
	return v.err
}

// InputFocused returns whether the query input has focus.
func (v *View) InputFocused() bool {
	return v.focusInput
}
