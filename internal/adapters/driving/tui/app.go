package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/views/browse"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/views/detail"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/views/issues"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/views/voc"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// sessionID keys this terminal's detail handoff.
	sessionID string

	styles *styles.Styles

	menuView   *menu.View
	browseView *browse.View
	detailView *detail.View
	vocView    *voc.View
	issuesView *issues.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w: %w", ErrInvalidPorts, err)
	}

	sessionID := ports.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		sessionID:   sessionID,
		styles:      s,
		menuView:    menu.NewView(s, ports.Browse.Datasets()),
		browseView:  browse.NewView(s, km, ports.Browse),
		detailView:  detail.NewView(s, ports.Detail, sessionID),
		vocView:     voc.NewView(s, km, ports.VOC),
		issuesView:  issues.NewView(s, km, ports.Issues, ports.CarouselInterval),
		currentView: messages.ViewMenu,
	}, nil
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.browseView.WithContext(ctx)
	a.detailView.WithContext(ctx)
	a.vocView.WithContext(ctx)
	a.issuesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("hioder"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler requires complexity
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.issuesView.Stop()
			return a, tea.Quit
		}
		return a, a.updateCurrent(msg)

	case messages.DatasetSelected:
		a.currentView = messages.ViewBrowse
		return a, a.browseView.Open(msg.Name)

	case messages.BrowseCompleted:
		a.browseView, cmd = a.browseView.Update(msg)
		a.err = a.browseView.Err()
		return a, cmd

	case messages.RecordSelected:
		a.currentView = messages.ViewDetail
		return a, a.detailView.Select(msg.Dataset, msg.Index)

	case messages.DetailLoaded:
		a.detailView, cmd = a.detailView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.VOCLoaded:
		a.vocView, cmd = a.vocView.Update(msg)
		a.err = msg.Err
		return a, cmd

	case messages.IssuesLoaded, messages.CarouselMoved:
		a.issuesView, cmd = a.issuesView.Update(msg)
		return a, cmd

	case messages.ViewChanged:
		if a.currentView == messages.ViewIssues && msg.View != messages.ViewIssues {
			a.issuesView.Stop()
		}
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewVOC:
			return a, a.vocView.Load()
		case messages.ViewIssues:
			return a, a.issuesView.Load()
		case messages.ViewMenu, messages.ViewBrowse, messages.ViewDetail, messages.ViewHelp:
			// Browse and detail keep their state when returned to.
		}
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		return a, a.updateCurrent(msg)

	case messages.Quit:
		a.issuesView.Stop()
		return a, tea.Quit
	}

	return a, a.updateCurrent(msg)
}

// updateCurrent forwards msg to the active view.
func (a *App) updateCurrent(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewBrowse:
		a.browseView, cmd = a.browseView.Update(msg)
	case messages.ViewDetail:
		a.detailView, cmd = a.detailView.Update(msg)
	case messages.ViewVOC:
		a.vocView, cmd = a.vocView.Update(msg)
	case messages.ViewIssues:
		a.issuesView, cmd = a.issuesView.Update(msg)
	case messages.ViewHelp:
		if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
			a.currentView = messages.ViewMenu
		}
	}
	return cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewBrowse:
		return a.browseView.View()
	case messages.ViewDetail:
		return a.detailView.View()
	case messages.ViewVOC:
		return a.vocView.View()
	case messages.ViewIssues:
		return a.issuesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back
  ctrl+c      Quit

Menu:
  j/k, ↑/↓    Navigate options
  enter       Select option
  q           Quit

Guide / Manual:
  /           Type a query, enter to apply
  tab/l       Next category
  shift+tab/h Previous category
  ]/→, [/←    Next / previous page
  enter       Open the selected row

VOC:
  tab, ←/→    Switch month
  j/k         Scroll

Issues:
  ←/→         Previous / next featured issue

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	defer a.issuesView.Stop()
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// SessionID returns the session keying the detail handoff.
func (a *App) SessionID() string {
	return a.sessionID
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions for every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.browseView.SetDimensions(width, height)
	a.detailView.SetDimensions(width, height)
	a.vocView.SetDimensions(width, height)
	a.issuesView.SetDimensions(width, height)
}
