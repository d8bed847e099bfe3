// Package issues provides the business-issue feed view for the TUI.
package issues

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/hioder/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// ErrNoIssueService indicates that no issue service was provided.
var ErrNoIssueService = errors.New("issue service is required")

// View shows this month's featured issues as an auto-advancing carousel
// above the full issue list.
type View struct {
	styles *styles.Styles
	keymap *keymap.KeyMap

	issueService driving.IssueService
	ctx          context.Context
	now          func() time.Time
	interval     time.Duration

	feed     *domain.IssueFeed
	carousel driving.Carousel
	done     chan struct{}
	run      int
	list     *list.RecordList

	loading bool
	width   int
	height  int
	err     error
}

// NewView creates a new issues view. A non-positive interval uses
// services.DefaultCarouselInterval.
func NewView(s *styles.Styles, km *keymap.KeyMap, issueService driving.IssueService, interval time.Duration) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}
	l := list.NewRecordList(s)
	l.SetEmptyMessage(domain.MsgNoIssues)
	return &View{
		styles:       s,
		keymap:       km,
		issueService: issueService,
		ctx:          context.Background(),
		now:          time.Now,
		interval:     interval,
		list:         l,
		width:        80,
		height:       24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithClock sets the clock deciding which month is featured.
func (v *View) WithClock(now func() time.Time) *View {
	v.now = now
	return v
}

// Init loads the feed.
func (v *View) Init() tea.Cmd {
	return v.Load()
}

// Load fetches the issue feed.
func (v *View) Load() tea.Cmd {
	v.loading = true
	svc, ctx, now := v.issueService, v.ctx, v.now()
	return func() tea.Msg {
		if svc == nil {
			return messages.IssuesLoaded{Err: ErrNoIssueService}
		}
		feed, err := svc.Feed(ctx, now)
		return messages.IssuesLoaded{Feed: feed, Err: err}
	}
}

// Update handles messages for the issues view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.IssuesLoaded:
		return v, v.handleLoaded(msg)

	case messages.CarouselMoved:
		// The slide is read from the carousel when rendering.
		if msg.Run != v.run || v.carousel == nil {
			return v, nil
		}
		return v, v.waitForSlide()

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
		v.Stop()
		return v, tea.Quit
	case keymap.Matches(k, v.keymap.Back):
		v.Stop()
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case keymap.Matches(k, v.keymap.NextPage):
		if v.carousel != nil {
			v.carousel.Next()
		}
		return v, nil
	case keymap.Matches(k, v.keymap.PrevPage):
		if v.carousel != nil {
			v.carousel.Prev()
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v *View) handleLoaded(msg messages.IssuesLoaded) tea.Cmd {
	v.loading = false
	v.Stop()
	v.err = msg.Err
	v.feed = msg.Feed
	if msg.Err != nil || msg.Feed == nil {
		v.list.SetItems(nil)
		return nil
	}

	items := make([]list.Item, len(msg.Feed.All))
	for i, issue := range msg.Feed.All {
		items[i] = list.Item{
			Index:    i,
			Title:    []domain.Span{{Text: issue.Title}},
			Subtitle: strings.TrimSpace(issue.Date + "  " + issue.Content),
		}
	}
	v.list.SetItems(items)

	if len(msg.Feed.Featured) == 0 {
		return nil
	}
	v.carousel = v.issueService.NewCarousel(len(msg.Feed.Featured), v.interval)
	v.done = make(chan struct{})
	v.run++
	v.carousel.Start()
	return v.waitForSlide()
}

// waitForSlide blocks until the carousel moves or the view stops it.
func (v *View) waitForSlide() tea.Cmd {
	c, done, run := v.carousel, v.done, v.run
	if c == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case i := <-c.Changes():
			return messages.CarouselMoved{Index: i, Run: run}
		case <-done:
			return nil
		}
	}
}

// Stop halts the carousel. The view restarts it on the next load.
func (v *View) Stop() {
	if v.carousel == nil {
		return
	}
	v.carousel.Stop()
	close(v.done)
	v.carousel = nil
	v.done = nil
}

// Slide returns the featured slide index, or -1 without a carousel.
func (v *View) Slide() int {
	if v.carousel == nil {
		return -1
	}
	return v.carousel.Index()
}

// View renders the issues view.
func (v *View) View() string {
	var b strings.Builder
	b.WriteString(v.styles.Title.Render("영업이슈"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(v.styles.Muted.Render("Loading..."))
	case v.err != nil:
		b.WriteString(v.styles.Error.Render(errorText(v.err)))
	case v.feed == nil || v.feed.Empty():
		b.WriteString(v.styles.Muted.Render(domain.MsgNoIssues))
	default:
		if slide := v.renderSlide(); slide != "" {
			b.WriteString(slide)
			b.WriteString("\n\n")
		}
		b.WriteString(v.list.View())
	}

	b.WriteString("\n\n")
	b.WriteString(v.styles.Help.Render("[←/→] slide  [↑/↓] navigate  [esc] back"))
	return b.String()
}

func (v *View) renderSlide() string {
	i := v.Slide()
	if i < 0 || v.feed == nil || i >= len(v.feed.Featured) {
		return ""
	}
	issue := v.feed.Featured[i]
	width := v.width - 8
	if width < 20 {
		width = 20
	}

	var b strings.Builder
	b.WriteString(v.styles.Subtitle.Render(list.Truncate(issue.Title, width)))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(issue.Date))
	if issue.Content != "" {
		b.WriteString("\n")
		b.WriteString(v.styles.Normal.Render(list.Truncate(issue.Content, width)))
	}
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(fmt.Sprintf("%d / %d", i+1, len(v.feed.Featured))))
	return v.styles.Card.Render(b.String())
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
	v.list.SetDimensions(width, height-14)
}

// Feed returns the loaded feed.
func (v *View) Feed() *domain.IssueFeed {
	return v.feed
}

// Err returns the last error.
func (v *View) Err() error {
	return v.err
}
