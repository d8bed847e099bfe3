// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/hioder/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewBrowse lists a dataset with category tabs, query and pages.
	ViewBrowse
	// ViewDetail shows the selected record.
	ViewDetail
	// ViewVOC shows the monthly VOC summaries.
	ViewVOC
	// ViewIssues shows the business-issue feed.
	ViewIssues
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewBrowse:
		return "browse"
	case ViewDetail:
		return "detail"
	case ViewVOC:
		return "voc"
	case ViewIssues:
		return "issues"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// DatasetSelected opens the browse view on a dataset.
type DatasetSelected struct {
	Name string
}

// BrowseCompleted carries a computed browse result back to the model.
type BrowseCompleted struct {
	Result *domain.BrowseResult
	Err    error
}

// RecordSelected is sent when a row is chosen for the detail view.
type RecordSelected struct {
	Dataset string
	Index   int
}

// DetailLoaded carries the selected record for the detail view.
type DetailLoaded struct {
	Detail *domain.Detail
	Err    error
}

// VOCLoaded carries the grouped VOC months.
type VOCLoaded struct {
	Months []domain.VOCMonth
	Err    error
}

// IssuesLoaded carries the issue feed.
type IssuesLoaded struct {
	Feed *domain.IssueFeed
	Err  error
}

// CarouselMoved is sent whenever the featured-issue carousel changes slide.
type CarouselMoved struct {
	Index int

	// Run identifies the carousel run that moved. Moves from a stopped
	// run are dropped.
	Run int
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
