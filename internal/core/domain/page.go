package domain

import "strconv"

// Default pagination settings.
const (
	DefaultPageSize       = 10
	DefaultMaxPageButtons = 5
)

// Labels rendered for non-numeric page controls.
const (
	PrevLabel     = "이전"
	NextLabel     = "다음"
	EllipsisLabel = "..."
)

// PageState is the current page position. Page is 1-based.
type PageState struct {
	Page int
	Size int
}

// NewPageState returns page 1 with the given size.
func NewPageState(size int) PageState {
	return PageState{Page: 1, Size: size}
}

// WithPage returns a copy positioned at page.
func (p PageState) WithPage(page int) PageState {
	if page < 1 {
		page = 1
	}
	p.Page = page
	return p
}

// Reset returns a copy positioned at page 1.
// Callers reset whenever the filter state changes.
func (p PageState) Reset() PageState {
	p.Page = 1
	return p
}

// Clamp returns a copy with Page limited to [1, TotalPages(total, Size)].
func (p PageState) Clamp(total int) PageState {
	pages := TotalPages(total, p.Size)
	if p.Page > pages {
		p.Page = pages
	}
	if p.Page < 1 {
		p.Page = 1
	}
	return p
}

// TotalPages returns the number of pages needed for total items.
// A non-positive size puts everything on one page.
func TotalPages(total, size int) int {
	if total <= 0 {
		return 0
	}
	if size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// Paginate returns the slice of items on page. A non-positive size returns
// every item; an out-of-range page returns nothing.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// ControlKind identifies a pagination control.
type ControlKind int

const (
	// ControlPrev moves to the previous page.
	ControlPrev ControlKind = iota
	// ControlPage jumps to a numbered page.
	ControlPage
	// ControlEllipsis marks a collapsed range of pages.
	ControlEllipsis
	// ControlNext moves to the next page.
	ControlNext
)

// String returns the string representation of the control kind.
func (k ControlKind) String() string {
	switch k {
	case ControlPrev:
		return "prev"
	case ControlPage:
		return "page"
	case ControlEllipsis:
		return "ellipsis"
	case ControlNext:
		return "next"
	default:
		return "unknown"
	}
}

// PageControl describes one pagination control.
type PageControl struct {
	Kind ControlKind

	// Page is the target page. Zero for ellipsis markers.
	Page int

	// Active marks the current page button.
	Active bool

	// Disabled marks a prev/next control at the edge of the range.
	Disabled bool
}

// Label returns the text displayed for the control.
func (c PageControl) Label() string {
	switch c.Kind {
	case ControlPrev:
		return PrevLabel
	case ControlNext:
		return NextLabel
	case ControlEllipsis:
		return EllipsisLabel
	default:
		return strconv.Itoa(c.Page)
	}
}

// BuildPageControls returns the controls for a result set of total items.
//
// Up to maxButtons page numbers are shown in a window around current.
// When the window does not reach page 1 or the last page, that page is
// shown too, separated by an ellipsis if the gap is more than one page.
// No controls are returned when there is at most one page.
func BuildPageControls(total, size, current, maxButtons int) []PageControl {
	pages := TotalPages(total, size)
	if pages <= 1 {
		return nil
	}
	if maxButtons <= 0 {
		maxButtons = DefaultMaxPageButtons
	}
	if current < 1 {
		current = 1
	}
	if current > pages {
		current = pages
	}

	start, end := window(pages, current, maxButtons)

	controls := make([]PageControl, 0, end-start+6)
	prev, next := current-1, current+1
	if prev < 1 {
		prev = 1
	}
	if next > pages {
		next = pages
	}
	controls = append(controls, PageControl{Kind: ControlPrev, Page: prev, Disabled: current == 1})

	if start > 1 {
		controls = append(controls, PageControl{Kind: ControlPage, Page: 1})
		if start > 2 {
			controls = append(controls, PageControl{Kind: ControlEllipsis})
		}
	}
	for i := start; i <= end; i++ {
		controls = append(controls, PageControl{Kind: ControlPage, Page: i, Active: i == current})
	}
	if end < pages {
		if end < pages-1 {
			controls = append(controls, PageControl{Kind: ControlEllipsis})
		}
		controls = append(controls, PageControl{Kind: ControlPage, Page: pages})
	}

	controls = append(controls, PageControl{Kind: ControlNext, Page: next, Disabled: current == pages})
	return controls
}

func window(pages, current, maxButtons int) (int, int) {
	if pages <= maxButtons {
		return 1, pages
	}
	before := maxButtons / 2
	after := (maxButtons+1)/2 - 1
	switch {
	case current <= before:
		return 1, maxButtons
	case current+after >= pages:
		return pages - maxButtons + 1, pages
	default:
		return current - before, current + after
	}
}
