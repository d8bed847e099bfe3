package domain

import "strings"

// Row is a record on the current page with its position in the dataset.
type Row struct {
	// Index is the record's position in the loaded dataset.
	Index int

	Record Record
}

// BrowseResult is one computed view of a dataset.
type BrowseResult struct {
	// Dataset is the profile the result was computed for.
	Dataset Dataset

	// Categories are the category tabs, starting with the all-label.
	Categories []string

	// Filter is the state the result was computed from.
	Filter FilterState

	// Page is the page state, clamped to the result's range.
	Page PageState

	// Total is the number of records matching Filter.
	Total int

	// TotalPages is the page count for Total and Page.Size.
	TotalPages int

	// Rows are the records on the current page.
	Rows []Row

	// Controls are the pagination controls; empty for a single page.
	Controls []PageControl

	// Colors are the dataset's colour maps, built over all records.
	Colors ColorMaps
}

// Empty reports whether no record matched.
func (r *BrowseResult) Empty() bool {
	return r.Total == 0
}

// ListMode reports whether a query is active, which switches list
// views from cards to compact rows.
func (r *BrowseResult) ListMode() bool {
	return r.Filter.HasQuery()
}

// Spans splits text around matches of the active query using the
// dataset's highlight mode.
func (r *BrowseResult) Spans(text string) []Span {
	return r.Dataset.Highlight.Spans(text, r.Filter.Query)
}

// Highlight renders text with matches of the active query wrapped.
func (r *BrowseResult) Highlight(text string) string {
	return Markup(r.Spans(text))
}

// Snippet returns the first body sentence matching the query when the
// title does not, or "" when the title matches or no sentence does.
func (r *BrowseResult) Snippet(row Row) string {
	if !r.Filter.HasQuery() || r.Dataset.BodyField == "" {
		return ""
	}
	if strings.Contains(Normalize(row.Record.Text(r.Dataset.TitleField)), Normalize(r.Filter.Query)) {
		return ""
	}
	return Snippet(row.Record.Text(r.Dataset.BodyField), r.Filter.Query)
}
