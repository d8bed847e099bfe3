// Package domain is the browsing engine: records, dataset profiles and the
// pure functions that turn a filter and a page request into rows,
// pagination controls and highlighted text.
//
// Filter, BuildColorMap, Paginate, BuildPageControls and Highlight take
// and return values only. FilterState and PageState are never mutated in
// place; the With* methods return copies.
//
// Only the standard library is imported here.
package domain
