package web

import (
	"net/url"
	"strconv"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// pageData is the view model passed to every page.
type pageData struct {
	Title   string
	Nav     []navLink
	Message string

	Browse *browseView
	VOC    *vocView
	Issues *issuesView
	Detail *detailView
}

type navLink struct {
	Title  string
	Href   string
	Active bool
}

// navOrder lists the datasets in navigation order with their page paths.
var navOrder = []struct {
	name string
	href string
}{
	{domain.DatasetIssues, "/"},
	{domain.DatasetGuide, "/guide"},
	{domain.DatasetManual, "/manual"},
	{domain.DatasetVOC, "/voc"},
}

func buildNav(datasets []domain.Dataset, active string) []navLink {
	titles := make(map[string]string, len(datasets))
	for _, d := range datasets {
		titles[d.Name] = d.Title
	}
	var links []navLink
	for _, n := range navOrder {
		title, ok := titles[n.name]
		if !ok {
			continue
		}
		links = append(links, navLink{Title: title, Href: n.href, Active: n.name == active})
	}
	return links
}

type tabView struct {
	Label  string
	Href   string
	Active bool
}

type fieldToggle struct {
	Name    string
	Checked bool
}

type controlView struct {
	Label    string
	Href     string
	Active   bool
	Disabled bool
	Ellipsis bool
}

// coloredText is highlighted text displayed in a palette colour.
type coloredText struct {
	Spans []domain.Span
	Color string
}

type guideCard struct {
	Index       int
	SubCategory coloredText
	Item        coloredText
	SubItem     coloredText
	Field       []domain.Span
	Path        []domain.Span
}

type manualRow struct {
	Index   int
	No      string
	Link    string
	Title   []domain.Span
	Snippet []domain.Span
}

type browseView struct {
	Dataset  string
	Action   string
	Category string
	Query    string
	Where    string
	Tabs     []tabView
	ShowTabs bool
	Fields   []fieldToggle
	ListMode bool
	Guide    []guideCard
	Manual   []manualRow
	Controls []controlView
	Total    int
}

// newBrowseView converts a browse result into the guide or manual view.
// q is the request's query string, reused for tab and page links.
func newBrowseView(res *domain.BrowseResult, action string, q url.Values) *browseView {
	ds := res.Dataset
	v := &browseView{
		Dataset:  ds.Name,
		Action:   action,
		Category: res.Filter.Category,
		Query:    res.Filter.Query,
		Where:    res.Filter.Where,
		ListMode: res.ListMode(),
		Total:    res.Total,
		ShowTabs: !(ds.QueryIgnoresCategory && res.Filter.HasQuery()),
	}

	for _, c := range res.Categories {
		v.Tabs = append(v.Tabs, tabView{
			Label:  c,
			Href:   action + "?" + withParam(q, "category", c, "page").Encode(),
			Active: c == res.Filter.Category,
		})
	}

	enabled := make(map[string]bool, len(res.Filter.Fields))
	for _, f := range res.Filter.Fields {
		enabled[f] = true
	}
	for _, f := range ds.SearchFields {
		v.Fields = append(v.Fields, fieldToggle{Name: f, Checked: enabled[f]})
	}

	for _, row := range res.Rows {
		r := row.Record
		switch ds.Name {
		case domain.DatasetManual:
			mr := manualRow{
				Index: row.Index,
				No:    r.Text("No"),
				Link:  r.Text("link"),
				Title: res.Spans(r.Text(ds.TitleField)),
			}
			if snippet := res.Snippet(row); snippet != "" {
				mr.Snippet = res.Spans(snippet)
			}
			v.Manual = append(v.Manual, mr)
		default:
			v.Guide = append(v.Guide, guideCard{
				Index:       row.Index,
				SubCategory: coloredText{res.Spans(r.Text("Sub Category")), res.Colors.Color("Sub Category", r)},
				Item:        coloredText{res.Spans(r.Text("Item")), res.Colors.Color("Item", r)},
				SubItem:     coloredText{res.Spans(r.Text("Sub item")), res.Colors.Color("Sub item", r)},
				Field:       res.Spans(r.Text("Field")),
				Path:        res.Spans(domain.DisplayPath(r.Text("Path"))),
			})
		}
	}

	for _, c := range res.Controls {
		cv := controlView{
			Label:    c.Label(),
			Active:   c.Active,
			Disabled: c.Disabled,
			Ellipsis: c.Kind == domain.ControlEllipsis,
		}
		if !cv.Ellipsis && !cv.Disabled {
			cv.Href = action + "?" + withParam(q, "page", strconv.Itoa(c.Page)).Encode()
		}
		v.Controls = append(v.Controls, cv)
	}
	return v
}

// withParam returns a copy of q with key set to value and drop removed.
func withParam(q url.Values, key, value string, drop ...string) url.Values {
	out := make(url.Values, len(q)+1)
	for k, vs := range q {
		out[k] = append([]string(nil), vs...)
	}
	out.Set(key, value)
	for _, d := range drop {
		out.Del(d)
	}
	return out
}

type monthTab struct {
	Name   string
	Href   string
	Active bool
}

type vocView struct {
	Tabs   []monthTab
	Active *domain.VOCMonth
}

// newVOCView selects the month with the given key, or the newest month.
func newVOCView(months []domain.VOCMonth, key string) *vocView {
	v := &vocView{}
	active := 0
	for i, m := range months {
		if m.Key == key {
			active = i
		}
	}
	for i, m := range months {
		v.Tabs = append(v.Tabs, monthTab{
			Name:   m.Name,
			Href:   "/voc?" + url.Values{"month": {m.Key}}.Encode(),
			Active: i == active,
		})
	}
	if len(months) > 0 {
		v.Active = &months[active]
	}
	return v
}

type slideView struct {
	Issue  domain.Issue
	Active bool
}

type issuesView struct {
	Slides     []slideView
	Grid       []domain.Issue
	IntervalMS int64
}

// newIssuesView lays out the carousel with slide as the visible slide.
func newIssuesView(feed *domain.IssueFeed, slide int, interval int64) *issuesView {
	v := &issuesView{Grid: feed.All, IntervalMS: interval}
	if n := len(feed.Featured); n > 0 {
		slide = ((slide % n) + n) % n
	}
	for i, issue := range feed.Featured {
		v.Slides = append(v.Slides, slideView{Issue: issue, Active: i == slide})
	}
	return v
}

type detailView struct {
	SubCategory coloredText
	Item        coloredText
	SubItem     string
	Field       string
	Purpose     string
	Path        string
}

func newDetailView(d *domain.Detail) *detailView {
	r := d.Record
	return &detailView{
		SubCategory: coloredText{Spans: []domain.Span{{Text: r.Text("Sub Category")}}, Color: d.SubCategoryColorOrDefault()},
		Item:        coloredText{Spans: []domain.Span{{Text: r.Text("Item")}}, Color: d.ItemColorOrDefault()},
		SubItem:     r.Text("Sub item"),
		Field:       r.Text("Field"),
		Purpose:     r.Text("Purpose"),
		Path:        d.Path(),
	}
}
