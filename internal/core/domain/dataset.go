package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Built-in dataset names.
const (
	DatasetGuide  = "guide"
	DatasetManual = "manual"
	DatasetVOC    = "voc"
	DatasetIssues = "issues"
)

// Shape describes the top-level layout of a dataset document.
type Shape string

const (
	// ShapeFlat is an array of record objects.
	ShapeFlat Shape = "flat"

	// ShapeGrouped is an object holding an array of labelled groups,
	// each with a nested array of records.
	ShapeGrouped Shape = "grouped"
)

// Grouping locates records inside a grouped document.
type Grouping struct {
	// Key is the top-level property holding the groups.
	Key string

	// LabelField is the group property copied onto every leaf record.
	LabelField string

	// ItemsField is the group property holding the leaf records.
	ItemsField string
}

// Source tells a loader where a dataset lives and how it is shaped.
type Source struct {
	URL      string
	Shape    Shape
	Grouping Grouping
}

// SortKind selects how sort keys are compared.
type SortKind string

const (
	SortNone    SortKind = ""
	SortText    SortKind = "text"
	SortNumeric SortKind = "numeric"
	SortDate    SortKind = "date"
)

// SortSpec orders a dataset at load time.
type SortSpec struct {
	Field      string
	Kind       SortKind
	Descending bool
}

// ColorField pairs a colour-coded field with its palette.
type ColorField struct {
	Field   string
	Palette Palette
}

// Dataset is the profile of one browsable dataset.
type Dataset struct {
	// Name identifies the dataset, e.g. "guide".
	Name string

	// Title is the human-readable heading.
	Title string

	// Source locates and shapes the document.
	Source Source

	// Aliases are resolved once per record after loading.
	Aliases map[string][]string

	// Schema drives category filtering and combined fields.
	Schema Schema

	// SearchFields are the fields a user may enable.
	SearchFields []string

	// DefaultFields are enabled initially. Empty selects full-record matching.
	DefaultFields []string

	// TitleField is the primary display field.
	TitleField string

	// BodyField holds long free text used for snippets.
	BodyField string

	// Highlight selects the highlight variant for query matches.
	Highlight HighlightMode

	// Sort orders records after loading.
	Sort SortSpec

	// Colors lists the colour-coded fields.
	Colors []ColorField

	// PageSize is the number of records per page. Zero disables paging.
	PageSize int

	// QueryIgnoresCategory searches every category while a query is present.
	QueryIgnoresCategory bool

	// LoadErrorMessage is shown in place of data when loading fails.
	LoadErrorMessage string
}

// InitialFilter returns the filter state a fresh view starts with.
func (d Dataset) InitialFilter() FilterState {
	return NewFilterState(d.Schema, d.DefaultFields...)
}

// InitialPage returns the page state a fresh view starts with.
func (d Dataset) InitialPage() PageState {
	return NewPageState(d.PageSize)
}

// Prepare resolves aliases and applies the sort order. The input slice
// is not modified; records are copied before alias resolution.
func (d Dataset) Prepare(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		c := r.Clone()
		c.ResolveAliases(d.Aliases)
		out[i] = c
	}
	SortRecords(out, d.Sort)
	return out
}

// BuildColors builds one ColorMap per colour-coded field.
func (d Dataset) BuildColors(records []Record) ColorMaps {
	maps := make(ColorMaps, len(d.Colors))
	for _, cf := range d.Colors {
		maps[cf.Field] = BuildColorMap(records, cf.Field, cf.Palette)
	}
	return maps
}

// SortRecords stably sorts records in place. Values that cannot be parsed
// for the sort kind order after every parseable value.
func SortRecords(records []Record, spec SortSpec) {
	if spec.Kind == SortNone || spec.Field == "" {
		return
	}
	less := func(a, b Record) bool {
		return compare(a.Text(spec.Field), b.Text(spec.Field), spec.Kind, spec.Descending)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return less(records[i], records[j])
	})
}

func compare(a, b string, kind SortKind, desc bool) bool {
	switch kind {
	case SortNumeric:
		x, errA := strconv.ParseFloat(a, 64)
		y, errB := strconv.ParseFloat(b, 64)
		if errA != nil || errB != nil {
			return errA == nil && errB != nil
		}
		if desc {
			return x > y
		}
		return x < y
	case SortDate:
		x, okA := ParseDate(a)
		y, okB := ParseDate(b)
		if !okA || !okB {
			return okA && !okB
		}
		if desc {
			return x.After(y)
		}
		return x.Before(y)
	default:
		if desc {
			return a > b
		}
		return a < b
	}
}

var dateLayouts = []string{
	"2006-01-02",
	"2006.01.02",
	"2006/01/02",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01",
}

// ParseDate parses the date formats found in dataset documents.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DefaultDatasets returns the built-in dataset profiles rooted at baseURL.
func DefaultDatasets(baseURL string) []Dataset {
	return []Dataset{
		{
			Name:   DatasetGuide,
			Title:  "가이드",
			Source: Source{URL: joinURL(baseURL, "guide_data.json"), Shape: ShapeFlat},
			Schema: Schema{
				CategoryField: "Sub Category",
				AllLabel:      AllCategory,
				Combined:      map[string][]string{"Item": {"Item", "Sub item"}},
			},
			SearchFields:     []string{"Sub Category", "Item", "Field", "Purpose", "Path"},
			DefaultFields:    []string{"Sub Category", "Item", "Field", "Purpose", "Path"},
			TitleField:       "Item",
			BodyField:        "Field",
			Highlight:        HighlightLiteral,
			Colors:           []ColorField{{"Sub Category", SubCategoryPalette}, {"Item", ItemPalette}, {"Sub item", SubItemPalette}},
			LoadErrorMessage: "가이드 데이터를 불러오는 데 실패했습니다. 파일을 확인해주세요.",
		},
		{
			Name:    DatasetManual,
			Title:   "매뉴얼",
			Source:  Source{URL: joinURL(baseURL, "manualData.json"), Shape: ShapeFlat},
			Aliases: map[string][]string{"Category": {"Category", "MainCategory"}},
			Schema: Schema{
				CategoryField: "Category",
				AllLabel:      "전체",
			},
			SearchFields:         []string{"Title", "text"},
			DefaultFields:        []string{"Title", "text"},
			TitleField:           "Title",
			BodyField:            "text",
			Highlight:            HighlightFuzzy,
			Sort:                 SortSpec{Field: "No", Kind: SortNumeric, Descending: true},
			PageSize:             DefaultPageSize,
			QueryIgnoresCategory: true,
			LoadErrorMessage:     "매뉴얼 데이터를 불러오는 데 실패했습니다. 파일을 확인해주세요.",
		},
		{
			Name:  DatasetVOC,
			Title: "VOC",
			Source: Source{
				URL:      joinURL(baseURL, "voc_summary.json"),
				Shape:    ShapeGrouped,
				Grouping: Grouping{Key: "voc_summary", LabelField: VOCMonthField, ItemsField: "issues"},
			},
			Schema:           Schema{CategoryField: VOCMonthField, AllLabel: AllCategory},
			SearchFields:     []string{"category", "title", "content", "solution"},
			TitleField:       "title",
			BodyField:        "content",
			Highlight:        HighlightLiteral,
			LoadErrorMessage: "VOC 데이터를 불러오는 데 실패했습니다. 파일을 확인해주세요.",
		},
		{
			Name:             DatasetIssues,
			Title:            "영업이슈",
			Source:           Source{URL: joinURL(baseURL, "issues_data.json"), Shape: ShapeFlat},
			SearchFields:     []string{"title", "content"},
			TitleField:       "title",
			BodyField:        "content",
			Highlight:        HighlightLiteral,
			Sort:             SortSpec{Field: "date", Kind: SortDate, Descending: true},
			LoadErrorMessage: "영업이슈를 불러오는 데 실패했습니다.",
		},
	}
}

func joinURL(base, file string) string {
	if base == "" {
		return file
	}
	return strings.TrimSuffix(base, "/") + "/" + file
}
