package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

var (
	searchDataset  string
	searchCategory string
	searchFields   []string
	searchPage     int
	searchWhere    string
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search a dataset",
	Long: `Filters a dataset by category, free-text query and an optional record
expression, and prints one page of matching records.

Without a query every record of the category is listed. The manual searches
all categories while a query is present.

Examples:
  hioder search 결제
  hioder search -d manual -p 2 환불
  hioder search -d guide -c 회원 -f Item -f Path 로그인
  hioder search -d manual --where 'int(r["No"]) > 100'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchDataset, "dataset", "d", domain.DatasetGuide, "dataset to search")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "category to filter by")
	searchCmd.Flags().StringSliceVarP(&searchFields, "field", "f", nil, "fields to search (default: the dataset's default fields)")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "page number")
	searchCmd.Flags().StringVarP(&searchWhere, "where", "w", "", "CEL expression over the record r")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := requireBrowse(); err != nil {
		return err
	}

	ds, err := browseService.Dataset(searchDataset)
	if err != nil {
		return err
	}

	filter := ds.InitialFilter()
	if len(args) == 1 {
		filter = filter.WithQuery(args[0])
	}
	if searchCategory != "" {
		filter = filter.WithCategory(searchCategory)
	}
	if len(searchFields) > 0 {
		filter = filter.WithFields(searchFields...)
	}
	if searchWhere != "" {
		filter = filter.WithWhere(searchWhere)
	}
	page := ds.InitialPage().WithPage(searchPage)

	res, err := browseService.Browse(cmd.Context(), ds.Name, filter, page)
	if err != nil {
		return fmt.Errorf("search failed: %w", userError(err, ds))
	}

	if searchJSON {
		return printJSON(cmd, newSearchOutput(res))
	}

	return outputSearchTable(cmd, res)
}

type searchRow struct {
	Index     int           `json:"index"`
	Title     string        `json:"title"`
	Highlight string        `json:"highlight,omitempty"`
	Snippet   string        `json:"snippet,omitempty"`
	Record    domain.Record `json:"record"`
}

type searchOutput struct {
	Dataset    string      `json:"dataset"`
	Category   string      `json:"category"`
	Query      string      `json:"query,omitempty"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
	Total      int         `json:"total"`
	Rows       []searchRow `json:"rows"`
}

func newSearchOutput(res *domain.BrowseResult) searchOutput {
	out := searchOutput{
		Dataset:    res.Dataset.Name,
		Category:   res.Filter.Category,
		Query:      res.Filter.Query,
		Page:       res.Page.Page,
		TotalPages: res.TotalPages,
		Total:      res.Total,
		Rows:       make([]searchRow, 0, len(res.Rows)),
	}
	for _, row := range res.Rows {
		title := rowTitle(res, row)
		sr := searchRow{
			Index:   row.Index,
			Title:   title,
			Snippet: res.Snippet(row),
			Record:  row.Record,
		}
		if res.Filter.HasQuery() {
			sr.Highlight = res.Highlight(title)
		}
		out.Rows = append(out.Rows, sr)
	}
	return out
}

func rowTitle(res *domain.BrowseResult, row domain.Row) string {
	if res.ListMode() && row.Record.Has("Path") {
		return domain.DisplayPath(row.Record.Text("Path"))
	}
	return row.Record.Text(res.Dataset.TitleField)
}

func outputSearchTable(cmd *cobra.Command, res *domain.BrowseResult) error {
	if res.Empty() {
		cmd.Println(domain.MsgNoResults)
		return nil
	}

	width := outputWidth(cmd) - 8
	cmd.Printf("Results: %d", res.Total)
	if res.TotalPages > 1 {
		cmd.Printf(" (page %d/%d)", res.Page.Page, res.TotalPages)
	}
	cmd.Println()
	cmd.Println()

	for _, row := range res.Rows {
		cmd.Printf("  [%d] %s\n", row.Index, fit(rowTitle(res, row), width))
		if cat := row.Record.Text(res.Dataset.Schema.CategoryField); cat != "" && !res.ListMode() {
			cmd.Printf("      %s\n", fit(cat, width))
		}
		if snippet := res.Snippet(row); snippet != "" {
			cmd.Printf("      ...%s...\n", fit(snippet, width-6))
		}
	}

	if len(res.Controls) > 0 {
		cmd.Println()
		cmd.Println("  " + pageBar(res.Controls))
	}
	return nil
}

// pageBar renders the pagination controls on one line; the active page
// is bracketed and disabled controls are omitted.
func pageBar(controls []domain.PageControl) string {
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		if c.Disabled {
			continue
		}
		label := c.Label()
		if c.Active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, " ")
}
