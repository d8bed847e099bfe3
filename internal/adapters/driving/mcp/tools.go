package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Dataset  string   `json:"dataset,omitempty" jsonschema:"dataset to search: guide, manual, voc or issues (default guide)"`
	Query    string   `json:"query,omitempty" jsonschema:"free-text query; whitespace and case are ignored"`
	Category string   `json:"category,omitempty" jsonschema:"category tab to restrict to"`
	Fields   []string `json:"fields,omitempty" jsonschema:"fields to match the query against (default: the dataset's default fields)"`
	Where    string   `json:"where,omitempty" jsonschema:"CEL expression over the record r, e.g. r[\"No\"] > 10"`
	Page     int      `json:"page,omitempty" jsonschema:"1-based page for paginated datasets"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Dataset    string         `json:"dataset"`
	Category   string         `json:"category"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Results    []RecordOutput `json:"results"`
}

// RecordOutput represents one matching record.
type RecordOutput struct {
	Index   int            `json:"index"`
	Title   string         `json:"title"`
	Snippet string         `json:"snippet,omitempty"`
	Record  map[string]any `json:"record"`
}

// CategoriesInput is the input schema for the categories tool.
type CategoriesInput struct {
	Dataset string `json:"dataset" jsonschema:"dataset name"`
}

// CategoriesOutput is the output schema for the categories tool.
type CategoriesOutput struct {
	Categories []string `json:"categories"`
}

// DetailInput is the input schema for the detail tool.
type DetailInput struct {
	Dataset string `json:"dataset,omitempty" jsonschema:"dataset name (default guide)"`
	Index   int    `json:"index" jsonschema:"record index as returned by search"`
}

// DetailOutput is the output schema for the detail tool.
type DetailOutput struct {
	Record           map[string]any `json:"record"`
	SubCategoryColor string         `json:"subCategoryColor"`
	ItemColor        string         `json:"itemColor"`
	Path             string         `json:"path,omitempty"`
}

// VOCInput is the input schema for the voc_months tool.
type VOCInput struct {
	Month string `json:"month,omitempty" jsonschema:"month key such as 2025-07; when set, the month's entries are included"`
}

// VOCOutput is the output schema for the voc_months tool.
type VOCOutput struct {
	Months []VOCMonthOutput `json:"months"`
}

// VOCMonthOutput summarises one VOC month.
type VOCMonthOutput struct {
	Key          string           `json:"key"`
	Name         string           `json:"name"`
	Label        string           `json:"label"`
	PodcastTitle string           `json:"podcast_title,omitempty"`
	PodcastSrc   string           `json:"podcast_src,omitempty"`
	Count        int              `json:"count"`
	Items        []map[string]any `json:"items,omitempty"`
}

// IssuesInput is the input schema for the issues tool.
type IssuesInput struct{}

// IssuesOutput is the output schema for the issues tool.
type IssuesOutput struct {
	Featured []IssueOutput `json:"featured"`
	All      []IssueOutput `json:"all"`
}

// IssueOutput is one feed entry.
type IssueOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Date    string `json:"date"`
	Image   string `json:"image,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search a dataset by category, free-text query and optional CEL expression",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "categories",
		Description: "List the category tabs of a dataset",
	}, s.handleCategories)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "detail",
		Description: "Get one record with its display colours",
	}, s.handleDetail)

	if s.ports.VOC != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "voc_months",
			Description: "List VOC months, newest first",
		}, s.handleVOC)
	}

	if s.ports.Issues != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "issues",
			Description: "Get this month's featured issues and the full issue feed",
		}, s.handleIssues)
	}
}

// failure adds the dataset's fixed message to load errors.
func (s *Server) failure(name string, err error) error {
	ds, dsErr := s.ports.Browse.Dataset(name)
	if dsErr != nil {
		ds = domain.Dataset{Name: name}
	}
	if msg := domain.UserMessage(err, ds); msg != "" {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return err
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	name := input.Dataset
	if name == "" {
		name = domain.DatasetGuide
	}
	ds, err := s.ports.Browse.Dataset(name)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	filter := ds.InitialFilter().WithQuery(input.Query).WithWhere(input.Where)
	if input.Category != "" {
		filter = filter.WithCategory(input.Category)
	}
	if len(input.Fields) > 0 {
		filter = filter.WithFields(input.Fields...)
	}
	var page domain.PageState
	if input.Page > 0 {
		page = ds.InitialPage().WithPage(input.Page)
	}

	res, err := s.ports.Browse.Browse(ctx, name, filter, page)
	if err != nil {
		return nil, SearchOutput{}, s.failure(name, err)
	}

	output := SearchOutput{
		Dataset:    name,
		Category:   res.Filter.Category,
		Total:      res.Total,
		Page:       res.Page.Page,
		TotalPages: res.TotalPages,
		Results:    make([]RecordOutput, len(res.Rows)),
	}
	for i, row := range res.Rows {
		output.Results[i] = RecordOutput{
			Index:   row.Index,
			Title:   row.Record.Text(ds.TitleField),
			Snippet: res.Snippet(row),
			Record:  row.Record,
		}
	}

	return nil, output, nil
}

// handleCategories handles the categories tool invocation.
func (s *Server) handleCategories(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CategoriesInput,
) (*mcp.CallToolResult, CategoriesOutput, error) {
	cats, err := s.ports.Browse.Categories(ctx, input.Dataset)
	if err != nil {
		return nil, CategoriesOutput{}, s.failure(input.Dataset, err)
	}
	return nil, CategoriesOutput{Categories: cats}, nil
}

// handleDetail handles the detail tool invocation.
func (s *Server) handleDetail(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DetailInput,
) (*mcp.CallToolResult, DetailOutput, error) {
	name := input.Dataset
	if name == "" {
		name = domain.DatasetGuide
	}

	records, err := s.ports.Browse.Records(ctx, name)
	if err != nil {
		return nil, DetailOutput{}, s.failure(name, err)
	}
	if input.Index < 0 || input.Index >= len(records) {
		return nil, DetailOutput{}, fmt.Errorf("record %d of %s: %w", input.Index, name, domain.ErrNotFound)
	}
	colors, err := s.ports.Browse.ColorMaps(ctx, name)
	if err != nil {
		return nil, DetailOutput{}, s.failure(name, err)
	}

	d := domain.NewDetail(records[input.Index], colors)
	return nil, DetailOutput{
		Record:           d.Record,
		SubCategoryColor: d.SubCategoryColorOrDefault(),
		ItemColor:        d.ItemColorOrDefault(),
		Path:             d.Path(),
	}, nil
}

// handleVOC handles the voc_months tool invocation.
func (s *Server) handleVOC(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VOCInput,
) (*mcp.CallToolResult, VOCOutput, error) {
	months, err := s.ports.VOC.Months(ctx)
	if err != nil {
		return nil, VOCOutput{}, s.failure(domain.DatasetVOC, err)
	}

	output := VOCOutput{Months: make([]VOCMonthOutput, len(months))}
	for i, m := range months {
		out := VOCMonthOutput{
			Key:          m.Key,
			Name:         m.Name,
			Label:        m.Label,
			PodcastTitle: m.PodcastTitle,
			PodcastSrc:   m.PodcastSrc,
			Count:        len(m.Items),
		}
		if input.Month != "" && input.Month == m.Key {
			for _, item := range m.Items {
				out.Items = append(out.Items, item)
			}
		}
		output.Months[i] = out
	}
	return nil, output, nil
}

// handleIssues handles the issues tool invocation.
func (s *Server) handleIssues(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ IssuesInput,
) (*mcp.CallToolResult, IssuesOutput, error) {
	feed, err := s.ports.Issues.Feed(ctx, s.now())
	if err != nil {
		return nil, IssuesOutput{}, s.failure(domain.DatasetIssues, err)
	}
	return nil, IssuesOutput{
		Featured: issueOutputs(feed.Featured),
		All:      issueOutputs(feed.All),
	}, nil
}

func issueOutputs(issues []domain.Issue) []IssueOutput {
	out := make([]IssueOutput, len(issues))
	for i, issue := range issues {
		out[i] = IssueOutput{Title: issue.Title, Content: issue.Content, Date: issue.Date, Image: issue.Image}
	}
	return out
}
