package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

const (
	// URIScheme is the custom URI scheme for hioder resources.
	uriScheme = "hioder://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing datasets.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "datasets",
		Name:        "datasets",
		Description: "Browsable datasets with their locations and searchable fields",
		MIMEType:    "application/json",
	}, s.handleDatasetsResource)

	// Template for a dataset's records.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "datasets/{name}",
		Name:        "dataset-records",
		Description: "All records of a dataset in load order",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)
}

// handleDatasetsResource returns the configured dataset profiles.
func (s *Server) handleDatasetsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	type datasetInfo struct {
		Name         string   `json:"name"`
		Title        string   `json:"title"`
		URL          string   `json:"url"`
		SearchFields []string `json:"search_fields"`
		PageSize     int      `json:"page_size"`
	}

	datasets := s.ports.Browse.Datasets()
	infos := make([]datasetInfo, len(datasets))
	for i, d := range datasets {
		infos[i] = datasetInfo{
			Name:         d.Name,
			Title:        d.Title,
			URL:          d.Source.URL,
			SearchFields: d.SearchFields,
			PageSize:     d.PageSize,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling datasets: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRecordsResource returns every record of one dataset.
func (s *Server) handleRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract name from URI: hioder://datasets/{name}
	name := extractDatasetName(req.Params.URI)
	if name == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	records, err := s.ports.Browse.Records(ctx, name)
	if errors.Is(err, domain.ErrUnknownDataset) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, s.failure(name, err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling records: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDatasetName extracts the dataset name from a URI like hioder://datasets/{name}.
func extractDatasetName(uri string) string {
	const prefix = uriScheme + "datasets/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	name := strings.TrimPrefix(uri, prefix)
	if strings.Contains(name, "/") {
		return ""
	}
	return name
}
