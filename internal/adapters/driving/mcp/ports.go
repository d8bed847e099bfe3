package mcp

import (
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Browse searches and pages through datasets.
	Browse driving.BrowseService

	// VOC groups VOC entries by month.
	VOC driving.VOCService

	// Issues builds the issue feed.
	Issues driving.IssueService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Browse == nil {
		return ErrMissingBrowseService
	}
	// VOC and Issues tools are only registered when their service is set.
	return nil
}
