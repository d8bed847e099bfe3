package web

import (
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// Ports aggregates the driving ports the web server renders.
type Ports struct {
	// Browse serves the guide and manual pages and the JSON API.
	Browse driving.BrowseService

	// Detail stores and reads the selected guide record.
	Detail driving.DetailService

	// VOC serves the monthly VOC page.
	VOC driving.VOCService

	// Issues serves the issue feed.
	Issues driving.IssueService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Browse == nil {
		return ErrMissingBrowseService
	}
	if p.Detail == nil {
		return ErrMissingDetailService
	}
	// VOC and Issues pages render a load error when their service is absent.
	return nil
}
