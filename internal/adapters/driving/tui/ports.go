// Package tui provides an interactive terminal user interface for hioder.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"time"

	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Browse lists, filters and paginates datasets.
	Browse driving.BrowseService

	// Detail hands a selected row to the detail view.
	Detail driving.DetailService

	// VOC provides the monthly VOC summaries. Optional.
	VOC driving.VOCService

	// Issues provides the business-issue feed. Optional.
	Issues driving.IssueService

	// SessionID keys the detail handoff. A random ID is used when empty.
	SessionID string

	// CarouselInterval is the featured-issue auto-advance period.
	CarouselInterval time.Duration
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(
	browse driving.BrowseService,
	detail driving.DetailService,
	voc driving.VOCService,
	issues driving.IssueService,
) *Ports {
	return &Ports{
		Browse: browse,
		Detail: detail,
		VOC:    voc,
		Issues: issues,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Browse == nil {
		return ErrMissingBrowseService
	}
	if p.Detail == nil {
		return ErrMissingDetailService
	}
	return nil
}
