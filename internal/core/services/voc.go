package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// Ensure VOCService implements the interface.
var _ driving.VOCService = (*VOCService)(nil)

// VOCService groups the VOC dataset into months.
type VOCService struct {
	browse driving.BrowseService
}

// NewVOCService creates a new VOC service.
func NewVOCService(browse driving.BrowseService) *VOCService {
	return &VOCService{browse: browse}
}

// Months returns the VOC months, newest first.
func (s *VOCService) Months(ctx context.Context) ([]domain.VOCMonth, error) {
	records, err := s.browse.Records(ctx, domain.DatasetVOC)
	if err != nil {
		return nil, fmt.Errorf("voc: %w", err)
	}
	return domain.GroupVOCMonths(records), nil
}
