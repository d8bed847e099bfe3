package services

import (
	"context"
	"fmt"
	"time"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// Ensure IssueService implements the interface.
var _ driving.IssueService = (*IssueService)(nil)

// IssueService builds the business-issue feed.
type IssueService struct {
	browse driving.BrowseService
}

// NewIssueService creates a new issue service.
func NewIssueService(browse driving.BrowseService) *IssueService {
	return &IssueService{browse: browse}
}

// Feed returns all issues, newest first, and those dated in the month of now.
func (s *IssueService) Feed(ctx context.Context, now time.Time) (*domain.IssueFeed, error) {
	records, err := s.browse.Records(ctx, domain.DatasetIssues)
	if err != nil {
		return nil, fmt.Errorf("issues: %w", err)
	}
	feed := domain.NewIssueFeed(records, now)
	return &feed, nil
}

// NewCarousel returns a stopped carousel over count slides.
func (s *IssueService) NewCarousel(count int, interval time.Duration) driving.Carousel {
	return NewCarousel(count, interval)
}
