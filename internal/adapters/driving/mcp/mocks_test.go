package mcp

import (
	"context"
	"time"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
)

// mockBrowseService is a mock implementation of driving.BrowseService.
type mockBrowseService struct {
	datasets   []domain.Dataset
	records    []domain.Record
	categories []string
	colors     domain.ColorMaps
	result     *domain.BrowseResult
	err        error

	// lastFilter and lastPage record the most recent Browse call.
	lastFilter domain.FilterState
	lastPage   domain.PageState
}

func newMockBrowse() *mockBrowseService {
	return &mockBrowseService{datasets: domain.DefaultDatasets("data")}
}

func (m *mockBrowseService) Datasets() []domain.Dataset {
	return m.datasets
}

func (m *mockBrowseService) Dataset(name string) (domain.Dataset, error) {
	for _, d := range m.datasets {
		if d.Name == name {
			return d, nil
		}
	}
	return domain.Dataset{}, domain.ErrUnknownDataset
}

func (m *mockBrowseService) Records(_ context.Context, name string) ([]domain.Record, error) {
	if _, err := m.Dataset(name); err != nil {
		return nil, err
	}
	return m.records, m.err
}

func (m *mockBrowseService) Browse(
	_ context.Context,
	_ string,
	filter domain.FilterState,
	page domain.PageState,
) (*domain.BrowseResult, error) {
	m.lastFilter = filter
	m.lastPage = page
	return m.result, m.err
}

func (m *mockBrowseService) Categories(_ context.Context, _ string) ([]string, error) {
	return m.categories, m.err
}

func (m *mockBrowseService) ColorMaps(_ context.Context, _ string) (domain.ColorMaps, error) {
	return m.colors, m.err
}

func (m *mockBrowseService) Invalidate(_ string) {}

// mockVOCService is a mock implementation of driving.VOCService.
type mockVOCService struct {
	months []domain.VOCMonth
	err    error
}

func (m *mockVOCService) Months(_ context.Context) ([]domain.VOCMonth, error) {
	return m.months, m.err
}

// mockIssueService is a mock implementation of driving.IssueService.
type mockIssueService struct {
	feed *domain.IssueFeed
	err  error
	now  time.Time
}

func (m *mockIssueService) Feed(_ context.Context, now time.Time) (*domain.IssueFeed, error) {
	m.now = now
	return m.feed, m.err
}

func (m *mockIssueService) NewCarousel(int, time.Duration) driving.Carousel {
	return nil
}
