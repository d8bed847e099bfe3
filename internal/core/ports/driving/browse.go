package driving

import (
	"context"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// BrowseService computes filtered, highlighted and paginated views of datasets.
type BrowseService interface {
	// Datasets returns the configured dataset profiles.
	Datasets() []domain.Dataset

	// Dataset returns one profile. Returns domain.ErrUnknownDataset if absent.
	Dataset(name string) (domain.Dataset, error)

	// Records returns the loaded records of a dataset, loading on first use.
	Records(ctx context.Context, name string) ([]domain.Record, error)

	// Browse computes the view for a filter and page state.
	// The page is clamped to the filtered result's range.
	Browse(ctx context.Context, name string, filter domain.FilterState, page domain.PageState) (*domain.BrowseResult, error)

	// Categories returns the category tabs of a dataset, starting with its all-label.
	Categories(ctx context.Context, name string) ([]string, error)

	// ColorMaps returns the colour maps of a dataset.
	ColorMaps(ctx context.Context, name string) (domain.ColorMaps, error)

	// Invalidate drops cached records so the next request reloads.
	// An empty name drops every dataset.
	Invalidate(name string)
}
