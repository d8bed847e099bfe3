package services

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
	"github.com/custodia-labs/hioder/internal/logger"
)

// Ensure BrowseService implements the interface.
var _ driving.BrowseService = (*BrowseService)(nil)

// loadedDataset is a dataset's records with everything derived from them.
type loadedDataset struct {
	records    []domain.Record
	colors     domain.ColorMaps
	categories []string
}

// BrowseService loads datasets once and computes views over them.
type BrowseService struct {
	loader     driven.DatasetLoader
	compiler   driven.PredicateCompiler
	datasets   []domain.Dataset
	index      map[string]int
	maxButtons int

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*loadedDataset
}

// NewBrowseService creates a browse service over the given dataset profiles.
// A non-positive maxButtons uses the default pagination window.
func NewBrowseService(loader driven.DatasetLoader, datasets []domain.Dataset, maxButtons int) *BrowseService {
	index := make(map[string]int, len(datasets))
	for i, d := range datasets {
		index[d.Name] = i
	}
	if maxButtons <= 0 {
		maxButtons = domain.DefaultMaxPageButtons
	}
	return &BrowseService{
		loader:     loader,
		datasets:   datasets,
		index:      index,
		maxButtons: maxButtons,
		cache:      make(map[string]*loadedDataset),
	}
}

// SetPredicateCompiler enables where expressions.
func (s *BrowseService) SetPredicateCompiler(c driven.PredicateCompiler) {
	s.compiler = c
}

// Datasets returns the configured dataset profiles.
func (s *BrowseService) Datasets() []domain.Dataset {
	out := make([]domain.Dataset, len(s.datasets))
	copy(out, s.datasets)
	return out
}

// Dataset returns one profile by name.
func (s *BrowseService) Dataset(name string) (domain.Dataset, error) {
	i, ok := s.index[name]
	if !ok {
		return domain.Dataset{}, fmt.Errorf("%w: %q", domain.ErrUnknownDataset, name)
	}
	return s.datasets[i], nil
}

// Records returns the loaded records of a dataset.
func (s *BrowseService) Records(ctx context.Context, name string) ([]domain.Record, error) {
	loaded, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return loaded.records, nil
}

// Categories returns the category tabs of a dataset.
func (s *BrowseService) Categories(ctx context.Context, name string) ([]string, error) {
	loaded, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), loaded.categories...), nil
}

// ColorMaps returns the colour maps of a dataset.
func (s *BrowseService) ColorMaps(ctx context.Context, name string) (domain.ColorMaps, error) {
	loaded, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return loaded.colors, nil
}

// Browse computes one view of a dataset.
func (s *BrowseService) Browse(
	ctx context.Context, name string, filter domain.FilterState, page domain.PageState,
) (*domain.BrowseResult, error) {
	logger.Section("Browse")
	logger.Debug("Dataset: %s, category: %q, query: %q, page: %d", name, filter.Category, filter.Query, page.Page)

	d, err := s.Dataset(name)
	if err != nil {
		return nil, err
	}
	loaded, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}

	effective := filter
	if effective.Category == "" {
		effective.Category = d.Schema.All()
	}
	if d.QueryIgnoresCategory && effective.HasQuery() {
		effective.Category = d.Schema.All()
	}

	var pred domain.Predicate
	if effective.Where != "" {
		if s.compiler == nil {
			return nil, domain.ErrPredicateUnavailable
		}
		pred, err = s.compiler.Compile(effective.Where)
		if err != nil {
			return nil, fmt.Errorf("browse: %w", err)
		}
	}

	matched, err := domain.FilterIndicesWhere(loaded.records, d.Schema, effective, pred)
	if err != nil {
		return nil, fmt.Errorf("browse: %w", err)
	}

	if page.Size == 0 && page.Page == 0 {
		page = d.InitialPage()
	}
	page = page.Clamp(len(matched))

	onPage := domain.Paginate(matched, page.Page, page.Size)
	rows := make([]domain.Row, len(onPage))
	for i, idx := range onPage {
		rows[i] = domain.Row{Index: idx, Record: loaded.records[idx]}
	}
	logger.Debug("Matched %d of %d records, %d on page", len(matched), len(loaded.records), len(rows))

	return &domain.BrowseResult{
		Dataset:    d,
		Categories: append([]string(nil), loaded.categories...),
		Filter:     filter,
		Page:       page,
		Total:      len(matched),
		TotalPages: domain.TotalPages(len(matched), page.Size),
		Rows:       rows,
		Controls:   domain.BuildPageControls(len(matched), page.Size, page.Page, s.maxButtons),
		Colors:     loaded.colors,
	}, nil
}

// Invalidate drops cached records so the next request reloads.
// An empty name drops every dataset.
func (s *BrowseService) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if name == "" {
		s.cache = make(map[string]*loadedDataset)
		logger.Debug("Invalidated all datasets")
		return
	}
	delete(s.cache, name)
	logger.Debug("Invalidated dataset %s", name)
}

// InvalidateURL drops every dataset loaded from url.
func (s *BrowseService) InvalidateURL(url string) {
	for _, d := range s.datasets {
		if d.Source.URL == url {
			s.Invalidate(d.Name)
		}
	}
}

// Warm loads every dataset concurrently. It returns the first load error;
// datasets that loaded are cached regardless.
func (s *BrowseService) Warm(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, d := range s.datasets {
		g.Go(func() error {
			_, err := s.load(gctx, d.Name)
			return err
		})
	}
	return g.Wait()
}

// load returns the cached dataset, loading it on first use. Concurrent
// callers share one fetch. Failures are not cached.
func (s *BrowseService) load(ctx context.Context, name string) (*loadedDataset, error) {
	d, err := s.Dataset(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	loaded, ok := s.cache[name]
	s.mu.RUnlock()
	if ok {
		return loaded, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		logger.Debug("Loading dataset %s from %s", name, d.Source.URL)
		records, err := s.loader.Load(ctx, d.Source)
		if err != nil {
			logger.Warn("Loading dataset %s failed: %v", name, err)
			return nil, err
		}

		records = d.Prepare(records)
		loaded := &loadedDataset{
			records:    records,
			colors:     d.BuildColors(records),
			categories: domain.ListCategories(records, d.Schema.CategoryField, d.Schema.All()),
		}

		s.mu.Lock()
		s.cache[name] = loaded
		s.mu.Unlock()
		logger.Debug("Loaded %d records for %s", len(records), name)
		return loaded, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	return v.(*loadedDataset), nil
}
