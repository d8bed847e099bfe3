package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/custodia-labs/hioder/internal/core/domain"
	"github.com/custodia-labs/hioder/internal/core/ports/driven"
	"github.com/custodia-labs/hioder/internal/core/ports/driving"
	"github.com/custodia-labs/hioder/internal/logger"
)

// Ensure DetailService implements the interface.
var _ driving.DetailService = (*DetailService)(nil)

// DetailService stores the selected record per session and reads it back.
type DetailService struct {
	browse   driving.BrowseService
	sessions driven.SessionStore
}

// NewDetailService creates a new detail service.
func NewDetailService(browse driving.BrowseService, sessions driven.SessionStore) *DetailService {
	return &DetailService{browse: browse, sessions: sessions}
}

// Select stores the record at index of dataset with its display colours.
func (s *DetailService) Select(ctx context.Context, sessionID, dataset string, index int) (*domain.Detail, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("%w: empty session id", domain.ErrInvalidInput)
	}

	records, err := s.browse.Records(ctx, dataset)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	if index < 0 || index >= len(records) {
		return nil, fmt.Errorf("select: record %d of %s: %w", index, dataset, domain.ErrNotFound)
	}
	colors, err := s.browse.ColorMaps(ctx, dataset)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}

	detail := domain.NewDetail(records[index], colors)
	blob, err := json.Marshal(detail)
	if err != nil {
		return nil, fmt.Errorf("select: encode detail: %w", err)
	}
	if err := s.sessions.Put(ctx, sessionID, domain.DetailKey, blob); err != nil {
		return nil, fmt.Errorf("select: store detail: %w", err)
	}

	logger.Debug("Stored detail for session %s: %s[%d]", sessionID, dataset, index)
	return &detail, nil
}

// Detail returns the session's stored detail.
func (s *DetailService) Detail(ctx context.Context, sessionID string) (*domain.Detail, error) {
	if sessionID == "" {
		return nil, domain.ErrNoDetail
	}

	blob, err := s.sessions.Get(ctx, sessionID, domain.DetailKey)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoDetail
	}
	if err != nil {
		return nil, fmt.Errorf("detail: %w", err)
	}

	detail, err := domain.ParseDetail(blob)
	if err != nil {
		logger.Warn("Corrupt detail for session %s: %v", sessionID, err)
		return nil, err
	}
	return detail, nil
}
