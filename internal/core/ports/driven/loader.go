package driven

import (
	"context"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// DatasetLoader fetches one dataset document and returns its records.
//
// Implementations make a single attempt with no retry. String values are
// trimmed and grouped documents are flattened before returning. Any
// transport, status or decode failure is returned as *domain.LoadError.
type DatasetLoader interface {
	Load(ctx context.Context, src domain.Source) ([]domain.Record, error)
}
