package driving

import (
	"context"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// VOCService provides the monthly VOC summaries.
type VOCService interface {
	// Months returns the VOC months, newest first.
	Months(ctx context.Context) ([]domain.VOCMonth, error)
}
