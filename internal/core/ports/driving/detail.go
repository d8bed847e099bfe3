package driving

import (
	"context"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// DetailService hands a selected record from a list view to the detail view.
type DetailService interface {
	// Select stores the record at index of dataset for the session and
	// returns the stored detail.
	Select(ctx context.Context, sessionID, dataset string, index int) (*domain.Detail, error)

	// Detail returns the session's stored detail.
	// Returns domain.ErrNoDetail if nothing was stored and
	// domain.ErrCorruptDetail if the stored value cannot be read.
	Detail(ctx context.Context, sessionID string) (*domain.Detail, error)
}
