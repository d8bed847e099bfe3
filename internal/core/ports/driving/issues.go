package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/hioder/internal/core/domain"
)

// IssueService provides the business-issue feed.
type IssueService interface {
	// Feed returns all issues and those dated in the month of now.
	Feed(ctx context.Context, now time.Time) (*domain.IssueFeed, error)

	// NewCarousel returns a stopped carousel over count featured issues.
	// A non-positive interval uses the default period.
	NewCarousel(count int, interval time.Duration) Carousel
}

// Carousel rotates through the featured issues.
type Carousel interface {
	// Changes delivers the new index after every move, automatic or manual.
	Changes() <-chan int
	Start()
	Stop()
	Next()
	Prev()
	Index() int
}
