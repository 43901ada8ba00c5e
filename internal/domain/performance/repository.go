package performance

import (
	"context"
	"time"
)

type AppraisalRepository interface {
	// ListPublished returns published appraisals with published_at on or after since.
	ListPublished(ctx context.Context, since time.Time) ([]Appraisal, error)
}
