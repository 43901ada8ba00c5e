package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	// ListRequests returns requests whose start date falls in [from, to).
	ListRequests(ctx context.Context, from, to time.Time) ([]Request, error)
	ListBalances(ctx context.Context, year int) ([]Balance, error)
}
