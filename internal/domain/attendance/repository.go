package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// CountPunchesByEmployee counts clock-ins per employee with date in [from, to).
	CountPunchesByEmployee(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string]int, error)
	// ListRecords returns records with date in [from, to).
	ListRecords(ctx context.Context, from, to time.Time) ([]Record, error)
}
