package employee

import (
	"context"
	"time"
)

// EmployeeRepository is the read contract the analytics layer has with the employee module.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context) ([]Employee, error)
	// ListTerminationEvents returns terminations effective on or after since.
	ListTerminationEvents(ctx context.Context, since time.Time) ([]TerminationEvent, error)
}
