package organization

import (
	"context"
	"time"
)

type OrganizationRepository interface {
	ListDepartments(ctx context.Context) ([]Department, error)
	GetDepartmentByID(ctx context.Context, id string) (Department, error)
	ListPositions(ctx context.Context) ([]Position, error)
	GetPositionByID(ctx context.Context, id string) (Position, error)
	// ListActiveAssignments returns assignments open at asOf.
	ListActiveAssignments(ctx context.Context, asOf time.Time) ([]PositionAssignment, error)
}
