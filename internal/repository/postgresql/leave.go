package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
)

type leaveRepository struct {
	db database.Querier
}

func NewLeaveRepository(db database.Querier) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

// ListRequests implements leave.LeaveRepository.
func (r *leaveRepository) ListRequests(ctx context.Context, from, to time.Time) ([]leave.Request, error) {
	query := `
		SELECT lr.id::text, lr.employee_id::text, lr.leave_type_id::text, lt.name,
			   lr.start_date, lr.end_date, lr.days::float8, lr.status, lr.created_at, lr.decided_at
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.start_date >= $1
		  AND lr.start_date < $2
		ORDER BY lr.start_date, lr.id
	`

	rows, err := r.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	defer rows.Close()

	var out []leave.Request
	for rows.Next() {
		var req leave.Request
		if err := rows.Scan(
			&req.ID, &req.EmployeeID, &req.LeaveTypeID, &req.LeaveTypeName,
			&req.StartDate, &req.EndDate, &req.Days, &req.Status, &req.CreatedAt, &req.DecidedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return out, nil
}

// ListBalances implements leave.LeaveRepository.
func (r *leaveRepository) ListBalances(ctx context.Context, year int) ([]leave.Balance, error) {
	query := `
		SELECT lb.employee_id::text, lb.leave_type_id::text, lt.name, lb.year,
			   lb.entitlement::float8, lb.accrued::float8, lb.taken::float8, lb.remaining::float8
		FROM leave_balances lb
		JOIN leave_types lt ON lt.id = lb.leave_type_id
		WHERE lb.year = $1
		ORDER BY lt.name, lb.employee_id
	`

	rows, err := r.db.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var out []leave.Balance
	for rows.Next() {
		var b leave.Balance
		if err := rows.Scan(
			&b.EmployeeID, &b.LeaveTypeID, &b.LeaveTypeName, &b.Year,
			&b.Entitlement, &b.Accrued, &b.Taken, &b.Remaining,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave balances: %w", err)
	}
	return out, nil
}
