package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type organizationRepositoryImpl struct {
	db database.Querier
}

func NewOrganizationRepository(db database.Querier) organization.OrganizationRepository {
	return &organizationRepositoryImpl{db: db}
}

const departmentColumns = `id::text, code, name, parent_department_id::text, COALESCE(cost_center, ''), is_active`

func scanDepartment(row pgx.Row) (organization.Department, error) {
	var d organization.Department
	err := row.Scan(&d.ID, &d.Code, &d.Name, &d.ParentDepartmentID, &d.CostCenter, &d.IsActive)
	return d, err
}

const positionColumns = `id::text, code, title, department_id::text, reports_to_position_id::text, COALESCE(cost_center, ''), is_active`

func scanPosition(row pgx.Row) (organization.Position, error) {
	var p organization.Position
	err := row.Scan(&p.ID, &p.Code, &p.Title, &p.DepartmentID, &p.ReportsToPositionID, &p.CostCenter, &p.IsActive)
	return p, err
}

// ListDepartments implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ListDepartments(ctx context.Context) ([]organization.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var out []organization.Department
	for rows.Next() {
		d, err := scanDepartment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate departments: %w", err)
	}
	return out, nil
}

// GetDepartmentByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetDepartmentByID(ctx context.Context, id string) (organization.Department, error) {
	query := `SELECT ` + departmentColumns + ` FROM departments WHERE id::text = $1`

	d, err := scanDepartment(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Department{}, organization.ErrDepartmentNotFound
		}
		return organization.Department{}, fmt.Errorf("failed to get department %s: %w", id, err)
	}
	return d, nil
}

// ListPositions implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ListPositions(ctx context.Context) ([]organization.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions ORDER BY code`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list positions: %w", err)
	}
	defer rows.Close()

	var out []organization.Position
	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate positions: %w", err)
	}
	return out, nil
}

// GetPositionByID implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) GetPositionByID(ctx context.Context, id string) (organization.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM positions WHERE id::text = $1`

	p, err := scanPosition(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return organization.Position{}, organization.ErrPositionNotFound
		}
		return organization.Position{}, fmt.Errorf("failed to get position %s: %w", id, err)
	}
	return p, nil
}

// ListActiveAssignments implements organization.OrganizationRepository.
func (r *organizationRepositoryImpl) ListActiveAssignments(ctx context.Context, asOf time.Time) ([]organization.PositionAssignment, error) {
	query := `
		SELECT id::text, employee_id::text, position_id::text, start_date, end_date
		FROM position_assignments
		WHERE start_date <= $1
		  AND (end_date IS NULL OR end_date > $1)
		ORDER BY start_date, id
	`

	rows, err := r.db.Query(ctx, query, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to list position assignments: %w", err)
	}
	defer rows.Close()

	var out []organization.PositionAssignment
	for rows.Next() {
		var a organization.PositionAssignment
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.PositionID, &a.StartDate, &a.EndDate); err != nil {
			return nil, fmt.Errorf("failed to scan position assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate position assignments: %w", err)
	}
	return out, nil
}
