package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db database.Querier
}

func NewEmployeeRepository(db database.Querier) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id::text, employee_code, full_name,
	COALESCE(email, ''), COALESCE(phone, ''), COALESCE(national_id, ''),
	COALESCE(bank_account_number, ''), COALESCE(address, ''), COALESCE(emergency_contact, ''),
	department_id::text, position_id::text, hire_date, status, birth_date,
	COALESCE(gender, ''), COALESCE(contract_type, ''), COALESCE(skills, '{}')
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName,
		&emp.Email, &emp.Phone, &emp.NationalID,
		&emp.BankAccountNumber, &emp.Address, &emp.EmergencyContact,
		&emp.DepartmentID, &emp.PositionID, &emp.HireDate, &emp.Status, &emp.BirthDate,
		&emp.Gender, &emp.ContractType, &emp.Skills,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id::text = $1`

	emp, err := scanEmployee(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY full_name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

// ListTerminationEvents implements employee.EmployeeRepository.
// Terminations are the audit entries that move an employee into a terminal status.
func (r *employeeRepositoryImpl) ListTerminationEvents(ctx context.Context, since time.Time) ([]employee.TerminationEvent, error) {
	query := `
		SELECT id::text, employee_id::text, action, COALESCE(after_status, ''), occurred_at
		FROM employee_audit_log
		WHERE action IN ($1, $2, $3)
		  AND after_status IN ($4, $5)
		  AND occurred_at >= $6
		ORDER BY occurred_at
	`

	rows, err := r.db.Query(ctx, query,
		employee.AuditStatusChange, employee.AuditTerminate, employee.AuditDeactivate,
		employee.StatusTerminated, employee.StatusRetired,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list termination events: %w", err)
	}
	defer rows.Close()

	var events []employee.TerminationEvent
	for rows.Next() {
		var entry employee.AuditEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Action, &entry.AfterStatus, &entry.OccurredAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		if ev, ok := employee.TerminationFromAudit(entry); ok {
			events = append(events, ev)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit log: %w", err)
	}
	return events, nil
}
