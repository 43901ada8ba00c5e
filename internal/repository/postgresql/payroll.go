package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payrollRepository struct {
	db database.Querier
}

func NewPayrollRepository(db database.Querier) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// Money columns are selected as text so no precision is lost on the way to decimal.
const runColumns = `
	id::text, entity_id::text, period_start, period_end, status,
	total_net_pay::text, employee_count, exception_count, approved_at
`

func scanRun(row pgx.Row) (payroll.Run, error) {
	var (
		run   payroll.Run
		total string
	)
	err := row.Scan(
		&run.ID, &run.EntityID, &run.PeriodStart, &run.PeriodEnd, &run.Status,
		&total, &run.EmployeeCount, &run.ExceptionCount, &run.ApprovedAt,
	)
	if err != nil {
		return payroll.Run{}, err
	}
	if run.TotalNetPay, err = decimal.NewFromString(total); err != nil {
		return payroll.Run{}, fmt.Errorf("invalid total_net_pay %q: %w", total, err)
	}
	return run, nil
}

// ListApprovedRuns implements payroll.PayrollRepository.
func (r *payrollRepository) ListApprovedRuns(ctx context.Context, entityID *string, limit int) ([]payroll.Run, error) {
	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE status = $1
		  AND ($2::text IS NULL OR entity_id::text = $2)
		ORDER BY period_end DESC
		LIMIT $3
	`

	rows, err := r.db.Query(ctx, query, payroll.RunStatusApproved, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}
	return runs, nil
}

// GetRunByID implements payroll.PayrollRepository.
func (r *payrollRepository) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id::text = $1`

	run, err := scanRun(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run %s: %w", id, err)
	}
	return run, nil
}

// ListPayslipsByRun implements payroll.PayrollRepository.
func (r *payrollRepository) ListPayslipsByRun(ctx context.Context, runID string) ([]payroll.Payslip, error) {
	query := `
		SELECT id::text, run_id::text, employee_id::text, employee_name,
			   gross_pay::text, total_deductions::text, net_pay::text,
			   earnings, deductions
		FROM payslips
		WHERE run_id::text = $1
		ORDER BY employee_name, id
	`

	rows, err := r.db.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var (
			p                      payroll.Payslip
			gross, deductions, net string
			earningsRaw, deductRaw []byte
		)
		if err := rows.Scan(
			&p.ID, &p.RunID, &p.EmployeeID, &p.EmployeeName,
			&gross, &deductions, &net,
			&earningsRaw, &deductRaw,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}

		amounts := []struct {
			dst *decimal.Decimal
			raw string
		}{{&p.GrossPay, gross}, {&p.TotalDeductions, deductions}, {&p.NetPay, net}}
		for _, a := range amounts {
			if *a.dst, err = decimal.NewFromString(a.raw); err != nil {
				return nil, fmt.Errorf("invalid amount %q on payslip %s: %w", a.raw, p.ID, err)
			}
		}
		if err := unmarshalLineItems(earningsRaw, &p.Earnings); err != nil {
			return nil, fmt.Errorf("invalid earnings on payslip %s: %w", p.ID, err)
		}
		if err := unmarshalLineItems(deductRaw, &p.Deductions); err != nil {
			return nil, fmt.Errorf("invalid deductions on payslip %s: %w", p.ID, err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}
	return payslips, nil
}

func unmarshalLineItems(raw []byte, dst *[]payroll.LineItem) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
