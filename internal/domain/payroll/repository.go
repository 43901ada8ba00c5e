package payroll

import "context"

type PayrollRepository interface {
	// ListApprovedRuns returns approved runs newest first, optionally scoped to an entity.
	ListApprovedRuns(ctx context.Context, entityID *string, limit int) ([]Run, error)
	GetRunByID(ctx context.Context, id string) (Run, error)
	ListPayslipsByRun(ctx context.Context, runID string) ([]Payslip, error)
}
