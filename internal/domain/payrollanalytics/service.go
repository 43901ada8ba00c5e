package payrollanalytics

import "context"

type PayrollAnalyticsService interface {
	// GetPayrollStory compares the two latest approved runs, optionally for one entity
	GetPayrollStory(ctx context.Context, entityID *string) (*PayrollStory, error)
	// DetectGhostEmployees flags paid employees with no attendance in the run period
	DetectGhostEmployees(ctx context.Context, runID string) (*GhostEmployeeReport, error)
	// GetForecast projects next period net pay from recent approved runs
	GetForecast(ctx context.Context) (*Forecast, error)
}
