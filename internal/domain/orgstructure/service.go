package orgstructure

import "context"

type OrgStructureService interface {
	GetStructuralHealth(ctx context.Context) (*StructuralHealth, error)
	GetDepartmentAnalytics(ctx context.Context) ([]DepartmentAnalytics, error)
	GetPositionRiskAssessment(ctx context.Context) ([]PositionRisk, error)
	SimulateChangeImpact(ctx context.Context, action ActionType, targetID string) (*ChangeImpact, error)
	GetCostCenterSummary(ctx context.Context) ([]CostCenterRollup, error)
	GetSpanOfControl(ctx context.Context) ([]SpanOfControlEntry, error)
	GetVacancyForecast(ctx context.Context) ([]VacancyForecast, error)
	GetOrgSummaryStats(ctx context.Context) (*OrgSummary, error)

	// Department-scoped variants, ErrDepartmentNotFound for unknown ids
	GetDepartmentSummary(ctx context.Context, departmentID string) (*OrgSummary, error)
	GetDepartmentPositionRisk(ctx context.Context, departmentID string) ([]PositionRisk, error)
	GetDepartmentSpanOfControl(ctx context.Context, departmentID string) ([]SpanOfControlEntry, error)
	GetDepartmentVacancyForecast(ctx context.Context, departmentID string) ([]VacancyForecast, error)
}
