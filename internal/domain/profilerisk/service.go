package profilerisk

import "context"

type ProfileRiskService interface {
	// AnalyzeChangeRequestRisk scores a pending profile change; it never fails
	AnalyzeChangeRequestRisk(changes map[string]any, justification string) *ChangeRequestRisk
	CalculateRetentionRisk(ctx context.Context, employeeID string) (*RetentionRisk, error)
	AnalyzeDeactivationImpact(ctx context.Context, employeeID string) (*DeactivationImpact, error)
	GetProfileHealth(ctx context.Context, employeeID string) (*ProfileHealth, error)
}
