package workforce

import "context"

type WorkforceService interface {
	GetHeadcountTrends(ctx context.Context, months int) ([]HeadcountPoint, error)
	GetTurnoverMetrics(ctx context.Context, periodMonths int) (*TurnoverMetrics, error)
	GetDemographicsBreakdown(ctx context.Context) (*Demographics, error)
	GetAttritionForecast(ctx context.Context) (*AttritionForecast, error)
	// GetHighRiskEmployees returns the top non-LOW employees by heuristic score
	GetHighRiskEmployees(ctx context.Context) ([]EmployeeRisk, error)
}
