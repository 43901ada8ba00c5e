package dashboard

import (
	"context"
	"fmt"
)

// DashboardService assembles composite dashboards from several sources
type DashboardService interface {
	// GetLeavesDashboard returns the leave dashboard for a year, 0 means current year
	GetLeavesDashboard(ctx context.Context, year int) (*LeavesDashboard, error)

	// GetTimeManagementDashboard returns attendance analytics for a month (YYYY-MM, default current)
	GetTimeManagementDashboard(ctx context.Context, month string) (*TimeManagementDashboard, error)
}

func LeavesCacheKey(year int) string {
	return fmt.Sprintf("dashboard:leaves:%d", year)
}

func TimeManagementCacheKey(month string) string {
	return "dashboard:time:" + month
}
