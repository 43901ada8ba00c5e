package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cache"
)

// DashboardJobs keeps the composite dashboards warm in the analytics cache.
type DashboardJobs struct {
	dashboardService dashboard.DashboardService
	cache            cache.Cache
	interval         time.Duration
	now              func() time.Time
}

func NewDashboardJobs(dashboardService dashboard.DashboardService, c cache.Cache, interval time.Duration) *DashboardJobs {
	return &DashboardJobs{
		dashboardService: dashboardService,
		cache:            c,
		interval:         interval,
		now:              time.Now,
	}
}

func (j *DashboardJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("warm_dashboard_cache", j.interval, j.WarmDashboards)
}

// WarmDashboards evicts and rebuilds the current-period dashboards.
func (j *DashboardJobs) WarmDashboards(ctx context.Context) error {
	now := j.now().UTC()
	year := now.Year()
	month := now.Format("2006-01")

	if mc, ok := j.cache.(*cache.MemoryCache); ok {
		if n := mc.Purge(); n > 0 {
			slog.Debug("Cron: purged expired cache entries", "count", n)
		}
	}

	if j.cache != nil {
		_ = j.cache.Delete(ctx, dashboard.LeavesCacheKey(year))
		_ = j.cache.Delete(ctx, dashboard.TimeManagementCacheKey(month))
	}

	if _, err := j.dashboardService.GetLeavesDashboard(ctx, year); err != nil {
		return fmt.Errorf("warm leaves dashboard: %w", err)
	}
	if _, err := j.dashboardService.GetTimeManagementDashboard(ctx, month); err != nil {
		return fmt.Errorf("warm time management dashboard: %w", err)
	}

	slog.Info("Cron: dashboard cache warmed", "year", year, "month", month)
	return nil
}
