package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunOnceJoinsErrors(t *testing.T) {
	s := NewScheduler(context.Background(), time.Second)
	var ran int32
	s.AddJob("ok", time.Hour, func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return nil
	})
	s.AddJob("broken", time.Hour, func(context.Context) error {
		atomic.AddInt32(&ran, 1)
		return errors.New("boom")
	})

	err := s.RunOnce(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.EqualValues(t, 2, atomic.LoadInt32(&ran))
	assert.Equal(t, []string{"ok", "broken"}, s.Jobs())
}

func TestScheduler_StartRunsImmediatelyAndStops(t *testing.T) {
	s := NewScheduler(context.Background(), time.Second)
	done := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(context.Context) error {
		select {
		case done <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}

type countingDashboards struct {
	leaves int
	time   int
	month  string
}

func (c *countingDashboards) GetLeavesDashboard(_ context.Context, year int) (*dashboard.LeavesDashboard, error) {
	c.leaves++
	return &dashboard.LeavesDashboard{Year: year}, nil
}

func (c *countingDashboards) GetTimeManagementDashboard(_ context.Context, month string) (*dashboard.TimeManagementDashboard, error) {
	c.time++
	c.month = month
	return &dashboard.TimeManagementDashboard{Month: month}, nil
}

func TestDashboardJobs_WarmEvictsAndRebuilds(t *testing.T) {
	ctx := context.Background()
	mc := cache.NewMemoryCache()
	require.NoError(t, mc.Set(ctx, dashboard.LeavesCacheKey(2026), []byte("stale"), time.Hour))

	svc := &countingDashboards{}
	jobs := NewDashboardJobs(svc, mc, time.Hour)
	jobs.now = func() time.Time { return time.Date(2026, 3, 15, 2, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.WarmDashboards(ctx))

	_, err := mc.Get(ctx, dashboard.LeavesCacheKey(2026))
	assert.ErrorIs(t, err, cache.ErrMiss)
	assert.Equal(t, 1, svc.leaves)
	assert.Equal(t, 1, svc.time)
	assert.Equal(t, "2026-03", svc.month)
}

func TestDashboardJobs_Register(t *testing.T) {
	s := NewScheduler(context.Background(), 0)
	NewDashboardJobs(&countingDashboards{}, nil, time.Hour).RegisterJobs(s)
	assert.Equal(t, []string{"warm_dashboard_cache"}, s.Jobs())
}
