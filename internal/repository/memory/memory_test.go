package memory

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNow = time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

func TestSeed_IsDeterministic(t *testing.T) {
	a := Seed(seedNow)
	b := Seed(seedNow)

	require.Equal(t, len(a.Employees), len(b.Employees))
	assert.Equal(t, a.Employees[3].ID, b.Employees[3].ID)
	assert.Equal(t, len(a.Attendance), len(b.Attendance))
}

func TestEmployeeRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewEmployeeRepository(Seed(seedNow))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, all)

	got, err := repo.GetByID(ctx, all[0].ID)
	require.NoError(t, err)
	assert.Equal(t, all[0].FullName, got.FullName)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	events, err := repo.ListTerminationEvents(ctx, seedNow.AddDate(-1, 0, 0))
	require.NoError(t, err)
	assert.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		assert.False(t, events[i].EffectiveDate.Before(events[i-1].EffectiveDate))
	}

	recent, err := repo.ListTerminationEvents(ctx, seedNow.AddDate(0, -3, 0))
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestOrganizationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewOrganizationRepository(Seed(seedNow))

	_, err := repo.GetDepartmentByID(ctx, "nope")
	assert.ErrorIs(t, err, organization.ErrDepartmentNotFound)
	_, err = repo.GetPositionByID(ctx, "nope")
	assert.ErrorIs(t, err, organization.ErrPositionNotFound)

	active, err := repo.ListActiveAssignments(ctx, seedNow)
	require.NoError(t, err)
	for _, a := range active {
		assert.True(t, a.IsOpen(seedNow))
	}
}

func TestPayrollRepository_ApprovedRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewPayrollRepository(Seed(seedNow))

	runs, err := repo.ListApprovedRuns(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].PeriodEnd.After(runs[1].PeriodEnd))
	for _, r := range runs {
		assert.Equal(t, payroll.RunStatusApproved, r.Status)
	}

	other := "entity-other"
	none, err := repo.ListApprovedRuns(ctx, &other, 6)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = repo.GetRunByID(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrRunNotFound)
}

func TestAttendanceRepository_CountPunchesHalfOpen(t *testing.T) {
	ctx := context.Background()
	ds := &Dataset{}
	day := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	in := day.Add(9 * time.Hour)
	ds.Update(func(d *Dataset) {
		d.Attendance = append(d.Attendance,
			attendanceRecord("r1", "e1", day, &in),
			attendanceRecord("r2", "e1", day.AddDate(0, 1, 0), &in),
			attendanceRecord("r3", "e2", day, nil),
		)
	})
	repo := NewAttendanceRepository(ds)

	counts, err := repo.CountPunchesByEmployee(ctx, []string{"e1", "e2"}, day, day.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, 1, counts["e1"])
	assert.Equal(t, 0, counts["e2"])
}
