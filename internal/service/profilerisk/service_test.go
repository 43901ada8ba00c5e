package profilerisk

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/profilerisk"
	"github.com/cmlabs-hris/workforce-analytics/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func newFixtureService(t *testing.T) profilerisk.ProfileRiskService {
	t.Helper()
	ds := &memory.Dataset{}
	ds.Update(func(d *memory.Dataset) {
		d.Positions = []organization.Position{
			{ID: "p-dir", Title: "Engineering Director", DepartmentID: "D1", IsActive: true},
			{ID: "p-mgr", Title: "Engineering Manager", DepartmentID: "D1", ReportsToPositionID: strPtr("p-dir"), IsActive: true},
			{ID: "p-vac", Title: "Engineer", DepartmentID: "D1", ReportsToPositionID: strPtr("p-dir"), IsActive: true},
			{ID: "p-eng", Title: "Engineer", DepartmentID: "D1", ReportsToPositionID: strPtr("p-mgr"), IsActive: true},
			{ID: "p-ana", Title: "Analyst", DepartmentID: "D1", IsActive: true},
		}
		born := day(1985, 4, 2)
		d.Employees = []employee.Employee{
			{ID: "dir", FullName: "Dana Director", PositionID: strPtr("p-dir"), HireDate: day(2018, 1, 1), Status: employee.StatusActive},
			{ID: "mgr", FullName: "Max Manager", PositionID: strPtr("p-mgr"), HireDate: day(2022, 6, 15), Status: employee.StatusActive},
			{ID: "itch", FullName: "Ivy", PositionID: strPtr("p-eng"), HireDate: day(2023, 9, 1), Status: employee.StatusActive},
			{ID: "new", FullName: "Nia", Email: "not-an-email", Phone: "12", HireDate: day(2026, 3, 1), Status: employee.StatusProbation},
			{ID: "cliff", FullName: "Cal", HireDate: day(2025, 9, 1), Status: employee.StatusActive},
			{
				ID: "vet", FullName: "Vera Veteran", Email: "vera@example.com", Phone: "+62 812-3456-7890",
				NationalID: "3201012345678901", BankAccountNumber: "1234567890", Address: "Jl. Merdeka 1",
				EmergencyContact: "Vic +62 811 000 111", BirthDate: &born, DepartmentID: strPtr("D1"),
				PositionID: strPtr("p-ana"), HireDate: day(2016, 1, 1), Status: employee.StatusActive,
			},
		}
		for _, e := range d.Employees {
			if e.PositionID != nil {
				d.Assignments = append(d.Assignments, organization.PositionAssignment{
					ID: "a-" + e.ID, EmployeeID: e.ID, PositionID: *e.PositionID, StartDate: e.HireDate,
				})
			}
		}
		published := func(emp string, score float64, at time.Time) performance.Appraisal {
			return performance.Appraisal{ID: emp + at.Format("0102"), EmployeeID: emp, RaterID: "r", Score: score, Status: performance.StatusPublished, PublishedAt: at}
		}
		d.Appraisals = []performance.Appraisal{
			published("new", 2.0, day(2026, 5, 1)),
			published("cliff", 2.8, day(2026, 5, 1)),
			published("vet", 2.0, day(2025, 5, 1)),
			published("vet", 4.0, day(2026, 5, 1)),
			{ID: "draft", EmployeeID: "itch", Score: 1.0, Status: performance.StatusDraft, PublishedAt: day(2026, 5, 1)},
		}
	})
	return NewProfileRiskService(
		memory.NewEmployeeRepository(ds),
		memory.NewOrganizationRepository(ds),
		memory.NewAppraisalRepository(ds),
		func() time.Time { return fixedNow },
	)
}

func TestAnalyzeChangeRequestRisk(t *testing.T) {
	svc := NewProfileRiskService(nil, nil, nil, nil)

	tests := []struct {
		name          string
		changes       map[string]any
		justification string
		score         int
		level         profilerisk.Level
	}{
		{"single bank field", map[string]any{"bankAccountNumber": "x"}, "", 40, profilerisk.LevelMedium},
		{"one medium field", map[string]any{"email": "a@b.c"}, "", 15, profilerisk.LevelLow},
		{"two medium fields", map[string]any{"email": "a@b.c", "phone": "1"}, "", 30, profilerisk.LevelMedium},
		{"snake case is normalized", map[string]any{"base_salary": 1, "email": "a@b.c"}, "", 55, profilerisk.LevelHigh},
		{"exactly 75 stays high", map[string]any{"taxId": "1", "email": "a@b.c"}, "Override and BYPASS", 75, profilerisk.LevelHigh},
		{"two high fields", map[string]any{"tax_id": "1", "national_id": "2"}, "", 80, profilerisk.LevelCritical},
		{"keywords count once", map[string]any{"nickname": "n"}, "asap asap ASAP", 10, profilerisk.LevelLow},
		{"unknown fields", map[string]any{"nickname": "n", "hobby": "chess"}, "typo fix", 0, profilerisk.LevelLow},
		{
			"capped at 100",
			map[string]any{"base_salary": 1, "tax_id": "1", "email": "a@b.c", "nickname": "n"},
			"URGENT wire transfer, CEO asked",
			100, profilerisk.LevelCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.AnalyzeChangeRequestRisk(tt.changes, tt.justification)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.level, got.Level)
			assert.Len(t, got.ChangedFields, len(tt.changes))
		})
	}
}

func TestAnalyzeChangeRequestRisk_BulkEditFactor(t *testing.T) {
	svc := NewProfileRiskService(nil, nil, nil, nil)

	got := svc.AnalyzeChangeRequestRisk(map[string]any{"a": 1, "b": 2, "c": 3, "d": 4}, "")
	assert.Equal(t, 20, got.Score)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got.ChangedFields)
	assert.Contains(t, got.Factors, "Bulk edit of 4 fields")

	got = svc.AnalyzeChangeRequestRisk(map[string]any{"a": 1, "b": 2, "c": 3}, "")
	assert.Equal(t, 0, got.Score)
	assert.Empty(t, got.Factors)
}

func TestCalculateRetentionRisk(t *testing.T) {
	svc := newFixtureService(t)
	ctx := context.Background()

	tests := []struct {
		employee string
		tenure   int
		score    int
		level    profilerisk.Level
	}{
		{"new", 3, 60, profilerisk.LevelHigh},
		{"cliff", 9, 75, profilerisk.LevelCritical},
		{"itch", 33, 40, profilerisk.LevelMedium},
		{"vet", 125, 0, profilerisk.LevelLow},
		{"mgr", 48, 0, profilerisk.LevelLow},
	}
	for _, tt := range tests {
		t.Run(tt.employee, func(t *testing.T) {
			got, err := svc.CalculateRetentionRisk(ctx, tt.employee)
			require.NoError(t, err)
			assert.Equal(t, tt.tenure, got.TenureMonths)
			assert.Equal(t, tt.score, got.Score)
			assert.Equal(t, tt.level, got.Level)
		})
	}

	_, err := svc.CalculateRetentionRisk(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAnalyzeDeactivationImpact(t *testing.T) {
	svc := newFixtureService(t)
	ctx := context.Background()

	dir, err := svc.AnalyzeDeactivationImpact(ctx, "dir")
	require.NoError(t, err)
	assert.Equal(t, "Engineering Director", dir.PositionTitle)
	assert.Equal(t, 120, dir.EstimatedReplacementDays)
	assert.Equal(t, 40, dir.CapacityLossPercent)
	assert.Equal(t, profilerisk.LevelHigh, dir.KnowledgeLossRisk)
	assert.Equal(t, 1, dir.OrphanedDirectReports, "vacant p-vac does not count")
	assert.Contains(t, dir.Summary, "1 direct report(s)")

	mgr, err := svc.AnalyzeDeactivationImpact(ctx, "mgr")
	require.NoError(t, err)
	assert.Equal(t, 75, mgr.EstimatedReplacementDays)
	assert.Equal(t, 25, mgr.CapacityLossPercent)
	assert.Equal(t, 4.0, mgr.TenureYears)
	assert.Equal(t, profilerisk.LevelMedium, mgr.KnowledgeLossRisk)
	assert.Equal(t, 1, mgr.OrphanedDirectReports)

	nobody, err := svc.AnalyzeDeactivationImpact(ctx, "new")
	require.NoError(t, err)
	assert.Empty(t, nobody.PositionTitle)
	assert.Equal(t, 45, nobody.EstimatedReplacementDays)
	assert.Equal(t, 10, nobody.CapacityLossPercent)
	assert.Equal(t, profilerisk.LevelLow, nobody.KnowledgeLossRisk)
	assert.Zero(t, nobody.OrphanedDirectReports)
	assert.Contains(t, nobody.Summary, "an unassigned role")

	_, err = svc.AnalyzeDeactivationImpact(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetProfileHealth(t *testing.T) {
	svc := newFixtureService(t)
	ctx := context.Background()

	vet, err := svc.GetProfileHealth(ctx, "vet")
	require.NoError(t, err)
	assert.Equal(t, profilerisk.ProfileHealthy, vet.Status)
	assert.Equal(t, CompletenessScore, vet.CompletenessScore)
	assert.Empty(t, vet.MissingCriticalFields)
	assert.Empty(t, vet.DataQualityIssues)

	nia, err := svc.GetProfileHealth(ctx, "new")
	require.NoError(t, err)
	assert.Equal(t, profilerisk.ProfileNeedsAttention, nia.Status)
	assert.Equal(t, CompletenessScore, nia.CompletenessScore)
	assert.ElementsMatch(t, []string{
		"national_id", "bank_account_number", "address", "emergency_contact", "birth_date", "department", "position",
	}, nia.MissingCriticalFields)
	assert.ElementsMatch(t, []string{"Email address is not valid", "Phone number is not valid"}, nia.DataQualityIssues)

	_, err = svc.GetProfileHealth(ctx, "ghost")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
