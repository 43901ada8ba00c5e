package orgstructure

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/orgstructure"
	"github.com/cmlabs-hris/workforce-analytics/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func position(id, title, dept string, reportsTo *string) organization.Position {
	return organization.Position{ID: id, Code: id, Title: title, DepartmentID: dept, ReportsToPositionID: reportsTo, IsActive: true}
}

// fixture:
//
//	Head of Engineering (D1)
//	├── Engineering Manager (D1)
//	│   ├── Engineer e1, e2, e3 (e3 vacant)
//	└── Platform Lead (D2, sub-department of D1)
//	    ├── SRE (D2, vacant)
//	    └── Solutions Engineer (D3)
//	Sales Director (D3, vacant)
//	└── Account Executive (D3)
func newFixtureService(t *testing.T) orgstructure.OrgStructureService {
	t.Helper()
	ds := &memory.Dataset{}
	ds.Update(func(d *memory.Dataset) {
		d.Departments = []organization.Department{
			{ID: "D1", Code: "ENG", Name: "Engineering", CostCenter: "CC-ENG", IsActive: true},
			{ID: "D2", Code: "PLT", Name: "Platform", ParentDepartmentID: strPtr("D1"), IsActive: true},
			{ID: "D3", Code: "SLS", Name: "Sales", CostCenter: "CC-SLS", IsActive: false},
		}
		sre := position("p-sre", "SRE", "D2", strPtr("p-plat"))
		sre.CostCenter = "CC-OPS"
		d.Positions = []organization.Position{
			position("p-head", "Head of Engineering", "D1", nil),
			position("p-mgr", "Engineering Manager", "D1", strPtr("p-head")),
			position("p-e1", "Engineer", "D1", strPtr("p-mgr")),
			position("p-e2", "Engineer", "D1", strPtr("p-mgr")),
			position("p-e3", "Engineer", "D1", strPtr("p-mgr")),
			position("p-plat", "Platform Lead", "D2", strPtr("p-head")),
			sre,
			position("p-sales", "Sales Director", "D3", nil),
			position("p-ae", "Account Executive", "D3", strPtr("p-sales")),
			position("p-x", "Solutions Engineer", "D3", strPtr("p-plat")),
		}
		holders := []struct {
			emp, pos, dept string
			hired          time.Time
			status         employee.Status
		}{
			{"head", "p-head", "D1", day(2008, 1, 1), employee.StatusActive},
			{"mgr", "p-mgr", "D1", day(2023, 5, 1), employee.StatusActive},
			{"e1", "p-e1", "D1", day(2026, 3, 1), employee.StatusProbation},
			{"e2", "p-e2", "D1", day(2025, 1, 1), employee.StatusActive},
			{"plat", "p-plat", "D2", day(2020, 1, 1), employee.StatusActive},
			{"ae", "p-ae", "D3", day(2024, 12, 1), employee.StatusActive},
			{"x", "p-x", "D3", day(2019, 6, 1), employee.StatusActive},
		}
		for _, h := range holders {
			d.Employees = append(d.Employees, employee.Employee{
				ID: h.emp, FullName: h.emp, DepartmentID: strPtr(h.dept), PositionID: strPtr(h.pos),
				HireDate: h.hired, Status: h.status,
			})
			d.Assignments = append(d.Assignments, organization.PositionAssignment{
				ID: "a-" + h.emp, EmployeeID: h.emp, PositionID: h.pos, StartDate: h.hired,
			})
		}
		// a terminated former holder of e3 does not fill it
		end := day(2026, 1, 1)
		d.Employees = append(d.Employees, employee.Employee{ID: "gone", HireDate: day(2022, 1, 1), Status: employee.StatusTerminated})
		d.Assignments = append(d.Assignments, organization.PositionAssignment{ID: "a-gone", EmployeeID: "gone", PositionID: "p-e3", StartDate: day(2022, 1, 1), EndDate: &end})
	})
	return NewOrgStructureService(memory.NewOrganizationRepository(ds), memory.NewEmployeeRepository(ds), func() time.Time { return fixedNow })
}

func TestGetStructuralHealth(t *testing.T) {
	svc := newFixtureService(t)

	h, err := svc.GetStructuralHealth(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, h.TotalPositions)
	assert.Equal(t, 7, h.FilledPositions)
	assert.Equal(t, 70.0, h.FillRate)
	assert.Equal(t, 4, h.ManagementPositions)
	assert.Equal(t, 40.0, h.ManagementRatio)
	assert.Equal(t, 2.0, h.AverageSpan)
	assert.Equal(t, "1-3", h.SpanDistribution[0].Label)
	assert.Equal(t, 100.0, h.SpanDistribution[0].Percentage)

	severities := map[orgstructure.InsightSeverity]int{}
	for _, in := range h.Insights {
		severities[in.Severity]++
	}
	assert.Equal(t, 1, severities[orgstructure.InsightCritical])
	assert.Equal(t, 2, severities[orgstructure.InsightWarning])
}

func TestGetOrgSummaryStats_ZeroPositions(t *testing.T) {
	ds := &memory.Dataset{}
	svc := NewOrgStructureService(memory.NewOrganizationRepository(ds), memory.NewEmployeeRepository(ds), func() time.Time { return fixedNow })

	s, err := svc.GetOrgSummaryStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.FillRate)
	assert.Zero(t, s.TotalPositions)

	h, err := svc.GetStructuralHealth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.FillRate)
	require.Len(t, h.Insights, 1)
	assert.Equal(t, orgstructure.InsightInfo, h.Insights[0].Severity)
}

func TestGetOrgSummaryStats(t *testing.T) {
	s, err := newFixtureService(t).GetOrgSummaryStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalDepartments)
	assert.Equal(t, 2, s.ActiveDepartments)
	assert.Equal(t, 3, s.VacantPositions)
	assert.Equal(t, 7, s.AssignedEmployees)
}

func TestGetDepartmentAnalytics(t *testing.T) {
	rows, err := newFixtureService(t).GetDepartmentAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// sorted by department name
	assert.Equal(t, "Engineering", rows[0].DepartmentName)
	assert.Equal(t, 5, rows[0].TotalPositions)
	assert.Equal(t, 4, rows[0].FilledPositions)
	assert.Equal(t, 80.0, rows[0].FillRate)
	assert.Equal(t, 4, rows[0].Headcount)
	assert.Equal(t, 2, rows[0].ManagementPositions)
	assert.Equal(t, 3, rows[0].IndividualContributors)
}

func TestGetPositionRiskAssessment(t *testing.T) {
	risks, err := newFixtureService(t).GetPositionRiskAssessment(context.Background())
	require.NoError(t, err)
	require.Len(t, risks, 10)

	assert.Equal(t, "Head of Engineering", risks[0].Title)
	assert.Equal(t, orgstructure.LevelHigh, risks[0].ImpactLevel)
	assert.Equal(t, orgstructure.LevelHigh, risks[0].VacancyRisk)
	assert.Equal(t, orgstructure.SuccessionCovered, risks[0].SuccessionStatus)

	assert.Equal(t, "Sales Director", risks[1].Title)
	assert.Equal(t, orgstructure.LevelLow, risks[1].VacancyRisk)
	assert.Contains(t, risks[1].Facts, "Position is currently vacant")
	assert.Equal(t, orgstructure.SuccessionAtRisk, risks[1].SuccessionStatus)

	byTitle := map[string]orgstructure.PositionRisk{}
	for _, r := range risks {
		byTitle[r.PositionID] = r
	}
	assert.Equal(t, orgstructure.LevelMedium, byTitle["p-mgr"].VacancyRisk)
	assert.Equal(t, orgstructure.LevelMedium, byTitle["p-e1"].VacancyRisk)
	assert.Equal(t, orgstructure.LevelLow, byTitle["p-e2"].VacancyRisk)
	assert.Equal(t, orgstructure.SuccessionAtRisk, byTitle["p-plat"].SuccessionStatus)
	assert.Equal(t, orgstructure.SuccessionNoPlan, byTitle["p-e2"].SuccessionStatus)
	assert.Equal(t, orgstructure.LevelLow, byTitle["p-e2"].ImpactLevel)

	for i := 1; i < len(risks); i++ {
		assert.GreaterOrEqual(t, risks[i-1].ImpactLevel.Rank(), risks[i].ImpactLevel.Rank())
	}
}

func TestSimulateChangeImpact(t *testing.T) {
	svc := newFixtureService(t)
	ctx := context.Background()

	t.Run("unknown position", func(t *testing.T) {
		impact, err := svc.SimulateChangeImpact(ctx, orgstructure.ActionDeactivatePosition, "nope")
		require.NoError(t, err)
		assert.Equal(t, orgstructure.LevelLow, impact.ImpactLevel)
		assert.Zero(t, impact.AffectedPositions)
		assert.Contains(t, impact.DownstreamEffects, "Position not found")
	})

	t.Run("unknown department", func(t *testing.T) {
		impact, err := svc.SimulateChangeImpact(ctx, orgstructure.ActionDeactivateDepartment, "nope")
		require.NoError(t, err)
		assert.Equal(t, orgstructure.LevelLow, impact.ImpactLevel)
		assert.Contains(t, impact.DownstreamEffects, "Department not found")
	})

	t.Run("unsupported action", func(t *testing.T) {
		_, err := svc.SimulateChangeImpact(ctx, "MERGE_DEPARTMENT", "D1")
		assert.ErrorIs(t, err, orgstructure.ErrUnsupportedAction)
	})

	t.Run("position with reporting chain", func(t *testing.T) {
		impact, err := svc.SimulateChangeImpact(ctx, orgstructure.ActionDeactivatePosition, "p-mgr")
		require.NoError(t, err)
		assert.Equal(t, 4, impact.AffectedPositions)
		assert.Equal(t, 3, impact.AffectedEmployees)
		assert.Equal(t, orgstructure.LevelMedium, impact.ImpactLevel)
		assert.Equal(t, "Engineering Manager", impact.TargetName)
		assert.NotEmpty(t, impact.Recommendation)
	})

	t.Run("department with sub-department and cross reports", func(t *testing.T) {
		impact, err := svc.SimulateChangeImpact(ctx, orgstructure.ActionDeactivateDepartment, "D1")
		require.NoError(t, err)
		assert.Equal(t, 8, impact.AffectedPositions)
		assert.Equal(t, 6, impact.AffectedEmployees)
		assert.Equal(t, orgstructure.LevelMedium, impact.ImpactLevel)
		assert.Contains(t, impact.DownstreamEffects, "1 sub-department(s) are deactivated with it")
		assert.Contains(t, impact.DownstreamEffects, "1 position(s) in other departments report into this department")
	})
}

func TestChangeImpactLevelThresholds(t *testing.T) {
	assert.Equal(t, orgstructure.LevelCritical, changeImpactLevel(51, 0))
	assert.Equal(t, orgstructure.LevelCritical, changeImpactLevel(0, 21))
	assert.Equal(t, orgstructure.LevelHigh, changeImpactLevel(21, 0))
	assert.Equal(t, orgstructure.LevelHigh, changeImpactLevel(0, 11))
	assert.Equal(t, orgstructure.LevelMedium, changeImpactLevel(6, 0))
	assert.Equal(t, orgstructure.LevelMedium, changeImpactLevel(0, 4))
	assert.Equal(t, orgstructure.LevelLow, changeImpactLevel(5, 3))
}

func TestGetCostCenterSummary(t *testing.T) {
	rows, err := newFixtureService(t).GetCostCenterSummary(context.Background())
	require.NoError(t, err)

	got := map[string]orgstructure.CostCenterRollup{}
	for _, r := range rows {
		got[r.CostCenter] = r
	}
	assert.Equal(t, 5, got["CC-ENG"].TotalPositions)
	assert.Equal(t, 1, got["CC-OPS"].TotalPositions)
	assert.Equal(t, 0.0, got["CC-OPS"].FillRate)
	assert.Equal(t, 1, got["UNASSIGNED"].TotalPositions)
	assert.Equal(t, 3, got["CC-SLS"].TotalPositions)
	assert.Equal(t, 2, got["CC-SLS"].Headcount)
}

func TestGetSpanOfControl(t *testing.T) {
	rows, err := newFixtureService(t).GetSpanOfControl(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, "Engineering Manager", rows[0].Title)
	assert.Equal(t, 3, rows[0].DirectReports)
	assert.Equal(t, 2, rows[0].FilledDirectReports)
	assert.Equal(t, orgstructure.SpanOptimal, rows[0].Classification)
	assert.Equal(t, orgstructure.SpanNarrow, rows[3].Classification)

	assert.Equal(t, orgstructure.SpanWide, spanClassification(11))
	assert.Equal(t, orgstructure.SpanOptimal, spanClassification(10))
}

func TestGetVacancyForecast(t *testing.T) {
	rows, err := newFixtureService(t).GetVacancyForecast(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 7)

	assert.Equal(t, "e1", rows[0].HolderID)
	assert.Equal(t, 0.6, rows[0].Likelihood)
	assert.Equal(t, orgstructure.LevelHigh, rows[0].RiskLevel)
	assert.Equal(t, "0-3 months", rows[0].Timeframe)

	for _, r := range rows {
		assert.LessOrEqual(t, r.Likelihood, 0.95)
		if r.HolderID == "head" {
			assert.Equal(t, orgstructure.LevelMedium, r.RiskLevel)
			assert.Equal(t, "3-6 months", r.Timeframe)
		}
	}
	assert.Equal(t, 0.7, vacancyLikelihood(20, true))
}

func TestDepartmentScopedViews(t *testing.T) {
	svc := newFixtureService(t)
	ctx := context.Background()

	summary, err := svc.GetDepartmentSummary(ctx, "D3")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalPositions)
	assert.Equal(t, 2, summary.FilledPositions)
	assert.Equal(t, 66.7, summary.FillRate)

	risks, err := svc.GetDepartmentPositionRisk(ctx, "D2")
	require.NoError(t, err)
	assert.Len(t, risks, 2)

	spans, err := svc.GetDepartmentSpanOfControl(ctx, "D1")
	require.NoError(t, err)
	assert.Len(t, spans, 2)

	forecast, err := svc.GetDepartmentVacancyForecast(ctx, "D1")
	require.NoError(t, err)
	assert.Len(t, forecast, 4)

	_, err = svc.GetDepartmentSummary(ctx, "missing")
	assert.ErrorIs(t, err, organization.ErrDepartmentNotFound)
	_, err = svc.GetDepartmentVacancyForecast(ctx, "missing")
	assert.ErrorIs(t, err, organization.ErrDepartmentNotFound)
}
