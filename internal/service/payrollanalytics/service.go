package payrollanalytics

import (
	"context"
	"fmt"
	"math"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payrollanalytics"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

const (
	// ForecastConfidence is a fixed heuristic, not derived from the fit.
	ForecastConfidence = 0.85
	forecastWindow     = 6
	forecastMinPoints  = 3

	trendThreshold       = 1.0
	significantThreshold = 5.0
)

type PayrollAnalyticsServiceImpl struct {
	payrollRepo    payroll.PayrollRepository
	attendanceRepo attendance.AttendanceRepository
}

func NewPayrollAnalyticsService(payrollRepo payroll.PayrollRepository, attendanceRepo attendance.AttendanceRepository) payrollanalytics.PayrollAnalyticsService {
	return &PayrollAnalyticsServiceImpl{
		payrollRepo:    payrollRepo,
		attendanceRepo: attendanceRepo,
	}
}

// GetPayrollStory implements payrollanalytics.PayrollAnalyticsService.
func (s *PayrollAnalyticsServiceImpl) GetPayrollStory(ctx context.Context, entityID *string) (*payrollanalytics.PayrollStory, error) {
	runs, err := s.payrollRepo.ListApprovedRuns(ctx, entityID, 2)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved payroll runs: %w", err)
	}
	if len(runs) < 2 {
		return insufficientStory(), nil
	}

	current, previous := runs[0], runs[1]
	diff := current.TotalNetPay.Sub(previous.TotalNetPay)

	change := 0.0
	if !previous.TotalNetPay.IsZero() {
		change = diff.Div(previous.TotalNetPay).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
	}

	trend := payrollanalytics.TrendStable
	switch {
	case change > trendThreshold:
		trend = payrollanalytics.TrendRising
	case change < -trendThreshold:
		trend = payrollanalytics.TrendFalling
	}

	story := &payrollanalytics.PayrollStory{
		Trend:            trend,
		ChangePercentage: change,
		CurrentRunID:     current.ID,
		PreviousRunID:    previous.ID,
		CurrentTotal:     current.TotalNetPay,
		PreviousTotal:    previous.TotalNetPay,
		Difference:       diff,
		HeadcountChange:  current.EmployeeCount - previous.EmployeeCount,
		ExceptionCount:   current.ExceptionCount,
	}
	story.Headline, story.Narrative = narrate(story)
	return story, nil
}

func insufficientStory() *payrollanalytics.PayrollStory {
	return &payrollanalytics.PayrollStory{
		Trend:            payrollanalytics.TrendStable,
		ChangePercentage: 0,
		Headline:         "Not enough payroll history yet",
		Narrative:        "At least two approved payroll runs are needed to compare periods.",
		InsufficientData: true,
		CurrentTotal:     decimal.Zero,
		PreviousTotal:    decimal.Zero,
		Difference:       decimal.Zero,
	}
}

func narrate(st *payrollanalytics.PayrollStory) (string, string) {
	magnitude := math.Abs(st.ChangePercentage)
	movement := fmt.Sprintf("Total net pay moved from %s to %s (%s).",
		st.PreviousTotal.StringFixed(2), st.CurrentTotal.StringFixed(2), signed(st.Difference))

	if magnitude > significantThreshold {
		var headline string
		if st.ChangePercentage > 0 {
			headline = fmt.Sprintf("Payroll jumped %.1f%% since the last run", magnitude)
		} else {
			headline = fmt.Sprintf("Payroll dropped %.1f%% since the last run", magnitude)
		}
		narrative := fmt.Sprintf("%s Headcount changed by %+d and the run carries %d exception(s). "+
			"A swing this size usually comes from hiring, exits, or one-off payments and should be reviewed before the next approval.",
			movement, st.HeadcountChange, st.ExceptionCount)
		return headline, narrative
	}

	var headline string
	switch st.Trend {
	case payrollanalytics.TrendRising:
		headline = fmt.Sprintf("Payroll edged up %.1f%%", magnitude)
	case payrollanalytics.TrendFalling:
		headline = fmt.Sprintf("Payroll eased down %.1f%%", magnitude)
	default:
		headline = "Payroll is holding steady"
	}
	narrative := fmt.Sprintf("%s The change is within normal period-to-period variation; headcount changed by %+d.",
		movement, st.HeadcountChange)
	return headline, narrative
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(2)
	}
	return "+" + d.StringFixed(2)
}

// DetectGhostEmployees implements payrollanalytics.PayrollAnalyticsService.
func (s *PayrollAnalyticsServiceImpl) DetectGhostEmployees(ctx context.Context, runID string) (*payrollanalytics.GhostEmployeeReport, error) {
	run, err := s.payrollRepo.GetRunByID(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get payroll run %s: %w", runID, err)
	}

	payslips, err := s.payrollRepo.ListPayslipsByRun(ctx, run.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips for run %s: %w", run.ID, err)
	}

	employeeIDs := make([]string, 0, len(payslips))
	for _, p := range payslips {
		employeeIDs = append(employeeIDs, p.EmployeeID)
	}

	// period end is inclusive, the punch window is half-open
	punches, err := s.attendanceRepo.CountPunchesByEmployee(ctx, employeeIDs, run.PeriodStart, run.PeriodEnd.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance punches: %w", err)
	}

	report := &payrollanalytics.GhostEmployeeReport{
		RunID:           run.ID,
		PeriodStart:     run.PeriodStart.Format("2006-01-02"),
		PeriodEnd:       run.PeriodEnd.Format("2006-01-02"),
		ScannedPayslips: len(payslips),
		Anomalies:       []payrollanalytics.Anomaly{},
	}
	for _, p := range payslips {
		if !p.NetPay.IsPositive() || punches[p.EmployeeID] > 0 {
			continue
		}
		report.Anomalies = append(report.Anomalies, payrollanalytics.Anomaly{
			Type:         payrollanalytics.AnomalyGhostEmployee,
			Severity:     payrollanalytics.SeverityHigh,
			EmployeeID:   p.EmployeeID,
			EmployeeName: p.EmployeeName,
			PayslipID:    p.ID,
			NetPay:       p.NetPay,
			Description: fmt.Sprintf("%s was paid %s but has no attendance punches between %s and %s",
				p.EmployeeName, p.NetPay.StringFixed(2), report.PeriodStart, report.PeriodEnd),
		})
	}
	return report, nil
}

// GetForecast implements payrollanalytics.PayrollAnalyticsService.
func (s *PayrollAnalyticsServiceImpl) GetForecast(ctx context.Context) (*payrollanalytics.Forecast, error) {
	runs, err := s.payrollRepo.ListApprovedRuns(ctx, nil, forecastWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved payroll runs: %w", err)
	}

	forecast := &payrollanalytics.Forecast{
		DataPoints: len(runs),
		Method:     "linear_regression",
	}
	if len(runs) < forecastMinPoints {
		return forecast, nil
	}

	// runs come newest first, x runs oldest to newest
	ys := make([]float64, len(runs))
	for i, run := range runs {
		ys[len(runs)-1-i] = run.TotalNetPay.InexactFloat64()
	}

	slope, intercept := utils.LinearRegression(ys)
	forecast.Slope = utils.Round2(slope)
	forecast.NextMonthPrediction = utils.Round2(intercept + slope*float64(len(ys)))
	forecast.Confidence = ForecastConfidence
	return forecast, nil
}
