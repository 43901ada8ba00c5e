package profilerisk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/profilerisk"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
)

// CompletenessScore is reported as-is; it is not derived from the health checks.
const CompletenessScore = 85

const (
	highSensitivityWeight   = 40
	mediumSensitivityWeight = 15
	bulkEditWeight          = 20
	bulkEditThreshold       = 3
	keywordWeight           = 10
	maxScore                = 100
)

var highSensitivityFields = map[string]bool{
	"bankaccountnumber": true,
	"bankroutingnumber": true,
	"nationalid":        true,
	"taxid":             true,
	"basesalary":        true,
	"paygrade":          true,
}

var mediumSensitivityFields = map[string]bool{
	"email":            true,
	"phone":            true,
	"address":          true,
	"emergencycontact": true,
	"fullname":         true,
	"legalname":        true,
	"dateofbirth":      true,
	"maritalstatus":    true,
}

var suspiciousKeywords = []string{"urgent", "immediately", "asap", "confidential", "override", "bypass", "ceo", "wire", "secret"}

type ProfileRiskServiceImpl struct {
	employeeRepo  employee.EmployeeRepository
	orgRepo       organization.OrganizationRepository
	appraisalRepo performance.AppraisalRepository
	now           func() time.Time
}

func NewProfileRiskService(
	employeeRepo employee.EmployeeRepository,
	orgRepo organization.OrganizationRepository,
	appraisalRepo performance.AppraisalRepository,
	now func() time.Time,
) profilerisk.ProfileRiskService {
	if now == nil {
		now = time.Now
	}
	return &ProfileRiskServiceImpl{
		employeeRepo:  employeeRepo,
		orgRepo:       orgRepo,
		appraisalRepo: appraisalRepo,
		now:           now,
	}
}

func normalizeField(name string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(name))
}

// AnalyzeChangeRequestRisk implements profilerisk.ProfileRiskService.
func (s *ProfileRiskServiceImpl) AnalyzeChangeRequestRisk(changes map[string]any, justification string) *profilerisk.ChangeRequestRisk {
	fields := make([]string, 0, len(changes))
	for f := range changes {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	risk := &profilerisk.ChangeRequestRisk{
		ChangedFields: fields,
		Factors:       []string{},
	}

	for _, f := range fields {
		switch n := normalizeField(f); {
		case highSensitivityFields[n]:
			risk.Score += highSensitivityWeight
			risk.Factors = append(risk.Factors, fmt.Sprintf("High-sensitivity field changed: %s", f))
		case mediumSensitivityFields[n]:
			risk.Score += mediumSensitivityWeight
			risk.Factors = append(risk.Factors, fmt.Sprintf("Sensitive field changed: %s", f))
		}
	}

	if len(fields) > bulkEditThreshold {
		risk.Score += bulkEditWeight
		risk.Factors = append(risk.Factors, fmt.Sprintf("Bulk edit of %d fields", len(fields)))
	}

	text := strings.ToLower(justification)
	for _, k := range suspiciousKeywords {
		if strings.Contains(text, k) {
			risk.Score += keywordWeight
			risk.Factors = append(risk.Factors, fmt.Sprintf("Justification contains %q", k))
		}
	}

	if risk.Score > maxScore {
		risk.Score = maxScore
	}
	risk.Level = changeRequestLevel(risk.Score)
	return risk
}

func changeRequestLevel(score int) profilerisk.Level {
	switch {
	case score > 75:
		return profilerisk.LevelCritical
	case score > 50:
		return profilerisk.LevelHigh
	case score > 25:
		return profilerisk.LevelMedium
	default:
		return profilerisk.LevelLow
	}
}

func (s *ProfileRiskServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee %s: %w", id, err)
	}
	return emp, nil
}

// CalculateRetentionRisk implements profilerisk.ProfileRiskService.
func (s *ProfileRiskServiceImpl) CalculateRetentionRisk(ctx context.Context, employeeID string) (*profilerisk.RetentionRisk, error) {
	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	appraisals, err := s.appraisalRepo.ListPublished(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list appraisals: %w", err)
	}

	tenure := emp.TenureMonths(s.now())
	risk := &profilerisk.RetentionRisk{
		EmployeeID:   emp.ID,
		TenureMonths: tenure,
		Factors:      []string{},
	}

	switch {
	case tenure < 6:
		risk.Score += 30
		risk.Factors = append(risk.Factors, "Onboarding period (under 6 months)")
	case tenure < 12:
		risk.Score += 60
		risk.Factors = append(risk.Factors, "First-year cliff (6-12 months)")
	case tenure >= 24 && tenure < 36:
		risk.Score += 40
		risk.Factors = append(risk.Factors, "Three-year itch (24-36 months)")
	}

	var latest []performance.Appraisal
	for _, a := range appraisals {
		if a.EmployeeID == emp.ID {
			latest = append(latest, a)
		}
	}
	if a, ok := performance.LatestByEmployee(latest)[emp.ID]; ok {
		switch {
		case a.Score < 2.5:
			risk.Score += 30
			risk.Factors = append(risk.Factors, fmt.Sprintf("Low latest performance score (%.1f)", a.Score))
		case a.Score < 3.0:
			risk.Score += 15
			risk.Factors = append(risk.Factors, fmt.Sprintf("Below-target latest performance score (%.1f)", a.Score))
		}
	}

	if risk.Score > maxScore {
		risk.Score = maxScore
	}
	switch {
	case risk.Score > 70:
		risk.Level = profilerisk.LevelCritical
	case risk.Score > 50:
		risk.Level = profilerisk.LevelHigh
	case risk.Score > 30:
		risk.Level = profilerisk.LevelMedium
	default:
		risk.Level = profilerisk.LevelLow
	}
	return risk, nil
}

// AnalyzeDeactivationImpact implements profilerisk.ProfileRiskService.
func (s *ProfileRiskServiceImpl) AnalyzeDeactivationImpact(ctx context.Context, employeeID string) (*profilerisk.DeactivationImpact, error) {
	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	impact := &profilerisk.DeactivationImpact{
		EmployeeID:  emp.ID,
		TenureYears: utils.Round1(emp.TenureYears(now)),
	}

	if emp.PositionID != nil {
		pos, err := s.orgRepo.GetPositionByID(ctx, *emp.PositionID)
		switch {
		case err == nil:
			impact.PositionTitle = pos.Title
		case !errors.Is(err, organization.ErrPositionNotFound):
			return nil, fmt.Errorf("failed to get position: %w", err)
		}

		orphaned, err := s.filledReportsOf(ctx, *emp.PositionID, now)
		if err != nil {
			return nil, err
		}
		impact.OrphanedDirectReports = orphaned
	}

	switch {
	case organization.TitleContainsAny(impact.PositionTitle, "director", "head"):
		impact.EstimatedReplacementDays, impact.ReplacementTime, impact.CapacityLossPercent = 120, "3-6 months", 40
	case organization.TitleContainsAny(impact.PositionTitle, "manager", "lead"):
		impact.EstimatedReplacementDays, impact.ReplacementTime, impact.CapacityLossPercent = 75, "2-3 months", 25
	default:
		impact.EstimatedReplacementDays, impact.ReplacementTime, impact.CapacityLossPercent = 45, "4-8 weeks", 10
	}

	switch {
	case impact.TenureYears > 5:
		impact.KnowledgeLossRisk = profilerisk.LevelHigh
	case impact.TenureYears > 2:
		impact.KnowledgeLossRisk = profilerisk.LevelMedium
	default:
		impact.KnowledgeLossRisk = profilerisk.LevelLow
	}

	title := impact.PositionTitle
	if title == "" {
		title = "an unassigned role"
	}
	impact.Summary = fmt.Sprintf("Deactivating %s (%s) removes about %d%% of team capacity for %s; knowledge-loss risk is %s",
		emp.FullName, title, impact.CapacityLossPercent, impact.ReplacementTime, strings.ToLower(string(impact.KnowledgeLossRisk)))
	if impact.OrphanedDirectReports > 0 {
		impact.Summary += fmt.Sprintf(" and %d direct report(s) would be left without a manager", impact.OrphanedDirectReports)
	}
	impact.Summary += "."
	return impact, nil
}

func (s *ProfileRiskServiceImpl) filledReportsOf(ctx context.Context, positionID string, asOf time.Time) (int, error) {
	positions, err := s.orgRepo.ListPositions(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list positions: %w", err)
	}
	assignments, err := s.orgRepo.ListActiveAssignments(ctx, asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	filled := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		filled[a.PositionID] = true
	}
	count := 0
	for _, p := range positions {
		if p.IsActive && p.ReportsToPositionID != nil && *p.ReportsToPositionID == positionID && filled[p.ID] {
			count++
		}
	}
	return count, nil
}

// GetProfileHealth implements profilerisk.ProfileRiskService.
func (s *ProfileRiskServiceImpl) GetProfileHealth(ctx context.Context, employeeID string) (*profilerisk.ProfileHealth, error) {
	emp, err := s.getEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	now := s.now()

	health := &profilerisk.ProfileHealth{
		EmployeeID:            emp.ID,
		CompletenessScore:     CompletenessScore,
		MissingCriticalFields: []string{},
		DataQualityIssues:     []string{},
	}

	required := []struct {
		field string
		empty bool
	}{
		{"full_name", validator.IsEmpty(emp.FullName)},
		{"email", validator.IsEmpty(emp.Email)},
		{"phone", validator.IsEmpty(emp.Phone)},
		{"national_id", validator.IsEmpty(emp.NationalID)},
		{"bank_account_number", validator.IsEmpty(emp.BankAccountNumber)},
		{"address", validator.IsEmpty(emp.Address)},
		{"emergency_contact", validator.IsEmpty(emp.EmergencyContact)},
		{"birth_date", emp.BirthDate == nil},
		{"department", emp.DepartmentID == nil},
		{"position", emp.PositionID == nil},
	}
	for _, r := range required {
		if r.empty {
			health.MissingCriticalFields = append(health.MissingCriticalFields, r.field)
		}
	}

	if !validator.IsEmpty(emp.Email) && !validator.IsValidEmail(emp.Email) {
		health.DataQualityIssues = append(health.DataQualityIssues, "Email address is not valid")
	}
	if !validator.IsEmpty(emp.Phone) && !validator.IsValidPhoneNumber(emp.Phone) {
		health.DataQualityIssues = append(health.DataQualityIssues, "Phone number is not valid")
	}
	if !validator.IsEmpty(emp.NationalID) && !validator.IsNumeric(emp.NationalID) {
		health.DataQualityIssues = append(health.DataQualityIssues, "National ID must contain digits only")
	}
	if !validator.IsEmpty(emp.BankAccountNumber) && !validator.IsNumeric(emp.BankAccountNumber) {
		health.DataQualityIssues = append(health.DataQualityIssues, "Bank account number must contain digits only")
	}
	if emp.HireDate.After(now) {
		health.DataQualityIssues = append(health.DataQualityIssues, "Hire date is in the future")
	}
	if age := emp.AgeAt(now); emp.BirthDate != nil && (age < 15 || age > 100) {
		health.DataQualityIssues = append(health.DataQualityIssues, fmt.Sprintf("Birth date gives an implausible age (%d)", age))
	}
	if emp.Status == employee.StatusProbation && emp.TenureMonths(now) > 12 {
		health.DataQualityIssues = append(health.DataQualityIssues, "Probation has lasted more than 12 months")
	}

	health.Status = profilerisk.ProfileHealthy
	if len(health.MissingCriticalFields) > 0 || len(health.DataQualityIssues) > 0 {
		health.Status = profilerisk.ProfileNeedsAttention
	}
	return health, nil
}
