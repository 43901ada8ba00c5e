package workforce

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/workforce"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
)

const (
	DefaultMonths = 12
	MaxMonths     = 36

	// VoluntaryShare splits overall turnover; it is a fixed assumption, not measured.
	VoluntaryShare   = 0.7
	InvoluntaryShare = 0.3

	trendWindow          = 3
	trendThreshold       = 0.2
	projectionMonths     = 6
	increasingFactor     = 1.05
	decreasingFactor     = 0.97
	confidenceStart      = 95
	confidenceStep       = 8
	confidenceFloor      = 50
	syntheticProbability = 0.3

	scoreNewHire   = 25
	scoreProbation = 20
	scoreNoReview  = 15
	tierHighScore  = 40
	tierMedScore   = 20
)

var ageBands = []string{"<25", "25-34", "35-44", "45-54", "55+", "Unknown"}

var contractTypes = []employee.ContractType{
	employee.ContractPermanent,
	employee.ContractFixedTerm,
	employee.ContractProbation,
	employee.ContractInternship,
	employee.ContractFreelance,
}

var genders = []employee.Gender{employee.GenderMale, employee.GenderFemale, employee.GenderOther}

type Options struct {
	ReviewLookbackMonths int
	// SyntheticReviewFactor replaces the appraisal lookup with a random draw.
	SyntheticReviewFactor bool
	HighRiskLimit         int
	Now                   func() time.Time
	Rand                  func() float64
}

type WorkforceServiceImpl struct {
	employeeRepo  employee.EmployeeRepository
	orgRepo       organization.OrganizationRepository
	appraisalRepo performance.AppraisalRepository
	opts          Options
}

func NewWorkforceService(
	employeeRepo employee.EmployeeRepository,
	orgRepo organization.OrganizationRepository,
	appraisalRepo performance.AppraisalRepository,
	opts Options,
) workforce.WorkforceService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.ReviewLookbackMonths < 1 {
		opts.ReviewLookbackMonths = 12
	}
	if opts.HighRiskLimit < 1 {
		opts.HighRiskLimit = 20
	}
	return &WorkforceServiceImpl{
		employeeRepo:  employeeRepo,
		orgRepo:       orgRepo,
		appraisalRepo: appraisalRepo,
		opts:          opts,
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func normalizeMonths(months int) int {
	if months == 0 {
		return DefaultMonths
	}
	return utils.Clamp(months, 1, MaxMonths)
}

type snapshot struct {
	employees    []employee.Employee
	terminations map[string]employee.TerminationEvent
}

func (s *WorkforceServiceImpl) load(ctx context.Context) (*snapshot, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	events, err := s.employeeRepo.ListTerminationEvents(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to list termination events: %w", err)
	}
	return &snapshot{employees: employees, terminations: employee.CurrentTerminations(employees, events)}, nil
}

// GetHeadcountTrends implements workforce.WorkforceService.
func (s *WorkforceServiceImpl) GetHeadcountTrends(ctx context.Context, months int) ([]workforce.HeadcountPoint, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return headcountSeries(snap, s.opts.Now().UTC(), normalizeMonths(months)), nil
}

func headcountSeries(snap *snapshot, now time.Time, months int) []workforce.HeadcountPoint {
	current := monthStart(now)
	points := make([]workforce.HeadcountPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		start := current.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		p := workforce.HeadcountPoint{Month: start.Format("2006-01")}
		for _, e := range snap.employees {
			if !e.HireDate.Before(start) && e.HireDate.Before(end) {
				p.Hired++
			}
			term, terminated := snap.terminations[e.ID]
			if terminated && !term.EffectiveDate.Before(start) && term.EffectiveDate.Before(end) {
				p.Terminated++
			}
			if !e.HireDate.Before(end) {
				continue
			}
			switch {
			case terminated:
				if !term.EffectiveDate.Before(end) {
					p.Headcount++
				}
			case !e.Status.IsTerminal():
				p.Headcount++
			}
		}
		p.NetChange = p.Hired - p.Terminated
		points = append(points, p)
	}
	return points
}

// GetTurnoverMetrics implements workforce.WorkforceService.
func (s *WorkforceServiceImpl) GetTurnoverMetrics(ctx context.Context, periodMonths int) (*workforce.TurnoverMetrics, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.orgRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return turnover(snap, departments, s.opts.Now().UTC(), normalizeMonths(periodMonths)), nil
}

func turnover(snap *snapshot, departments []organization.Department, now time.Time, periodMonths int) *workforce.TurnoverMetrics {
	start := now.AddDate(0, -periodMonths, 0)
	m := &workforce.TurnoverMetrics{
		PeriodMonths: periodMonths,
		PeriodStart:  start.Format("2006-01-02"),
		PeriodEnd:    now.Format("2006-01-02"),
	}

	deptTerm := map[string]int{}
	deptActive := map[string]int{}
	bandTerm := map[string]int{}
	bandActive := map[string]int{}

	for _, e := range snap.employees {
		dept := ""
		if e.DepartmentID != nil {
			dept = *e.DepartmentID
		}
		if term, ok := snap.terminations[e.ID]; ok {
			if term.EffectiveDate.Before(start) || term.EffectiveDate.After(now) {
				continue
			}
			m.Terminations++
			deptTerm[dept]++
			bandTerm[employee.TenureBand(e.TenureYears(term.EffectiveDate))]++
			continue
		}
		if e.Status.IsActive() {
			m.ActiveHeadcount++
			deptActive[dept]++
			bandActive[employee.TenureBand(e.TenureYears(now))]++
		}
	}

	m.OverallRate = utils.Rate(m.Terminations, m.Terminations+m.ActiveHeadcount)
	m.VoluntaryRate = utils.Round1(m.OverallRate * VoluntaryShare)
	m.InvoluntaryRate = utils.Round1(m.OverallRate * InvoluntaryShare)

	sort.SliceStable(departments, func(i, j int) bool { return departments[i].Name < departments[j].Name })
	m.ByDepartment = make([]workforce.DepartmentTurnover, 0, len(departments)+1)
	for _, d := range departments {
		m.ByDepartment = append(m.ByDepartment, workforce.DepartmentTurnover{
			DepartmentID:   d.ID,
			DepartmentName: d.Name,
			Terminations:   deptTerm[d.ID],
			Active:         deptActive[d.ID],
			Rate:           utils.Rate(deptTerm[d.ID], deptTerm[d.ID]+deptActive[d.ID]),
		})
	}
	if deptTerm[""]+deptActive[""] > 0 {
		m.ByDepartment = append(m.ByDepartment, workforce.DepartmentTurnover{
			DepartmentName: "Unassigned",
			Terminations:   deptTerm[""],
			Active:         deptActive[""],
			Rate:           utils.Rate(deptTerm[""], deptTerm[""]+deptActive[""]),
		})
	}

	m.ByTenureBand = make([]workforce.TenureBandTurnover, 0, len(employee.TenureBands))
	for _, band := range employee.TenureBands {
		m.ByTenureBand = append(m.ByTenureBand, workforce.TenureBandTurnover{
			Band:       band,
			Terminated: bandTerm[band],
			Active:     bandActive[band],
			Rate:       utils.Rate(bandTerm[band], bandTerm[band]+bandActive[band]),
		})
	}
	return m
}

// GetDemographicsBreakdown implements workforce.WorkforceService.
func (s *WorkforceServiceImpl) GetDemographicsBreakdown(ctx context.Context) (*workforce.Demographics, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	now := s.opts.Now().UTC()

	ages := map[string]int{}
	tenures := map[string]int{}
	contracts := map[string]int{}
	genderCounts := map[string]int{}
	total := 0

	for _, e := range employees {
		if !e.Status.IsActive() {
			continue
		}
		total++
		ages[ageBand(e.AgeAt(now))]++
		tenures[employee.TenureBand(e.TenureYears(now))]++
		contracts[labelOr(string(e.ContractType))]++
		genderCounts[labelOr(string(e.Gender))]++
	}

	contractLabels := make([]string, 0, len(contractTypes)+1)
	for _, c := range contractTypes {
		contractLabels = append(contractLabels, string(c))
	}
	genderLabels := make([]string, 0, len(genders)+1)
	for _, g := range genders {
		genderLabels = append(genderLabels, string(g))
	}
	if contracts[unspecified] > 0 {
		contractLabels = append(contractLabels, unspecified)
	}
	if genderCounts[unspecified] > 0 {
		genderLabels = append(genderLabels, unspecified)
	}

	return &workforce.Demographics{
		TotalActive:   total,
		AgeBands:      distribution(ageBands, ages, total),
		TenureBands:   distribution(employee.TenureBands, tenures, total),
		ContractTypes: distribution(contractLabels, contracts, total),
		Genders:       distribution(genderLabels, genderCounts, total),
	}, nil
}

const unspecified = "UNSPECIFIED"

func labelOr(v string) string {
	if v == "" {
		return unspecified
	}
	return v
}

func ageBand(age int) string {
	switch {
	case age < 0:
		return "Unknown"
	case age < 25:
		return "<25"
	case age < 35:
		return "25-34"
	case age < 45:
		return "35-44"
	case age < 55:
		return "45-54"
	default:
		return "55+"
	}
}

func distribution(labels []string, counts map[string]int, total int) []workforce.DistributionItem {
	out := make([]workforce.DistributionItem, 0, len(labels))
	for _, l := range labels {
		out = append(out, workforce.DistributionItem{Label: l, Count: counts[l], Percentage: utils.Rate(counts[l], total)})
	}
	return out
}

// GetAttritionForecast implements workforce.WorkforceService.
func (s *WorkforceServiceImpl) GetAttritionForecast(ctx context.Context) (*workforce.AttritionForecast, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.orgRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	now := s.opts.Now().UTC()

	// the current month is still running, so the series ends at the last complete one
	series := headcountSeries(snap, monthStart(now).AddDate(0, -1, 0), DefaultMonths)
	monthly := make([]float64, len(series))
	for i, p := range series {
		monthly[i] = float64(p.Terminated)
	}
	rate := turnover(snap, departments, now, DefaultMonths).OverallRate

	forecast := &workforce.AttritionForecast{
		Trend:                      attritionTrend(monthly),
		RiskLevel:                  attritionRisk(rate),
		CurrentTurnoverRate:        rate,
		AverageMonthlyTerminations: utils.Round1(utils.Mean(monthly)),
		Projections:                make([]workforce.AttritionProjection, 0, projectionMonths),
	}

	avg := utils.Mean(monthly)
	factor := 1.0
	switch forecast.Trend {
	case workforce.AttritionIncreasing:
		factor = increasingFactor
	case workforce.AttritionDecreasing:
		factor = decreasingFactor
	}
	current := monthStart(now)
	for i := 1; i <= projectionMonths; i++ {
		confidence := confidenceStart - confidenceStep*(i-1)
		if confidence < confidenceFloor {
			confidence = confidenceFloor
		}
		forecast.Projections = append(forecast.Projections, workforce.AttritionProjection{
			Month:                 current.AddDate(0, i, 0).Format("2006-01"),
			ProjectedTerminations: utils.Round1(avg * math.Pow(factor, float64(i))),
			Confidence:            confidence,
		})
	}
	return forecast, nil
}

// attritionTrend compares the latest and earliest windows of a monthly series.
func attritionTrend(monthly []float64) workforce.AttritionTrend {
	if len(monthly) < trendWindow {
		return workforce.AttritionStable
	}
	earliest := utils.Mean(monthly[:trendWindow])
	recent := utils.Mean(monthly[len(monthly)-trendWindow:])
	switch {
	case earliest == 0 && recent > 0:
		return workforce.AttritionIncreasing
	case earliest == 0:
		return workforce.AttritionStable
	case recent > earliest*(1+trendThreshold):
		return workforce.AttritionIncreasing
	case recent < earliest*(1-trendThreshold):
		return workforce.AttritionDecreasing
	default:
		return workforce.AttritionStable
	}
}

func attritionRisk(rate float64) workforce.RiskLevel {
	switch {
	case rate > 25:
		return workforce.RiskCritical
	case rate > 15:
		return workforce.RiskHigh
	case rate > 10:
		return workforce.RiskMedium
	default:
		return workforce.RiskLow
	}
}

// GetHighRiskEmployees implements workforce.WorkforceService. With
// SyntheticReviewFactor set the review component is a random draw, so two calls
// over the same data can return different scores and tiers.
func (s *WorkforceServiceImpl) GetHighRiskEmployees(ctx context.Context) ([]workforce.EmployeeRisk, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	departments, err := s.orgRepo.ListDepartments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	now := s.opts.Now().UTC()

	reviewed := map[string]bool{}
	if !s.opts.SyntheticReviewFactor {
		since := now.AddDate(0, -s.opts.ReviewLookbackMonths, 0)
		appraisals, err := s.appraisalRepo.ListPublished(ctx, since)
		if err != nil {
			return nil, fmt.Errorf("failed to list appraisals: %w", err)
		}
		for _, a := range appraisals {
			reviewed[a.EmployeeID] = true
		}
	}

	deptNames := make(map[string]string, len(departments))
	for _, d := range departments {
		deptNames[d.ID] = d.Name
	}

	out := []workforce.EmployeeRisk{}
	for _, e := range employees {
		if !e.Status.IsActive() {
			continue
		}
		tenure := e.TenureMonths(now)
		r := workforce.EmployeeRisk{
			EmployeeID:   e.ID,
			FullName:     e.FullName,
			Status:       string(e.Status),
			TenureMonths: tenure,
			Factors:      []string{},
		}
		if e.DepartmentID != nil {
			r.DepartmentName = deptNames[*e.DepartmentID]
		}
		if tenure < 12 {
			r.Score += scoreNewHire
			r.Factors = append(r.Factors, "Tenure under 12 months")
		}
		if e.Status == employee.StatusProbation {
			r.Score += scoreProbation
			r.Factors = append(r.Factors, "On probation")
		}
		if s.missingReview(e.ID, reviewed) {
			r.Score += scoreNoReview
			r.Factors = append(r.Factors, "No recent performance review")
		}

		switch {
		case r.Score >= tierHighScore:
			r.RiskLevel = workforce.TierHigh
		case r.Score >= tierMedScore:
			r.RiskLevel = workforce.TierMedium
		default:
			continue
		}
		out = append(out, r)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].TenureMonths != out[j].TenureMonths {
			return out[i].TenureMonths < out[j].TenureMonths
		}
		return out[i].FullName < out[j].FullName
	})
	if len(out) > s.opts.HighRiskLimit {
		out = out[:s.opts.HighRiskLimit]
	}
	return out, nil
}

func (s *WorkforceServiceImpl) missingReview(employeeID string, reviewed map[string]bool) bool {
	if s.opts.SyntheticReviewFactor {
		return s.opts.Rand() < syntheticProbability
	}
	return !reviewed[employeeID]
}
