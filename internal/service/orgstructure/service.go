package orgstructure

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/orgstructure"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
)

const (
	criticalFillRate     = 75.0
	wideSpanThreshold    = 10
	topHeavyRatio        = 30.0
	vacancyBase          = 0.10
	vacancyProbation     = 0.20
	vacancyCap           = 0.95
	vacancyHighThreshold = 0.6
	vacancyMedThreshold  = 0.35
)

var (
	highImpactKeywords   = []string{"director", "head", "chief", "vp"}
	mediumImpactKeywords = []string{"manager", "lead"}
	spanBuckets          = []string{"1-3", "4-6", "7-10", "11+"}

	// added to vacancyBase per holder tenure band
	vacancyTenureAddOn = map[string]float64{
		"<1y":   0.30,
		"1-2y":  0.25,
		"2-5y":  0.20,
		"5-10y": 0.05,
		"10y+":  0.15,
	}
)

type OrgStructureServiceImpl struct {
	orgRepo      organization.OrganizationRepository
	employeeRepo employee.EmployeeRepository
	now          func() time.Time
}

func NewOrgStructureService(orgRepo organization.OrganizationRepository, employeeRepo employee.EmployeeRepository, now func() time.Time) orgstructure.OrgStructureService {
	if now == nil {
		now = time.Now
	}
	return &OrgStructureServiceImpl{
		orgRepo:      orgRepo,
		employeeRepo: employeeRepo,
		now:          now,
	}
}

// GetStructuralHealth implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetStructuralHealth(ctx context.Context) (*orgstructure.StructuralHealth, error) {
	asOf := s.now()
	g, err := s.loadGraph(ctx, asOf)
	if err != nil {
		return nil, err
	}

	health := &orgstructure.StructuralHealth{
		TotalPositions: len(g.nodes),
		Insights:       []orgstructure.Insight{},
	}

	spanCounts := make(map[string]int, len(spanBuckets))
	tenureCounts := make(map[string]int, len(employee.TenureBands))
	var spans []float64
	var wide []string
	vacantManagement := 0

	for _, n := range g.nodes {
		isManagement := organization.IsManagementTitle(n.position.Title)
		if isManagement {
			health.ManagementPositions++
		}
		if n.holder != nil {
			health.FilledPositions++
			tenureCounts[employee.TenureBand(n.holder.TenureYears(asOf))]++
		} else if isManagement {
			vacantManagement++
		}
		if reports := len(n.children); reports > 0 {
			spans = append(spans, float64(reports))
			spanCounts[spanBucket(reports)]++
			if reports > wideSpanThreshold {
				wide = append(wide, n.position.Title)
			}
		}
	}

	health.VacantPositions = health.TotalPositions - health.FilledPositions
	health.FillRate = utils.Rate(health.FilledPositions, health.TotalPositions)
	health.ManagementRatio = utils.Rate(health.ManagementPositions, health.TotalPositions)
	health.AverageSpan = utils.Round1(utils.Mean(spans))
	health.SpanDistribution = buckets(spanBuckets, spanCounts, len(spans))
	health.TenureDistribution = buckets(employee.TenureBands, tenureCounts, health.FilledPositions)

	if health.TotalPositions > 0 && health.FillRate < criticalFillRate {
		health.Insights = append(health.Insights, orgstructure.Insight{
			Severity: orgstructure.InsightCritical,
			Message:  fmt.Sprintf("Only %.1f%% of positions are filled; %d positions are vacant", health.FillRate, health.VacantPositions),
		})
	}
	if len(wide) > 0 {
		health.Insights = append(health.Insights, orgstructure.Insight{
			Severity: orgstructure.InsightWarning,
			Message:  fmt.Sprintf("%d position(s) have more than %d direct reports: %s", len(wide), wideSpanThreshold, strings.Join(wide, ", ")),
		})
	}
	if health.ManagementRatio > topHeavyRatio {
		health.Insights = append(health.Insights, orgstructure.Insight{
			Severity: orgstructure.InsightWarning,
			Message:  fmt.Sprintf("Management ratio of %.1f%% suggests a top-heavy structure", health.ManagementRatio),
		})
	}
	if vacantManagement > 0 {
		health.Insights = append(health.Insights, orgstructure.Insight{
			Severity: orgstructure.InsightWarning,
			Message:  fmt.Sprintf("%d management position(s) are vacant", vacantManagement),
		})
	}
	if len(health.Insights) == 0 {
		health.Insights = append(health.Insights, orgstructure.Insight{
			Severity: orgstructure.InsightInfo,
			Message:  "Organization structure is within healthy ranges",
		})
	}
	return health, nil
}

func spanBucket(reports int) string {
	switch {
	case reports <= 3:
		return spanBuckets[0]
	case reports <= 6:
		return spanBuckets[1]
	case reports <= 10:
		return spanBuckets[2]
	default:
		return spanBuckets[3]
	}
}

func buckets(labels []string, counts map[string]int, total int) []orgstructure.Bucket {
	out := make([]orgstructure.Bucket, 0, len(labels))
	for _, l := range labels {
		out = append(out, orgstructure.Bucket{Label: l, Count: counts[l], Percentage: utils.Rate(counts[l], total)})
	}
	return out
}

// GetDepartmentAnalytics implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetDepartmentAnalytics(ctx context.Context) ([]orgstructure.DepartmentAnalytics, error) {
	asOf := s.now()
	g, err := s.loadGraph(ctx, asOf)
	if err != nil {
		return nil, err
	}

	tenures := make(map[string][]float64)
	for _, e := range g.employees {
		if e.DepartmentID == nil || !e.Status.IsActive() {
			continue
		}
		tenures[*e.DepartmentID] = append(tenures[*e.DepartmentID], e.TenureYears(asOf))
	}

	out := make([]orgstructure.DepartmentAnalytics, 0, len(g.deptOrder))
	for _, id := range g.deptOrder {
		d := g.departments[id]
		row := orgstructure.DepartmentAnalytics{
			DepartmentID:       d.ID,
			DepartmentName:     d.Name,
			Headcount:          len(tenures[id]),
			AverageTenureYears: utils.Round1(utils.Mean(tenures[id])),
		}
		for _, idx := range g.subset(id) {
			n := g.nodes[idx]
			row.TotalPositions++
			if n.holder != nil {
				row.FilledPositions++
			}
			if organization.IsManagementTitle(n.position.Title) {
				row.ManagementPositions++
			} else {
				row.IndividualContributors++
			}
		}
		row.FillRate = utils.Rate(row.FilledPositions, row.TotalPositions)
		out = append(out, row)
	}
	return out, nil
}

// GetPositionRiskAssessment implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetPositionRiskAssessment(ctx context.Context) ([]orgstructure.PositionRisk, error) {
	asOf := s.now()
	g, err := s.loadGraph(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return positionRisks(g, g.all(), asOf), nil
}

func positionRisks(g *orgGraph, idxs []int, asOf time.Time) []orgstructure.PositionRisk {
	out := make([]orgstructure.PositionRisk, 0, len(idxs))
	for _, idx := range idxs {
		n := g.nodes[idx]
		reports := len(n.children)
		filledReports := g.filledChildren(idx)

		risk := orgstructure.PositionRisk{
			PositionID:     n.position.ID,
			Title:          n.position.Title,
			DepartmentName: g.departmentName(n.position.DepartmentID),
			DirectReports:  reports,
			ImpactLevel:    impactLevel(n.position.Title, reports),
			Facts:          []string{},
		}
		if reports > 0 {
			risk.Facts = append(risk.Facts, fmt.Sprintf("%d direct report(s), %d filled", reports, filledReports))
		}

		if n.holder == nil {
			risk.VacancyRisk = orgstructure.LevelLow
			risk.Facts = append(risk.Facts, "Position is currently vacant")
		} else {
			risk.HolderID = n.holder.ID
			risk.HolderName = n.holder.FullName
			var fact string
			risk.VacancyRisk, fact = vacancyRisk(n.holder.TenureYears(asOf))
			if fact != "" {
				risk.Facts = append(risk.Facts, fact)
			}
		}

		switch {
		case filledReports >= 2:
			risk.SuccessionStatus = orgstructure.SuccessionCovered
		case filledReports == 1:
			risk.SuccessionStatus = orgstructure.SuccessionAtRisk
			risk.Facts = append(risk.Facts, "Only one filled direct report could step in")
		default:
			risk.SuccessionStatus = orgstructure.SuccessionNoPlan
		}
		out = append(out, risk)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if a, b := out[i].ImpactLevel.Rank(), out[j].ImpactLevel.Rank(); a != b {
			return a > b
		}
		if a, b := out[i].VacancyRisk.Rank(), out[j].VacancyRisk.Rank(); a != b {
			return a > b
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func impactLevel(title string, reports int) orgstructure.Level {
	switch {
	case organization.TitleContainsAny(title, highImpactKeywords...) || reports >= 5:
		return orgstructure.LevelHigh
	case organization.TitleContainsAny(title, mediumImpactKeywords...) || reports >= 1:
		return orgstructure.LevelMedium
	default:
		return orgstructure.LevelLow
	}
}

func vacancyRisk(tenureYears float64) (orgstructure.Level, string) {
	switch {
	case tenureYears > 15:
		return orgstructure.LevelHigh, fmt.Sprintf("Holder has %.1f years of tenure; retirement exposure", tenureYears)
	case tenureYears < 0.5:
		return orgstructure.LevelMedium, "Holder joined less than 6 months ago"
	case tenureYears >= 2 && tenureYears <= 4:
		return orgstructure.LevelMedium, fmt.Sprintf("Holder is in the 2-4 year tenure window (%.1f years)", tenureYears)
	default:
		return orgstructure.LevelLow, ""
	}
}

// SimulateChangeImpact implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) SimulateChangeImpact(ctx context.Context, action orgstructure.ActionType, targetID string) (*orgstructure.ChangeImpact, error) {
	if action != orgstructure.ActionDeactivatePosition && action != orgstructure.ActionDeactivateDepartment {
		return nil, fmt.Errorf("%w: %q", orgstructure.ErrUnsupportedAction, action)
	}

	g, err := s.loadGraph(ctx, s.now())
	if err != nil {
		return nil, err
	}

	impact := &orgstructure.ChangeImpact{
		ActionType:        action,
		TargetID:          targetID,
		DownstreamEffects: []string{},
		ImpactLevel:       orgstructure.LevelLow,
	}

	var affected []int
	extraEmployees := map[string]bool{}

	switch action {
	case orgstructure.ActionDeactivatePosition:
		idx, ok := g.byID[targetID]
		if !ok {
			impact.DownstreamEffects = append(impact.DownstreamEffects, "Position not found")
			impact.Recommendation = recommendation(orgstructure.LevelLow)
			return impact, nil
		}
		impact.TargetName = g.nodes[idx].position.Title
		affected = g.descendants(idx)
		if below := len(affected) - 1; below > 0 {
			impact.DownstreamEffects = append(impact.DownstreamEffects,
				fmt.Sprintf("%d position(s) in the reporting chain lose their manager", below))
		}
		if p := g.nodes[idx].parent; p >= 0 {
			impact.DownstreamEffects = append(impact.DownstreamEffects,
				fmt.Sprintf("%s loses a direct report", g.nodes[p].position.Title))
		}

	case orgstructure.ActionDeactivateDepartment:
		dept, ok := g.departments[targetID]
		if !ok {
			impact.DownstreamEffects = append(impact.DownstreamEffects, "Department not found")
			impact.Recommendation = recommendation(orgstructure.LevelLow)
			return impact, nil
		}
		impact.TargetName = dept.Name

		tree := g.departmentTree(targetID)
		inTree := make(map[string]bool, len(tree))
		var roots []int
		for _, d := range tree {
			inTree[d] = true
			roots = append(roots, g.deptNodes[d]...)
		}
		affected = g.descendants(roots...)

		if subs := len(tree) - 1; subs > 0 {
			impact.DownstreamEffects = append(impact.DownstreamEffects,
				fmt.Sprintf("%d sub-department(s) are deactivated with it", subs))
		}
		outside := 0
		for _, idx := range affected {
			if !inTree[g.nodes[idx].position.DepartmentID] {
				outside++
			}
		}
		if outside > 0 {
			impact.DownstreamEffects = append(impact.DownstreamEffects,
				fmt.Sprintf("%d position(s) in other departments report into this department", outside))
		}
		for _, e := range g.employees {
			if e.DepartmentID != nil && inTree[*e.DepartmentID] && e.Status.IsActive() {
				extraEmployees[e.ID] = true
			}
		}
	}

	employees := extraEmployees
	vacant := 0
	for _, idx := range affected {
		if h := g.nodes[idx].holder; h != nil {
			employees[h.ID] = true
		} else {
			vacant++
		}
	}
	if vacant > 0 {
		impact.DownstreamEffects = append(impact.DownstreamEffects, fmt.Sprintf("%d affected position(s) are already vacant", vacant))
	}

	impact.AffectedPositions = len(affected)
	impact.AffectedEmployees = len(employees)
	impact.ImpactLevel = changeImpactLevel(impact.AffectedEmployees, impact.AffectedPositions)
	impact.Recommendation = recommendation(impact.ImpactLevel)
	return impact, nil
}

func changeImpactLevel(employees, positions int) orgstructure.Level {
	switch {
	case employees > 50 || positions > 20:
		return orgstructure.LevelCritical
	case employees > 20 || positions > 10:
		return orgstructure.LevelHigh
	case employees > 5 || positions > 3:
		return orgstructure.LevelMedium
	default:
		return orgstructure.LevelLow
	}
}

func recommendation(level orgstructure.Level) string {
	switch level {
	case orgstructure.LevelCritical:
		return "Do not proceed without an executive-approved transition plan and staged rollout."
	case orgstructure.LevelHigh:
		return "Prepare reassignment of reporting lines and communicate to affected teams before proceeding."
	case orgstructure.LevelMedium:
		return "Review affected reporting lines with department heads before proceeding."
	default:
		return "Low impact; proceed with standard change approval."
	}
}

// GetCostCenterSummary implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetCostCenterSummary(ctx context.Context) ([]orgstructure.CostCenterRollup, error) {
	g, err := s.loadGraph(ctx, s.now())
	if err != nil {
		return nil, err
	}

	type acc struct {
		row     orgstructure.CostCenterRollup
		depts   map[string]bool
		holders map[string]bool
	}
	rollups := map[string]*acc{}
	for _, n := range g.nodes {
		cc := g.costCenter(n)
		a, ok := rollups[cc]
		if !ok {
			a = &acc{row: orgstructure.CostCenterRollup{CostCenter: cc}, depts: map[string]bool{}, holders: map[string]bool{}}
			rollups[cc] = a
		}
		a.row.TotalPositions++
		a.depts[n.position.DepartmentID] = true
		if n.holder != nil {
			a.row.FilledPositions++
			a.holders[n.holder.ID] = true
		}
	}

	out := make([]orgstructure.CostCenterRollup, 0, len(rollups))
	for _, a := range rollups {
		a.row.Departments = len(a.depts)
		a.row.Headcount = len(a.holders)
		a.row.FillRate = utils.Rate(a.row.FilledPositions, a.row.TotalPositions)
		out = append(out, a.row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CostCenter < out[j].CostCenter })
	return out, nil
}

// GetSpanOfControl implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetSpanOfControl(ctx context.Context) ([]orgstructure.SpanOfControlEntry, error) {
	g, err := s.loadGraph(ctx, s.now())
	if err != nil {
		return nil, err
	}
	return spanOfControl(g, g.all()), nil
}

func spanOfControl(g *orgGraph, idxs []int) []orgstructure.SpanOfControlEntry {
	out := []orgstructure.SpanOfControlEntry{}
	for _, idx := range idxs {
		n := g.nodes[idx]
		reports := len(n.children)
		if reports == 0 {
			continue
		}
		entry := orgstructure.SpanOfControlEntry{
			PositionID:          n.position.ID,
			Title:               n.position.Title,
			DepartmentName:      g.departmentName(n.position.DepartmentID),
			DirectReports:       reports,
			FilledDirectReports: g.filledChildren(idx),
			Classification:      spanClassification(reports),
		}
		if n.holder != nil {
			entry.HolderName = n.holder.FullName
		}
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DirectReports != out[j].DirectReports {
			return out[i].DirectReports > out[j].DirectReports
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func spanClassification(reports int) orgstructure.SpanClassification {
	switch {
	case reports < 3:
		return orgstructure.SpanNarrow
	case reports <= 10:
		return orgstructure.SpanOptimal
	default:
		return orgstructure.SpanWide
	}
}

// GetVacancyForecast implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetVacancyForecast(ctx context.Context) ([]orgstructure.VacancyForecast, error) {
	asOf := s.now()
	g, err := s.loadGraph(ctx, asOf)
	if err != nil {
		return nil, err
	}
	return vacancyForecast(g, g.all(), asOf), nil
}

func vacancyForecast(g *orgGraph, idxs []int, asOf time.Time) []orgstructure.VacancyForecast {
	out := []orgstructure.VacancyForecast{}
	for _, idx := range idxs {
		n := g.nodes[idx]
		if n.holder == nil {
			continue
		}
		tenure := n.holder.TenureYears(asOf)
		likelihood := vacancyLikelihood(tenure, n.holder.Status == employee.StatusProbation)

		f := orgstructure.VacancyForecast{
			PositionID:  n.position.ID,
			Title:       n.position.Title,
			HolderID:    n.holder.ID,
			HolderName:  n.holder.FullName,
			TenureYears: utils.Round1(tenure),
			Likelihood:  likelihood,
		}
		switch {
		case likelihood >= vacancyHighThreshold:
			f.RiskLevel, f.Timeframe = orgstructure.LevelHigh, "0-3 months"
		case likelihood >= vacancyMedThreshold:
			f.RiskLevel, f.Timeframe = orgstructure.LevelMedium, "3-6 months"
		default:
			f.RiskLevel, f.Timeframe = orgstructure.LevelLow, "6-12 months"
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Likelihood != out[j].Likelihood {
			return out[i].Likelihood > out[j].Likelihood
		}
		return out[i].Title < out[j].Title
	})
	return out
}

func vacancyLikelihood(tenureYears float64, probation bool) float64 {
	score := vacancyBase + vacancyTenureAddOn[employee.TenureBand(tenureYears)]
	if tenureYears > 15 {
		score += 0.25
	}
	if probation {
		score += vacancyProbation
	}
	return math.Round(math.Min(score, vacancyCap)*100) / 100
}

// GetOrgSummaryStats implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetOrgSummaryStats(ctx context.Context) (*orgstructure.OrgSummary, error) {
	g, err := s.loadGraph(ctx, s.now())
	if err != nil {
		return nil, err
	}
	summary := summarize(g, g.deptOrder, g.all())
	return &summary, nil
}

func summarize(g *orgGraph, deptIDs []string, idxs []int) orgstructure.OrgSummary {
	summary := orgstructure.OrgSummary{
		TotalDepartments: len(deptIDs),
		TotalPositions:   len(idxs),
	}
	for _, id := range deptIDs {
		if g.departments[id].IsActive {
			summary.ActiveDepartments++
		}
	}
	holders := map[string]bool{}
	for _, idx := range idxs {
		if h := g.nodes[idx].holder; h != nil {
			summary.FilledPositions++
			holders[h.ID] = true
		}
	}
	summary.VacantPositions = summary.TotalPositions - summary.FilledPositions
	summary.FillRate = utils.Rate(summary.FilledPositions, summary.TotalPositions)
	summary.AssignedEmployees = len(holders)
	return summary
}

func (s *OrgStructureServiceImpl) loadDepartmentGraph(ctx context.Context, departmentID string, asOf time.Time) (*orgGraph, error) {
	g, err := s.loadGraph(ctx, asOf)
	if err != nil {
		return nil, err
	}
	if _, ok := g.departments[departmentID]; !ok {
		return nil, fmt.Errorf("department %s: %w", departmentID, organization.ErrDepartmentNotFound)
	}
	return g, nil
}

// GetDepartmentSummary implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetDepartmentSummary(ctx context.Context, departmentID string) (*orgstructure.OrgSummary, error) {
	g, err := s.loadDepartmentGraph(ctx, departmentID, s.now())
	if err != nil {
		return nil, err
	}
	summary := summarize(g, []string{departmentID}, g.subset(departmentID))
	return &summary, nil
}

// GetDepartmentPositionRisk implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetDepartmentPositionRisk(ctx context.Context, departmentID string) ([]orgstructure.PositionRisk, error) {
	asOf := s.now()
	g, err := s.loadDepartmentGraph(ctx, departmentID, asOf)
	if err != nil {
		return nil, err
	}
	return positionRisks(g, g.subset(departmentID), asOf), nil
}

// GetDepartmentSpanOfControl implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetDepartmentSpanOfControl(ctx context.Context, departmentID string) ([]orgstructure.SpanOfControlEntry, error) {
	g, err := s.loadDepartmentGraph(ctx, departmentID, s.now())
	if err != nil {
		return nil, err
	}
	return spanOfControl(g, g.subset(departmentID)), nil
}

// GetDepartmentVacancyForecast implements orgstructure.OrgStructureService.
func (s *OrgStructureServiceImpl) GetDepartmentVacancyForecast(ctx context.Context, departmentID string) ([]orgstructure.VacancyForecast, error) {
	asOf := s.now()
	g, err := s.loadDepartmentGraph(ctx, departmentID, asOf)
	if err != nil {
		return nil, err
	}
	return vacancyForecast(g, g.subset(departmentID), asOf), nil
}
