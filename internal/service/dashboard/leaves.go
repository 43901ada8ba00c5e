package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cache"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
	"golang.org/x/sync/errgroup"
)

const (
	weightApprovalEfficiency = 0.3
	weightLeaveUtilization   = 0.3
	weightPendingBacklog     = 0.2
	weightRejectionRate      = 0.2

	targetDecisionHours = 24.0
	maxDecisionHours    = 168.0
	stalePendingAge     = 7 * 24 * time.Hour
	onLeaveLookback     = 90
)

// GetLeavesDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetLeavesDashboard(ctx context.Context, year int) (*dashboard.LeavesDashboard, error) {
	if year <= 0 {
		year = s.now().Year()
	}
	return cache.Remember(ctx, s.cache, dashboard.LeavesCacheKey(year), s.cacheTTL,
		func(ctx context.Context) (*dashboard.LeavesDashboard, error) {
			return s.buildLeavesDashboard(ctx, year)
		})
}

func (s *DashboardServiceImpl) buildLeavesDashboard(ctx context.Context, year int) (*dashboard.LeavesDashboard, error) {
	now := s.now().UTC()
	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var (
		requests    []leave.Request
		current     []leave.Request
		balances    []leave.Balance
		employees   []employee.Employee
		departments []organization.Department
	)

	g, gCtx := errgroup.WithContext(ctx)
	src := newSources("leaves")

	// 1. Requests starting in the year
	fetch(gCtx, g, src, "requests", &requests, func(ctx context.Context) ([]leave.Request, error) {
		return s.leaveRepo.ListRequests(ctx, yearStart, yearStart.AddDate(1, 0, 0))
	})

	// 2. Requests that may still cover today
	fetch(gCtx, g, src, "current_requests", &current, func(ctx context.Context) ([]leave.Request, error) {
		return s.leaveRepo.ListRequests(ctx, today.AddDate(0, 0, -onLeaveLookback), today.AddDate(0, 0, 1))
	})

	// 3. Balances
	fetch(gCtx, g, src, "balances", &balances, func(ctx context.Context) ([]leave.Balance, error) {
		return s.leaveRepo.ListBalances(ctx, year)
	})

	// 4. Employees
	fetch(gCtx, g, src, "employees", &employees, s.employeeRepo.List)

	// 5. Departments
	fetch(gCtx, g, src, "departments", &departments, s.orgRepo.ListDepartments)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to build leaves dashboard: %w", err)
	}

	lookup := newOrgLookup(employees, departments)

	d := &dashboard.LeavesDashboard{
		Year:         year,
		GeneratedAt:  now.Format(time.RFC3339),
		Overview:     leaveOverview(requests, current, employees, today),
		Balances:     balanceSummaries(balances),
		RequestTrend: requestTrend(requests, year),
		ByDepartment: requestsBy(requests, func(r leave.Request) (string, string) {
			return lookup.department(r.EmployeeID)
		}),
		ByType: requestsBy(requests, func(r leave.Request) (string, string) {
			return r.LeaveTypeID, r.LeaveTypeName
		}),
		Seasonal: seasonalPattern(requests),
		Workflow: workflowEfficiency(requests, now),
	}
	d.DegradedSources = src.degraded()
	d.Health = leavesHealth(d)
	d.Stories = leavesStories(d, year, now)
	return d, nil
}

func leaveOverview(requests, current []leave.Request, employees []employee.Employee, today time.Time) dashboard.LeaveOverview {
	var o dashboard.LeaveOverview
	o.TotalRequests = len(requests)
	for _, r := range requests {
		switch r.Status {
		case leave.RequestStatusPending:
			o.Pending++
		case leave.RequestStatusApproved:
			o.Approved++
			o.ApprovedDays += r.Days
		case leave.RequestStatusRejected:
			o.Rejected++
		case leave.RequestStatusCancelled:
			o.Cancelled++
		}
	}
	o.ApprovedDays = utils.Round1(o.ApprovedDays)
	o.ApprovalRate = utils.Rate(o.Approved, o.Approved+o.Rejected)

	away := make(map[string]bool)
	for _, r := range current {
		if r.Status == leave.RequestStatusApproved && r.Covers(today) {
			away[r.EmployeeID] = true
		}
	}
	o.OnLeaveToday = len(away)

	for _, e := range employees {
		if e.Status.IsActive() {
			o.EmployeesTotal++
		}
	}
	return o
}

func balanceSummaries(balances []leave.Balance) []dashboard.LeaveBalanceSummary {
	byType := make(map[string]*dashboard.LeaveBalanceSummary)
	seen := make(map[string]map[string]bool)
	for _, b := range balances {
		sum, ok := byType[b.LeaveTypeID]
		if !ok {
			sum = &dashboard.LeaveBalanceSummary{LeaveTypeID: b.LeaveTypeID, LeaveTypeName: b.LeaveTypeName}
			byType[b.LeaveTypeID] = sum
			seen[b.LeaveTypeID] = make(map[string]bool)
		}
		if !seen[b.LeaveTypeID][b.EmployeeID] {
			seen[b.LeaveTypeID][b.EmployeeID] = true
			sum.Employees++
		}
		sum.TotalEntitlement += b.Entitlement
		sum.TotalAccrued += b.Accrued
		sum.TotalTaken += b.Taken
		sum.TotalRemaining += b.Remaining
	}

	out := make([]dashboard.LeaveBalanceSummary, 0, len(byType))
	for _, sum := range byType {
		sum.UtilizationRate = utils.Percent(sum.TotalTaken, sum.TotalEntitlement)
		sum.TotalEntitlement = utils.Round1(sum.TotalEntitlement)
		sum.TotalAccrued = utils.Round1(sum.TotalAccrued)
		sum.TotalTaken = utils.Round1(sum.TotalTaken)
		sum.TotalRemaining = utils.Round1(sum.TotalRemaining)
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LeaveTypeName < out[j].LeaveTypeName })
	return out
}

func requestTrend(requests []leave.Request, year int) []dashboard.LeaveTrendPoint {
	points := make([]dashboard.LeaveTrendPoint, 12)
	for m := range points {
		points[m].Month = time.Date(year, time.Month(m+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
	}
	for _, r := range requests {
		if r.StartDate.Year() != year {
			continue
		}
		p := &points[r.StartDate.Month()-1]
		p.Requests++
		if r.Status == leave.RequestStatusApproved {
			p.Approved++
			p.Days += r.Days
		}
	}
	for i := range points {
		points[i].Days = utils.Round1(points[i].Days)
	}
	return points
}

// requestsBy groups requests under the key returned by keyOf; Days counts approved days only.
func requestsBy(requests []leave.Request, keyOf func(leave.Request) (string, string)) []dashboard.Breakdown {
	groups := make(map[string]*dashboard.Breakdown)
	for _, r := range requests {
		key, name := keyOf(r)
		b, ok := groups[key]
		if !ok {
			b = &dashboard.Breakdown{Key: key, Name: name}
			groups[key] = b
		}
		b.Requests++
		if r.Status == leave.RequestStatusApproved {
			b.Days += r.Days
		}
	}

	out := make([]dashboard.Breakdown, 0, len(groups))
	for _, b := range groups {
		b.Days = utils.Round1(b.Days)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Requests != out[j].Requests {
			return out[i].Requests > out[j].Requests
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func seasonalPattern(requests []leave.Request) []dashboard.SeasonalPoint {
	points := make([]dashboard.SeasonalPoint, 12)
	for m := range points {
		points[m].Label = time.Month(m + 1).String()[:3]
	}
	for _, r := range requests {
		p := &points[r.StartDate.Month()-1]
		p.Requests++
		p.Days += r.Days
	}
	for i := range points {
		points[i].Days = utils.Round1(points[i].Days)
	}
	return points
}

func workflowEfficiency(requests []leave.Request, now time.Time) dashboard.WorkflowEfficiency {
	var (
		w                  dashboard.WorkflowEfficiency
		approved, rejected int
		hours              []float64
	)
	for _, r := range requests {
		switch r.Status {
		case leave.RequestStatusApproved:
			approved++
		case leave.RequestStatusRejected:
			rejected++
		case leave.RequestStatusPending:
			if now.Sub(r.CreatedAt) > stalePendingAge {
				w.PendingOverSevenDays++
			}
		}
		if (r.Status == leave.RequestStatusApproved || r.Status == leave.RequestStatusRejected) && r.DecidedAt != nil {
			w.Decided++
			hours = append(hours, r.DecidedAt.Sub(r.CreatedAt).Hours())
		}
	}
	w.AverageDecisionHours = utils.Round1(utils.Mean(hours))
	w.ApprovalRate = utils.Rate(approved, approved+rejected)
	w.RejectionRate = utils.Rate(rejected, approved+rejected)
	return w
}

// leavesHealth scores each component 0 when it has no input data.
func leavesHealth(d *dashboard.LeavesDashboard) dashboard.HealthScore {
	var efficiency float64
	if d.Workflow.Decided > 0 {
		h := d.Workflow.AverageDecisionHours
		switch {
		case h <= targetDecisionHours:
			efficiency = 100
		default:
			efficiency = 100 * (maxDecisionHours - h) / (maxDecisionHours - targetDecisionHours)
		}
	}

	var entitlement, taken float64
	for _, b := range d.Balances {
		entitlement += b.TotalEntitlement
		taken += b.TotalTaken
	}
	var utilization float64
	if entitlement > 0 {
		u := utils.Percent(taken, entitlement)
		switch {
		case u < 40:
			utilization = 60 + u
		case u <= 85:
			utilization = 100
		default:
			utilization = 100 - (u-85)*4
		}
	}

	var backlog, rejection float64
	if d.Overview.TotalRequests > 0 {
		backlog = 100 - utils.Rate(d.Overview.Pending, d.Overview.TotalRequests)*2 - float64(d.Workflow.PendingOverSevenDays)*5
	}
	if d.Overview.Approved+d.Overview.Rejected > 0 {
		rejection = 100 - d.Workflow.RejectionRate*2
	}

	return healthScore(
		component("Approval Efficiency", efficiency, weightApprovalEfficiency),
		component("Leave Utilization", utilization, weightLeaveUtilization),
		component("Pending Backlog", backlog, weightPendingBacklog),
		component("Rejection Rate", rejection, weightRejectionRate),
	)
}

func leavesStories(d *dashboard.LeavesDashboard, year int, now time.Time) []dashboard.StoryCard {
	var cards []dashboard.StoryCard

	idx := 11
	if year == now.Year() {
		idx = int(now.Month()) - 1
	}
	if idx > 0 {
		cur, prev := d.RequestTrend[idx], d.RequestTrend[idx-1]
		delta := float64(cur.Requests - prev.Requests)
		var headline string
		switch {
		case prev.Requests == 0 && cur.Requests == 0:
			headline = "No leave requests in the last two months"
		case prev.Requests == 0:
			headline = fmt.Sprintf("%d new leave requests after a quiet month", cur.Requests)
		default:
			change := utils.Percent(delta, float64(prev.Requests))
			headline = fmt.Sprintf("Leave requests %s %.1f%% month over month", upDown(delta), math.Abs(change))
		}
		cards = append(cards, story(headline, delta,
			fmt.Sprintf("%s saw %d requests against %d in %s.", cur.Month, cur.Requests, prev.Requests, prev.Month),
			dashboard.StoryMetric{Label: "Requests this month", Value: fmt.Sprintf("%d", cur.Requests)}))
	}

	if d.Overview.Pending > 0 {
		cards = append(cards, story(
			fmt.Sprintf("%d requests awaiting a decision", d.Overview.Pending),
			float64(d.Workflow.PendingOverSevenDays),
			fmt.Sprintf("%d of them have waited more than seven days; decisions take %.1f hours on average.",
				d.Workflow.PendingOverSevenDays, d.Workflow.AverageDecisionHours),
			dashboard.StoryMetric{Label: "Pending over 7 days", Value: fmt.Sprintf("%d", d.Workflow.PendingOverSevenDays)}))
	}

	if len(d.ByType) > 0 {
		top := d.ByType[0]
		share := utils.Rate(top.Requests, d.Overview.TotalRequests)
		cards = append(cards, story(
			fmt.Sprintf("%s leads with %d requests", top.Name, top.Requests),
			0,
			fmt.Sprintf("%s accounts for %.1f%% of requests and %.1f approved days this year.", top.Name, share, top.Days),
			dashboard.StoryMetric{Label: "Share of requests", Value: fmt.Sprintf("%.1f%%", share)}))
	}

	return capStories(cards)
}

func upDown(delta float64) string {
	if delta < 0 {
		return "down"
	}
	return "up"
}
