package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/dashboard"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/cache"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/utils"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

const (
	weightPunctuality     = 0.4
	weightAttendance      = 0.35
	weightOvertimeBalance = 0.25

	heavyOvertimeMinutes   = 120
	healthyOvertimeMinutes = 30.0
)

var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// GetTimeManagementDashboard implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetTimeManagementDashboard(ctx context.Context, month string) (*dashboard.TimeManagementDashboard, error) {
	start, err := s.resolveMonth(month)
	if err != nil {
		return nil, err
	}
	key := start.Format("2006-01")
	return cache.Remember(ctx, s.cache, dashboard.TimeManagementCacheKey(key), s.cacheTTL,
		func(ctx context.Context) (*dashboard.TimeManagementDashboard, error) {
			return s.buildTimeManagementDashboard(ctx, start)
		})
}

// resolveMonth parses YYYY-MM, defaults to the current month.
func (s *DashboardServiceImpl) resolveMonth(month string) (time.Time, error) {
	if validator.IsEmpty(month) {
		now := s.now().UTC()
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, ok := validator.ParseYearMonth(month)
	if !ok {
		return time.Time{}, validator.ValidationErrors{{Field: "month", Message: "month must be in YYYY-MM format"}}
	}
	return t, nil
}

func (s *DashboardServiceImpl) buildTimeManagementDashboard(ctx context.Context, start time.Time) (*dashboard.TimeManagementDashboard, error) {
	end := start.AddDate(0, 1, 0)

	var (
		records     []attendance.Record
		previous    []attendance.Record
		employees   []employee.Employee
		departments []organization.Department
	)

	g, gCtx := errgroup.WithContext(ctx)
	src := newSources("time_management")

	// 1. Records for the month
	fetch(gCtx, g, src, "records", &records, func(ctx context.Context) ([]attendance.Record, error) {
		return s.attendanceRepo.ListRecords(ctx, start, end)
	})

	// 2. Records for the previous month, used by the stories
	fetch(gCtx, g, src, "previous_records", &previous, func(ctx context.Context) ([]attendance.Record, error) {
		return s.attendanceRepo.ListRecords(ctx, start.AddDate(0, -1, 0), start)
	})

	// 3. Employees
	fetch(gCtx, g, src, "employees", &employees, s.employeeRepo.List)

	// 4. Departments
	fetch(gCtx, g, src, "departments", &departments, s.orgRepo.ListDepartments)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to build time management dashboard: %w", err)
	}

	lookup := newOrgLookup(employees, departments)

	d := &dashboard.TimeManagementDashboard{
		Month:        start.Format("2006-01"),
		GeneratedAt:  s.now().UTC().Format(time.RFC3339),
		Overview:     timeOverview(records),
		DailyTrend:   dailyTrend(records),
		ByDepartment: departmentAttendance(records, lookup),
		Weekday:      weekdayPattern(records),
		Exceptions:   timeExceptions(records),
	}
	d.DegradedSources = src.degraded()
	d.Health = timeHealth(d)
	d.Stories = timeStories(d, timeOverview(previous))
	return d, nil
}

func timeOverview(records []attendance.Record) dashboard.TimeOverview {
	var (
		o                dashboard.TimeOverview
		overtime, worked int
	)
	o.TotalRecords = len(records)
	for _, r := range records {
		switch r.Status {
		case attendance.StatusOnTime:
			o.OnTime++
		case attendance.StatusLate:
			o.Late++
		case attendance.StatusAbsent:
			o.Absent++
		case attendance.StatusLeave:
			o.OnLeave++
		}
		overtime += r.OvertimeMinutes
		if r.Status == attendance.StatusOnTime || r.Status == attendance.StatusLate {
			worked += r.WorkedMinutes
		}
	}
	o.Present = o.OnTime + o.Late
	o.PunctualityRate = utils.Rate(o.OnTime, o.Present)
	o.AbsenteeismRate = utils.Rate(o.Absent, o.TotalRecords-o.OnLeave)
	o.OvertimeHours = utils.Round1(float64(overtime) / 60)
	if o.Present > 0 {
		o.AverageWorkedHours = utils.Round1(float64(worked) / 60 / float64(o.Present))
	}
	return o
}

func dailyTrend(records []attendance.Record) []dashboard.DailyAttendancePoint {
	byDay := make(map[string]*dashboard.DailyAttendancePoint)
	for _, r := range records {
		key := r.Date.Format("2006-01-02")
		p, ok := byDay[key]
		if !ok {
			p = &dashboard.DailyAttendancePoint{Date: key}
			byDay[key] = p
		}
		switch r.Status {
		case attendance.StatusOnTime:
			p.OnTime++
		case attendance.StatusLate:
			p.Late++
		case attendance.StatusAbsent:
			p.Absent++
		}
	}

	out := make([]dashboard.DailyAttendancePoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

func departmentAttendance(records []attendance.Record, lookup orgLookup) []dashboard.DepartmentAttendance {
	type acc struct {
		row      dashboard.DepartmentAttendance
		onTime   int
		overtime int
	}
	groups := make(map[string]*acc)
	for _, r := range records {
		id, name := lookup.department(r.EmployeeID)
		a, ok := groups[id]
		if !ok {
			a = &acc{row: dashboard.DepartmentAttendance{DepartmentID: id, DepartmentName: name}}
			groups[id] = a
		}
		a.row.Records++
		a.overtime += r.OvertimeMinutes
		switch r.Status {
		case attendance.StatusOnTime:
			a.onTime++
		case attendance.StatusLate:
			a.row.Late++
		case attendance.StatusAbsent:
			a.row.Absent++
		}
	}

	out := make([]dashboard.DepartmentAttendance, 0, len(groups))
	for _, a := range groups {
		a.row.PunctualityRate = utils.Rate(a.onTime, a.onTime+a.row.Late)
		a.row.OvertimeHours = utils.Round1(float64(a.overtime) / 60)
		out = append(out, a.row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartmentName < out[j].DepartmentName })
	return out
}

func weekdayPattern(records []attendance.Record) []dashboard.WeekdayPoint {
	idx := make(map[time.Weekday]int, len(weekdayOrder))
	out := make([]dashboard.WeekdayPoint, len(weekdayOrder))
	for i, wd := range weekdayOrder {
		idx[wd] = i
		out[i].Weekday = wd.String()
	}
	for _, r := range records {
		p := &out[idx[r.Date.Weekday()]]
		p.Records++
		switch r.Status {
		case attendance.StatusLate:
			p.Late++
		case attendance.StatusAbsent:
			p.Absent++
		}
	}
	return out
}

func timeExceptions(records []attendance.Record) dashboard.TimeExceptions {
	var (
		e    dashboard.TimeExceptions
		late int
	)
	for _, r := range records {
		if r.MissedClockOut() {
			e.MissedClockOuts++
		}
		if r.Status == attendance.StatusLate {
			late++
			e.TotalLateMinutes += r.LateMinutes
		}
		if r.OvertimeMinutes > heavyOvertimeMinutes {
			e.HeavyOvertimeRecords++
		}
	}
	if late > 0 {
		e.AverageLateMinutes = utils.Round1(float64(e.TotalLateMinutes) / float64(late))
	}
	return e
}

// timeHealth scores each component 0 when it has no input data.
func timeHealth(d *dashboard.TimeManagementDashboard) dashboard.HealthScore {
	o := d.Overview

	var punctuality, attendanceScore, overtime float64
	if o.Present > 0 {
		punctuality = o.PunctualityRate
		avg := o.OvertimeHours * 60 / float64(o.Present)
		overtime = 100
		if avg > healthyOvertimeMinutes {
			overtime = 100 - (avg - healthyOvertimeMinutes)
		}
	}
	if o.TotalRecords-o.OnLeave > 0 {
		attendanceScore = 100 - o.AbsenteeismRate
	}

	return healthScore(
		component("Punctuality", punctuality, weightPunctuality),
		component("Attendance", attendanceScore, weightAttendance),
		component("Overtime Balance", overtime, weightOvertimeBalance),
	)
}

func timeStories(d *dashboard.TimeManagementDashboard, prev dashboard.TimeOverview) []dashboard.StoryCard {
	var cards []dashboard.StoryCard
	o := d.Overview

	if o.Present > 0 {
		delta := utils.Round1(o.PunctualityRate - prev.PunctualityRate)
		headline := fmt.Sprintf("Punctuality at %.1f%%", o.PunctualityRate)
		narrative := fmt.Sprintf("%d of %d check-ins were on time.", o.OnTime, o.Present)
		if prev.Present > 0 {
			headline = fmt.Sprintf("Punctuality %s %.1f points to %.1f%%", upDown(delta), math.Abs(delta), o.PunctualityRate)
			if delta == 0 {
				headline = fmt.Sprintf("Punctuality holds at %.1f%%", o.PunctualityRate)
			}
		} else {
			delta = 0
		}
		cards = append(cards, story(headline, delta, narrative,
			dashboard.StoryMetric{Label: "Punctuality rate", Value: fmt.Sprintf("%.1f%%", o.PunctualityRate)}))
	}

	var worst *dashboard.WeekdayPoint
	for i := range d.Weekday {
		if d.Weekday[i].Late > 0 && (worst == nil || d.Weekday[i].Late > worst.Late) {
			worst = &d.Weekday[i]
		}
	}
	if worst != nil {
		cards = append(cards, story(
			fmt.Sprintf("%s is the latest day of the week", worst.Weekday),
			0,
			fmt.Sprintf("%d late arrivals on %ss, averaging %.1f minutes late across the month.",
				worst.Late, worst.Weekday, d.Exceptions.AverageLateMinutes),
			dashboard.StoryMetric{Label: "Late arrivals", Value: fmt.Sprintf("%d", worst.Late)}))
	}

	if o.TotalRecords > 0 {
		delta := utils.Round1(o.OvertimeHours - prev.OvertimeHours)
		cards = append(cards, story(
			fmt.Sprintf("%.1f overtime hours logged", o.OvertimeHours),
			delta,
			fmt.Sprintf("%d days ran more than two hours over; %d clock-outs are missing.",
				d.Exceptions.HeavyOvertimeRecords, d.Exceptions.MissedClockOuts),
			dashboard.StoryMetric{Label: "Overtime hours", Value: fmt.Sprintf("%.1f", o.OvertimeHours)}))
	}

	return capStories(cards)
}
