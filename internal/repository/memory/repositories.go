package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
)

type employeeRepository struct{ ds *Dataset }

func NewEmployeeRepository(ds *Dataset) employee.EmployeeRepository {
	return &employeeRepository{ds: ds}
}

func (r *employeeRepository) GetByID(_ context.Context, id string) (employee.Employee, error) {
	var (
		out   employee.Employee
		found bool
	)
	r.ds.read(func(d *Dataset) {
		for _, e := range d.Employees {
			if e.ID == id {
				out, found = e, true
				return
			}
		}
	})
	if !found {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return out, nil
}

func (r *employeeRepository) List(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	r.ds.read(func(d *Dataset) {
		out = append([]employee.Employee(nil), d.Employees...)
	})
	return out, nil
}

func (r *employeeRepository) ListTerminationEvents(_ context.Context, since time.Time) ([]employee.TerminationEvent, error) {
	var out []employee.TerminationEvent
	r.ds.read(func(d *Dataset) {
		for _, entry := range d.AuditLog {
			ev, ok := employee.TerminationFromAudit(entry)
			if !ok || ev.EffectiveDate.Before(since) {
				continue
			}
			out = append(out, ev)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.Before(out[j].EffectiveDate) })
	return out, nil
}

type organizationRepository struct{ ds *Dataset }

func NewOrganizationRepository(ds *Dataset) organization.OrganizationRepository {
	return &organizationRepository{ds: ds}
}

func (r *organizationRepository) ListDepartments(_ context.Context) ([]organization.Department, error) {
	var out []organization.Department
	r.ds.read(func(d *Dataset) {
		out = append([]organization.Department(nil), d.Departments...)
	})
	return out, nil
}

func (r *organizationRepository) GetDepartmentByID(_ context.Context, id string) (organization.Department, error) {
	var (
		out   organization.Department
		found bool
	)
	r.ds.read(func(d *Dataset) {
		for _, dept := range d.Departments {
			if dept.ID == id {
				out, found = dept, true
				return
			}
		}
	})
	if !found {
		return organization.Department{}, organization.ErrDepartmentNotFound
	}
	return out, nil
}

func (r *organizationRepository) ListPositions(_ context.Context) ([]organization.Position, error) {
	var out []organization.Position
	r.ds.read(func(d *Dataset) {
		out = append([]organization.Position(nil), d.Positions...)
	})
	return out, nil
}

func (r *organizationRepository) GetPositionByID(_ context.Context, id string) (organization.Position, error) {
	var (
		out   organization.Position
		found bool
	)
	r.ds.read(func(d *Dataset) {
		for _, p := range d.Positions {
			if p.ID == id {
				out, found = p, true
				return
			}
		}
	})
	if !found {
		return organization.Position{}, organization.ErrPositionNotFound
	}
	return out, nil
}

func (r *organizationRepository) ListActiveAssignments(_ context.Context, asOf time.Time) ([]organization.PositionAssignment, error) {
	var out []organization.PositionAssignment
	r.ds.read(func(d *Dataset) {
		for _, a := range d.Assignments {
			if a.IsOpen(asOf) {
				out = append(out, a)
			}
		}
	})
	return out, nil
}

type payrollRepository struct{ ds *Dataset }

func NewPayrollRepository(ds *Dataset) payroll.PayrollRepository {
	return &payrollRepository{ds: ds}
}

func (r *payrollRepository) ListApprovedRuns(_ context.Context, entityID *string, limit int) ([]payroll.Run, error) {
	var out []payroll.Run
	r.ds.read(func(d *Dataset) {
		for _, run := range d.Runs {
			if run.Status != payroll.RunStatusApproved {
				continue
			}
			if entityID != nil && (run.EntityID == nil || *run.EntityID != *entityID) {
				continue
			}
			out = append(out, run)
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].PeriodEnd.After(out[j].PeriodEnd) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *payrollRepository) GetRunByID(_ context.Context, id string) (payroll.Run, error) {
	var (
		out   payroll.Run
		found bool
	)
	r.ds.read(func(d *Dataset) {
		for _, run := range d.Runs {
			if run.ID == id {
				out, found = run, true
				return
			}
		}
	})
	if !found {
		return payroll.Run{}, payroll.ErrRunNotFound
	}
	return out, nil
}

func (r *payrollRepository) ListPayslipsByRun(_ context.Context, runID string) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	r.ds.read(func(d *Dataset) {
		for _, p := range d.Payslips {
			if p.RunID == runID {
				out = append(out, p)
			}
		}
	})
	return out, nil
}

type attendanceRepository struct{ ds *Dataset }

func NewAttendanceRepository(ds *Dataset) attendance.AttendanceRepository {
	return &attendanceRepository{ds: ds}
}

func (r *attendanceRepository) CountPunchesByEmployee(_ context.Context, employeeIDs []string, from, to time.Time) (map[string]int, error) {
	wanted := make(map[string]struct{}, len(employeeIDs))
	for _, id := range employeeIDs {
		wanted[id] = struct{}{}
	}

	counts := make(map[string]int)
	r.ds.read(func(d *Dataset) {
		for _, rec := range d.Attendance {
			if _, ok := wanted[rec.EmployeeID]; !ok || !rec.IsPunch() {
				continue
			}
			if rec.Date.Before(from) || !rec.Date.Before(to) {
				continue
			}
			counts[rec.EmployeeID]++
		}
	})
	return counts, nil
}

func (r *attendanceRepository) ListRecords(_ context.Context, from, to time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	r.ds.read(func(d *Dataset) {
		for _, rec := range d.Attendance {
			if rec.Date.Before(from) || !rec.Date.Before(to) {
				continue
			}
			out = append(out, rec)
		}
	})
	return out, nil
}

type appraisalRepository struct{ ds *Dataset }

func NewAppraisalRepository(ds *Dataset) performance.AppraisalRepository {
	return &appraisalRepository{ds: ds}
}

func (r *appraisalRepository) ListPublished(_ context.Context, since time.Time) ([]performance.Appraisal, error) {
	var out []performance.Appraisal
	r.ds.read(func(d *Dataset) {
		for _, a := range d.Appraisals {
			if a.Status == performance.StatusPublished && !a.PublishedAt.Before(since) {
				out = append(out, a)
			}
		}
	})
	return out, nil
}

type leaveRepository struct{ ds *Dataset }

func NewLeaveRepository(ds *Dataset) leave.LeaveRepository {
	return &leaveRepository{ds: ds}
}

func (r *leaveRepository) ListRequests(_ context.Context, from, to time.Time) ([]leave.Request, error) {
	var out []leave.Request
	r.ds.read(func(d *Dataset) {
		for _, req := range d.Requests {
			if req.StartDate.Before(from) || !req.StartDate.Before(to) {
				continue
			}
			out = append(out, req)
		}
	})
	return out, nil
}

func (r *leaveRepository) ListBalances(_ context.Context, year int) ([]leave.Balance, error) {
	var out []leave.Balance
	r.ds.read(func(d *Dataset) {
		for _, b := range d.Balances {
			if b.Year == year {
				out = append(out, b)
			}
		}
	})
	return out, nil
}
