package memory

import (
	"sync"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/performance"
)

// Dataset is the in-memory read model shared by the memory repositories.
type Dataset struct {
	mu sync.RWMutex

	Employees   []employee.Employee
	AuditLog    []employee.AuditEntry
	Departments []organization.Department
	Positions   []organization.Position
	Assignments []organization.PositionAssignment
	Runs        []payroll.Run
	Payslips    []payroll.Payslip
	Attendance  []attendance.Record
	Appraisals  []performance.Appraisal
	Requests    []leave.Request
	Balances    []leave.Balance
}

// Update applies fn under the write lock. Used by seeding and tests.
func (d *Dataset) Update(fn func(d *Dataset)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d)
}

func (d *Dataset) read(fn func(d *Dataset)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(d)
}
