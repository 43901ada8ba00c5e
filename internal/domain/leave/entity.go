package leave

import "time"

type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusApproved  RequestStatus = "approved"
	RequestStatusRejected  RequestStatus = "rejected"
	RequestStatusCancelled RequestStatus = "cancelled"
)

type Request struct {
	ID            string
	EmployeeID    string
	LeaveTypeID   string
	LeaveTypeName string
	StartDate     time.Time
	EndDate       time.Time
	Days          float64
	Status        RequestStatus
	CreatedAt     time.Time
	DecidedAt     *time.Time
}

// Covers reports whether the leave spans the given day.
func (r Request) Covers(day time.Time) bool {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	start := time.Date(r.StartDate.Year(), r.StartDate.Month(), r.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(r.EndDate.Year(), r.EndDate.Month(), r.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(start) && !d.After(end)
}

// Balance is one employee's standing for a leave type in a year, in days.
type Balance struct {
	EmployeeID    string
	LeaveTypeID   string
	LeaveTypeName string
	Year          int
	Entitlement   float64
	Accrued       float64
	Taken         float64
	Remaining     float64
}
