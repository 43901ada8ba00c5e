package attendance

import "time"

type Status string

const (
	StatusOnTime Status = "on_time"
	StatusLate   Status = "late"
	StatusAbsent Status = "absent"
	StatusLeave  Status = "leave"
)

type Record struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	ClockIn         *time.Time
	ClockOut        *time.Time
	Status          Status
	LateMinutes     int
	OvertimeMinutes int
	WorkedMinutes   int
}

// IsPunch reports whether the record carries an actual clock-in.
func (r Record) IsPunch() bool {
	return r.ClockIn != nil
}

// MissedClockOut reports a clock-in without a matching clock-out.
func (r Record) MissedClockOut() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}
