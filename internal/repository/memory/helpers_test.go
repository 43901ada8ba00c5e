package memory

import (
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
)

func attendanceRecord(id, employeeID string, day time.Time, clockIn *time.Time) attendance.Record {
	return attendance.Record{ID: id, EmployeeID: employeeID, Date: day, ClockIn: clockIn, Status: attendance.StatusOnTime}
}
