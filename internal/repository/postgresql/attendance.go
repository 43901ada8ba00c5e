package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/attendance"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/database"
)

type attendanceRepository struct {
	db database.Querier
}

func NewAttendanceRepository(db database.Querier) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// CountPunchesByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) CountPunchesByEmployee(ctx context.Context, employeeIDs []string, from, to time.Time) (map[string]int, error) {
	counts := make(map[string]int, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return counts, nil
	}

	query := `
		SELECT employee_id::text, COUNT(*)
		FROM attendance_records
		WHERE employee_id::text = ANY($1)
		  AND clock_in IS NOT NULL
		  AND date >= $2
		  AND date < $3
		GROUP BY employee_id
	`

	rows, err := a.db.Query(ctx, query, employeeIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count attendance punches: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			employeeID string
			count      int
		)
		if err := rows.Scan(&employeeID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan punch count: %w", err)
		}
		counts[employeeID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate punch counts: %w", err)
	}
	return counts, nil
}

// ListRecords implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListRecords(ctx context.Context, from, to time.Time) ([]attendance.Record, error) {
	query := `
		SELECT id::text, employee_id::text, date, clock_in, clock_out, status,
			   late_minutes, overtime_minutes, worked_minutes
		FROM attendance_records
		WHERE date >= $1
		  AND date < $2
		ORDER BY date, employee_id
	`

	rows, err := a.db.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.Status,
			&rec.LateMinutes, &rec.OvertimeMinutes, &rec.WorkedMinutes,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}
	return records, nil
}
