package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

// ListByPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_date, clock_in, clock_out, status
		FROM attendance
		WHERE work_date BETWEEN $1 AND $2
		ORDER BY work_date, employee_id
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, database.Wrap("list attendance", err)
	}
	return collectAttendance(rows)
}

// ListByEmployeePeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, work_date, clock_in, clock_out, status
		FROM attendance
		WHERE employee_id = $1 AND work_date BETWEEN $2 AND $3
		ORDER BY work_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, database.Wrap("list employee attendance", err)
	}
	return collectAttendance(rows)
}

func collectAttendance(rows pgx.Rows) ([]attendance.Record, error) {
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		var status string
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.ClockIn, &rec.ClockOut, &status); err != nil {
			return nil, database.Wrap("scan attendance", err)
		}
		rec.Status = attendance.Status(status)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate attendance", err)
	}
	return records, nil
}
