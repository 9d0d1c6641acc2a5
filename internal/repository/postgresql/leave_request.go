package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepositoryImpl{db: db}
}

const leaveColumns = `id, employee_id, leave_type, start_date, end_date, status, reviewer_id, reviewed_at`

func scanLeave(row pgx.Row) (leave.Record, error) {
	var rec leave.Record
	var leaveType, status string
	err := row.Scan(&rec.ID, &rec.EmployeeID, &leaveType, &rec.StartDate, &rec.EndDate, &status, &rec.ReviewerID, &rec.ReviewedAt)
	if err != nil {
		return leave.Record{}, err
	}
	rec.LeaveType = leave.Type(leaveType)
	rec.Status = leave.Status(status)
	return rec, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) GetByID(ctx context.Context, id string) (leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanLeave(q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_applications WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.Record{}, leave.ErrLeaveRequestNotFound
		}
		return leave.Record{}, database.Wrap("get leave request", err)
	}
	return rec, nil
}

// ListApprovedOverlapping implements leave.LeaveRepository.
func (r *leaveRepositoryImpl) ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]leave.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leave_applications
		WHERE status = $1 AND start_date <= $3 AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, leave.StatusApproved, from, to)
	if err != nil {
		return nil, database.Wrap("list approved leave", err)
	}
	defer rows.Close()

	var records []leave.Record
	for rows.Next() {
		rec, err := scanLeave(rows)
		if err != nil {
			return nil, database.Wrap("scan leave request", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, database.Wrap("iterate leave requests", err)
	}
	return records, nil
}

// UpdateReview implements leave.LeaveRepository.
// Only a pending row is updated so two concurrent reviews cannot both succeed.
func (r *leaveRepositoryImpl) UpdateReview(ctx context.Context, rec leave.Record) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_applications
		SET status = $2, reviewer_id = $3, reviewed_at = $4
		WHERE id = $1 AND status = $5
	`

	tag, err := q.Exec(ctx, query, rec.ID, rec.Status, rec.ReviewerID, rec.ReviewedAt, leave.StatusPending)
	if err != nil {
		return database.Wrap("update leave review", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveAlreadyReviewed
	}
	return nil
}
