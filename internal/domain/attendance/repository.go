package attendance

import (
	"context"
	"time"
)

// AttendanceRepository reads the time ledger. Date bounds are inclusive.
type AttendanceRepository interface {
	ListByPeriod(ctx context.Context, start, end time.Time) ([]Record, error)
	ListByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) ([]Record, error)
}
