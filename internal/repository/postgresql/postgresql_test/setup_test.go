package postgresql_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is not set.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	schema, err := os.ReadFile("testdata/schema.sql")
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	_, err = db.Exec(ctx, `TRUNCATE TABLE payroll_records, leave_applications, attendance, overtime_rules, employees CASCADE`)
	require.NoError(t, err)
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func insertEmployee(t *testing.T, db *database.DB, name, role, status, rate string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(),
		`INSERT INTO employees (id, full_name, role_name, role, hourly_rate, status) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, name, role+" staff", role, decimal.RequireFromString(rate), status,
	)
	require.NoError(t, err)
	return id
}

func insertShift(t *testing.T, db *database.DB, employeeID string, date time.Time, hours int) {
	t.Helper()
	in := date.Add(9 * time.Hour)
	out := in.Add(time.Duration(hours) * time.Hour)
	_, err := db.Exec(context.Background(),
		`INSERT INTO attendance (id, employee_id, work_date, clock_in, clock_out, status) VALUES ($1, $2, $3, $4, $5, 'Present')`,
		uuid.NewString(), employeeID, date, in, out,
	)
	require.NoError(t, err)
}

func insertLeave(t *testing.T, db *database.DB, employeeID, leaveType, status string, start, end time.Time) string {
	t.Helper()
	id := uuid.NewString()
	_, err := db.Exec(context.Background(),
		`INSERT INTO leave_applications (id, employee_id, leave_type, start_date, end_date, status) VALUES ($1, $2, $3, $4, $5, $6)`,
		id, employeeID, leaveType, start, end, status,
	)
	require.NoError(t, err)
	return id
}
