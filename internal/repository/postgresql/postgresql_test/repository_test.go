package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/repository/postgresql"
	leaveService "github.com/cmlabs-hris/hris-payroll-go/internal/service/leave"
	payrollService "github.com/cmlabs-hris/hris-payroll-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/hris-payroll-go/internal/service/report"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayrollGeneration_EndToEnd(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	worker := insertEmployee(t, db, "Ana", "Employee", "active", "15.00")
	insertEmployee(t, db, "Budi", "Employee", "active", "20.00")
	gone := insertEmployee(t, db, "Citra", "Employee", "inactive", "30.00")
	for d := 1; d <= 20; d++ {
		insertShift(t, db, worker, day(2025, 12, d), 8)
	}
	insertShift(t, db, gone, day(2025, 12, 2), 8)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	svc := payrollService.NewPayrollService(postgresql.NewTransactor(db), payrollRepo, employeeRepo, attendanceRepo, nil)

	req := payroll.GeneratePayrollRequest{StartDate: "2025-12-01", EndDate: "2025-12-31"}
	created, err := svc.GeneratePayroll(ctx, req)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, worker, created[0].EmployeeID)
	assert.Equal(t, "160.00", created[0].TotalHours.String())
	assert.Equal(t, "2400.00", created[0].GrossPay.String())
	assert.Equal(t, "2400.00", created[0].NetPay.String())

	again, err := svc.GeneratePayroll(ctx, req)
	require.NoError(t, err)
	assert.Empty(t, again)

	listed, err := svc.ListPayrollRecords(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Ana", listed[0].Name)
	assert.Equal(t, "Employee staff", listed[0].RoleName)

	paid, err := svc.MarkPaid(ctx, listed[0].PayrollID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrollStatusPaid), paid.Status)
	_, err = svc.MarkPaid(ctx, listed[0].PayrollID)
	assert.True(t, errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid))

	total, err := payrollRepo.SumNetPayByPeriodStart(ctx, day(2025, 12, 1), day(2025, 12, 31))
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(2400)), total.String())
}

func TestPayrollGeneration_WithoutOvertimeRulesTable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	worker := insertEmployee(t, db, "Ana", "Employee", "active", "15.00")
	insertShift(t, db, worker, day(2025, 12, 1), 8)
	_, err := db.Exec(ctx, `DROP TABLE overtime_rules`)
	require.NoError(t, err)

	svc := payrollService.NewPayrollService(
		postgresql.NewTransactor(db),
		postgresql.NewPayrollRepository(db),
		postgresql.NewEmployeeRepository(db),
		postgresql.NewAttendanceRepository(db),
		nil,
	)
	created, err := svc.GeneratePayroll(ctx, payroll.GeneratePayrollRequest{StartDate: "2025-12-01", EndDate: "2025-12-31"})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "120.00", created[0].GrossPay.String())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	emp := insertEmployee(t, db, "Ana", "Employee", "active", "10.00")
	repo := postgresql.NewPayrollRepository(db)
	boom := errors.New("boom")

	err := postgresql.NewTransactor(db).WithinTransaction(ctx, func(txCtx context.Context) error {
		_, created, err := repo.CreatePayrollRecord(txCtx, payroll.PayrollRecord{
			ID:          uuid.NewString(),
			EmployeeID:  emp,
			PeriodStart: day(2025, 11, 1),
			PeriodEnd:   day(2025, 11, 30),
			Status:      payroll.PayrollStatusGenerated,
		})
		require.NoError(t, err)
		require.True(t, created)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	records, err := repo.ListPayrollRecords(ctx, payroll.PayrollFilter{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLeaveRepository_ReviewAndOverlap(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	manager := insertEmployee(t, db, "Maya", "Manager", "active", "25.00")
	staff := insertEmployee(t, db, "Eko", "Employee", "active", "12.00")
	pending := insertLeave(t, db, staff, "Annual", "Pending", day(2025, 12, 5), day(2025, 12, 9))
	insertLeave(t, db, staff, "Sick", "Approved", day(2025, 11, 28), day(2025, 12, 2))
	insertLeave(t, db, staff, "Unpaid", "Approved", day(2026, 1, 5), day(2026, 1, 6))

	leaveRepo := postgresql.NewLeaveRepository(db)
	svc := leaveService.NewLeaveService(leaveRepo, postgresql.NewEmployeeRepository(db), nil)

	got, err := svc.Review(ctx, user.Requester{EmployeeID: manager, Role: user.RoleManager}, leave.ReviewLeaveRequest{ID: pending, Approve: boolPtr(true)})
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), got.Status)

	_, err = svc.Review(ctx, user.Requester{EmployeeID: manager, Role: user.RoleManager}, leave.ReviewLeaveRequest{ID: pending, Approve: boolPtr(false)})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyReviewed)

	overlapping, err := leaveRepo.ListApprovedOverlapping(ctx, day(2025, 12, 1), day(2025, 12, 31))
	require.NoError(t, err)
	assert.Len(t, overlapping, 2)
}

func TestMonthlyReport_FromDatabase(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	emp := insertEmployee(t, db, "Ana", "Employee", "active", "10.00")
	insertShift(t, db, emp, day(2025, 12, 1), 8)
	insertShift(t, db, emp, day(2025, 12, 8), 8)
	insertLeave(t, db, emp, "Annual", "Approved", day(2025, 12, 5), day(2025, 12, 9))
	gone := insertEmployee(t, db, "Budi", "Employee", "inactive", "10.00")
	insertShift(t, db, gone, day(2025, 12, 2), 8)

	svc := reportService.NewReportService(
		postgresql.NewEmployeeRepository(db),
		postgresql.NewAttendanceRepository(db),
		postgresql.NewLeaveRepository(db),
		postgresql.NewPayrollRepository(db),
		nil,
	)

	got, err := svc.ComposeMonthlyReport(ctx, report.MonthlyReportRequest{Month: 12, Year: 2025})
	require.NoError(t, err)
	assert.Empty(t, got.Warnings)
	assert.Equal(t, 1, got.Stats.TotalEmployees)
	assert.Equal(t, 3, got.Leaves[0].Annual)
	assert.Equal(t, 2, got.Leaves[1].Annual)
	assert.Equal(t, 1, got.Attendance[0].Present)
	assert.Equal(t, 1, got.Attendance[1].Present)
	assert.Equal(t, "6.5%", got.Stats.AvgAttendance)
	assert.Equal(t, "0.00", got.Stats.TotalPayroll.String())
}

func boolPtr(v bool) *bool { return &v }
