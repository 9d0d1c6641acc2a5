package payroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== FAKES ==========

var errTxAborted = errors.New("current transaction is aborted")

// passthroughTx runs fn directly. Like Postgres, a statement that fails while
// the transaction is open poisons every later statement in it.
type passthroughTx struct {
	calls   int
	active  bool
	aborted bool
}

func (p *passthroughTx) WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	p.calls++
	p.active, p.aborted = true, false
	defer func() { p.active = false }()
	return fn(ctx)
}

func (p *passthroughTx) fail(err error) error {
	if err != nil && p != nil && p.active {
		p.aborted = true
	}
	return err
}

func (p *passthroughTx) check() error {
	if p != nil && p.active && p.aborted {
		return errTxAborted
	}
	return nil
}

type fakeCache struct{ bumps int }

func (f *fakeCache) Bump(ctx context.Context) error {
	f.bumps++
	return nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetActive(ctx context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.IsActive() {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []attendance.Record
}

func (f *fakeAttendanceRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, r := range f.records {
		if !r.WorkDate.Before(start) && !r.WorkDate.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByEmployeePeriod(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Record, error) {
	all, _ := f.ListByPeriod(ctx, start, end)
	var out []attendance.Record
	for _, r := range all {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type periodKey struct {
	employeeID string
	start, end time.Time
}

type fakePayrollRepo struct {
	tx        *passthroughTx
	byPeriod  map[periodKey]payroll.PayrollRecord
	byID      map[string]payroll.PayrollRecord
	rules     []payroll.OvertimeRule
	rulesErr  error
	createErr error
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		byPeriod: make(map[periodKey]payroll.PayrollRecord),
		byID:     make(map[string]payroll.PayrollRecord),
	}
}

func (f *fakePayrollRepo) CreatePayrollRecord(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, bool, error) {
	if err := f.tx.check(); err != nil {
		return payroll.PayrollRecord{}, false, err
	}
	if f.createErr != nil {
		return payroll.PayrollRecord{}, false, f.createErr
	}
	key := periodKey{rec.EmployeeID, rec.PeriodStart, rec.PeriodEnd}
	if _, exists := f.byPeriod[key]; exists {
		return payroll.PayrollRecord{}, false, nil
	}
	rec.CreatedAt = time.Now()
	f.byPeriod[key] = rec
	f.byID[rec.ID] = rec
	return rec, true, nil
}

func (f *fakePayrollRepo) GetPayrollRecordByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	rec, ok := f.byID[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollRecordNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, rec := range f.byID {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakePayrollRepo) MarkPaid(ctx context.Context, id string, paidAt time.Time) error {
	rec, ok := f.byID[id]
	if !ok || rec.Status == payroll.PayrollStatusPaid {
		return payroll.ErrPayrollRecordAlreadyPaid
	}
	rec.Status = payroll.PayrollStatusPaid
	rec.PaidAt = &paidAt
	f.byID[id] = rec
	return nil
}

func (f *fakePayrollRepo) SumNetPayByPeriodStart(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, rec := range f.byID {
		if !rec.PeriodStart.Before(from) && !rec.PeriodStart.After(to) {
			total = total.Add(rec.NetPay)
		}
	}
	return total, nil
}

func (f *fakePayrollRepo) ListOvertimeRules(ctx context.Context) ([]payroll.OvertimeRule, error) {
	return f.rules, f.tx.fail(f.rulesErr)
}

// ========== HELPERS ==========

const annaID = "5b0f3c1e-8a7d-4c2b-9e61-00000000a11a"

type fixture struct {
	svc         *PayrollServiceImpl
	tx          *passthroughTx
	cache       *fakeCache
	payrolls    *fakePayrollRepo
	employees   *fakeEmployeeRepo
	attendances *fakeAttendanceRepo
}

func newFixture() *fixture {
	f := &fixture{
		tx:          &passthroughTx{},
		cache:       &fakeCache{},
		payrolls:    newFakePayrollRepo(),
		employees:   &fakeEmployeeRepo{},
		attendances: &fakeAttendanceRepo{},
	}
	f.payrolls.tx = f.tx
	f.svc = NewPayrollService(f.tx, f.payrolls, f.employees, f.attendances, f.cache).(*PayrollServiceImpl)
	return f
}

func activeEmployee(id string, rate int64) employee.Employee {
	return employee.Employee{
		ID:         id,
		FullName:   "Employee " + id,
		RoleName:   "Staff",
		HourlyRate: decimal.NewFromInt(rate),
		Status:     employee.EmploymentStatusActive,
	}
}

// eightHourDays adds n consecutive 09:00-17:00 shifts starting on December 1st 2025.
func eightHourDays(employeeID string, n int) []attendance.Record {
	var out []attendance.Record
	for day := 1; day <= n; day++ {
		out = append(out, shift(employeeID, day, 9, 0, 17, 0))
	}
	return out
}

func decemberRequest() payroll.GeneratePayrollRequest {
	return payroll.GeneratePayrollRequest{StartDate: "2025-12-01", EndDate: "2025-12-31"}
}

// ========== TESTS ==========

func TestGeneratePayroll_DecemberScenario(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 15)}
	f.attendances.records = eightHourDays("e1", 20)

	result, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	require.Len(t, result, 1)

	rec := result[0]
	assert.Equal(t, "e1", rec.EmployeeID)
	assert.Equal(t, "Employee e1", rec.Name)
	assert.Equal(t, "160.00", rec.TotalHours.String())
	assert.Equal(t, "2400.00", rec.GrossPay.String())
	assert.Equal(t, "0.00", rec.Deductions.String())
	assert.Equal(t, "2400.00", rec.NetPay.String())
	assert.Equal(t, string(payroll.PayrollStatusGenerated), rec.Status)
	payrollID, err := uuid.Parse(rec.PayrollID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), payrollID.Version())
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, 1, f.cache.bumps)
}

func TestGeneratePayroll_SkipsZeroHourEmployees(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{
		activeEmployee("worked", 10),
		activeEmployee("idle", 10),
		activeEmployee("incomplete", 10),
	}
	f.attendances.records = append(eightHourDays("worked", 1),
		attendance.Record{EmployeeID: "incomplete", WorkDate: time.Date(2025, 12, 2, 0, 0, 0, 0, time.UTC), ClockIn: clock(2, 9, 0)},
	)

	result, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "worked", result[0].EmployeeID)
	assert.Len(t, f.payrolls.byID, 1)
}

func TestGeneratePayroll_IgnoresInactiveEmployees(t *testing.T) {
	f := newFixture()
	inactive := activeEmployee("gone", 10)
	inactive.Status = employee.EmploymentStatusInactive
	f.employees.employees = []employee.Employee{inactive}
	f.attendances.records = eightHourDays("gone", 3)

	result, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	assert.Empty(t, result)
	assert.NotNil(t, result)
	assert.Equal(t, 0, f.cache.bumps)
}

func TestGeneratePayroll_SecondCallCreatesNothing(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 15), activeEmployee("e2", 20)}
	f.attendances.records = append(eightHourDays("e1", 5), eightHourDays("e2", 2)...)

	first, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, f.payrolls.byID, 2)
	assert.Equal(t, 1, f.cache.bumps)
}

func TestGeneratePayroll_DifferentRangeCreatesNewRecords(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 15)}
	f.attendances.records = eightHourDays("e1", 20)

	_, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)

	firstHalf, err := f.svc.GeneratePayroll(context.Background(), payroll.GeneratePayrollRequest{StartDate: "2025-12-01", EndDate: "2025-12-15"})
	require.NoError(t, err)
	require.Len(t, firstHalf, 1)
	assert.Equal(t, "120.00", firstHalf[0].TotalHours.String())
	assert.Len(t, f.payrolls.byID, 2)
}

func TestGeneratePayroll_ValidationError(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GeneratePayroll(context.Background(), payroll.GeneratePayrollRequest{StartDate: "2025-12-31", EndDate: "2025-12-01"})

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, 0, f.tx.calls)
}

func TestGeneratePayroll_PersistenceErrorAborts(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 15)}
	f.attendances.records = eightHourDays("e1", 1)
	boom := errors.New("connection reset")
	f.payrolls.createErr = boom

	_, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, f.cache.bumps)
}

func TestGeneratePayroll_OvertimeRulesNotApplied(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 10)}
	f.attendances.records = eightHourDays("e1", 25)
	f.payrolls.rules = []payroll.OvertimeRule{
		{ID: "r1", Name: "Weekly overtime", Factor: decimal.RequireFromString("1.5"), RequiredHoursTrigger: decimal.NewFromInt(40)},
	}

	result, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "2000.00", result[0].GrossPay.String())
}

func TestGeneratePayroll_OvertimeRuleFailureIsTolerated(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 10)}
	f.attendances.records = eightHourDays("e1", 1)
	f.payrolls.rulesErr = errors.New("relation overtime_rules does not exist")

	result, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	assert.Len(t, result, 1)
	assert.False(t, f.tx.aborted)
}

func TestGetTotalHours(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee(annaID, 10)}
	f.attendances.records = []attendance.Record{
		shift(annaID, 3, 9, 0, 17, 30),
		shift(annaID, 20, 9, 0, 17, 0),
	}

	resp, err := f.svc.GetTotalHours(context.Background(), payroll.HoursRequest{EmployeeID: annaID, StartDate: "2025-12-01", EndDate: "2025-12-05"})
	require.NoError(t, err)
	assert.Equal(t, 510, resp.TotalMinutes)
	assert.Equal(t, "8.50", resp.TotalHours.String())

	empty, err := f.svc.GetTotalHours(context.Background(), payroll.HoursRequest{EmployeeID: annaID, StartDate: "2026-01-01", EndDate: "2026-01-31"})
	require.NoError(t, err)
	assert.Equal(t, 0, empty.TotalMinutes)
	assert.Equal(t, "0.00", empty.TotalHours.String())
}

func TestGetTotalHours_UnknownEmployee(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetTotalHours(context.Background(), payroll.HoursRequest{EmployeeID: "6f1d2c3b-4a59-4e8f-b7a6-9d0c1e2f3a4b", StartDate: "2025-12-01", EndDate: "2025-12-05"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestGetTotalHours_MalformedEmployeeID(t *testing.T) {
	f := newFixture()

	_, err := f.svc.GetTotalHours(context.Background(), payroll.HoursRequest{EmployeeID: "x", StartDate: "2025-12-01", EndDate: "2025-12-05"})
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, "must be a valid UUID", errs.ToMap()["employee_id"])
}

func TestMarkPaid(t *testing.T) {
	f := newFixture()
	f.employees.employees = []employee.Employee{activeEmployee("e1", 10)}
	f.attendances.records = eightHourDays("e1", 1)
	fixed := time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return fixed }

	generated, err := f.svc.GeneratePayroll(context.Background(), decemberRequest())
	require.NoError(t, err)
	require.Len(t, generated, 1)

	paid, err := f.svc.MarkPaid(context.Background(), generated[0].PayrollID)
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayrollStatusPaid), paid.Status)
	assert.Equal(t, fixed, *f.payrolls.byID[generated[0].PayrollID].PaidAt)

	_, err = f.svc.MarkPaid(context.Background(), generated[0].PayrollID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordAlreadyPaid)

	_, err = f.svc.MarkPaid(context.Background(), "0193f0a1-2b3c-7d4e-8f50-0000000000ff")
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordNotFound)

	_, err = f.svc.MarkPaid(context.Background(), "abc")
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.Contains(t, errs.ToMap(), "id")
}

func TestListOvertimeRules(t *testing.T) {
	f := newFixture()
	f.payrolls.rules = []payroll.OvertimeRule{
		{ID: "r1", Name: "Daily", Factor: decimal.RequireFromString("1.25"), RequiredHoursTrigger: decimal.NewFromInt(8)},
	}

	rules, err := f.svc.ListOvertimeRules(context.Background())
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "1.25", rules[0].Factor.String())
	assert.Equal(t, "8.00", rules[0].RequiredHoursTrigger.String())
}
