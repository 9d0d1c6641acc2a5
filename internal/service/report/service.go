package report

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// ReportCache stores composed reports under versioned keys.
type ReportCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, value interface{}) error
}

type ReportServiceImpl struct {
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRepository
	payrollRepo    payroll.PayrollRepository
	cache          ReportCache
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRepository,
	payrollRepo payroll.PayrollRepository,
	cache ReportCache,
) report.ReportService {
	return &ReportServiceImpl{
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		payrollRepo:    payrollRepo,
		cache:          cache,
	}
}

// ComposeMonthlyReport never fails because a section could not be read. The
// section comes back empty and its name is listed in Warnings.
func (s *ReportServiceImpl) ComposeMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}

	key := s.cacheKey(ctx, req)
	if key != "" {
		var cached report.MonthlyReport
		found, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			slog.WarnContext(ctx, "report cache read failed", "key", key, "error", err)
		} else if found {
			return cached, nil
		}
	}

	return s.composeAndStore(ctx, req, key), nil
}

func (s *ReportServiceImpl) RefreshMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}
	return s.composeAndStore(ctx, req, s.cacheKey(ctx, req)), nil
}

// composeAndStore caches only complete reports.
func (s *ReportServiceImpl) composeAndStore(ctx context.Context, req report.MonthlyReportRequest, key string) report.MonthlyReport {
	result := s.compose(ctx, req.Month, req.Year)

	if key != "" && !result.Partial() {
		if err := s.cache.SetJSON(ctx, key, result); err != nil {
			slog.WarnContext(ctx, "report cache write failed", "key", key, "error", err)
		}
	}
	return result
}

func (s *ReportServiceImpl) cacheKey(ctx context.Context, req report.MonthlyReportRequest) string {
	if s.cache == nil {
		return ""
	}
	key, err := s.cache.BuildKey(ctx, "reports", "monthly", strconv.Itoa(req.Year), strconv.Itoa(req.Month))
	if err != nil {
		slog.WarnContext(ctx, "report cache unavailable", "error", err)
		return ""
	}
	return key
}

func (s *ReportServiceImpl) compose(ctx context.Context, month, year int) report.MonthlyReport {
	first, last := MonthBounds(month, year)
	daysInMonth := last.Day()

	var (
		employees []employee.Employee
		records   []attendance.Record
		leaves    []leave.Record
		netPay    decimal.Decimal

		employeeErr, attendanceErr, leaveErr, costErr error
	)

	// Every section keeps its own error and returns nil to the group, so one
	// failing query never cancels or hides the others.
	var g errgroup.Group
	g.Go(func() error {
		employees, employeeErr = s.employeeRepo.GetActive(ctx)
		return nil
	})
	g.Go(func() error {
		records, attendanceErr = s.attendanceRepo.ListByPeriod(ctx, first, last)
		return nil
	})
	g.Go(func() error {
		leaves, leaveErr = s.leaveRepo.ListApprovedOverlapping(ctx, first, last)
		return nil
	})
	g.Go(func() error {
		netPay, costErr = s.payrollRepo.SumNetPayByPeriodStart(ctx, first, last)
		return nil
	})
	g.Wait()

	result := report.MonthlyReport{
		Month:      month,
		Year:       year,
		Attendance: []report.AttendanceWeek{},
		Costs:      []report.CostWeek{},
		Leaves:     []report.LeaveWeek{},
	}

	warn := func(section string, err error) {
		slog.WarnContext(ctx, "report section failed, returning it empty",
			"section", section,
			"month", month,
			"year", year,
			"error", err,
		)
		result.Warnings = append(result.Warnings, section)
	}

	employeeCount := 0
	if employeeErr != nil {
		warn(report.SectionEmployees, employeeErr)
	} else {
		employeeCount = len(employees)
		records = ActiveOnly(records, employees)
	}

	var weeks []report.AttendanceWeek
	if attendanceErr != nil {
		warn(report.SectionAttendance, attendanceErr)
	} else {
		weeks = BucketAttendance(records, month, year)
		result.Attendance = weeks
	}

	if leaveErr != nil {
		warn(report.SectionLeaves, leaveErr)
	} else {
		result.Leaves = BucketLeaves(leaves, month, year)
	}

	if costErr != nil {
		warn(report.SectionCosts, costErr)
		netPay = decimal.Zero
	} else {
		result.Costs = SpreadCosts(netPay, weeks, daysInMonth)
	}

	presentDays := 0
	for _, w := range result.Attendance {
		presentDays += w.Present
	}
	leaveDays := 0
	for _, w := range result.Leaves {
		leaveDays += w.Total()
	}
	takers := 0
	if leaveErr == nil {
		takers = LeaveTakers(leaves, month, year)
	}

	result.Stats = report.Stats{
		TotalEmployees:      employeeCount,
		TotalPayroll:        payroll.NewAmount(netPay.Round(2)),
		TotalLeaveDays:      leaveDays,
		AvgAttendance:       AttendanceRate(presentDays, employeeCount, daysInMonth),
		AvgLeavePerEmployee: LeavePerEmployee(leaveDays, takers),
	}
	return result
}
