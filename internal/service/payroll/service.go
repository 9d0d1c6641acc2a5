package payroll

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/google/uuid"
)

// Transactor runs fn inside one database transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(txCtx context.Context) error) error
}

// CacheInvalidator drops cached reports after payroll data changes.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

type PayrollServiceImpl struct {
	tx             Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	cache          CacheInvalidator
	now            func() time.Time
}

func NewPayrollService(
	tx Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	cache CacheInvalidator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		cache:          cache,
		now:            time.Now,
	}
}

// ========== PAYROLL GENERATION ==========

func (s *PayrollServiceImpl) GeneratePayroll(ctx context.Context, req payroll.GeneratePayrollRequest) ([]payroll.PayrollRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	periodStart, periodEnd := req.Period()

	// Read on the pool: a failed statement inside the transaction would abort it.
	s.logIgnoredOvertimeRules(ctx)

	result := []payroll.PayrollRecordResponse{}
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		employees, err := s.employeeRepo.GetActive(txCtx)
		if err != nil {
			return fmt.Errorf("failed to get employees: %w", err)
		}

		records, err := s.attendanceRepo.ListByPeriod(txCtx, periodStart, periodEnd)
		if err != nil {
			return fmt.Errorf("failed to get attendance: %w", err)
		}
		minutesByEmployee := MinutesByEmployee(records)

		for _, emp := range employees {
			hours := MinutesToHours(minutesByEmployee[emp.ID])
			if !Qualifies(hours) {
				slog.DebugContext(txCtx, "skipping employee without worked hours", "employee_id", emp.ID)
				continue
			}

			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("failed to generate payroll id: %w", err)
			}

			pay := CalculatePay(hours, emp.HourlyRate)
			record := payroll.PayrollRecord{
				ID:          id.String(),
				EmployeeID:  emp.ID,
				PeriodStart: periodStart,
				PeriodEnd:   periodEnd,
				TotalHours:  pay.TotalHours,
				GrossPay:    pay.GrossPay,
				Deductions:  pay.Deductions,
				NetPay:      pay.NetPay,
				Status:      payroll.PayrollStatusGenerated,
			}

			stored, created, err := s.payrollRepo.CreatePayrollRecord(txCtx, record)
			if err != nil {
				return fmt.Errorf("failed to create payroll record for employee %s: %w", emp.ID, err)
			}
			if !created {
				slog.InfoContext(txCtx, "payroll record already exists for period, skipping",
					"employee_id", emp.ID,
					"period_start", req.StartDate,
					"period_end", req.EndDate,
				)
				continue
			}

			stored.EmployeeName = &emp.FullName
			stored.RoleName = &emp.RoleName
			result = append(result, payroll.NewPayrollRecordResponse(stored))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result) > 0 {
		s.invalidateReports(ctx)
	}

	slog.InfoContext(ctx, "payroll generated",
		"period_start", req.StartDate,
		"period_end", req.EndDate,
		"created", len(result),
	)
	return result, nil
}

// logIgnoredOvertimeRules reads overtime configuration only to surface that it is not applied.
func (s *PayrollServiceImpl) logIgnoredOvertimeRules(ctx context.Context) {
	rules, err := s.payrollRepo.ListOvertimeRules(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to load overtime rules", "error", err)
		return
	}
	if len(rules) > 0 {
		slog.WarnContext(ctx, "overtime rules are configured but not applied to gross pay", "rules", len(rules))
	}
}

func (s *PayrollServiceImpl) invalidateReports(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil {
		slog.WarnContext(ctx, "failed to invalidate report cache", "error", err)
	}
}

// ========== PAYROLL RECORDS ==========

func (s *PayrollServiceImpl) ListPayrollRecords(ctx context.Context, filter payroll.PayrollFilter) ([]payroll.PayrollRecordResponse, error) {
	records, err := s.payrollRepo.ListPayrollRecords(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrollRecordResponse, 0, len(records))
	for _, rec := range records {
		result = append(result, payroll.NewPayrollRecordResponse(rec))
	}
	return result, nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string) (payroll.PayrollRecordResponse, error) {
	if err := validator.Var("id", id, "required,uuid"); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetPayrollRecordByID(ctx, id)
	if err != nil {
		return payroll.PayrollRecordResponse{}, err
	}
	if rec.Status == payroll.PayrollStatusPaid {
		return payroll.PayrollRecordResponse{}, payroll.ErrPayrollRecordAlreadyPaid
	}

	paidAt := s.now()
	if err := s.payrollRepo.MarkPaid(ctx, id, paidAt); err != nil {
		return payroll.PayrollRecordResponse{}, err
	}

	rec.Status = payroll.PayrollStatusPaid
	rec.PaidAt = &paidAt
	return payroll.NewPayrollRecordResponse(rec), nil
}

// ========== HOURS ==========

func (s *PayrollServiceImpl) GetTotalHours(ctx context.Context, req payroll.HoursRequest) (payroll.HoursResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.HoursResponse{}, err
	}
	start, _ := time.Parse(time.DateOnly, req.StartDate)
	end, _ := time.Parse(time.DateOnly, req.EndDate)

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return payroll.HoursResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeePeriod(ctx, req.EmployeeID, start, end)
	if err != nil {
		return payroll.HoursResponse{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	minutes := AggregateWorkedMinutes(records)
	return payroll.HoursResponse{
		EmployeeID:   req.EmployeeID,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		TotalMinutes: minutes,
		TotalHours:   payroll.NewAmount(MinutesToHours(minutes)),
	}, nil
}

// ========== OVERTIME RULES ==========

func (s *PayrollServiceImpl) ListOvertimeRules(ctx context.Context) ([]payroll.OvertimeRuleResponse, error) {
	rules, err := s.payrollRepo.ListOvertimeRules(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.OvertimeRuleResponse, 0, len(rules))
	for _, r := range rules {
		result = append(result, payroll.OvertimeRuleResponse{
			ID:                   r.ID,
			Name:                 r.Name,
			Factor:               payroll.NewAmount(r.Factor),
			RequiredHoursTrigger: payroll.NewAmount(r.RequiredHoursTrigger),
		})
	}
	return result, nil
}
