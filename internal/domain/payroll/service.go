package payroll

import "context"

type PayrollService interface {
	GeneratePayroll(ctx context.Context, req GeneratePayrollRequest) ([]PayrollRecordResponse, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecordResponse, error)
	GetTotalHours(ctx context.Context, req HoursRequest) (HoursResponse, error)
	MarkPaid(ctx context.Context, id string) (PayrollRecordResponse, error)
	ListOvertimeRules(ctx context.Context) ([]OvertimeRuleResponse, error)
}
