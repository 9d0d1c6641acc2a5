package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type PayrollRepository interface {
	// CreatePayrollRecord inserts rec unless a record already exists for the same
	// employee and exact period. created is false when the insert was skipped.
	CreatePayrollRecord(ctx context.Context, rec PayrollRecord) (stored PayrollRecord, created bool, err error)
	GetPayrollRecordByID(ctx context.Context, id string) (PayrollRecord, error)
	ListPayrollRecords(ctx context.Context, filter PayrollFilter) ([]PayrollRecord, error)
	MarkPaid(ctx context.Context, id string, paidAt time.Time) error

	// SumNetPayByPeriodStart totals net pay of records whose period starts inside [from, to].
	SumNetPayByPeriodStart(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	ListOvertimeRules(ctx context.Context) ([]OvertimeRule, error)
}
