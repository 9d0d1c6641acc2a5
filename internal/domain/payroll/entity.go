package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusGenerated PayrollStatus = "Generated"
	PayrollStatusPaid      PayrollStatus = "Paid"
)

// PayrollRecord is one employee's pay for one period.
type PayrollRecord struct {
	ID          string
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	TotalHours  decimal.Decimal
	GrossPay    decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	Status      PayrollStatus
	PaidAt      *time.Time
	CreatedAt   time.Time

	// Joined fields
	EmployeeName *string
	RoleName     *string
}

// OvertimeRule is configuration only. Generation reads it but never applies it.
type OvertimeRule struct {
	ID                   string
	Name                 string
	Factor               decimal.Decimal
	RequiredHoursTrigger decimal.Decimal
}
