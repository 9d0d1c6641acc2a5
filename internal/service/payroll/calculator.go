package payroll

import (
	"github.com/shopspring/decimal"
)

// Pay is the money side of one payroll record.
type Pay struct {
	TotalHours decimal.Decimal
	GrossPay   decimal.Decimal
	Deductions decimal.Decimal
	NetPay     decimal.Decimal
}

// CalculatePay applies a flat hourly rate. No deduction rules exist, so deductions are always zero.
func CalculatePay(hours, hourlyRate decimal.Decimal) Pay {
	gross := hours.Mul(hourlyRate).Round(2)
	deductions := decimal.Zero
	return Pay{
		TotalHours: hours,
		GrossPay:   gross,
		Deductions: deductions,
		NetPay:     gross.Sub(deductions),
	}
}

// Qualifies reports whether an employee with these hours gets a payroll record.
func Qualifies(hours decimal.Decimal) bool {
	return hours.IsPositive()
}
