package payroll

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

var minutesPerHour = decimal.NewFromInt(60)

// AggregateWorkedMinutes sums worked minutes over records that carry both clock times.
// Incomplete records and records whose clock-out precedes clock-in add nothing.
func AggregateWorkedMinutes(records []attendance.Record) int {
	total := 0
	for _, rec := range records {
		if minutes, ok := rec.WorkedMinutes(); ok {
			total += minutes
		}
	}
	return total
}

// MinutesByEmployee groups AggregateWorkedMinutes per employee.
func MinutesByEmployee(records []attendance.Record) map[string]int {
	totals := make(map[string]int)
	for _, rec := range records {
		if minutes, ok := rec.WorkedMinutes(); ok {
			totals[rec.EmployeeID] += minutes
		}
	}
	return totals
}

// MinutesToHours converts minutes to hours rounded half-up to 2 places.
func MinutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(minutesPerHour).Round(2)
}
