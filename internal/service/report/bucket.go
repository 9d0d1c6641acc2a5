package report

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/shopspring/decimal"
)

// WeekOfMonth maps a day of month to its bucket, ceil(day/7).
func WeekOfMonth(day int) int {
	return (day + 6) / 7
}

func weekLabel(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// MonthBounds returns the first and last calendar day of the month in UTC.
func MonthBounds(month, year int) (time.Time, time.Time) {
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return first, first.AddDate(0, 1, -1)
}

func DaysInMonth(month, year int) int {
	_, last := MonthBounds(month, year)
	return last.Day()
}

func inMonth(t time.Time, month, year int) bool {
	return t.Year() == year && int(t.Month()) == month
}

// ActiveOnly drops attendance of employees missing from active, so present days
// and the active headcount describe the same people.
func ActiveOnly(records []attendance.Record, active []employee.Employee) []attendance.Record {
	ids := make(map[string]struct{}, len(active))
	for _, e := range active {
		ids[e.ID] = struct{}{}
	}
	out := make([]attendance.Record, 0, len(records))
	for _, rec := range records {
		if _, ok := ids[rec.EmployeeID]; ok {
			out = append(out, rec)
		}
	}
	return out
}

// BucketAttendance counts attendance statuses into five week buckets.
// Records outside the month and unknown statuses are ignored.
func BucketAttendance(records []attendance.Record, month, year int) []report.AttendanceWeek {
	buckets := make([]report.AttendanceWeek, report.WeekCount)
	for i := range buckets {
		buckets[i].Week = weekLabel(i + 1)
	}

	for _, rec := range records {
		if !inMonth(rec.WorkDate, month, year) {
			continue
		}
		b := &buckets[WeekOfMonth(rec.WorkDate.Day())-1]
		switch {
		case rec.Status.CountsAsPresent():
			b.Present++
		case rec.Status == attendance.StatusOnLeave:
			b.OnLeave++
		case rec.Status == attendance.StatusAbsent:
			b.Absent++
		}
	}
	return buckets
}

// BucketLeaves spreads every day of approved leave that falls inside the month
// into the week bucket of that day, keyed by leave type.
func BucketLeaves(records []leave.Record, month, year int) []report.LeaveWeek {
	buckets := make([]report.LeaveWeek, report.WeekCount)
	for i := range buckets {
		buckets[i].Week = weekLabel(i + 1)
	}

	first, last := MonthBounds(month, year)
	for _, rec := range records {
		if rec.Status != leave.StatusApproved {
			continue
		}
		for _, day := range rec.Days(first, last) {
			b := &buckets[WeekOfMonth(day.Day())-1]
			switch rec.LeaveType {
			case leave.TypeAnnual:
				b.Annual++
			case leave.TypeSick:
				b.Sick++
			case leave.TypeUnpaid:
				b.Unpaid++
			default:
				b.Other++
			}
		}
	}
	return buckets
}

// LeaveTakers counts distinct employees with at least one approved leave day in the month.
func LeaveTakers(records []leave.Record, month, year int) int {
	first, last := MonthBounds(month, year)
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.Status != leave.StatusApproved || len(rec.Days(first, last)) == 0 {
			continue
		}
		seen[rec.EmployeeID] = struct{}{}
	}
	return len(seen)
}

// SpreadCosts divides total evenly across week buckets that have attendance.
// With no attendance at all the divisor becomes the number of weeks the month spans.
func SpreadCosts(total decimal.Decimal, weeks []report.AttendanceWeek, daysInMonth int) []report.CostWeek {
	costs := make([]report.CostWeek, report.WeekCount)
	for i := range costs {
		costs[i] = report.CostWeek{Week: weekLabel(i + 1), Cost: payroll.NewAmount(decimal.Zero)}
	}

	active := make([]bool, report.WeekCount)
	divisor := 0
	for i, w := range weeks {
		if i >= report.WeekCount {
			break
		}
		if w.Present+w.OnLeave+w.Absent > 0 {
			active[i] = true
			divisor++
		}
	}
	if divisor == 0 {
		divisor = WeekOfMonth(daysInMonth)
		for i := 0; i < divisor; i++ {
			active[i] = true
		}
	}

	share := total.Div(decimal.NewFromInt(int64(divisor))).Round(2)
	for i := range costs {
		if active[i] {
			costs[i].Cost = payroll.NewAmount(share)
		}
	}
	return costs
}

// AttendanceRate formats present days over possible days as a percentage with one decimal.
func AttendanceRate(presentDays, employees, daysInMonth int) string {
	possible := employees * daysInMonth
	if possible <= 0 {
		return "0.0%"
	}
	rate := decimal.NewFromInt(int64(presentDays)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(possible)))
	return rate.StringFixed(1) + "%"
}

// LeavePerEmployee is leave days over distinct leave takers, rounded to one decimal.
func LeavePerEmployee(leaveDays, takers int) float64 {
	if takers <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(leaveDays)).
		Div(decimal.NewFromInt(int64(takers))).
		Round(1).
		InexactFloat64()
}
