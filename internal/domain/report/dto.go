package report

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// WeekCount is the fixed number of week buckets in a month.
const WeekCount = 5

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Month  int    `json:"month" validate:"required,min=1,max=12"`
	Year   int    `json:"year" validate:"required,min=2000,max=9999"`
	Format Format `json:"format" validate:"omitempty,oneof=json csv pdf xlsx"`
}

func (r *MonthlyReportRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if r.Format == "" {
		r.Format = FormatJSON
	}
	return nil
}

type MonthlyReport struct {
	Month      int              `json:"month"`
	Year       int              `json:"year"`
	Attendance []AttendanceWeek `json:"attendance"`
	Costs      []CostWeek       `json:"costs"`
	Leaves     []LeaveWeek      `json:"leaves"`
	Stats      Stats            `json:"stats"`
	Warnings   []string         `json:"warnings,omitempty"`
}

// Partial reports whether any section failed to load.
func (r MonthlyReport) Partial() bool {
	return len(r.Warnings) > 0
}

type AttendanceWeek struct {
	Week    string `json:"week"`
	Present int    `json:"present"`
	OnLeave int    `json:"on_leave"`
	Absent  int    `json:"absent"`
}

type CostWeek struct {
	Week string         `json:"week"`
	Cost payroll.Amount `json:"cost"`
}

type LeaveWeek struct {
	Week   string `json:"week"`
	Annual int    `json:"Annual"`
	Sick   int    `json:"Sick"`
	Unpaid int    `json:"Unpaid"`
	Other  int    `json:"Other"`
}

// Total sums every leave type in the week.
func (w LeaveWeek) Total() int {
	return w.Annual + w.Sick + w.Unpaid + w.Other
}

type Stats struct {
	TotalEmployees      int            `json:"totalEmployees"`
	TotalPayroll        payroll.Amount `json:"totalPayroll"`
	TotalLeaveDays      int            `json:"totalLeaveDays"`
	AvgAttendance       string         `json:"avgAttendance"`
	AvgLeavePerEmployee float64        `json:"avgLeavePerEmployee"`
}
