package export

import (
	"fmt"
	"strconv"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
)

// Section titles shared by every file format.
const (
	TitlePayroll    = "Payroll Report"
	TitleAttendance = "Attendance Report"
	TitleLeaves     = "Leave Trends Report"
)

type table struct {
	title  string
	header []string
	rows   [][]string
}

func tables(r report.MonthlyReport) []table {
	payroll := table{title: TitlePayroll, header: []string{"Week", "Cost"}}
	for _, c := range r.Costs {
		payroll.rows = append(payroll.rows, []string{c.Week, c.Cost.String()})
	}

	attendance := table{title: TitleAttendance, header: []string{"Week", "Present", "On Leave", "Absent"}}
	for _, a := range r.Attendance {
		attendance.rows = append(attendance.rows, []string{
			a.Week, strconv.Itoa(a.Present), strconv.Itoa(a.OnLeave), strconv.Itoa(a.Absent),
		})
	}

	leaves := table{title: TitleLeaves, header: []string{"Week", "Annual", "Sick", "Unpaid", "Other"}}
	for _, l := range r.Leaves {
		leaves.rows = append(leaves.rows, []string{
			l.Week, strconv.Itoa(l.Annual), strconv.Itoa(l.Sick), strconv.Itoa(l.Unpaid), strconv.Itoa(l.Other),
		})
	}

	return []table{payroll, attendance, leaves}
}

func statsRows(s report.Stats) [][]string {
	return [][]string{
		{"Total Employees", strconv.Itoa(s.TotalEmployees)},
		{"Total Payroll", s.TotalPayroll.String()},
		{"Total Leave Days", strconv.Itoa(s.TotalLeaveDays)},
		{"Average Attendance", s.AvgAttendance},
		{"Average Leave per Employee", strconv.FormatFloat(s.AvgLeavePerEmployee, 'f', 1, 64)},
	}
}

// Filename is the download name for a report in the given extension.
func Filename(r report.MonthlyReport, ext string) string {
	return fmt.Sprintf("report_%04d_%02d.%s", r.Year, r.Month, ext)
}

// ForFormat returns the exporter for a file format. JSON has no exporter.
func ForFormat(format report.Format) (report.Exporter, error) {
	switch format {
	case report.FormatCSV:
		return CSV{}, nil
	case report.FormatPDF:
		return PDF{}, nil
	case report.FormatXLSX:
		return XLSX{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", report.ErrUnsupportedFormat, format)
	}
}
