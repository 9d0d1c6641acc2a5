package export

import (
	"io"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

// Sheet names in the workbook, one per section plus the summary.
const (
	SheetPayroll    = "Payroll"
	SheetAttendance = "Attendance"
	SheetLeaves     = "Leave Trends"
	SheetSummary    = "Summary"
)

type XLSX struct{}

func (XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (XLSX) Extension() string { return "xlsx" }

func (XLSX) Write(w io.Writer, r report.MonthlyReport) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9D9D9"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	names := []string{SheetPayroll, SheetAttendance, SheetLeaves}
	for i, t := range tables(r) {
		if err := writeSheet(f, names[i], t.header, t.rows, headerStyle); err != nil {
			return err
		}
	}
	if err := writeSheet(f, SheetSummary, []string{"Metric", "Value"}, statsRows(r.Stats), headerStyle); err != nil {
		return err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}
	if idx, err := f.GetSheetIndex(SheetPayroll); err == nil {
		f.SetActiveSheet(idx)
	}

	return f.Write(w)
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]string, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(name, cell, h); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
