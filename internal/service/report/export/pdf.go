package export

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/jung-kurt/gofpdf"
)

type PDF struct{}

func (PDF) ContentType() string { return "application/pdf" }

func (PDF) Extension() string { return "pdf" }

func (PDF) Write(w io.Writer, r report.MonthlyReport) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	title := fmt.Sprintf("Monthly Report %s %d", time.Month(r.Month).String(), r.Year)
	pdf.Cell(0, 10, title)
	pdf.Ln(12)

	for _, t := range tables(r) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, t.title)
		pdf.Ln(9)

		width := 180.0 / float64(len(t.header))
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(220, 220, 220)
		for _, h := range t.header {
			pdf.CellFormat(width, 7, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 10)
		for _, row := range t.rows {
			for i, v := range row {
				align := "R"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(width, 7, v, "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 10)
	for _, s := range statsRows(r.Stats) {
		pdf.Cell(70, 7, s[0])
		pdf.Cell(0, 7, s[1])
		pdf.Ln(7)
	}

	for _, warning := range r.Warnings {
		pdf.Cell(0, 7, "Section unavailable: "+warning)
		pdf.Ln(7)
	}

	return pdf.Output(w)
}
