package export

import (
	"encoding/csv"
	"io"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
)

// CSV writes the three report sections one after another, each with a title
// row and a header row, separated by an empty row.
type CSV struct{}

func (CSV) ContentType() string { return "text/csv" }

func (CSV) Extension() string { return "csv" }

func (CSV) Write(w io.Writer, r report.MonthlyReport) error {
	cw := csv.NewWriter(w)

	for i, t := range tables(r) {
		if i > 0 {
			if err := cw.Write([]string{""}); err != nil {
				return err
			}
		}
		if err := cw.Write([]string{t.title}); err != nil {
			return err
		}
		if err := cw.Write(t.header); err != nil {
			return err
		}
		if err := cw.WriteAll(t.rows); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
