package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
)

// WarmMonthlyReports returns a job that recomposes the current and previous
// month and overwrites their cache entries. Attendance written by other
// services does not bump the cache version, so this bounds how stale they get.
func WarmMonthlyReports(svc report.ReportService, now func() time.Time) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		current := now().UTC()
		previous := current.AddDate(0, -1, 1-current.Day())

		var errs []error
		for _, t := range []time.Time{current, previous} {
			req := report.MonthlyReportRequest{Month: int(t.Month()), Year: t.Year()}
			if _, err := svc.RefreshMonthlyReport(ctx, req); err != nil {
				errs = append(errs, fmt.Errorf("warm %04d-%02d: %w", req.Year, req.Month, err))
			}
		}
		return errors.Join(errs...)
	}
}
