package report

import (
	"context"
	"io"
)

type ReportService interface {
	ComposeMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
	// RefreshMonthlyReport recomposes without reading the cache and overwrites the cached entry.
	RefreshMonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)
}

// Exporter renders a composed report into a downloadable document.
type Exporter interface {
	ContentType() string
	Extension() string
	Write(w io.Writer, r MonthlyReport) error
}
