package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-payroll-go/internal/service/report/export"
)

type ReportHandler interface {
	// Monthly Report, JSON or file download
	GetMonthlyReport(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GetMonthlyReport handles GET /reports/monthly
func (h *reportHandlerImpl) GetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	req, err := monthlyReportRequestFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.reportService.ComposeMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if req.Format == report.FormatJSON {
		response.Success(w, result)
		return
	}

	exporter, err := export.ForFormat(req.Format)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := exporter.Write(&buf, result); err != nil {
		response.HandleError(w, fmt.Errorf("failed to export report: %w", err))
		return
	}

	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(result, exporter.Extension())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func monthlyReportRequestFromQuery(r *http.Request) (report.MonthlyReportRequest, error) {
	q := r.URL.Query()
	var errs validator.ValidationErrors

	month, err := strconv.Atoi(q.Get("month"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be a number between 1 and 12"})
	}
	year, err := strconv.Atoi(q.Get("year"))
	if err != nil {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be a four digit year"})
	}
	if len(errs) > 0 {
		return report.MonthlyReportRequest{}, errs
	}

	format := report.Format(strings.ToLower(q.Get("format")))
	if format == "" {
		format = report.FormatJSON
	}
	return report.MonthlyReportRequest{
		Month:  month,
		Year:   year,
		Format: format,
	}, nil
}
