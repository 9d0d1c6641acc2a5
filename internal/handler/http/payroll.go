package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Payroll Records
	GeneratePayroll(w http.ResponseWriter, r *http.Request)
	ListPayrollRecords(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)

	// Hours
	GetTotalHours(w http.ResponseWriter, r *http.Request)

	// Overtime Rules
	ListOvertimeRules(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== PAYROLL RECORDS ==========

func (h *payrollHandlerImpl) GeneratePayroll(w http.ResponseWriter, r *http.Request) {
	var req payroll.GeneratePayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.GeneratePayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, fmt.Sprintf("Payroll generated for %d employees", len(result)), result)
}

func (h *payrollHandlerImpl) ListPayrollRecords(w http.ResponseWriter, r *http.Request) {
	filter, err := payrollFilterFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.ListPayrollRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := validator.Var("id", id, "required,uuid"); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.MarkPaid(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", result)
}

// ========== HOURS ==========

func (h *payrollHandlerImpl) GetTotalHours(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := payroll.HoursRequest{
		EmployeeID: q.Get("employee_id"),
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
	}

	result, err := h.payrollService.GetTotalHours(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== OVERTIME RULES ==========

func (h *payrollHandlerImpl) ListOvertimeRules(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListOvertimeRules(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func payrollFilterFromQuery(r *http.Request) (payroll.PayrollFilter, error) {
	var (
		filter payroll.PayrollFilter
		errs   validator.ValidationErrors
	)
	q := r.URL.Query()

	if v := q.Get("start_date"); v != "" {
		if d, ok := validator.IsValidDate(v); ok {
			filter.StartDate = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if v := q.Get("end_date"); v != "" {
		if d, ok := validator.IsValidDate(v); ok {
			filter.EndDate = &d
		} else {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if v := q.Get("status"); v != "" {
		status := payroll.PayrollStatus(v)
		if status != payroll.PayrollStatusGenerated && status != payroll.PayrollStatusPaid {
			errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of [Generated Paid]"})
		} else {
			filter.Status = &status
		}
	}

	if len(errs) > 0 {
		return payroll.PayrollFilter{}, errs
	}
	return filter, nil
}
