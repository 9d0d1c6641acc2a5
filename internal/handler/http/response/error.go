package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/payroll"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/report"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/database"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// ExposeInternalErrors puts database error text in 500 responses. Development only.
var ExposeInternalErrors bool

const genericInternalMessage = "An unexpected error occurred"

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity
	case errors.Is(err, user.ErrRequesterMissing):
		Unauthorized(w, "Requester identity is required")
	case errors.Is(err, user.ErrInvalidRole):
		Unauthorized(w, "Unknown requester role")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotManageTarget):
		Forbidden(w, "Requester role cannot manage this employee")

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound), errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")

	// State conflicts
	case errors.Is(err, payroll.ErrPayrollRecordAlreadyPaid):
		Conflict(w, "Payroll record already paid")
	case errors.Is(err, leave.ErrLeaveAlreadyReviewed):
		Conflict(w, "Leave request already reviewed")

	// Bad input
	case errors.Is(err, payroll.ErrInvalidPeriod), errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, report.ErrUnsupportedFormat):
		BadRequest(w, err.Error(), nil)

	default:
		internalError(w, err)
	}
}

func internalError(w http.ResponseWriter, err error) {
	var dbErr *database.Error
	isDB := errors.As(err, &dbErr)
	slog.Error("request failed", "error", err, "persistence", isDB)

	if isDB && ExposeInternalErrors {
		InternalServerError(w, dbErr.Error())
		return
	}
	InternalServerError(w, genericInternalMessage)
}
