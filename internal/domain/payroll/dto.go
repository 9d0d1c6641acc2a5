package payroll

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// ========== PAYROLL RECORD DTOs ==========

type GeneratePayrollRequest struct {
	StartDate string `json:"startDate" validate:"required,date"`
	EndDate   string `json:"endDate" validate:"required,date"`

	periodStart time.Time
	periodEnd   time.Time
}

func (r *GeneratePayrollRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{
			{Field: "endDate", Message: "must not be before startDate"},
		}
	}

	r.periodStart = start
	r.periodEnd = end
	return nil
}

// Period returns the parsed range. Only meaningful after Validate succeeds.
func (r *GeneratePayrollRequest) Period() (time.Time, time.Time) {
	return r.periodStart, r.periodEnd
}

type HoursRequest struct {
	EmployeeID string `json:"employee_id" validate:"required,uuid"`
	StartDate  string `json:"start_date" validate:"required,date"`
	EndDate    string `json:"end_date" validate:"required,date"`
}

func (r *HoursRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{
			{Field: "end_date", Message: "must not be before start_date"},
		}
	}
	return nil
}

type HoursResponse struct {
	EmployeeID   string `json:"employeeId"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	TotalMinutes int    `json:"totalMinutes"`
	TotalHours   Amount `json:"totalHours"`
}

type PayrollRecordResponse struct {
	PayrollID   string `json:"PayrollID"`
	EmployeeID  string `json:"EmployeeID"`
	Name        string `json:"Name,omitempty"`
	RoleName    string `json:"RoleName,omitempty"`
	PeriodStart string `json:"PeriodStart"`
	PeriodEnd   string `json:"PeriodEnd"`
	TotalHours  Amount `json:"TotalHours"`
	GrossPay    Amount `json:"GrossPay"`
	Deductions  Amount `json:"Deductions"`
	NetPay      Amount `json:"NetPay"`
	Status      string `json:"Status"`
}

func NewPayrollRecordResponse(rec PayrollRecord) PayrollRecordResponse {
	resp := PayrollRecordResponse{
		PayrollID:   rec.ID,
		EmployeeID:  rec.EmployeeID,
		PeriodStart: rec.PeriodStart.Format(validator.DateLayout),
		PeriodEnd:   rec.PeriodEnd.Format(validator.DateLayout),
		TotalHours:  NewAmount(rec.TotalHours),
		GrossPay:    NewAmount(rec.GrossPay),
		Deductions:  NewAmount(rec.Deductions),
		NetPay:      NewAmount(rec.NetPay),
		Status:      string(rec.Status),
	}
	if rec.EmployeeName != nil {
		resp.Name = *rec.EmployeeName
	}
	if rec.RoleName != nil {
		resp.RoleName = *rec.RoleName
	}
	return resp
}

type PayrollFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Status    *PayrollStatus
}

// ========== OVERTIME RULE DTOs ==========

type OvertimeRuleResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Factor               Amount `json:"factor"`
	RequiredHoursTrigger Amount `json:"requiredHoursTrigger"`
}
