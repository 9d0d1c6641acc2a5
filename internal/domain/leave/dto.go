package leave

import (
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

type ReviewLeaveRequest struct {
	ID      string `json:"-"`
	Approve *bool  `json:"approve" validate:"required"`
}

type LeaveResponse struct {
	ID         string     `json:"id"`
	EmployeeID string     `json:"employeeId"`
	LeaveType  string     `json:"leaveType"`
	StartDate  string     `json:"startDate"`
	EndDate    string     `json:"endDate"`
	Status     string     `json:"status"`
	ReviewerID *string    `json:"reviewerId,omitempty"`
	ReviewedAt *time.Time `json:"reviewedAt,omitempty"`
}

func NewLeaveResponse(r Record) LeaveResponse {
	return LeaveResponse{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		LeaveType:  string(r.LeaveType),
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Status:     string(r.Status),
		ReviewerID: r.ReviewerID,
		ReviewedAt: r.ReviewedAt,
	}
}

func (r *ReviewLeaveRequest) Validate() error {
	if err := validator.Var("id", r.ID, "required,uuid"); err != nil {
		return err
	}
	return validator.Struct(r)
}
