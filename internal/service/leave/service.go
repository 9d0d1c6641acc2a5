package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/employee"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/validator"
)

// CacheInvalidator drops cached reports after leave data changes.
type CacheInvalidator interface {
	Bump(ctx context.Context) error
}

type LeaveServiceImpl struct {
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	cache        CacheInvalidator
	now          func() time.Time
}

func NewLeaveService(leaveRepo leave.LeaveRepository, employeeRepo employee.EmployeeRepository, cache CacheInvalidator) leave.LeaveService {
	return &LeaveServiceImpl{
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		cache:        cache,
		now:          time.Now,
	}
}

// Review approves or rejects a pending leave. The requester must outrank the
// employee who owns the leave.
func (s *LeaveServiceImpl) Review(ctx context.Context, requester user.Requester, req leave.ReviewLeaveRequest) (leave.LeaveResponse, error) {
	if !requester.Role.IsValid() || requester.EmployeeID == "" {
		return leave.LeaveResponse{}, user.ErrRequesterMissing
	}
	if err := validator.Var("requester_id", requester.EmployeeID, "uuid"); err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	rec, err := s.leaveRepo.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	owner, err := s.employeeRepo.GetByID(ctx, rec.EmployeeID)
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to get leave owner: %w", err)
	}
	if !user.CanManage(requester.Role, owner.Role) {
		slog.WarnContext(ctx, "leave review denied",
			"leave_id", rec.ID,
			"requester_role", requester.Role,
			"owner_role", owner.Role,
		)
		return leave.LeaveResponse{}, user.ErrCannotManageTarget
	}

	if err := rec.Review(requester.EmployeeID, *req.Approve, s.now().UTC()); err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := s.leaveRepo.UpdateReview(ctx, rec); err != nil {
		return leave.LeaveResponse{}, err
	}

	if rec.Status == leave.StatusApproved && s.cache != nil {
		if err := s.cache.Bump(ctx); err != nil {
			slog.WarnContext(ctx, "failed to invalidate report cache", "error", err)
		}
	}

	slog.InfoContext(ctx, "leave reviewed",
		"leave_id", rec.ID,
		"status", rec.Status,
		"reviewer_id", requester.EmployeeID,
	)
	return leave.NewLeaveResponse(rec), nil
}
