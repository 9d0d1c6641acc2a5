package leave

import (
	"context"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
)

type LeaveService interface {
	Review(ctx context.Context, requester user.Requester, req ReviewLeaveRequest) (LeaveResponse, error)
}
