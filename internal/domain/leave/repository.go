package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	GetByID(ctx context.Context, id string) (Record, error)
	// ListApprovedOverlapping returns approved leave whose span intersects [from, to].
	ListApprovedOverlapping(ctx context.Context, from, to time.Time) ([]Record, error)
	UpdateReview(ctx context.Context, record Record) error
}
