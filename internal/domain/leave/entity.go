package leave

import (
	"time"
)

type Type string

const (
	TypeAnnual Type = "Annual"
	TypeSick   Type = "Sick"
	TypeUnpaid Type = "Unpaid"
	TypeOther  Type = "Other"
)

// Types lists leave types in report column order.
var Types = []Type{TypeAnnual, TypeSick, TypeUnpaid, TypeOther}

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Record is a leave application. Dates are calendar days, end inclusive.
type Record struct {
	ID         string
	EmployeeID string
	LeaveType  Type
	StartDate  time.Time
	EndDate    time.Time
	Status     Status
	ReviewerID *string
	ReviewedAt *time.Time
}

// Review moves a pending leave to Approved or Rejected. It can only happen once.
func (l *Record) Review(reviewerID string, approve bool, at time.Time) error {
	if l.Status != StatusPending {
		return ErrLeaveAlreadyReviewed
	}
	if approve {
		l.Status = StatusApproved
	} else {
		l.Status = StatusRejected
	}
	l.ReviewerID = &reviewerID
	l.ReviewedAt = &at
	return nil
}

// Days returns every calendar day of the leave that falls inside [from, to].
func (l Record) Days(from, to time.Time) []time.Time {
	start := truncateDay(l.StartDate)
	end := truncateDay(l.EndDate)
	from = truncateDay(from)
	to = truncateDay(to)

	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
