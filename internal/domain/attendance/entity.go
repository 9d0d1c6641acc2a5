package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent Status = "Present"
	StatusLate    Status = "Late"
	StatusHalfDay Status = "Half Day"
	StatusAbsent  Status = "Absent"
	StatusOnLeave Status = "On Leave"
)

// CountsAsPresent is true for every status where the employee showed up.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate || s == StatusHalfDay
}

// Record is one employee's attendance for one work date.
type Record struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	ClockIn    *time.Time
	ClockOut   *time.Time
	Status     Status
}

// WorkedMinutes returns whole minutes between clock-in and clock-out.
// ok is false when either timestamp is missing or clock-out precedes clock-in.
func (r Record) WorkedMinutes() (minutes int, ok bool) {
	if r.ClockIn == nil || r.ClockOut == nil {
		return 0, false
	}
	d := r.ClockOut.Sub(*r.ClockIn)
	if d < 0 {
		return 0, false
	}
	return int(d / time.Minute), true
}
