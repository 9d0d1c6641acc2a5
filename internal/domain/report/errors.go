package report

import "errors"

var (
	ErrUnsupportedFormat = errors.New("unsupported report format")
)

// Section names used in warnings when a part of the report could not be loaded.
const (
	SectionEmployees  = "employees"
	SectionAttendance = "attendance"
	SectionLeaves     = "leaves"
	SectionCosts      = "costs"
)
