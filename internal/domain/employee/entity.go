package employee

import (
	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type Employee struct {
	ID         string
	FullName   string
	RoleName   string
	Role       user.Role
	HourlyRate decimal.Decimal
	Status     EmploymentStatus
}

type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

func (e Employee) IsActive() bool {
	return e.Status == EmploymentStatusActive
}
