package user

import "strings"

type Role string

const (
	RoleAdmin    Role = "Admin"    // Full access
	RoleHR       Role = "HR"       // Runs payroll and reports
	RoleManager  Role = "Manager"  // Reviews team leave
	RoleEmployee Role = "Employee" // Regular employee
)

var roleRank = map[Role]int{
	RoleEmployee: 1,
	RoleManager:  2,
	RoleHR:       3,
	RoleAdmin:    4,
}

// ParseRole matches a role name case-insensitively.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for r := range roleRank {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

func (r Role) IsValid() bool {
	_, ok := roleRank[r]
	return ok
}

// Rank orders roles; unknown roles rank 0.
func (r Role) Rank() int {
	return roleRank[r]
}

// CanManage reports whether a requester holding requesterRole may act on a
// record owned by someone holding targetRole. Admin may manage anyone,
// everyone else only strictly lower ranks.
func CanManage(requesterRole, targetRole Role) bool {
	if !requesterRole.IsValid() || !targetRole.IsValid() {
		return false
	}
	if requesterRole == RoleAdmin {
		return true
	}
	return requesterRole.Rank() > targetRole.Rank()
}

// Requester is the identity attached to a request.
type Requester struct {
	EmployeeID string
	Role       Role
}
