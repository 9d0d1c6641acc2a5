package user

type Permission string

const (
	// Payroll
	PermissionPayrollView     Permission = "payroll.view"
	PermissionPayrollGenerate Permission = "payroll.generate"
	PermissionPayrollPay      Permission = "payroll.pay"

	// Reports
	PermissionReportsView Permission = "reports.view"

	// Leave
	PermissionLeaveReview Permission = "leave.review"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionPayrollView,
		PermissionPayrollGenerate,
		PermissionPayrollPay,
		PermissionReportsView,
		PermissionLeaveReview,
	},
	RoleHR: {
		PermissionPayrollView,
		PermissionPayrollGenerate,
		PermissionPayrollPay,
		PermissionReportsView,
		PermissionLeaveReview,
	},
	RoleManager: {
		// Manager can see reports and review team leave
		PermissionReportsView,
		PermissionLeaveReview,
	},
	RoleEmployee: {},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
