package user

type Role string

const (
	RoleAdmin             Role = "admin"              // Full access
	RoleHRManager         Role = "hr_manager"         // Organisation-wide HR analytics
	RolePayrollSpecialist Role = "payroll_specialist" // Payroll analytics only
	RoleDepartmentHead    Role = "department_head"    // Own department views
	RoleEmployee          Role = "employee"           // No analytics access
)

// Principal is the caller identity carried by an access token
type Principal struct {
	UserID       string
	Role         Role
	DepartmentID string
}

// CanReadDepartment reports whether the principal may read a department-scoped view
func (p Principal) CanReadDepartment(departmentID string) bool {
	if p.Role == RoleDepartmentHead {
		return p.DepartmentID != "" && p.DepartmentID == departmentID
	}
	return HasPermission(p.Role, PermissionOrgDepartmentView)
}
