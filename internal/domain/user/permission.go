package user

type Permission string

const (
	// Payroll
	PermissionPayrollAnalyticsView Permission = "payroll_analytics.view"

	// Organisation structure
	PermissionOrgAnalyticsView  Permission = "org_analytics.view"
	PermissionOrgDepartmentView Permission = "org_analytics.view_department"
	PermissionOrgSimulate       Permission = "org_analytics.simulate"

	// Workforce
	PermissionWorkforceView Permission = "workforce_analytics.view"

	// Profile risk
	PermissionProfileRiskView Permission = "profile_risk.view"

	// Talent
	PermissionTalentView Permission = "talent_analytics.view"

	// Dashboards
	PermissionLeaveDashboardView Permission = "dashboard.leaves"
	PermissionTimeDashboardView  Permission = "dashboard.time_management"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionPayrollAnalyticsView,
		PermissionOrgAnalyticsView,
		PermissionOrgDepartmentView,
		PermissionOrgSimulate,
		PermissionWorkforceView,
		PermissionProfileRiskView,
		PermissionTalentView,
		PermissionLeaveDashboardView,
		PermissionTimeDashboardView,
	},
	RoleHRManager: {
		PermissionPayrollAnalyticsView,
		PermissionOrgAnalyticsView,
		PermissionOrgDepartmentView,
		PermissionOrgSimulate,
		PermissionWorkforceView,
		PermissionProfileRiskView,
		PermissionTalentView,
		PermissionLeaveDashboardView,
		PermissionTimeDashboardView,
	},
	RolePayrollSpecialist: {
		PermissionPayrollAnalyticsView,
		PermissionTimeDashboardView,
	},
	RoleDepartmentHead: {
		// Department heads only see their own department, checked per request
		PermissionOrgDepartmentView,
		PermissionLeaveDashboardView,
	},
	RoleEmployee: {
		// Employees have no analytics access
	},
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
