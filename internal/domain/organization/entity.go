package organization

import (
	"strings"
	"time"
)

type Department struct {
	ID                 string
	Code               string
	Name               string
	ParentDepartmentID *string
	CostCenter         string
	IsActive           bool
}

type Position struct {
	ID                  string
	Code                string
	Title               string
	DepartmentID        string
	ReportsToPositionID *string
	CostCenter          string // overrides the department cost center when set
	IsActive            bool
}

type PositionAssignment struct {
	ID         string
	EmployeeID string
	PositionID string
	StartDate  time.Time
	EndDate    *time.Time
}

// IsOpen reports whether the assignment is in effect at asOf.
func (a PositionAssignment) IsOpen(asOf time.Time) bool {
	if a.StartDate.After(asOf) {
		return false
	}
	return a.EndDate == nil || a.EndDate.After(asOf)
}

var managementKeywords = []string{"manager", "director", "head", "lead"}

// IsManagementTitle reports whether a title names a management role.
func IsManagementTitle(title string) bool {
	return TitleContainsAny(title, managementKeywords...)
}

// TitleContainsAny matches keywords case-insensitively against a job title.
func TitleContainsAny(title string, keywords ...string) bool {
	t := strings.ToLower(title)
	for _, k := range keywords {
		if strings.Contains(t, k) {
			return true
		}
	}
	return false
}
