package user

import "errors"

var (
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrDepartmentAccessDenied  = errors.New("department access denied")
)
