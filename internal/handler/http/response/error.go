package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/employee"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/organization"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/orgstructure"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/payroll"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/user"
	"github.com/cmlabs-hris/workforce-analytics/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrDepartmentAccessDenied):
		Forbidden(w, "Access to this department is not allowed")

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, organization.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, organization.ErrPositionNotFound):
		NotFound(w, "Position not found")

	// Bad input
	case errors.Is(err, orgstructure.ErrUnsupportedAction):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled request error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
