package middleware

import (
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/workforce-analytics/internal/domain/auth"
	"github.com/cmlabs-hris/workforce-analytics/internal/domain/user"
	"github.com/cmlabs-hris/workforce-analytics/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// RequirePermission checks if user has specific permission
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !user.HasPermission(p.Role, permission) {
				response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s', but user role is '%s'", permission, p.Role))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireDepartmentAccess guards department-scoped routes. Department heads may
// only read the department named in their token.
func RequireDepartmentAccess(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if !p.CanReadDepartment(chi.URLParam(r, param)) {
				response.HandleError(w, user.ErrDepartmentAccessDenied)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
