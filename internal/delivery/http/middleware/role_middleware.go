package middleware

import (
	"net/http"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/policy"
	"hospital-management-api/pkg/response"
)

// RequireRole creates a middleware that checks if the user has any of the required roles
// Role is read from context (set by AuthMiddleware from JWT claims)
func RequireRole(roles ...entity.Role) func(http.Handler) http.Handler {
	return guard(func(p *policy.Principal) bool {
		return policy.HasRole(p, roles...)
	})
}

func guard(allowed func(p *policy.Principal) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := GetPrincipalFromContext(r.Context())
			if !ok || !policy.IsAuthenticated(principal) {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if !allowed(principal) {
				response.Forbidden(w, "You don't have permission to access this resource")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is a convenience middleware for admin-only endpoints
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin)(next)
}

func RequireDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor)(next)
}

func RequireNurse(next http.Handler) http.Handler {
	return RequireRole(entity.RoleNurse)(next)
}

// RequireCaregiver admits doctors and nurses.
func RequireCaregiver(next http.Handler) http.Handler {
	return RequireRole(entity.RoleDoctor, entity.RoleNurse)(next)
}

// RequireAdminOrDoctor is a convenience middleware for admin or doctor endpoints
func RequireAdminOrDoctor(next http.Handler) http.Handler {
	return RequireRole(entity.RoleAdmin, entity.RoleDoctor)(next)
}

func RequireSuperUser(next http.Handler) http.Handler {
	return guard(policy.IsSuperUser)(next)
}
