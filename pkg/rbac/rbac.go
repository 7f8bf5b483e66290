// Package rbac provides role-based access control for the cantina API.
//
// Roles form a closed set. Each privileged endpoint declares its
// allow-list once in the route table; the check runs in middleware, never
// inside handlers.
package rbac

import (
	"net/http"

	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/response"
)

// Role is a closed enumeration of caller roles.
type Role string

const (
	RolEstudiante Role = "estudiante"
	RolAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RolEstudiante || r == RolAdmin
}

// Permit reports whether callerRole is in the allowed set. A deny never
// partially succeeds; the caller sends a fixed forbidden signal.
func Permit(callerRole Role, allowed ...Role) bool {
	if !callerRole.Valid() {
		return false
	}
	for _, a := range allowed {
		if callerRole == a {
			return true
		}
	}
	return false
}

// Require returns middleware that allows access only to the given roles.
// middleware.Auth must run first so the role is in the context.
func Require(roles ...Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := middleware.RoleFromCtx(r)
			if !ok || !Permit(Role(role), roles...) {
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
