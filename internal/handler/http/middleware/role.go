package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/vetanpay/payroll-backend-go/internal/domain/user"
	"github.com/vetanpay/payroll-backend-go/internal/handler/http/response"
)

// RoleFromRequest extracts the caller's role from the verified token.
// Handlers pass it down to services that gate on finalize authority.
func RoleFromRequest(r *http.Request) user.Role {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return ""
	}
	return user.Role(roleStr)
}

// UserIDFromRequest extracts the caller's user id from the verified token.
func UserIDFromRequest(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}

// RequireAdmin requires administrator or developer role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := RoleFromRequest(r)
		if !role.CanFinalize() {
			response.HandleError(w, user.ErrAdminAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
