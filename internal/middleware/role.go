package middleware

import (
	"net/http"
	"slices"

	"github.com/fundhive/fundhive/internal/auth"
	"github.com/fundhive/fundhive/internal/model"
)

// RequireRole returns middleware that admits callers holding any of roles.
// Must be applied after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authCtx := auth.AuthFromContext(r.Context())
			if authCtx == nil {
				writeAuthError(w)
				return
			}

			if !slices.Contains(roles, authCtx.Role) {
				writeError(w, http.StatusForbidden, codeForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin admits administrators only.
func RequireAdmin(next http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)(next)
}
