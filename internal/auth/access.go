package auth

import (
	"net/http"
	"slices"

	"github.com/fekuna/omnipos-catalog-service/internal/apperror"
)

// IsAllowed reports whether role is one of the allowed roles.
func IsAllowed(role string, allowed []string) bool {
	return role != "" && slices.Contains(allowed, role)
}

// CanAccess lets the request through only when the authenticated caller's role
// is in roles. A denied request gets a 403 and goes no further.
func CanAccess(onError func(http.ResponseWriter, *http.Request, error), roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok || !IsAllowed(user.Role, roles) {
				onError(w, r, apperror.Forbidden())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
