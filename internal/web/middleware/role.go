package middleware

import (
	"context"
	"net/http"
)

type roleKey struct{}

// RoleFromCookie reads the viewer's role from the session cookie and stores
// it on the request context. A missing cookie yields an empty role, which
// grants no administrative actions.
func RoleFromCookie(cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := ""
			if c, err := r.Cookie(cookieName); err == nil {
				role = c.Value
			}
			ctx := context.WithValue(r.Context(), roleKey{}, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Role returns the viewer's role stored by RoleFromCookie, or "".
func Role(ctx context.Context) string {
	role, _ := ctx.Value(roleKey{}).(string)
	return role
}
