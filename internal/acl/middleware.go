// internal/acl/middleware.go
//
// Chi middleware helpers that enforce the role gate.

package acl

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/console/internal/auth"
)

// RequireRole lets the request through when the auth.State in its context
// holds ANY of roles.  Otherwise it answers 303 to the login or forbidden
// page.  With no roles, any signed-in user passes.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := auth.FromContext(r.Context())
			d := Decide(st, roles)
			if d == Allow {
				next.ServeHTTP(w, r)
				return
			}
			zap.L().Debug("acl denied",
				zap.String("path", r.URL.Path),
				zap.String("user", st.Username),
				zap.Stringer("decision", d))
			http.Redirect(w, r, d.Target(), http.StatusSeeOther)
		})
	}
}
