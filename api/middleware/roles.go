package middleware

import (
	"net/http"

	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

// RequireRole rejects requests whose session identity does not carry the
// given role. The mutation behind the route never runs on a mismatch.
func RequireRole(role enums.UserRole, renderer *render.Renderer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := UserFromContext(r.Context())
			if user == nil || user.Role != role {
				renderer.Error(r.Context(), w, pkgerrors.New(pkgerrors.CodeForbidden, "role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
