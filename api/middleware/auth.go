package middleware

import (
	"errors"
	"net/http"

	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/pkg/config"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// Session resolves the opaque session cookie and seeds the request context
// with the identity. A request without a valid session is redirected to the
// login form; only a session-store failure renders an error.
func Session(cfg config.SessionConfig, sessions session.Reader, renderer *render.Renderer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}

			user, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrNoSession) {
					http.Redirect(w, r, "/login", http.StatusSeeOther)
					return
				}
				renderer.Error(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load session"))
				return
			}

			ctx := WithUser(r.Context(), user)
			ctx = WithSessionID(ctx, cookie.Value)
			if logg != nil {
				ctx = logg.WithUserID(ctx, user.ID)
				ctx = logg.WithActorRole(ctx, string(user.Role))
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
