package controllers

import (
	"net/http"

	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/internal/auth"
	"github.com/Arthur-020/labstock-backend/pkg/config"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
)

// LoginPageData feeds the login template; Error is the inline message
// shown after a failed attempt.
type LoginPageData struct {
	Error string
}

func LoginForm(renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer.HTML(r.Context(), w, http.StatusOK, "login.html", LoginPageData{})
	}
}

// Login checks the credentials and sets the opaque session cookie. Bad
// credentials re-render the form with an inline message instead of the
// shared error page.
func Login(svc auth.Service, cfg config.SessionConfig, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderer.Error(r.Context(), w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse login form"))
			return
		}

		sessionID, _, err := svc.Login(r.Context(), r.FormValue("usuario"), r.FormValue("contrasena"))
		if err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && (typed.Code() == pkgerrors.CodeUnauthorized || typed.Code() == pkgerrors.CodeValidation) {
				renderer.HTML(r.Context(), w, http.StatusUnauthorized, "login.html", LoginPageData{
					Error: "Usuario o contraseña incorrectos",
				})
				return
			}
			renderer.Error(r.Context(), w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    sessionID,
			Path:     "/",
			MaxAge:   int(cfg.TTL.Seconds()),
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Logout destroys the session and clears the cookie.
func Logout(svc auth.Service, cfg config.SessionConfig, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				sessionID = cookie.Value
			}
		}
		if err := svc.Logout(r.Context(), sessionID); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		http.Redirect(w, r, "/login", http.StatusSeeOther)
	}
}
