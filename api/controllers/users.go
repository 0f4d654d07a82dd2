package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/api/validators"
	"github.com/Arthur-020/labstock-backend/internal/users"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// UsersPageData feeds the account administration template. Error carries
// the inline duplicate-login message.
type UsersPageData struct {
	User     *session.User
	Accounts []users.Account
	Error    string
}

func renderUsers(svc users.Service, renderer *render.Renderer, w http.ResponseWriter, r *http.Request, status int, inlineError string) {
	accounts, err := svc.List(r.Context())
	if err != nil {
		renderer.Error(r.Context(), w, err)
		return
	}
	renderer.HTML(r.Context(), w, status, "usuarios.html", UsersPageData{
		User:     middleware.UserFromContext(r.Context()),
		Accounts: accounts,
		Error:    inlineError,
	})
}

// UsersList renders the account table and the new-account form.
func UsersList(svc users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderUsers(svc, renderer, w, r, http.StatusOK, "")
	}
}

// UserCreate adds an account. A duplicate login re-renders the page with
// an inline conflict message; other failures use the shared error page.
func UserCreate(svc users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		input := users.CreateInput{
			DisplayName: validators.SanitizeString(r.FormValue("nombre"), 120),
			Login:       validators.SanitizeString(r.FormValue("usuario"), 60),
			Password:    r.FormValue("contrasena"),
			Role:        validators.SanitizeString(r.FormValue("rol"), 20),
		}
		if err := svc.Create(r.Context(), input); err != nil {
			typed := pkgerrors.As(err)
			if typed != nil && typed.Code() == pkgerrors.CodeConflict {
				renderUsers(svc, renderer, w, r, http.StatusConflict, "Error: el usuario ya existe")
				return
			}
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
	}
}

// UserDelete removes an account.
func UserDelete(svc users.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt(chi.URLParam(r, "id"))
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/usuarios", http.StatusSeeOther)
	}
}
