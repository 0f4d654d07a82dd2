package controllers

import (
	"net/http"

	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// MenuPageData feeds the main menu template.
type MenuPageData struct {
	User      *session.User
	IsTeacher bool
}

func Menu(renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middleware.UserFromContext(r.Context())
		renderer.HTML(r.Context(), w, http.StatusOK, "menu.html", MenuPageData{
			User:      user,
			IsTeacher: user != nil && user.Role == enums.UserRoleTeacher,
		})
	}
}
