package controllers

import (
	"net/http"

	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/api/validators"
	"github.com/Arthur-020/labstock-backend/internal/components"
	"github.com/Arthur-020/labstock-backend/internal/movements"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// HistoryPageData feeds the movement ledger template. Components populates
// the record-movement form select.
type HistoryPageData struct {
	User       *session.User
	IsTeacher  bool
	Movements  []movements.Entry
	Components []components.Row
	Actor      string
}

func renderHistory(svc movements.Service, componentSvc components.Service, renderer *render.Renderer, w http.ResponseWriter, r *http.Request, actor string) {
	entries, err := svc.List(r.Context(), actor)
	if err != nil {
		renderer.Error(r.Context(), w, err)
		return
	}
	rows, err := componentSvc.List(r.Context(), "", nil)
	if err != nil {
		renderer.Error(r.Context(), w, err)
		return
	}

	user := middleware.UserFromContext(r.Context())
	renderer.HTML(r.Context(), w, http.StatusOK, "historial.html", HistoryPageData{
		User:       user,
		IsTeacher:  user != nil && user.Role == enums.UserRoleTeacher,
		Movements:  entries,
		Components: rows,
		Actor:      actor,
	})
}

// HistoryList renders the full ledger newest first.
func HistoryList(svc movements.Service, componentSvc components.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderHistory(svc, componentSvc, renderer, w, r, "")
	}
}

// HistorySearch renders the ledger filtered by actor substring.
func HistorySearch(svc movements.Service, componentSvc components.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor := validators.SanitizeString(r.URL.Query().Get("persona"), 120)
		renderHistory(svc, componentSvc, renderer, w, r, actor)
	}
}

// MovementCreate appends a ledger entry and adjusts the cached quantity.
func MovementCreate(svc movements.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		componentID, err := validators.FormInt(r, "componente_id")
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		quantity, err := validators.FormInt(r, "cantidad")
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		input := movements.AppendInput{
			ComponentID: componentID,
			Kind:        validators.SanitizeString(r.FormValue("movimiento"), 20),
			Quantity:    quantity,
			Actor:       validators.SanitizeString(r.FormValue("persona"), 120),
			Notes:       validators.SanitizeString(r.FormValue("observaciones"), 500),
		}
		if err := svc.Append(r.Context(), input); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/historial", http.StatusSeeOther)
	}
}
