package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/api/validators"
	"github.com/Arthur-020/labstock-backend/internal/catalog"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// CatalogPageData feeds the categories/locations browse template.
type CatalogPageData struct {
	User             *session.User
	IsTeacher        bool
	Browse           *catalog.BrowseResult
	SelectedCategory int
	SelectedLocation int
}

// CatalogBrowse renders categories, locations and the components matching
// the active filters.
func CatalogBrowse(svc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.QueryOptionalInt(r, "categoria")
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		locationID, err := validators.QueryOptionalInt(r, "ubicacion")
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		browse, err := svc.Browse(r.Context(), categoryID, locationID)
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		user := middleware.UserFromContext(r.Context())
		renderer.HTML(r.Context(), w, http.StatusOK, "catalogo.html", CatalogPageData{
			User:             user,
			IsTeacher:        user != nil && user.Role == enums.UserRoleTeacher,
			Browse:           browse,
			SelectedCategory: derefOrZero(categoryID),
			SelectedLocation: derefOrZero(locationID),
		})
	}
}

func CategoryCreate(svc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := svc.CreateCategory(r.Context(), r.FormValue("nombre")); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/categorias_ubicaciones", http.StatusSeeOther)
	}
}

func LocationCreate(svc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := svc.CreateLocation(r.Context(), r.FormValue("nombre")); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/categorias_ubicaciones", http.StatusSeeOther)
	}
}

func CategoryDelete(svc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt(chi.URLParam(r, "id"))
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/categorias_ubicaciones", http.StatusSeeOther)
	}
}

func LocationDelete(svc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt(chi.URLParam(r, "id"))
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := svc.DeleteLocation(r.Context(), id); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/categorias_ubicaciones", http.StatusSeeOther)
	}
}
