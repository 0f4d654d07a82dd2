package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/api/validators"
	"github.com/Arthur-020/labstock-backend/internal/catalog"
	"github.com/Arthur-020/labstock-backend/internal/components"
	"github.com/Arthur-020/labstock-backend/pkg/db/models"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// InventoryPageData feeds the inventory listing template. Search and
// CategoryID echo the active filters back into the form.
type InventoryPageData struct {
	User             *session.User
	IsTeacher        bool
	Components       []components.Row
	Categories       []models.Category
	Search           string
	SelectedCategory int
}

// ComponentFormData feeds the registration and edit templates. The
// Selected fields are zero when the component has no category or location.
type ComponentFormData struct {
	User             *session.User
	Component        *models.Component
	Categories       []models.Category
	Locations        []models.Location
	SelectedCategory int
	SelectedLocation int
}

func derefOrZero(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

// InventoryList renders the filtered inventory. Both roles can browse;
// only teachers see the mutation links.
func InventoryList(componentSvc components.Service, catalogSvc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.QueryOptionalInt(r, "tipo")
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		search := validators.SanitizeString(r.URL.Query().Get("busqueda"), 120)

		rows, err := componentSvc.List(r.Context(), search, categoryID)
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		categories, err := catalogSvc.Categories(r.Context())
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}

		user := middleware.UserFromContext(r.Context())
		renderer.HTML(r.Context(), w, http.StatusOK, "inventario.html", InventoryPageData{
			User:             user,
			IsTeacher:        user != nil && user.Role == enums.UserRoleTeacher,
			Components:       rows,
			Categories:       categories,
			Search:           search,
			SelectedCategory: derefOrZero(categoryID),
		})
	}
}

// RegisterForm renders the blank component form with the catalog options.
func RegisterForm(catalogSvc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := catalogSvc.Categories(r.Context())
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		locations, err := catalogSvc.Locations(r.Context())
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		renderer.HTML(r.Context(), w, http.StatusOK, "registro.html", ComponentFormData{
			User:       middleware.UserFromContext(r.Context()),
			Categories: categories,
			Locations:  locations,
		})
	}
}

func componentInputFromForm(r *http.Request) (components.CreateInput, error) {
	var input components.CreateInput

	quantity, err := validators.FormInt(r, "cantidad")
	if err != nil {
		return input, err
	}
	categoryID, err := validators.FormOptionalInt(r, "tipo")
	if err != nil {
		return input, err
	}
	locationID, err := validators.FormOptionalInt(r, "ubicacion")
	if err != nil {
		return input, err
	}
	image, imageName, err := validators.FormFile(r, "imagen")
	if err != nil {
		return input, err
	}

	input = components.CreateInput{
		Name:        validators.SanitizeString(r.FormValue("nombre"), 120),
		Description: validators.SanitizeString(r.FormValue("descripcion"), 500),
		Quantity:    quantity,
		CategoryID:  categoryID,
		LocationID:  locationID,
		Status:      validators.SanitizeString(r.FormValue("estado"), 60),
		Image:       image,
		ImageName:   imageName,
	}
	return input, nil
}

// ComponentCreate handles the registration form submit.
func ComponentCreate(componentSvc components.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(validators.MaxImageBytes); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		input, err := componentInputFromForm(r)
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if _, err := componentSvc.Create(r.Context(), input); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/inventario", http.StatusSeeOther)
	}
}

// EditForm renders the pre-filled component form.
func EditForm(componentSvc components.Service, catalogSvc catalog.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt(chi.URLParam(r, "id"))
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		component, err := componentSvc.GetForEdit(r.Context(), id)
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		categories, err := catalogSvc.Categories(r.Context())
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		locations, err := catalogSvc.Locations(r.Context())
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		renderer.HTML(r.Context(), w, http.StatusOK, "editar.html", ComponentFormData{
			User:             middleware.UserFromContext(r.Context()),
			Component:        component,
			Categories:       categories,
			Locations:        locations,
			SelectedCategory: derefOrZero(component.CategoryID),
			SelectedLocation: derefOrZero(component.LocationID),
		})
	}
}

// ComponentUpdate handles the edit form submit.
func ComponentUpdate(componentSvc components.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt(chi.URLParam(r, "id"))
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := r.ParseMultipartForm(validators.MaxImageBytes); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		createInput, err := componentInputFromForm(r)
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		input := components.UpdateInput{
			ID:          id,
			Name:        createInput.Name,
			Description: createInput.Description,
			Quantity:    createInput.Quantity,
			CategoryID:  createInput.CategoryID,
			LocationID:  createInput.LocationID,
			Status:      createInput.Status,
			Image:       createInput.Image,
			ImageName:   createInput.ImageName,
		}
		if err := componentSvc.Update(r.Context(), input); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/inventario", http.StatusSeeOther)
	}
}

// ComponentDelete removes the component, its ledger rows and its image.
func ComponentDelete(componentSvc components.Service, renderer *render.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt(chi.URLParam(r, "id"))
		if err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		if err := componentSvc.Delete(r.Context(), id); err != nil {
			renderer.Error(r.Context(), w, err)
			return
		}
		http.Redirect(w, r, "/inventario", http.StatusSeeOther)
	}
}
