package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Arthur-020/labstock-backend/api/controllers"
	"github.com/Arthur-020/labstock-backend/api/middleware"
	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/internal/auth"
	"github.com/Arthur-020/labstock-backend/internal/catalog"
	"github.com/Arthur-020/labstock-backend/internal/components"
	"github.com/Arthur-020/labstock-backend/internal/movements"
	"github.com/Arthur-020/labstock-backend/internal/users"
	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/db"
	"github.com/Arthur-020/labstock-backend/pkg/enums"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
	"github.com/Arthur-020/labstock-backend/pkg/metrics"
	redisclient "github.com/Arthur-020/labstock-backend/pkg/redis"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

// Deps bundles everything the route table wires together.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Renderer    *render.Renderer
	DB          *db.Client
	Redis       *redisclient.Client
	Sessions    session.Reader
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	Auth       auth.Service
	Catalog    catalog.Service
	Components components.Service
	Movements  movements.Service
	Users      users.Service
}

// NewRouter builds the full route table. Everything outside /login,
// /health and /metrics sits behind the session gate; mutating inventory,
// catalog, ledger and account routes additionally require the teacher role.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(d.Renderer, d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(d.Config))
		r.Get("/ready", controllers.HealthReady(d.Config, d.Logger, d.DB, d.Redis))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))

	r.Get("/login", controllers.LoginForm(d.Renderer))
	r.Post("/login", controllers.Login(d.Auth, d.Config.Session, d.Renderer))
	r.Get("/logout", controllers.Logout(d.Auth, d.Config.Session, d.Renderer))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Session(d.Config.Session, d.Sessions, d.Renderer, d.Logger))

		r.Get("/", controllers.Menu(d.Renderer))
		r.Get("/inventario", controllers.InventoryList(d.Components, d.Catalog, d.Renderer))
		r.Get("/categorias_ubicaciones", controllers.CatalogBrowse(d.Catalog, d.Renderer))
		r.Get("/historial", controllers.HistoryList(d.Movements, d.Components, d.Renderer))
		r.Get("/historial/buscar", controllers.HistorySearch(d.Movements, d.Components, d.Renderer))

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.UserRoleTeacher, d.Renderer))

			r.Get("/registro", controllers.RegisterForm(d.Catalog, d.Renderer))
			r.Post("/agregar", controllers.ComponentCreate(d.Components, d.Renderer))
			r.Get("/editar/{id}", controllers.EditForm(d.Components, d.Catalog, d.Renderer))
			r.Post("/editar/{id}", controllers.ComponentUpdate(d.Components, d.Renderer))
			r.Get("/eliminar/{id}", controllers.ComponentDelete(d.Components, d.Renderer))

			r.Post("/categorias_ubicaciones/categorias", controllers.CategoryCreate(d.Catalog, d.Renderer))
			r.Post("/categorias_ubicaciones/ubicaciones", controllers.LocationCreate(d.Catalog, d.Renderer))
			r.Post("/categorias_ubicaciones/categorias/eliminar/{id}", controllers.CategoryDelete(d.Catalog, d.Renderer))
			r.Post("/categorias_ubicaciones/ubicaciones/eliminar/{id}", controllers.LocationDelete(d.Catalog, d.Renderer))

			r.Post("/historial", controllers.MovementCreate(d.Movements, d.Renderer))

			r.Get("/usuarios", controllers.UsersList(d.Users, d.Renderer))
			r.Post("/usuarios", controllers.UserCreate(d.Users, d.Renderer))
			r.Post("/usuarios/eliminar/{id}", controllers.UserDelete(d.Users, d.Renderer))
		})
	})

	return r
}
