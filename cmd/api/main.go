package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Arthur-020/labstock-backend/api/render"
	"github.com/Arthur-020/labstock-backend/api/routes"
	"github.com/Arthur-020/labstock-backend/internal/auth"
	"github.com/Arthur-020/labstock-backend/internal/catalog"
	"github.com/Arthur-020/labstock-backend/internal/components"
	"github.com/Arthur-020/labstock-backend/internal/movements"
	"github.com/Arthur-020/labstock-backend/internal/users"
	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/db"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
	"github.com/Arthur-020/labstock-backend/pkg/metrics"
	"github.com/Arthur-020/labstock-backend/pkg/migrate"
	"github.com/Arthur-020/labstock-backend/pkg/redis"
	"github.com/Arthur-020/labstock-backend/pkg/session"
	"github.com/Arthur-020/labstock-backend/pkg/storage/cloudinary"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.Session)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	renderer, err := render.New(logg)
	if err != nil {
		logg.Error(context.Background(), "failed to parse templates", err)
		os.Exit(1)
	}

	var uploader cloudinary.Uploader
	if cfg.Cloudinary.Configured() {
		client, err := cloudinary.NewClient(cfg.Cloudinary, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create cloudinary client", err)
			os.Exit(1)
		}
		uploader = client
	} else {
		logg.Warn(context.Background(), "cloudinary credentials missing, image handling disabled")
	}

	catalogService, err := catalog.NewService(catalog.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	componentService, err := components.NewService(components.NewRepository(dbClient.DB()), dbClient, uploader, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create components service", err)
		os.Exit(1)
	}
	movementService, err := movements.NewService(movements.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create movements service", err)
		os.Exit(1)
	}
	userRepo := users.NewRepository(dbClient.DB())
	userService, err := users.NewService(userRepo, cfg.Password, cfg.Bootstrap, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create users service", err)
		os.Exit(1)
	}
	authService, err := auth.NewService(userRepo, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	if err := userService.EnsureAdmin(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to seed admin account", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting labstock server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Renderer:    renderer,
			DB:          dbClient,
			Redis:       redisClient,
			Sessions:    sessionManager,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
			Auth:        authService,
			Catalog:     catalogService,
			Components:  componentService,
			Movements:   movementService,
			Users:       userService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "server stopped unexpectedly", err)
		os.Exit(1)
	}
}
