package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Arthur-020/labstock-backend/pkg/config"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func writeHealth(w http.ResponseWriter, status int, payload map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LabStock-Env", cfg.App.Env)
		writeHealth(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and the session store with a short
// timeout so a wedged dependency flips readiness instead of hanging it.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-LabStock-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"status": "ready"}
		healthy := true

		if dbP != nil {
			if err := dbP.Ping(ctx); err != nil {
				logg.Error(ctx, "database ping failed", err)
				checks["database"] = "down"
				healthy = false
			} else {
				checks["database"] = "up"
			}
		}
		if redisP != nil {
			if err := redisP.Ping(ctx); err != nil {
				logg.Error(ctx, "redis ping failed", err)
				checks["redis"] = "down"
				healthy = false
			} else {
				checks["redis"] = "up"
			}
		}

		if !healthy {
			checks["status"] = "degraded"
			writeHealth(w, http.StatusServiceUnavailable, checks)
			return
		}
		writeHealth(w, http.StatusOK, checks)
	}
}
