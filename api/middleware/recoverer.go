package middleware

import (
	"fmt"
	"net/http"

	"github.com/Arthur-020/labstock-backend/api/render"
	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
)

func Recoverer(renderer *render.Renderer, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err := fmt.Errorf("panic: %v", rec)
					ctx := r.Context()
					if logg != nil {
						ctx = logg.WithFields(ctx, map[string]any{"panic": rec})
						logg.Error(ctx, "panic.recovered", err)
					}
					renderer.Error(ctx, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "panic"))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
