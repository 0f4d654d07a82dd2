// Package render executes the embedded HTML templates and maps service
// errors onto status codes and the shared error page.
package render

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"

	pkgerrors "github.com/Arthur-020/labstock-backend/pkg/errors"
	"github.com/Arthur-020/labstock-backend/pkg/logger"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer holds the parsed template set.
type Renderer struct {
	templates *template.Template
	log       *logger.Logger
}

// New parses the embedded templates once at startup.
func New(log *logger.Logger) (*Renderer, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: templates, log: log}, nil
}

// HTML renders the named template. The template executes into a buffer
// first so a render failure never leaves a half-written page.
func (r *Renderer) HTML(ctx context.Context, w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		r.log.Error(r.log.WithField(ctx, "template", name), "template render failed", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// ErrorPageData is what the shared error template receives.
type ErrorPageData struct {
	Status  int
	Message string
}

// Error resolves the typed error, logs the full chain and renders the
// error page with a safe public message.
func (r *Renderer) Error(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}

	typed := pkgerrors.As(err)
	if typed == nil {
		typed = pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unexpected error")
	}

	meta := pkgerrors.MetadataFor(typed.Code())
	msg := meta.PublicMessage
	switch typed.Code() {
	case pkgerrors.CodeValidation,
		pkgerrors.CodeUnauthorized,
		pkgerrors.CodeForbidden,
		pkgerrors.CodeNotFound,
		pkgerrors.CodeConflict:
		if m := typed.Message(); m != "" {
			msg = m
		}
	}

	dump := pkgerrors.Dump(err)
	logCtx := r.log.WithFields(ctx, map[string]any{
		"error_code":    dump.Code,
		"error_chain":   dump.Chain,
		"pg_code":       dump.PGCode,
		"pg_detail":     dump.PGDetail,
		"pg_constraint": dump.PGConstraint,
	})
	if meta.HTTPStatus >= http.StatusInternalServerError {
		r.log.Error(logCtx, "request failed", err)
	} else {
		r.log.Warn(logCtx, "request rejected: "+dump.TopMessage)
	}

	r.HTML(ctx, w, meta.HTTPStatus, "error.html", ErrorPageData{
		Status:  meta.HTTPStatus,
		Message: msg,
	})
}
