package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Arthur-020/labstock-backend/pkg/enums"
	"github.com/Arthur-020/labstock-backend/pkg/session"
)

func TestRequireRoleAllowsMatch(t *testing.T) {
	called := false
	handler := RequireRole(enums.UserRoleTeacher, testRenderer(t))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/usuarios", nil)
	req = req.WithContext(WithUser(req.Context(), &session.User{ID: 1, Role: enums.UserRoleTeacher}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRoleForbidsMismatch(t *testing.T) {
	handler := RequireRole(enums.UserRoleTeacher, testRenderer(t))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run on role mismatch")
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/usuarios", nil)
	req = req.WithContext(WithUser(req.Context(), &session.User{ID: 2, Role: enums.UserRoleStudent}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireRoleForbidsMissingIdentity(t *testing.T) {
	handler := RequireRole(enums.UserRoleTeacher, testRenderer(t))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run without identity")
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/usuarios", nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
