package rbac_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/rbac"
)

func TestPermit(t *testing.T) {
	assert.True(t, rbac.Permit(rbac.RolAdmin, rbac.RolAdmin))
	assert.True(t, rbac.Permit(rbac.RolEstudiante, rbac.RolEstudiante, rbac.RolAdmin))
	assert.False(t, rbac.Permit(rbac.RolEstudiante, rbac.RolAdmin))
	assert.False(t, rbac.Permit(rbac.Role("superuser"), rbac.RolAdmin))
	assert.False(t, rbac.Permit(rbac.Role(""), rbac.RolAdmin))
}

func TestRequireMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guarded := rbac.Require(rbac.RolAdmin)(next)

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "u1", "admin"))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("estudiante denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(middleware.WithIdentity(req.Context(), "u2", "estudiante"))
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("anonymous denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		guarded.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
