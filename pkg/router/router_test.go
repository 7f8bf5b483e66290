package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacantina/backend/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRoutes(t *testing.T) {
	r := router.New()
	api := r.Group("/api")
	api.Get("/productos", "productos.index", ok)
	api.Get("/pedidos/{id}", "pedidos.show", ok)

	path, found := r.Path("pedidos.show")
	require.True(t, found)
	assert.Equal(t, "/api/pedidos/{id}", path)

	url, err := r.URL("pedidos.show", map[string]string{"id": "abc123"})
	require.NoError(t, err)
	assert.Equal(t, "/api/pedidos/abc123", url)

	_, err = r.URL("pedidos.show", nil)
	assert.Error(t, err, "missing params must not build a URL")

	_, err = r.URL("no.such.route", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var hits []string
	tag := func(name string) router.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits = append(hits, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := router.New()
	api := r.Group("/api", tag("outer"))
	admin := api.Group("/admin", tag("inner"))
	admin.Get("/x", "admin.x", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/x", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"outer", "inner"}, hits)
}

func TestRoutesListing(t *testing.T) {
	r := router.New()
	r.Get("/a", "a", ok)
	r.Post("/b", "b", ok)
	r.Get("/unnamed", "", ok)

	infos := r.Routes()
	assert.Len(t, infos, 2, "unnamed routes are not listed")
}
