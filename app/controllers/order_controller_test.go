package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lacantina/backend/app/controllers"
	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/repositories"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/rbac"
)

type memOrders struct {
	byID map[string]*models.Pedido
}

func (m *memOrders) Create(_ context.Context, p *models.Pedido) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	m.byID[p.ID.Hex()] = &cp
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id string) (*models.StoredPedido, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.StoredPedido{Pedido: *p}, nil
}

func (m *memOrders) FindByUser(_ context.Context, userID string) ([]models.StoredPedido, error) {
	out := []models.StoredPedido{}
	for _, p := range m.byID {
		if p.Usuario.Hex() == userID {
			out = append(out, models.StoredPedido{Pedido: *p})
		}
	}
	return out, nil
}

func (m *memOrders) FindPage(_ context.Context, page, limit int) ([]models.StoredPedido, int64, error) {
	out := []models.StoredPedido{}
	for _, p := range m.byID {
		out = append(out, models.StoredPedido{Pedido: *p})
	}
	return out, int64(len(out)), nil
}

func (m *memOrders) UpdateEstado(_ context.Context, id, estado string) (*models.StoredPedido, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Estado = estado
	return &models.StoredPedido{Pedido: *p}, nil
}

func (m *memOrders) SetCalificacion(_ context.Context, id string, c *models.Calificacion) error {
	p, ok := m.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Calificacion = c
	return nil
}

type memProducts struct {
	byID map[string]models.Producto
}

func (m *memProducts) FindByID(_ context.Context, id string) (*models.Producto, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

type memUsers struct {
	byID map[string]models.Usuario
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.Usuario, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

type memGate struct {
	status models.StoreStatus
}

func (m *memGate) Get(context.Context) (*models.StoreStatus, error) {
	s := m.status
	return &s, nil
}

func (m *memGate) Set(_ context.Context, isOpen bool, _, notes string) (*models.StoreStatus, error) {
	m.status.IsOpen = isOpen
	m.status.LastUpdated = time.Now()
	m.status.Notes = notes
	s := m.status
	return &s, nil
}

type harness struct {
	ctrl   *controllers.OrderController
	orders *memOrders
	userID string
	cafeID string
}

func newHarness(open bool) *harness {
	userOID := primitive.NewObjectID()
	cafeOID := primitive.NewObjectID()

	orders := &memOrders{byID: map[string]*models.Pedido{}}
	svc := services.NewOrderService(
		orders,
		&memProducts{byID: map[string]models.Producto{
			cafeOID.Hex(): {ID: cafeOID, Nombre: "Café", Precio: 100, Categoria: models.CategoriaBebida},
		}},
		&memUsers{byID: map[string]models.Usuario{
			userOID.Hex(): {ID: userOID, Nombre: "Felipe Berton", Email: "felipe@correo.um.edu.uy"},
		}},
		services.NewStoreService(&memGate{status: models.StoreStatus{IsOpen: open, LastUpdated: time.Now()}}),
		nil,
	)

	return &harness{
		ctrl:   controllers.NewOrderController(svc),
		orders: orders,
		userID: userOID.Hex(),
		cafeID: cafeOID.Hex(),
	}
}

func authed(req *http.Request, userID, role string) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), userID, role))
}

func TestCreateClosedStore(t *testing.T) {
	h := newHarness(false)

	body := `{"productos":[{"productoId":"` + h.cafeID + `","cantidad":1}],"total":100,"metodoPago":"efectivo"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/pedidos", strings.NewReader(body)),
		h.userID, models.RolEstudiante)
	rec := httptest.NewRecorder()

	h.ctrl.Create(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"isOpen":false`)
	assert.Empty(t, h.orders.byID)
}

func TestCreateOpenStore(t *testing.T) {
	h := newHarness(true)

	body := `{"productos":[{"productoId":"` + h.cafeID + `","cantidad":2}],"total":200,"metodoPago":"tarjeta"}`
	req := authed(httptest.NewRequest(http.MethodPost, "/api/pedidos", strings.NewReader(body)),
		h.userID, models.RolEstudiante)
	rec := httptest.NewRecorder()

	h.ctrl.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var out struct {
		Data models.Pedido `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, models.EstadoPendiente, out.Data.Estado)
	assert.Equal(t, 200.0, out.Data.Total)
	assert.Equal(t, "Felipe Berton", out.Data.ClienteNombre)
	assert.Len(t, h.orders.byID, 1)
}

// A student hitting the admin-only status endpoint must be rejected by
// the role gate before the handler runs, leaving the order untouched.
func TestEstadoRequiresAdmin(t *testing.T) {
	h := newHarness(true)

	pedido := &models.Pedido{Usuario: primitive.NewObjectID(), Estado: models.EstadoPendiente}
	require.NoError(t, h.orders.Create(context.Background(), pedido))

	guarded := rbac.Require(rbac.RolAdmin)(http.HandlerFunc(h.ctrl.Estado))

	mux := chi.NewRouter()
	mux.Put("/api/pedidos/{id}/estado", guarded.ServeHTTP)

	req := authed(httptest.NewRequest(http.MethodPut,
		"/api/pedidos/"+pedido.ID.Hex()+"/estado",
		strings.NewReader(`{"estado":"listo"}`)),
		h.userID, models.RolEstudiante)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, models.EstadoPendiente, h.orders.byID[pedido.ID.Hex()].Estado)
}

func TestEstadoAsAdmin(t *testing.T) {
	h := newHarness(true)

	pedido := &models.Pedido{Usuario: primitive.NewObjectID(), Estado: models.EstadoPendiente, ClienteNombre: "X"}
	require.NoError(t, h.orders.Create(context.Background(), pedido))

	mux := chi.NewRouter()
	mux.Put("/api/pedidos/{id}/estado", h.ctrl.Estado)

	req := authed(httptest.NewRequest(http.MethodPut,
		"/api/pedidos/"+pedido.ID.Hex()+"/estado",
		strings.NewReader(`{"estado":"listo"}`)),
		h.userID, models.RolAdmin)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.EstadoListo, h.orders.byID[pedido.ID.Hex()].Estado)
}
