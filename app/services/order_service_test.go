package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/repositories"
	"github.com/lacantina/backend/app/services"
)

// ─── in-memory fakes ─────────────────────────────────────────────────────────

type fakeOrders struct {
	byID map[string]*models.Pedido
}

func newFakeOrders() *fakeOrders {
	return &fakeOrders{byID: map[string]*models.Pedido{}}
}

func (f *fakeOrders) Create(_ context.Context, p *models.Pedido) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.byID[p.ID.Hex()] = &cp
	return nil
}

func (f *fakeOrders) tagged(p models.Pedido) models.StoredPedido {
	legacy := p.ClienteNombre == ""
	for _, item := range p.Productos {
		if item.ProductoNombre == "" {
			legacy = true
		}
	}
	return models.StoredPedido{Pedido: p, Legacy: legacy}
}

func (f *fakeOrders) FindByID(_ context.Context, id string) (*models.StoredPedido, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	sp := f.tagged(*p)
	return &sp, nil
}

func (f *fakeOrders) FindByUser(_ context.Context, userID string) ([]models.StoredPedido, error) {
	out := []models.StoredPedido{}
	for _, p := range f.byID {
		if p.Usuario.Hex() == userID {
			out = append(out, f.tagged(*p))
		}
	}
	return out, nil
}

func (f *fakeOrders) FindPage(_ context.Context, page, limit int) ([]models.StoredPedido, int64, error) {
	out := []models.StoredPedido{}
	for _, p := range f.byID {
		out = append(out, f.tagged(*p))
	}
	return out, int64(len(f.byID)), nil
}

func (f *fakeOrders) UpdateEstado(_ context.Context, id, estado string) (*models.StoredPedido, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p.Estado = estado
	sp := f.tagged(*p)
	return &sp, nil
}

func (f *fakeOrders) SetCalificacion(_ context.Context, id string, c *models.Calificacion) error {
	p, ok := f.byID[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Calificacion = c
	return nil
}

type fakeProducts struct {
	byID map[string]models.Producto
}

func (f *fakeProducts) FindByID(_ context.Context, id string) (*models.Producto, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

type fakeUsers struct {
	byID map[string]models.Usuario
}

func (f *fakeUsers) FindByID(_ context.Context, id string) (*models.Usuario, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

type fakeStoreRepo struct {
	status models.StoreStatus
}

func (f *fakeStoreRepo) Get(_ context.Context) (*models.StoreStatus, error) {
	s := f.status
	return &s, nil
}

func (f *fakeStoreRepo) Set(_ context.Context, isOpen bool, updatedBy, notes string) (*models.StoreStatus, error) {
	f.status.IsOpen = isOpen
	f.status.LastUpdated = time.Now()
	f.status.Notes = notes
	s := f.status
	return &s, nil
}

// ─── fixtures ────────────────────────────────────────────────────────────────

type fixture struct {
	svc      *services.OrderService
	orders   *fakeOrders
	products *fakeProducts
	users    *fakeUsers
	gate     *fakeStoreRepo

	userID  string
	cafeID  string // producto: café, 100
	tortaID string // producto: torta, 50
}

func newFixture(open bool) *fixture {
	userOID := primitive.NewObjectID()
	cafeOID := primitive.NewObjectID()
	tortaOID := primitive.NewObjectID()

	f := &fixture{
		orders: newFakeOrders(),
		products: &fakeProducts{byID: map[string]models.Producto{
			cafeOID.Hex(): {
				ID: cafeOID, Nombre: "Café", Descripcion: "Café de máquina",
				Precio: 100, Categoria: models.CategoriaBebida, Disponible: true,
			},
			tortaOID.Hex(): {
				ID: tortaOID, Nombre: "Torta", Descripcion: "Porción de torta",
				Precio: 50, Categoria: models.CategoriaComida, Disponible: true,
			},
		}},
		users: &fakeUsers{byID: map[string]models.Usuario{
			userOID.Hex(): {
				ID: userOID, Nombre: "Belen Ferreiro",
				Email: "belen@correo.um.edu.uy", Rol: models.RolEstudiante,
			},
		}},
		gate:    &fakeStoreRepo{status: models.StoreStatus{IsOpen: open}},
		userID:  userOID.Hex(),
		cafeID:  cafeOID.Hex(),
		tortaID: tortaOID.Hex(),
	}
	f.svc = services.NewOrderService(f.orders, f.products, f.users, services.NewStoreService(f.gate), nil)
	return f
}

func validInput(f *fixture) services.CrearPedidoInput {
	return services.CrearPedidoInput{
		Productos: []services.ItemInput{
			{ProductoID: f.cafeID, Cantidad: 1},
			{ProductoID: f.tortaID, Cantidad: 3},
		},
		Total:      250,
		MetodoPago: models.PagoEfectivo,
	}
}

// ─── creation ────────────────────────────────────────────────────────────────

func TestCrearPedido(t *testing.T) {
	f := newFixture(true)

	pedido, err := f.svc.Crear(context.Background(), f.userID, validInput(f))
	require.NoError(t, err)

	assert.Equal(t, models.EstadoPendiente, pedido.Estado)
	assert.Equal(t, 250.0, pedido.Total)
	assert.Equal(t, models.PagoEfectivo, pedido.MetodoPago)
	assert.Equal(t, "Belen Ferreiro", pedido.ClienteNombre)
	assert.Equal(t, "belen@correo.um.edu.uy", pedido.ClienteEmail)
	assert.False(t, pedido.Fecha.IsZero())

	require.Len(t, pedido.Productos, 2)
	assert.Equal(t, 100.0, pedido.Productos[0].Subtotal)
	assert.Equal(t, 150.0, pedido.Productos[1].Subtotal)
	assert.Equal(t, "Café", pedido.Productos[0].ProductoNombre)
	assert.Equal(t, "Torta", pedido.Productos[1].ProductoNombre)

	assert.Len(t, f.orders.byID, 1)
}

func TestCrearPedidoSnapshotFrozen(t *testing.T) {
	f := newFixture(true)

	pedido, err := f.svc.Crear(context.Background(), f.userID, validInput(f))
	require.NoError(t, err)

	// A later catalog edit must not change the stored line item.
	cafe := f.products.byID[f.cafeID]
	cafe.Precio = 999
	cafe.Nombre = "Café premium"
	f.products.byID[f.cafeID] = cafe

	stored, err := f.svc.FindByID(context.Background(), pedido.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Café", stored.Productos[0].ProductoNombre)
	assert.Equal(t, 100.0, stored.Productos[0].ProductoPrecio)
}

func TestCrearPedidoTiendaCerrada(t *testing.T) {
	f := newFixture(false)

	_, err := f.svc.Crear(context.Background(), f.userID, validInput(f))

	var closed *services.TiendaCerradaError
	require.ErrorAs(t, err, &closed)
	assert.False(t, closed.Status.IsOpen)
	assert.Empty(t, f.orders.byID, "no order may be persisted while closed")
}

func TestCrearPedidoValidaciones(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*services.CrearPedidoInput)
		wantErr error
	}{
		{"sin items", func(in *services.CrearPedidoInput) {
			in.Productos = nil
		}, services.ErrSinItems},
		{"cantidad cero", func(in *services.CrearPedidoInput) {
			in.Productos[0].Cantidad = 0
		}, services.ErrItemInvalido},
		{"cantidad negativa", func(in *services.CrearPedidoInput) {
			in.Productos[1].Cantidad = -2
		}, services.ErrItemInvalido},
		{"total cero", func(in *services.CrearPedidoInput) {
			in.Total = 0
		}, services.ErrTotalInvalido},
		{"total negativo", func(in *services.CrearPedidoInput) {
			in.Total = -10
		}, services.ErrTotalInvalido},
		{"metodo de pago desconocido", func(in *services.CrearPedidoInput) {
			in.MetodoPago = "bitcoin"
		}, services.ErrMetodoPagoInvalido},
		{"producto inexistente", func(in *services.CrearPedidoInput) {
			in.Productos[0].ProductoID = primitive.NewObjectID().Hex()
		}, services.ErrItemInvalido},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(true)
			in := validInput(f)
			tc.mutate(&in)

			_, err := f.svc.Crear(context.Background(), f.userID, in)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, f.orders.byID)
		})
	}
}

func TestCrearPedidoUsuarioInexistente(t *testing.T) {
	f := newFixture(true)

	_, err := f.svc.Crear(context.Background(), primitive.NewObjectID().Hex(), validInput(f))
	assert.ErrorIs(t, err, services.ErrUsuarioNoEncontrado)
	assert.Empty(t, f.orders.byID)
}

// ─── lifecycle ───────────────────────────────────────────────────────────────

func TestCambiarEstado(t *testing.T) {
	f := newFixture(true)
	pedido, err := f.svc.Crear(context.Background(), f.userID, validInput(f))
	require.NoError(t, err)

	updated, err := f.svc.CambiarEstado(context.Background(), pedido.ID.Hex(), models.EstadoPreparando)
	require.NoError(t, err)
	assert.Equal(t, models.EstadoPreparando, updated.Estado)

	_, err = f.svc.CambiarEstado(context.Background(), pedido.ID.Hex(), "perdido")
	assert.ErrorIs(t, err, services.ErrEstadoInvalido)
	assert.Equal(t, models.EstadoPreparando, f.orders.byID[pedido.ID.Hex()].Estado)
}

func TestCancelar(t *testing.T) {
	f := newFixture(true)
	pedido, err := f.svc.Crear(context.Background(), f.userID, validInput(f))
	require.NoError(t, err)

	updated, err := f.svc.Cancelar(context.Background(), pedido.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, models.EstadoCancelado, updated.Estado)

	_, err = f.svc.Cancelar(context.Background(), pedido.ID.Hex())
	assert.ErrorIs(t, err, services.ErrYaCancelado)
	assert.Equal(t, models.EstadoCancelado, f.orders.byID[pedido.ID.Hex()].Estado)
}

func TestCancelarEntregado(t *testing.T) {
	f := newFixture(true)
	pedido, err := f.svc.Crear(context.Background(), f.userID, validInput(f))
	require.NoError(t, err)

	_, err = f.svc.CambiarEstado(context.Background(), pedido.ID.Hex(), models.EstadoEntregado)
	require.NoError(t, err)

	_, err = f.svc.Cancelar(context.Background(), pedido.ID.Hex())
	assert.ErrorIs(t, err, services.ErrPedidoEntregado)
	assert.Equal(t, models.EstadoEntregado, f.orders.byID[pedido.ID.Hex()].Estado)
}

// ─── rating ──────────────────────────────────────────────────────────────────

func TestCalificar(t *testing.T) {
	f := newFixture(true)
	pedido, err := f.svc.Crear(context.Background(), f.userID, validInput(f))
	require.NoError(t, err)
	id := pedido.ID.Hex()

	c := &models.Calificacion{Puntaje: 5, Comentario: "excelente"}

	err = f.svc.Calificar(context.Background(), f.userID, id, c)
	assert.ErrorIs(t, err, services.ErrNoEntregado)

	_, err = f.svc.CambiarEstado(context.Background(), id, models.EstadoEntregado)
	require.NoError(t, err)

	err = f.svc.Calificar(context.Background(), primitive.NewObjectID().Hex(), id, c)
	assert.ErrorIs(t, err, services.ErrNoPropietario)

	err = f.svc.Calificar(context.Background(), f.userID, id, c)
	require.NoError(t, err)
	assert.Equal(t, 5, f.orders.byID[id].Calificacion.Puntaje)
}

// ─── legacy formatting ───────────────────────────────────────────────────────

func TestListByUserResolvesLegacy(t *testing.T) {
	f := newFixture(true)
	ctx := context.Background()

	// New-style order, fully denormalized.
	_, err := f.svc.Crear(ctx, f.userID, validInput(f))
	require.NoError(t, err)

	// Legacy order: references only, no denormalized display fields.
	userOID, _ := primitive.ObjectIDFromHex(f.userID)
	cafeOID, _ := primitive.ObjectIDFromHex(f.cafeID)
	deletedOID := primitive.NewObjectID()
	legacy := &models.Pedido{
		Usuario: userOID,
		Productos: []models.PedidoItem{
			{ProductoID: cafeOID, Cantidad: 2},
			{ProductoID: deletedOID, Cantidad: 1},
		},
		Estado:     models.EstadoEntregado,
		Total:      200,
		MetodoPago: models.PagoTarjeta,
		Fecha:      time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, f.orders.Create(ctx, legacy))

	pedidos, err := f.svc.ListByUser(ctx, f.userID)
	require.NoError(t, err)
	require.Len(t, pedidos, 2)

	for _, p := range pedidos {
		assert.Equal(t, "Belen Ferreiro", p.ClienteNombre)
		assert.NotEmpty(t, p.Productos[0].ProductoNombre)
	}

	resolved, err := f.svc.FindByID(ctx, legacy.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, "Café", resolved.Productos[0].ProductoNombre)
	assert.Equal(t, 200.0, resolved.Productos[0].Subtotal)
	assert.Equal(t, "Producto no encontrado", resolved.Productos[1].ProductoNombre)
}
