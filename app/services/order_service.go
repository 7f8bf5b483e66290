package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/repositories"
	"github.com/lacantina/backend/pkg/logger"
	"github.com/lacantina/backend/pkg/metrics"
)

// Rejection reasons for order creation, checked in a fixed order so the
// caller always sees the first violated precondition.
var (
	ErrSinItems            = errors.New("el pedido debe incluir al menos un producto")
	ErrItemInvalido        = errors.New("producto inexistente o cantidad inválida")
	ErrTotalInvalido       = errors.New("el total debe ser un número positivo")
	ErrMetodoPagoInvalido  = errors.New("método de pago inválido")
	ErrUsuarioNoEncontrado = errors.New("usuario no encontrado")
	ErrEstadoInvalido      = errors.New("estado de pedido inválido")
	ErrYaCancelado         = errors.New("el pedido ya está cancelado")
	ErrPedidoEntregado     = errors.New("no se puede cancelar un pedido entregado")
	ErrNoEntregado         = errors.New("solo se puede calificar un pedido entregado")
	ErrNoPropietario       = errors.New("el pedido pertenece a otro usuario")
)

// TiendaCerradaError rejects order creation while the store is closed,
// carrying the gate state so the response can show it.
type TiendaCerradaError struct {
	Status *models.StoreStatus
}

func (e *TiendaCerradaError) Error() string {
	return "la tienda está cerrada"
}

// ItemInput is one cart line as received from the client. Only the
// product reference and quantity are trusted; price and subtotal are
// resolved server-side.
type ItemInput struct {
	ProductoID string `json:"productoId" validate:"required"`
	Cantidad   int    `json:"cantidad"   validate:"required,integer,gte=1"`
}

// CrearPedidoInput is the order-creation request body.
type CrearPedidoInput struct {
	Productos  []ItemInput `json:"productos"`
	Total      float64     `json:"total"`
	MetodoPago string      `json:"metodoPago"`
}

type orderStore interface {
	Create(ctx context.Context, p *models.Pedido) error
	FindByID(ctx context.Context, id string) (*models.StoredPedido, error)
	FindByUser(ctx context.Context, userID string) ([]models.StoredPedido, error)
	FindPage(ctx context.Context, page, limit int) ([]models.StoredPedido, int64, error)
	UpdateEstado(ctx context.Context, id, estado string) (*models.StoredPedido, error)
	SetCalificacion(ctx context.Context, id string, c *models.Calificacion) error
}

type productReader interface {
	FindByID(ctx context.Context, id string) (*models.Producto, error)
}

type userReader interface {
	FindByID(ctx context.Context, id string) (*models.Usuario, error)
}

type broadcaster interface {
	BroadcastJSON(v interface{})
}

// OrderService assembles, lists and transitions orders.
type OrderService struct {
	orders   orderStore
	products productReader
	users    userReader
	store    *StoreService
	hub      broadcaster
}

func NewOrderService(orders orderStore, products productReader, users userReader, store *StoreService, hub broadcaster) *OrderService {
	return &OrderService{
		orders:   orders,
		products: products,
		users:    users,
		store:    store,
		hub:      hub,
	}
}

// Crear validates the request against the store gate and the catalog,
// resolves every line server-side and persists a self-contained order
// snapshot in a single write. Any resolution failure rejects the whole
// operation; no partial order is ever stored.
func (s *OrderService) Crear(ctx context.Context, callerID string, in CrearPedidoInput) (*models.Pedido, error) {
	status, err := s.store.GetStatus(ctx)
	if err != nil {
		return nil, err
	}
	if !status.IsOpen {
		metrics.OrdersRejected.WithLabelValues("tienda_cerrada").Inc()
		return nil, &TiendaCerradaError{Status: status}
	}

	if len(in.Productos) == 0 {
		metrics.OrdersRejected.WithLabelValues("items").Inc()
		return nil, ErrSinItems
	}
	for _, item := range in.Productos {
		if item.ProductoID == "" || item.Cantidad < 1 {
			metrics.OrdersRejected.WithLabelValues("items").Inc()
			return nil, ErrItemInvalido
		}
	}

	if in.Total <= 0 {
		metrics.OrdersRejected.WithLabelValues("total").Inc()
		return nil, ErrTotalInvalido
	}

	if !models.ValidMetodoPago(in.MetodoPago) {
		metrics.OrdersRejected.WithLabelValues("metodo_pago").Inc()
		return nil, ErrMetodoPagoInvalido
	}

	user, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, repositories.ErrNotFound) {
		metrics.OrdersRejected.WithLabelValues("usuario").Inc()
		return nil, ErrUsuarioNoEncontrado
	}
	if err != nil {
		return nil, err
	}

	items := make([]models.PedidoItem, 0, len(in.Productos))
	var total float64
	for _, line := range in.Productos {
		producto, err := s.products.FindByID(ctx, line.ProductoID)
		if errors.Is(err, repositories.ErrNotFound) {
			metrics.OrdersRejected.WithLabelValues("items").Inc()
			return nil, ErrItemInvalido
		}
		if err != nil {
			return nil, err
		}

		subtotal := producto.Precio * float64(line.Cantidad)
		items = append(items, models.PedidoItem{
			ProductoID:          producto.ID,
			ProductoNombre:      producto.Nombre,
			ProductoDescripcion: producto.Descripcion,
			ProductoPrecio:      producto.Precio,
			ProductoImagen:      producto.Imagen,
			ProductoCategoria:   producto.Categoria,
			Cantidad:            line.Cantidad,
			Subtotal:            subtotal,
		})
		total += subtotal
	}

	pedido := &models.Pedido{
		Usuario:       user.ID,
		ClienteNombre: user.Nombre,
		ClienteEmail:  user.Email,
		Productos:     items,
		Estado:        models.EstadoPendiente,
		Total:         total,
		MetodoPago:    in.MetodoPago,
		Fecha:         time.Now(),
	}
	if err := s.orders.Create(ctx, pedido); err != nil {
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	logger.WithCtx(ctx).Info("pedido creado", "resumen", Resumen(pedido))
	s.notify("pedido_creado", pedido)
	return pedido, nil
}

// FindByID returns one order with display fields resolved.
func (s *OrderService) FindByID(ctx context.Context, id string) (*models.Pedido, error) {
	sp, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p := s.Format(ctx, *sp)
	return &p, nil
}

// ListByUser returns a user's orders, newest first, display-ready.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]models.Pedido, error) {
	stored, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.formatAll(ctx, stored), nil
}

// ListPage returns one page of all orders plus the total count.
func (s *OrderService) ListPage(ctx context.Context, page, limit int) ([]models.Pedido, int64, error) {
	stored, total, err := s.orders.FindPage(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.formatAll(ctx, stored), total, nil
}

// CambiarEstado overwrites the lifecycle state. Any known state is
// accepted as a target, including jumps out of a terminal state, which
// are logged since they usually indicate operator error.
func (s *OrderService) CambiarEstado(ctx context.Context, id, estado string) (*models.Pedido, error) {
	if !models.ValidEstado(estado) {
		return nil, ErrEstadoInvalido
	}

	current, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if models.EstadoTerminal(current.Estado) && estado != current.Estado {
		logger.WithCtx(ctx).Warn("pedido sale de estado terminal",
			"pedido", id, "de", current.Estado, "a", estado)
	}

	updated, err := s.orders.UpdateEstado(ctx, id, estado)
	if err != nil {
		return nil, err
	}

	p := s.Format(ctx, *updated)
	s.notify("estado_actualizado", &p)
	return &p, nil
}

// Cancelar moves an order to cancelado unless it already reached a
// terminal state.
func (s *OrderService) Cancelar(ctx context.Context, id string) (*models.Pedido, error) {
	current, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch current.Estado {
	case models.EstadoCancelado:
		return nil, ErrYaCancelado
	case models.EstadoEntregado:
		return nil, ErrPedidoEntregado
	}

	updated, err := s.orders.UpdateEstado(ctx, id, models.EstadoCancelado)
	if err != nil {
		return nil, err
	}

	p := s.Format(ctx, *updated)
	s.notify("estado_actualizado", &p)
	return &p, nil
}

// Calificar attaches a rating to a delivered order owned by the caller.
func (s *OrderService) Calificar(ctx context.Context, callerID, pedidoID string, c *models.Calificacion) error {
	current, err := s.orders.FindByID(ctx, pedidoID)
	if err != nil {
		return err
	}
	if current.Usuario.Hex() != callerID {
		return ErrNoPropietario
	}
	if current.Estado != models.EstadoEntregado {
		return ErrNoEntregado
	}
	return s.orders.SetCalificacion(ctx, pedidoID, c)
}

// Format produces the display shape for one stored order. Denormalized
// records pass through unchanged; legacy records resolve customer and
// product fields via live lookups, substituting placeholders when the
// referenced entity no longer exists.
func (s *OrderService) Format(ctx context.Context, sp models.StoredPedido) models.Pedido {
	if !sp.Legacy {
		return sp.Pedido
	}

	p := sp.Pedido
	if p.ClienteNombre == "" {
		if user, err := s.users.FindByID(ctx, p.Usuario.Hex()); err == nil {
			p.ClienteNombre = user.Nombre
			p.ClienteEmail = user.Email
		} else {
			p.ClienteNombre = "Usuario no encontrado"
		}
	}

	for i, item := range p.Productos {
		if item.ProductoNombre != "" {
			continue
		}
		producto, err := s.products.FindByID(ctx, item.ProductoID.Hex())
		if err != nil {
			p.Productos[i].ProductoNombre = "Producto no encontrado"
			continue
		}
		p.Productos[i].ProductoNombre = producto.Nombre
		p.Productos[i].ProductoDescripcion = producto.Descripcion
		p.Productos[i].ProductoPrecio = producto.Precio
		p.Productos[i].ProductoImagen = producto.Imagen
		p.Productos[i].ProductoCategoria = producto.Categoria
		if p.Productos[i].Subtotal == 0 {
			p.Productos[i].Subtotal = producto.Precio * float64(item.Cantidad)
		}
	}
	return p
}

func (s *OrderService) formatAll(ctx context.Context, stored []models.StoredPedido) []models.Pedido {
	out := make([]models.Pedido, 0, len(stored))
	for _, sp := range stored {
		out = append(out, s.Format(ctx, sp))
	}
	return out
}

func (s *OrderService) notify(tipo string, p *models.Pedido) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastJSON(map[string]interface{}{
		"tipo":   tipo,
		"pedido": p,
	})
}

// Resumen is a one-line human summary used in websocket pushes and logs.
func Resumen(p *models.Pedido) string {
	return fmt.Sprintf("pedido %s de %s: %d items, total %.2f (%s)",
		p.ID.Hex(), p.ClienteNombre, len(p.Productos), p.Total, p.Estado)
}
