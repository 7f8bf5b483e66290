package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order lifecycle states. Entregado and Cancelado are terminal.
const (
	EstadoPendiente  = "pendiente"
	EstadoConfirmado = "confirmado"
	EstadoPreparando = "preparando"
	EstadoListo      = "listo"
	EstadoEntregado  = "entregado"
	EstadoCancelado  = "cancelado"
)

// Estados lists every valid order state.
var Estados = []string{
	EstadoPendiente, EstadoConfirmado, EstadoPreparando,
	EstadoListo, EstadoEntregado, EstadoCancelado,
}

// ValidEstado reports whether e is a known order state.
func ValidEstado(e string) bool {
	for _, v := range Estados {
		if e == v {
			return true
		}
	}
	return false
}

// EstadoTerminal reports whether no further lifecycle transition is
// permitted from e by policy.
func EstadoTerminal(e string) bool {
	return e == EstadoEntregado || e == EstadoCancelado
}

// Payment methods form a closed set.
const (
	PagoEfectivo    = "efectivo"
	PagoTarjeta     = "tarjeta"
	PagoMercadoPago = "mercadopago"
)

// ValidMetodoPago reports whether m is a known payment method.
func ValidMetodoPago(m string) bool {
	return m == PagoEfectivo || m == PagoTarjeta || m == PagoMercadoPago
}

// PedidoItem is one order line. The producto* fields duplicate the catalog
// entry at order time; once written they never change, even if the source
// product is edited or deleted.
type PedidoItem struct {
	ProductoID          primitive.ObjectID `bson:"productoId"                    json:"productoId"`
	ProductoNombre      string             `bson:"productoNombre,omitempty"      json:"productoNombre"`
	ProductoDescripcion string             `bson:"productoDescripcion,omitempty" json:"productoDescripcion,omitempty"`
	ProductoPrecio      float64            `bson:"productoPrecio"                json:"productoPrecio"`
	ProductoImagen      string             `bson:"productoImagen,omitempty"      json:"productoImagen,omitempty"`
	ProductoCategoria   string             `bson:"productoCategoria,omitempty"   json:"productoCategoria"`
	Cantidad            int                `bson:"cantidad"                      json:"cantidad"`
	Subtotal            float64            `bson:"subtotal"                      json:"subtotal"`
}

// Calificacion is the optional post-delivery rating.
type Calificacion struct {
	Puntaje    int    `bson:"puntaje"              json:"puntaje"`
	Comentario string `bson:"comentario,omitempty" json:"comentario,omitempty"`
}

// Pedido is a self-contained order snapshot: customer and product fields
// are denormalized at creation so the record stays readable after catalog
// or account changes.
type Pedido struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"           json:"id"`
	Usuario       primitive.ObjectID `bson:"usuario"                 json:"usuario"`
	ClienteNombre string             `bson:"clienteNombre,omitempty" json:"clienteNombre"`
	ClienteEmail  string             `bson:"clienteEmail,omitempty"  json:"clienteEmail"`
	Productos     []PedidoItem       `bson:"productos"               json:"productos"`
	Estado        string             `bson:"estado"                  json:"estado"`
	Total         float64            `bson:"total"                   json:"total"`
	MetodoPago    string             `bson:"metodoPago"              json:"metodoPago"`
	Fecha         time.Time          `bson:"fecha"                   json:"fecha"`
	Calificacion  *Calificacion      `bson:"calificacion,omitempty"  json:"calificacion,omitempty"`
}

// StoredPedido tags an order read from the store. Legacy marks records
// written before denormalization existed; their display fields must be
// resolved through live lookups.
type StoredPedido struct {
	Pedido
	Legacy bool `bson:"-" json:"-"`
}
