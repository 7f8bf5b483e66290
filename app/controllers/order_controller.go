package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/response"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// Create places an order for the authenticated caller.
func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CrearPedidoInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pedido, err := c.service.Crear(r.Context(), userID, in)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, pedido)
}

// MyOrders lists the caller's own orders, newest first.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	pedidos, err := c.service.ListByUser(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, pedidos)
}

// Index lists every order, paginated.
func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	pedidos, total, err := c.service.ListPage(r.Context(), page, limit)
	if err != nil {
		fail(w, err)
		return
	}

	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	response.Paginated(w, pedidos, response.Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	})
}

// Show returns one order. Students only see their own.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromCtx(r)
	role, _ := middleware.RoleFromCtx(r)

	pedido, err := c.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	if role != models.RolAdmin && pedido.Usuario.Hex() != userID {
		response.Forbidden(w)
		return
	}
	response.Success(w, pedido)
}

// Estado overwrites the lifecycle state.
func (c *OrderController) Estado(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Estado string `json:"estado" validate:"required"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pedido, err := c.service.CambiarEstado(r.Context(), chi.URLParam(r, "id"), in.Estado)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, pedido)
}

// Cancelar moves an order to cancelado if it is not already terminal.
func (c *OrderController) Cancelar(w http.ResponseWriter, r *http.Request) {
	pedido, err := c.service.Cancelar(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, pedido)
}

// Calificacion attaches a rating to a delivered order of the caller.
func (c *OrderController) Calificacion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Puntaje    int    `json:"puntaje"    validate:"required,integer,gte=1,lte=5"`
		Comentario string `json:"comentario" validate:"nullable,max=500"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	err := c.service.Calificar(r.Context(), userID, chi.URLParam(r, "id"), &models.Calificacion{
		Puntaje:    in.Puntaje,
		Comentario: in.Comentario,
	})
	if err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "Calificación guardada", nil)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
