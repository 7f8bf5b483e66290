// Package controllers adapts HTTP requests to the service layer: decode
// and validate the body, call the service, convert the outcome into the
// JSON envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/lacantina/backend/app/repositories"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/response"
)

// fail converts a service error into the matching HTTP response. Unknown
// errors become a 500 with the underlying message attached.
func fail(w http.ResponseWriter, err error) {
	var cerrada *services.TiendaCerradaError
	if errors.As(err, &cerrada) {
		response.ErrorData(w, http.StatusForbidden, cerrada.Error(), cerrada.Status)
		return
	}

	switch {
	case errors.Is(err, services.ErrSinItems),
		errors.Is(err, services.ErrItemInvalido),
		errors.Is(err, services.ErrTotalInvalido),
		errors.Is(err, services.ErrMetodoPagoInvalido),
		errors.Is(err, services.ErrEstadoInvalido),
		errors.Is(err, services.ErrMensajeVacio),
		errors.Is(err, services.ErrPrecioInvalido),
		errors.Is(err, services.ErrCategoriaInvalida),
		errors.Is(err, services.ErrRolInvalido):
		response.Error(w, http.StatusBadRequest, err.Error())

	case errors.Is(err, services.ErrYaCancelado),
		errors.Is(err, services.ErrPedidoEntregado),
		errors.Is(err, services.ErrNoEntregado):
		response.Error(w, http.StatusConflict, err.Error())

	case errors.Is(err, services.ErrNoPropietario):
		response.Forbidden(w)

	case errors.Is(err, repositories.ErrDuplicateEmail):
		response.Error(w, http.StatusConflict, services.ErrEmailRegistrado.Error())

	case errors.Is(err, services.ErrCredencialesInvalidas):
		response.Error(w, http.StatusUnauthorized, err.Error())

	case errors.Is(err, repositories.ErrNotFound),
		errors.Is(err, services.ErrUsuarioNoEncontrado):
		response.NotFound(w)

	default:
		response.ServerError(w, "Error interno", err)
	}
}
