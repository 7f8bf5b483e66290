package controllers

import (
	"net/http"

	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/response"
)

type ChatController struct {
	service *services.ChatService
}

func NewChatController(service *services.ChatService) *ChatController {
	return &ChatController{service: service}
}

// Send forwards the message to the assistant and returns the reply.
func (c *ChatController) Send(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Mensaje string `json:"mensaje" validate:"required,max=2000"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	log, err := c.service.Enviar(r.Context(), userID, in.Mensaje)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"respuestaIA": log.RespuestaIA,
		"fecha":       log.Fecha,
	})
}

// History returns the caller's past exchanges, oldest first.
func (c *ChatController) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	logs, err := c.service.Historial(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, logs)
}
