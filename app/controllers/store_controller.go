package controllers

import (
	"net/http"

	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/response"
)

type StoreController struct {
	service *services.StoreService
}

func NewStoreController(service *services.StoreService) *StoreController {
	return &StoreController{service: service}
}

// Status returns the public open/closed state.
func (c *StoreController) Status(w http.ResponseWriter, r *http.Request) {
	status, err := c.service.GetStatus(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, map[string]interface{}{
		"isOpen":      status.IsOpen,
		"lastUpdated": status.LastUpdated,
	})
}

// AdminStatus returns the full record including audit fields.
func (c *StoreController) AdminStatus(w http.ResponseWriter, r *http.Request) {
	status, err := c.service.GetStatus(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, status)
}

// Open flips the gate open.
func (c *StoreController) Open(w http.ResponseWriter, r *http.Request) {
	c.set(w, r, true)
}

// Close flips the gate closed.
func (c *StoreController) Close(w http.ResponseWriter, r *http.Request) {
	c.set(w, r, false)
}

func (c *StoreController) set(w http.ResponseWriter, r *http.Request, isOpen bool) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Notes string `json:"notes" validate:"nullable,max=500"`
	}
	if r.ContentLength > 0 {
		if errs, err := bind.JSON(r, &in); err != nil {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		} else if errs != nil {
			response.ValidationError(w, errs)
			return
		}
	}

	status, err := c.service.SetStatus(r.Context(), isOpen, userID, in.Notes)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, status)
}
