package controllers

import (
	"net/http"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/middleware"
	"github.com/lacantina/backend/pkg/response"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

// Me returns the caller's own profile.
func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	user, err := c.service.Me(r.Context(), userID)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, user)
}

// UpdatePreferencias replaces the caller's taste/diet bundle and returns
// the updated profile.
func (c *UserController) UpdatePreferencias(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var prefs models.Preferencias
	if errs, err := bind.JSON(r, &prefs); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.UpdatePreferencias(r.Context(), userID, &prefs)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, user)
}
