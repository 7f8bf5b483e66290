package controllers

import (
	"net/http"

	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/response"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register creates an account and returns it (password excluded).
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.Register(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}
	response.Created(w, user)
}

// Login returns a signed token plus the basic account fields the client
// keeps in session.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(r.Context(), in)
	if err != nil {
		fail(w, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"usuario": map[string]interface{}{
			"id":     user.ID.Hex(),
			"nombre": user.Nombre,
			"rol":    user.Rol,
		},
	})
}
