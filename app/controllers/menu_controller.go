package controllers

import (
	"net/http"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/response"
)

type MenuController struct {
	service *services.MenuService
}

func NewMenuController(service *services.MenuService) *MenuController {
	return &MenuController{service: service}
}

// Index lists the daily menus.
func (c *MenuController) Index(w http.ResponseWriter, r *http.Request) {
	menus, err := c.service.Listar(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, menus)
}

// Create adds a numbered daily menu.
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Nombre      string  `json:"nombre"      validate:"required,min=2"`
		Descripcion string  `json:"descripcion" validate:"nullable"`
		Precio      float64 `json:"precio"      validate:"required,numeric,gt=0"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	menu := &models.MenuDelDia{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
	}
	if err := c.service.Crear(r.Context(), menu); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, menu)
}
