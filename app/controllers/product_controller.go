package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/bind"
	"github.com/lacantina/backend/pkg/response"
	"github.com/lacantina/backend/pkg/storage"
)

const maxImagenBytes = 5 << 20

type ProductController struct {
	service *services.CatalogService
}

func NewProductController(service *services.CatalogService) *ProductController {
	return &ProductController{service: service}
}

// productoInput is the create/update body.
type productoInput struct {
	Nombre      string   `json:"nombre"      validate:"required,min=2"`
	Descripcion string   `json:"descripcion" validate:"nullable"`
	Precio      float64  `json:"precio"      validate:"required,numeric,gt=0"`
	Imagen      string   `json:"imagen"      validate:"nullable"`
	Disponible  *bool    `json:"disponible"`
	Stock       int      `json:"stock"       validate:"nullable,integer,gte=0"`
	Categoria   string   `json:"categoria"   validate:"required,in=bebida,comida,snack,menu"`
	Sabores     []string `json:"sabores"`
	Dieta       []string `json:"dieta"`
	Alergias    []string `json:"alergias"`
}

func (in *productoInput) toModel() *models.Producto {
	disponible := true
	if in.Disponible != nil {
		disponible = *in.Disponible
	}
	return &models.Producto{
		Nombre:      in.Nombre,
		Descripcion: in.Descripcion,
		Precio:      in.Precio,
		Imagen:      in.Imagen,
		Disponible:  disponible,
		Stock:       in.Stock,
		Categoria:   in.Categoria,
		Sabores:     in.Sabores,
		Dieta:       in.Dieta,
		Alergias:    in.Alergias,
	}
}

// Index lists available products (public listing).
func (c *ProductController) Index(w http.ResponseWriter, r *http.Request) {
	productos, err := c.service.Disponibles(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, productos)
}

// All lists every product including unavailable ones.
func (c *ProductController) All(w http.ResponseWriter, r *http.Request) {
	productos, err := c.service.Todos(r.Context())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, productos)
}

// Show returns one product.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	producto, err := c.service.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, producto)
}

// Create adds a catalog entry.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in productoInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	producto := in.toModel()
	if err := c.service.Crear(r.Context(), producto); err != nil {
		fail(w, err)
		return
	}
	response.Created(w, producto)
}

// Update replaces a catalog entry.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in productoInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	producto, err := c.service.Actualizar(r.Context(), chi.URLParam(r, "id"), in.toModel())
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, producto)
}

// Disponibilidad toggles a product's public visibility.
func (c *ProductController) Disponibilidad(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Disponible *bool `json:"disponible"`
	}
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Disponible == nil {
		response.Error(w, http.StatusBadRequest, "falta el campo disponible")
		return
	}

	producto, err := c.service.CambiarDisponibilidad(r.Context(), chi.URLParam(r, "id"), *in.Disponible)
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, producto)
}

// Imagen accepts a multipart upload, stores the file on the configured
// disk and saves its public URL on the product.
func (c *ProductController) Imagen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxImagenBytes); err != nil {
		response.Error(w, http.StatusBadRequest, "archivo inválido o demasiado grande")
		return
	}
	file, header, err := r.FormFile("imagen")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "falta el archivo imagen")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(w, http.StatusBadRequest, "formato de imagen no soportado")
		return
	}

	path := fmt.Sprintf("productos/%s%s", id, ext)
	if err := storage.PutStream(path, file); err != nil {
		fail(w, err)
		return
	}

	producto, err := c.service.CambiarImagen(r.Context(), id, storage.URL(path))
	if err != nil {
		fail(w, err)
		return
	}
	response.Success(w, producto)
}

// Delete removes a catalog entry.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Eliminar(r.Context(), chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	response.Message(w, "Producto eliminado", nil)
}
