package services

import (
	"context"
	"errors"
	"time"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/cache"
)

var (
	ErrCategoriaInvalida = errors.New("categoría inválida")
	ErrPrecioInvalido    = errors.New("el precio debe ser mayor a cero")
)

const (
	disponiblesCacheKey = "productos:disponibles"
	disponiblesCacheTTL = 60 * time.Second
)

type catalogStore interface {
	productReader
	FindAvailable(ctx context.Context) ([]models.Producto, error)
	FindAll(ctx context.Context) ([]models.Producto, error)
	Create(ctx context.Context, p *models.Producto) error
	Update(ctx context.Context, id string, p *models.Producto) (*models.Producto, error)
	SetDisponibilidad(ctx context.Context, id string, disponible bool) (*models.Producto, error)
	SetImagen(ctx context.Context, id string, url string) (*models.Producto, error)
	Delete(ctx context.Context, id string) error
}

// CatalogService manages the product catalog. The public listing only
// shows available products and is cached; every mutation drops the
// cached listing.
type CatalogService struct {
	products catalogStore
}

func NewCatalogService(products catalogStore) *CatalogService {
	return &CatalogService{products: products}
}

// Disponibles returns the public listing.
func (s *CatalogService) Disponibles(ctx context.Context) ([]models.Producto, error) {
	var cached []models.Producto
	if cache.Get(disponiblesCacheKey, &cached) {
		return cached, nil
	}

	productos, err := s.products.FindAvailable(ctx)
	if err != nil {
		return nil, err
	}
	_ = cache.Set(disponiblesCacheKey, productos, disponiblesCacheTTL)
	return productos, nil
}

// Todos returns every product including unavailable ones.
func (s *CatalogService) Todos(ctx context.Context) ([]models.Producto, error) {
	return s.products.FindAll(ctx)
}

// FindByID returns one product.
func (s *CatalogService) FindByID(ctx context.Context, id string) (*models.Producto, error) {
	return s.products.FindByID(ctx, id)
}

// Crear validates and persists a new catalog entry.
func (s *CatalogService) Crear(ctx context.Context, p *models.Producto) error {
	if err := validarProducto(p); err != nil {
		return err
	}
	if err := s.products.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// Actualizar replaces a catalog entry.
func (s *CatalogService) Actualizar(ctx context.Context, id string, p *models.Producto) (*models.Producto, error) {
	if err := validarProducto(p); err != nil {
		return nil, err
	}
	updated, err := s.products.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return updated, nil
}

// CambiarDisponibilidad toggles a product's visibility in the public
// listing.
func (s *CatalogService) CambiarDisponibilidad(ctx context.Context, id string, disponible bool) (*models.Producto, error) {
	updated, err := s.products.SetDisponibilidad(ctx, id, disponible)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return updated, nil
}

// CambiarImagen stores a new image URL for the product.
func (s *CatalogService) CambiarImagen(ctx context.Context, id, url string) (*models.Producto, error) {
	updated, err := s.products.SetImagen(ctx, id, url)
	if err != nil {
		return nil, err
	}
	s.invalidate()
	return updated, nil
}

// Eliminar removes a catalog entry. Existing orders keep their
// denormalized copy of the product.
func (s *CatalogService) Eliminar(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	_ = cache.Del(disponiblesCacheKey)
}

func validarProducto(p *models.Producto) error {
	if p.Precio <= 0 {
		return ErrPrecioInvalido
	}
	if !models.ValidCategoria(p.Categoria) {
		return ErrCategoriaInvalida
	}
	return nil
}
