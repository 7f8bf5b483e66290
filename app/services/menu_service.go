package services

import (
	"context"
	"fmt"

	"github.com/lacantina/backend/app/models"
)

type menuStore interface {
	FindAll(ctx context.Context) ([]models.MenuDelDia, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, m *models.MenuDelDia) error
}

// MenuService manages the daily menu list. Entries get a sequential
// number prefixed to their name at creation.
type MenuService struct {
	menus menuStore
}

func NewMenuService(menus menuStore) *MenuService {
	return &MenuService{menus: menus}
}

// Listar returns every daily menu, oldest first.
func (s *MenuService) Listar(ctx context.Context) ([]models.MenuDelDia, error) {
	return s.menus.FindAll(ctx)
}

// Crear numbers and persists a new menu entry.
func (s *MenuService) Crear(ctx context.Context, m *models.MenuDelDia) error {
	if m.Precio <= 0 {
		return ErrPrecioInvalido
	}

	n, err := s.menus.Count(ctx)
	if err != nil {
		return err
	}
	m.Nombre = fmt.Sprintf("Menú %d - %s", n+1, m.Nombre)
	return s.menus.Create(ctx, m)
}
