package services

import (
	"context"

	"github.com/lacantina/backend/app/models"
)

// UserService reads and updates the caller's own account.
type UserService struct {
	users userStore
}

func NewUserService(users userStore) *UserService {
	return &UserService{users: users}
}

// Me returns the caller's profile.
func (s *UserService) Me(ctx context.Context, id string) (*models.Usuario, error) {
	return s.users.FindByID(ctx, id)
}

// UpdatePreferencias replaces the caller's taste/diet bundle.
func (s *UserService) UpdatePreferencias(ctx context.Context, id string, prefs *models.Preferencias) (*models.Usuario, error) {
	if err := s.users.UpdatePreferencias(ctx, id, prefs); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}
