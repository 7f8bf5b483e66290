package services

import (
	"context"
	"errors"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/auth"
)

var (
	ErrEmailRegistrado       = errors.New("el email ya está registrado")
	ErrCredencialesInvalidas = errors.New("credenciales inválidas")
	ErrRolInvalido           = errors.New("rol inválido")
)

type userStore interface {
	userReader
	FindByEmail(ctx context.Context, email string) (*models.Usuario, error)
	Create(ctx context.Context, user *models.Usuario) error
	UpdatePreferencias(ctx context.Context, id string, prefs *models.Preferencias) error
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	Nombre   string `json:"nombre"   validate:"required,min=2"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Rol      string `json:"rol"      validate:"nullable,in=estudiante,admin"`
}

// LoginInput is the login request body.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService registers accounts and issues tokens.
type AuthService struct {
	users userStore
}

func NewAuthService(users userStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates an account with a hashed password. The role defaults
// to estudiante when omitted.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.Usuario, error) {
	rol := in.Rol
	if rol == "" {
		rol = models.RolEstudiante
	}
	if rol != models.RolEstudiante && rol != models.RolAdmin {
		return nil, ErrRolInvalido
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.Usuario{
		Nombre:   in.Nombre,
		Email:    in.Email,
		Password: hash,
		Rol:      rol,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns a signed token plus the account.
// Wrong email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *models.Usuario, error) {
	user, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", nil, ErrCredencialesInvalidas
	}
	if !auth.CheckPassword(user.Password, in.Password) {
		return "", nil, ErrCredencialesInvalidas
	}

	token, err := auth.GenerateToken(user.ID.Hex(), user.Rol)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
