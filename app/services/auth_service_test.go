package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/repositories"
	"github.com/lacantina/backend/app/services"
	"github.com/lacantina/backend/pkg/auth"
)

type fakeUserStore struct {
	byEmail map[string]*models.Usuario
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*models.Usuario{}}
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.Usuario, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) FindByID(_ context.Context, id string) (*models.Usuario, error) {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeUserStore) Create(_ context.Context, u *models.Usuario) error {
	if _, exists := f.byEmail[u.Email]; exists {
		return repositories.ErrDuplicateEmail
	}
	u.ID = primitive.NewObjectID()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserStore) UpdatePreferencias(_ context.Context, id string, prefs *models.Preferencias) error {
	for _, u := range f.byEmail {
		if u.ID.Hex() == id {
			u.Preferencias = prefs
			return nil
		}
	}
	return repositories.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())
	ctx := context.Background()

	user, err := svc.Register(ctx, services.RegisterInput{
		Nombre:   "Belen Ferreiro",
		Email:    "bferreiro@correo.um.edu.uy",
		Password: "test1234",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RolEstudiante, user.Rol, "role defaults to estudiante")
	assert.NotEqual(t, "test1234", user.Password, "password must be stored hashed")

	token, logged, err := svc.Login(ctx, services.LoginInput{
		Email: "bferreiro@correo.um.edu.uy", Password: "test1234",
	})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.UserID)
	assert.Equal(t, models.RolEstudiante, claims.Rol)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())
	ctx := context.Background()

	in := services.RegisterInput{Nombre: "Felipe", Email: "f@correo.um.edu.uy", Password: "test1234"}
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, repositories.ErrDuplicateEmail)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, services.RegisterInput{
		Nombre: "Felipe", Email: "f@correo.um.edu.uy", Password: "test1234",
	})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, services.LoginInput{Email: "f@correo.um.edu.uy", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrCredencialesInvalidas)

	_, _, err = svc.Login(ctx, services.LoginInput{Email: "nobody@correo.um.edu.uy", Password: "test1234"})
	assert.ErrorIs(t, err, services.ErrCredencialesInvalidas)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := services.NewAuthService(newFakeUserStore())

	_, err := svc.Register(context.Background(), services.RegisterInput{
		Nombre: "X", Email: "x@correo.um.edu.uy", Password: "test1234", Rol: "superadmin",
	})
	assert.ErrorIs(t, err, services.ErrRolInvalido)
}
