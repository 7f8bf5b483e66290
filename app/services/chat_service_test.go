package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/app/services"
)

type fakeChatLogs struct {
	logs []models.ChatLog
}

func (f *fakeChatLogs) Create(_ context.Context, log *models.ChatLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeChatLogs) FindByUser(_ context.Context, userID string) ([]models.ChatLog, error) {
	out := []models.ChatLog{}
	for _, l := range f.logs {
		if l.Usuario.Hex() == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

type fakeAvailable struct {
	productos []models.Producto
}

func (f *fakeAvailable) FindAvailable(context.Context) ([]models.Producto, error) {
	return f.productos, nil
}

// Without LLM_API_KEY the service answers with the canned echo; the
// exchange must still be persisted.
func TestChatEnviarSinAPIKey(t *testing.T) {
	userOID := primitive.NewObjectID()
	logs := &fakeChatLogs{}
	users := &fakeUsers{byID: map[string]models.Usuario{
		userOID.Hex(): {ID: userOID, Nombre: "Felipe"},
	}}
	svc := services.NewChatService(logs, users, &fakeAvailable{})

	log, err := svc.Enviar(context.Background(), userOID.Hex(), "¿qué hay de menú?")
	require.NoError(t, err)

	assert.Equal(t, `Simulando IA: recibí tu mensaje "¿qué hay de menú?"`, log.RespuestaIA)
	assert.Equal(t, "¿qué hay de menú?", log.MensajeUsuario)
	assert.False(t, log.Fecha.IsZero())
	require.Len(t, logs.logs, 1)

	historial, err := svc.Historial(context.Background(), userOID.Hex())
	require.NoError(t, err)
	assert.Len(t, historial, 1)
}

func TestChatEnviarMensajeVacio(t *testing.T) {
	svc := services.NewChatService(&fakeChatLogs{}, &fakeUsers{byID: map[string]models.Usuario{}}, &fakeAvailable{})

	_, err := svc.Enviar(context.Background(), primitive.NewObjectID().Hex(), "   ")
	assert.ErrorIs(t, err, services.ErrMensajeVacio)
}
