package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/config"
	"github.com/lacantina/backend/pkg/http"
	"github.com/lacantina/backend/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrMensajeVacio = errors.New("el mensaje no puede estar vacío")

type chatStore interface {
	Create(ctx context.Context, log *models.ChatLog) error
	FindByUser(ctx context.Context, userID string) ([]models.ChatLog, error)
}

type productLister interface {
	FindAvailable(ctx context.Context) ([]models.Producto, error)
}

// ChatService proxies the cafeteria chatbot. Each exchange is persisted
// with the generated reply. Without an API key it falls back to a canned
// echo so the endpoint still works in development.
type ChatService struct {
	logs     chatStore
	users    userReader
	products productLister
}

func NewChatService(logs chatStore, users userReader, products productLister) *ChatService {
	return &ChatService{logs: logs, users: users, products: products}
}

// Enviar generates a reply for the user's message and persists the
// exchange.
func (s *ChatService) Enviar(ctx context.Context, userID, mensaje string) (*models.ChatLog, error) {
	if strings.TrimSpace(mensaje) == "" {
		return nil, ErrMensajeVacio
	}

	respuesta, err := s.responder(ctx, userID, mensaje)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUsuarioNoEncontrado
	}
	log := &models.ChatLog{
		Usuario:        oid,
		MensajeUsuario: mensaje,
		RespuestaIA:    respuesta,
		Fecha:          time.Now(),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Historial returns the caller's exchanges, oldest first.
func (s *ChatService) Historial(ctx context.Context, userID string) ([]models.ChatLog, error) {
	return s.logs.FindByUser(ctx, userID)
}

func (s *ChatService) responder(ctx context.Context, userID, mensaje string) (string, error) {
	if config.LLMAPIKey() == "" {
		return fmt.Sprintf("Simulando IA: recibí tu mensaje %q", mensaje), nil
	}
	return s.completar(ctx, s.contexto(ctx, userID), mensaje)
}

// contexto builds the system prompt from the current menu and the
// caller's stored preferences.
func (s *ChatService) contexto(ctx context.Context, userID string) string {
	var b strings.Builder
	b.WriteString("Sos el asistente de la cantina universitaria. ")
	b.WriteString("Respondé en español, breve y amable, recomendando productos del menú actual.\n")

	if productos, err := s.products.FindAvailable(ctx); err == nil && len(productos) > 0 {
		b.WriteString("Menú disponible:\n")
		for _, p := range productos {
			fmt.Fprintf(&b, "- %s (%s, $%.2f): %s\n", p.Nombre, p.Categoria, p.Precio, p.Descripcion)
		}
	}

	if user, err := s.users.FindByID(ctx, userID); err == nil && user.Preferencias != nil {
		prefs := user.Preferencias
		if len(prefs.Sabores) > 0 {
			fmt.Fprintf(&b, "Sabores preferidos del usuario: %s.\n", strings.Join(prefs.Sabores, ", "))
		}
		if len(prefs.Dieta) > 0 {
			fmt.Fprintf(&b, "Dieta: %s.\n", strings.Join(prefs.Dieta, ", "))
		}
		if len(prefs.Alergias) > 0 {
			fmt.Fprintf(&b, "Alergias (nunca recomendar): %s.\n", strings.Join(prefs.Alergias, ", "))
		}
		if len(prefs.Bebidas) > 0 {
			fmt.Fprintf(&b, "Bebidas preferidas: %s.\n", strings.Join(prefs.Bebidas, ", "))
		}
	}
	return b.String()
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (s *ChatService) completar(ctx context.Context, sistema, mensaje string) (string, error) {
	start := time.Now()
	defer func() {
		metrics.LLMRequestDuration.Observe(time.Since(start).Seconds())
	}()

	res, err := http.Post(config.LLMBaseURL()+"/chat/completions").
		WithContext(ctx).
		Bearer(config.LLMAPIKey()).
		Timeout(30 * time.Second).
		Retry(2, time.Second).
		Body(chatCompletionRequest{
			Model: config.LLMModel(),
			Messages: []chatMessage{
				{Role: "system", Content: sistema},
				{Role: "user", Content: mensaje},
			},
		}).
		Send()
	if err != nil {
		return "", err
	}
	if err := res.Throw(); err != nil {
		return "", err
	}

	var out chatCompletionResponse
	if err := res.JSON(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("respuesta vacía del modelo")
	}
	return out.Choices[0].Message.Content, nil
}
