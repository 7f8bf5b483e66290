package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/database"
)

// ChatRepository persists chatbot exchanges.
type ChatRepository struct {
	col *mongo.Collection
}

func NewChatRepository() *ChatRepository {
	return &ChatRepository{col: database.Collection(database.ColChatLogs)}
}

// Create stores one exchange (message plus generated reply).
func (r *ChatRepository) Create(ctx context.Context, log *models.ChatLog) error {
	if log.ID.IsZero() {
		log.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, log)
	return err
}

// FindByUser returns a user's chat history, oldest first.
func (r *ChatRepository) FindByUser(ctx context.Context, userID string) ([]models.ChatLog, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "fecha", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"usuario": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	logs := []models.ChatLog{}
	if err := cur.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}
