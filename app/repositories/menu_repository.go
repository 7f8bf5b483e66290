package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/database"
)

// MenuRepository handles database operations for MenuDelDia.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{col: database.Collection(database.ColMenus)}
}

// FindAll returns every daily menu, oldest first.
func (r *MenuRepository) FindAll(ctx context.Context) ([]models.MenuDelDia, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creadoEn", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	menus := []models.MenuDelDia{}
	if err := cur.All(ctx, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

// Count returns the number of stored menus (used for sequential naming).
func (r *MenuRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// Create persists a new menu entry.
func (r *MenuRepository) Create(ctx context.Context, m *models.MenuDelDia) error {
	if m.ID.IsZero() {
		m.ID = primitive.NewObjectID()
	}
	if m.CreadoEn.IsZero() {
		m.CreadoEn = time.Now()
	}
	_, err := r.col.InsertOne(ctx, m)
	return err
}
