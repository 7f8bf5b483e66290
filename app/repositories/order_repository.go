package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/database"
)

// OrderRepository handles database operations for Pedido.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: database.Collection(database.ColPedidos)}
}

// tag wraps a decoded order, marking records written before
// denormalization existed so the formatting layer resolves them via live
// lookups instead of field-presence branching in handlers.
func tag(p models.Pedido) models.StoredPedido {
	legacy := p.ClienteNombre == ""
	for _, item := range p.Productos {
		if item.ProductoNombre == "" {
			legacy = true
			break
		}
	}
	return models.StoredPedido{Pedido: p, Legacy: legacy}
}

// Create persists the assembled order as a single document.
func (r *OrderRepository) Create(ctx context.Context, p *models.Pedido) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// FindByID returns one tagged order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*models.StoredPedido, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Pedido
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sp := tag(p)
	return &sp, nil
}

// FindByUser returns a user's orders, newest first.
func (r *OrderRepository) FindByUser(ctx context.Context, userID string) ([]models.StoredPedido, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return r.find(ctx, bson.M{"usuario": oid}, nil)
}

// FindPage returns one page of all orders, newest first, plus the total
// count for pagination metadata.
func (r *OrderRepository) FindPage(ctx context.Context, page, limit int) ([]models.StoredPedido, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	pedidos, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return pedidos, total, nil
}

func (r *OrderRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.StoredPedido, error) {
	if opts == nil {
		opts = options.Find()
	}
	opts.SetSort(bson.D{{Key: "fecha", Value: -1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var raw []models.Pedido
	if err := cur.All(ctx, &raw); err != nil {
		return nil, err
	}

	pedidos := make([]models.StoredPedido, 0, len(raw))
	for _, p := range raw {
		pedidos = append(pedidos, tag(p))
	}
	return pedidos, nil
}

// UpdateEstado overwrites the order state and returns the updated order.
func (r *OrderRepository) UpdateEstado(ctx context.Context, id, estado string) (*models.StoredPedido, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Pedido
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"estado": estado}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	sp := tag(p)
	return &sp, nil
}

// SetCalificacion attaches a post-delivery rating.
func (r *OrderRepository) SetCalificacion(ctx context.Context, id string, c *models.Calificacion) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"calificacion": c}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
