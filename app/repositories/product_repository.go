package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/database"
)

// ProductRepository handles database operations for Producto.
type ProductRepository struct {
	col *mongo.Collection
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{col: database.Collection(database.ColProductos)}
}

// FindByID resolves one product by ObjectID hex.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Producto, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var p models.Producto
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAvailable returns every product with the availability flag set,
// newest first.
func (r *ProductRepository) FindAvailable(ctx context.Context) ([]models.Producto, error) {
	return r.find(ctx, bson.M{"disponible": true})
}

// FindAll returns the full catalog, available or not.
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Producto, error) {
	return r.find(ctx, bson.M{})
}

func (r *ProductRepository) find(ctx context.Context, filter bson.M) ([]models.Producto, error) {
	opts := options.Find().SetSort(bson.D{{Key: "creadoEn", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	productos := []models.Producto{}
	if err := cur.All(ctx, &productos); err != nil {
		return nil, err
	}
	return productos, nil
}

// Create persists a new product, stamping creadoEn.
func (r *ProductRepository) Create(ctx context.Context, p *models.Producto) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if p.CreadoEn.IsZero() {
		p.CreadoEn = time.Now()
	}
	_, err := r.col.InsertOne(ctx, p)
	return err
}

// Update overwrites the mutable fields of an existing product.
func (r *ProductRepository) Update(ctx context.Context, id string, p *models.Producto) (*models.Producto, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	update := bson.M{"$set": bson.M{
		"nombre":      p.Nombre,
		"descripcion": p.Descripcion,
		"precio":      p.Precio,
		"imagen":      p.Imagen,
		"disponible":  p.Disponible,
		"stock":       p.Stock,
		"categoria":   p.Categoria,
		"sabores":     p.Sabores,
		"dieta":       p.Dieta,
		"alergias":    p.Alergias,
	}}

	var updated models.Producto
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// SetDisponibilidad toggles the availability flag.
func (r *ProductRepository) SetDisponibilidad(ctx context.Context, id string, disponible bool) (*models.Producto, error) {
	return r.setField(ctx, id, "disponible", disponible)
}

// SetImagen stores the uploaded image URL on the product.
func (r *ProductRepository) SetImagen(ctx context.Context, id string, url string) (*models.Producto, error) {
	return r.setField(ctx, id, "imagen", url)
}

func (r *ProductRepository) setField(ctx context.Context, id, field string, value interface{}) (*models.Producto, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var updated models.Producto
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{field: value}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a product. Existing orders keep their denormalized copy.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
