// Package repositories holds the MongoDB data access layer, one
// repository per aggregate root.
package repositories

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lacantina/backend/app/models"
	"github.com/lacantina/backend/pkg/database"
)

// ErrNotFound is returned when a referenced entity is absent.
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when registration hits the unique email index.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository handles database operations for Usuario.
type UserRepository struct {
	col *mongo.Collection
}

func NewUserRepository() *UserRepository {
	return &UserRepository{col: database.Collection(database.ColUsuarios)}
}

// FindByEmail looks up a user by their email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var user models.Usuario
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID looks up a user by ObjectID hex.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.Usuario, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var user models.Usuario
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create persists a new user record. A duplicate email maps to
// ErrDuplicateEmail via the unique index.
func (r *UserRepository) Create(ctx context.Context, user *models.Usuario) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

// UpdatePreferencias replaces the user's preference bundle.
func (r *UserRepository) UpdatePreferencias(ctx context.Context, id string, prefs *models.Preferencias) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"preferencias": prefs}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
