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

// StoreRepository maintains the StoreStatus singleton. Both reads and
// writes go through empty-filter upserts, so at most one document can
// ever exist and concurrent writers race last-write-wins on that single
// document.
type StoreRepository struct {
	col *mongo.Collection
}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{col: database.Collection(database.ColStoreStatus)}
}

// Get returns the current status, lazily creating the default closed
// record when none exists.
func (r *StoreRepository) Get(ctx context.Context) (*models.StoreStatus, error) {
	var status models.StoreStatus
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{"$setOnInsert": bson.M{
			"isOpen":      false,
			"lastUpdated": time.Now(),
			"notes":       "",
		}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&status)
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// Set overwrites the singleton, creating it if absent, always stamping
// lastUpdated and updatedBy.
func (r *StoreRepository) Set(ctx context.Context, isOpen bool, updatedBy string, notes string) (*models.StoreStatus, error) {
	set := bson.M{
		"isOpen":      isOpen,
		"lastUpdated": time.Now(),
		"notes":       notes,
	}
	if oid, err := primitive.ObjectIDFromHex(updatedBy); err == nil {
		set["updatedBy"] = oid
	}

	var status models.StoreStatus
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{},
		bson.M{"$set": set},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&status)
	if err != nil && err != mongo.ErrNoDocuments {
		return nil, err
	}
	return &status, nil
}
