package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoreStatus is the singleton open/closed record for the store gate.
// The collection holds at most one document; writes go through an
// empty-filter upsert so concurrent callers cannot create duplicates.
type StoreStatus struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty"       json:"id"`
	IsOpen      bool                `bson:"isOpen"              json:"isOpen"`
	LastUpdated time.Time           `bson:"lastUpdated"         json:"lastUpdated"`
	UpdatedBy   *primitive.ObjectID `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	Notes       string              `bson:"notes"               json:"notes"`
}
