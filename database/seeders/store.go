package seeders

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lacantina/backend/pkg/database"
)

func init() {
	Register("store", InitStoreStatus)
}

// InitStoreStatus creates the closed default gate record when none
// exists, matching what the order path would lazily create on first
// read.
func InitStoreStatus(ctx context.Context, db *mongo.Database) error {
	col := db.Collection(database.ColStoreStatus)

	n, err := col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if n > 0 {
		fmt.Println("  el estado de la tienda ya está inicializado")
		return nil
	}

	_, err = col.InsertOne(ctx, bson.M{
		"isOpen":      false,
		"lastUpdated": time.Now(),
		"notes":       "Estado inicial de la tienda",
	})
	if err != nil {
		return err
	}
	fmt.Println("  estado de la tienda inicializado (cerrada)")
	return nil
}
