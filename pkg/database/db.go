// Package database owns the MongoDB client for the cantina backend.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lacantina/backend/config"
)

var (
	Client *mongo.Client
	DB     *mongo.Database
)

// Collection names.
const (
	ColUsuarios    = "usuarios"
	ColProductos   = "productos"
	ColPedidos     = "pedidos"
	ColStoreStatus = "storestatus"
	ColChatLogs    = "chatlogs"
	ColMenus       = "menusdeldia"
	ColLogs        = "logs"
)

// Connect opens the MongoDB connection, verifies it with a ping, and
// ensures indexes. Returns an error instead of exiting so the caller can
// shut down gracefully.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("database: ping: %w", err)
	}

	Client = client
	DB = client.Database(config.MongoDatabase())

	if err := ensureIndexes(ctx); err != nil {
		return fmt.Errorf("database: indexes: %w", err)
	}

	return nil
}

// Disconnect closes the client. Call on shutdown.
func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = Client.Disconnect(ctx)
}

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	return DB.Collection(name)
}

func ensureIndexes(ctx context.Context) error {
	_, err := Collection(ColUsuarios).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = Collection(ColPedidos).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "usuario", Value: 1}, {Key: "fecha", Value: -1}},
	})
	if err != nil {
		return err
	}

	_, err = Collection(ColChatLogs).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "usuario", Value: 1}, {Key: "fecha", Value: -1}},
	})
	return err
}
