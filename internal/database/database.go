package database

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"chirpnet/internal/config"
)

// DB bundles the Mongo client with the collection handles the
// repositories operate on.
type DB struct {
	Client *mongo.Client

	Users         *mongo.Collection
	Posts         *mongo.Collection
	Comments      *mongo.Collection
	Replies       *mongo.Collection
	Notifications *mongo.Collection
}

func Connect(ctx context.Context, cfg *config.Config) (*DB, error) {
	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is not set")
	}

	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := client.Database(cfg.DBName)

	log.Println("Connected to database successfully")

	return &DB{
		Client:        client,
		Users:         db.Collection("users"),
		Posts:         db.Collection("posts"),
		Comments:      db.Collection("comments"),
		Replies:       db.Collection("replies"),
		Notifications: db.Collection("notifications"),
	}, nil
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
