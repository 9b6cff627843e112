package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collections is the database handle threaded through the application.
// It is constructed once at startup; nothing in this package holds
// package-level state.
type Collections struct {
	Users       *mongo.Collection
	Products    *mongo.Collection
	Categories  *mongo.Collection
	Carts       *mongo.Collection
	Orders      *mongo.Collection
	LoginEvents *mongo.Collection
}

func Connect(ctx context.Context, uri, dbName string) (*mongo.Client, *Collections, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(dbName)
	return client, NewCollections(db), nil
}

func NewCollections(db *mongo.Database) *Collections {
	return &Collections{
		Users:       db.Collection("users"),
		Products:    db.Collection("products"),
		Categories:  db.Collection("categories"),
		Carts:       db.Collection("carts"),
		Orders:      db.Collection("orders"),
		LoginEvents: db.Collection("loginevents"),
	}
}
