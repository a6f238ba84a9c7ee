// Package mongo implementa los repositorios sobre MongoDB (driver v2).
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/jhoicas/bikehouse-api/pkg/config"
)

// Nombres de colecciones.
const (
	colUsers      = "users"
	colProducts   = "products"
	colCategories = "categories"
	colBookings   = "bookings"
	colPayments   = "payments"
	colReports    = "reports"
)

// Connect crea el client con Server API v1 y hace ping al primario.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(cfg.ConnectionURI()).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("conectar MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices únicos e índices de consulta. Idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	idx := []struct {
		coll  string
		model mongo.IndexModel
	}{
		{colUsers, mongo.IndexModel{Keys: bson.D{{Key: "emailKey", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{colUsers, mongo.IndexModel{Keys: bson.D{{Key: "role", Value: 1}}}},
		{colCategories, mongo.IndexModel{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)}},
		{colProducts, mongo.IndexModel{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{colProducts, mongo.IndexModel{Keys: bson.D{{Key: "ownerKey", Value: 1}}}},
		{colBookings, mongo.IndexModel{Keys: bson.D{{Key: "buyerKey", Value: 1}, {Key: "createdAt", Value: -1}}}},
		{colPayments, mongo.IndexModel{Keys: bson.D{{Key: "bookingId", Value: 1}}, Options: options.Index().SetUnique(true)}},
	}
	for _, i := range idx {
		if _, err := db.Collection(i.coll).Indexes().CreateOne(ctx, i.model); err != nil {
			return fmt.Errorf("índice %s: %w", i.coll, err)
		}
	}
	return nil
}

func newestFirst() *options.FindOptionsBuilder {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
}
