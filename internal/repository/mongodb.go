// Package repository provides data access layer for MongoDB.
package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	ProductsCollection    = "products"
	PostalZonesCollection = "postal_zones"
	RemoteAreasCollection = "remote_areas"
	FuelRatesCollection   = "fuel_rates"
	QuotesCollection      = "quotes"
)

// MongoConfig holds MongoDB connection pool configuration.
type MongoConfig struct {
	// MaxPoolSize is the maximum number of connections in the pool.
	MaxPoolSize uint64
	// MinPoolSize is the minimum number of connections to keep in the pool.
	MinPoolSize uint64
	// MaxConnIdleTime is how long a connection can remain idle before being closed.
	MaxConnIdleTime time.Duration
	// ConnectTimeout is the timeout for establishing a connection.
	ConnectTimeout time.Duration
	// ServerSelectionTimeout is how long to wait for server selection.
	ServerSelectionTimeout time.Duration
	// SocketTimeout is the timeout for socket read/write operations.
	SocketTimeout time.Duration
	// EnableCompression enables wire protocol compression.
	EnableCompression bool
}

// DefaultMongoConfig returns production-optimized MongoDB configuration.
func DefaultMongoConfig() MongoConfig {
	return MongoConfig{
		MaxPoolSize:            50,
		MinPoolSize:            5,
		MaxConnIdleTime:        10 * time.Minute,
		ConnectTimeout:         10 * time.Second,
		ServerSelectionTimeout: 5 * time.Second,
		SocketTimeout:          30 * time.Second,
		EnableCompression:      true,
	}
}

// MongoDB provides MongoDB client and database access.
//
// Products, PostalZones, RemoteAreas and FuelRates are provider data and are
// only read here. Quotes holds the calculation history.
type MongoDB struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Products    *mongo.Collection
	PostalZones *mongo.Collection
	RemoteAreas *mongo.Collection
	FuelRates   *mongo.Collection
	Quotes      *mongo.Collection
}

// NewMongoDB creates a new MongoDB connection with default configuration.
func NewMongoDB(uri, databaseName string) (*MongoDB, error) {
	return NewMongoDBWithConfig(uri, databaseName, DefaultMongoConfig())
}

// NewMongoDBWithConfig creates a new MongoDB connection with custom configuration.
func NewMongoDBWithConfig(uri, databaseName string, cfg MongoConfig) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(cfg.MaxPoolSize).
		SetMinPoolSize(cfg.MinPoolSize).
		SetMaxConnIdleTime(cfg.MaxConnIdleTime).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ServerSelectionTimeout).
		SetSocketTimeout(cfg.SocketTimeout)

	if cfg.EnableCompression {
		clientOptions.SetCompressors([]string{"zstd", "snappy", "zlib"})
	}

	clientOptions.SetRetryWrites(true)
	clientOptions.SetRetryReads(true)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	db := client.Database(databaseName)
	mongoDB := &MongoDB{
		Client:      client,
		Database:    db,
		Products:    db.Collection(ProductsCollection),
		PostalZones: db.Collection(PostalZonesCollection),
		RemoteAreas: db.Collection(RemoteAreasCollection),
		FuelRates:   db.Collection(FuelRatesCollection),
		Quotes:      db.Collection(QuotesCollection),
	}

	if err := mongoDB.createIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return mongoDB, nil
}

// createIndexes creates the lookup indexes. The quotes TTL index is managed by SetQuotesTTL.
func (m *MongoDB) createIndexes(ctx context.Context) error {
	productIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "product_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := m.Products.Indexes().CreateOne(ctx, productIDIndex); err != nil {
		return err
	}

	statusIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "status", Value: 1}, {Key: "name", Value: 1}},
	}
	_, _ = m.Products.Indexes().CreateOne(ctx, statusIndex)

	originIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "origin", Value: 1}, {Key: "start_code", Value: 1}},
	}
	_, _ = m.PostalZones.Indexes().CreateOne(ctx, originIndex)

	remoteIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "start_code", Value: 1}},
	}
	_, _ = m.RemoteAreas.Indexes().CreateOne(ctx, remoteIndex)

	fuelIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "effective_date", Value: 1}},
	}
	_, _ = m.FuelRates.Indexes().CreateOne(ctx, fuelIndex)

	quoteProductIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "product_id", Value: 1}, {Key: "timestamp", Value: -1}},
	}
	_, _ = m.Quotes.Indexes().CreateOne(ctx, quoteProductIndex)

	requestIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "request_id", Value: 1}},
	}
	_, _ = m.Quotes.Indexes().CreateOne(ctx, requestIDIndex)

	return nil
}

// SetQuotesTTL replaces the TTL index that expires calculation history.
// A non-positive ttl removes expiry.
func (m *MongoDB) SetQuotesTTL(ctx context.Context, ttl time.Duration) error {
	_, _ = m.Quotes.Indexes().DropOne(ctx, "timestamp_1")
	if ttl <= 0 {
		return nil
	}

	ttlIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "timestamp", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(ttl / time.Second)),
	}
	_, err := m.Quotes.Indexes().CreateOne(ctx, ttlIndex)
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// Close closes the MongoDB connection.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck verifies the MongoDB connection is healthy.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return m.Client.Ping(ctx, nil)
}
