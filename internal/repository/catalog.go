package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CatalogRepository reads provider rate data from MongoDB.
type CatalogRepository struct {
	products    *mongo.Collection
	postalZones *mongo.Collection
	remoteAreas *mongo.Collection
	fuelRates   *mongo.Collection
}

// NewCatalogRepository creates a new catalog repository.
func NewCatalogRepository(db *MongoDB) *CatalogRepository {
	return &CatalogRepository{
		products:    db.Products,
		postalZones: db.PostalZones,
		remoteAreas: db.RemoteAreas,
		fuelRates:   db.FuelRates,
	}
}

// GetProduct returns the rate card with the given product id.
func (r *CatalogRepository) GetProduct(ctx context.Context, productID string) (*model.RateCard, error) {
	var doc ProductDocument
	err := r.products.FindOne(ctx, bson.M{"product_id": productID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("product %q: %w", productID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return doc.RateCard()
}

// ListProducts returns the active rate cards ordered by name.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]*model.RateCard, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.products.Find(ctx, bson.M{"status": StatusActive}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []ProductDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	cards := make([]*model.RateCard, 0, len(docs))
	for i := range docs {
		card, err := docs[i].RateCard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// GetZoneTable returns the postal zone table of an origin.
func (r *CatalogRepository) GetZoneTable(ctx context.Context, origin string) (*model.PostalZoneTable, error) {
	origin = rating.NormalizePostalCode(origin)
	cursor, err := r.postalZones.Find(ctx, bson.M{"origin": origin})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []PostalZoneDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("zone table for origin %q: %w", origin, ErrNotFound)
	}
	return NewPostalZoneTable(origin, docs)
}

// GetRemoteTable returns the remote area table. An empty collection is an empty table.
func (r *CatalogRepository) GetRemoteTable(ctx context.Context) (*model.RemoteAreaTable, error) {
	cursor, err := r.remoteAreas.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []RemoteAreaDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return NewRemoteAreaTable(docs)
}

// GetFuelSchedule returns every fuel rate in insertion order.
func (r *CatalogRepository) GetFuelSchedule(ctx context.Context) (model.FuelSchedule, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.fuelRates.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var docs []FuelRateDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return NewFuelSchedule(docs)
}
