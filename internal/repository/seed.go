package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/guttosm/freight-rate-service/internal/rating"
	"go.mongodb.org/mongo-driver/bson"
)

// SeedCatalog replaces the provider collections with the documents of file.
// Every product is converted first so a bad export leaves the store untouched.
func (m *MongoDB) SeedCatalog(ctx context.Context, file CatalogFile) error {
	if _, err := NewFileCatalog(file); err != nil {
		return err
	}

	now := time.Now().UTC()
	products := make([]interface{}, len(file.Products))
	for i := range file.Products {
		doc := file.Products[i]
		doc.UpdatedAt = now
		products[i] = doc
	}

	if err := replaceAll(ctx, m, ProductsCollection, products); err != nil {
		return err
	}
	zones := make([]interface{}, len(file.PostalZones))
	for i := range file.PostalZones {
		doc := file.PostalZones[i]
		doc.Origin = rating.NormalizePostalCode(doc.Origin)
		zones[i] = doc
	}

	if err := replaceAll(ctx, m, PostalZonesCollection, zones); err != nil {
		return err
	}
	if err := replaceAll(ctx, m, RemoteAreasCollection, toDocs(file.RemoteAreas)); err != nil {
		return err
	}
	return replaceAll(ctx, m, FuelRatesCollection, toDocs(file.FuelRates))
}

func replaceAll(ctx context.Context, m *MongoDB, name string, docs []interface{}) error {
	coll := m.Database.Collection(name)
	if _, err := coll.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear %s: %w", name, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("insert %s: %w", name, err)
	}
	return nil
}

func toDocs[T any](in []T) []interface{} {
	out := make([]interface{}, len(in))
	for i := range in {
		out[i] = in[i]
	}
	return out
}
