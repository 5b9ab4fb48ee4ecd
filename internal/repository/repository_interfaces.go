// Package repository provides interfaces for repository operations.
package repository

import (
	"context"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

// CatalogReader is the read-only provider of rate data.
type CatalogReader interface {
	GetProduct(ctx context.Context, productID string) (*model.RateCard, error)
	ListProducts(ctx context.Context) ([]*model.RateCard, error)
	GetZoneTable(ctx context.Context, origin string) (*model.PostalZoneTable, error)
	GetRemoteTable(ctx context.Context) (*model.RemoteAreaTable, error)
	GetFuelSchedule(ctx context.Context) (model.FuelSchedule, error)
}

// QuotesRepositoryInterface defines the interface for quote history operations.
type QuotesRepositoryInterface interface {
	Create(ctx context.Context, record *model.QuoteRecord) error
	CreateMany(ctx context.Context, records []*model.QuoteRecord) error
	Query(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, error)
	Count(ctx context.Context, opts model.QuoteQueryOptions) (int64, error)
}

var (
	_ CatalogReader             = (*CatalogRepository)(nil)
	_ CatalogReader             = (*FileCatalog)(nil)
	_ CatalogReader             = (*CatalogRepositoryWithCircuitBreaker)(nil)
	_ QuotesRepositoryInterface = (*QuotesRepository)(nil)
	_ QuotesRepositoryInterface = (*QuotesRepositoryWithCircuitBreaker)(nil)
)
