// Package repository provides circuit breaker wrappers for MongoDB operations.
package repository

import (
	"context"
	"errors"

	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

// IsStoreFailure reports whether err means the store itself misbehaved.
// Missing or malformed documents and cancelled requests do not count.
func IsStoreFailure(err error) bool {
	switch {
	case err == nil:
		return false
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrInvalidDocument):
		return false
	case errors.Is(err, context.Canceled):
		return false
	default:
		return true
	}
}

// CatalogRepositoryWithCircuitBreaker wraps a CatalogReader with circuit breaker protection.
type CatalogRepositoryWithCircuitBreaker struct {
	repo           CatalogReader
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewCatalogRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewCatalogRepositoryWithCircuitBreaker(repo CatalogReader, cb *circuitbreaker.CircuitBreaker) *CatalogRepositoryWithCircuitBreaker {
	return &CatalogRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// GetProduct returns a rate card with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) GetProduct(ctx context.Context, productID string) (*model.RateCard, error) {
	var result *model.RateCard
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetProduct(ctx, productID)
		return cbErr
	})
	return result, err
}

// ListProducts returns the active rate cards with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) ListProducts(ctx context.Context) ([]*model.RateCard, error) {
	var result []*model.RateCard
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.ListProducts(ctx)
		return cbErr
	})
	return result, err
}

// GetZoneTable returns an origin's zone table with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) GetZoneTable(ctx context.Context, origin string) (*model.PostalZoneTable, error) {
	var result *model.PostalZoneTable
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetZoneTable(ctx, origin)
		return cbErr
	})
	return result, err
}

// GetRemoteTable returns the remote area table with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) GetRemoteTable(ctx context.Context) (*model.RemoteAreaTable, error) {
	var result *model.RemoteAreaTable
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetRemoteTable(ctx)
		return cbErr
	})
	return result, err
}

// GetFuelSchedule returns the fuel schedule with circuit breaker protection.
func (r *CatalogRepositoryWithCircuitBreaker) GetFuelSchedule(ctx context.Context) (model.FuelSchedule, error) {
	var result model.FuelSchedule
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.GetFuelSchedule(ctx)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *CatalogRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}

// QuotesRepositoryWithCircuitBreaker wraps a quotes repository with circuit breaker protection.
type QuotesRepositoryWithCircuitBreaker struct {
	repo           QuotesRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// NewQuotesRepositoryWithCircuitBreaker creates a new repository wrapper with circuit breaker.
func NewQuotesRepositoryWithCircuitBreaker(repo QuotesRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *QuotesRepositoryWithCircuitBreaker {
	return &QuotesRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores a quote record with circuit breaker protection.
// If circuit is open, silently fails (history is non-critical).
func (r *QuotesRepositoryWithCircuitBreaker) Create(ctx context.Context, record *model.QuoteRecord) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, record)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores quote records with circuit breaker protection.
// If circuit is open, silently fails (history is non-critical).
func (r *QuotesRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, records []*model.QuoteRecord) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, records)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query retrieves quote records with circuit breaker protection.
func (r *QuotesRepositoryWithCircuitBreaker) Query(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, error) {
	var result []*model.QuoteRecord
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the count of quote records with circuit breaker protection.
func (r *QuotesRepositoryWithCircuitBreaker) Count(ctx context.Context, opts model.QuoteQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *QuotesRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
