//go:build !integration

package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeCatalog(t *testing.T) {
	t.Run("file catalog", func(t *testing.T) {
		catalog, err := InitializeCatalog(nil, config.CatalogConfig{File: testCatalogFile})
		require.NoError(t, err)

		card, err := catalog.GetProduct(context.Background(), "ground-lb")
		require.NoError(t, err)
		assert.Equal(t, "ground-lb", card.ID)
	})

	t.Run("database wins over file", func(t *testing.T) {
		fc, err := repository.LoadFileCatalog(testCatalogFile)
		require.NoError(t, err)
		db := &DatabaseComponents{Catalog: fc}

		catalog, err := InitializeCatalog(db, config.CatalogConfig{File: "ignored.json"})
		require.NoError(t, err)
		assert.Same(t, fc, catalog)
	})

	t.Run("nothing configured", func(t *testing.T) {
		_, err := InitializeCatalog(nil, config.CatalogConfig{})
		assert.ErrorIs(t, err, ErrNoCatalog)
	})
}

func TestNewStoreBreaker(t *testing.T) {
	cb := newStoreBreaker("mongodb_test", config.DatabaseConfig{
		CircuitBreakerFailureThreshold: 2,
		CircuitBreakerSuccessThreshold: 1,
		CircuitBreakerTimeout:          time.Hour,
	})
	ctx := context.Background()

	assert.Equal(t, "mongodb_test", cb.Name())

	for i := 0; i < 3; i++ {
		_ = cb.Execute(ctx, func() error { return fmt.Errorf("product x: %w", repository.ErrNotFound) })
	}
	assert.Equal(t, circuitbreaker.StateClosed, cb.State(), "not found is not a store failure")

	for i := 0; i < 2; i++ {
		_ = cb.Execute(ctx, func() error { return errors.New("connection reset") })
	}
	assert.True(t, cb.IsOpen())
}
