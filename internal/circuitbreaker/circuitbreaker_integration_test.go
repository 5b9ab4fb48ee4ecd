//go:build integration

package circuitbreaker_test

import (
	"context"
	"testing"
	"time"

	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreakerWithMongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	mongoContainer, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, mongoContainer.Cleanup(ctx))
	}()

	t.Run("stays closed while the catalog answers", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "test_catalog_breaker")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()

		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          100 * time.Millisecond,
			Name:             "catalog",
			IsFailure:        repository.IsStoreFailure,
		})
		catalog := repository.NewCatalogRepositoryWithCircuitBreaker(repository.NewCatalogRepository(db), cb)

		_, err = catalog.GetProduct(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = catalog.GetZoneTable(ctx, "91761")
		assert.ErrorIs(t, err, repository.ErrNotFound)
		_, err = catalog.GetFuelSchedule(ctx)
		assert.NoError(t, err)

		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
		assert.True(t, cb.GetStats().IsHealthy)
	})

	t.Run("opens when the client is gone and recovers", func(t *testing.T) {
		db, err := repository.NewMongoDB(mongoContainer.URI, "test_quotes_breaker")
		require.NoError(t, err)

		var transitions []circuitbreaker.State
		cb := circuitbreaker.New(circuitbreaker.Config{
			FailureThreshold: 2,
			SuccessThreshold: 1,
			Timeout:          50 * time.Millisecond,
			Name:             "quotes",
			IsFailure:        repository.IsStoreFailure,
			OnStateChange: func(_ string, _, to circuitbreaker.State) {
				transitions = append(transitions, to)
			},
		})
		quotes := repository.NewQuotesRepositoryWithCircuitBreaker(repository.NewQuotesRepository(db), cb)

		require.NoError(t, quotes.Create(ctx, &model.QuoteRecord{ProductID: "ground-lb"}))
		require.NoError(t, db.Close(ctx))

		for i := 0; i < 2; i++ {
			_, err := quotes.Count(ctx, model.QuoteQueryOptions{})
			assert.Error(t, err)
		}
		assert.True(t, cb.IsOpen())

		_, err = quotes.Count(ctx, model.QuoteQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		assert.NoError(t, quotes.Create(ctx, &model.QuoteRecord{}), "writes are dropped while open")

		db, err = repository.NewMongoDB(mongoContainer.URI, "test_quotes_breaker")
		require.NoError(t, err)
		defer func() {
			_ = db.Close(ctx)
		}()
		quotes = repository.NewQuotesRepositoryWithCircuitBreaker(repository.NewQuotesRepository(db), cb)

		time.Sleep(60 * time.Millisecond)
		count, err := quotes.Count(ctx, model.QuoteQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, circuitbreaker.StateClosed, cb.State())
		assert.Equal(t, []circuitbreaker.State{
			circuitbreaker.StateOpen,
			circuitbreaker.StateHalfOpen,
			circuitbreaker.StateClosed,
		}, transitions)
	})
}
