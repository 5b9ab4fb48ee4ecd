//go:build !integration

package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errStoreDown = errors.New("connection refused")

// stubCatalog returns err from every call, or the embedded catalog when err is nil.
type stubCatalog struct {
	*FileCatalog
	err   error
	calls int
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (*model.RateCard, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.FileCatalog.GetProduct(ctx, id)
}

type stubQuotes struct {
	err     error
	created []*model.QuoteRecord
}

func (s *stubQuotes) Create(_ context.Context, r *model.QuoteRecord) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, r)
	return nil
}

func (s *stubQuotes) CreateMany(_ context.Context, rs []*model.QuoteRecord) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, rs...)
	return nil
}

func (s *stubQuotes) Query(context.Context, model.QuoteQueryOptions) ([]*model.QuoteRecord, error) {
	return s.created, s.err
}

func (s *stubQuotes) Count(context.Context, model.QuoteQueryOptions) (int64, error) {
	return int64(len(s.created)), s.err
}

func testBreaker() *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: 2,
		SuccessThreshold: 1,
		Timeout:          time.Hour,
		Name:             "test",
		IsFailure:        IsStoreFailure,
	})
}

func TestIsStoreFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"not found", fmt.Errorf("product: %w", ErrNotFound), false},
		{"invalid document", fmt.Errorf("x: %w", ErrInvalidDocument), false},
		{"canceled", context.Canceled, false},
		{"deadline", context.DeadlineExceeded, true},
		{"store error", errStoreDown, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStoreFailure(tt.err))
		})
	}
}

func TestCatalogRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("passes results through", func(t *testing.T) {
		stub := &stubCatalog{FileCatalog: loadTestCatalog(t)}
		repo := NewCatalogRepositoryWithCircuitBreaker(stub, testBreaker())

		card, err := repo.GetProduct(ctx, "ground-lb")
		require.NoError(t, err)
		assert.Equal(t, "ground-lb", card.ID)

		table, err := repo.GetZoneTable(ctx, "91761")
		require.NoError(t, err)
		assert.NotEmpty(t, table.Ranges)

		_, err = repo.GetRemoteTable(ctx)
		assert.NoError(t, err)
		_, err = repo.GetFuelSchedule(ctx)
		assert.NoError(t, err)
		cards, err := repo.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})

	t.Run("not found does not open the circuit", func(t *testing.T) {
		stub := &stubCatalog{FileCatalog: loadTestCatalog(t)}
		repo := NewCatalogRepositoryWithCircuitBreaker(stub, testBreaker())

		for i := 0; i < 5; i++ {
			_, err := repo.GetProduct(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		}
		assert.Equal(t, circuitbreaker.StateClosed, repo.GetCircuitBreaker().State())
	})

	t.Run("store failures open the circuit", func(t *testing.T) {
		stub := &stubCatalog{FileCatalog: loadTestCatalog(t), err: errStoreDown}
		repo := NewCatalogRepositoryWithCircuitBreaker(stub, testBreaker())

		_, _ = repo.GetProduct(ctx, "ground-lb")
		_, _ = repo.GetProduct(ctx, "ground-lb")
		_, err := repo.GetProduct(ctx, "ground-lb")

		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		assert.Equal(t, 2, stub.calls)
	})
}

func TestQuotesRepositoryWithCircuitBreaker(t *testing.T) {
	ctx := context.Background()

	t.Run("records pass through", func(t *testing.T) {
		stub := &stubQuotes{}
		repo := NewQuotesRepositoryWithCircuitBreaker(stub, testBreaker())

		require.NoError(t, repo.Create(ctx, &model.QuoteRecord{ProductID: "ground-lb"}))
		require.NoError(t, repo.CreateMany(ctx, []*model.QuoteRecord{{ProductID: "a"}, {ProductID: "b"}}))

		records, err := repo.Query(ctx, model.QuoteQueryOptions{})
		require.NoError(t, err)
		assert.Len(t, records, 3)

		count, err := repo.Count(ctx, model.QuoteQueryOptions{})
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)
	})

	t.Run("writes are dropped while open", func(t *testing.T) {
		stub := &stubQuotes{err: errStoreDown}
		repo := NewQuotesRepositoryWithCircuitBreaker(stub, testBreaker())

		assert.ErrorIs(t, repo.Create(ctx, &model.QuoteRecord{}), errStoreDown)
		assert.ErrorIs(t, repo.Create(ctx, &model.QuoteRecord{}), errStoreDown)
		assert.True(t, repo.GetCircuitBreaker().IsOpen())

		assert.NoError(t, repo.Create(ctx, &model.QuoteRecord{}))
		assert.NoError(t, repo.CreateMany(ctx, []*model.QuoteRecord{{}}))

		_, err := repo.Query(ctx, model.QuoteQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
		_, err = repo.Count(ctx, model.QuoteQueryOptions{})
		assert.ErrorIs(t, err, circuitbreaker.ErrCircuitOpen)
	})
}
