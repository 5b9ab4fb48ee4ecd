//go:build integration

package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/service"
	"github.com/guttosm/freight-rate-service/internal/testutil"
)

func TestQuoteService_MongoDB_Integration(t *testing.T) {
	ctx := context.Background()

	container, err := testutil.SetupMongoDB(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, container.Cleanup(ctx))
	}()

	db, err := repository.NewMongoDB(container.URI, "test_quote_service")
	require.NoError(t, err)
	defer func() {
		_ = db.Close(ctx)
	}()

	raw, err := os.ReadFile(filepath.Join("..", "repository", "testdata", "catalog.json"))
	require.NoError(t, err)
	var file repository.CatalogFile
	require.NoError(t, json.Unmarshal(raw, &file))
	require.NoError(t, db.SeedCatalog(ctx, file))

	quotes := repository.NewQuotesRepository(db)
	recorder := service.NewQuoteRecorder(quotes, service.DefaultQuoteRecorderConfig())
	catalog := service.NewCachedCatalog(repository.NewCatalogRepository(db), 100, time.Minute)
	defer catalog.Stop()

	svc := service.NewQuoteService(catalog, rating.NewEngine(),
		service.WithHistory(recorder, quotes),
		service.WithServiceClock(func() time.Time { return time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) }),
	)

	req := &dto.CalculateRateRequest{
		ProductID:      "ground-lb",
		FromPostalCode: "91761",
		ToPostalCode:   "30401",
		Weight:         decimal.NewFromInt(10),
		Length:         decimal.NewFromInt(12),
		Width:          decimal.NewFromInt(10),
		Height:         decimal.NewFromInt(8),
	}
	q, err := svc.Quote(ctx, req, service.QuoteOptions{RequestID: "it-1"})
	require.NoError(t, err)

	var body dto.RateResponse
	require.NoError(t, json.Unmarshal(q.Payload, &body))
	assert.Equal(t, 4, body.Zone)
	assert.Equal(t, 20.79, body.TotalAmount)

	recorder.Stop()

	records, total, err := svc.History(ctx, model.QuoteQueryOptions{ProductID: "ground-lb", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, records, 1)
	assert.Equal(t, "it-1", records[0].RequestID)
	assert.Equal(t, 20.79, records[0].TotalAmount)
}
