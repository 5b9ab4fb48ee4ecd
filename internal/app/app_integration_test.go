//go:build integration

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeApp_Integration(t *testing.T) {
	ctx := context.Background()

	redis, err := testutil.SetupRedis(ctx)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, redis.Cleanup(ctx))
	}()

	cfg := fileConfig()
	cfg.Catalog.File = ""
	cfg.Database = mongoConfig(t)
	cfg.Redis.Enabled = true
	cfg.Redis.Addr = redis.Addr
	cfg.Redis.KeyPrefix = "it:quote:"

	seed, err := repository.NewMongoDB(cfg.Database.URI, cfg.Database.DatabaseName)
	require.NoError(t, err)
	raw, err := os.ReadFile(testCatalogFile)
	require.NoError(t, err)
	var file repository.CatalogFile
	require.NoError(t, json.Unmarshal(raw, &file))
	require.NoError(t, seed.SeedCatalog(ctx, file))
	require.NoError(t, seed.Close(ctx))

	a, err := InitializeApp(cfg)
	require.NoError(t, err)
	require.NotNil(t, a.services.Redis)

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"redis":"ok"`)
	assert.Contains(t, w.Body.String(), `"mongodb":"ok"`)

	body := `{"product_id":"ground-lb","from_postal_code":"91761","to_postal_code":"30401","weight":10,"length":12,"width":10,"height":8,"ship_date":"2025-06-02"}`
	for _, want := range []string{"MISS", "HIT"} {
		req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w = httptest.NewRecorder()
		a.Router.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, want, w.Header().Get("X-Cache"))
	}

	// Flush pending history before listing it.
	a.services.Recorder.Stop()

	w = httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/quotes", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	a.Close()

	// Redis keys outlive the app; a new instance reuses them.
	b, err := InitializeApp(cfg)
	require.NoError(t, err)
	defer b.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	b.Router.ServeHTTP(w, req)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
}
