//go:build !integration

package repository

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestCatalog(t *testing.T) *FileCatalog {
	t.Helper()
	c, err := LoadFileCatalog(filepath.Join("testdata", "catalog.json"))
	require.NoError(t, err)
	return c
}

func TestLoadFileCatalog(t *testing.T) {
	ctx := context.Background()
	c := loadTestCatalog(t)

	t.Run("get product", func(t *testing.T) {
		card, err := c.GetProduct(ctx, "ground-lb")
		require.NoError(t, err)
		assert.Equal(t, "Ground", card.Name)
		assert.Equal(t, model.AllZones, card.Zones)
		require.Len(t, card.Categories, 6)

		_, item, ok := card.UnauthorizedItem()
		require.True(t, ok)
		assert.Equal(t, "Unauthorized Package", item.Name)
		assert.True(t, card.Categories[2].SingleFee)
		assert.False(t, card.Categories[0].SingleFee)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := c.GetProduct(ctx, "air")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list skips inactive products", func(t *testing.T) {
		cards, err := c.ListProducts(ctx)
		require.NoError(t, err)
		ids := make([]string, 0, len(cards))
		for _, card := range cards {
			ids = append(ids, card.ID)
		}
		assert.Equal(t, []string{"ground-lb", "ground-kg"}, ids)
	})

	t.Run("zone table by origin", func(t *testing.T) {
		table, err := c.GetZoneTable(ctx, " 91761 ")
		require.NoError(t, err)
		assert.Len(t, table.Ranges, 5)
		assert.Equal(t, model.Zone(4), table.Ranges[1].Zone)
		assert.Equal(t, []string{"91761"}, c.Origins())
	})

	t.Run("unknown origin", func(t *testing.T) {
		_, err := c.GetZoneTable(ctx, "10001")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("remote table and fuel", func(t *testing.T) {
		remote, err := c.GetRemoteTable(ctx)
		require.NoError(t, err)
		assert.Len(t, remote.Ranges, 3)

		fuel, err := c.GetFuelSchedule(ctx)
		require.NoError(t, err)
		require.Len(t, fuel, 1)
		assert.True(t, fuel[0].Active)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFileCatalog(filepath.Join("testdata", "absent.json"))
		assert.Error(t, err)
	})
}

func TestReadFileCatalog(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"products": [`},
		{"duplicate product", `{"products": [
			{"product_id": "a", "zone_rates": []},
			{"product_id": "a", "zone_rates": []}
		]}`},
		{"bad zone", `{"postal_zones": [{"origin": "1", "start_code": "1", "zone": "far"}]}`},
		{"bad remote type", `{"remote_areas": [{"start_code": "1", "type": "X"}]}`},
		{"bad fuel date", `{"fuel_rates": [{"rate": 1, "effective_date": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadFileCatalog(strings.NewReader(tt.body))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}

	t.Run("empty catalog", func(t *testing.T) {
		c, err := ReadFileCatalog(strings.NewReader(`{}`))
		require.NoError(t, err)

		cards, err := c.ListProducts(context.Background())
		require.NoError(t, err)
		assert.Empty(t, cards)
	})
}

func TestLoadCatalogFile(t *testing.T) {
	t.Run("keeps raw documents", func(t *testing.T) {
		file, err := LoadCatalogFile(filepath.Join("testdata", "catalog.json"))
		require.NoError(t, err)
		assert.Len(t, file.Products, 3)
		assert.NotEmpty(t, file.PostalZones)
		assert.Len(t, file.FuelRates, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadCatalogFile(filepath.Join("testdata", "missing.json"))
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidDocument)
	})
}
