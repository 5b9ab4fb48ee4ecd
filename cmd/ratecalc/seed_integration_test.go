//go:build integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalogFile = filepath.Join("..", "..", "internal", "repository", "testdata", "catalog.json")

func TestMain(m *testing.M) {
	os.Exit(testutil.SetupTestMainWithMongoDB(context.Background(), m))
}

func TestSeedCommand_Integration(t *testing.T) {
	ctx := context.Background()
	database := testutil.SanitizeDBName(t.Name())

	cmd := newRootCmd()
	cmd.SetArgs([]string{
		"seed",
		"--catalog", testCatalogFile,
		"--mongodb-uri", testutil.GetSharedContainerURI(),
		"--database", database,
	})
	require.NoError(t, cmd.ExecuteContext(ctx))

	db, err := repository.NewMongoDB(testutil.GetSharedContainerURI(), database)
	require.NoError(t, err)
	defer func() { _ = db.Close(ctx) }()

	catalog := repository.NewCatalogRepository(db)
	cards, err := catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	table, err := catalog.GetZoneTable(ctx, "91761")
	require.NoError(t, err)
	assert.NotEmpty(t, table.Ranges)

	t.Run("seeding again replaces the documents", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetArgs([]string{
			"seed",
			"--catalog", testCatalogFile,
			"--mongodb-uri", testutil.GetSharedContainerURI(),
			"--database", database,
		})
		require.NoError(t, cmd.ExecuteContext(ctx))

		cards, err := catalog.ListProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, cards, 2)
	})
}
