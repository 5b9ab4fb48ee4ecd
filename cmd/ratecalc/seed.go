package main

import (
	"context"
	"fmt"

	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var uri, database string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the catalog file into MongoDB",
		Long: `Replace the provider collections of MongoDB with the documents of the catalog file.

The file is fully validated before anything is written. Quote history is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.catalogFile == "" {
				return errNoCatalog
			}
			if uri == "" {
				uri = opts.cfg.Database.URI
			}
			if database == "" {
				database = opts.cfg.Database.DatabaseName
			}

			file, err := repository.LoadCatalogFile(opts.catalogFile)
			if err != nil {
				return err
			}
			return seed(cmd.Context(), uri, database, file)
		},
	}

	cmd.Flags().StringVar(&uri, "mongodb-uri", "", "MongoDB URI (default: MONGODB_URI)")
	cmd.Flags().StringVar(&database, "database", "", "database name (default: MONGODB_DATABASE)")
	return cmd
}

func seed(ctx context.Context, uri, database string, file repository.CatalogFile) error {
	db, err := repository.NewMongoDB(uri, database)
	if err != nil {
		return fmt.Errorf("connect to mongodb: %w", err)
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Failed to close MongoDB connection")
		}
	}()

	if err := db.SeedCatalog(ctx, file); err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}

	log.Info().
		Str("database", database).
		Int("products", len(file.Products)).
		Int("postal_zones", len(file.PostalZones)).
		Int("remote_areas", len(file.RemoteAreas)).
		Int("fuel_rates", len(file.FuelRates)).
		Msg("Catalog seeded")
	return nil
}
