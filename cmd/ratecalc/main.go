// Package main is the offline rate calculator. It rates packages against a
// provider export file without a running service or database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/guttosm/freight-rate-service/config"
	"github.com/guttosm/freight-rate-service/internal/logger"
	"github.com/spf13/cobra"
)

// rootOptions carries the persistent flags and the loaded configuration.
type rootOptions struct {
	configFile  string
	catalogFile string
	logLevel    string
	cfg         config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "ratecalc",
		Short: "Offline freight rate calculator",
		Long: `ratecalc rates parcel shipments against a provider export file.

Provider documents (products, postal zones, remote areas and fuel rates) are read
from the JSON catalog given by --catalog or CATALOG_FILE.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (yaml, json or toml)")
	cmd.PersistentFlags().StringVar(&opts.catalogFile, "catalog", "", "provider catalog file (default: CATALOG_FILE)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newQuoteCmd(opts))
	cmd.AddCommand(newZonesCmd(opts))
	cmd.AddCommand(newProductsCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))
	return cmd
}

func (o *rootOptions) load(cmd *cobra.Command) error {
	if o.configFile != "" {
		cfg, err := config.LoadFile(o.configFile)
		if err != nil {
			return err
		}
		o.cfg = cfg
	} else {
		o.cfg = config.Load()
	}

	if o.catalogFile == "" {
		o.catalogFile = o.cfg.Catalog.File
	}

	level := o.logLevel
	if level == "" {
		level = "warn"
	}
	logger.InitWithWriter(level, true, cmd.ErrOrStderr())
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
