package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/logger"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/service"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var errNoCatalog = errors.New("no catalog file: set --catalog or CATALOG_FILE")

// packageFlags are the request flags shared by quote and zones.
type packageFlags struct {
	product     string
	from        string
	to          string
	weight      string
	length      string
	width       string
	height      string
	shipDate    string
	residential bool
	services    []string
}

func (f *packageFlags) register(cmd *cobra.Command, withDestination bool) {
	flags := cmd.Flags()
	flags.StringVarP(&f.product, "product", "p", "", "product id (required)")
	flags.StringVar(&f.from, "from", "", "origin postal code (required)")
	if withDestination {
		flags.StringVar(&f.to, "to", "", "destination postal code; omit to rate every zone")
	}
	flags.StringVarP(&f.weight, "weight", "w", "", "actual weight in the product unit (required)")
	flags.StringVar(&f.length, "length", "", "package length (required)")
	flags.StringVar(&f.width, "width", "", "package width (required)")
	flags.StringVar(&f.height, "height", "", "package height (required)")
	flags.StringVar(&f.shipDate, "ship-date", "", "ship date (YYYY-MM-DD, default today)")
	flags.BoolVar(&f.residential, "residential", true, "residential delivery")
	flags.StringSliceVar(&f.services, "service", nil, "on-request service, repeatable")

	for _, name := range []string{"product", "from", "weight", "length", "width", "height"} {
		_ = cmd.MarkFlagRequired(name)
	}
}

// request builds and validates the calculation request.
// Residential is only set when the flag was given so the configured default applies.
func (f *packageFlags) request(cmd *cobra.Command) (*dto.CalculateRateRequest, error) {
	req := &dto.CalculateRateRequest{
		ProductID:      f.product,
		FromPostalCode: f.from,
		ToPostalCode:   f.to,
		ShipDate:       f.shipDate,
		Services:       f.services,
	}

	measures := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"weight", f.weight, &req.Weight},
		{"length", f.length, &req.Length},
		{"width", f.width, &req.Width},
		{"height", f.height, &req.Height},
	}
	for _, m := range measures {
		d, err := decimal.NewFromString(m.value)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s %q: %w", m.name, m.value, err)
		}
		*m.dst = d
	}

	if cmd.Flags().Changed("residential") {
		residential := f.residential
		req.Residential = &residential
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	flags := &packageFlags{}
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Rate a package for one destination",
		Long: `Rate a package from --from to --to.

Without --to every zone of the product is rated, as the HTTP API does.`,
		Example: `  ratecalc quote --catalog catalog.json -p ground-lb --from 91761 --to 30401 -w 10 --length 12 --width 10 --height 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, opts, flags, false)
		},
	}
	flags.register(cmd, true)
	return cmd
}

func newZonesCmd(opts *rootOptions) *cobra.Command {
	flags := &packageFlags{}
	cmd := &cobra.Command{
		Use:     "zones",
		Short:   "Rate a package in every zone of a product",
		Example: `  ratecalc zones --catalog catalog.json -p ground-lb --from 91761 -w 10 --length 12 --width 10 --height 8`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runQuote(cmd, opts, flags, true)
		},
	}
	flags.register(cmd, false)
	return cmd
}

func runQuote(cmd *cobra.Command, opts *rootOptions, flags *packageFlags, allZones bool) error {
	req, err := flags.request(cmd)
	if err != nil {
		return err
	}

	catalog, err := opts.catalog()
	if err != nil {
		return err
	}

	q, err := opts.quoteService(catalog).Quote(cmd.Context(), req, service.QuoteOptions{AllZones: allZones})
	if err != nil {
		return err
	}
	return writeRawJSON(cmd.OutOrStdout(), q.Payload)
}

// catalog loads the provider catalog named by the flags or configuration.
func (o *rootOptions) catalog() (*repository.FileCatalog, error) {
	if o.catalogFile == "" {
		return nil, errNoCatalog
	}
	return repository.LoadFileCatalog(o.catalogFile)
}

// quoteService builds a quote service over catalog. Nothing is cached or recorded.
func (o *rootOptions) quoteService(catalog repository.CatalogReader) *service.RateQuoteService {
	engineOpts := []rating.Option{rating.WithLogger(logger.Component("rating"))}
	if o.cfg.Rating.DefaultDimDivisor > 0 {
		engineOpts = append(engineOpts, rating.WithDefaultDivisor(decimal.NewFromInt(int64(o.cfg.Rating.DefaultDimDivisor))))
	}

	return service.NewQuoteService(catalog, rating.NewEngine(engineOpts...),
		service.WithDefaultResidential(o.cfg.Rating.DefaultResidential),
	)
}

func writeRawJSON(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
