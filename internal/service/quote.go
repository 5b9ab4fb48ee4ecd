package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/logger"
	"github.com/guttosm/freight-rate-service/internal/metrics"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/guttosm/freight-rate-service/internal/repository"
	"github.com/guttosm/freight-rate-service/internal/service/cache"
)

var (
	// ErrProductNotFound is returned when the requested product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrOriginNotSupported is returned when no postal zone table exists for the origin.
	ErrOriginNotSupported = errors.New("origin not supported")
	// ErrHistoryDisabled is returned by History when no quote store is configured.
	ErrHistoryDisabled = errors.New("quote history is disabled")
)

// QuoteOptions carries per-call settings that are not part of the request body.
type QuoteOptions struct {
	// AllZones rates every zone even when a destination is given.
	AllZones  bool
	RequestID string
}

// Quote is an encoded quote response.
type Quote struct {
	Payload  json.RawMessage
	AllZones bool
	Cached   bool
}

// QuoteService defines the quoting operations exposed over HTTP.
type QuoteService interface {
	Quote(ctx context.Context, req *dto.CalculateRateRequest, opts QuoteOptions) (*Quote, error)
	ListProducts(ctx context.Context) ([]dto.ProductSummary, error)
	History(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, int64, error)
	PurgeCache(ctx context.Context, req dto.PurgeCacheRequest) error
}

// QuoteServiceOption configures a RateQuoteService.
type QuoteServiceOption func(*RateQuoteService)

// RateQuoteService implements QuoteService on top of the rating engine.
type RateQuoteService struct {
	catalog            repository.CatalogReader
	engine             rating.Calculator
	quotes             cache.QuoteStore
	recorder           *QuoteRecorder
	history            repository.QuotesRepositoryInterface
	defaultResidential bool
	clock              func() time.Time
	log                zerolog.Logger
}

// NewQuoteService creates a quote service reading provider data from catalog.
func NewQuoteService(catalog repository.CatalogReader, engine rating.Calculator, opts ...QuoteServiceOption) *RateQuoteService {
	s := &RateQuoteService{
		catalog:            catalog,
		engine:             engine,
		defaultResidential: true,
		clock:              time.Now,
		log:                logger.Component("quote_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithQuoteStore serves identical requests from store.
func WithQuoteStore(store cache.QuoteStore) QuoteServiceOption {
	return func(s *RateQuoteService) {
		s.quotes = store
	}
}

// WithHistory records computed quotes through recorder and lists them from repo.
func WithHistory(recorder *QuoteRecorder, repo repository.QuotesRepositoryInterface) QuoteServiceOption {
	return func(s *RateQuoteService) {
		s.recorder = recorder
		s.history = repo
	}
}

// WithDefaultResidential sets the residential flag used when a request omits it.
func WithDefaultResidential(residential bool) QuoteServiceOption {
	return func(s *RateQuoteService) {
		s.defaultResidential = residential
	}
}

// WithServiceClock overrides the clock that supplies the default ship date.
func WithServiceClock(clock func() time.Time) QuoteServiceOption {
	return func(s *RateQuoteService) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// Quote rates the request. Without a destination, or with opts.AllZones, every
// zone of the product is rated.
func (s *RateQuoteService) Quote(ctx context.Context, req *dto.CalculateRateRequest, opts QuoteOptions) (*Quote, error) {
	shipDate, err := req.ParseShipDate()
	if err != nil {
		return nil, err
	}
	if shipDate.IsZero() {
		shipDate = model.DateOf(s.clock())
	}
	residential := req.ResidentialOr(s.defaultResidential)
	destination := rating.NormalizePostalCode(req.ToPostalCode)
	allZones := opts.AllZones || destination == ""
	mode := metrics.ModeSingleZone
	if allZones {
		mode = metrics.ModeAllZones
	}

	key := quoteKey(req, shipDate, residential, allZones)
	if s.quotes != nil {
		if payload, ok := s.quotes.Get(ctx, key); ok {
			return &Quote{Payload: payload, AllZones: allZones, Cached: true}, nil
		}
	}

	product, err := s.catalog.GetProduct(ctx, strings.TrimSpace(req.ProductID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, req.ProductID)
		}
		return nil, err
	}
	rreq, err := s.buildRequest(ctx, req, product, destination, shipDate, residential)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var (
		response interface{}
		record   *model.QuoteRecord
	)
	if allZones {
		if !product.EffectiveOn(shipDate) {
			metrics.RecordRateCalculation(mode, time.Since(start), "error")
			return nil, fmt.Errorf("%w: product %s", rating.ErrProductNotEffective, product.ID)
		}
		results := s.engine.CalculateAllZones(rreq)
		metrics.RecordRateCalculation(mode, time.Since(start), "success")
		response = dto.NewAllZonesResponse(results)
		record = newAllZonesRecord(rreq, results)
	} else {
		result, err := s.engine.Calculate(rreq)
		if err != nil {
			metrics.RecordRateCalculation(mode, time.Since(start), "error")
			if rating.IsConfigurationError(err) {
				s.log.Error().Err(err).Str("product_id", product.ID).Msg("provider data cannot rate request")
			}
			return nil, err
		}
		status := "success"
		if result.IsUnauthorized() {
			status = "unauthorized"
			metrics.RecordUnauthorized(result.Unauthorized.Reason)
		}
		metrics.RecordRateCalculation(mode, time.Since(start), status)
		response = dto.NewRateResponse(result)
		record = newZoneRecord(rreq, result)
	}

	payload, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("encode quote: %w", err)
	}
	if s.quotes != nil {
		s.quotes.Set(ctx, key, payload)
	}
	if s.recorder != nil {
		record.RequestID = opts.RequestID
		s.recorder.Record(record)
	}

	return &Quote{Payload: payload, AllZones: allZones}, nil
}

func (s *RateQuoteService) buildRequest(
	ctx context.Context,
	req *dto.CalculateRateRequest,
	product *model.RateCard,
	destination string,
	shipDate time.Time,
	residential bool,
) (rating.Request, error) {
	origin := rating.NormalizePostalCode(req.FromPostalCode)
	zones, err := s.catalog.GetZoneTable(ctx, origin)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return rating.Request{}, fmt.Errorf("%w: %s", ErrOriginNotSupported, origin)
		}
		return rating.Request{}, err
	}
	remote, err := s.catalog.GetRemoteTable(ctx)
	if err != nil {
		return rating.Request{}, err
	}
	fuel, err := s.catalog.GetFuelSchedule(ctx)
	if err != nil {
		return rating.Request{}, err
	}

	return rating.Request{
		Package:     req.Package(),
		Product:     product,
		Origin:      origin,
		Destination: destination,
		ZoneTable:   zones,
		RemoteTable: remote,
		Fuel:        fuel,
		ShipDate:    shipDate,
		Residential: residential,
		Services:    req.Services,
	}, nil
}

// ListProducts returns the active products.
func (s *RateQuoteService) ListProducts(ctx context.Context) ([]dto.ProductSummary, error) {
	cards, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductSummary, 0, len(cards))
	for _, card := range cards {
		out = append(out, dto.NewProductSummary(card))
	}
	return out, nil
}

// History lists recorded quotes, newest first, with the total matching count.
func (s *RateQuoteService) History(ctx context.Context, opts model.QuoteQueryOptions) ([]*model.QuoteRecord, int64, error) {
	if s.history == nil {
		return nil, 0, ErrHistoryDisabled
	}
	records, err := s.history.Query(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.history.Count(ctx, opts)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// purger is implemented by catalogs that cache provider data.
type purger interface {
	Purge()
}

// PurgeCache clears the selected caches; an empty selection clears both.
func (s *RateQuoteService) PurgeCache(ctx context.Context, req dto.PurgeCacheRequest) error {
	if req.All() || req.Catalog {
		if p, ok := s.catalog.(purger); ok {
			p.Purge()
		}
	}
	if (req.All() || req.Quotes) && s.quotes != nil {
		if err := s.quotes.Clear(ctx); err != nil {
			return fmt.Errorf("clear %s quote cache: %w", s.quotes.Name(), err)
		}
	}
	s.log.Info().Bool("catalog", req.All() || req.Catalog).Bool("quotes", req.All() || req.Quotes).Msg("caches purged")
	return nil
}

// quoteKey identifies a request after defaults are applied. Decimal values are
// normalized so 10 and 10.0 share a key.
func quoteKey(req *dto.CalculateRateRequest, shipDate time.Time, residential, allZones bool) string {
	services := make([]string, 0, len(req.Services))
	for _, svc := range req.Services {
		if svc = strings.ToLower(strings.TrimSpace(svc)); svc != "" {
			services = append(services, svc)
		}
	}
	sort.Strings(services)

	destination := rating.NormalizePostalCode(req.ToPostalCode)
	if allZones {
		destination = "*" + destination
	}
	return strings.Join([]string{
		strings.TrimSpace(req.ProductID),
		rating.NormalizePostalCode(req.FromPostalCode),
		destination,
		req.Weight.String(),
		req.Length.String(),
		req.Width.String(),
		req.Height.String(),
		shipDate.Format(time.DateOnly),
		fmt.Sprint(residential),
		strings.Join(services, ","),
	}, "|")
}

func newRecord(req rating.Request) *model.QuoteRecord {
	return &model.QuoteRecord{
		ProductID:   req.Product.ID,
		Origin:      req.Origin,
		Destination: req.Destination,
		ShipDate:    req.ShipDate,
		Unit:        string(req.Product.Unit),
	}
}

func newZoneRecord(req rating.Request, result *model.RateResult) *model.QuoteRecord {
	record := newRecord(req)
	record.Zone = int(result.Zone)
	record.Chargeable = dto.Money(result.PackageInfo.Weight.Chargeable)
	record.Unauthorized = result.IsUnauthorized()
	record.TotalAmount = dto.Money(result.Total)
	if result.Remote.IsRemote() {
		record.WithField("remote_type", string(result.Remote.Type))
	}
	return record
}

func newAllZonesRecord(req rating.Request, results []model.ZoneResult) *model.QuoteRecord {
	record := newRecord(req)
	record.AllZones = true
	totals := make(map[string]interface{}, len(results))
	for _, zr := range results {
		if zr.Err != nil || zr.Result == nil {
			totals[fmt.Sprint(int(zr.Zone))] = dto.RatingErrorCode(zr.Err)
			continue
		}
		record.Chargeable = dto.Money(zr.Result.PackageInfo.Weight.Chargeable)
		record.Unauthorized = record.Unauthorized || zr.Result.IsUnauthorized()
		totals[fmt.Sprint(int(zr.Zone))] = dto.Money(zr.Result.Total)
	}
	record.WithField("zone_totals", totals)
	return record
}

var _ QuoteService = (*RateQuoteService)(nil)
