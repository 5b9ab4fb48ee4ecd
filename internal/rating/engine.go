package rating

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Request is the input of one calculation. All tables are read-only for the engine.
type Request struct {
	Package     model.Package
	Product     *model.RateCard
	Origin      string
	Destination string
	ZoneTable   *model.PostalZoneTable
	RemoteTable *model.RemoteAreaTable
	Fuel        model.FuelSchedule
	// ShipDate defaults to the engine clock when zero.
	ShipDate    time.Time
	Residential bool
	// Services names the on-request items the shipper asked for.
	Services []string
}

// Calculator defines the rate calculation operations.
type Calculator interface {
	Calculate(req Request) (*model.RateResult, error)
	CalculateZone(req Request, zone model.Zone) (*model.RateResult, error)
	CalculateAllZones(req Request) []model.ZoneResult
}

// Option configures an Engine.
type Option func(*Engine)

// Engine implements Calculator.
type Engine struct {
	log            zerolog.Logger
	clock          func() time.Time
	defaultDivisor decimal.Decimal
}

// NewEngine creates an Engine with the given options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:            zerolog.Nop(),
		clock:          time.Now,
		defaultDivisor: model.DefaultDimDivisor,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithLogger sets the logger used for provider data warnings.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) {
		e.log = log.With().Str("component", "rating_engine").Logger()
	}
}

// WithDefaultDivisor sets the dimensional divisor for products that do not carry one.
func WithDefaultDivisor(divisor decimal.Decimal) Option {
	return func(e *Engine) {
		if divisor.IsPositive() {
			e.defaultDivisor = divisor
		}
	}
}

// WithClock overrides the clock used when a request has no ship date.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// Calculate rates the package for the zone of the destination postal code.
func (e *Engine) Calculate(req Request) (*model.RateResult, error) {
	if req.Destination == "" {
		return nil, ErrMissingDestination
	}
	if err := e.validate(req); err != nil {
		return nil, err
	}

	zone, err := ResolveZone(req.Destination, req.ZoneTable)
	if err != nil {
		return nil, err
	}
	return e.calculate(req, zone, ResolveRemoteFlags(req.Destination, req.RemoteTable))
}

// CalculateZone rates the package for a fixed zone. Remote flags come from the
// destination when one is given.
func (e *Engine) CalculateZone(req Request, zone model.Zone) (*model.RateResult, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	var remote model.RemoteFlags
	if req.Destination != "" {
		remote = ResolveRemoteFlags(req.Destination, req.RemoteTable)
	}
	return e.calculate(req, zone, remote)
}

// CalculateAllZones rates the package for every zone of the product in parallel.
// Each zone reports its own error; results are ordered by zone.
func (e *Engine) CalculateAllZones(req Request) []model.ZoneResult {
	zones := model.AllZones
	if req.Product != nil && len(req.Product.Zones) > 0 {
		zones = req.Product.Zones
	}

	results := make([]model.ZoneResult, len(zones))
	var wg sync.WaitGroup
	for i, zone := range zones {
		wg.Add(1)
		go func(i int, zone model.Zone) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results[i] = model.ZoneResult{Zone: zone, Err: fmt.Errorf("zone %d: panic: %v", zone, r)}
				}
			}()

			res, err := e.CalculateZone(req, zone)
			results[i] = model.ZoneResult{Zone: zone, Result: res, Err: err}
		}(i, zone)
	}
	wg.Wait()

	return results
}

func (e *Engine) validate(req Request) error {
	if req.Product == nil {
		return errors.New("product is required")
	}
	if err := req.Package.Validate(); err != nil {
		return err
	}
	if !req.Product.EffectiveOn(e.shipDate(req)) {
		return fmt.Errorf("%w: product %s", ErrProductNotEffective, req.Product.ID)
	}
	return nil
}

func (e *Engine) shipDate(req Request) time.Time {
	if req.ShipDate.IsZero() {
		return model.DateOf(e.clock())
	}
	return model.DateOf(req.ShipDate)
}

func (e *Engine) calculate(req Request, zone model.Zone, remote model.RemoteFlags) (*model.RateResult, error) {
	product := req.Product
	pkg := req.Package
	pkg.Unit = product.Unit

	divisor := e.defaultDivisor
	if product.DimDivisor.IsPositive() {
		divisor = product.DimDivisor
	}

	weights := ComputeWeights(pkg, divisor)
	dims := ComputeDimensions(pkg)
	ctx := EvalContext{
		Weights:     weights,
		Dimensions:  dims,
		Measures:    NormalizeMeasures(weights, dims),
		Zone:        zone,
		Remote:      remote,
		ShipDate:    e.shipDate(req),
		Residential: req.Residential,
		Services:    NewServiceSet(req.Services),
	}

	result := &model.RateResult{
		Zone:        zone,
		Remote:      remote,
		PackageInfo: model.PackageInfo{Weight: weights, Dimensions: dims},
	}

	if violations := Violations(weights, dims); len(violations) > 0 {
		charge, err := e.unauthorizedCharge(product, ctx, violations)
		if err != nil {
			return nil, err
		}
		result.Unauthorized = charge
		result.Total = charge.Fee
		return result, nil
	}

	base, err := LookupBaseRate(product.Rates, weights.Chargeable, zone)
	if err != nil {
		return nil, err
	}

	lines, err := evaluate(product.Categories, ctx, e.log)
	if err != nil {
		return nil, err
	}

	result.BaseRate = base
	result.Surcharges = lines
	basis := base.Add(result.SurchargeTotal())

	fuel, err := applyFuel(basis, req.Fuel, ctx.ShipDate, e.log)
	if err != nil {
		return nil, err
	}
	result.Fuel = fuel
	result.Total = basis.Add(fuel.Amount)

	return result, nil
}

// unauthorizedCharge prices an inadmissible package with the unauthorized item.
// Violated limits are walked in check order and the first eligible sub-item whose
// conditions test that limit's metric is charged under that limit's reason.
// Otherwise the first eligible sub-item not tied to any carrier limit, then the
// item's own fee, is charged under the first violated limit.
func (e *Engine) unauthorizedCharge(product *model.RateCard, ctx EvalContext, violations []Limit) (*model.UnauthorizedCharge, error) {
	cat, item, ok := product.UnauthorizedItem()
	if !ok {
		return nil, fmt.Errorf("%w: product %s", ErrUnauthorizedFeeNotConfigured, product.ID)
	}

	reason := violations[0].Reason
	var source *model.SurchargeItem
	for _, l := range violations {
		metric := l.Metric
		if source = findSubItem(item, ctx, func(el *model.Eligibility) bool { return testsMetric(el, metric) }); source != nil {
			reason = l.Reason
			break
		}
	}
	if source == nil {
		source = findSubItem(item, ctx, func(el *model.Eligibility) bool {
			for _, l := range CarrierLimits {
				if testsMetric(el, l.Metric) {
					return false
				}
			}
			return true
		})
	}

	var chain []pssSource
	switch {
	case source != nil:
		chain = pssChain(cat, item, source)
	case item.Fee != nil:
		source = item
		chain = pssChain(cat, nil, item)
	default:
		return nil, fmt.Errorf("%w: item %q has no fee", ErrUnauthorizedFeeNotConfigured, item.Name)
	}

	base, err := source.Fee.Amount(ctx.Zone)
	if err != nil {
		return nil, fmt.Errorf("unauthorized fee %q: %w", source.Name, err)
	}

	charge := &model.UnauthorizedCharge{
		Reason:  reason,
		BaseFee: base,
		PSSFee:  decimal.Zero,
		Fee:     base,
	}
	if pss, ok := resolvePSS(chain, ctx.ShipDate, e.log); ok {
		charge.PSSFee = pss
		charge.Fee = pss
	}
	return charge, nil
}

// findSubItem returns the first eligible sub-item with a fee whose eligibility
// satisfies match.
func findSubItem(item *model.SurchargeItem, ctx EvalContext, match func(*model.Eligibility) bool) *model.SurchargeItem {
	for i := range item.Items {
		sub := &item.Items[i]
		if sub.Fee != nil && match(sub.Eligibility) && ctx.eligible(sub.Eligibility, sub.Name) {
			return sub
		}
	}
	return nil
}

func testsMetric(el *model.Eligibility, metric model.Metric) bool {
	if el == nil {
		return false
	}
	for _, c := range el.Conditions {
		if c.Metric == metric {
			return true
		}
	}
	return false
}
