package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound is returned when a provider document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidDocument is returned when a provider document cannot be converted.
	ErrInvalidDocument = errors.New("invalid provider document")
)

// StatusActive marks a product that can be rated.
const StatusActive = "active"

const weightKey = "weight"

// ProductDocument is a rated product as stored by the provider.
//
// zone_rates rows carry a "weight" breakpoint plus one column per zone, keyed
// "2".."8" or "Zone2".."Zone8". Fee maps use the same zone keys; a map holding
// only "2" is a flat fee.
type ProductDocument struct {
	ID                 primitive.ObjectID          `bson:"_id,omitempty" json:"-"`
	ProductID          string                      `bson:"product_id" json:"product_id"`
	Name               string                      `bson:"name" json:"name"`
	Carrier            string                      `bson:"carrier" json:"carrier"`
	Currency           string                      `bson:"currency,omitempty" json:"currency,omitempty"`
	Unit               string                      `bson:"unit" json:"unit"`
	Dim                float64                     `bson:"dim,omitempty" json:"dim,omitempty"`
	VolumeWeightFactor float64                     `bson:"volume_weight_factor,omitempty" json:"volume_weight_factor,omitempty"`
	StartDate          string                      `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate            string                      `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Status             string                      `bson:"status" json:"status"`
	ZoneRates          []map[string]float64        `bson:"zone_rates" json:"zone_rates"`
	Surcharges         []SurchargeCategoryDocument `bson:"surcharges,omitempty" json:"surcharges,omitempty"`
	UpdatedAt          time.Time                   `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// SurchargeCategoryDocument is one surcharge category of a product.
type SurchargeCategoryDocument struct {
	Title         string `bson:"title" json:"title"`
	NotApplicable bool   `bson:"not_applicable,omitempty" json:"not_applicable,omitempty"`
	// SingleFee is inferred from the title when unset.
	SingleFee      *bool                   `bson:"single_fee,omitempty" json:"single_fee,omitempty"`
	ExclusiveGroup string                  `bson:"exclusive_group,omitempty" json:"exclusive_group,omitempty"`
	Eligibility    *EligibilityDocument    `bson:"eligibility,omitempty" json:"eligibility,omitempty"`
	PSSPeriods     []PSSPeriodDocument     `bson:"pss_periods,omitempty" json:"pss_periods,omitempty"`
	Items          []SurchargeItemDocument `bson:"items" json:"items"`
}

// SurchargeItemDocument is a surcharge item. Items nest one level.
type SurchargeItemDocument struct {
	Name        string                  `bson:"name" json:"name"`
	Description string                  `bson:"description,omitempty" json:"description,omitempty"`
	Kind        string                  `bson:"kind,omitempty" json:"kind,omitempty"`
	Fees        map[string]float64      `bson:"fees,omitempty" json:"fees,omitempty"`
	PSSPeriods  []PSSPeriodDocument     `bson:"pss_periods,omitempty" json:"pss_periods,omitempty"`
	Eligibility *EligibilityDocument    `bson:"eligibility,omitempty" json:"eligibility,omitempty"`
	Items       []SurchargeItemDocument `bson:"items,omitempty" json:"items,omitempty"`
}

// PSSPeriodDocument is a peak season override with inclusive dates.
type PSSPeriodDocument struct {
	StartDate string  `bson:"start_date" json:"start_date"`
	EndDate   string  `bson:"end_date" json:"end_date"`
	Amount    float64 `bson:"amount" json:"amount"`
}

// EligibilityDocument is the stored form of model.Eligibility.
type EligibilityDocument struct {
	Conditions  []ConditionDocument `bson:"conditions,omitempty" json:"conditions,omitempty"`
	Residential *bool               `bson:"residential,omitempty" json:"residential,omitempty"`
	RemoteTypes []string            `bson:"remote_types,omitempty" json:"remote_types,omitempty"`
	OnRequest   bool                `bson:"on_request,omitempty" json:"on_request,omitempty"`
}

// ConditionDocument bounds one package metric.
type ConditionDocument struct {
	Metric       string   `bson:"metric" json:"metric"`
	Min          *float64 `bson:"min,omitempty" json:"min,omitempty"`
	Max          *float64 `bson:"max,omitempty" json:"max,omitempty"`
	MinInclusive bool     `bson:"min_inclusive,omitempty" json:"min_inclusive,omitempty"`
	MaxInclusive bool     `bson:"max_inclusive,omitempty" json:"max_inclusive,omitempty"`
}

// PostalZoneDocument maps a receiver postal code range to a zone for one origin.
// Zone may be stored as a number or a string such as "Zone5".
type PostalZoneDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Origin    string             `bson:"origin" json:"origin"`
	StartCode string             `bson:"start_code" json:"start_code"`
	EndCode   string             `bson:"end_code,omitempty" json:"end_code,omitempty"`
	Zone      interface{}        `bson:"zone" json:"zone"`
}

// RemoteAreaDocument flags a postal code range as a remote delivery area.
// Commercial and Residential default to true.
type RemoteAreaDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	StartCode   string             `bson:"start_code" json:"start_code"`
	EndCode     string             `bson:"end_code,omitempty" json:"end_code,omitempty"`
	Type        string             `bson:"type" json:"type"`
	Commercial  *bool              `bson:"commercial,omitempty" json:"commercial,omitempty"`
	Residential *bool              `bson:"residential,omitempty" json:"residential,omitempty"`
}

// FuelRateDocument is one fuel surcharge percentage.
type FuelRateDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Rate          float64            `bson:"rate" json:"rate"`
	EffectiveDate string             `bson:"effective_date" json:"effective_date"`
	ExpiryDate    string             `bson:"expiry_date,omitempty" json:"expiry_date,omitempty"`
	IsActive      bool               `bson:"is_active" json:"is_active"`
}

// RateCard converts the document into a validated model.RateCard.
func (d *ProductDocument) RateCard() (*model.RateCard, error) {
	if strings.TrimSpace(d.ProductID) == "" {
		return nil, invalidf("product without product_id")
	}

	card := &model.RateCard{
		ID:       d.ProductID,
		Name:     d.Name,
		Carrier:  d.Carrier,
		Currency: d.Currency,
		Unit:     model.ParseUnit(d.Unit),
		Active:   d.Status == "" || strings.EqualFold(d.Status, StatusActive),
	}
	if card.Currency == "" {
		card.Currency = "USD"
	}
	switch {
	case d.Dim > 0:
		card.DimDivisor = decimal.NewFromFloat(d.Dim)
	case d.VolumeWeightFactor > 0:
		card.DimDivisor = decimal.NewFromFloat(d.VolumeWeightFactor)
	}

	var err error
	if card.StartDate, err = parseOptionalDate(d.StartDate); err != nil {
		return nil, productErr(d.ProductID, "start_date", err)
	}
	if card.EndDate, err = parseOptionalDate(d.EndDate); err != nil {
		return nil, productErr(d.ProductID, "end_date", err)
	}

	if card.Rates, err = convertRates(d.ZoneRates); err != nil {
		return nil, productErr(d.ProductID, "zone_rates", err)
	}
	card.Zones = card.Rates.Zones()
	if len(card.Zones) == 0 {
		card.Zones = append([]model.Zone(nil), model.AllZones...)
	}

	card.Categories = make([]model.SurchargeCategory, 0, len(d.Surcharges))
	for i := range d.Surcharges {
		cat, err := d.Surcharges[i].category()
		if err != nil {
			return nil, productErr(d.ProductID, "surcharges", err)
		}
		card.Categories = append(card.Categories, cat)
	}

	return card, nil
}

func productErr(id, field string, err error) error {
	return fmt.Errorf("product %s: %s: %w", id, field, err)
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidDocument, fmt.Sprintf(format, args...))
}

func convertRates(rows []map[string]float64) (model.ZoneRateTable, error) {
	table := make(model.ZoneRateTable, 0, len(rows))
	for i, row := range rows {
		w, ok := row[weightKey]
		if !ok {
			return nil, invalidf("row %d has no weight", i+1)
		}
		rates := make(map[model.Zone]decimal.Decimal, len(row)-1)
		for key, value := range row {
			if key == weightKey {
				continue
			}
			z, ok, err := zoneKey(key)
			if err != nil {
				return nil, invalidf("row %d: %v", i+1, err)
			}
			if ok {
				rates[z] = decimal.NewFromFloat(value)
			}
		}
		table = append(table, model.RateRow{Breakpoint: decimal.NewFromFloat(w), Rates: rates})
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// zoneKey parses a zone column key. Keys that do not name a zone are skipped.
func zoneKey(key string) (model.Zone, bool, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	if k == "" {
		return 0, false, nil
	}
	if !strings.HasPrefix(k, "zone") && (k[0] < '0' || k[0] > '9') {
		return 0, false, nil
	}
	z, err := model.ParseZone(k)
	if err != nil {
		return 0, false, err
	}
	return z, true, nil
}

var singleFeeKeywords = []string{"residential", "delivery area", "das", "remote", "value added", "value-added"}

// inferSingleFee reports whether a category title names a flat-fee category.
// Oversize and handling categories are zoned even when they mention residential.
func inferSingleFee(title string) bool {
	t := strings.ToLower(title)
	if strings.Contains(t, "oversize") || strings.Contains(t, "handling") {
		return false
	}
	for _, kw := range singleFeeKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func (c *SurchargeCategoryDocument) category() (model.SurchargeCategory, error) {
	single := inferSingleFee(c.Title)
	if c.SingleFee != nil {
		single = *c.SingleFee
	}

	cat := model.SurchargeCategory{
		Title:          c.Title,
		NotApplicable:  c.NotApplicable,
		SingleFee:      single,
		ExclusiveGroup: c.ExclusiveGroup,
	}

	var err error
	if cat.Eligibility, err = c.Eligibility.eligibility(); err != nil {
		return cat, fmt.Errorf("category %q: %w", c.Title, err)
	}
	if cat.PSS, err = convertPSS(c.PSSPeriods); err != nil {
		return cat, fmt.Errorf("category %q: %w", c.Title, err)
	}

	cat.Items = make([]model.SurchargeItem, 0, len(c.Items))
	for i := range c.Items {
		item, err := c.Items[i].item(single, true)
		if err != nil {
			return cat, fmt.Errorf("category %q: %w", c.Title, err)
		}
		cat.Items = append(cat.Items, item)
	}
	return cat, nil
}

func (s *SurchargeItemDocument) item(single, allowChildren bool) (model.SurchargeItem, error) {
	item := model.SurchargeItem{
		Name:        s.Name,
		Description: s.Description,
		Kind:        model.ItemKindStandard,
	}
	if strings.EqualFold(s.Kind, string(model.ItemKindUnauthorized)) ||
		strings.Contains(strings.ToLower(s.Name), "unauthorized") {
		item.Kind = model.ItemKindUnauthorized
	}

	var err error
	if item.Fee, err = convertFee(s.Fees, single || item.Kind == model.ItemKindUnauthorized); err != nil {
		return item, fmt.Errorf("item %q: %w", s.Name, err)
	}
	if item.PSS, err = convertPSS(s.PSSPeriods); err != nil {
		return item, fmt.Errorf("item %q: %w", s.Name, err)
	}
	if item.Eligibility, err = s.Eligibility.eligibility(); err != nil {
		return item, fmt.Errorf("item %q: %w", s.Name, err)
	}

	if len(s.Items) > 0 && !allowChildren {
		return item, invalidf("item %q: sub-items nest only one level", s.Name)
	}
	for i := range s.Items {
		child, err := s.Items[i].item(single || item.Kind == model.ItemKindUnauthorized, false)
		if err != nil {
			return item, fmt.Errorf("item %q: %w", s.Name, err)
		}
		item.Items = append(item.Items, child)
	}
	return item, nil
}

// convertFee resolves a fee map once: a single "2" key or a single-fee category
// gives a FlatFee, anything else a ZonedFee. An empty map is no fee.
func convertFee(fees map[string]float64, single bool) (model.Fee, error) {
	if len(fees) == 0 {
		return nil, nil
	}
	if flat, ok := fees[model.FlatFeeKey]; ok && (single || len(fees) == 1) {
		return model.FlatFee{Value: decimal.NewFromFloat(flat)}, nil
	}
	if single {
		return nil, invalidf("flat fee requires key %q", model.FlatFeeKey)
	}

	values := make(map[model.Zone]decimal.Decimal, len(fees))
	for key, v := range fees {
		z, ok, err := zoneKey(key)
		if err != nil {
			return nil, invalidf("%v", err)
		}
		if !ok {
			return nil, invalidf("fee key %q is not a zone", key)
		}
		values[z] = decimal.NewFromFloat(v)
	}
	return model.ZonedFee{Values: values}, nil
}

func convertPSS(docs []PSSPeriodDocument) ([]model.PSSPeriod, error) {
	if len(docs) == 0 {
		return nil, nil
	}
	out := make([]model.PSSPeriod, 0, len(docs))
	for _, p := range docs {
		start, err := parseDate(p.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDate(p.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, invalidf("pss period ends %s before it starts %s", p.EndDate, p.StartDate)
		}
		out = append(out, model.PSSPeriod{StartDate: start, EndDate: end, Amount: decimal.NewFromFloat(p.Amount)})
	}
	return out, nil
}

var knownMetrics = map[model.Metric]bool{
	model.MetricActualWeight:      true,
	model.MetricChargeableWeight:  true,
	model.MetricLongestSide:       true,
	model.MetricSecondLongestSide: true,
	model.MetricLengthGirth:       true,
}

func (e *EligibilityDocument) eligibility() (*model.Eligibility, error) {
	if e == nil {
		return nil, nil
	}
	out := &model.Eligibility{
		Residential: e.Residential,
		OnRequest:   e.OnRequest,
	}
	for _, c := range e.Conditions {
		metric := model.Metric(strings.ToLower(strings.TrimSpace(c.Metric)))
		if !knownMetrics[metric] {
			return nil, invalidf("unknown metric %q", c.Metric)
		}
		cond := model.Condition{
			Metric:       metric,
			MinInclusive: c.MinInclusive,
			MaxInclusive: c.MaxInclusive,
		}
		if c.Min != nil {
			v := decimal.NewFromFloat(*c.Min)
			cond.Min = &v
		}
		if c.Max != nil {
			v := decimal.NewFromFloat(*c.Max)
			cond.Max = &v
		}
		out.Conditions = append(out.Conditions, cond)
	}
	for _, t := range e.RemoteTypes {
		rt := model.ParseRemoteType(t)
		if rt == model.RemoteNone {
			return nil, invalidf("unknown remote type %q", t)
		}
		out.RemoteTypes = append(out.RemoteTypes, rt)
	}
	return out, nil
}

var dateLayouts = []string{time.DateOnly, "2006/01/02", time.RFC3339}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t), nil
		}
	}
	return time.Time{}, invalidf("invalid date %q", s)
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NewPostalZoneTable builds the sorted zone table of one origin.
func NewPostalZoneTable(origin string, docs []PostalZoneDocument) (*model.PostalZoneTable, error) {
	table := &model.PostalZoneTable{
		Origin: rating.NormalizePostalCode(origin),
		Ranges: make([]model.ZoneRange, 0, len(docs)),
	}
	for _, d := range docs {
		raw, err := cast.ToStringE(d.Zone)
		if err != nil {
			return nil, invalidf("postal zone %s: zone %v", d.StartCode, d.Zone)
		}
		z, err := model.ParseZone(raw)
		if err != nil {
			return nil, invalidf("postal zone %s: %v", d.StartCode, err)
		}
		start, end := codeRange(d.StartCode, d.EndCode)
		if start == "" {
			return nil, invalidf("postal zone without start_code")
		}
		table.Ranges = append(table.Ranges, model.ZoneRange{StartCode: start, EndCode: end, Zone: z})
	}
	sort.Slice(table.Ranges, func(i, j int) bool {
		return table.Ranges[i].StartCode < table.Ranges[j].StartCode
	})
	return table, nil
}

// NewRemoteAreaTable builds the sorted remote area table.
func NewRemoteAreaTable(docs []RemoteAreaDocument) (*model.RemoteAreaTable, error) {
	table := &model.RemoteAreaTable{Ranges: make([]model.RemoteRange, 0, len(docs))}
	for _, d := range docs {
		rt := model.ParseRemoteType(d.Type)
		if rt == model.RemoteNone {
			return nil, invalidf("remote area %s: unknown type %q", d.StartCode, d.Type)
		}
		start, end := codeRange(d.StartCode, d.EndCode)
		if start == "" {
			return nil, invalidf("remote area without start_code")
		}
		table.Ranges = append(table.Ranges, model.RemoteRange{
			StartCode:   start,
			EndCode:     end,
			Type:        rt,
			Commercial:  boolOr(d.Commercial, true),
			Residential: boolOr(d.Residential, true),
		})
	}
	sort.Slice(table.Ranges, func(i, j int) bool {
		return table.Ranges[i].StartCode < table.Ranges[j].StartCode
	})
	return table, nil
}

// NewFuelSchedule converts fuel rate documents, keeping their order.
func NewFuelSchedule(docs []FuelRateDocument) (model.FuelSchedule, error) {
	schedule := make(model.FuelSchedule, 0, len(docs))
	for _, d := range docs {
		effective, err := parseDate(d.EffectiveDate)
		if err != nil {
			return nil, fmt.Errorf("fuel rate: effective_date: %w", err)
		}
		expiry, err := parseOptionalDate(d.ExpiryDate)
		if err != nil {
			return nil, fmt.Errorf("fuel rate: expiry_date: %w", err)
		}
		schedule = append(schedule, model.FuelRateEntry{
			Rate:          decimal.NewFromFloat(d.Rate),
			EffectiveDate: effective,
			ExpiryDate:    expiry,
			Active:        d.IsActive,
		})
	}
	return schedule, nil
}

// codeRange normalizes a range; a missing end code makes a single-code range.
func codeRange(start, end string) (string, string) {
	s := rating.NormalizePostalCode(start)
	e := rating.NormalizePostalCode(end)
	if e == "" {
		e = s
	}
	return s, e
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
