package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrRateTableMismatch is returned when a zone is missing from a rate table or fee map.
	ErrRateTableMismatch = errors.New("rate table mismatch")
	// ErrInvalidRateCard is returned when a rate card fails load-time validation.
	ErrInvalidRateCard = errors.New("invalid rate card")
)

// DefaultDimDivisor is the dimensional weight divisor used when a product does not set one.
var DefaultDimDivisor = decimal.NewFromInt(250)

// RateRow is one weight tier of a zone rate table: weights up to Breakpoint use Rates.
type RateRow struct {
	Breakpoint decimal.Decimal
	Rates      map[Zone]decimal.Decimal
}

// ZoneRateTable is ordered by strictly increasing breakpoint. The last row is the ceiling tier.
type ZoneRateTable []RateRow

// Validate checks breakpoint ordering.
func (t ZoneRateTable) Validate() error {
	for i := 1; i < len(t); i++ {
		if !t[i].Breakpoint.GreaterThan(t[i-1].Breakpoint) {
			return fmt.Errorf("%w: breakpoint %s does not increase after %s",
				ErrInvalidRateCard, t[i].Breakpoint, t[i-1].Breakpoint)
		}
	}
	return nil
}

// Zones returns the zone columns present in the table, ascending.
func (t ZoneRateTable) Zones() []Zone {
	seen := make(map[Zone]bool)
	for _, row := range t {
		for z := range row.Rates {
			seen[z] = true
		}
	}
	zones := make([]Zone, 0, len(seen))
	for z := range seen {
		zones = append(zones, z)
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i] < zones[j] })
	return zones
}

// RateCard is a rated product: a carrier service with its rate table and surcharges.
type RateCard struct {
	ID         string
	Name       string
	Carrier    string
	Currency   string
	Unit       Unit
	DimDivisor decimal.Decimal
	StartDate  *time.Time
	EndDate    *time.Time
	Active     bool
	Zones      []Zone
	Rates      ZoneRateTable
	Categories []SurchargeCategory
}

// EffectiveOn reports whether the card is active and its window [start, end) covers date.
func (r *RateCard) EffectiveOn(date time.Time) bool {
	if !r.Active {
		return false
	}
	d := DateOf(date)
	if r.StartDate != nil && d.Before(DateOf(*r.StartDate)) {
		return false
	}
	if r.EndDate != nil && !d.Before(DateOf(*r.EndDate)) {
		return false
	}
	return true
}

// UnauthorizedItem returns the dedicated unauthorized item and its category.
func (r *RateCard) UnauthorizedItem() (*SurchargeCategory, *SurchargeItem, bool) {
	for ci := range r.Categories {
		cat := &r.Categories[ci]
		for ii := range cat.Items {
			if cat.Items[ii].Kind == ItemKindUnauthorized {
				return cat, &cat.Items[ii], true
			}
		}
	}
	return nil, nil, false
}

// DateOf truncates t to its calendar date in UTC.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
