package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelRateEntry is one fuel surcharge percentage with its validity.
type FuelRateEntry struct {
	Rate          decimal.Decimal
	EffectiveDate time.Time
	ExpiryDate    *time.Time
	Active        bool
}

// Covers reports whether the entry is active and effective <= date < expiry.
func (e FuelRateEntry) Covers(date time.Time) bool {
	if !e.Active {
		return false
	}
	d := DateOf(date)
	if d.Before(DateOf(e.EffectiveDate)) {
		return false
	}
	return e.ExpiryDate == nil || d.Before(DateOf(*e.ExpiryDate))
}

// FuelSchedule is the list of fuel rate entries supplied by the provider.
type FuelSchedule []FuelRateEntry
