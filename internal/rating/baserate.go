package rating

import (
	"fmt"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// TopTierPolicy describes how weights above the highest breakpoint are priced:
// the last row is an open-ended ceiling tier and prices every heavier package.
const TopTierPolicy = "open-ended top tier"

// LookupBaseRate selects the first row whose breakpoint is >= the chargeable weight
// and returns its rate for the zone. Weights above the top breakpoint use the last row.
func LookupBaseRate(table model.ZoneRateTable, chargeableWeight decimal.Decimal, zone model.Zone) (decimal.Decimal, error) {
	if len(table) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty rate table", ErrRateTableMismatch)
	}

	row := table[len(table)-1]
	for _, r := range table {
		if r.Breakpoint.GreaterThanOrEqual(chargeableWeight) {
			row = r
			break
		}
	}

	rate, ok := row.Rates[zone]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no zone %d column at breakpoint %s",
			ErrRateTableMismatch, zone, row.Breakpoint)
	}
	return rate, nil
}
