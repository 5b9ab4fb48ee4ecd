package rating

import (
	"fmt"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ApplyFuel selects the fuel rate effective on shipDate and applies it to basis.
// Amount is basis * rate / 100 rounded to cents.
func ApplyFuel(basis decimal.Decimal, schedule model.FuelSchedule, shipDate time.Time) (model.FuelLine, error) {
	return applyFuel(basis, schedule, shipDate, zerolog.Nop())
}

func applyFuel(basis decimal.Decimal, schedule model.FuelSchedule, shipDate time.Time, log zerolog.Logger) (model.FuelLine, error) {
	entry, err := selectFuelRate(schedule, shipDate, log)
	if err != nil {
		return model.FuelLine{}, err
	}
	return model.FuelLine{
		Rate:   entry.Rate,
		Basis:  basis,
		Amount: basis.Mul(entry.Rate).Div(hundred).Round(2),
	}, nil
}

// selectFuelRate picks, among the active entries covering shipDate, the one with
// the latest effective date. Equal effective dates keep the first declared entry.
func selectFuelRate(schedule model.FuelSchedule, shipDate time.Time, log zerolog.Logger) (model.FuelRateEntry, error) {
	best := -1
	candidates := 0
	for i, e := range schedule {
		if !e.Covers(shipDate) {
			continue
		}
		candidates++
		if best < 0 || e.EffectiveDate.After(schedule[best].EffectiveDate) {
			best = i
		}
	}

	if best < 0 {
		return model.FuelRateEntry{}, fmt.Errorf("%w: ship date %s",
			ErrNoFuelRateEffective, shipDate.Format(time.DateOnly))
	}
	if candidates > 1 {
		log.Warn().
			Int("candidates", candidates).
			Time("ship_date", shipDate).
			Time("selected_effective_date", schedule[best].EffectiveDate).
			Msg("Overlapping fuel rate entries, using the latest effective")
	}
	return schedule[best], nil
}
