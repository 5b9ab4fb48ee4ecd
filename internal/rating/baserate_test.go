package rating

import (
	"testing"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupBaseRate(t *testing.T) {
	table := testProduct().Rates

	tests := []struct {
		name   string
		weight string
		zone   model.Zone
		want   string
	}{
		{name: "lightest tier", weight: "1", zone: 2, want: "8.00"},
		{name: "exact breakpoint", weight: "5", zone: 2, want: "10.00"},
		{name: "between breakpoints rounds to next tier", weight: "6", zone: 2, want: "12.00"},
		{name: "zone column", weight: "10", zone: 4, want: "13.00"},
		{name: "top breakpoint", weight: "150", zone: 8, want: "63.00"},
		{name: "above top breakpoint uses top tier", weight: "400", zone: 8, want: "63.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := LookupBaseRate(table, dec(tt.weight), tt.zone)
			require.NoError(t, err)
			assertDecimal(t, tt.want, rate)
		})
	}
}

func TestLookupBaseRate_Monotonic(t *testing.T) {
	table := testProduct().Rates

	for _, zone := range model.AllZones {
		prev := decimal.Zero
		for w := int64(1); w <= 160; w++ {
			rate, err := LookupBaseRate(table, decimal.NewFromInt(w), zone)
			require.NoError(t, err)
			assert.True(t, rate.GreaterThanOrEqual(prev), "zone %d weight %d", zone, w)
			prev = rate
		}
	}
}

func TestLookupBaseRate_Errors(t *testing.T) {
	t.Run("empty table", func(t *testing.T) {
		_, err := LookupBaseRate(nil, dec("1"), 2)
		assert.ErrorIs(t, err, ErrRateTableMismatch)
	})

	t.Run("missing zone column", func(t *testing.T) {
		table := model.ZoneRateTable{{Breakpoint: dec("1"), Rates: map[model.Zone]decimal.Decimal{2: dec("8")}}}
		_, err := LookupBaseRate(table, dec("1"), 5)
		assert.ErrorIs(t, err, ErrRateTableMismatch)
		assert.True(t, IsConfigurationError(err))
	})
}
