package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() CalculateRateRequest {
	return CalculateRateRequest{
		ProductID:      "ground-lb",
		FromPostalCode: "91761",
		ToPostalCode:   "30301",
		Weight:         decimal.NewFromInt(10),
		Length:         decimal.NewFromInt(12),
		Width:          decimal.NewFromInt(10),
		Height:         decimal.NewFromInt(8),
	}
}

func TestCalculateRateRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CalculateRateRequest)
		wantField string
	}{
		{
			name:   "valid request",
			mutate: func(*CalculateRateRequest) {},
		},
		{
			name:   "without destination",
			mutate: func(r *CalculateRateRequest) { r.ToPostalCode = "" },
		},
		{
			name:   "with ship date",
			mutate: func(r *CalculateRateRequest) { r.ShipDate = "2025-10-15" },
		},
		{
			name:      "blank product",
			mutate:    func(r *CalculateRateRequest) { r.ProductID = "  " },
			wantField: "product_id",
		},
		{
			name:      "missing origin",
			mutate:    func(r *CalculateRateRequest) { r.FromPostalCode = "" },
			wantField: "from_postal_code",
		},
		{
			name:      "zero weight",
			mutate:    func(r *CalculateRateRequest) { r.Weight = decimal.Zero },
			wantField: "weight",
		},
		{
			name:      "negative width",
			mutate:    func(r *CalculateRateRequest) { r.Width = decimal.NewFromInt(-1) },
			wantField: "width",
		},
		{
			name:      "bad ship date",
			mutate:    func(r *CalculateRateRequest) { r.ShipDate = "15/10/2025" },
			wantField: "ship_date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.wantField, ve.Field)
		})
	}
}

func TestCalculateRateRequest_DecodesNumbers(t *testing.T) {
	body := `{"product_id":"ground-lb","from_postal_code":"91761","weight":10.5,"length":"12","width":10,"height":8,"residential":false,"services":["Signature Required"]}`

	var req CalculateRateRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.True(t, decimal.RequireFromString("10.5").Equal(req.Weight))
	assert.True(t, decimal.NewFromInt(12).Equal(req.Length))
	assert.False(t, req.ResidentialOr(true))
	assert.Equal(t, []string{"Signature Required"}, req.Services)
	assert.NoError(t, req.Validate())
}

func TestCalculateRateRequest_ParseShipDate(t *testing.T) {
	req := validRequest()

	date, err := req.ParseShipDate()
	require.NoError(t, err)
	assert.True(t, date.IsZero())

	req.ShipDate = " 2025-10-15 "
	date, err = req.ParseShipDate()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC), date)
}

func TestCalculateRateRequest_ResidentialOr(t *testing.T) {
	req := validRequest()
	assert.True(t, req.ResidentialOr(true))
	assert.False(t, req.ResidentialOr(false))

	no := false
	req.Residential = &no
	assert.False(t, req.ResidentialOr(true))
}

func TestPurgeCacheRequest_All(t *testing.T) {
	assert.True(t, PurgeCacheRequest{}.All())
	assert.False(t, PurgeCacheRequest{Quotes: true}.All())
	assert.False(t, PurgeCacheRequest{Catalog: true}.All())
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "weight", Message: "must be a positive number"}
	assert.Equal(t, "weight: must be a positive number", err.Error())
}
