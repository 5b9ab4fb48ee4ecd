package model

import "github.com/shopspring/decimal"

// SurchargeLine is one charged surcharge. Amount is PSSFee when a PSS period applied, else BaseFee.
type SurchargeLine struct {
	Category string
	Name     string
	BaseFee  decimal.Decimal
	PSSFee   decimal.Decimal
	Amount   decimal.Decimal
	Reason   string
}

// FuelLine is the fuel surcharge applied to the basis. Rate is a percentage.
type FuelLine struct {
	Rate   decimal.Decimal
	Basis  decimal.Decimal
	Amount decimal.Decimal
}

// UnauthorizedCharge is the flat penalty billed for an inadmissible package.
type UnauthorizedCharge struct {
	Reason  string
	BaseFee decimal.Decimal
	PSSFee  decimal.Decimal
	Fee     decimal.Decimal
}

// RateResult is the itemized cost for one zone.
// When Unauthorized is set only PackageInfo is meaningful besides it.
type RateResult struct {
	Zone         Zone
	Remote       RemoteFlags
	PackageInfo  PackageInfo
	Unauthorized *UnauthorizedCharge
	BaseRate     decimal.Decimal
	Surcharges   []SurchargeLine
	Fuel         FuelLine
	Total        decimal.Decimal
}

// IsUnauthorized reports whether the package was rejected by carrier limits.
func (r *RateResult) IsUnauthorized() bool {
	return r.Unauthorized != nil
}

// SurchargeTotal sums the surcharge lines at full precision.
func (r *RateResult) SurchargeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Surcharges {
		total = total.Add(l.Amount)
	}
	return total
}

// ZoneResult is one branch of an all-zones calculation.
type ZoneResult struct {
	Zone   Zone
	Result *RateResult
	Err    error
}
