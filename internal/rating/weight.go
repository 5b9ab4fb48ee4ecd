package rating

import (
	"sort"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

var (
	lbPerKg = decimal.RequireFromString("2.20462")
	cmPerIn = decimal.RequireFromString("2.54")
	two     = decimal.NewFromInt(2)
)

// ComputeWeights derives volumetric and chargeable weight in the package unit.
// volumetric = ceil(L*W*H / divisor); chargeable = ceil(max(actual, volumetric)).
func ComputeWeights(pkg model.Package, divisor decimal.Decimal) model.WeightInfo {
	if !divisor.IsPositive() {
		divisor = model.DefaultDimDivisor
	}
	volume := pkg.Length.Mul(pkg.Width).Mul(pkg.Height)
	volumetric := volume.Div(divisor).Ceil()

	return model.WeightInfo{
		Actual:     pkg.Weight,
		Volumetric: volumetric,
		Chargeable: decimal.Max(pkg.Weight, volumetric).Ceil(),
		Unit:       pkg.Unit,
	}
}

// ComputeDimensions derives girth = 2*(W+H) and length plus girth.
func ComputeDimensions(pkg model.Package) model.Dimensions {
	girth := two.Mul(pkg.Width.Add(pkg.Height))
	return model.Dimensions{
		Length:           pkg.Length,
		Width:            pkg.Width,
		Height:           pkg.Height,
		Girth:            girth,
		TotalLengthGirth: pkg.Length.Add(girth),
		Unit:             pkg.Unit,
	}
}

// Measures are the package metrics in pounds and inches, as used by carrier rules.
type Measures struct {
	ActualWeight      decimal.Decimal
	ChargeableWeight  decimal.Decimal
	LongestSide       decimal.Decimal
	SecondLongestSide decimal.Decimal
	LengthGirth       decimal.Decimal
}

// Value returns the measure named by m.
func (m Measures) Value(metric model.Metric) (decimal.Decimal, bool) {
	switch metric {
	case model.MetricActualWeight:
		return m.ActualWeight, true
	case model.MetricChargeableWeight:
		return m.ChargeableWeight, true
	case model.MetricLongestSide:
		return m.LongestSide, true
	case model.MetricSecondLongestSide:
		return m.SecondLongestSide, true
	case model.MetricLengthGirth:
		return m.LengthGirth, true
	default:
		return decimal.Zero, false
	}
}

// ToPounds converts a weight in unit to pounds.
func ToPounds(v decimal.Decimal, unit model.Unit) decimal.Decimal {
	if unit == model.UnitKG {
		return v.Mul(lbPerKg)
	}
	return v
}

// ToInches converts a length in the unit's length system to inches.
func ToInches(v decimal.Decimal, unit model.Unit) decimal.Decimal {
	if unit == model.UnitKG {
		return v.Div(cmPerIn)
	}
	return v
}

// NormalizeMeasures converts weights and dimensions to the imperial metrics.
// Conversion is exact; carrier limits compare against unrounded values.
func NormalizeMeasures(w model.WeightInfo, dims model.Dimensions) Measures {
	sides := []decimal.Decimal{
		ToInches(dims.Length, dims.Unit),
		ToInches(dims.Width, dims.Unit),
		ToInches(dims.Height, dims.Unit),
	}
	sort.Slice(sides, func(i, j int) bool { return sides[i].GreaterThan(sides[j]) })

	return Measures{
		ActualWeight:      ToPounds(w.Actual, w.Unit),
		ChargeableWeight:  ToPounds(w.Chargeable, w.Unit),
		LongestSide:       sides[0],
		SecondLongestSide: sides[1],
		LengthGirth:       ToInches(dims.TotalLengthGirth, dims.Unit),
	}
}
