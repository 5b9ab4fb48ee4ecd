package rating

import (
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// Carrier hard limits. They apply to every product regardless of its unit.
var (
	MaxActualWeightLB = decimal.NewFromInt(150)
	MaxLongestSideIN  = decimal.NewFromInt(108)
	MaxLengthGirthIN  = decimal.NewFromInt(165)
)

// Unauthorized reasons, one per violated limit.
const (
	ReasonActualWeight = "actual weight exceeds 150 lb"
	ReasonLongestSide  = "longest side exceeds 108 in"
	ReasonLengthGirth  = "length plus girth exceeds 165 in"
)

// Limit is a carrier hard limit on one package metric.
type Limit struct {
	Metric model.Metric
	Max    decimal.Decimal
	Reason string
}

// CarrierLimits are checked in this order.
var CarrierLimits = []Limit{
	{Metric: model.MetricActualWeight, Max: MaxActualWeightLB, Reason: ReasonActualWeight},
	{Metric: model.MetricLongestSide, Max: MaxLongestSideIN, Reason: ReasonLongestSide},
	{Metric: model.MetricLengthGirth, Max: MaxLengthGirthIN, Reason: ReasonLengthGirth},
}

// Violations returns every limit the package exceeds, in check order.
func Violations(weights model.WeightInfo, dims model.Dimensions) []Limit {
	m := NormalizeMeasures(weights, dims)

	var out []Limit
	for _, l := range CarrierLimits {
		if v, ok := m.Value(l.Metric); ok && v.GreaterThan(l.Max) {
			out = append(out, l)
		}
	}
	return out
}

// CheckAdmissible evaluates the carrier hard limits.
// Limits are checked in order weight, longest side, length plus girth and the
// first violation is reported.
func CheckAdmissible(weights model.WeightInfo, dims model.Dimensions) (bool, string) {
	if v := Violations(weights, dims); len(v) > 0 {
		return false, v[0].Reason
	}
	return true, ""
}
