package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FlatFeeKey is the provider fee-map key that marks a single flat fee.
const FlatFeeKey = "2"

// Fee is the base fee of a surcharge item: either FlatFee or ZonedFee.
type Fee interface {
	// Amount returns the fee for the zone.
	Amount(zone Zone) (decimal.Decimal, error)
}

// FlatFee charges the same amount in every zone.
type FlatFee struct {
	Value decimal.Decimal
}

// Amount implements Fee.
func (f FlatFee) Amount(Zone) (decimal.Decimal, error) {
	return f.Value, nil
}

// ZonedFee charges per zone.
type ZonedFee struct {
	Values map[Zone]decimal.Decimal
}

// Amount implements Fee. A missing zone is a configuration error.
func (f ZonedFee) Amount(zone Zone) (decimal.Decimal, error) {
	v, ok := f.Values[zone]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: fee has no zone %d", ErrRateTableMismatch, zone)
	}
	return v, nil
}

// PSSPeriod is a peak season override. StartDate and EndDate are inclusive calendar dates.
type PSSPeriod struct {
	StartDate time.Time
	EndDate   time.Time
	Amount    decimal.Decimal
}

// Covers reports whether the period includes the calendar date of t.
func (p PSSPeriod) Covers(t time.Time) bool {
	d := DateOf(t)
	return !d.Before(DateOf(p.StartDate)) && !d.After(DateOf(p.EndDate))
}

// Metric is a package measure that eligibility conditions compare against.
// All metrics are in pounds or inches.
type Metric string

const (
	MetricActualWeight      Metric = "actual_weight"
	MetricChargeableWeight  Metric = "chargeable_weight"
	MetricLongestSide       Metric = "longest_side"
	MetricSecondLongestSide Metric = "second_longest_side"
	MetricLengthGirth       Metric = "length_girth"
)

// Condition bounds one metric. A nil bound is open.
type Condition struct {
	Metric       Metric
	Min          *decimal.Decimal
	Max          *decimal.Decimal
	MinInclusive bool
	MaxInclusive bool
}

// Holds reports whether v satisfies the bounds.
func (c Condition) Holds(v decimal.Decimal) bool {
	if c.Min != nil {
		if c.MinInclusive && v.LessThan(*c.Min) {
			return false
		}
		if !c.MinInclusive && !v.GreaterThan(*c.Min) {
			return false
		}
	}
	if c.Max != nil {
		if c.MaxInclusive && v.GreaterThan(*c.Max) {
			return false
		}
		if !c.MaxInclusive && !v.LessThan(*c.Max) {
			return false
		}
	}
	return true
}

// String renders the condition as e.g. "50 < actual_weight < 150".
func (c Condition) String() string {
	s := string(c.Metric)
	if c.Min != nil {
		op := " < "
		if c.MinInclusive {
			op = " <= "
		}
		s = c.Min.String() + op + s
	}
	if c.Max != nil {
		op := " < "
		if c.MaxInclusive {
			op = " <= "
		}
		s = s + op + c.Max.String()
	}
	return s
}

// Eligibility is a predicate over the evaluation context. Every part must hold.
type Eligibility struct {
	Conditions []Condition
	// Residential, when set, requires the destination to match.
	Residential *bool
	// RemoteTypes, when non-empty, requires the destination remote type to be listed.
	RemoteTypes []RemoteType
	// OnRequest items are only charged when the request names them.
	OnRequest bool
}

// ItemKind distinguishes the dedicated unauthorized item from ordinary surcharges.
type ItemKind string

const (
	ItemKindStandard     ItemKind = "standard"
	ItemKindUnauthorized ItemKind = "unauthorized"
)

// SurchargeItem is one chargeable line. Items nest at most one level.
type SurchargeItem struct {
	Name        string
	Description string
	Kind        ItemKind
	// Fee is nil for pure display groups.
	Fee         Fee
	PSS         []PSSPeriod
	Eligibility *Eligibility
	Items       []SurchargeItem
}

// SurchargeCategory groups items under a title.
type SurchargeCategory struct {
	Title         string
	NotApplicable bool
	SingleFee     bool
	// ExclusiveGroup, when set, keeps only the most expensive category of the group.
	ExclusiveGroup string
	Eligibility    *Eligibility
	PSS            []PSSPeriod
	Items          []SurchargeItem
}
