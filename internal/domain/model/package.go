// Package model provides domain models for the freight rate service.
package model

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidPackageDimensions is returned when a package has a non-positive weight or dimension.
var ErrInvalidPackageDimensions = errors.New("invalid package dimensions")

// Unit is the measurement system a rate card is priced in.
// LB products take inches, KG products take centimetres.
type Unit string

const (
	// UnitLB prices in pounds and inches.
	UnitLB Unit = "LB"
	// UnitKG prices in kilograms and centimetres.
	UnitKG Unit = "KG"
)

// ParseUnit normalizes a unit string. Anything that is not KG is treated as LB.
func ParseUnit(s string) Unit {
	if strings.EqualFold(strings.TrimSpace(s), string(UnitKG)) {
		return UnitKG
	}
	return UnitLB
}

// LengthUnit returns the display length unit that goes with the weight unit.
func (u Unit) LengthUnit() string {
	if u == UnitKG {
		return "cm"
	}
	return "in"
}

// Package is the immutable input of a calculation.
type Package struct {
	Weight decimal.Decimal
	Length decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
	Unit   Unit
}

// Validate rejects packages with non-positive weight or dimensions.
func (p Package) Validate() error {
	fields := []struct {
		name  string
		value decimal.Decimal
	}{
		{"weight", p.Weight},
		{"length", p.Length},
		{"width", p.Width},
		{"height", p.Height},
	}
	for _, f := range fields {
		if !f.value.IsPositive() {
			return &PackageError{Field: f.name}
		}
	}
	return nil
}

// PackageError names the offending field of an invalid package.
type PackageError struct {
	Field string
}

func (e *PackageError) Error() string {
	return ErrInvalidPackageDimensions.Error() + ": " + e.Field + " must be positive"
}

// Unwrap makes errors.Is(err, ErrInvalidPackageDimensions) hold.
func (e *PackageError) Unwrap() error {
	return ErrInvalidPackageDimensions
}

// WeightInfo holds the weights derived from a package, in the product unit.
type WeightInfo struct {
	Actual     decimal.Decimal
	Volumetric decimal.Decimal
	Chargeable decimal.Decimal
	Unit       Unit
}

// Dimensions holds the package dimensions plus girth values, in the product length unit.
type Dimensions struct {
	Length           decimal.Decimal
	Width            decimal.Decimal
	Height           decimal.Decimal
	Girth            decimal.Decimal
	TotalLengthGirth decimal.Decimal
	Unit             Unit
}

// PackageInfo bundles the weights and dimensions reported with every result.
type PackageInfo struct {
	Weight     WeightInfo
	Dimensions Dimensions
}
