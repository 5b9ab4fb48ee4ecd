// Package rating implements the freight rate calculation engine.
//
// The engine is a pure computation over a rate card, postal tables and a fuel
// schedule supplied by the caller. It performs no I/O and holds no mutable state.
package rating

import (
	"errors"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

var (
	// ErrZoneNotFound is returned when a postal code is outside every known range.
	ErrZoneNotFound = errors.New("zone not found")
	// ErrRateTableMismatch is returned when a zone is absent from a rate table or fee map.
	ErrRateTableMismatch = model.ErrRateTableMismatch
	// ErrNoFuelRateEffective is returned when no fuel schedule entry covers the ship date.
	ErrNoFuelRateEffective = errors.New("no fuel rate effective")
	// ErrInvalidPackageDimensions is returned for non-positive weight or dimensions.
	ErrInvalidPackageDimensions = model.ErrInvalidPackageDimensions
	// ErrUnauthorizedFeeNotConfigured is returned when an inadmissible package meets
	// a product without an unauthorized item.
	ErrUnauthorizedFeeNotConfigured = errors.New("unauthorized fee not configured")
	// ErrProductNotEffective is returned when the product is inactive or outside its
	// validity window on the ship date.
	ErrProductNotEffective = errors.New("product not effective on ship date")
	// ErrMissingDestination is returned by Calculate when no destination postal code is given.
	ErrMissingDestination = errors.New("destination postal code is required")
)

// IsConfigurationError reports whether err points at bad provider data rather than bad input.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrRateTableMismatch) ||
		errors.Is(err, ErrNoFuelRateEffective) ||
		errors.Is(err, ErrUnauthorizedFeeNotConfigured)
}
