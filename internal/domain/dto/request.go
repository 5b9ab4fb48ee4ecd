// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/shopspring/decimal"
)

// CalculateRateRequest represents the JSON request body for the rate calculation endpoints.
//
// Weight and dimensions are in the unit of the product: LB/IN or KG/CM.
// Without to_postal_code the calculation covers every zone of the product.
//
// @Description Request to rate a package for a product
// @Example {"product_id": "ground-lb", "from_postal_code": "91761", "to_postal_code": "30301", "weight": 10, "length": 12, "width": 10, "height": 8}
type CalculateRateRequest struct {
	// ProductID selects the rate card.
	ProductID string `json:"product_id" binding:"required" example:"ground-lb"`
	// FromPostalCode is the origin; it selects the postal zone table.
	FromPostalCode string `json:"from_postal_code" binding:"required" example:"91761"`
	// ToPostalCode is the destination. Optional.
	ToPostalCode string          `json:"to_postal_code,omitempty" example:"30301"`
	Weight       decimal.Decimal `json:"weight" swaggertype:"number" example:"10"`
	Length       decimal.Decimal `json:"length" swaggertype:"number" example:"12"`
	Width        decimal.Decimal `json:"width" swaggertype:"number" example:"10"`
	Height       decimal.Decimal `json:"height" swaggertype:"number" example:"8"`
	// ShipDate is a calendar date (YYYY-MM-DD). Defaults to today.
	ShipDate string `json:"ship_date,omitempty" example:"2025-10-15"`
	// Residential defaults to the server setting when omitted.
	Residential *bool `json:"residential,omitempty" example:"true"`
	// Services names on-request surcharge items, e.g. "Signature Required".
	Services []string `json:"services,omitempty"`
} // @name CalculateRateRequest

// ValidationError represents a field validation error.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns the error message for ValidationError.
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var (
	// ErrMissingProductID is returned when product_id is blank.
	ErrMissingProductID = &ValidationError{Field: "product_id", Message: "is required"}
	// ErrMissingOrigin is returned when from_postal_code is blank.
	ErrMissingOrigin = &ValidationError{Field: "from_postal_code", Message: "is required"}
	// ErrInvalidShipDate is returned when ship_date is not YYYY-MM-DD.
	ErrInvalidShipDate = &ValidationError{Field: "ship_date", Message: "must be a date in YYYY-MM-DD format"}
)

// Validate performs custom validation on the request.
// Returns an error if validation fails, nil otherwise.
func (r *CalculateRateRequest) Validate() error {
	if strings.TrimSpace(r.ProductID) == "" {
		return ErrMissingProductID
	}
	if strings.TrimSpace(r.FromPostalCode) == "" {
		return ErrMissingOrigin
	}
	if err := r.Package().Validate(); err != nil {
		field := "package"
		var pe *model.PackageError
		if errors.As(err, &pe) {
			field = pe.Field
		}
		return &ValidationError{Field: field, Message: "must be a positive number"}
	}
	if _, err := r.ParseShipDate(); err != nil {
		return err
	}
	return nil
}

// Package returns the package described by the request. The unit is set by the engine.
func (r *CalculateRateRequest) Package() model.Package {
	return model.Package{
		Weight: r.Weight,
		Length: r.Length,
		Width:  r.Width,
		Height: r.Height,
	}
}

// ParseShipDate returns the ship date, or the zero time when none was given.
func (r *CalculateRateRequest) ParseShipDate() (time.Time, error) {
	if strings.TrimSpace(r.ShipDate) == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(r.ShipDate))
	if err != nil {
		return time.Time{}, ErrInvalidShipDate
	}
	return t, nil
}

// ResidentialOr returns the requested residential flag or def when omitted.
func (r *CalculateRateRequest) ResidentialOr(def bool) bool {
	if r.Residential == nil {
		return def
	}
	return *r.Residential
}

// PurgeCacheRequest selects which caches POST /api/cache/purge clears.
type PurgeCacheRequest struct {
	// Catalog clears cached provider data.
	Catalog bool `json:"catalog" example:"true"`
	// Quotes clears cached quote responses.
	Quotes bool `json:"quotes" example:"true"`
} // @name PurgeCacheRequest

// All reports whether no selection was made, which clears everything.
func (r PurgeCacheRequest) All() bool {
	return !r.Catalog && !r.Quotes
}
