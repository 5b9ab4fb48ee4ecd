// Package i18n provides internationalization support for the freight rate service.
package i18n

// Error message translation keys.
const (
	// ErrKeyInvalidRequest indicates an invalid request.
	ErrKeyInvalidRequest = "error.invalid_request"
	// ErrKeyInvalidRequestBody indicates an invalid request body.
	ErrKeyInvalidRequestBody = "error.invalid_request_body"
	// ErrKeyInternalError indicates an internal server error.
	ErrKeyInternalError = "error.internal_error"
	// ErrKeyNotFound indicates a resource was not found.
	ErrKeyNotFound = "error.not_found"
	// ErrKeyRateLimitExceeded indicates rate limit exceeded.
	ErrKeyRateLimitExceeded = "error.rate_limit_exceeded"
	// ErrKeyTimeout indicates a request timeout.
	ErrKeyTimeout = "error.timeout"
	// ErrKeyServiceUnavailable indicates a provider behind an open circuit.
	ErrKeyServiceUnavailable = "error.service_unavailable"

	// ErrKeyInvalidPackage indicates a non-positive weight or dimension.
	ErrKeyInvalidPackage = "error.validation.package"
	// ErrKeyInvalidShipDate indicates a malformed ship date.
	ErrKeyInvalidShipDate = "error.validation.ship_date"
	// ErrKeyProductNotFound indicates an unknown product id.
	ErrKeyProductNotFound = "error.product_not_found"
	// ErrKeyProductNotEffective indicates an inactive or expired product.
	ErrKeyProductNotEffective = "error.product_not_effective"
	// ErrKeyOriginNotSupported indicates no postal zone table for the origin.
	ErrKeyOriginNotSupported = "error.origin_not_supported"
	// ErrKeyZoneNotFound indicates a destination outside every zone range.
	ErrKeyZoneNotFound = "error.zone_not_found"
	// ErrKeyRateTableMismatch indicates a zone missing from the rate table or a fee.
	ErrKeyRateTableMismatch = "error.rate_table_mismatch"
	// ErrKeyNoFuelRate indicates no fuel rate covers the ship date.
	ErrKeyNoFuelRate = "error.no_fuel_rate_effective"
	// ErrKeyUnauthorizedFee indicates a product without an unauthorized fee.
	ErrKeyUnauthorizedFee = "error.unauthorized_fee_not_configured"
)

// Success message translation keys.
const (
	// SuccessKeyCachePurged indicates the caches were cleared.
	SuccessKeyCachePurged = "success.cache_purged"
)
