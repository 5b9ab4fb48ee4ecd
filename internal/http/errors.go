package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/guttosm/freight-rate-service/internal/circuitbreaker"
	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/i18n"
	"github.com/guttosm/freight-rate-service/internal/rating"
	"github.com/guttosm/freight-rate-service/internal/service"
)

// errorMapping is the HTTP rendering of a service or rating error.
type errorMapping struct {
	status int
	code   string
	key    string
}

// mapError resolves err to its status, API code and message key.
func mapError(err error) errorMapping {
	var ve *dto.ValidationError
	switch {
	case errors.As(err, &ve):
		key := i18n.ErrKeyInvalidRequest
		switch ve.Field {
		case dto.ErrInvalidShipDate.Field:
			key = i18n.ErrKeyInvalidShipDate
		case "weight", "length", "width", "height", "package":
			key = i18n.ErrKeyInvalidPackage
		}
		return errorMapping{http.StatusBadRequest, dto.ErrCodeInvalidRequest, key}
	case errors.Is(err, rating.ErrInvalidPackageDimensions):
		return errorMapping{http.StatusBadRequest, dto.ErrCodeInvalidRequest, i18n.ErrKeyInvalidPackage}
	case errors.Is(err, service.ErrProductNotFound):
		return errorMapping{http.StatusNotFound, dto.ErrCodeNotFound, i18n.ErrKeyProductNotFound}
	case errors.Is(err, service.ErrHistoryDisabled):
		return errorMapping{http.StatusNotFound, dto.ErrCodeNotFound, i18n.ErrKeyNotFound}
	case errors.Is(err, service.ErrOriginNotSupported):
		return errorMapping{http.StatusUnprocessableEntity, dto.ErrCodeUnprocessable, i18n.ErrKeyOriginNotSupported}
	case errors.Is(err, rating.ErrZoneNotFound):
		return errorMapping{http.StatusUnprocessableEntity, dto.ErrCodeZoneNotFound, i18n.ErrKeyZoneNotFound}
	case errors.Is(err, rating.ErrProductNotEffective):
		return errorMapping{http.StatusUnprocessableEntity, dto.ErrCodeProductNotEffective, i18n.ErrKeyProductNotEffective}
	case errors.Is(err, rating.ErrRateTableMismatch):
		return errorMapping{http.StatusInternalServerError, dto.ErrCodeRateTableMismatch, i18n.ErrKeyRateTableMismatch}
	case errors.Is(err, rating.ErrNoFuelRateEffective):
		return errorMapping{http.StatusInternalServerError, dto.ErrCodeNoFuelRate, i18n.ErrKeyNoFuelRate}
	case errors.Is(err, rating.ErrUnauthorizedFeeNotConfigured):
		return errorMapping{http.StatusInternalServerError, dto.ErrCodeUnauthorizedFee, i18n.ErrKeyUnauthorizedFee}
	case errors.Is(err, circuitbreaker.ErrCircuitOpen):
		return errorMapping{http.StatusServiceUnavailable, dto.ErrCodeUnavailable, i18n.ErrKeyServiceUnavailable}
	case errors.Is(err, context.DeadlineExceeded):
		return errorMapping{http.StatusGatewayTimeout, dto.ErrCodeTimeout, i18n.ErrKeyTimeout}
	default:
		return errorMapping{http.StatusInternalServerError, dto.ErrCodeInternal, i18n.ErrKeyInternalError}
	}
}

// writeError renders err through the response builder.
func writeError(b *ResponseBuilder, err error) {
	m := mapError(err)

	var details map[string]string
	var ve *dto.ValidationError
	if errors.As(err, &ve) {
		details = map[string]string{ve.Field: ve.Message}
	}

	b.ErrorWithCode(m.status, m.code, m.key, details, err)
}
