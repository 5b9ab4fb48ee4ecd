package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/i18n"
	"github.com/guttosm/freight-rate-service/internal/logger"
)

// ErrorHandler returns a middleware that logs errors attached to the gin context
// and writes a 500 response when the handler wrote nothing.
// Client errors (status below 500) are logged at warn level.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)
		status := c.Writer.Status()
		written := c.Writer.Written()

		log := logger.Logger()
		var event *zerolog.Event
		if written && status < http.StatusInternalServerError {
			event = log.Warn()
		} else {
			event = log.Error()
		}
		event.
			Str("request_id", requestID).
			Err(err.Err).
			Int("status_code", status).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if !written {
			message := i18n.GetTranslator().Translate(i18n.ErrKeyInternalError, i18n.GetLocale(c))
			c.JSON(http.StatusInternalServerError,
				dto.NewError(dto.ErrCodeInternal, message).WithRequestID(requestID))
		}
	}
}
