package dto

import (
	"strings"
	"time"

	"github.com/guttosm/freight-rate-service/internal/domain/model"
)

const (
	// DefaultHistoryLimit is the page size when limit is omitted.
	DefaultHistoryLimit = 50
	// MaxHistoryLimit caps the page size.
	MaxHistoryLimit = 500
)

// ErrInvalidHistoryRange is returned when from or to cannot be parsed.
var ErrInvalidHistoryRange = &ValidationError{Field: "from/to", Message: "must be RFC 3339 timestamps or YYYY-MM-DD dates"}

// QuoteHistoryQuery holds the query parameters of GET /api/quotes.
type QuoteHistoryQuery struct {
	ProductID string `form:"product_id"`
	Zone      int    `form:"zone" binding:"omitempty,min=2,max=8"`
	From      string `form:"from"`
	To        string `form:"to"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=500"`
	Skip      int    `form:"skip" binding:"omitempty,min=0"`
}

// Options converts the query to repository options, applying the default limit.
func (q QuoteHistoryQuery) Options() (model.QuoteQueryOptions, error) {
	opts := model.QuoteQueryOptions{
		ProductID: strings.TrimSpace(q.ProductID),
		Zone:      q.Zone,
		Limit:     q.Limit,
		Skip:      q.Skip,
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultHistoryLimit
	}
	if opts.Limit > MaxHistoryLimit {
		opts.Limit = MaxHistoryLimit
	}

	var err error
	if opts.StartTime, err = parseBound(q.From, false); err != nil {
		return opts, err
	}
	if opts.EndTime, err = parseBound(q.To, true); err != nil {
		return opts, err
	}
	return opts, nil
}

// parseBound accepts RFC 3339 or a date. A date used as an upper bound covers the whole day.
func parseBound(s string, upper bool) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, ErrInvalidHistoryRange
	}
	if upper {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// QuoteHistoryResponse is one page of the calculation history.
// @Description Recorded quotes, newest first
type QuoteHistoryResponse struct {
	Records []*model.QuoteRecord `json:"records"`
	Total   int64                `json:"total" example:"120"`
	Limit   int                  `json:"limit" example:"50"`
	Skip    int                  `json:"skip" example:"0"`
} // @name QuoteHistoryResponse

// CachePurgeResponse acknowledges POST /api/cache/purge.
type CachePurgeResponse struct {
	Catalog bool   `json:"catalog" example:"true"`
	Quotes  bool   `json:"quotes" example:"true"`
	Message string `json:"message" example:"Caches cleared"`
} // @name CachePurgeResponse
