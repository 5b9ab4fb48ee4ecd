package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/freight-rate-service/internal/domain/dto"
	"github.com/guttosm/freight-rate-service/internal/domain/model"
	"github.com/guttosm/freight-rate-service/internal/i18n"
	"github.com/guttosm/freight-rate-service/internal/middleware"
	"github.com/guttosm/freight-rate-service/internal/service"
)

// CacheHeader reports whether a quote was served from the quote cache.
const CacheHeader = "X-Cache"

// Handler provides HTTP handlers for the rating routes.
type Handler struct {
	quotes service.QuoteService
}

// NewHandler creates a new Handler instance.
func NewHandler(quotes service.QuoteService) *Handler {
	return &Handler{quotes: quotes}
}

// Calculate handles POST /api/calculate requests.
//
// @Summary      Calculate a freight rate
// @Description  Rates a package for a product. With to_postal_code the response is a single zone rate (or an unauthorized fee when the package exceeds carrier limits). Without it every zone of the product is rated.
// @Tags         Rates
// @Accept       json
// @Produce      json
// @Param        request body dto.CalculateRateRequest true "Package and route"
// @Success      200 {object} dto.SuccessResponse "Rate, unauthorized fee or all-zones result"
// @Failure      400 {object} dto.ErrorResponse "Invalid body, package or ship date"
// @Failure      404 {object} dto.ErrorResponse "Unknown product"
// @Failure      422 {object} dto.ErrorResponse "Origin unsupported, zone not found or product not effective"
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Failure      500 {object} dto.ErrorResponse "Provider data misconfigured"
// @Failure      503 {object} dto.ErrorResponse "Provider store unavailable"
// @Failure      504 {object} dto.ErrorResponse "Request timed out"
// @Router       /api/calculate [post]
func (h *Handler) Calculate(c *gin.Context) {
	h.quote(c, false)
}

// CalculateAllZones handles POST /api/calculate/all-zones requests.
//
// @Summary      Calculate rates for every zone
// @Description  Rates a package in every zone of the product. to_postal_code is ignored. Zones that fail carry their own error instead of failing the request.
// @Tags         Rates
// @Accept       json
// @Produce      json
// @Param        request body dto.CalculateRateRequest true "Package and origin"
// @Success      200 {object} dto.SuccessResponse{data=dto.AllZonesResponse} "Per-zone results"
// @Failure      400 {object} dto.ErrorResponse "Invalid body, package or ship date"
// @Failure      404 {object} dto.ErrorResponse "Unknown product"
// @Failure      422 {object} dto.ErrorResponse "Origin unsupported or product not effective"
// @Failure      503 {object} dto.ErrorResponse "Provider store unavailable"
// @Router       /api/calculate/all-zones [post]
func (h *Handler) CalculateAllZones(c *gin.Context) {
	h.quote(c, true)
}

func (h *Handler) quote(c *gin.Context, allZones bool) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequestAndValidate[dto.CalculateRateRequest](c)
	if err != nil {
		if _, ok := err.(*dto.ValidationError); ok {
			writeError(builder, err)
		} else {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		}
		return
	}

	q, err := h.quotes.Quote(c.Request.Context(), req, service.QuoteOptions{
		AllZones:  allZones,
		RequestID: middleware.GetRequestID(c),
	})
	if err != nil {
		writeError(builder, err)
		return
	}

	if q.Cached {
		c.Header(CacheHeader, "HIT")
	} else {
		c.Header(CacheHeader, "MISS")
	}
	builder.SuccessOK(q.Payload)
}

// ListProducts handles GET /api/products requests.
//
// @Summary      List products
// @Description  Lists the active rate cards that can be used as product_id
// @Tags         Rates
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=[]dto.ProductSummary} "Active products"
// @Failure      503 {object} dto.ErrorResponse "Provider store unavailable"
// @Router       /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	builder := NewResponseBuilder(c)

	products, err := h.quotes.ListProducts(c.Request.Context())
	if err != nil {
		writeError(builder, err)
		return
	}
	if products == nil {
		products = []dto.ProductSummary{}
	}
	builder.SuccessOK(products)
}

// ListQuotes handles GET /api/quotes requests.
//
// @Summary      List calculation history
// @Description  Returns recorded quotes, newest first
// @Tags         History
// @Produce      json
// @Param        product_id query string false "Filter by product"
// @Param        zone query int false "Filter by zone"
// @Param        from query string false "Lower bound (RFC 3339 or YYYY-MM-DD)"
// @Param        to query string false "Upper bound (RFC 3339 or YYYY-MM-DD)"
// @Param        limit query int false "Page size (default 50, max 500)"
// @Param        skip query int false "Records to skip"
// @Success      200 {object} dto.SuccessResponse{data=dto.QuoteHistoryResponse} "History page"
// @Failure      400 {object} dto.ErrorResponse "Invalid query"
// @Failure      404 {object} dto.ErrorResponse "History disabled"
// @Failure      503 {object} dto.ErrorResponse "History store unavailable"
// @Router       /api/quotes [get]
func (h *Handler) ListQuotes(c *gin.Context) {
	builder := NewResponseBuilder(c)

	query, err := BindQuery[dto.QuoteHistoryQuery](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return
	}
	opts, err := query.Options()
	if err != nil {
		writeError(builder, err)
		return
	}

	records, total, err := h.quotes.History(c.Request.Context(), opts)
	if err != nil {
		writeError(builder, err)
		return
	}

	resp := dto.QuoteHistoryResponse{
		Records: records,
		Total:   total,
		Limit:   opts.Limit,
		Skip:    opts.Skip,
	}
	if resp.Records == nil {
		resp.Records = []*model.QuoteRecord{}
	}
	builder.SuccessOK(resp)
}

// PurgeCache handles POST /api/cache/purge requests.
//
// @Summary      Purge caches
// @Description  Clears cached provider data and cached quotes. An empty body clears both.
// @Tags         Cache
// @Accept       json
// @Produce      json
// @Param        request body dto.PurgeCacheRequest false "Caches to clear"
// @Success      200 {object} dto.SuccessResponse{data=dto.CachePurgeResponse} "Caches cleared"
// @Failure      400 {object} dto.ErrorResponse "Invalid body"
// @Failure      500 {object} dto.ErrorResponse "Quote cache could not be cleared"
// @Router       /api/cache/purge [post]
func (h *Handler) PurgeCache(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.PurgeCacheRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
			return
		}
	}

	if err := h.quotes.PurgeCache(c.Request.Context(), req); err != nil {
		writeError(builder, err)
		return
	}

	all := req.All()
	builder.SuccessOK(dto.CachePurgeResponse{
		Catalog: all || req.Catalog,
		Quotes:  all || req.Quotes,
		Message: i18n.GetTranslator().Translate(i18n.SuccessKeyCachePurged, i18n.GetLocale(c)),
	})
}
