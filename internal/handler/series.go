package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"macro-dashboard/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

var (
	seriesIDPattern = regexp.MustCompile(`^[A-Z0-9_]{1,32}$`)
	tickerPattern   = regexp.MustCompile(`^[A-Za-z0-9^=.\-]{1,20}$`)
)

// GetMacroLatest godoc
// @Summary      Latest value of a FRED series
// @Description  Returns the most recent observation, or available=false with the reason
// @Tags         macro
// @Produce      json
// @Param        series  path  string  true  "FRED series code (e.g., FEDFUNDS, CPILFESL)"
// @Success      200  {object}  domain.Metric
// @Failure      400  {object}  map[string]string
// @Router       /api/macro/{series}/latest [get]
func (h *Handler) GetMacroLatest(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-macro-latest")
	defer span.End()

	id := strings.ToUpper(c.Param("series"))
	span.SetAttributes(attribute.String("series", id))
	if !seriesIDPattern.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid series id: " + id})
		return
	}

	c.JSON(http.StatusOK, domain.MetricFromResult(id, h.dashboard.MacroLatest(ctx, id)))
}

// GetMacroHistory godoc
// @Summary      History of a FRED series
// @Description  Returns observations from the start date onwards (full history when omitted)
// @Tags         macro
// @Produce      json
// @Param        series  path   string  true   "FRED series code (e.g., GS10, WALCL)"
// @Param        start   query  string  false  "Start date (YYYY-MM-DD)"
// @Success      200  {object}  domain.SeriesView
// @Failure      400  {object}  map[string]string
// @Router       /api/macro/{series}/history [get]
func (h *Handler) GetMacroHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-macro-history")
	defer span.End()

	id := strings.ToUpper(c.Param("series"))
	span.SetAttributes(attribute.String("series", id))
	if !seriesIDPattern.MatchString(id) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid series id: " + id})
		return
	}

	var start time.Time
	if raw := strings.TrimSpace(c.Query("start")); raw != "" {
		parsed, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start date, expected YYYY-MM-DD"})
			return
		}
		start = parsed
	}

	c.JSON(http.StatusOK, domain.SeriesViewFromResult(id, h.dashboard.MacroHistory(ctx, id, start)))
}

// GetAssetHistory godoc
// @Summary      Daily closes for a ticker
// @Description  Returns daily closing prices over the requested period
// @Tags         assets
// @Produce      json
// @Param        ticker  path   string  true   "Yahoo Finance ticker (e.g., ^GSPC, EURUSD=X)"
// @Param        period  query  string  false  "History period (1mo, 3mo, 6mo, 1y, 2y, 5y)"  default(6mo)
// @Success      200  {object}  domain.SeriesView
// @Failure      400  {object}  map[string]string
// @Router       /api/assets/{ticker}/history [get]
func (h *Handler) GetAssetHistory(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-asset-history")
	defer span.End()

	ticker := strings.ToUpper(c.Param("ticker"))
	period := c.DefaultQuery("period", "6mo")
	span.SetAttributes(attribute.String("ticker", ticker), attribute.String("period", period))

	if !tickerPattern.MatchString(ticker) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticker: " + ticker})
		return
	}

	result, ok := h.dashboard.AssetHistory(ctx, ticker, period)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported period: " + period,
			"supported_periods": domain.SupportedPeriods,
		})
		return
	}

	c.JSON(http.StatusOK, domain.SeriesViewFromResult(ticker, result))
}
