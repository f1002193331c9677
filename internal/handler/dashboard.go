package handler

import (
	"net/http"

	"macro-dashboard/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetDashboard godoc
// @Summary      Full dashboard refresh
// @Description  Fetches every macro, market and sentiment input, aligns the yield curve and computes the risk composite. Unavailable inputs are flagged per metric.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.Snapshot
// @Router       /api/dashboard [get]
func (h *Handler) GetDashboard(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-dashboard")
	defer span.End()

	snap := h.dashboard.Refresh(ctx)
	span.SetAttributes(attribute.Int("composite.score", snap.Composite.Score))

	c.JSON(http.StatusOK, snap)
}

// GetComposite godoc
// @Summary      Risk sentiment composite
// @Description  Weighted blend of VIX, 10Y-2Y spread and EUR/USD factors. 0 is extreme risk-on, 100 extreme risk-off.
// @Tags         signals
// @Produce      json
// @Success      200  {object}  domain.CompositeView
// @Router       /api/composite [get]
func (h *Handler) GetComposite(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-composite")
	defer span.End()

	c.JSON(http.StatusOK, h.dashboard.Composite(ctx))
}

// GetSentiment godoc
// @Summary      Fear & greed index
// @Description  Returns the CNN fear & greed reading, or available=false with the reason
// @Tags         signals
// @Produce      json
// @Success      200  {object}  domain.SentimentView
// @Router       /api/sentiment [get]
func (h *Handler) GetSentiment(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-sentiment")
	defer span.End()

	c.JSON(http.StatusOK, domain.SentimentViewFromResult(h.dashboard.Sentiment(ctx)))
}
