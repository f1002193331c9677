package handler

import (
	"context"
	"time"

	"macro-dashboard/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// maxUploadBytes caps positioning CSV uploads.
const maxUploadBytes = 10 << 20

// Dashboard is the read side the HTTP API serves from.
type Dashboard interface {
	Refresh(ctx context.Context) domain.Snapshot
	LastSnapshot() (domain.Snapshot, bool)
	MacroLatest(ctx context.Context, id string) domain.Result[domain.Observation]
	MacroHistory(ctx context.Context, id string, start time.Time) domain.Result[domain.Series]
	AssetHistory(ctx context.Context, ticker, period string) (domain.Result[domain.Series], bool)
	Sentiment(ctx context.Context) domain.Result[domain.SentimentReading]
	Composite(ctx context.Context) domain.CompositeView
}

type Handler struct {
	tracer    trace.Tracer
	dashboard Dashboard
}

func New(tracer trace.Tracer, dashboard Dashboard) *Handler {
	return &Handler{
		tracer:    tracer,
		dashboard: dashboard,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	api.GET("/dashboard", h.GetDashboard)
	api.GET("/composite", h.GetComposite)
	api.GET("/sentiment", h.GetSentiment)
	api.GET("/macro/:series/latest", h.GetMacroLatest)
	api.GET("/macro/:series/history", h.GetMacroHistory)
	api.GET("/assets/:ticker/history", h.GetAssetHistory)
	api.POST("/positioning/preview", MaxBodyBytes(maxUploadBytes), h.PreviewPositioning)
}
