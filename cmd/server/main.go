package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"macro-dashboard/internal/cache"
	"macro-dashboard/internal/config"
	"macro-dashboard/internal/fetcher"
	"macro-dashboard/internal/handler"
	"macro-dashboard/internal/job"
	"macro-dashboard/internal/provider"
	"macro-dashboard/internal/service"
	"macro-dashboard/pkg/metrics"
	"macro-dashboard/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "macro-dashboard/docs"
)

var (
	loadEnvFunc        = godotenv.Load
	loadConfigFunc     = config.Load
	initTracerFunc     = tracing.InitTracer
	newCacheStoreFunc  = cache.New
	newMetricsFunc     = metrics.New
	newMacroSourceFunc = func(tracer trace.Tracer, creds config.Credentials) fetcher.Source {
		return provider.NewFREDProvider(tracer, creds.MacroAPIKey)
	}
	newPriceSourceFunc = func(tracer trace.Tracer, creds config.Credentials) fetcher.Source {
		yahoo := provider.NewYahooProvider(tracer)
		if creds.PriceAPIKey == "" {
			return yahoo
		}
		return fetcher.NewFallback(yahoo, provider.NewAlphaVantageProvider(tracer, creds.PriceAPIKey))
	}
	newSentimentSourceFunc = func(tracer trace.Tracer) fetcher.SentimentSource {
		return provider.NewFearGreedProvider(tracer)
	}
	newDashboardServiceFunc = service.NewDashboardService
	newRefresherFunc        = job.NewDashboardRefresher
	startRefresherFunc      = func(r *job.DashboardRefresher, ctx context.Context) { go r.Start(ctx) }
	newHandlerFunc          = handler.New
	newRouterFunc           = gin.Default
	setupSignalNotify       = signal.Notify
	waitForSignalFunc       = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc     = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc  = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Macro Dashboard API
// @version         1.0
// @description     Global macro dashboard: FRED series, market closes, fear & greed and a risk sentiment composite.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	store := newCacheStoreFunc(ctx, cfg.RedisURL)
	rec := newMetricsFunc()

	// Raw providers behind the cache, then the Result-returning fetchers
	macroSource := fetcher.NewCachedSource(newMacroSourceFunc(tracer, cfg.Credentials), store, cfg.MacroCacheTTL(), rec)
	priceSource := fetcher.NewCachedSource(newPriceSourceFunc(tracer, cfg.Credentials), store, cfg.PriceCacheTTL(), rec)
	sentimentSource := fetcher.NewCachedSentimentSource(newSentimentSourceFunc(tracer), store, cfg.SentimentCacheTTL(), rec)

	dashboard := newDashboardServiceFunc(
		tracer,
		fetcher.New(tracer, macroSource, rec),
		fetcher.New(tracer, priceSource, rec),
		fetcher.NewSentimentLookup(tracer, sentimentSource, rec),
		rec,
	)

	refresher := newRefresherFunc(tracer, dashboard, cfg.RefreshIntervalSecs)
	startRefresherFunc(refresher, ctx)

	h := newHandlerFunc(tracer, dashboard)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("macro-dashboard"))

	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(rec.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()
	log.Printf("Listening on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
