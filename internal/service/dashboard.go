package service

import (
	"context"
	"log"
	"sync"
	"time"

	"macro-dashboard/internal/analytics"
	"macro-dashboard/internal/composite"
	"macro-dashboard/internal/domain"
	"macro-dashboard/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentFetches bounds the upstream requests in flight per refresh.
const maxConcurrentFetches = 4

// Lookback windows for the charted series.
const (
	yieldLookbackYears     = 5
	liquidityLookbackYears = 5
	crossMarketMonths      = 3
	equityMonths           = 6
	vixFactorMonths        = 3
	fxFactorMonths         = 3
)

// SeriesFetcher is the Result-returning contract over a series provider.
type SeriesFetcher interface {
	FetchLatest(ctx context.Context, id string) domain.Result[domain.Observation]
	FetchHistory(ctx context.Context, id string, start time.Time) domain.Result[domain.Series]
}

type SentimentFetcher interface {
	FetchSentiment(ctx context.Context) domain.Result[domain.SentimentReading]
}

// DashboardService runs refresh cycles: fetch, align, normalize, score.
type DashboardService struct {
	tracer    trace.Tracer
	macro     SeriesFetcher
	prices    SeriesFetcher
	sentiment SentimentFetcher
	metrics   *metrics.Recorder
	now       func() time.Time

	mu   sync.RWMutex
	last *domain.Snapshot
}

func NewDashboardService(
	tracer trace.Tracer,
	macro SeriesFetcher,
	prices SeriesFetcher,
	sentiment SentimentFetcher,
	rec *metrics.Recorder,
) *DashboardService {
	return &DashboardService{
		tracer:    tracer,
		macro:     macro,
		prices:    prices,
		sentiment: sentiment,
		metrics:   rec,
		now:       time.Now,
	}
}

// Refresh fetches every dashboard input in parallel and assembles a Snapshot.
// Unavailable inputs are reported per metric; the refresh itself never fails.
func (s *DashboardService) Refresh(ctx context.Context) domain.Snapshot {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.refresh")
	defer span.End()

	started := s.now()
	now := started.UTC()

	var (
		core        = make([]domain.Result[domain.Observation], len(domain.CoreMacroSeries))
		gs10, gs2   domain.Result[domain.Series]
		crossMarket = make([]domain.Result[domain.Series], len(domain.CrossMarketTickers))
		spx, vix    domain.Result[domain.Series]
		walcl, m2   domain.Result[domain.Series]
		sentiment   domain.Result[domain.SentimentReading]
	)

	// Fetchers never return errors; the group only bounds concurrency.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for i, id := range domain.CoreMacroSeries {
		g.Go(func() error {
			core[i] = s.macro.FetchLatest(gctx, id)
			return nil
		})
	}

	yieldStart := domain.Day(now.AddDate(-yieldLookbackYears, 0, 0))
	g.Go(func() error {
		gs10 = s.macro.FetchHistory(gctx, domain.SeriesTreasury10Y, yieldStart)
		return nil
	})
	g.Go(func() error {
		gs2 = s.macro.FetchHistory(gctx, domain.SeriesTreasury2Y, yieldStart)
		return nil
	})

	crossStart := domain.Day(now.AddDate(0, -crossMarketMonths, 0))
	for i, ticker := range domain.CrossMarketTickers {
		g.Go(func() error {
			crossMarket[i] = s.prices.FetchHistory(gctx, ticker, crossStart)
			return nil
		})
	}

	equityStart := domain.Day(now.AddDate(0, -equityMonths, 0))
	g.Go(func() error {
		spx = s.prices.FetchHistory(gctx, domain.TickerSPX, equityStart)
		return nil
	})
	g.Go(func() error {
		vix = s.prices.FetchHistory(gctx, domain.TickerVIX, equityStart)
		return nil
	})

	liquidityStart := domain.Day(now.AddDate(-liquidityLookbackYears, 0, 0))
	g.Go(func() error {
		walcl = s.macro.FetchHistory(gctx, domain.SeriesBalanceSheet, liquidityStart)
		return nil
	})
	g.Go(func() error {
		m2 = s.macro.FetchHistory(gctx, domain.SeriesMoneySupplyM2, liquidityStart)
		return nil
	})

	g.Go(func() error {
		sentiment = s.sentiment.FetchSentiment(gctx)
		return nil
	})

	_ = g.Wait()

	snap := domain.Snapshot{
		GeneratedAt:  now,
		CoreMacro:    make([]domain.Metric, len(core)),
		Yields:       yieldCurve(gs10, gs2),
		CrossMarket:  make([]domain.SeriesView, len(crossMarket)),
		Equities:     domain.SeriesViewFromResult(domain.TickerSPX, spx),
		Volatility:   domain.SeriesViewFromResult(domain.TickerVIX, vix),
		BalanceSheet: domain.SeriesViewFromResult(domain.SeriesBalanceSheet, walcl),
		MoneySupply:  domain.SeriesViewFromResult(domain.SeriesMoneySupplyM2, m2),
		Sentiment:    domain.SentimentViewFromResult(sentiment),
	}
	for i, id := range domain.CoreMacroSeries {
		snap.CoreMacro[i] = domain.MetricFromResult(id, core[i])
	}
	for i, ticker := range domain.CrossMarketTickers {
		snap.CrossMarket[i] = domain.SeriesViewFromResult(ticker, crossMarket[i])
	}

	// The VIX and FX factors use a three-month window, which is the tail of
	// the series already fetched for the charts.
	vixWindow := tail(vix, domain.Day(now.AddDate(0, -vixFactorMonths, 0)))
	fxWindow := tail(crossMarket[0], domain.Day(now.AddDate(0, -fxFactorMonths, 0)))
	snap.Composite = composite.View(
		composite.VIXFactor(vixWindow),
		composite.SpreadFactorFromFrame(snap.Yields.Frame),
		composite.FXFactor(fxWindow),
	)

	span.SetAttributes(attribute.Int("composite.score", snap.Composite.Score))
	s.metrics.ObserveRefresh(s.now().Sub(started), snap.Composite.Score)
	log.Printf("dashboard refreshed: composite=%d sentiment_available=%t", snap.Composite.Score, snap.Sentiment.Available)

	s.mu.Lock()
	s.last = &snap
	s.mu.Unlock()

	return snap
}

// LastSnapshot returns the most recent refresh result, if any.
func (s *DashboardService) LastSnapshot() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return domain.Snapshot{}, false
	}
	return *s.last, true
}

// RefreshDashboard runs a refresh for background callers.
func (s *DashboardService) RefreshDashboard(ctx context.Context) error {
	s.Refresh(ctx)
	return ctx.Err()
}

// MacroLatest returns the latest observation of a FRED series.
func (s *DashboardService) MacroLatest(ctx context.Context, id string) domain.Result[domain.Observation] {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.macro-latest")
	defer span.End()
	return s.macro.FetchLatest(ctx, id)
}

// MacroHistory returns a FRED series from start onwards.
func (s *DashboardService) MacroHistory(ctx context.Context, id string, start time.Time) domain.Result[domain.Series] {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.macro-history")
	defer span.End()
	return s.macro.FetchHistory(ctx, id, start)
}

// AssetHistory returns daily closes for a ticker over a period such as "6mo".
func (s *DashboardService) AssetHistory(ctx context.Context, ticker, period string) (domain.Result[domain.Series], bool) {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.asset-history")
	defer span.End()

	start, ok := domain.PeriodStart(period, s.now().UTC())
	if !ok {
		return domain.Result[domain.Series]{}, false
	}
	return s.prices.FetchHistory(ctx, ticker, start), true
}

func (s *DashboardService) Sentiment(ctx context.Context) domain.Result[domain.SentimentReading] {
	return s.sentiment.FetchSentiment(ctx)
}

// Composite computes the risk-sentiment composite without the chart series.
func (s *DashboardService) Composite(ctx context.Context) domain.CompositeView {
	ctx, span := s.tracer.Start(ctx, "dashboard-service.composite")
	defer span.End()

	now := s.now().UTC()
	var gs10, gs2, vix, fx domain.Result[domain.Series]

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)
	yieldStart := domain.Day(now.AddDate(-yieldLookbackYears, 0, 0))
	g.Go(func() error {
		gs10 = s.macro.FetchHistory(gctx, domain.SeriesTreasury10Y, yieldStart)
		return nil
	})
	g.Go(func() error {
		gs2 = s.macro.FetchHistory(gctx, domain.SeriesTreasury2Y, yieldStart)
		return nil
	})
	g.Go(func() error {
		vix = s.prices.FetchHistory(gctx, domain.TickerVIX, domain.Day(now.AddDate(0, -vixFactorMonths, 0)))
		return nil
	})
	g.Go(func() error {
		fx = s.prices.FetchHistory(gctx, domain.TickerEURUSD, domain.Day(now.AddDate(0, -fxFactorMonths, 0)))
		return nil
	})
	_ = g.Wait()

	view := composite.View(
		composite.VIXFactor(seriesOrEmpty(vix)),
		composite.SpreadFactorFromFrame(yieldCurve(gs10, gs2).Frame),
		composite.FXFactor(seriesOrEmpty(fx)),
	)
	span.SetAttributes(attribute.Int("composite.score", view.Score))
	return view
}

func yieldCurve(gs10, gs2 domain.Result[domain.Series]) domain.YieldCurve {
	for _, r := range []domain.Result[domain.Series]{gs10, gs2} {
		if !r.Ok() {
			empty := analytics.YieldSpread(
				domain.Series{ID: domain.SeriesTreasury10Y},
				domain.Series{ID: domain.SeriesTreasury2Y},
			)
			return domain.YieldCurve{Reason: reasonText(r.Reason), Frame: empty}
		}
	}
	frame := analytics.YieldSpread(gs10.Value, gs2.Value)
	if frame.Empty() {
		return domain.YieldCurve{Reason: "no overlapping dates", Frame: frame}
	}
	return domain.YieldCurve{Available: true, Frame: frame}
}

func reasonText(err error) string {
	if err == nil {
		return domain.ErrNoData.Error()
	}
	return err.Error()
}

func seriesOrEmpty(r domain.Result[domain.Series]) domain.Series {
	if v, ok := r.Get(); ok {
		return v
	}
	return domain.Series{}
}

// tail returns the points of r on or after start.
func tail(r domain.Result[domain.Series], start time.Time) domain.Series {
	s := seriesOrEmpty(r)
	for i, p := range s.Points {
		if !p.Date.Before(start) {
			return domain.Series{ID: s.ID, Points: s.Points[i:]}
		}
	}
	return domain.Series{ID: s.ID}
}
