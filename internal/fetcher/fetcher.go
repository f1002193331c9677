package fetcher

import (
	"context"
	"log"
	"time"

	"macro-dashboard/internal/domain"
	"macro-dashboard/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SeriesFetcher turns a Source into Result values. Upstream failures never
// escape as errors; they become Absent results carrying the reason.
type SeriesFetcher struct {
	source  Source
	tracer  trace.Tracer
	metrics *metrics.Recorder
}

func New(tracer trace.Tracer, source Source, rec *metrics.Recorder) *SeriesFetcher {
	return &SeriesFetcher{source: source, tracer: tracer, metrics: rec}
}

func (f *SeriesFetcher) Name() string { return f.source.Name() }

func (f *SeriesFetcher) FetchLatest(ctx context.Context, id string) domain.Result[domain.Observation] {
	ctx, span := f.tracer.Start(ctx, "fetcher.fetch-latest")
	defer span.End()
	span.SetAttributes(attribute.String("source", f.source.Name()), attribute.String("id", id))

	obs, err := f.source.FetchLatest(ctx, id)
	f.metrics.ObserveFetch(f.source.Name(), "latest", err)
	if err != nil {
		f.absent(span, id, err)
		return domain.None[domain.Observation](err)
	}
	if obs == nil || !obs.Valid {
		return domain.None[domain.Observation](domain.ErrNoData)
	}
	return domain.Some(*obs)
}

func (f *SeriesFetcher) FetchHistory(ctx context.Context, id string, start time.Time) domain.Result[domain.Series] {
	ctx, span := f.tracer.Start(ctx, "fetcher.fetch-history")
	defer span.End()
	span.SetAttributes(attribute.String("source", f.source.Name()), attribute.String("id", id))

	series, err := f.source.FetchHistory(ctx, id, start)
	f.metrics.ObserveFetch(f.source.Name(), "history", err)
	if err != nil {
		f.absent(span, id, err)
		r := domain.None[domain.Series](err)
		r.Value = domain.Series{ID: id}
		return r
	}
	if series.Empty() {
		r := domain.None[domain.Series](domain.ErrNoData)
		r.Value = domain.Series{ID: id}
		return r
	}
	return domain.Some(series)
}

func (f *SeriesFetcher) absent(span trace.Span, id string, err error) {
	span.SetStatus(codes.Error, metrics.Outcome(err))
	log.Printf("%s %s unavailable: %v", f.source.Name(), id, err)
}

// SentimentLookup turns a SentimentSource into Result values.
type SentimentLookup struct {
	source  SentimentSource
	tracer  trace.Tracer
	metrics *metrics.Recorder
}

func NewSentimentLookup(tracer trace.Tracer, source SentimentSource, rec *metrics.Recorder) *SentimentLookup {
	return &SentimentLookup{source: source, tracer: tracer, metrics: rec}
}

func (l *SentimentLookup) FetchSentiment(ctx context.Context) domain.Result[domain.SentimentReading] {
	ctx, span := l.tracer.Start(ctx, "fetcher.fetch-sentiment")
	defer span.End()

	reading, err := l.source.FetchLatest(ctx)
	l.metrics.ObserveFetch(l.source.Name(), "sentiment", err)
	if err != nil {
		span.SetStatus(codes.Error, metrics.Outcome(err))
		log.Printf("%s unavailable: %v", l.source.Name(), err)
		return domain.None[domain.SentimentReading](err)
	}
	if reading == nil {
		return domain.None[domain.SentimentReading](domain.ErrNoData)
	}
	return domain.Some(*reading)
}
