package fetcher

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"time"

	"macro-dashboard/internal/cache"
	"macro-dashboard/internal/domain"
	"macro-dashboard/pkg/metrics"
)

// CachedSource memoizes successful Source responses for a TTL. Keys are built
// from the source name, the operation and its parameters. Failures are never
// cached.
type CachedSource struct {
	source  Source
	store   cache.Store
	ttl     time.Duration
	metrics *metrics.Recorder
}

func NewCachedSource(source Source, store cache.Store, ttl time.Duration, rec *metrics.Recorder) *CachedSource {
	return &CachedSource{source: source, store: store, ttl: ttl, metrics: rec}
}

func (c *CachedSource) Name() string { return c.source.Name() }

func (c *CachedSource) FetchLatest(ctx context.Context, id string) (*domain.Observation, error) {
	key := cacheKey(c.source.Name(), "latest", id)

	var obs domain.Observation
	if c.load(ctx, key, &obs) {
		return &obs, nil
	}

	fresh, err := c.source.FetchLatest(ctx, id)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, fresh)
	return fresh, nil
}

func (c *CachedSource) FetchHistory(ctx context.Context, id string, start time.Time) (domain.Series, error) {
	from := "all"
	if !start.IsZero() {
		from = domain.Day(start).Format(time.DateOnly)
	}
	key := cacheKey(c.source.Name(), "history", id, from)

	var series domain.Series
	if c.load(ctx, key, &series) {
		return series, nil
	}

	fresh, err := c.source.FetchHistory(ctx, id, start)
	if err != nil {
		return fresh, err
	}
	c.save(ctx, key, fresh)
	return fresh, nil
}

func (c *CachedSource) load(ctx context.Context, key string, dst any) bool {
	return loadJSON(ctx, c.store, c.metrics, c.source.Name(), key, dst)
}

func (c *CachedSource) save(ctx context.Context, key string, v any) {
	saveJSON(ctx, c.store, c.ttl, key, v)
}

// CachedSentimentSource memoizes fear & greed readings.
type CachedSentimentSource struct {
	source  SentimentSource
	store   cache.Store
	ttl     time.Duration
	metrics *metrics.Recorder
}

func NewCachedSentimentSource(source SentimentSource, store cache.Store, ttl time.Duration, rec *metrics.Recorder) *CachedSentimentSource {
	return &CachedSentimentSource{source: source, store: store, ttl: ttl, metrics: rec}
}

func (c *CachedSentimentSource) Name() string { return c.source.Name() }

func (c *CachedSentimentSource) FetchLatest(ctx context.Context) (*domain.SentimentReading, error) {
	key := cacheKey(c.source.Name(), "latest")

	var reading domain.SentimentReading
	if loadJSON(ctx, c.store, c.metrics, c.source.Name(), key, &reading) {
		return &reading, nil
	}

	fresh, err := c.source.FetchLatest(ctx)
	if err != nil {
		return nil, err
	}
	saveJSON(ctx, c.store, c.ttl, key, fresh)
	return fresh, nil
}

func cacheKey(parts ...string) string {
	return strings.Join(parts, ":")
}

func loadJSON(ctx context.Context, store cache.Store, rec *metrics.Recorder, source, key string, dst any) bool {
	data, ok, err := store.Get(ctx, key)
	if err != nil {
		log.Printf("cache read error for %s: %v", key, err)
	}
	if err != nil || !ok {
		rec.ObserveCache(source, false)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		log.Printf("cache decode error for %s: %v", key, err)
		rec.ObserveCache(source, false)
		return false
	}
	rec.ObserveCache(source, true)
	return true
}

func saveJSON(ctx context.Context, store cache.Store, ttl time.Duration, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("cache encode error for %s: %v", key, err)
		return
	}
	if err := store.Set(ctx, key, data, ttl); err != nil {
		log.Printf("cache write error for %s: %v", key, err)
	}
}
