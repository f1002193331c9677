package fetcher

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"macro-dashboard/internal/cache"
	"macro-dashboard/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type stubSource struct {
	name         string
	latest       *domain.Observation
	series       domain.Series
	err          error
	latestCalls  int
	historyCalls int
}

func (s *stubSource) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubSource) FetchLatest(_ context.Context, id string) (*domain.Observation, error) {
	s.latestCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.latest, nil
}

func (s *stubSource) FetchHistory(_ context.Context, id string, _ time.Time) (domain.Series, error) {
	s.historyCalls++
	if s.err != nil {
		return domain.Series{ID: id}, s.err
	}
	return s.series, nil
}

type stubSentiment struct {
	reading *domain.SentimentReading
	err     error
	calls   int
}

func (s *stubSentiment) Name() string { return "stub-sentiment" }

func (s *stubSentiment) FetchLatest(context.Context) (*domain.SentimentReading, error) {
	s.calls++
	return s.reading, s.err
}

var day = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

func sampleSeries(id string) domain.Series {
	return domain.NewSeries(id, []domain.Observation{
		{Date: day, Value: 1, Valid: true},
		{Date: day.AddDate(0, 0, 1), Value: 2, Valid: true},
	})
}

func TestSeriesFetcher_FetchLatestAvailable(t *testing.T) {
	src := &stubSource{latest: &domain.Observation{Date: day, Value: 5.33, Valid: true}}
	f := New(testTracer, src, nil)

	r := f.FetchLatest(context.Background(), domain.SeriesFedFunds)
	if !r.Ok() || r.Value.Value != 5.33 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestSeriesFetcher_FetchLatestFailureIsAbsent(t *testing.T) {
	src := &stubSource{err: fmt.Errorf("fred: %w", domain.ErrNetwork)}
	f := New(testTracer, src, nil)

	r := f.FetchLatest(context.Background(), domain.SeriesFedFunds)
	if r.State != domain.Absent || !errors.Is(r.Reason, domain.ErrNetwork) {
		t.Fatalf("expected absent network result, got %+v", r)
	}
}

func TestSeriesFetcher_FetchLatestInvalidObservation(t *testing.T) {
	src := &stubSource{latest: &domain.Observation{Date: day}}
	f := New(testTracer, src, nil)

	r := f.FetchLatest(context.Background(), domain.SeriesFedFunds)
	if r.Ok() || !errors.Is(r.Reason, domain.ErrNoData) {
		t.Fatalf("expected no data, got %+v", r)
	}
}

func TestSeriesFetcher_FetchHistoryFailureCarriesEmptySeries(t *testing.T) {
	src := &stubSource{err: domain.ErrMissingCredential}
	f := New(testTracer, src, nil)

	r := f.FetchHistory(context.Background(), domain.SeriesTreasury10Y, day)
	if r.Ok() || !errors.Is(r.Reason, domain.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %+v", r)
	}
	if r.Value.ID != domain.SeriesTreasury10Y || !r.Value.Empty() {
		t.Fatalf("expected empty series, got %+v", r.Value)
	}
}

func TestSeriesFetcher_FetchHistoryEmptyIsNoData(t *testing.T) {
	src := &stubSource{series: domain.Series{ID: "X"}}
	f := New(testTracer, src, nil)

	r := f.FetchHistory(context.Background(), "X", day)
	if r.Ok() || !errors.Is(r.Reason, domain.ErrNoData) {
		t.Fatalf("expected no data, got %+v", r)
	}
}

func TestSeriesFetcher_FetchHistoryAvailable(t *testing.T) {
	src := &stubSource{series: sampleSeries("X")}
	f := New(testTracer, src, nil)

	r := f.FetchHistory(context.Background(), "X", day)
	if !r.Ok() || r.Value.Len() != 2 {
		t.Fatalf("unexpected result: %+v", r)
	}
}

func TestSentimentLookup(t *testing.T) {
	ok := NewSentimentLookup(testTracer, &stubSentiment{
		reading: &domain.SentimentReading{Score: 63, Source: "cnn-api"},
	}, nil)
	if r := ok.FetchSentiment(context.Background()); !r.Ok() || r.Value.Score != 63 {
		t.Fatalf("unexpected result: %+v", r)
	}

	failing := NewSentimentLookup(testTracer, &stubSentiment{err: domain.ErrMalformedPayload}, nil)
	if r := failing.FetchSentiment(context.Background()); r.Ok() || !errors.Is(r.Reason, domain.ErrMalformedPayload) {
		t.Fatalf("expected absent result, got %+v", r)
	}

	empty := NewSentimentLookup(testTracer, &stubSentiment{}, nil)
	if r := empty.FetchSentiment(context.Background()); r.Ok() || !errors.Is(r.Reason, domain.ErrNoData) {
		t.Fatalf("expected no data, got %+v", r)
	}
}

func TestFallback_UsesSecondaryWhenPrimaryFails(t *testing.T) {
	primary := &stubSource{name: "yahoo", err: domain.ErrNetwork}
	secondary := &stubSource{name: "alphavantage", series: sampleSeries("SPY")}
	fb := NewFallback(primary, secondary)

	got, err := fb.FetchHistory(context.Background(), "SPY", day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 2 || primary.historyCalls != 1 || secondary.historyCalls != 1 {
		t.Fatalf("unexpected fallback behaviour: %+v", got)
	}
	if fb.Name() != "yahoo" {
		t.Fatalf("expected primary name, got %q", fb.Name())
	}
}

func TestFallback_SkipsPrimaryOnSuccess(t *testing.T) {
	primary := &stubSource{latest: &domain.Observation{Date: day, Value: 1, Valid: true}}
	secondary := &stubSource{}
	fb := NewFallback(primary, secondary)

	if _, err := fb.FetchLatest(context.Background(), "X"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if secondary.latestCalls != 0 {
		t.Fatal("secondary should not be called")
	}
}

func TestFallback_ReportsRealFailureOverMissingCredential(t *testing.T) {
	fb := NewFallback(
		&stubSource{err: fmt.Errorf("yahoo: %w", domain.ErrMalformedPayload)},
		&stubSource{err: domain.ErrMissingCredential},
	)
	_, err := fb.FetchLatest(context.Background(), "X")
	if !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("expected malformed payload, got %v", err)
	}

	fb = NewFallback(&stubSource{err: domain.ErrMissingCredential})
	if _, err := fb.FetchHistory(context.Background(), "X", day); !errors.Is(err, domain.ErrMissingCredential) {
		t.Fatalf("expected missing credential, got %v", err)
	}
}

func TestCachedSource_ServesRepeatFromCache(t *testing.T) {
	src := &stubSource{
		latest: &domain.Observation{Date: day, Value: 4.2, Valid: true},
		series: sampleSeries("GS10"),
	}
	c := NewCachedSource(src, cache.NewMemoryStore(), time.Hour, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		obs, err := c.FetchLatest(ctx, "GS10")
		if err != nil || obs.Value != 4.2 || !obs.Date.Equal(day) {
			t.Fatalf("unexpected latest: %+v %v", obs, err)
		}
		series, err := c.FetchHistory(ctx, "GS10", day)
		if err != nil || series.Len() != 2 {
			t.Fatalf("unexpected history: %+v %v", series, err)
		}
	}
	if src.latestCalls != 1 || src.historyCalls != 1 {
		t.Fatalf("expected one upstream call each, got latest=%d history=%d", src.latestCalls, src.historyCalls)
	}
}

func TestCachedSource_KeysIncludeParameters(t *testing.T) {
	src := &stubSource{series: sampleSeries("GS10")}
	c := NewCachedSource(src, cache.NewMemoryStore(), time.Hour, nil)
	ctx := context.Background()

	_, _ = c.FetchHistory(ctx, "GS10", day)
	_, _ = c.FetchHistory(ctx, "GS10", day.AddDate(-1, 0, 0))
	_, _ = c.FetchHistory(ctx, "GS2", day)
	if src.historyCalls != 3 {
		t.Fatalf("expected 3 upstream calls, got %d", src.historyCalls)
	}
}

func TestCachedSource_DoesNotCacheFailures(t *testing.T) {
	src := &stubSource{err: domain.ErrNetwork}
	c := NewCachedSource(src, cache.NewMemoryStore(), time.Hour, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := c.FetchLatest(ctx, "X"); !errors.Is(err, domain.ErrNetwork) {
			t.Fatalf("expected network error, got %v", err)
		}
	}
	if src.latestCalls != 2 {
		t.Fatalf("expected failures to reach the source every time, got %d calls", src.latestCalls)
	}
}

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func (brokenStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("connection refused")
}

func TestCachedSource_StoreErrorsAreMisses(t *testing.T) {
	src := &stubSource{latest: &domain.Observation{Date: day, Value: 1, Valid: true}}
	c := NewCachedSource(src, brokenStore{}, time.Hour, nil)

	obs, err := c.FetchLatest(context.Background(), "X")
	if err != nil || obs.Value != 1 {
		t.Fatalf("unexpected result: %+v %v", obs, err)
	}
}

func TestCachedSentimentSource(t *testing.T) {
	src := &stubSentiment{reading: &domain.SentimentReading{Score: 40, Label: "fear", Source: "cnn-api"}}
	c := NewCachedSentimentSource(src, cache.NewMemoryStore(), 2*time.Hour, nil)

	for i := 0; i < 2; i++ {
		got, err := c.FetchLatest(context.Background())
		if err != nil || got.Score != 40 || got.Label != "fear" {
			t.Fatalf("unexpected reading: %+v %v", got, err)
		}
	}
	if src.calls != 1 {
		t.Fatalf("expected one upstream call, got %d", src.calls)
	}
}
