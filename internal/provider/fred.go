package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"macro-dashboard/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const fredBaseURL = "https://api.stlouisfed.org"

// FRED allows 120 requests per minute per key.
const fredRequestsPerMinute = 120

// FREDProvider reads macro series observations from the St. Louis Fed API.
type FREDProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

func NewFREDProvider(tracer trace.Tracer, apiKey string) *FREDProvider {
	return &FREDProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: fredBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
		limiter: PerMinute(fredRequestsPerMinute, 10),
	}
}

func (p *FREDProvider) Name() string { return "fred" }

type fredResponse struct {
	Observations []struct {
		Date  string `json:"date"`
		Value string `json:"value"`
	} `json:"observations"`
}

// FetchLatest returns the most recent observation of a series. A "." value is
// reported as domain.ErrNoData.
func (p *FREDProvider) FetchLatest(ctx context.Context, seriesID string) (*domain.Observation, error) {
	ctx, span := p.tracer.Start(ctx, "fred.fetch-latest")
	defer span.End()
	span.SetAttributes(attribute.String("series_id", seriesID))

	params := url.Values{}
	params.Set("limit", "1")
	params.Set("sort_order", "desc")

	obs, err := p.fetchObservations(ctx, seriesID, params)
	if err != nil {
		return nil, err
	}
	if len(obs) == 0 {
		return nil, fmt.Errorf("fred %s: %w", seriesID, domain.ErrNoData)
	}
	if !obs[0].Valid {
		return nil, fmt.Errorf("fred %s on %s: %w", seriesID, obs[0].Date.Format(time.DateOnly), domain.ErrNoData)
	}
	return &obs[0], nil
}

// FetchHistory returns observations from start (inclusive) in ascending order.
// A zero start returns the full history.
func (p *FREDProvider) FetchHistory(ctx context.Context, seriesID string, start time.Time) (domain.Series, error) {
	ctx, span := p.tracer.Start(ctx, "fred.fetch-history")
	defer span.End()
	span.SetAttributes(attribute.String("series_id", seriesID))

	params := url.Values{}
	params.Set("sort_order", "asc")
	if !start.IsZero() {
		params.Set("observation_start", start.Format(time.DateOnly))
	}

	obs, err := p.fetchObservations(ctx, seriesID, params)
	if err != nil {
		return domain.Series{ID: seriesID}, err
	}
	if len(obs) == 0 {
		return domain.Series{ID: seriesID}, fmt.Errorf("fred %s: %w", seriesID, domain.ErrNoData)
	}
	return domain.NewSeries(seriesID, obs), nil
}

func (p *FREDProvider) fetchObservations(ctx context.Context, seriesID string, params url.Values) ([]domain.Observation, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("fred %s: %w", seriesID, domain.ErrMissingCredential)
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("fred rate limit wait: %w: %w", domain.ErrNetwork, err)
	}

	params.Set("series_id", seriesID)
	params.Set("api_key", p.apiKey)
	params.Set("file_type", "json")
	endpoint := strings.TrimRight(p.baseURL, "/") + "/fred/series/observations?" + params.Encode()

	body, err := getBody(ctx, p.client, endpoint, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fred %s: %w", seriesID, redactKey(err, p.apiKey))
	}

	var payload fredResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("fred %s: %w: %w", seriesID, domain.ErrMalformedPayload, err)
	}

	out := make([]domain.Observation, 0, len(payload.Observations))
	for _, row := range payload.Observations {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("fred %s: %w: bad date %q", seriesID, domain.ErrMalformedPayload, row.Date)
		}
		value, ok := parseValue(row.Value)
		out = append(out, domain.Observation{Date: date, Value: value, Valid: ok})
	}
	return out, nil
}

// redactKey strips the API key from transport errors, which quote the URL.
func redactKey(err error, key string) error {
	if key == "" || !strings.Contains(err.Error(), key) {
		return err
	}
	return &redactedError{err: err, key: key}
}

type redactedError struct {
	err error
	key string
}

func (e *redactedError) Error() string {
	return strings.ReplaceAll(e.err.Error(), e.key, "REDACTED")
}

func (e *redactedError) Unwrap() error { return e.err }
