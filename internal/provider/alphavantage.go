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

const alphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantageProvider reads daily closes from Alpha Vantage. It backs up the
// Yahoo source and needs an API key.
type AlphaVantageProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

func NewAlphaVantageProvider(tracer trace.Tracer, apiKey string) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		client:  &http.Client{Timeout: 20 * time.Second},
		baseURL: alphaVantageBaseURL,
		apiKey:  strings.TrimSpace(apiKey),
		tracer:  tracer,
		// free tier: 5 requests per minute
		limiter: PerMinute(5, 5),
	}
}

func (p *AlphaVantageProvider) Name() string { return "alphavantage" }

type alphaVantageDailyResponse struct {
	TimeSeries   map[string]map[string]string `json:"Time Series (Daily)"`
	FXSeries     map[string]map[string]string `json:"Time Series FX (Daily)"`
	ErrorMessage string                       `json:"Error Message"`
	Note         string                       `json:"Note"`
	Information  string                       `json:"Information"`
}

// alphaVantageQuery is the request that serves one Yahoo ticker.
type alphaVantageQuery struct {
	function string
	params   url.Values
}

// alphaVantageIndexProxies maps Yahoo index tickers to a tracking ETF.
var alphaVantageIndexProxies = map[string]string{
	domain.TickerSPX: "SPY",
}

// queryFor translates a Yahoo ticker. FX pairs ("EURUSD=X", or "JPY=X" for
// USD/JPY) go to FX_DAILY, mapped indices to their ETF. Futures and other
// indices have no equivalent and report false.
func queryFor(ticker string) (alphaVantageQuery, bool) {
	if proxy, ok := alphaVantageIndexProxies[ticker]; ok {
		return alphaVantageQuery{function: "TIME_SERIES_DAILY", params: url.Values{"symbol": {proxy}}}, true
	}
	if pair, ok := strings.CutSuffix(ticker, "=X"); ok {
		var from, to string
		switch len(pair) {
		case 6:
			from, to = pair[:3], pair[3:]
		case 3:
			from, to = "USD", pair
		default:
			return alphaVantageQuery{}, false
		}
		return alphaVantageQuery{
			function: "FX_DAILY",
			params:   url.Values{"from_symbol": {from}, "to_symbol": {to}},
		}, true
	}
	if ticker == "" || strings.HasPrefix(ticker, "^") || strings.HasSuffix(ticker, "=F") {
		return alphaVantageQuery{}, false
	}
	return alphaVantageQuery{function: "TIME_SERIES_DAILY", params: url.Values{"symbol": {ticker}}}, true
}

func (p *AlphaVantageProvider) FetchLatest(ctx context.Context, symbol string) (*domain.Observation, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-latest")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	series, err := p.fetchDaily(ctx, symbol)
	if err != nil {
		return nil, err
	}
	latest, ok := series.Latest()
	if !ok {
		return nil, fmt.Errorf("alphavantage %s: %w", symbol, domain.ErrNoData)
	}
	return &latest, nil
}

// FetchHistory returns the compact (100 day) daily history trimmed to start.
func (p *AlphaVantageProvider) FetchHistory(ctx context.Context, symbol string, start time.Time) (domain.Series, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-history")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	series, err := p.fetchDaily(ctx, symbol)
	if err != nil {
		return domain.Series{ID: symbol}, err
	}
	if !start.IsZero() {
		from := domain.Day(start)
		kept := series.Points[:0]
		for _, pt := range series.Points {
			if !pt.Date.Before(from) {
				kept = append(kept, pt)
			}
		}
		series.Points = kept
	}
	if series.Empty() {
		return series, fmt.Errorf("alphavantage %s: %w", symbol, domain.ErrNoData)
	}
	return series, nil
}

func (p *AlphaVantageProvider) fetchDaily(ctx context.Context, symbol string) (domain.Series, error) {
	query, ok := queryFor(symbol)
	if !ok {
		return domain.Series{ID: symbol}, fmt.Errorf("alphavantage %s: no equivalent symbol: %w", symbol, domain.ErrNoData)
	}
	if p.apiKey == "" {
		return domain.Series{ID: symbol}, fmt.Errorf("alphavantage %s: %w", symbol, domain.ErrMissingCredential)
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return domain.Series{ID: symbol}, fmt.Errorf("alphavantage rate limit wait: %w: %w", domain.ErrNetwork, err)
	}

	params := query.params
	params.Set("function", query.function)
	params.Set("outputsize", "compact")
	params.Set("apikey", p.apiKey)
	endpoint := strings.TrimRight(p.baseURL, "/") + "/query?" + params.Encode()

	body, err := getBody(ctx, p.client, endpoint, "application/json")
	if err != nil {
		return domain.Series{ID: symbol}, fmt.Errorf("alphavantage %s: %w", symbol, redactKey(err, p.apiKey))
	}

	var payload alphaVantageDailyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Series{ID: symbol}, fmt.Errorf("alphavantage %s: %w: %w", symbol, domain.ErrMalformedPayload, err)
	}
	if msg := firstNonEmpty(payload.ErrorMessage, payload.Note, payload.Information); msg != "" {
		return domain.Series{ID: symbol}, fmt.Errorf("alphavantage %s: %w: %s", symbol, domain.ErrMalformedPayload, msg)
	}

	bars := payload.TimeSeries
	if query.function == "FX_DAILY" {
		bars = payload.FXSeries
	}
	points := make([]domain.Observation, 0, len(bars))
	for day, bar := range bars {
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			continue
		}
		value, ok := parseValue(bar["4. close"])
		points = append(points, domain.Observation{Date: date, Value: value, Valid: ok})
	}
	return domain.NewSeries(symbol, points), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
