package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"macro-dashboard/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const yahooBaseURL = "https://query1.finance.yahoo.com"

// YahooProvider reads daily closes from the Yahoo Finance chart API.
type YahooProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	now     func() time.Time
}

func NewYahooProvider(tracer trace.Tracer) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: 15 * time.Second},
		baseURL: yahooBaseURL,
		tracer:  tracer,
		now:     time.Now,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				GMTOffset int64 `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchLatest returns the last daily close over the past five days.
func (p *YahooProvider) FetchLatest(ctx context.Context, ticker string) (*domain.Observation, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-latest")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker))

	params := url.Values{}
	params.Set("range", "5d")
	series, err := p.fetchChart(ctx, ticker, params)
	if err != nil {
		return nil, err
	}
	latest, ok := series.Latest()
	if !ok {
		return nil, fmt.Errorf("yahoo %s: %w", ticker, domain.ErrNoData)
	}
	return &latest, nil
}

// FetchHistory returns daily closes from start until now. A zero start
// requests the last six months.
func (p *YahooProvider) FetchHistory(ctx context.Context, ticker string, start time.Time) (domain.Series, error) {
	ctx, span := p.tracer.Start(ctx, "yahoo.fetch-history")
	defer span.End()
	span.SetAttributes(attribute.String("ticker", ticker))

	params := url.Values{}
	if start.IsZero() {
		params.Set("range", "6mo")
	} else {
		params.Set("period1", strconv.FormatInt(start.Unix(), 10))
		params.Set("period2", strconv.FormatInt(p.now().Unix(), 10))
	}

	series, err := p.fetchChart(ctx, ticker, params)
	if err != nil {
		return domain.Series{ID: ticker}, err
	}
	if series.Empty() {
		return series, fmt.Errorf("yahoo %s: %w", ticker, domain.ErrNoData)
	}
	return series, nil
}

func (p *YahooProvider) fetchChart(ctx context.Context, ticker string, params url.Values) (domain.Series, error) {
	params.Set("interval", "1d")
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s",
		strings.TrimRight(p.baseURL, "/"), url.PathEscape(ticker), params.Encode())

	body, err := getBody(ctx, p.client, endpoint, "application/json")
	if err != nil {
		return domain.Series{ID: ticker}, fmt.Errorf("yahoo %s: %w", ticker, err)
	}

	var payload yahooChartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Series{ID: ticker}, fmt.Errorf("yahoo %s: %w: %w", ticker, domain.ErrMalformedPayload, err)
	}
	if payload.Chart.Error != nil {
		return domain.Series{ID: ticker}, fmt.Errorf("yahoo %s: %w: %s %s", ticker, domain.ErrMalformedPayload,
			payload.Chart.Error.Code, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 {
		return domain.Series{ID: ticker}, fmt.Errorf("yahoo %s: %w: empty result", ticker, domain.ErrMalformedPayload)
	}

	result := payload.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return domain.Series{ID: ticker}, fmt.Errorf("yahoo %s: %w: no quote block", ticker, domain.ErrMalformedPayload)
	}
	closes := result.Indicators.Quote[0].Close
	// Bars are stamped at the exchange's local midnight or open; shift by the
	// exchange offset so the UTC calendar day is the trading day.
	offset := result.Meta.GMTOffset

	points := make([]domain.Observation, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, domain.Observation{
			Date:  time.Unix(ts+offset, 0).UTC(),
			Value: *closes[i],
			Valid: true,
		})
	}
	return domain.NewSeries(ticker, points), nil
}
