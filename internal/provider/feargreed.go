package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"macro-dashboard/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const (
	fearGreedAPIURL  = "https://production.dataviz.cnn.io/index/fearandgreed/graphdata"
	fearGreedPageURL = "https://edition.cnn.com/business/fear-and-greed"
)

const (
	SentimentSourceAPI  = "cnn-api"
	SentimentSourcePage = "cnn-page"
)

var fearGreedScorePattern = regexp.MustCompile(`(\d{1,3})\s*/\s*100`)

// FearGreedProvider reads the CNN Fear & Greed index. The JSON API is
// canonical; the public page is scraped when the API fails.
type FearGreedProvider struct {
	client  *http.Client
	apiURL  string
	pageURL string
	tracer  trace.Tracer
}

func NewFearGreedProvider(tracer trace.Tracer) *FearGreedProvider {
	return &FearGreedProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiURL:  fearGreedAPIURL,
		pageURL: fearGreedPageURL,
		tracer:  tracer,
	}
}

func (p *FearGreedProvider) Name() string { return "feargreed" }

// FetchLatest returns the current score, falling back to the HTML page.
func (p *FearGreedProvider) FetchLatest(ctx context.Context) (*domain.SentimentReading, error) {
	ctx, span := p.tracer.Start(ctx, "feargreed.fetch-latest")
	defer span.End()

	reading, apiErr := p.fetchAPI(ctx)
	if apiErr == nil {
		return reading, nil
	}
	if ctx.Err() != nil {
		return nil, apiErr
	}

	reading, pageErr := p.fetchPage(ctx)
	if pageErr == nil {
		return reading, nil
	}
	return nil, errors.Join(apiErr, pageErr)
}

func (p *FearGreedProvider) fetchAPI(ctx context.Context) (*domain.SentimentReading, error) {
	body, err := getBody(ctx, p.client, p.apiURL, "application/json")
	if err != nil {
		return nil, fmt.Errorf("fear & greed api: %w", err)
	}

	var payload struct {
		FearAndGreed *struct {
			Score     *float64 `json:"score"`
			Rating    string   `json:"rating"`
			Timestamp string   `json:"timestamp"`
		} `json:"fear_and_greed"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("fear & greed api: %w: %w", domain.ErrMalformedPayload, err)
	}
	if payload.FearAndGreed == nil || payload.FearAndGreed.Score == nil {
		return nil, fmt.Errorf("fear & greed api: %w: missing score", domain.ErrMalformedPayload)
	}

	score := *payload.FearAndGreed.Score
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, fmt.Errorf("fear & greed api: %w: score %v out of range", domain.ErrMalformedPayload, score)
	}

	reading := &domain.SentimentReading{
		Score:  int(score),
		Label:  strings.TrimSpace(payload.FearAndGreed.Rating),
		Source: SentimentSourceAPI,
	}
	if ts, err := time.Parse(time.RFC3339, strings.TrimSpace(payload.FearAndGreed.Timestamp)); err == nil {
		reading.Timestamp = ts.UTC()
	}
	return reading, nil
}

// fetchPage scrapes "NN / 100" from the public page. The markup changes often,
// so a miss is expected from time to time.
func (p *FearGreedProvider) fetchPage(ctx context.Context) (*domain.SentimentReading, error) {
	body, err := getBody(ctx, p.client, p.pageURL, "text/html")
	if err != nil {
		return nil, fmt.Errorf("fear & greed page: %w", err)
	}
	score, err := ParseFearGreedPage(string(body))
	if err != nil {
		return nil, fmt.Errorf("fear & greed page: %w", err)
	}
	return &domain.SentimentReading{Score: score, Source: SentimentSourcePage}, nil
}

// ParseFearGreedPage extracts the score from the Fear & Greed HTML page.
func ParseFearGreedPage(html string) (int, error) {
	if !strings.Contains(html, "Fear & Greed") && !strings.Contains(html, "Fear &amp; Greed") {
		return 0, fmt.Errorf("%w: page does not mention Fear & Greed", domain.ErrMalformedPayload)
	}
	m := fearGreedScorePattern.FindStringSubmatch(html)
	if m == nil {
		return 0, fmt.Errorf("%w: no score pattern", domain.ErrMalformedPayload)
	}
	score, err := strconv.Atoi(m[1])
	if err != nil || score > 100 {
		return 0, fmt.Errorf("%w: bad score %q", domain.ErrMalformedPayload, m[1])
	}
	return score, nil
}
