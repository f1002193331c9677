package provider

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"macro-dashboard/internal/domain"
)

func newTestFearGreed(fn roundTripFunc) *FearGreedProvider {
	p := NewFearGreedProvider(testTracer)
	p.apiURL = "https://api.example.com/graphdata"
	p.pageURL = "https://www.example.com/fear-and-greed"
	p.client = stubClient(fn)
	return p
}

func TestFearGreedFetchLatestFromAPI(t *testing.T) {
	p := newTestFearGreed(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host != "api.example.com" {
			t.Fatalf("unexpected host: %s", req.URL.Host)
		}
		body := `{"fear_and_greed":{"score":63.8,"rating":"greed","timestamp":"2024-05-01T23:59:56+00:00"}}`
		return jsonResponse(http.StatusOK, body), nil
	})

	reading, err := p.FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Score != 63 || reading.Label != "greed" || reading.Source != SentimentSourceAPI {
		t.Fatalf("unexpected reading: %+v", reading)
	}
	if !reading.Timestamp.Equal(time.Date(2024, 5, 1, 23, 59, 56, 0, time.UTC)) {
		t.Fatalf("unexpected timestamp: %v", reading.Timestamp)
	}
}

func TestFearGreedFallsBackToPage(t *testing.T) {
	p := newTestFearGreed(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "api.example.com" {
			return jsonResponse(http.StatusTeapot, "blocked"), nil
		}
		return jsonResponse(http.StatusOK, `<h1>Fear &amp; Greed Index</h1><span>41 / 100</span>`), nil
	})

	reading, err := p.FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reading.Score != 41 || reading.Source != SentimentSourcePage || reading.Label != "" {
		t.Fatalf("unexpected reading: %+v", reading)
	}
}

func TestFearGreedBothPathsFail(t *testing.T) {
	p := newTestFearGreed(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "api.example.com" {
			return jsonResponse(http.StatusOK, `{"fear_and_greed":{}}`), nil
		}
		return jsonResponse(http.StatusOK, `<html>nothing here</html>`), nil
	})

	if _, err := p.FetchLatest(context.Background()); !errors.Is(err, domain.ErrMalformedPayload) {
		t.Fatalf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestFearGreedRejectsOutOfRangeScore(t *testing.T) {
	p := newTestFearGreed(func(req *http.Request) (*http.Response, error) {
		if req.URL.Host == "api.example.com" {
			return jsonResponse(http.StatusOK, `{"fear_and_greed":{"score":180}}`), nil
		}
		return nil, errors.New("offline")
	})

	_, err := p.FetchLatest(context.Background())
	if !errors.Is(err, domain.ErrMalformedPayload) || !errors.Is(err, domain.ErrNetwork) {
		t.Fatalf("expected both failure reasons, got %v", err)
	}
}

func TestParseFearGreedPage(t *testing.T) {
	cases := []struct {
		html    string
		want    int
		wantErr bool
	}{
		{"Fear & Greed Index 63 / 100", 63, false},
		{"Fear & Greed Index 7/100", 7, false},
		{"Fear & Greed Index 100 /  100", 100, false},
		{"63 / 100 without the title", 0, true},
		{"Fear & Greed Index unavailable", 0, true},
		{"Fear & Greed Index 250 / 100", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseFearGreedPage(tc.html)
		if (err != nil) != tc.wantErr {
			t.Fatalf("%q: unexpected error state: %v", tc.html, err)
		}
		if !tc.wantErr && got != tc.want {
			t.Fatalf("%q: expected %d, got %d", tc.html, tc.want, got)
		}
	}
}
