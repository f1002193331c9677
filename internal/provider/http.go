package provider

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"macro-dashboard/internal/domain"
)

// Browser-like agent; Yahoo and CNN reject the Go default.
const userAgent = "Mozilla/5.0 (compatible; macro-dashboard/1.0)"

// maxErrorBody caps how much of a failed response is kept in the error text.
const maxErrorBody = 512

// getBody issues a GET and returns the body of a 200 response. Transport
// failures and non-200 statuses are reported as domain.ErrNetwork.
func getBody(ctx context.Context, client *http.Client, url, accept string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrNetwork, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", domain.ErrNetwork, err)
	}
	return body, nil
}

// parseValue parses a provider value string. FRED uses "." for a missing value;
// NaN and infinities count as missing too.
func parseValue(v string) (float64, bool) {
	v = strings.TrimSpace(v)
	if v == "" || v == "." {
		return 0, false
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
