package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"macro-dashboard/internal/domain"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOutcome(t *testing.T) {
	cases := map[string]error{
		OutcomeOK:                nil,
		OutcomeMissingCredential: fmt.Errorf("fred GDP: %w", domain.ErrMissingCredential),
		OutcomeNetwork:           fmt.Errorf("%w: status 500", domain.ErrNetwork),
		OutcomeMalformed:         fmt.Errorf("%w: bad json", domain.ErrMalformedPayload),
		OutcomeNoData:            domain.ErrNoData,
		OutcomeOther:             errors.New("boom"),
	}
	for want, err := range cases {
		if got := Outcome(err); got != want {
			t.Fatalf("Outcome(%v) = %s, want %s", err, got, want)
		}
	}
}

func TestRecorderCounts(t *testing.T) {
	r := New()
	r.ObserveFetch("fred", "latest", nil)
	r.ObserveFetch("fred", "latest", domain.ErrNoData)
	r.ObserveFetch("fred", "latest", nil)
	r.ObserveCache("yahoo", true)
	r.ObserveRefresh(250*time.Millisecond, 62)

	if got := testutil.ToFloat64(r.fetches.WithLabelValues("fred", "latest", OutcomeOK)); got != 2 {
		t.Fatalf("expected 2 ok fetches, got %v", got)
	}
	if got := testutil.ToFloat64(r.cacheLookups.WithLabelValues("yahoo", "hit")); got != 1 {
		t.Fatalf("expected 1 cache hit, got %v", got)
	}
	if got := testutil.ToFloat64(r.compositeScore); got != 62 {
		t.Fatalf("expected composite gauge 62, got %v", got)
	}
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder
	r.ObserveFetch("fred", "latest", nil)
	r.ObserveCache("fred", false)
	r.ObserveRefresh(time.Second, 50)
	if r.Handler() == nil {
		t.Fatal("expected a handler")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	r := New()
	r.ObserveFetch("yahoo", "history", domain.ErrNetwork)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), `macro_dashboard_upstream_fetches_total{operation="history",outcome="network",source="yahoo"} 1`) {
		t.Fatalf("metric not exposed:\n%s", body)
	}
}
