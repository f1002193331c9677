// Package metrics exposes Prometheus counters for upstream fetches, the
// payload cache and dashboard refreshes.
package metrics

import (
	"errors"
	"net/http"
	"time"

	"macro-dashboard/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "macro_dashboard"

// Fetch outcomes, one per absence reason plus ok.
const (
	OutcomeOK                = "ok"
	OutcomeMissingCredential = "missing_credential"
	OutcomeNetwork           = "network"
	OutcomeMalformed         = "malformed"
	OutcomeNoData            = "no_data"
	OutcomeOther             = "other"
)

// Recorder records service metrics. A nil *Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	fetches         *prometheus.CounterVec
	cacheLookups    *prometheus.CounterVec
	refreshDuration prometheus.Histogram
	compositeScore  prometheus.Gauge
}

// New registers the service metrics on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	auto := promauto.With(reg)

	return &Recorder{
		registry: reg,
		fetches: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_fetches_total",
			Help:      "Upstream data fetches by source, operation and outcome.",
		}, []string{"source", "operation", "outcome"}),
		cacheLookups: auto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Payload cache lookups by source and result.",
		}, []string{"source", "result"}),
		refreshDuration: auto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "refresh_duration_seconds",
			Help:      "Wall time of a full dashboard refresh.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 40},
		}),
		compositeScore: auto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "risk_composite_score",
			Help:      "Last computed risk-sentiment composite (0 risk-on, 100 risk-off).",
		}),
	}
}

// Outcome classifies a fetch error.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrMissingCredential):
		return OutcomeMissingCredential
	case errors.Is(err, domain.ErrMalformedPayload):
		return OutcomeMalformed
	case errors.Is(err, domain.ErrNoData):
		return OutcomeNoData
	case errors.Is(err, domain.ErrNetwork):
		return OutcomeNetwork
	default:
		return OutcomeOther
	}
}

func (r *Recorder) ObserveFetch(source, operation string, err error) {
	if r == nil {
		return
	}
	r.fetches.WithLabelValues(source, operation, Outcome(err)).Inc()
}

func (r *Recorder) ObserveCache(source string, hit bool) {
	if r == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.cacheLookups.WithLabelValues(source, result).Inc()
}

func (r *Recorder) ObserveRefresh(d time.Duration, score int) {
	if r == nil {
		return
	}
	r.refreshDuration.Observe(d.Seconds())
	r.compositeScore.Set(float64(score))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{})
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
