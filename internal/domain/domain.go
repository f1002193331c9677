package domain

import (
	"errors"
	"time"
)

// Absence reasons. Providers wrap these with context; callers classify with errors.Is.
var (
	ErrMissingCredential = errors.New("missing API credential")
	ErrNetwork           = errors.New("network failure")
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrNoData            = errors.New("no data")
)

// FRED series codes used by the dashboard.
const (
	SeriesFedFunds      = "FEDFUNDS"
	SeriesCoreCPI       = "CPILFESL"
	SeriesPayrolls      = "PAYEMS"
	SeriesGDP           = "GDP"
	SeriesTreasury10Y   = "GS10"
	SeriesTreasury2Y    = "GS2"
	SeriesBalanceSheet  = "WALCL"
	SeriesMoneySupplyM2 = "M2SL"
)

// Yahoo Finance tickers used by the dashboard.
const (
	TickerEURUSD = "EURUSD=X"
	TickerUSDJPY = "JPY=X"
	TickerSPX    = "^GSPC"
	TickerVIX    = "^VIX"
	TickerGold   = "GC=F"
	TickerOil    = "CL=F"
)

// CoreMacroSeries lists the Level 1 headline metrics, in display order.
var CoreMacroSeries = []string{SeriesFedFunds, SeriesCoreCPI, SeriesPayrolls, SeriesGDP}

// CrossMarketTickers lists the FX and commodity tickers charted over three months.
var CrossMarketTickers = []string{TickerEURUSD, TickerUSDJPY, TickerGold, TickerOil}

// Supported history periods for price series.
var SupportedPeriods = []string{"1mo", "3mo", "6mo", "1y", "2y", "5y"}

// Availability is the state of a fetched value. The zero value means the value
// was never requested.
type Availability int

const (
	NotRequested Availability = iota
	Available
	Absent
)

func (a Availability) String() string {
	switch a {
	case Available:
		return "available"
	case Absent:
		return "absent"
	default:
		return "not_requested"
	}
}

// Result carries a value together with whether it is present.
type Result[T any] struct {
	Value  T
	State  Availability
	Reason error
}

func Some[T any](v T) Result[T] {
	return Result[T]{Value: v, State: Available}
}

// None returns an Absent result. A nil reason is recorded as ErrNoData.
func None[T any](reason error) Result[T] {
	if reason == nil {
		reason = ErrNoData
	}
	return Result[T]{State: Absent, Reason: reason}
}

func (r Result[T]) Ok() bool { return r.State == Available }

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.Value, r.State == Available
}

// Metric is the JSON shape of a single Level 1 headline value.
type Metric struct {
	ID        string    `json:"id"`
	Value     float64   `json:"value"`
	Date      time.Time `json:"date,omitzero"`
	Available bool      `json:"available"`
	Reason    string    `json:"reason,omitempty"`
}

// MetricFromResult renders an observation result as a Metric.
func MetricFromResult(id string, r Result[Observation]) Metric {
	m := Metric{ID: id, Available: r.Ok()}
	if r.Ok() {
		m.Value = r.Value.Value
		m.Date = r.Value.Date
	} else if r.Reason != nil {
		m.Reason = r.Reason.Error()
	}
	return m
}
