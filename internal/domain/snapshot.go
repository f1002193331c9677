package domain

import "time"

// SentimentReading is a single fear & greed score.
type SentimentReading struct {
	Score     int       `json:"score"`
	Label     string    `json:"label,omitempty"`
	Source    string    `json:"source"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// AlignedRow holds one value per input series for a date present in all of them.
type AlignedRow struct {
	Date   time.Time `json:"date"`
	Values []float64 `json:"values"`
}

// AlignedFrame is the inner join of several series on date.
type AlignedFrame struct {
	Columns []string     `json:"columns"`
	Rows    []AlignedRow `json:"rows"`
}

func (f AlignedFrame) Empty() bool { return len(f.Rows) == 0 }

// Column returns the values of the named column, in date order.
func (f AlignedFrame) Column(name string) ([]float64, bool) {
	idx := -1
	for i, c := range f.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false
	}
	out := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row.Values[idx]
	}
	return out, true
}

// SeriesView is the JSON shape of a charted series.
type SeriesView struct {
	ID        string        `json:"id"`
	Available bool          `json:"available"`
	Reason    string        `json:"reason,omitempty"`
	Latest    *Observation  `json:"latest,omitempty"`
	Points    []Observation `json:"points"`
}

// SeriesViewFromResult renders a series result for the presentation layer.
func SeriesViewFromResult(id string, r Result[Series]) SeriesView {
	v := SeriesView{ID: id, Available: r.Ok(), Points: []Observation{}}
	if !r.Ok() {
		if r.Reason != nil {
			v.Reason = r.Reason.Error()
		}
		return v
	}
	v.Points = r.Value.Points
	if latest, ok := r.Value.Latest(); ok {
		v.Latest = &latest
	}
	return v
}

// YieldCurve holds the aligned 10Y/2Y history and the spread in basis points.
type YieldCurve struct {
	Available bool         `json:"available"`
	Reason    string       `json:"reason,omitempty"`
	Frame     AlignedFrame `json:"frame"`
}

// FactorView reports one composite input.
type FactorView struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	Value     float64 `json:"value"`
	Available bool    `json:"available"`
}

// CompositeView is the risk-sentiment composite with its inputs.
// 0 is extreme risk-on, 100 extreme risk-off.
type CompositeView struct {
	Score   int          `json:"score"`
	Factors []FactorView `json:"factors"`
}

// SentimentView reports the fear & greed lookup.
type SentimentView struct {
	Available bool              `json:"available"`
	Reason    string            `json:"reason,omitempty"`
	Reading   *SentimentReading `json:"reading,omitempty"`
}

// SentimentViewFromResult renders a sentiment result.
func SentimentViewFromResult(r Result[SentimentReading]) SentimentView {
	v := SentimentView{Available: r.Ok()}
	if r.Ok() {
		reading := r.Value
		v.Reading = &reading
	} else if r.Reason != nil {
		v.Reason = r.Reason.Error()
	}
	return v
}

// Snapshot is the output of one dashboard refresh.
type Snapshot struct {
	GeneratedAt time.Time `json:"generated_at"`

	CoreMacro []Metric `json:"core_macro"`

	Yields      YieldCurve   `json:"yields"`
	CrossMarket []SeriesView `json:"cross_market"`
	Equities    SeriesView   `json:"equities"`
	Volatility  SeriesView   `json:"volatility"`

	BalanceSheet SeriesView    `json:"balance_sheet"`
	MoneySupply  SeriesView    `json:"money_supply"`
	Sentiment    SentimentView `json:"sentiment"`

	Composite CompositeView `json:"composite"`
}
