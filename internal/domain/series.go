package domain

import (
	"sort"
	"time"
)

// Observation is a single dated value. Valid is false when the provider listed
// the date without a usable value (FRED reports these as ".").
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
	Valid bool      `json:"valid"`
}

// Series is an ordered run of observations with strictly increasing dates.
// Build one with NewSeries.
type Series struct {
	ID     string        `json:"id"`
	Points []Observation `json:"points"`
}

// Day truncates t to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewSeries normalizes points to calendar days, sorts them and keeps the last
// observation seen for a repeated date.
func NewSeries(id string, points []Observation) Series {
	byDay := make(map[time.Time]Observation, len(points))
	for _, p := range points {
		p.Date = Day(p.Date)
		byDay[p.Date] = p
	}

	out := make([]Observation, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	return Series{ID: id, Points: out}
}

func (s Series) Len() int { return len(s.Points) }

func (s Series) Empty() bool { return len(s.Points) == 0 }

// Values returns the valid values in date order.
func (s Series) Values() []float64 {
	out := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Valid {
			out = append(out, p.Value)
		}
	}
	return out
}

// Latest returns the most recent valid observation.
func (s Series) Latest() (Observation, bool) {
	for i := len(s.Points) - 1; i >= 0; i-- {
		if s.Points[i].Valid {
			return s.Points[i], true
		}
	}
	return Observation{}, false
}

// Lookup returns the observation on the given calendar day.
func (s Series) Lookup(day time.Time) (Observation, bool) {
	day = Day(day)
	i := sort.Search(len(s.Points), func(i int) bool { return !s.Points[i].Date.Before(day) })
	if i < len(s.Points) && s.Points[i].Date.Equal(day) {
		return s.Points[i], true
	}
	return Observation{}, false
}

// PeriodStart converts a history period such as "3mo" or "1y" into the start
// date relative to now.
func PeriodStart(period string, now time.Time) (time.Time, bool) {
	var start time.Time
	switch period {
	case "1mo":
		start = now.AddDate(0, -1, 0)
	case "3mo":
		start = now.AddDate(0, -3, 0)
	case "6mo":
		start = now.AddDate(0, -6, 0)
	case "1y":
		start = now.AddDate(-1, 0, 0)
	case "2y":
		start = now.AddDate(-2, 0, 0)
	case "5y":
		start = now.AddDate(-5, 0, 0)
	default:
		return time.Time{}, false
	}
	return Day(start), true
}
