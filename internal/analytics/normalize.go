package analytics

import (
	"math"

	"macro-dashboard/internal/domain"

	"gonum.org/v1/gonum/floats"
)

// Range is an output interval for Normalize. Min may exceed Max to invert the
// mapping so that a higher input reads as a lower score.
type Range struct {
	Min float64
	Max float64
}

var (
	DefaultRange  = Range{Min: 0, Max: 100}
	InvertedRange = Range{Min: 100, Max: 0}
)

// Midpoint of the range.
func (r Range) Midpoint() float64 {
	return r.Min + (r.Max-r.Min)/2
}

// Normalize maps value from [domainMin, domainMax] onto r by linear
// interpolation. Out-of-domain values extrapolate; nothing is clamped. A
// zero-width domain maps every value to the midpoint of r.
func Normalize(value, domainMin, domainMax float64, r Range) float64 {
	if domainMin == domainMax {
		return r.Midpoint()
	}
	return r.Min + (value-domainMin)/(domainMax-domainMin)*(r.Max-r.Min)
}

// MinMax returns the smallest and largest valid values of s.
func MinMax(s domain.Series) (lo, hi float64, ok bool) {
	values := s.Values()
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}

// NormalizeInSeries normalizes value against the min/max observed in s.
func NormalizeInSeries(value float64, s domain.Series, r Range) domain.Result[float64] {
	if math.IsNaN(value) {
		return domain.None[float64](domain.ErrNoData)
	}
	lo, hi, ok := MinMax(s)
	if !ok {
		return domain.None[float64](domain.ErrNoData)
	}
	return domain.Some(Normalize(value, lo, hi, r))
}

// NormalizeLatest normalizes the most recent valid value of s against its own range.
func NormalizeLatest(s domain.Series, r Range) domain.Result[float64] {
	latest, ok := s.Latest()
	if !ok {
		return domain.None[float64](domain.ErrNoData)
	}
	return NormalizeInSeries(latest.Value, s, r)
}
