package composite

import (
	"math"

	"macro-dashboard/internal/analytics"
	"macro-dashboard/internal/domain"
)

// Fixed blend weights. They sum to 1.
const (
	WeightVIX    = 0.4
	WeightSpread = 0.4
	WeightFX     = 0.2
)

// Neutral stands in for any factor that could not be computed.
const Neutral = 50.0

// Literal spread domain in basis points, mapped onto InvertedRange.
const (
	SpreadDomainMinBps = -200.0
	SpreadDomainMaxBps = 200.0
)

const (
	FactorVIX    = "vix"
	FactorSpread = "yield_spread"
	FactorFX     = "fx"
)

type Factor struct {
	Value     float64
	Available bool
}

func Available(v float64) Factor { return Factor{Value: v, Available: true} }

func Missing() Factor { return Factor{} }

// FromResult converts a normalized result into a Factor.
func FromResult(r domain.Result[float64]) Factor {
	v, ok := r.Get()
	if !ok {
		return Missing()
	}
	return Available(v)
}

func (f Factor) valueOrNeutral() float64 {
	if !f.Available || math.IsNaN(f.Value) {
		return Neutral
	}
	return f.Value
}

// Score blends the three normalized factors into the risk-sentiment composite:
// 0 is extreme risk-on, 100 extreme risk-off. Missing factors count as
// Neutral. The weighted sum is clamped to [0,100] and truncated.
func Score(vix, spread, fx Factor) int {
	sum := vix.valueOrNeutral()*WeightVIX +
		spread.valueOrNeutral()*WeightSpread +
		fx.valueOrNeutral()*WeightFX
	return int(clamp(sum, 0, 100))
}

// VIXFactor places the latest VIX close within its own observed range.
func VIXFactor(vix domain.Series) Factor {
	return FromResult(analytics.NormalizeLatest(vix, analytics.DefaultRange))
}

// SpreadFactor maps a 10Y-2Y spread in basis points over the fixed
// [-200, 200] domain, inverted so a wider positive spread scores lower.
func SpreadFactor(spreadBps float64) Factor {
	if math.IsNaN(spreadBps) {
		return Missing()
	}
	return Available(analytics.Normalize(spreadBps, SpreadDomainMinBps, SpreadDomainMaxBps, analytics.InvertedRange))
}

// SpreadFactorFromFrame uses the latest row of a frame built by analytics.YieldSpread.
func SpreadFactorFromFrame(frame domain.AlignedFrame) Factor {
	bps, ok := analytics.LatestSpread(frame)
	if !ok {
		return Missing()
	}
	return SpreadFactor(bps)
}

// FXFactor places the latest EUR/USD close within its own range, inverted so a
// weaker euro reads as more risk-off.
func FXFactor(eurusd domain.Series) Factor {
	return FromResult(analytics.NormalizeLatest(eurusd, analytics.InvertedRange))
}

// View renders the composite and its inputs.
func View(vix, spread, fx Factor) domain.CompositeView {
	return domain.CompositeView{
		Score: Score(vix, spread, fx),
		Factors: []domain.FactorView{
			factorView(FactorVIX, WeightVIX, vix),
			factorView(FactorSpread, WeightSpread, spread),
			factorView(FactorFX, WeightFX, fx),
		},
	}
}

func factorView(name string, weight float64, f Factor) domain.FactorView {
	return domain.FactorView{
		Name:      name,
		Weight:    weight,
		Value:     f.valueOrNeutral(),
		Available: f.Available && !math.IsNaN(f.Value),
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return Neutral
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
