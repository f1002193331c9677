package analytics

import "macro-dashboard/internal/domain"

// SpreadColumn is the name of the spread column added by YieldSpread.
const SpreadColumn = "spread_bps"

// BasisPoints converts a percentage-point difference to basis points.
func BasisPoints(pp float64) float64 {
	return pp * 100
}

// YieldSpread aligns the long and short tenors and appends the long-short
// spread in basis points to each row.
func YieldSpread(long, short domain.Series) domain.AlignedFrame {
	frame := Align(long, short)
	frame.Columns = append(frame.Columns, SpreadColumn)
	for i, row := range frame.Rows {
		frame.Rows[i].Values = append(row.Values, BasisPoints(row.Values[0]-row.Values[1]))
	}
	return frame
}

// LatestSpread returns the most recent spread in basis points from a frame
// built by YieldSpread.
func LatestSpread(frame domain.AlignedFrame) (float64, bool) {
	if frame.Empty() {
		return 0, false
	}
	last := frame.Rows[len(frame.Rows)-1]
	return last.Values[len(last.Values)-1], true
}
