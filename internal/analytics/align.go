package analytics

import (
	"sort"
	"time"

	"macro-dashboard/internal/domain"
)

// Align inner-joins the given series on calendar date. A date survives only if
// every series has a valid observation on it. Any empty input yields an empty
// frame; nothing is interpolated or carried forward.
func Align(series ...domain.Series) domain.AlignedFrame {
	frame := domain.AlignedFrame{
		Columns: make([]string, len(series)),
		Rows:    []domain.AlignedRow{},
	}
	for i, s := range series {
		frame.Columns[i] = s.ID
	}
	if len(series) == 0 {
		return frame
	}
	for _, s := range series {
		if s.Empty() {
			return frame
		}
	}

	// Index every series except the first; walk the first in date order.
	indexes := make([]map[time.Time]float64, len(series))
	for i, s := range series {
		idx := make(map[time.Time]float64, len(s.Points))
		for _, p := range s.Points {
			if p.Valid {
				idx[domain.Day(p.Date)] = p.Value
			}
		}
		indexes[i] = idx
	}

	for _, p := range series[0].Points {
		day := domain.Day(p.Date)
		values := make([]float64, len(series))
		complete := true
		for i, idx := range indexes {
			v, ok := idx[day]
			if !ok {
				complete = false
				break
			}
			values[i] = v
		}
		if complete {
			frame.Rows = append(frame.Rows, domain.AlignedRow{Date: day, Values: values})
		}
	}

	sort.Slice(frame.Rows, func(i, j int) bool { return frame.Rows[i].Date.Before(frame.Rows[j].Date) })
	return frame
}
