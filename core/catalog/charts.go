package catalog

import (
	"sort"

	"beatwave/model"
)

// DefaultChartSize is the number of entries shown in the top charts view.
const DefaultChartSize = 5

// ChartScore weighs purchases, plays and likes into a single chart score.
func ChartScore(b model.Beat) float64 {
	return float64(b.Purchases)*10 + float64(b.Plays)*0.5 + float64(b.Likes)*2
}

// TopCharts returns at most limit beats ordered by ChartScore, highest first.
// Equal scores keep catalog order.
func TopCharts(beats []model.Beat, limit int) []model.Beat {
	if limit <= 0 {
		return []model.Beat{}
	}
	out := make([]model.Beat, len(beats))
	copy(out, beats)
	sort.SliceStable(out, func(i, j int) bool {
		return ChartScore(out[i]) > ChartScore(out[j])
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
