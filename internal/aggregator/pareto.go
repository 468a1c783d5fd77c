package aggregator

import (
	"math"
	"slices"
)

// DefaultParetoPercent is the share of top videos examined when none is given.
const DefaultParetoPercent = 20

// ComputePareto selects the top topNPercent of videos by views and reports the
// share of all views they capture. Ties keep their input order. Percentages
// at or below 0 select nothing; at or above 100 select everything.
func ComputePareto(videos []VideoRecord, topNPercent float64) ParetoResult {
	sorted := slices.Clone(videos)
	slices.SortStableFunc(sorted, func(a, b VideoRecord) int {
		switch {
		case a.Stats.Views > b.Stats.Views:
			return -1
		case a.Stats.Views < b.Stats.Views:
			return 1
		default:
			return 0
		}
	})

	count := paretoCount(len(videos), topNPercent)
	top := make([]VideoRecord, count)
	copy(top, sorted[:count])

	var result ParetoResult
	result.TopN = top
	for _, v := range top {
		result.TopNViews += v.Stats.Views
	}
	for _, v := range videos {
		result.TotalViews += v.Stats.Views
	}
	if result.TotalViews > 0 {
		result.TopNPercentage = float64(result.TopNViews) / float64(result.TotalViews) * 100
	}
	return result
}

func paretoCount(n int, topNPercent float64) int {
	if n == 0 || topNPercent <= 0 || math.IsNaN(topNPercent) {
		return 0
	}
	if topNPercent >= 100 {
		return n
	}
	count := int(math.Ceil(float64(n) * topNPercent / 100))
	return min(max(count, 0), n)
}
