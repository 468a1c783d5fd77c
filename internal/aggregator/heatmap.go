package aggregator

import "time"

const (
	DaysPerWeek  = 7
	HoursPerDay  = 24
	HeatmapCells = DaysPerWeek * HoursPerDay
)

// ComputeUploadHeatmap counts uploads per weekday and hour in the process-local
// time zone. The bucketing is not corrected for the channel's or
// viewer's zone; use ComputeUploadHeatmapIn to choose one.
func ComputeUploadHeatmap(videos []VideoRecord) []HeatmapCell {
	return ComputeUploadHeatmapIn(videos, time.Local)
}

// ComputeUploadHeatmapIn counts uploads per weekday and hour in loc. The result
// always holds 168 cells ordered by day (Sunday first) then hour. A nil loc
// means time.Local.
func ComputeUploadHeatmapIn(videos []VideoRecord, loc *time.Location) []HeatmapCell {
	if loc == nil {
		loc = time.Local
	}

	var grid [DaysPerWeek][HoursPerDay]int
	for _, v := range videos {
		t := v.PublishedAt.In(loc)
		grid[t.Weekday()][t.Hour()]++
	}

	cells := make([]HeatmapCell, 0, HeatmapCells)
	for day := range DaysPerWeek {
		for hour := range HoursPerDay {
			cells = append(cells, HeatmapCell{DayOfWeek: day, Hour: hour, Count: grid[day][hour]})
		}
	}
	return cells
}

// PeakUploadSlot returns the busiest cell, the earliest one on ties. It reports
// false when no cell has any uploads.
func PeakUploadSlot(cells []HeatmapCell) (HeatmapCell, bool) {
	var peak HeatmapCell
	found := false
	for _, c := range cells {
		if c.Count > peak.Count {
			peak = c
			found = true
		}
	}
	return peak, found
}
