package aggregator

import (
	"cmp"
	"math"
	"slices"
	"time"
)

const (
	// DefaultBlueOceanTopN is the sample size used when topN is not positive.
	DefaultBlueOceanTopN = 50

	distributedThreshold  = 0.7
	fragmentedThreshold   = 0.5
	infrequentUploadDays  = 14
	concentrationChannels = 3
	minBlueSignals        = 2
	totalBlueSignals      = 3
)

// AnalyzeBlueOcean classifies a keyword's market from its first topN videos,
// which the caller orders by relevance. The market is BLUE when at least two of
// three signals fire: views are evenly spread, no three channels dominate, and
// uploads are infrequent. An empty sample is RED with zero confidence.
func AnalyzeBlueOcean(query string, videos []VideoRecord, topN int, now time.Time) BlueOceanMetrics {
	if len(videos) == 0 {
		return BlueOceanMetrics{Query: query, Verdict: VerdictRed}
	}
	if topN <= 0 {
		topN = DefaultBlueOceanTopN
	}
	sample := videos[:min(topN, len(videos))]

	views := make([]int64, 0, len(sample))
	var totalViews int64
	for _, v := range sample {
		views = append(views, v.Stats.Views)
		totalViews += v.Stats.Views
	}
	mean := float64(totalViews) / float64(len(views))
	median := medianOf(views)

	m := BlueOceanMetrics{
		Query:              query,
		TopN:               len(sample),
		ViewMean:           mean,
		ViewMedian:         median,
		ViewDistribution:   ratio(median, mean),
		ConcentrationRatio: concentrationRatio(sample, totalViews),
		Activity:           uploadActivity(sample, now),
	}

	m.Signals = BlueOceanSignals{
		Distributed: m.ViewDistribution > distributedThreshold,
		Fragmented:  m.ConcentrationRatio > fragmentedThreshold,
		Infrequent:  m.Activity.AvgUploadIntervalDays > infrequentUploadDays,
	}
	fired := m.Signals.Count()
	m.Verdict = VerdictRed
	if fired >= minBlueSignals {
		m.Verdict = VerdictBlue
	}
	m.Confidence = math.Round(float64(fired) / totalBlueSignals * 100)
	m.Activity.AvgUploadIntervalDays = math.Round(m.Activity.AvgUploadIntervalDays*10) / 10
	return m
}

// medianOf returns the true median, averaging the middle pair for even lengths.
func medianOf(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (float64(sorted[mid-1]) + float64(sorted[mid])) / 2
	}
	return float64(sorted[mid])
}

// concentrationRatio is 1 minus the view share of the three biggest channels;
// higher means a more fragmented market.
func concentrationRatio(sample []VideoRecord, totalViews int64) float64 {
	if totalViews <= 0 {
		return 0
	}

	perChannel := make(map[string]int64)
	for _, v := range sample {
		perChannel[v.ChannelID] += v.Stats.Views
	}
	sums := make([]int64, 0, len(perChannel))
	for _, s := range perChannel {
		sums = append(sums, s)
	}
	slices.SortFunc(sums, func(a, b int64) int { return cmp.Compare(b, a) })

	var top int64
	for _, s := range sums[:min(concentrationChannels, len(sums))] {
		top += s
	}
	return clamp(1-float64(top)/float64(totalViews), 0, 1)
}

// uploadActivity measures recency and the mean gap between consecutive uploads.
func uploadActivity(sample []VideoRecord, now time.Time) UploadActivity {
	dates := make([]time.Time, 0, len(sample))
	for _, v := range sample {
		dates = append(dates, v.PublishedAt)
	}
	slices.SortFunc(dates, func(a, b time.Time) int { return b.Compare(a) })

	var gaps float64
	for i := 0; i < len(dates)-1; i++ {
		gaps += daysBetween(dates[i], dates[i+1])
	}
	var avgInterval float64
	if len(dates) > 1 {
		avgInterval = gaps / float64(len(dates)-1)
	}

	return UploadActivity{
		AvgUploadIntervalDays: avgInterval,
		LatestUploadDaysAgo:   max(0, int(math.Floor(daysBetween(now, dates[0])))),
	}
}
