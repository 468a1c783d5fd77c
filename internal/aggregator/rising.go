package aggregator

import (
	"cmp"
	"math"
	"slices"
	"time"
)

// Rising-star weights. They sum to 1.
const (
	WeightConversionEfficiency = 0.35
	WeightViewVelocity         = 0.30
	WeightConsistency          = 0.20
	WeightRecency              = 0.10
	WeightFormatBalance        = 0.05
)

const (
	// VelocitySampleSize is how many of the newest videos feed view velocity.
	VelocitySampleSize = 10
	// RecentSampleSize is how many of the newest videos are kept on the result.
	RecentSampleSize = 5
	// DefaultRisingThreshold is the minimum score FilterRisingStars keeps by default.
	DefaultRisingThreshold = 50

	// viewsPerDayFullScore is the average daily views that earns a velocity of 100.
	viewsPerDayFullScore = 1000
)

// CalculateRisingScore scores a channel's growth opportunity from a sample of
// its videos as of now. The sample is ordered newest first before scoring, so
// callers may pass it in any order.
//
// A channel without videos scores 0 everywhere. Consistency needs at least two
// videos to measure an interval and is 0 otherwise.
func CalculateRisingScore(channel ChannelRecord, recentVideos []VideoRecord, now time.Time) RisingStarMetrics {
	sample := newestFirst(recentVideos)
	result := RisingStarMetrics{
		Channel:      channel,
		RecentVideos: sample[:min(RecentSampleSize, len(sample))],
	}
	if len(sample) == 0 {
		return result
	}

	sub := RisingSubScores{
		ConversionEfficiency: conversionEfficiency(channel.Stats.Subscribers, sample),
		ViewVelocity:         viewVelocity(sample, now),
		Consistency:          uploadConsistency(sample),
		Recency:              clamp(100-2*daysBetween(now, sample[0].PublishedAt), 0, 100),
		FormatBalance:        formatBalance(sample),
	}

	result.SubScores = sub
	result.Score = clamp(
		sub.ConversionEfficiency*WeightConversionEfficiency+
			sub.ViewVelocity*WeightViewVelocity+
			sub.Consistency*WeightConsistency+
			sub.Recency*WeightRecency+
			sub.FormatBalance*WeightFormatBalance,
		0, 100)
	result.Breakdown = RisingBreakdown{
		Growth:     sub.ViewVelocity,
		Efficiency: sub.ConversionEfficiency,
		Activity: (sub.Consistency*WeightConsistency + sub.Recency*WeightRecency) /
			(WeightConsistency + WeightRecency),
	}
	return result
}

// conversionEfficiency rewards channels that turn few views into many subscribers.
func conversionEfficiency(subscribers int64, videos []VideoRecord) float64 {
	var views int64
	for _, v := range videos {
		views += v.Stats.Views
	}
	raw := float64(max(subscribers, 0)) / math.Sqrt(float64(max(views, 1)))
	return clamp(raw*100, 0, 100)
}

// viewVelocity is the mean daily views of the newest videos, scaled to 0..100.
func viewVelocity(newest []VideoRecord, now time.Time) float64 {
	sample := newest[:min(VelocitySampleSize, len(newest))]
	var sum float64
	for _, v := range sample {
		days := math.Max(1, daysBetween(now, v.PublishedAt))
		sum += float64(v.Stats.Views) / days
	}
	avg := sum / float64(len(sample))
	return clamp(avg/viewsPerDayFullScore*100, 0, 100)
}

// uploadConsistency penalizes irregular gaps between uploads.
func uploadConsistency(newest []VideoRecord) float64 {
	if len(newest) < 2 {
		return 0
	}
	intervals := make([]float64, 0, len(newest)-1)
	for i := 1; i < len(newest); i++ {
		intervals = append(intervals, daysBetween(newest[i-1].PublishedAt, newest[i].PublishedAt))
	}
	return clamp(100-2*stddev(intervals), 0, 100)
}

// formatBalance rewards a mix of shorts and long-form.
func formatBalance(videos []VideoRecord) float64 {
	shorts := 0
	for _, v := range videos {
		if v.IsShort {
			shorts++
		}
	}
	r := float64(shorts) / float64(len(videos))
	if r >= 0.2 && r <= 0.8 {
		return 100
	}
	return 50
}

// stddev is the population standard deviation; 0 for an empty slice.
func stddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var mean float64
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	var sq float64
	for _, x := range xs {
		sq += (x - mean) * (x - mean)
	}
	return math.Sqrt(sq / float64(len(xs)))
}

func newestFirst(videos []VideoRecord) []VideoRecord {
	sorted := slices.Clone(videos)
	slices.SortStableFunc(sorted, func(a, b VideoRecord) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return sorted
}

// RisingSort selects the field SortRisingStars orders by.
type RisingSort string

const (
	SortByScore      RisingSort = "score"
	SortByGrowth     RisingSort = "growth"
	SortByEfficiency RisingSort = "efficiency"
	SortByActivity   RisingSort = "activity"
)

// SortRisingStars returns a copy of metrics ordered by the chosen field,
// highest first. Unknown fields sort by score.
func SortRisingStars(metrics []RisingStarMetrics, by RisingSort) []RisingStarMetrics {
	key := func(m RisingStarMetrics) float64 {
		switch by {
		case SortByGrowth:
			return m.Breakdown.Growth
		case SortByEfficiency:
			return m.Breakdown.Efficiency
		case SortByActivity:
			return m.Breakdown.Activity
		default:
			return m.Score
		}
	}

	sorted := slices.Clone(metrics)
	slices.SortStableFunc(sorted, func(a, b RisingStarMetrics) int {
		return cmp.Compare(key(b), key(a))
	})
	return sorted
}

// FilterRisingStars keeps the metrics scoring at least minScore.
func FilterRisingStars(metrics []RisingStarMetrics, minScore float64) []RisingStarMetrics {
	kept := make([]RisingStarMetrics, 0, len(metrics))
	for _, m := range metrics {
		if m.Score >= minScore {
			kept = append(kept, m)
		}
	}
	return kept
}
