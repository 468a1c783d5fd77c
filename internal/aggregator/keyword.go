package aggregator

import (
	"cmp"
	"slices"
	"time"
)

// MaxTopChannels bounds KeywordSummary.TopChannels.
const MaxTopChannels = 10

// SummarizeKeyword reports which channels publish for a keyword and in which
// format, as collected at now.
func SummarizeKeyword(query string, videos []VideoRecord, now time.Time) KeywordSummary {
	summary := KeywordSummary{
		Query:       query,
		CollectedAt: now,
		SampleSize:  len(videos),
		TopChannels: []ChannelShare{},
		Competition: CompetitionLow,
	}
	if len(videos) == 0 {
		return summary
	}

	counts := make(map[string]int)
	var order []string
	shorts := 0
	for _, v := range videos {
		if _, seen := counts[v.ChannelID]; !seen {
			order = append(order, v.ChannelID)
		}
		counts[v.ChannelID]++
		if v.IsShort {
			shorts++
		}
	}

	n := float64(len(videos))
	shares := make([]ChannelShare, 0, len(order))
	for _, id := range order {
		shares = append(shares, ChannelShare{
			ChannelID:  id,
			VideoCount: counts[id],
			EstShare:   float64(counts[id]) / n,
		})
	}
	slices.SortStableFunc(shares, func(a, b ChannelShare) int {
		return cmp.Compare(b.VideoCount, a.VideoCount)
	})

	summary.TopChannels = shares[:min(MaxTopChannels, len(shares))]
	summary.FormatMix = FormatMix{
		ShortsPct: float64(shorts) / n,
		LongPct:   float64(len(videos)-shorts) / n,
	}
	summary.Competition = competitionFor(len(summary.TopChannels))
	return summary
}

func competitionFor(channels int) Competition {
	switch {
	case channels < 5:
		return CompetitionLow
	case channels < 10:
		return CompetitionMedium
	default:
		return CompetitionHigh
	}
}

// ComputeGrowthPhases splits videos chronologically into Early, Mid and Recent
// thirds and averages their views. Remainders go to the Recent phase.
func ComputeGrowthPhases(videos []VideoRecord) []GrowthPhase {
	sorted := slices.Clone(videos)
	slices.SortStableFunc(sorted, func(a, b VideoRecord) int {
		return a.PublishedAt.Compare(b.PublishedAt)
	})

	third := len(sorted) / 3
	parts := [][]VideoRecord{sorted[:third], sorted[third : 2*third], sorted[2*third:]}
	names := []string{"Early", "Mid", "Recent"}

	phases := make([]GrowthPhase, 0, len(names))
	for i, part := range parts {
		var views int64
		for _, v := range part {
			views += v.Stats.Views
		}
		phases = append(phases, GrowthPhase{
			Name:       names[i],
			VideoCount: len(part),
			AvgViews:   ratio(float64(views), float64(len(part))),
		})
	}
	return phases
}

// ComputeHealthScore rates a channel's content health from 0 to 100 based on
// catalogue size, format balance and engagement. An empty collection scores 0.
func ComputeHealthScore(videos []VideoRecord) int {
	if len(videos) == 0 {
		return 0
	}

	score := 50
	switch {
	case len(videos) > 50:
		score += 15
	case len(videos) > 20:
		score += 10
	default:
		score += 5
	}

	kpi := ComputeKPIs(videos, time.Time{})
	if kpi.ShortsRatio > 20 && kpi.ShortsRatio < 80 {
		score += 15
	} else {
		score += 5
	}

	switch {
	case kpi.AvgEngagementRate > 3:
		score += 20
	case kpi.AvgEngagementRate > 2:
		score += 10
	}

	return min(score, 100)
}
