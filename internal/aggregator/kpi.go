package aggregator

import (
	"math"
	"time"
)

// RecentWindow is the look-back window for VideosLast28Days.
const RecentWindow = 28 * 24 * time.Hour

// ComputeKPIs summarizes a video collection as of now. An empty collection
// yields a zero summary.
func ComputeKPIs(videos []VideoRecord, now time.Time) KPISummary {
	if len(videos) == 0 {
		return KPISummary{}
	}

	cutoff := now.Add(-RecentWindow)
	var kpi KPISummary
	var engagementSum float64

	for _, v := range videos {
		kpi.TotalViews += v.Stats.Views
		kpi.TotalLikes += v.Stats.Likes
		kpi.TotalComments += v.Stats.Comments
		engagementSum += engagementRate(v.Stats)

		if !v.PublishedAt.Before(cutoff) {
			kpi.VideosLast28Days++
		}
		if v.IsShort {
			kpi.ShortsCount++
		} else {
			kpi.LongFormCount++
		}
	}

	n := float64(len(videos))
	kpi.TotalVideos = len(videos)
	kpi.AvgViews = int64(math.Round(float64(kpi.TotalViews) / n))
	kpi.AvgLikes = int64(math.Round(float64(kpi.TotalLikes) / n))
	kpi.AvgComments = int64(math.Round(float64(kpi.TotalComments) / n))
	kpi.AvgEngagementRate = engagementSum / n
	kpi.ShortsRatio = float64(kpi.ShortsCount) / n * 100

	return kpi
}

// engagementRate is (likes+comments)/views as a percentage; 0 for unviewed videos.
func engagementRate(s VideoStats) float64 {
	if s.Views <= 0 {
		return 0
	}
	return float64(s.Likes+s.Comments) / float64(s.Views) * 100
}
