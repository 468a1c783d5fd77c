// Package aggregator turns YouTube channel and video records into analytics.
//
// This package enables tubelens to:
// - Summarize a channel's videos into KPIs and a Pareto view
// - Bucket uploads into a weekday × hour heatmap
// - Measure title/hashtag/emoji habits across a sample
// - Score channels for growth opportunity ("rising stars")
// - Classify a keyword's market as blue or red ocean
//
// Every function is pure. Callers pass the current instant explicitly where a
// result depends on it, so identical input always yields identical output.
package aggregator

import "time"

// VideoStats holds the public counters of a video. Counters the API omits are 0.
type VideoStats struct {
	Views    int64 `json:"views"`
	Likes    int64 `json:"likes"`
	Comments int64 `json:"comments"`
}

// VideoRecord is a fetched and normalized YouTube video.
type VideoRecord struct {
	VideoID     string     `json:"video_id"`
	ChannelID   string     `json:"channel_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags,omitempty"`
	PublishedAt time.Time  `json:"published_at"`
	DurationSec int64      `json:"duration_sec"`
	IsShort     bool       `json:"is_short"`
	Stats       VideoStats `json:"stats"`
}

// ChannelStats holds the public counters of a channel. Hidden subscriber
// counts and other omitted counters are 0.
type ChannelStats struct {
	Subscribers int64 `json:"subscribers"`
	Views       int64 `json:"views"`
	VideoCount  int64 `json:"video_count"`
}

// ChannelRecord is a fetched and normalized YouTube channel.
type ChannelRecord struct {
	ChannelID   string       `json:"channel_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Thumbnail   string       `json:"thumbnail,omitempty"`
	PublishedAt time.Time    `json:"published_at"`
	Stats       ChannelStats `json:"stats"`
}

// KPISummary aggregates counters over a video collection.
type KPISummary struct {
	TotalVideos       int     `json:"total_videos"`
	TotalViews        int64   `json:"total_views"`
	TotalLikes        int64   `json:"total_likes"`
	TotalComments     int64   `json:"total_comments"`
	AvgViews          int64   `json:"avg_views"`
	AvgLikes          int64   `json:"avg_likes"`
	AvgComments       int64   `json:"avg_comments"`
	AvgEngagementRate float64 `json:"avg_engagement_rate"`
	VideosLast28Days  int     `json:"videos_last_28_days"`
	ShortsCount       int     `json:"shorts_count"`
	LongFormCount     int     `json:"long_form_count"`
	ShortsRatio       float64 `json:"shorts_ratio"`
}

// ParetoResult is the top-N% of videos by views and the share of views they hold.
type ParetoResult struct {
	TopN           []VideoRecord `json:"top_n"`
	TopNViews      int64         `json:"top_n_views"`
	TotalViews     int64         `json:"total_views"`
	TopNPercentage float64       `json:"top_n_percentage"`
}

// HeatmapCell counts uploads for one weekday/hour pair. DayOfWeek follows
// time.Weekday (0 = Sunday).
type HeatmapCell struct {
	DayOfWeek int `json:"day_of_week"`
	Hour      int `json:"hour"`
	Count     int `json:"count"`
}

// MetaStats describes metadata habits across a video collection. Usage rates
// are percentages of videos, not occurrence counts.
type MetaStats struct {
	AvgDuration      float64 `json:"avg_duration"`
	AvgTitleLength   float64 `json:"avg_title_length"`
	EmojiUsageRate   float64 `json:"emoji_usage_rate"`
	HashtagUsageRate float64 `json:"hashtag_usage_rate"`
	TagsAvgCount     float64 `json:"tags_avg_count"`
}

// RisingSubScores are the five weighted inputs of the rising-star score, each in [0,100].
type RisingSubScores struct {
	ConversionEfficiency float64 `json:"conversion_efficiency"`
	ViewVelocity         float64 `json:"view_velocity"`
	Consistency          float64 `json:"consistency"`
	Recency              float64 `json:"recency"`
	FormatBalance        float64 `json:"format_balance"`
}

// RisingBreakdown groups the sub-scores into growth, efficiency and activity, each in [0,100].
type RisingBreakdown struct {
	Growth     float64 `json:"growth"`
	Efficiency float64 `json:"efficiency"`
	Activity   float64 `json:"activity"`
}

// RisingStarMetrics scores a channel's growth opportunity from a recent sample.
type RisingStarMetrics struct {
	Channel      ChannelRecord   `json:"channel"`
	Score        float64         `json:"score"`
	SubScores    RisingSubScores `json:"sub_scores"`
	Breakdown    RisingBreakdown `json:"breakdown"`
	RecentVideos []VideoRecord   `json:"recent_videos"`
}

// Verdict is the blue-ocean classification of a keyword.
type Verdict string

const (
	VerdictBlue Verdict = "BLUE"
	VerdictRed  Verdict = "RED"
)

// UploadActivity describes how often a keyword's sample is published to.
type UploadActivity struct {
	AvgUploadIntervalDays float64 `json:"avg_upload_interval_days"`
	LatestUploadDaysAgo   int     `json:"latest_upload_days_ago"`
}

// BlueOceanSignals reports which of the three opportunity signals fired.
type BlueOceanSignals struct {
	Distributed bool `json:"distributed"`
	Fragmented  bool `json:"fragmented"`
	Infrequent  bool `json:"infrequent"`
}

// Count returns how many signals fired.
func (s BlueOceanSignals) Count() int {
	n := 0
	for _, fired := range []bool{s.Distributed, s.Fragmented, s.Infrequent} {
		if fired {
			n++
		}
	}
	return n
}

// BlueOceanMetrics is the market-opportunity analysis of a keyword's video sample.
type BlueOceanMetrics struct {
	Query              string           `json:"query"`
	TopN               int              `json:"top_n"`
	ViewMean           float64          `json:"view_mean"`
	ViewMedian         float64          `json:"view_median"`
	ViewDistribution   float64          `json:"view_distribution"`
	ConcentrationRatio float64          `json:"concentration_ratio"`
	Activity           UploadActivity   `json:"activity"`
	Signals            BlueOceanSignals `json:"signals"`
	Verdict            Verdict          `json:"verdict"`
	Confidence         float64          `json:"confidence"`
}

// ChannelShare is one channel's presence in a keyword sample.
type ChannelShare struct {
	ChannelID  string  `json:"channel_id"`
	VideoCount int     `json:"video_count"`
	EstShare   float64 `json:"est_share"`
}

// FormatMix splits a sample into shorts and long-form fractions (0..1).
type FormatMix struct {
	ShortsPct float64 `json:"shorts_pct"`
	LongPct   float64 `json:"long_pct"`
}

// Competition is a coarse competition level derived from channel diversity.
type Competition string

const (
	CompetitionLow    Competition = "low"
	CompetitionMedium Competition = "medium"
	CompetitionHigh   Competition = "high"
)

// KeywordSummary describes who publishes for a keyword and in which format.
type KeywordSummary struct {
	Query       string         `json:"query"`
	CollectedAt time.Time      `json:"collected_at"`
	SampleSize  int            `json:"sample_size"`
	TopChannels []ChannelShare `json:"top_channels"`
	FormatMix   FormatMix      `json:"format_mix"`
	Competition Competition    `json:"competition"`
}

// GrowthPhase is the average performance of one chronological slice of a channel's videos.
type GrowthPhase struct {
	Name       string  `json:"name"`
	VideoCount int     `json:"video_count"`
	AvgViews   float64 `json:"avg_views"`
}
