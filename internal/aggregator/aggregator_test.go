package aggregator

import (
	"math"
	"testing"
	"time"
)

var now = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func daysAgo(d float64) time.Time {
	return now.Add(-time.Duration(d * float64(24*time.Hour)))
}

func videosWithViews(views ...int64) []VideoRecord {
	videos := make([]VideoRecord, 0, len(views))
	for i, v := range views {
		videos = append(videos, VideoRecord{
			VideoID:     string(rune('a' + i)),
			ChannelID:   "UC1",
			PublishedAt: daysAgo(float64(i)),
			DurationSec: 600,
			Stats:       VideoStats{Views: v},
		})
	}
	return videos
}

func TestAC100_KPIs_SumsAndAveragesViews(t *testing.T) {
	kpi := ComputeKPIs(videosWithViews(100, 200, 300, 400, 1000), now)

	if kpi.TotalViews != 2000 {
		t.Errorf("user should see total views 2000, got %d", kpi.TotalViews)
	}
	if kpi.AvgViews != 400 {
		t.Errorf("user should see average views 400, got %d", kpi.AvgViews)
	}
	if kpi.TotalVideos != 5 {
		t.Errorf("user should see 5 videos counted, got %d", kpi.TotalVideos)
	}
}

func TestAC100_KPIs_RoundsAveragesToNearestInteger(t *testing.T) {
	videos := videosWithViews(1, 2)
	videos[0].Stats.Likes = 1
	videos[1].Stats.Likes = 0

	kpi := ComputeKPIs(videos, now)

	if kpi.AvgViews != 2 {
		t.Errorf("average of 1.5 views should round to 2, got %d", kpi.AvgViews)
	}
	if kpi.AvgLikes != 1 {
		t.Errorf("average of 0.5 likes should round to 1, got %d", kpi.AvgLikes)
	}
}

func TestAC101_KPIs_EmptyCollectionIsAllZero(t *testing.T) {
	kpi := ComputeKPIs(nil, now)

	if kpi != (KPISummary{}) {
		t.Errorf("user with no videos should see zero KPIs, got %+v", kpi)
	}
}

func TestAC102_KPIs_EngagementIgnoresUnviewedVideos(t *testing.T) {
	videos := []VideoRecord{
		{Stats: VideoStats{Views: 100, Likes: 8, Comments: 2}},
		{Stats: VideoStats{Views: 0, Likes: 5, Comments: 5}},
	}

	kpi := ComputeKPIs(videos, now)

	// (10% + 0%) / 2
	if !almostEqual(kpi.AvgEngagementRate, 5, 1e-9) {
		t.Errorf("unviewed videos should count as 0%% engagement, got %.4f", kpi.AvgEngagementRate)
	}
	if math.IsNaN(kpi.AvgEngagementRate) || math.IsInf(kpi.AvgEngagementRate, 0) {
		t.Error("engagement must stay finite when a video has no views")
	}
}

func TestAC103_KPIs_CountsVideosInLast28Days(t *testing.T) {
	videos := []VideoRecord{
		{PublishedAt: now.Add(-time.Hour)},
		{PublishedAt: now.Add(-RecentWindow)},
		{PublishedAt: now.Add(-RecentWindow - time.Second)},
		{PublishedAt: daysAgo(90)},
	}

	kpi := ComputeKPIs(videos, now)

	if kpi.VideosLast28Days != 2 {
		t.Errorf("user should see 2 videos within the 28-day window, got %d", kpi.VideosLast28Days)
	}
}

func TestAC104_KPIs_PartitionsShortsAndLongForm(t *testing.T) {
	videos := []VideoRecord{
		{IsShort: true}, {IsShort: true}, {IsShort: false}, {IsShort: false}, {IsShort: false},
	}

	kpi := ComputeKPIs(videos, now)

	if kpi.ShortsCount+kpi.LongFormCount != kpi.TotalVideos {
		t.Errorf("shorts (%d) + long-form (%d) should equal total (%d)", kpi.ShortsCount, kpi.LongFormCount, kpi.TotalVideos)
	}
	if !almostEqual(kpi.ShortsRatio, 40, 1e-9) {
		t.Errorf("user should see a 40%% shorts ratio, got %.2f", kpi.ShortsRatio)
	}
}

func TestAC110_Pareto_SelectsTopTwentyPercent(t *testing.T) {
	videos := videosWithViews(100, 200, 300, 400, 1000)

	p := ComputePareto(videos, DefaultParetoPercent)

	if len(p.TopN) != 1 {
		t.Fatalf("user should see ceil(5*0.2)=1 top video, got %d", len(p.TopN))
	}
	if p.TopN[0].Stats.Views != 1000 {
		t.Errorf("top video should be the 1000-view one, got %d", p.TopN[0].Stats.Views)
	}
	if !almostEqual(p.TopNPercentage, 50, 1e-9) {
		t.Errorf("top 20%% should hold 50%% of views, got %.2f", p.TopNPercentage)
	}
	if p.TotalViews != 2000 || p.TopNViews != 1000 {
		t.Errorf("expected 1000 of 2000 views, got %d of %d", p.TopNViews, p.TotalViews)
	}
}

func TestAC111_Pareto_FullPercentSelectsEverything(t *testing.T) {
	videos := videosWithViews(5, 50, 500)

	p := ComputePareto(videos, 100)

	if len(p.TopN) != len(videos) {
		t.Fatalf("100%% should select all %d videos, got %d", len(videos), len(p.TopN))
	}
	if p.TopNPercentage != 100 {
		t.Errorf("100%% selection should hold exactly 100%% of views, got %v", p.TopNPercentage)
	}
}

func TestAC112_Pareto_KeepsInputOrderForTies(t *testing.T) {
	videos := videosWithViews(10, 50, 50, 50)

	p := ComputePareto(videos, 50)

	if len(p.TopN) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(p.TopN))
	}
	if p.TopN[0].VideoID != videos[1].VideoID || p.TopN[1].VideoID != videos[2].VideoID {
		t.Errorf("ties should keep input order, got %s, %s", p.TopN[0].VideoID, p.TopN[1].VideoID)
	}
}

func TestAC113_Pareto_HandlesDegenerateInput(t *testing.T) {
	testCases := []struct {
		name      string
		videos    []VideoRecord
		percent   float64
		wantCount int
	}{
		{"empty input", nil, 20, 0},
		{"zero percent", videosWithViews(1, 2, 3), 0, 0},
		{"negative percent", videosWithViews(1, 2, 3), -10, 0},
		{"over one hundred percent", videosWithViews(1, 2, 3), 150, 3},
		{"all zero views", videosWithViews(0, 0, 0, 0), 50, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := ComputePareto(tc.videos, tc.percent)

			if len(p.TopN) != tc.wantCount {
				t.Errorf("expected %d selected videos, got %d", tc.wantCount, len(p.TopN))
			}
			if p.TopN == nil {
				t.Error("selection should be an empty slice, not nil")
			}
			if p.TotalViews == 0 && p.TopNPercentage != 0 {
				t.Errorf("zero total views should give 0%%, got %v", p.TopNPercentage)
			}
		})
	}
}

func TestAC114_Pareto_DoesNotReorderInput(t *testing.T) {
	videos := videosWithViews(1, 3, 2)

	ComputePareto(videos, 100)

	if videos[0].Stats.Views != 1 || videos[1].Stats.Views != 3 || videos[2].Stats.Views != 2 {
		t.Error("caller's slice must not be reordered")
	}
}

func TestAC120_Heatmap_AlwaysHas168OrderedCells(t *testing.T) {
	for _, videos := range [][]VideoRecord{nil, videosWithViews(1, 2, 3, 4, 5, 6, 7, 8, 9)} {
		cells := ComputeUploadHeatmapIn(videos, time.UTC)

		if len(cells) != HeatmapCells {
			t.Fatalf("heatmap should have 168 cells, got %d", len(cells))
		}
		total := 0
		for i, c := range cells {
			if c.DayOfWeek != i/24 || c.Hour != i%24 {
				t.Fatalf("cell %d out of order: day %d hour %d", i, c.DayOfWeek, c.Hour)
			}
			total += c.Count
		}
		if total != len(videos) {
			t.Errorf("cell counts should sum to %d videos, got %d", len(videos), total)
		}
	}
}

func TestAC121_Heatmap_BucketsByWeekdayAndHour(t *testing.T) {
	// 2026-03-15 is a Sunday.
	videos := []VideoRecord{
		{PublishedAt: time.Date(2026, time.March, 15, 18, 30, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, time.March, 15, 18, 5, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, time.March, 17, 9, 0, 0, 0, time.UTC)},
	}

	cells := ComputeUploadHeatmapIn(videos, time.UTC)

	if got := cells[0*24+18].Count; got != 2 {
		t.Errorf("Sunday 18:00 should have 2 uploads, got %d", got)
	}
	if got := cells[2*24+9].Count; got != 1 {
		t.Errorf("Tuesday 09:00 should have 1 upload, got %d", got)
	}
}

func TestAC122_Heatmap_UsesRequestedTimezone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	videos := []VideoRecord{
		{PublishedAt: time.Date(2026, time.March, 15, 18, 0, 0, 0, time.UTC)},
	}

	cells := ComputeUploadHeatmapIn(videos, tokyo)

	// 18:00 UTC Sunday is 03:00 Monday in Tokyo.
	if cells[1*24+3].Count != 1 {
		t.Error("upload should be bucketed in the requested time zone")
	}
}

func TestAC123_Heatmap_DefaultUsesLocalZone(t *testing.T) {
	videos := videosWithViews(1, 2, 3)

	got := ComputeUploadHeatmap(videos)
	want := ComputeUploadHeatmapIn(videos, time.Local)

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("default heatmap should bucket in time.Local, cell %d differs", i)
		}
	}
}

func TestAC124_Heatmap_ReportsPeakSlot(t *testing.T) {
	videos := []VideoRecord{
		{PublishedAt: time.Date(2026, time.March, 18, 20, 0, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, time.March, 11, 20, 15, 0, 0, time.UTC)},
		{PublishedAt: time.Date(2026, time.March, 16, 7, 0, 0, 0, time.UTC)},
	}

	peak, ok := PeakUploadSlot(ComputeUploadHeatmapIn(videos, time.UTC))

	if !ok {
		t.Fatal("user should see a peak upload slot")
	}
	if peak.DayOfWeek != int(time.Wednesday) || peak.Hour != 20 || peak.Count != 2 {
		t.Errorf("peak should be Wednesday 20:00 with 2 uploads, got %+v", peak)
	}

	if _, ok := PeakUploadSlot(ComputeUploadHeatmapIn(nil, time.UTC)); ok {
		t.Error("empty heatmap should have no peak slot")
	}
}

func TestAC130_MetaStats_DetectsHashtagAndEmoji(t *testing.T) {
	stats := ComputeMetaStats([]VideoRecord{{Title: "Hello #world 🎉"}})

	if stats.HashtagUsageRate != 100 {
		t.Errorf("user should see 100%% hashtag usage, got %.2f", stats.HashtagUsageRate)
	}
	if stats.EmojiUsageRate != 100 {
		t.Errorf("user should see 100%% emoji usage, got %.2f", stats.EmojiUsageRate)
	}
}

func TestAC131_MetaStats_CountsTitleLengthInCharacters(t *testing.T) {
	stats := ComputeMetaStats([]VideoRecord{
		{Title: "héllo 🎉"},
		{Title: "한국어"},
	})

	// 7 and 3 code points
	if !almostEqual(stats.AvgTitleLength, 5, 1e-9) {
		t.Errorf("title length should count characters, not bytes, got %.2f", stats.AvgTitleLength)
	}
}

func TestAC132_MetaStats_RatesArePresenceNotOccurrences(t *testing.T) {
	stats := ComputeMetaStats([]VideoRecord{
		{Title: "🎉🎉🎉 #a #b #c"},
		{Title: "plain title", Description: "see #한국 travel"},
		{Title: "no tags", Description: "C# is not a hashtag"},
		{Title: "☀ sunny"},
	})

	if !almostEqual(stats.EmojiUsageRate, 50, 1e-9) {
		t.Errorf("2 of 4 titles carry emoji, want 50%%, got %.2f", stats.EmojiUsageRate)
	}
	if !almostEqual(stats.HashtagUsageRate, 50, 1e-9) {
		t.Errorf("2 of 4 videos carry hashtags, want 50%%, got %.2f", stats.HashtagUsageRate)
	}
}

func TestAC133_MetaStats_MissingTagsCountAsZero(t *testing.T) {
	stats := ComputeMetaStats([]VideoRecord{
		{Tags: []string{"go", "cli", "youtube"}},
		{Tags: nil},
		{DurationSec: 90},
	})

	if !almostEqual(stats.TagsAvgCount, 1, 1e-9) {
		t.Errorf("videos without tags should count as 0 tags, got avg %.2f", stats.TagsAvgCount)
	}
	if !almostEqual(stats.AvgDuration, 30, 1e-9) {
		t.Errorf("user should see 30s average duration, got %.2f", stats.AvgDuration)
	}
}

func TestAC134_MetaStats_EmptyCollectionIsAllZero(t *testing.T) {
	if stats := ComputeMetaStats(nil); stats != (MetaStats{}) {
		t.Errorf("expected zero stats, got %+v", stats)
	}
}

func TestAC135_MetaStats_ExtractsHashtags(t *testing.T) {
	got := ExtractHashtags("Trip #travel to #서울 and #go_lang!")
	want := []string{"#travel", "#서울", "#go_lang"}

	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("hashtag %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func assertScoresInRange(t *testing.T, m RisingStarMetrics) {
	t.Helper()
	values := map[string]float64{
		"score":                 m.Score,
		"conversion efficiency": m.SubScores.ConversionEfficiency,
		"view velocity":         m.SubScores.ViewVelocity,
		"consistency":           m.SubScores.Consistency,
		"recency":               m.SubScores.Recency,
		"format balance":        m.SubScores.FormatBalance,
		"growth":                m.Breakdown.Growth,
		"efficiency":            m.Breakdown.Efficiency,
		"activity":              m.Breakdown.Activity,
	}
	for name, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s must be finite, got %v", name, v)
		}
		if v < 0 || v > 100 {
			t.Errorf("%s must be within [0,100], got %v", name, v)
		}
	}
}

func TestAC140_RisingScore_WeightsSumToOne(t *testing.T) {
	sum := WeightConversionEfficiency + WeightViewVelocity + WeightConsistency + WeightRecency + WeightFormatBalance
	if !almostEqual(sum, 1, 1e-12) {
		t.Errorf("weights should sum to 1, got %v", sum)
	}
}

func TestAC141_RisingScore_ZeroSubscribersAndViewsStayFinite(t *testing.T) {
	channel := ChannelRecord{ChannelID: "UC0"}
	videos := []VideoRecord{
		{PublishedAt: daysAgo(1)},
		{PublishedAt: daysAgo(8)},
		{PublishedAt: daysAgo(15)},
	}

	m := CalculateRisingScore(channel, videos, now)

	assertScoresInRange(t, m)
	if m.SubScores.ConversionEfficiency != 0 {
		t.Errorf("channel without subscribers should have 0 efficiency, got %v", m.SubScores.ConversionEfficiency)
	}
	if m.SubScores.ViewVelocity != 0 {
		t.Errorf("unviewed videos should have 0 velocity, got %v", m.SubScores.ViewVelocity)
	}
}

func TestAC142_RisingScore_SingleVideoChannel(t *testing.T) {
	channel := ChannelRecord{ChannelID: "UC1", Stats: ChannelStats{Subscribers: 100}}
	videos := []VideoRecord{{PublishedAt: daysAgo(5), DurationSec: 600, Stats: VideoStats{Views: 5000}}}

	m := CalculateRisingScore(channel, videos, now)

	assertScoresInRange(t, m)
	if m.SubScores.Consistency != 0 {
		t.Errorf("one video gives no interval, consistency should be 0, got %v", m.SubScores.Consistency)
	}
	if !almostEqual(m.SubScores.Recency, 90, 1e-9) {
		t.Errorf("upload 5 days ago should give recency 90, got %v", m.SubScores.Recency)
	}
	if m.SubScores.ViewVelocity != 100 {
		t.Errorf("1000 views/day should cap velocity at 100, got %v", m.SubScores.ViewVelocity)
	}
	if m.SubScores.ConversionEfficiency != 100 {
		t.Errorf("efficiency should cap at 100, got %v", m.SubScores.ConversionEfficiency)
	}
	if m.SubScores.FormatBalance != 50 {
		t.Errorf("long-form only sample should get format balance 50, got %v", m.SubScores.FormatBalance)
	}
	// 100*0.35 + 100*0.30 + 0*0.20 + 90*0.10 + 50*0.05
	if !almostEqual(m.Score, 76.5, 1e-9) {
		t.Errorf("composite score should be 76.5, got %v", m.Score)
	}
}

func TestAC143_RisingScore_NoVideosScoresZero(t *testing.T) {
	m := CalculateRisingScore(ChannelRecord{ChannelID: "UC2", Stats: ChannelStats{Subscribers: 10}}, nil, now)

	if m.Score != 0 || m.SubScores != (RisingSubScores{}) {
		t.Errorf("channel without videos should score 0, got %+v", m)
	}
	if m.Channel.ChannelID != "UC2" {
		t.Error("result should carry the scored channel")
	}
}

func TestAC144_RisingScore_RegularUploadsAreConsistent(t *testing.T) {
	channel := ChannelRecord{Stats: ChannelStats{Subscribers: 1}}
	var videos []VideoRecord
	for i := range 6 {
		videos = append(videos, VideoRecord{PublishedAt: daysAgo(float64(7 * i)), IsShort: i%2 == 0})
	}

	m := CalculateRisingScore(channel, videos, now)

	if !almostEqual(m.SubScores.Consistency, 100, 1e-9) {
		t.Errorf("weekly uploads should score consistency 100, got %v", m.SubScores.Consistency)
	}
	if m.SubScores.FormatBalance != 100 {
		t.Errorf("half shorts should get format balance 100, got %v", m.SubScores.FormatBalance)
	}
	if !almostEqual(m.SubScores.Recency, 100, 1e-9) {
		t.Errorf("upload today should give recency 100, got %v", m.SubScores.Recency)
	}
}

func TestAC145_RisingScore_ConversionEfficiencyUsesSqrtOfViews(t *testing.T) {
	channel := ChannelRecord{Stats: ChannelStats{Subscribers: 1}}
	videos := []VideoRecord{{PublishedAt: daysAgo(1), Stats: VideoStats{Views: 10000}}}

	m := CalculateRisingScore(channel, videos, now)

	// 1 / sqrt(10000) * 100
	if !almostEqual(m.SubScores.ConversionEfficiency, 1, 1e-9) {
		t.Errorf("expected efficiency 1, got %v", m.SubScores.ConversionEfficiency)
	}
}

func TestAC146_RisingScore_OrdersSampleNewestFirst(t *testing.T) {
	videos := []VideoRecord{
		{VideoID: "old", PublishedAt: daysAgo(30)},
		{VideoID: "new", PublishedAt: daysAgo(1)},
		{VideoID: "mid", PublishedAt: daysAgo(10)},
	}

	m := CalculateRisingScore(ChannelRecord{}, videos, now)

	if m.RecentVideos[0].VideoID != "new" {
		t.Errorf("recent videos should start with the newest upload, got %s", m.RecentVideos[0].VideoID)
	}
	if !almostEqual(m.SubScores.Recency, 98, 1e-9) {
		t.Errorf("recency should use the newest upload, got %v", m.SubScores.Recency)
	}
	if videos[0].VideoID != "old" {
		t.Error("caller's slice must not be reordered")
	}
}

func TestAC147_RisingScore_KeepsFiveRecentVideos(t *testing.T) {
	videos := videosWithViews(1, 2, 3, 4, 5, 6, 7, 8)

	m := CalculateRisingScore(ChannelRecord{}, videos, now)

	if len(m.RecentVideos) != RecentSampleSize {
		t.Errorf("expected %d recent videos, got %d", RecentSampleSize, len(m.RecentVideos))
	}
}

func TestAC148_RisingStars_SortAndFilter(t *testing.T) {
	metrics := []RisingStarMetrics{
		{Channel: ChannelRecord{ChannelID: "a"}, Score: 40, Breakdown: RisingBreakdown{Growth: 90}},
		{Channel: ChannelRecord{ChannelID: "b"}, Score: 80, Breakdown: RisingBreakdown{Growth: 10}},
		{Channel: ChannelRecord{ChannelID: "c"}, Score: 60, Breakdown: RisingBreakdown{Growth: 50}},
	}

	byScore := SortRisingStars(metrics, SortByScore)
	if byScore[0].Channel.ChannelID != "b" || byScore[2].Channel.ChannelID != "a" {
		t.Errorf("sort by score should be b, c, a; got %s, %s, %s",
			byScore[0].Channel.ChannelID, byScore[1].Channel.ChannelID, byScore[2].Channel.ChannelID)
	}

	byGrowth := SortRisingStars(metrics, SortByGrowth)
	if byGrowth[0].Channel.ChannelID != "a" {
		t.Errorf("sort by growth should start with a, got %s", byGrowth[0].Channel.ChannelID)
	}

	if metrics[0].Channel.ChannelID != "a" {
		t.Error("sorting must not reorder the caller's slice")
	}

	kept := FilterRisingStars(metrics, DefaultRisingThreshold)
	if len(kept) != 2 {
		t.Errorf("threshold 50 should keep 2 channels, got %d", len(kept))
	}
}

func TestAC150_BlueOcean_EmptySampleIsRed(t *testing.T) {
	m := AnalyzeBlueOcean("go tutorial", nil, DefaultBlueOceanTopN, now)

	if m.Verdict != VerdictRed || m.Confidence != 0 {
		t.Errorf("empty sample should be RED with 0 confidence, got %s %.0f", m.Verdict, m.Confidence)
	}
	if m.Query != "go tutorial" {
		t.Error("result should carry the query")
	}
	if m.ViewMean != 0 || m.ViewMedian != 0 || m.TopN != 0 {
		t.Errorf("empty sample should have zero stats, got %+v", m)
	}
}

func TestAC151_BlueOcean_ConcentratedBusyMarketIsRed(t *testing.T) {
	var videos []VideoRecord
	for i := range 50 {
		views := int64(100)
		if i < 10 {
			views = 1300
		}
		channel := "UCa"
		if i%2 == 1 {
			channel = "UCb"
		}
		videos = append(videos, VideoRecord{
			ChannelID:   channel,
			PublishedAt: daysAgo(float64(3*i) + 0.5),
			Stats:       VideoStats{Views: views},
		})
	}

	m := AnalyzeBlueOcean("crowded", videos, 50, now)

	if !almostEqual(m.ViewDistribution, 100.0/340.0, 1e-9) {
		t.Errorf("expected median/mean ≈ 0.29, got %v", m.ViewDistribution)
	}
	if m.ConcentrationRatio != 0 {
		t.Errorf("two channels hold every view, concentration should be 0, got %v", m.ConcentrationRatio)
	}
	if !almostEqual(m.Activity.AvgUploadIntervalDays, 3, 1e-9) {
		t.Errorf("expected 3-day upload interval, got %v", m.Activity.AvgUploadIntervalDays)
	}
	if m.Signals.Count() != 0 {
		t.Errorf("no signal should fire, got %+v", m.Signals)
	}
	if m.Verdict != VerdictRed || m.Confidence != 0 {
		t.Errorf("user should see RED with 0 confidence, got %s %.0f", m.Verdict, m.Confidence)
	}
}

func TestAC152_BlueOcean_FragmentedQuietMarketIsBlue(t *testing.T) {
	var videos []VideoRecord
	for i := range 10 {
		videos = append(videos, VideoRecord{
			ChannelID:   string(rune('A' + i)),
			PublishedAt: daysAgo(float64(20*i) + 2),
			Stats:       VideoStats{Views: 1000},
		})
	}

	m := AnalyzeBlueOcean("niche", videos, 50, now)

	if m.Verdict != VerdictBlue {
		t.Errorf("user should see BLUE verdict, got %s", m.Verdict)
	}
	if m.Confidence != 100 {
		t.Errorf("all three signals fired, confidence should be 100, got %v", m.Confidence)
	}
	if !almostEqual(m.ConcentrationRatio, 0.7, 1e-9) {
		t.Errorf("top 3 of 10 equal channels leave 0.7, got %v", m.ConcentrationRatio)
	}
	if m.Activity.LatestUploadDaysAgo != 2 {
		t.Errorf("latest upload was 2 days ago, got %d", m.Activity.LatestUploadDaysAgo)
	}
}

func TestAC153_BlueOcean_TwoSignalsAreEnough(t *testing.T) {
	var videos []VideoRecord
	for i := range 10 {
		videos = append(videos, VideoRecord{
			ChannelID:   string(rune('A' + i)),
			PublishedAt: daysAgo(float64(i)),
			Stats:       VideoStats{Views: 500},
		})
	}

	m := AnalyzeBlueOcean("busy but open", videos, 50, now)

	if m.Verdict != VerdictBlue {
		t.Errorf("two signals should give BLUE, got %s", m.Verdict)
	}
	if m.Confidence != 67 {
		t.Errorf("two of three signals should give 67%% confidence, got %v", m.Confidence)
	}
	if m.Signals.Infrequent {
		t.Error("daily uploads should not count as infrequent")
	}
}

func TestAC154_BlueOcean_UsesTrueMedianAndTopN(t *testing.T) {
	videos := videosWithViews(10, 40, 30, 20, 9999)

	m := AnalyzeBlueOcean("median", videos, 4, now)

	if m.TopN != 4 {
		t.Fatalf("only the first 4 videos should be sampled, got %d", m.TopN)
	}
	if m.ViewMedian != 25 {
		t.Errorf("median of 10,20,30,40 should be 25, got %v", m.ViewMedian)
	}
	if m.ViewMean != 25 {
		t.Errorf("mean should be 25, got %v", m.ViewMean)
	}
}

func TestAC155_BlueOcean_ZeroViewsAndSingleVideoStayFinite(t *testing.T) {
	testCases := []struct {
		name   string
		videos []VideoRecord
	}{
		{"zero views", videosWithViews(0, 0, 0)},
		{"single video", videosWithViews(42)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m := AnalyzeBlueOcean("q", tc.videos, 50, now)

			for name, v := range map[string]float64{
				"mean": m.ViewMean, "median": m.ViewMedian, "distribution": m.ViewDistribution,
				"concentration": m.ConcentrationRatio, "interval": m.Activity.AvgUploadIntervalDays,
				"confidence": m.Confidence,
			} {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Errorf("%s must be finite, got %v", name, v)
				}
			}
		})
	}
}

func TestAC156_BlueOcean_IsDeterministic(t *testing.T) {
	videos := videosWithViews(5, 10, 15, 20)

	first := AnalyzeBlueOcean("q", videos, 50, now)
	second := AnalyzeBlueOcean("q", videos, 50, now)

	if first != second {
		t.Errorf("same input and instant should give identical output:\n%+v\n%+v", first, second)
	}
}

func TestAC160_Metrics_ParsesISODurations(t *testing.T) {
	testCases := []struct {
		in   string
		want int64
	}{
		{"PT10M30S", 630},
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"P1DT1S", 86401},
		{"P0D", 0},
		{"garbage", 0},
		{"", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ParseISODuration(tc.in); got != tc.want {
				t.Errorf("ParseISODuration(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestAC161_Metrics_FormatsNumbersAndDurations(t *testing.T) {
	numbers := map[int64]string{
		999:       "999",
		1500:      "1.5K",
		2_300_000: "2.3M",
	}
	for in, want := range numbers {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %s, want %s", in, got, want)
		}
	}

	durations := map[int64]string{
		59:   "0:59",
		630:  "10:30",
		3723: "1:02:03",
	}
	for in, want := range durations {
		if got := FormatDuration(in); got != want {
			t.Errorf("FormatDuration(%d) = %s, want %s", in, got, want)
		}
	}

	if !IsShort(60) || IsShort(61) {
		t.Error("60 seconds is the longest Short")
	}
}

func TestAC170_Keyword_SummarizesChannelsAndFormat(t *testing.T) {
	videos := []VideoRecord{
		{ChannelID: "A", IsShort: true},
		{ChannelID: "B"},
		{ChannelID: "A"},
		{ChannelID: "C", IsShort: true},
	}

	s := SummarizeKeyword("cats", videos, now)

	if s.SampleSize != 4 || !s.CollectedAt.Equal(now) {
		t.Errorf("unexpected summary header: %+v", s)
	}
	if len(s.TopChannels) != 3 || s.TopChannels[0].ChannelID != "A" || s.TopChannels[0].VideoCount != 2 {
		t.Fatalf("channel A should lead with 2 videos, got %+v", s.TopChannels)
	}
	if !almostEqual(s.TopChannels[0].EstShare, 0.5, 1e-9) {
		t.Errorf("channel A should hold half the sample, got %v", s.TopChannels[0].EstShare)
	}
	if s.TopChannels[1].ChannelID != "B" {
		t.Errorf("ties should keep first-seen order, got %s", s.TopChannels[1].ChannelID)
	}
	if !almostEqual(s.FormatMix.ShortsPct, 0.5, 1e-9) || !almostEqual(s.FormatMix.LongPct, 0.5, 1e-9) {
		t.Errorf("expected an even format mix, got %+v", s.FormatMix)
	}
	if s.Competition != CompetitionLow {
		t.Errorf("3 channels is low competition, got %s", s.Competition)
	}
}

func TestAC171_Keyword_EmptySample(t *testing.T) {
	s := SummarizeKeyword("nothing", nil, now)

	if s.TopChannels == nil || len(s.TopChannels) != 0 {
		t.Error("empty sample should give an empty, non-nil channel list")
	}
	if s.FormatMix != (FormatMix{}) {
		t.Errorf("empty sample should have zero format mix, got %+v", s.FormatMix)
	}
}

func TestAC172_GrowthPhases_SplitsChronologically(t *testing.T) {
	videos := []VideoRecord{
		{PublishedAt: daysAgo(1), Stats: VideoStats{Views: 900}},
		{PublishedAt: daysAgo(70), Stats: VideoStats{Views: 100}},
		{PublishedAt: daysAgo(40), Stats: VideoStats{Views: 400}},
		{PublishedAt: daysAgo(60), Stats: VideoStats{Views: 200}},
		{PublishedAt: daysAgo(30), Stats: VideoStats{Views: 600}},
		{PublishedAt: daysAgo(10), Stats: VideoStats{Views: 700}},
		{PublishedAt: daysAgo(5), Stats: VideoStats{Views: 800}},
	}

	phases := ComputeGrowthPhases(videos)

	if len(phases) != 3 {
		t.Fatalf("expected 3 phases, got %d", len(phases))
	}
	if phases[0].Name != "Early" || phases[0].VideoCount != 2 || phases[0].AvgViews != 150 {
		t.Errorf("unexpected early phase: %+v", phases[0])
	}
	if phases[1].VideoCount != 2 || phases[1].AvgViews != 500 {
		t.Errorf("unexpected mid phase: %+v", phases[1])
	}
	if phases[2].Name != "Recent" || phases[2].VideoCount != 3 || phases[2].AvgViews != 800 {
		t.Errorf("unexpected recent phase: %+v", phases[2])
	}
}

func TestAC173_GrowthPhases_FewVideosDoNotDivideByZero(t *testing.T) {
	phases := ComputeGrowthPhases(videosWithViews(300))

	if phases[0].AvgViews != 0 || phases[1].AvgViews != 0 {
		t.Errorf("empty phases should average 0, got %+v", phases)
	}
	if phases[2].AvgViews != 300 {
		t.Errorf("single video should land in the recent phase, got %+v", phases[2])
	}
}

func TestAC174_HealthScore(t *testing.T) {
	if got := ComputeHealthScore(nil); got != 0 {
		t.Errorf("no videos should score 0, got %d", got)
	}

	engaged := make([]VideoRecord, 0, 60)
	for i := range 60 {
		engaged = append(engaged, VideoRecord{
			IsShort: i%2 == 0,
			Stats:   VideoStats{Views: 100, Likes: 4},
		})
	}
	if got := ComputeHealthScore(engaged); got != 100 {
		t.Errorf("large balanced engaged channel should score 100, got %d", got)
	}

	quiet := videosWithViews(1000, 1000, 1000)
	// 50 + 5 (small) + 5 (unbalanced) + 0 (no engagement)
	if got := ComputeHealthScore(quiet); got != 60 {
		t.Errorf("small unbalanced channel should score 60, got %d", got)
	}
}
