// Package report turns dashboards into strategy reports.
//
// Every report has a template rendition built only from the measured
// numbers. When an LLM generator is configured the Writer asks it first and
// falls back to the template if the call fails.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
	"github.com/gauthierbraillon/tubelens/internal/dashboard"
)

// Diagnosis renders the channel health report.
func Diagnosis(d *dashboard.ChannelDashboard) string {
	var b strings.Builder
	k := d.KPIs
	shortsShare := k.ShortsRatio / 100
	weekly := int(math.Ceil(float64(len(d.Videos)) / 90))

	fmt.Fprintf(&b, "# Channel diagnosis: %s\n\n", d.Channel.Title)
	fmt.Fprintf(&b, "## Content health: %d/100\n\n", d.HealthScore)

	b.WriteString("### Content quality\n")
	fmt.Fprintf(&b, "- Upload consistency: %s\n", pick(len(d.Videos) > 50, "excellent", pick(len(d.Videos) > 20, "good", "needs work")))
	fmt.Fprintf(&b, "- Format mix: %s (%.1f%% Shorts)\n", pick(shortsShare > 0.2 && shortsShare < 0.8, "balanced", "lopsided"), k.ShortsRatio)
	fmt.Fprintf(&b, "- Average engagement: %.3f%%\n\n", k.AvgEngagementRate)

	b.WriteString("### Audience\n")
	fmt.Fprintf(&b, "- Likes per video: %s\n", humanize.Comma(k.AvgLikes))
	fmt.Fprintf(&b, "- Comments per video: %s\n", humanize.Comma(k.AvgComments))
	fmt.Fprintf(&b, "- Engagement trend: %s\n", pick(k.AvgEngagementRate > 3, "strong", "average"))
	fmt.Fprintf(&b, "- Subscriber conversion: %.2f%%\n", subscriberConversion(d.Channel))
	fmt.Fprintf(&b, "- Niche clarity: %s\n\n", pick(d.Channel.Description != "", "defined", "needs a channel description"))

	b.WriteString("### Performance\n")
	fmt.Fprintf(&b, "- Top %d videos hold %.1f%% of views\n", len(d.Pareto.TopN), d.Pareto.TopNPercentage)
	fmt.Fprintf(&b, "- Average length: %s\n", aggregator.FormatDuration(int64(d.Meta.AvgDuration)))
	fmt.Fprintf(&b, "- Average title length: %.0f characters\n", d.Meta.AvgTitleLength)
	if d.PeakSlot != nil {
		fmt.Fprintf(&b, "- Busiest upload slot: %s %02d:00\n", weekdayName(d.PeakSlot.DayOfWeek), d.PeakSlot.Hour)
	}
	for _, p := range d.GrowthPhases {
		fmt.Fprintf(&b, "- %s phase: %s avg views over %d videos\n", p.Name, humanize.Comma(int64(p.AvgViews)), p.VideoCount)
	}
	b.WriteString("\n")

	b.WriteString("## Next 30 days\n")
	fmt.Fprintf(&b, "1. Content: %s\n", pick(shortsShare < 0.3, "add 2-3 Shorts per week", "keep the current format mix"))
	b.WriteString("2. Engagement: put a clear call to action in the first 10 seconds and the end screen\n")
	b.WriteString("3. Optimization: A/B test thumbnails on your best-performing topics\n")
	fmt.Fprintf(&b, "4. Consistency: hold a schedule of %d videos per week\n\n", weekly)

	b.WriteString("## 3-6 months\n")
	b.WriteString("1. Brand: develop a signature style or intro\n")
	b.WriteString("2. Revenue: diversify beyond ads with memberships or products\n")
	b.WriteString("3. Growth: collaborate with channels of similar size\n")
	b.WriteString("4. Analytics: track CTR and average view duration in YouTube Studio\n\n")

	b.WriteString("## KPI targets\n")
	b.WriteString("- CTR: 4-6%\n")
	b.WriteString("- Retention: 50%+ at 30 seconds\n")
	fmt.Fprintf(&b, "- Upload cadence: %d per week\n\n", weekly)

	fmt.Fprintf(&b, "_Based on %d analyzed videos._\n", len(d.Videos))
	return b.String()
}

// KeywordStrategy renders the content strategy for a keyword market.
func KeywordStrategy(k *dashboard.KeywordDashboard, year int) string {
	var b strings.Builder
	s := k.Summary
	competition := s.Competition

	fmt.Fprintf(&b, "# Keyword strategy: %q\n\n", k.Query)

	b.WriteString("## Market\n")
	fmt.Fprintf(&b, "- Sample size: %d videos\n", s.SampleSize)
	fmt.Fprintf(&b, "- Competition: %s\n", competition)
	fmt.Fprintf(&b, "- Average views: %s\n", humanize.Comma(k.KPIs.AvgViews))
	fmt.Fprintf(&b, "- Format split: %.1f%% Shorts, %.1f%% long-form\n\n", s.FormatMix.ShortsPct*100, s.FormatMix.LongPct*100)

	b.WriteString("## Leading channels\n")
	for i, ch := range s.TopChannels[:min(5, len(s.TopChannels))] {
		fmt.Fprintf(&b, "%d. %s: %d videos (%.1f%% of the sample)\n", i+1, ch.ChannelID, ch.VideoCount, ch.EstShare*100)
	}
	b.WriteString("\n")

	b.WriteString("## Format\n")
	if s.FormatMix.ShortsPct > 0.6 {
		b.WriteString("Shorts first: this keyword performs best as Shorts.\n\n")
	} else {
		b.WriteString("Long-form first: this keyword rewards in-depth videos.\n\n")
	}

	high := competition == aggregator.CompetitionHigh
	b.WriteString("## Length\n")
	b.WriteString("- Shorts: 15-45 seconds\n")
	fmt.Fprintf(&b, "- Long-form: %s\n\n", pick(high, "10-15 minutes, high competition needs depth", "8-12 minutes, the engagement sweet spot"))

	b.WriteString("## Upload frequency\n")
	fmt.Fprintf(&b, "%s videos per week to build authority.\n\n", pick(high, "4-5", "2-3"))

	b.WriteString("## Title templates\n")
	fmt.Fprintf(&b, "1. \"%s | [unique angle]\"\n", k.Query)
	fmt.Fprintf(&b, "2. \"[Surprising fact] about %s\"\n", k.Query)
	fmt.Fprintf(&b, "3. \"[N] %s tips nobody tells you\"\n", k.Query)
	fmt.Fprintf(&b, "4. \"The truth about %s in %d\"\n\n", k.Query, year)

	b.WriteString("## Thumbnails\n")
	b.WriteString("- High-contrast colors\n")
	b.WriteString("- Bold text overlay of three words or fewer\n")
	fmt.Fprintf(&b, "- Expressive faces, %s\n\n", pick(s.FormatMix.ShortsPct > 0.5, "close-ups for Shorts", "medium shots for long-form"))

	b.WriteString("## Hashtags\n")
	fmt.Fprintf(&b, "Primary: #%s\n", strings.Join(strings.Fields(k.Query), ""))
	fmt.Fprintf(&b, "Currently used in %.0f%% of sampled videos.\n\n", k.Meta.HashtagUsageRate)

	b.WriteString("## Weekly calendar\n")
	b.WriteString(ContentCalendar(s.FormatMix))
	b.WriteString("\n")

	fmt.Fprintf(&b, "_Based on a sample of %d videos._\n", s.SampleSize)
	return b.String()
}

// ContentCalendar suggests a weekly publishing plan for a format mix.
func ContentCalendar(mix aggregator.FormatMix) string {
	shortsFirst := mix.ShortsPct > 0.5
	var b strings.Builder
	b.WriteString("- Monday: Shorts (15-30s), quick tip\n")
	fmt.Fprintf(&b, "- Wednesday: long-form (%s), deep dive\n", pick(shortsFirst, "8-10 min", "10-15 min"))
	fmt.Fprintf(&b, "- Friday: %s\n", pick(shortsFirst, "Shorts, teaser or behind the scenes", "long-form follow-up"))
	if shortsFirst {
		b.WriteString("- Saturday: Shorts, trend response\n")
	}
	return b.String()
}

// BlueOceanPlan renders the market entry plan for a blue-ocean analysis.
func BlueOceanPlan(m aggregator.BlueOceanMetrics, year int) string {
	var b strings.Builder
	blue := m.Verdict == aggregator.VerdictBlue

	fmt.Fprintf(&b, "# Blue ocean analysis: %q\n\n", m.Query)
	fmt.Fprintf(&b, "## Verdict: %s (%.0f%% confidence)\n\n", pick(blue, "BLUE, an open opportunity", "RED, a saturated market"), m.Confidence)

	b.WriteString("### View distribution\n")
	fmt.Fprintf(&b, "- Mean views: %s\n", humanize.Comma(int64(m.ViewMean)))
	fmt.Fprintf(&b, "- Median views: %s\n", humanize.Comma(int64(m.ViewMedian)))
	fmt.Fprintf(&b, "- Shape: %s\n\n", pick(m.Signals.Distributed, "distributed", "winner takes all"))

	b.WriteString("### Competition\n")
	fmt.Fprintf(&b, "- Views outside the top 3 channels: %.1f%%\n", m.ConcentrationRatio*100)
	fmt.Fprintf(&b, "- Structure: %s\n\n", pick(m.Signals.Fragmented, "fragmented", "dominated by a few channels"))

	b.WriteString("### Activity\n")
	fmt.Fprintf(&b, "- Average upload interval: %.1f days\n", m.Activity.AvgUploadIntervalDays)
	fmt.Fprintf(&b, "- Latest upload: %d days ago\n", m.Activity.LatestUploadDaysAgo)
	fmt.Fprintf(&b, "- Level: %s\n\n", pick(m.Signals.Infrequent, "low, room to enter", "high, competitive"))

	if blue {
		b.WriteString("## Entry plan\n")
		if m.Signals.Distributed {
			b.WriteString("- Views are spread out, no single winner\n")
		}
		if m.Signals.Fragmented {
			b.WriteString("- Many channels succeed, no monopoly\n")
		}
		if m.Signals.Infrequent {
			b.WriteString("- Few uploads, little competition\n")
		}
		b.WriteString("\n1. Enter fast with 5-10 videos to test demand\n")
		b.WriteString("2. Mix Shorts and long-form to reach different viewers\n")
		b.WriteString("3. Differentiate on what current videos are missing\n")
		b.WriteString("4. Upload 3-4 times a week to build momentum\n\n")
		b.WriteString("### Long-tail variations\n")
		fmt.Fprintf(&b, "- \"%s for beginners\"\n", m.Query)
		fmt.Fprintf(&b, "- \"%s mistakes to avoid\"\n", m.Query)
		fmt.Fprintf(&b, "- \"%s %d update\"\n\n", m.Query, year)
	} else {
		b.WriteString("## Survival plan\n")
		if !m.Signals.Distributed {
			b.WriteString("- Winner-takes-all view dynamics\n")
		}
		if !m.Signals.Fragmented {
			b.WriteString("- A few channels dominate\n")
		}
		if m.Activity.AvgUploadIntervalDays < 7 {
			b.WriteString("- Competitors upload often\n")
		}
		b.WriteString("\n1. Niche down into long-tail subtopics\n")
		b.WriteString("2. Favor quality: 1-2 strong videos per week\n")
		b.WriteString("3. Find a format or angle the leaders ignore\n")
		b.WriteString("4. Build community through comments and posts\n\n")
		b.WriteString("### Alternative keywords\n")
		b.WriteString("Consider related but less contested terms.\n\n")
	}

	b.WriteString("## Ten content ideas\n")
	for i, idea := range BlueOceanIdeas(m.Query, year) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, idea)
	}
	fmt.Fprintf(&b, "\n_Based on the top %d videos for this keyword._\n", m.TopN)
	return b.String()
}

// BlueOceanIdeas returns ten starter video ideas for query.
func BlueOceanIdeas(query string, year int) []string {
	return []string{
		fmt.Sprintf("The complete %s guide for %d", query, year),
		fmt.Sprintf("%s: 10 things nobody tells you", query),
		fmt.Sprintf("I tried %s for 30 days", query),
		fmt.Sprintf("%s vs [alternative]: which is better?", query),
		fmt.Sprintf("Common %s mistakes (and how to avoid them)", query),
		fmt.Sprintf("%s tips from [an expert]", query),
		fmt.Sprintf("The science behind %s", query),
		fmt.Sprintf("%s on a budget", query),
		fmt.Sprintf("Is %s worth it? An honest review", query),
		fmt.Sprintf("%s trends to watch in %d", query, year),
	}
}

func subscriberConversion(ch aggregator.ChannelRecord) float64 {
	if ch.Stats.Views <= 0 {
		return 0
	}
	return float64(ch.Stats.Subscribers) / float64(ch.Stats.Views) * 100
}

func weekdayName(day int) string {
	return [...]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}[day%7]
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
