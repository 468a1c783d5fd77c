// Package display provides terminal output formatting for tubelens.
package display

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
	"github.com/gauthierbraillon/tubelens/internal/dashboard"
	"github.com/gauthierbraillon/tubelens/internal/report"
)

const (
	separator  = " • "
	titleWidth = 48
)

// heatGlyphs go from an empty slot to the busiest one.
var heatGlyphs = []rune{'·', '░', '▒', '▓', '█'}

var weekdays = [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// TerminalFormatter formats dashboards for terminal display.
type TerminalFormatter struct {
	now func() time.Time
}

// NewTerminalFormatter creates a new terminal formatter.
func NewTerminalFormatter() *TerminalFormatter {
	return &TerminalFormatter{now: time.Now}
}

// FormatChannel formats a full channel dashboard.
func (f *TerminalFormatter) FormatChannel(d *dashboard.ChannelDashboard) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s (%s)\n", d.Channel.Title, d.Channel.ChannelID)
	fmt.Fprintf(&b, "  %s subscribers%s%s videos%s%s total views\n",
		aggregator.FormatNumber(d.Channel.Stats.Subscribers), separator,
		humanize.Comma(d.Channel.Stats.VideoCount), separator,
		aggregator.FormatNumber(d.Channel.Stats.Views))
	if len(d.Alternatives) > 0 {
		names := make([]string, 0, len(d.Alternatives))
		for _, alt := range d.Alternatives {
			names = append(names, fmt.Sprintf("%s (%s)", alt.Title, alt.ChannelID))
		}
		fmt.Fprintf(&b, "  Did you mean: %s\n", strings.Join(names, ", "))
	}
	b.WriteString("\n")

	b.WriteString(f.FormatKPIs(d.KPIs))
	b.WriteString("\n")
	b.WriteString(f.FormatPareto(d.Pareto))
	b.WriteString("\n")
	b.WriteString(f.FormatHeatmap(d.Heatmap))
	if d.PeakSlot != nil {
		fmt.Fprintf(&b, "  Peak slot: %s %02d:00 (%s)\n", weekdays[d.PeakSlot.DayOfWeek], d.PeakSlot.Hour, pluralUnit(d.PeakSlot.Count, "upload"))
	}
	b.WriteString("\n")
	b.WriteString(f.FormatMeta(d.Meta))
	b.WriteString("\n")
	b.WriteString(f.FormatGrowth(d.GrowthPhases, d.HealthScore))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Rising score: %.1f/100\n", d.Rising.Score)
	return b.String()
}

// FormatKPIs formats the KPI block.
func (f *TerminalFormatter) FormatKPIs(k aggregator.KPISummary) string {
	if k.TotalVideos == 0 {
		return "No videos to analyze.\n"
	}

	var b strings.Builder
	b.WriteString("KPIs\n")
	fmt.Fprintf(&b, "  %s videos%s%s views%s%s likes%s%s comments\n",
		humanize.Comma(int64(k.TotalVideos)), separator,
		humanize.Comma(k.TotalViews), separator,
		humanize.Comma(k.TotalLikes), separator,
		humanize.Comma(k.TotalComments))
	fmt.Fprintf(&b, "  avg %s views%s%s likes%s%s comments\n",
		aggregator.FormatNumber(k.AvgViews), separator,
		aggregator.FormatNumber(k.AvgLikes), separator,
		aggregator.FormatNumber(k.AvgComments))
	fmt.Fprintf(&b, "  engagement %.2f%%%s%d in the last 28 days\n", k.AvgEngagementRate, separator, k.VideosLast28Days)
	fmt.Fprintf(&b, "  %s%s%s (%.1f%% Shorts)\n",
		pluralUnit(k.ShortsCount, "short"), separator,
		pluralUnit(k.LongFormCount, "long-form video"), k.ShortsRatio)
	return b.String()
}

// FormatPareto formats the Pareto summary and its top videos.
func (f *TerminalFormatter) FormatPareto(p aggregator.ParetoResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Pareto: top %s hold %.1f%% of %s views\n",
		pluralUnit(len(p.TopN), "video"), p.TopNPercentage, humanize.Comma(p.TotalViews))
	for i, v := range p.TopN {
		fmt.Fprintf(&b, "  %2d. %s %8s views\n", i+1, f.fit(v.Title, titleWidth), aggregator.FormatNumber(v.Stats.Views))
	}
	return b.String()
}

// FormatHeatmap draws the weekday × hour upload grid.
func (f *TerminalFormatter) FormatHeatmap(cells []aggregator.HeatmapCell) string {
	var grid [7][24]int
	peak := 0
	for _, c := range cells {
		if c.DayOfWeek < 0 || c.DayOfWeek > 6 || c.Hour < 0 || c.Hour > 23 {
			continue
		}
		grid[c.DayOfWeek][c.Hour] = c.Count
		peak = max(peak, c.Count)
	}

	var b strings.Builder
	b.WriteString("Upload heatmap\n")
	b.WriteString("      0     6     12    18\n")
	for day := range 7 {
		fmt.Fprintf(&b, "  %s ", weekdays[day])
		for hour := range 24 {
			b.WriteRune(heatGlyph(grid[day][hour], peak))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func heatGlyph(count, peak int) rune {
	if count <= 0 || peak <= 0 {
		return heatGlyphs[0]
	}
	top := len(heatGlyphs) - 1
	level := (count*top + peak - 1) / peak
	return heatGlyphs[min(max(level, 1), top)]
}

// FormatMeta formats metadata habits.
func (f *TerminalFormatter) FormatMeta(m aggregator.MetaStats) string {
	var b strings.Builder
	b.WriteString("Metadata\n")
	fmt.Fprintf(&b, "  avg length %s%savg title %.0f chars%s%.1f tags\n",
		aggregator.FormatDuration(int64(m.AvgDuration)), separator, m.AvgTitleLength, separator, m.TagsAvgCount)
	fmt.Fprintf(&b, "  emoji in %.0f%%%shashtags in %.0f%%\n", m.EmojiUsageRate, separator, m.HashtagUsageRate)
	return b.String()
}

// FormatGrowth formats growth phases and the health score.
func (f *TerminalFormatter) FormatGrowth(phases []aggregator.GrowthPhase, health int) string {
	var b strings.Builder
	b.WriteString("Growth\n")
	for _, p := range phases {
		fmt.Fprintf(&b, "  %s %8s avg views (%s)\n",
			runewidth.FillRight(p.Name, 7), aggregator.FormatNumber(int64(p.AvgViews)), pluralUnit(p.VideoCount, "video"))
	}
	fmt.Fprintf(&b, "Content health: %d/100\n", health)
	return b.String()
}

// FormatKeyword formats a keyword market dashboard.
func (f *TerminalFormatter) FormatKeyword(k *dashboard.KeywordDashboard) string {
	var b strings.Builder
	s := k.Summary

	fmt.Fprintf(&b, "Keyword %q\n", k.Query)
	fmt.Fprintf(&b, "  %s sampled%scompetition %s%s%.0f%% Shorts / %.0f%% long-form\n\n",
		pluralUnit(s.SampleSize, "video"), separator, s.Competition, separator,
		s.FormatMix.ShortsPct*100, s.FormatMix.LongPct*100)
	b.WriteString(f.FormatKPIs(k.KPIs))
	b.WriteString("\n")

	if len(s.TopChannels) > 0 {
		b.WriteString("Top channels\n")
		for i, ch := range s.TopChannels {
			fmt.Fprintf(&b, "  %2d. %s %3d videos %5.1f%%\n", i+1, runewidth.FillRight(ch.ChannelID, 26), ch.VideoCount, ch.EstShare*100)
		}
		b.WriteString("\n")
	}

	b.WriteString(f.FormatMeta(k.Meta))
	b.WriteString("\n")
	b.WriteString(f.FormatBlueOcean(k.BlueOcean))
	return b.String()
}

// FormatBlueOcean formats the blue-ocean verdict and its signals.
func (f *TerminalFormatter) FormatBlueOcean(m aggregator.BlueOceanMetrics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Market: %s (%.0f%% confidence, top %d videos)\n", m.Verdict, m.Confidence, m.TopN)
	fmt.Fprintf(&b, "  views mean %s%smedian %s%sspread %.2f\n",
		humanize.Comma(int64(m.ViewMean)), separator, humanize.Comma(int64(m.ViewMedian)), separator, m.ViewDistribution)
	fmt.Fprintf(&b, "  %.1f%% of views outside the top 3 channels\n", m.ConcentrationRatio*100)
	fmt.Fprintf(&b, "  uploads every %.1f days%slatest %s\n",
		m.Activity.AvgUploadIntervalDays, separator, pluralize(m.Activity.LatestUploadDaysAgo, "day"))
	fmt.Fprintf(&b, "  %s distributed  %s fragmented  %s infrequent\n",
		mark(m.Signals.Distributed), mark(m.Signals.Fragmented), mark(m.Signals.Infrequent))
	return b.String()
}

func mark(fired bool) string {
	if fired {
		return "[x]"
	}
	return "[ ]"
}

// FormatRising formats the rising-star ranking as a table.
func (f *TerminalFormatter) FormatRising(stars []aggregator.RisingStarMetrics) string {
	if len(stars) == 0 {
		return "No rising channels found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  #  %s %6s %6s %6s %6s %8s\n", runewidth.FillRight("Channel", 30), "Score", "Growth", "Effic.", "Activ.", "Subs")
	for i, s := range stars {
		fmt.Fprintf(&b, "%3d  %s %6.1f %6.1f %6.1f %6.1f %8s\n",
			i+1, f.fit(s.Channel.Title, 30), s.Score,
			s.Breakdown.Growth, s.Breakdown.Efficiency, s.Breakdown.Activity,
			aggregator.FormatNumber(s.Channel.Stats.Subscribers))
	}
	return b.String()
}

// FormatReport formats a strategy report with its provenance.
func (f *TerminalFormatter) FormatReport(r report.Report) string {
	source := "template"
	if r.Source == report.SourceAI {
		source = "AI"
	}
	return fmt.Sprintf("%s\n%s\n(%s report)\n", strings.TrimRight(r.Body, "\n"), strings.Repeat("-", 40), source)
}

// FormatTimestamp formats a timestamp as relative time.
func (f *TerminalFormatter) FormatTimestamp(t time.Time) string {
	diff := f.now().Sub(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return pluralize(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return pluralize(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return pluralize(int(diff.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// pluralize returns "N unit ago" or "N units ago" based on count.
func pluralize(n int, unit string) string {
	return pluralUnit(n, unit) + " ago"
}

func pluralUnit(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// TruncateText truncates text to maxWidth terminal cells, adding "..." if truncated.
func (f *TerminalFormatter) TruncateText(text string, maxWidth int) string {
	if runewidth.StringWidth(text) <= maxWidth {
		return text
	}
	if maxWidth <= 3 {
		return "..."
	}
	return runewidth.Truncate(text, maxWidth, "...")
}

// fit truncates and pads text to exactly width cells so columns line up.
func (f *TerminalFormatter) fit(text string, width int) string {
	return runewidth.FillRight(f.TruncateText(text, width), width)
}
