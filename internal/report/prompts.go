package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
	"github.com/gauthierbraillon/tubelens/internal/dashboard"
)

const (
	diagnosisSystem = "You are a YouTube channel consultant. Diagnose channels from their analytics and give concrete, data-backed improvement plans."
	keywordSystem   = "You are a YouTube content strategist. Turn keyword market data into a practical content plan."
	blueOceanSystem = "You are a YouTube market analyst. Judge whether a keyword is an open opportunity or a saturated market and plan an entry."
)

// maxPromptVideos bounds how many top videos are embedded in a prompt.
const maxPromptVideos = 10

func diagnosisPrompt(d *dashboard.ChannelDashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diagnose the YouTube channel %q.\n\n", d.Channel.Title)
	writeSection(&b, "Channel", d.Channel)
	writeSection(&b, "KPIs", d.KPIs)
	writeSection(&b, "Metadata habits", d.Meta)
	writeSection(&b, "Growth phases", d.GrowthPhases)
	writeSection(&b, "Top videos", promptVideos(d.Pareto.TopN))
	fmt.Fprintf(&b, "Content health score: %d/100\n\n", d.HealthScore)
	b.WriteString("Provide:\n")
	b.WriteString("1. Content quality assessment\n")
	b.WriteString("2. Audience engagement assessment\n")
	b.WriteString("3. Performance patterns and the strongest topics\n")
	b.WriteString("4. A 30-day action plan\n")
	b.WriteString("5. A 3-6 month strategy\n")
	b.WriteString("6. KPI targets\n\n")
	b.WriteString("Cite the data above for every claim.\n")
	return b.String()
}

func keywordPrompt(k *dashboard.KeywordDashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Build a content strategy for the keyword %q.\n\n", k.Query)
	writeSection(&b, "Market summary", k.Summary)
	writeSection(&b, "KPIs", k.KPIs)
	writeSection(&b, "Metadata habits", k.Meta)
	writeSection(&b, "Top videos", promptVideos(k.Videos))
	b.WriteString("Provide:\n")
	b.WriteString("1. Market analysis\n")
	b.WriteString("2. Format strategy (Shorts vs long-form)\n")
	b.WriteString("3. Ideal video length and upload frequency\n")
	b.WriteString("4. Title templates\n")
	b.WriteString("5. Thumbnail and hashtag ideas\n")
	b.WriteString("6. A weekly content calendar\n\n")
	b.WriteString("Cite the data above for every claim.\n")
	return b.String()
}

func blueOceanPrompt(m aggregator.BlueOceanMetrics, year int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the market opportunity for the keyword %q in %d.\n\n", m.Query, year)
	writeSection(&b, "Blue ocean metrics", m)
	b.WriteString("Provide:\n")
	b.WriteString("1. Verdict explanation\n")
	b.WriteString("2. View distribution analysis\n")
	b.WriteString("3. Competition structure\n")
	b.WriteString("4. An entry or survival plan\n")
	b.WriteString("5. Ten concrete content ideas\n\n")
	b.WriteString("Cite the data above for every claim.\n")
	return b.String()
}

type promptVideo struct {
	Title    string `json:"title"`
	Views    int64  `json:"views"`
	Likes    int64  `json:"likes"`
	Comments int64  `json:"comments"`
	Duration string `json:"duration"`
	Short    bool   `json:"short"`
}

func promptVideos(videos []aggregator.VideoRecord) []promptVideo {
	out := make([]promptVideo, 0, min(maxPromptVideos, len(videos)))
	for _, v := range videos[:min(maxPromptVideos, len(videos))] {
		out = append(out, promptVideo{
			Title:    v.Title,
			Views:    v.Stats.Views,
			Likes:    v.Stats.Likes,
			Comments: v.Stats.Comments,
			Duration: aggregator.FormatDuration(v.DurationSec),
			Short:    v.IsShort,
		})
	}
	return out
}

func writeSection(b *strings.Builder, title string, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return
	}
	fmt.Fprintf(b, "%s:\n%s\n\n", title, data)
}
