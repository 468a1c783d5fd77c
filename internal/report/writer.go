package report

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
	"github.com/gauthierbraillon/tubelens/internal/dashboard"
)

// Source tells where a report body came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceTemplate Source = "template"
)

// Report is a rendered strategy report.
type Report struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	Source Source `json:"source"`
}

// Generator completes a chat prompt. The openai client satisfies it.
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Writer renders reports, preferring the generator when one is set.
type Writer struct {
	gen    Generator
	logger zerolog.Logger
}

// NewWriter creates a Writer. A nil gen makes every report a template report.
func NewWriter(gen Generator, logger zerolog.Logger) *Writer {
	return &Writer{gen: gen, logger: logger}
}

// Diagnosis writes the channel diagnosis for d.
func (w *Writer) Diagnosis(ctx context.Context, d *dashboard.ChannelDashboard) Report {
	return w.write(ctx, "Channel diagnosis: "+d.Channel.Title,
		diagnosisSystem, diagnosisPrompt(d),
		func() string { return Diagnosis(d) })
}

// KeywordStrategy writes the content strategy for k.
func (w *Writer) KeywordStrategy(ctx context.Context, k *dashboard.KeywordDashboard) Report {
	year := k.GeneratedAt.Year()
	return w.write(ctx, "Keyword strategy: "+k.Query,
		keywordSystem, keywordPrompt(k),
		func() string { return KeywordStrategy(k, year) })
}

// BlueOcean writes the market entry plan for m.
func (w *Writer) BlueOcean(ctx context.Context, m aggregator.BlueOceanMetrics, year int) Report {
	return w.write(ctx, "Blue ocean analysis: "+m.Query,
		blueOceanSystem, blueOceanPrompt(m, year),
		func() string { return BlueOceanPlan(m, year) })
}

func (w *Writer) write(ctx context.Context, title, system, user string, fallback func() string) Report {
	if w.gen != nil {
		body, err := w.gen.Generate(ctx, system, user)
		if err == nil {
			return Report{Title: title, Body: body, Source: SourceAI}
		}
		if errors.Is(err, context.Canceled) {
			w.logger.Debug().Str("report", title).Msg("generation canceled, using template")
		} else {
			w.logger.Warn().Err(err).Str("report", title).Msg("AI generation failed, using template")
		}
	}
	return Report{Title: title, Body: fallback(), Source: SourceTemplate}
}
