// Package dashboard assembles analytics dashboards from YouTube data.
//
// The Service fetches channel and video records through a Source and runs
// them through the aggregator. Every "now" read goes through the injected
// clock so a dashboard is reproducible for a given instant.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
	"github.com/gauthierbraillon/tubelens/internal/youtube"
)

// ErrNoResults is returned when a search or channel lookup finds nothing.
var ErrNoResults = errors.New("no results found")

const (
	DefaultChannelVideos  = 50
	DefaultKeywordVideos  = 50
	DefaultRisingChannels = 5
	DefaultRisingUploads  = 20
	DefaultConcurrency    = 4
)

// Source is the subset of the YouTube client the dashboards need.
type Source interface {
	IdentifyChannel(ctx context.Context, query string) ([]youtube.ChannelMatch, error)
	GetChannels(ctx context.Context, ids []string) ([]aggregator.ChannelRecord, error)
	GetChannelUploads(ctx context.Context, channelID string, limit int) ([]aggregator.VideoRecord, error)
	SearchVideos(ctx context.Context, query string, limit int) ([]aggregator.VideoRecord, error)
	SearchChannels(ctx context.Context, query string, limit int) ([]aggregator.ChannelRecord, error)
}

// Option configures the Service.
type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithLocation sets the zone upload heatmaps are bucketed in. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		s.loc = loc
	}
}

// WithLogger sets the logger used for skipped channels.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithConcurrency bounds how many channels FindRisingStars fetches at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Service builds dashboards.
type Service struct {
	source      Source
	now         func() time.Time
	loc         *time.Location
	logger      zerolog.Logger
	concurrency int
}

// NewService creates a Service reading from source.
func NewService(source Source, opts ...Option) *Service {
	s := &Service{
		source:      source,
		now:         time.Now,
		loc:         time.Local,
		logger:      zerolog.Nop(),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current instant according to the service clock.
func (s *Service) Now() time.Time {
	return s.now()
}

// ChannelOptions tunes AnalyzeChannel.
type ChannelOptions struct {
	// Videos is how many recent uploads to analyze. Defaults to 50.
	Videos int
	// ParetoPercent is the top share examined by the Pareto analysis. Defaults to 20.
	ParetoPercent float64
}

// ChannelDashboard is the full analysis of one channel.
type ChannelDashboard struct {
	Channel      aggregator.ChannelRecord     `json:"channel"`
	Alternatives []youtube.ChannelMatch       `json:"alternatives,omitempty"`
	Videos       []aggregator.VideoRecord     `json:"videos"`
	KPIs         aggregator.KPISummary        `json:"kpis"`
	Pareto       aggregator.ParetoResult      `json:"pareto"`
	Heatmap      []aggregator.HeatmapCell     `json:"heatmap"`
	PeakSlot     *aggregator.HeatmapCell      `json:"peak_slot,omitempty"`
	Meta         aggregator.MetaStats         `json:"meta"`
	GrowthPhases []aggregator.GrowthPhase     `json:"growth_phases"`
	HealthScore  int                          `json:"health_score"`
	Rising       aggregator.RisingStarMetrics `json:"rising"`
	GeneratedAt  time.Time                    `json:"generated_at"`
}

// AnalyzeChannel resolves query to a channel and analyzes its recent uploads.
// When the query is ambiguous the first match is analyzed and the others are
// reported as alternatives.
func (s *Service) AnalyzeChannel(ctx context.Context, query string, opts ChannelOptions) (*ChannelDashboard, error) {
	if opts.Videos <= 0 {
		opts.Videos = DefaultChannelVideos
	}
	if opts.ParetoPercent <= 0 {
		opts.ParetoPercent = aggregator.DefaultParetoPercent
	}

	matches, err := s.source.IdentifyChannel(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("channel %q: %w", query, ErrNoResults)
	}

	channels, err := s.source.GetChannels(ctx, []string{matches[0].ChannelID})
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("channel %q: %w", query, ErrNoResults)
	}
	channel := channels[0]

	videos, err := s.source.GetChannelUploads(ctx, channel.ChannelID, opts.Videos)
	if err != nil {
		return nil, err
	}

	now := s.now()
	heatmap := aggregator.ComputeUploadHeatmapIn(videos, s.loc)
	d := &ChannelDashboard{
		Channel:      channel,
		Alternatives: matches[1:],
		Videos:       videos,
		KPIs:         aggregator.ComputeKPIs(videos, now),
		Pareto:       aggregator.ComputePareto(videos, opts.ParetoPercent),
		Heatmap:      heatmap,
		Meta:         aggregator.ComputeMetaStats(videos),
		GrowthPhases: aggregator.ComputeGrowthPhases(videos),
		HealthScore:  aggregator.ComputeHealthScore(videos),
		Rising:       aggregator.CalculateRisingScore(channel, videos, now),
		GeneratedAt:  now,
	}
	if peak, ok := aggregator.PeakUploadSlot(heatmap); ok {
		d.PeakSlot = &peak
	}

	s.logger.Debug().
		Str("channel_id", channel.ChannelID).
		Int("videos", len(videos)).
		Msg("channel analyzed")
	return d, nil
}

// KeywordDashboard is the market analysis of one search keyword.
type KeywordDashboard struct {
	Query       string                      `json:"query"`
	Videos      []aggregator.VideoRecord    `json:"videos"`
	KPIs        aggregator.KPISummary       `json:"kpis"`
	Meta        aggregator.MetaStats        `json:"meta"`
	Summary     aggregator.KeywordSummary   `json:"summary"`
	BlueOcean   aggregator.BlueOceanMetrics `json:"blue_ocean"`
	GeneratedAt time.Time                   `json:"generated_at"`
}

// AnalyzeKeyword searches up to limit videos for query and analyzes the market.
func (s *Service) AnalyzeKeyword(ctx context.Context, query string, limit int) (*KeywordDashboard, error) {
	if limit <= 0 {
		limit = DefaultKeywordVideos
	}

	videos, err := s.searchVideos(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &KeywordDashboard{
		Query:       query,
		Videos:      videos,
		KPIs:        aggregator.ComputeKPIs(videos, now),
		Meta:        aggregator.ComputeMetaStats(videos),
		Summary:     aggregator.SummarizeKeyword(query, videos, now),
		BlueOcean:   aggregator.AnalyzeBlueOcean(query, videos, len(videos), now),
		GeneratedAt: now,
	}, nil
}

// AnalyzeBlueOcean classifies the market for query from its top N videos.
func (s *Service) AnalyzeBlueOcean(ctx context.Context, query string, topN int) (*aggregator.BlueOceanMetrics, error) {
	if topN <= 0 {
		topN = aggregator.DefaultBlueOceanTopN
	}

	videos, err := s.searchVideos(ctx, query, topN)
	if err != nil {
		return nil, err
	}

	m := aggregator.AnalyzeBlueOcean(query, videos, topN, s.now())
	return &m, nil
}

func (s *Service) searchVideos(ctx context.Context, query string, limit int) ([]aggregator.VideoRecord, error) {
	videos, err := s.source.SearchVideos(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	if len(videos) == 0 {
		return nil, fmt.Errorf("keyword %q: %w", query, ErrNoResults)
	}
	return videos, nil
}
