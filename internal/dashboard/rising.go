package dashboard

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
)

// RisingOptions tunes FindRisingStars.
type RisingOptions struct {
	// Channels is how many channels to pull from the search. Defaults to 5.
	Channels int
	// Uploads is how many recent uploads to score per channel. Defaults to 20.
	Uploads int
	// SortBy orders the result. Defaults to score.
	SortBy aggregator.RisingSort
	// MinScore drops channels scoring below it.
	MinScore float64
}

// FindRisingStars searches channels for query and scores each one's growth
// from its recent uploads. Channels are fetched concurrently; a channel whose
// uploads cannot be fetched is logged and skipped.
func (s *Service) FindRisingStars(ctx context.Context, query string, opts RisingOptions) ([]aggregator.RisingStarMetrics, error) {
	if opts.Channels <= 0 {
		opts.Channels = DefaultRisingChannels
	}
	if opts.Uploads <= 0 {
		opts.Uploads = DefaultRisingUploads
	}
	if opts.SortBy == "" {
		opts.SortBy = aggregator.SortByScore
	}

	channels, err := s.source.SearchChannels(ctx, query, opts.Channels)
	if err != nil {
		return nil, err
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("channels for %q: %w", query, ErrNoResults)
	}
	channels = channels[:min(opts.Channels, len(channels))]

	now := s.now()
	scored := make([]*aggregator.RisingStarMetrics, len(channels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, ch := range channels {
		g.Go(func() error {
			videos, err := s.source.GetChannelUploads(gctx, ch.ChannelID, opts.Uploads)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				s.logger.Warn().Err(err).Str("channel_id", ch.ChannelID).Msg("skipping channel")
				return nil
			}
			m := aggregator.CalculateRisingScore(ch, videos, now)
			scored[i] = &m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]aggregator.RisingStarMetrics, 0, len(scored))
	for _, m := range scored {
		if m != nil {
			results = append(results, *m)
		}
	}
	results = aggregator.FilterRisingStars(results, opts.MinScore)
	return aggregator.SortRisingStars(results, opts.SortBy), nil
}
