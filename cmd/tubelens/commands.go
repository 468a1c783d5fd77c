package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
	"github.com/gauthierbraillon/tubelens/internal/config"
	"github.com/gauthierbraillon/tubelens/internal/dashboard"
	"github.com/gauthierbraillon/tubelens/internal/report"
)

// reportFlags are shared by the commands that can append a strategy report.
type reportFlags struct {
	report bool
	ai     bool
	json   bool
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.report, "report", false, "Append a strategy report")
	cmd.Flags().BoolVar(&f.ai, "ai", false, "Write the report with OpenAI (needs TUBELENS_OPENAI_API_KEY)")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print JSON instead of text")
}

// newChannelCmd creates the channel subcommand.
func newChannelCmd(a *app) *cobra.Command {
	var flags reportFlags
	var opts dashboard.ChannelOptions

	cmd := &cobra.Command{
		Use:   "channel <name|url|id>",
		Short: "Analyze a YouTube channel",
		Long:  "Analyze a channel's recent uploads: KPIs, Pareto, upload heatmap, metadata habits, growth phases and content health.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.service()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			d, err := svc.AnalyzeChannel(ctx, args[0], opts)
			if err != nil {
				return fmt.Errorf("channel analysis failed: %w", err)
			}

			var r *report.Report
			if flags.report {
				rep := a.writer(cmd, flags.ai).Diagnosis(ctx, d)
				r = &rep
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					*dashboard.ChannelDashboard
					Report *report.Report `json:"report,omitempty"`
				}{d, r})
			}

			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatChannel(d))
			if r != nil {
				fmt.Fprint(cmd.OutOrStdout(), "\n"+a.formatter.FormatReport(*r))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Videos, "videos", "n", dashboard.DefaultChannelVideos, "Number of recent uploads to analyze")
	cmd.Flags().Float64Var(&opts.ParetoPercent, "top", aggregator.DefaultParetoPercent, "Top percentage of videos for the Pareto analysis")
	flags.register(cmd)

	return cmd
}

// newKeywordCmd creates the keyword subcommand.
func newKeywordCmd(a *app) *cobra.Command {
	var flags reportFlags
	var videos int

	cmd := &cobra.Command{
		Use:   "keyword <query>",
		Short: "Analyze the market for a search keyword",
		Long:  "Search videos for a keyword and summarize who publishes, in which format, and whether the market is open.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.service()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			k, err := svc.AnalyzeKeyword(ctx, strings.Join(args, " "), videos)
			if err != nil {
				return fmt.Errorf("keyword analysis failed: %w", err)
			}

			var r *report.Report
			if flags.report {
				rep := a.writer(cmd, flags.ai).KeywordStrategy(ctx, k)
				r = &rep
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					*dashboard.KeywordDashboard
					Report *report.Report `json:"report,omitempty"`
				}{k, r})
			}

			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatKeyword(k))
			if r != nil {
				fmt.Fprint(cmd.OutOrStdout(), "\n"+a.formatter.FormatReport(*r))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&videos, "videos", "n", dashboard.DefaultKeywordVideos, "Number of videos to sample")
	flags.register(cmd)

	return cmd
}

// newBlueOceanCmd creates the blueocean subcommand.
func newBlueOceanCmd(a *app) *cobra.Command {
	var flags reportFlags
	var topN int

	cmd := &cobra.Command{
		Use:   "blueocean <query>",
		Short: "Classify a keyword as a blue or red ocean",
		Long:  "Judge whether a keyword's top videos leave room for a newcomer, and suggest content ideas.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cleanup, err := a.service()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			m, err := svc.AnalyzeBlueOcean(ctx, strings.Join(args, " "), topN)
			if err != nil {
				return fmt.Errorf("blue ocean analysis failed: %w", err)
			}
			year := svc.Now().Year()

			var r *report.Report
			if flags.report {
				rep := a.writer(cmd, flags.ai).BlueOcean(ctx, *m, year)
				r = &rep
			}

			if flags.json {
				return writeJSON(cmd.OutOrStdout(), struct {
					*aggregator.BlueOceanMetrics
					Ideas  []string       `json:"ideas"`
					Report *report.Report `json:"report,omitempty"`
				}{m, report.BlueOceanIdeas(m.Query, year), r})
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, a.formatter.FormatBlueOcean(*m))
			if r != nil {
				fmt.Fprint(out, "\n"+a.formatter.FormatReport(*r))
				return nil
			}
			fmt.Fprint(out, "\nContent ideas\n")
			for i, idea := range report.BlueOceanIdeas(m.Query, year) {
				fmt.Fprintf(out, "  %2d. %s\n", i+1, idea)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&topN, "top", aggregator.DefaultBlueOceanTopN, "Number of top videos to analyze")
	flags.register(cmd)

	return cmd
}

// newRisingCmd creates the rising subcommand.
func newRisingCmd(a *app) *cobra.Command {
	var opts dashboard.RisingOptions
	var sortBy string
	var asJSON bool
	var onlyRising bool

	cmd := &cobra.Command{
		Use:   "rising <query>",
		Short: "Find rising channels for a topic",
		Long:  "Search channels for a topic and rank them by growth opportunity from their recent uploads.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.SortBy = aggregator.RisingSort(sortBy)
			switch opts.SortBy {
			case aggregator.SortByScore, aggregator.SortByGrowth, aggregator.SortByEfficiency, aggregator.SortByActivity:
			default:
				return fmt.Errorf("invalid sort %q: must be score, growth, efficiency or activity", sortBy)
			}
			if onlyRising {
				opts.MinScore = max(opts.MinScore, aggregator.DefaultRisingThreshold)
			}

			svc, cleanup, err := a.service()
			if err != nil {
				return err
			}
			defer cleanup()

			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			stars, err := svc.FindRisingStars(ctx, strings.Join(args, " "), opts)
			if err != nil {
				return fmt.Errorf("rising star search failed: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), stars)
			}
			fmt.Fprint(cmd.OutOrStdout(), a.formatter.FormatRising(stars))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.Channels, "channels", dashboard.DefaultRisingChannels, "Number of channels to compare")
	cmd.Flags().IntVar(&opts.Uploads, "uploads", dashboard.DefaultRisingUploads, "Recent uploads to score per channel")
	cmd.Flags().StringVar(&sortBy, "sort", string(aggregator.SortByScore), "Sort by score, growth, efficiency or activity")
	cmd.Flags().Float64Var(&opts.MinScore, "min-score", 0, "Hide channels scoring below this")
	cmd.Flags().BoolVar(&onlyRising, "only-rising", false, fmt.Sprintf("Keep only channels scoring at least %d", aggregator.DefaultRisingThreshold))
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")

	return cmd
}

// newConfigCmd creates the config subcommand.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
		Long:  "Show the resolved tubelens settings. API keys are masked.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.cfg
			out := cmd.OutOrStdout()
			timezone := c.Timezone
			if timezone == "" {
				timezone = "local"
			}
			redisURL := c.RedisURL
			if redisURL == "" {
				redisURL = "(disabled)"
			}

			fmt.Fprintf(out, "YouTube API key:     %s\n", config.MaskSecret(c.YouTubeAPIKey))
			fmt.Fprintf(out, "YouTube API URL:     %s\n", c.APIURL)
			fmt.Fprintf(out, "OpenAI API key:      %s\n", config.MaskSecret(c.OpenAIAPIKey))
			fmt.Fprintf(out, "OpenAI URL:          %s\n", c.OpenAIURL)
			fmt.Fprintf(out, "OpenAI model:        %s\n", c.OpenAIModel)
			fmt.Fprintf(out, "Redis cache:         %s\n", redisURL)
			fmt.Fprintf(out, "Cache TTL:           %s\n", c.CacheTTL)
			fmt.Fprintf(out, "Log level:           %s\n", c.LogLevel)
			fmt.Fprintf(out, "Timezone:            %s\n", timezone)
			fmt.Fprintf(out, "Requests per second: %g\n", c.RequestsPerSecond)
			fmt.Fprintf(out, ".env file loaded:    %t\n", c.EnvFileLoaded)
			return nil
		},
	}

	return cmd
}
