// Package main provides the tubelens CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gauthierbraillon/tubelens/internal/cache"
	"github.com/gauthierbraillon/tubelens/internal/config"
	"github.com/gauthierbraillon/tubelens/internal/dashboard"
	"github.com/gauthierbraillon/tubelens/internal/display"
	"github.com/gauthierbraillon/tubelens/internal/logging"
	"github.com/gauthierbraillon/tubelens/internal/openai"
	"github.com/gauthierbraillon/tubelens/internal/report"
	"github.com/gauthierbraillon/tubelens/internal/youtube"
)

const commandTimeout = 2 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// app carries the resolved configuration shared by every subcommand.
type app struct {
	cfg       *config.Config
	logger    zerolog.Logger
	formatter *display.TerminalFormatter
}

func newApp(stderr io.Writer) *app {
	cfg := config.Load()
	return &app{
		cfg:       cfg,
		logger:    logging.New(cfg.LogLevel, stderr),
		formatter: display.NewTerminalFormatter(),
	}
}

// service wires the YouTube client, the session cache and the dashboard
// service. The returned cleanup closes the cache connection.
func (a *app) service() (*dashboard.Service, func(), error) {
	if err := a.cfg.RequireYouTubeKey(); err != nil {
		return nil, nil, err
	}
	loc, err := a.cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	store := cache.New(a.cfg.RedisURL, a.cfg.CacheTTL, a.logger)
	client := youtube.NewClient(a.cfg.YouTubeAPIKey,
		youtube.WithBaseURL(a.cfg.APIURL),
		youtube.WithRateLimit(a.cfg.RequestsPerSecond),
		youtube.WithCache(store),
		youtube.WithLogger(a.logger),
	)
	svc := dashboard.NewService(client,
		dashboard.WithLocation(loc),
		dashboard.WithLogger(a.logger),
	)
	return svc, func() { _ = store.Close() }, nil
}

// writer returns a report writer backed by OpenAI when useAI is set and a key
// is configured, or by templates otherwise.
func (a *app) writer(cmd *cobra.Command, useAI bool) *report.Writer {
	if !useAI {
		return report.NewWriter(nil, a.logger)
	}
	if !a.cfg.AIEnabled() {
		fmt.Fprintf(cmd.ErrOrStderr(), "AI reports disabled: %v; using templates\n", openai.ErrMissingAPIKey)
		return report.NewWriter(nil, a.logger)
	}
	client := openai.NewClient(a.cfg.OpenAIAPIKey,
		openai.WithBaseURL(a.cfg.OpenAIURL),
		openai.WithModel(a.cfg.OpenAIModel),
	)
	return report.NewWriter(client, a.logger)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newRootCmd creates the root command for the tubelens CLI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tubelens",
		Short:   "Analyze YouTube channels and keyword markets",
		Long:    "Tubelens analyzes YouTube channels and search keywords: KPIs, upload habits, rising channels and blue-ocean opportunities.",
		Version: currentVersion(),
	}

	rootCmd.SetVersionTemplate("tubelens version {{.Version}}\n")

	a := newApp(os.Stderr)
	rootCmd.AddCommand(newChannelCmd(a))
	rootCmd.AddCommand(newKeywordCmd(a))
	rootCmd.AddCommand(newBlueOceanCmd(a))
	rootCmd.AddCommand(newRisingCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}
