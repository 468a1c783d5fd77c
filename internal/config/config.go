// Package config resolves tubelens settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingYouTubeKey is returned when a command needs the YouTube Data API
// key and none is configured.
var ErrMissingYouTubeKey = errors.New("YouTube API key not configured - set TUBELENS_YOUTUBE_API_KEY")

const (
	DefaultAPIURL            = "https://www.googleapis.com"
	DefaultOpenAIURL         = "https://api.openai.com"
	DefaultOpenAIModel       = "gpt-4o-mini"
	DefaultCacheTTL          = 6 * time.Hour
	DefaultLogLevel          = "warn"
	DefaultRequestsPerSecond = 5.0
	DefaultEnvFile           = ".env"
)

// Config holds all runtime settings.
type Config struct {
	YouTubeAPIKey     string
	APIURL            string
	OpenAIAPIKey      string
	OpenAIURL         string
	OpenAIModel       string
	RedisURL          string
	CacheTTL          time.Duration
	LogLevel          string
	Timezone          string
	RequestsPerSecond float64

	// EnvFileLoaded reports whether a .env file was found and applied.
	EnvFileLoaded bool
}

// Load reads the .env file named by TUBELENS_ENV_FILE (default ".env") if it
// exists, then resolves every setting from the environment. Variables already
// set in the process win over the file. Malformed numbers and durations fall
// back to their defaults.
func Load() *Config {
	envFile := getEnv("TUBELENS_ENV_FILE", DefaultEnvFile)
	loaded := godotenv.Load(envFile) == nil

	return &Config{
		YouTubeAPIKey:     os.Getenv("TUBELENS_YOUTUBE_API_KEY"),
		APIURL:            strings.TrimRight(getEnv("TUBELENS_API_URL", DefaultAPIURL), "/"),
		OpenAIAPIKey:      os.Getenv("TUBELENS_OPENAI_API_KEY"),
		OpenAIURL:         strings.TrimRight(getEnv("TUBELENS_OPENAI_URL", DefaultOpenAIURL), "/"),
		OpenAIModel:       getEnv("TUBELENS_OPENAI_MODEL", DefaultOpenAIModel),
		RedisURL:          os.Getenv("TUBELENS_REDIS_URL"),
		CacheTTL:          getDuration("TUBELENS_CACHE_TTL", DefaultCacheTTL),
		LogLevel:          getEnv("TUBELENS_LOG_LEVEL", DefaultLogLevel),
		Timezone:          os.Getenv("TUBELENS_TIMEZONE"),
		RequestsPerSecond: getFloat("TUBELENS_REQUESTS_PER_SECOND", DefaultRequestsPerSecond),
		EnvFileLoaded:     loaded,
	}
}

// RequireYouTubeKey returns ErrMissingYouTubeKey when no API key is set.
func (c *Config) RequireYouTubeKey() error {
	if c.YouTubeAPIKey == "" {
		return ErrMissingYouTubeKey
	}
	return nil
}

// AIEnabled reports whether LLM-backed reports can be generated.
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Location resolves Timezone. An empty value means the process-local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TUBELENS_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// MaskSecret hides all but the last four characters of a credential.
func MaskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || f <= 0 {
		return fallback
	}
	return f
}
