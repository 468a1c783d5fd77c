// Package youtube provides a client for the YouTube Data API v3.
//
// This package enables tubelens to:
// - Authenticate with an API key
// - Search channels and videos by keyword
// - Resolve a channel from a name, @handle or channel URL
// - Fetch channel statistics and a channel's recent uploads
// - Convert API resources into aggregator records
package youtube

import (
	"context"
	"errors"
)

var (
	// ErrInvalidAPIKey means YouTube rejected the configured API key.
	ErrInvalidAPIKey = errors.New("YouTube API key is invalid or missing")
	// ErrQuotaExceeded means the daily API quota is spent.
	ErrQuotaExceeded = errors.New("YouTube API quota exceeded")
	// ErrNotFound means the requested channel or resource does not exist.
	ErrNotFound = errors.New("YouTube resource not found")
)

// Cache stores raw API responses for the session. Implementations return
// nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Confidence tells how sure IdentifyChannel is about a match.
type Confidence string

const (
	ConfidenceExact     Confidence = "exact"
	ConfidenceAmbiguous Confidence = "ambiguous"
)

// ChannelMatch is a candidate channel for a user's query.
type ChannelMatch struct {
	ChannelID  string     `json:"channel_id"`
	Title      string     `json:"title"`
	Thumbnail  string     `json:"thumbnail,omitempty"`
	Confidence Confidence `json:"confidence"`
}

// RefKind is the kind of identifier found in a channel reference.
type RefKind string

const (
	RefID     RefKind = "id"
	RefHandle RefKind = "handle"
)

// ChannelRef is a channel identifier extracted from user input.
type ChannelRef struct {
	Kind  RefKind
	Value string
}
