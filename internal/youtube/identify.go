package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var channelIDPattern = regexp.MustCompile(`^UC[\w-]{22}$`)

// ParseChannelURL extracts a channel reference from a YouTube channel URL
// (/channel/ID, /@handle, /c/name, /user/name), a bare @handle or a bare
// channel ID. It reports false for anything else, including plain names.
func ParseChannelURL(raw string) (ChannelRef, bool) {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return ChannelRef{}, false
	case channelIDPattern.MatchString(raw):
		return ChannelRef{Kind: RefID, Value: raw}, true
	case strings.HasPrefix(raw, "@") && len(raw) > 1 && !strings.ContainsAny(raw, " /"):
		return ChannelRef{Kind: RefHandle, Value: raw[1:]}, true
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ChannelRef{}, false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	if host != "youtube.com" {
		return ChannelRef{}, false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	first := segments[0]
	switch {
	case first == "channel" && len(segments) > 1 && segments[1] != "":
		return ChannelRef{Kind: RefID, Value: segments[1]}, true
	case strings.HasPrefix(first, "@") && len(first) > 1:
		return ChannelRef{Kind: RefHandle, Value: first[1:]}, true
	case (first == "c" || first == "user") && len(segments) > 1 && segments[1] != "":
		return ChannelRef{Kind: RefHandle, Value: segments[1]}, true
	}
	return ChannelRef{}, false
}

// IdentifyChannel resolves a user query to candidate channels. A channel ID
// that exists is an exact match. Otherwise the handle or query is searched:
// a single result is exact, several are ambiguous and capped at five. No
// match returns an empty slice.
func (c *Client) IdentifyChannel(ctx context.Context, query string) ([]ChannelMatch, error) {
	ref, ok := ParseChannelURL(query)
	if ok && ref.Kind == RefID {
		channels, err := c.GetChannels(ctx, []string{ref.Value})
		if err != nil {
			return nil, fmt.Errorf("failed to identify channel: %w", err)
		}
		if len(channels) > 0 {
			return []ChannelMatch{matchFor(channels[0].ChannelID, channels[0].Title, channels[0].Thumbnail, ConfidenceExact)}, nil
		}
	}

	searchQuery := strings.TrimSpace(query)
	if ok && ref.Kind == RefHandle {
		searchQuery = ref.Value
	}

	channels, err := c.SearchChannels(ctx, searchQuery, maxPageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to identify channel: %w", err)
	}

	switch len(channels) {
	case 0:
		return []ChannelMatch{}, nil
	case 1:
		return []ChannelMatch{matchFor(channels[0].ChannelID, channels[0].Title, channels[0].Thumbnail, ConfidenceExact)}, nil
	}

	matches := make([]ChannelMatch, 0, maxIdentifyMatches)
	for _, ch := range channels[:min(maxIdentifyMatches, len(channels))] {
		matches = append(matches, matchFor(ch.ChannelID, ch.Title, ch.Thumbnail, ConfidenceAmbiguous))
	}
	return matches, nil
}

func matchFor(id, title, thumbnail string, confidence Confidence) ChannelMatch {
	return ChannelMatch{ChannelID: id, Title: title, Thumbnail: thumbnail, Confidence: confidence}
}
