package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/gauthierbraillon/tubelens/internal/aggregator"
)

const (
	defaultBaseURL = "https://www.googleapis.com"
	apiPath        = "/youtube/v3"

	// maxPageSize is the largest maxResults and id batch the API accepts.
	maxPageSize = 50

	defaultRequestsPerSecond = 5
	maxIdentifyMatches       = 5
)

// HTTPClient interface for making HTTP requests (allows injection for testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryPolicy bounds the exponential backoff applied to retryable failures.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// DefaultRetryPolicy retries three times over at most 30 seconds.
var DefaultRetryPolicy = RetryPolicy{
	MaxTries:        3,
	InitialInterval: 1 * time.Second,
	MaxInterval:     10 * time.Second,
	MaxElapsedTime:  30 * time.Second,
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBaseURL sets a custom base URL (useful for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithRateLimit caps outgoing requests per second. Non-positive values disable the limit.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), max(1, int(requestsPerSecond)))
	}
}

// WithRetryPolicy overrides DefaultRetryPolicy.
func WithRetryPolicy(p RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = p
	}
}

// WithCache enables response caching.
func WithCache(cache Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger used for retries and cache failures.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// Client is a YouTube Data API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPClient
	limiter    *rate.Limiter
	retry      RetryPolicy
	cache      Cache
	logger     zerolog.Logger
}

// NewClient creates a new YouTube API client authenticated with apiKey.
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(defaultRequestsPerSecond, defaultRequestsPerSecond),
		retry:      DefaultRetryPolicy,
		logger:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchChannels finds up to limit channels matching query and returns their
// details in search order.
func (c *Client) SearchChannels(ctx context.Context, query string, limit int) ([]aggregator.ChannelRecord, error) {
	params := url.Values{
		"part":       {"snippet"},
		"type":       {"channel"},
		"q":          {query},
		"maxResults": {strconv.Itoa(pageSize(limit))},
	}

	var response searchResponse
	if err := c.get(ctx, "/search", params, &response); err != nil {
		return nil, fmt.Errorf("failed to search channels: %w", err)
	}

	ids := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		id := item.ID.ChannelID
		if id == "" {
			id = item.Snippet.ChannelID
		}
		if id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return []aggregator.ChannelRecord{}, nil
	}

	return c.GetChannels(ctx, ids)
}

// GetChannels fetches channel details and statistics. Results follow the
// order of ids; unknown ids are skipped.
func (c *Client) GetChannels(ctx context.Context, ids []string) ([]aggregator.ChannelRecord, error) {
	byID := make(map[string]aggregator.ChannelRecord, len(ids))
	for _, batch := range batches(ids, maxPageSize) {
		params := url.Values{
			"part": {"snippet,statistics"},
			"id":   {strings.Join(batch, ",")},
		}

		var response channelsResponse
		if err := c.get(ctx, "/channels", params, &response); err != nil {
			return nil, fmt.Errorf("failed to fetch channels: %w", err)
		}
		for _, item := range response.Items {
			byID[item.ID] = item.toRecord()
		}
	}

	channels := make([]aggregator.ChannelRecord, 0, len(byID))
	for _, id := range ids {
		if ch, ok := byID[id]; ok {
			channels = append(channels, ch)
			delete(byID, id)
		}
	}
	return channels, nil
}

// GetChannelUploads returns the channel's latest limit uploads, newest first.
func (c *Client) GetChannelUploads(ctx context.Context, channelID string, limit int) ([]aggregator.VideoRecord, error) {
	params := url.Values{
		"part": {"contentDetails"},
		"id":   {channelID},
	}

	var channel channelsResponse
	if err := c.get(ctx, "/channels", params, &channel); err != nil {
		return nil, fmt.Errorf("failed to fetch channel %s: %w", channelID, err)
	}
	if len(channel.Items) == 0 {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}
	playlistID := channel.Items[0].ContentDetails.RelatedPlaylists.Uploads
	if playlistID == "" {
		return []aggregator.VideoRecord{}, nil
	}

	if limit <= 0 {
		limit = maxPageSize
	}
	ids := make([]string, 0, limit)
	pageToken := ""
	for len(ids) < limit {
		params := url.Values{
			"part":       {"contentDetails"},
			"playlistId": {playlistID},
			"maxResults": {strconv.Itoa(pageSize(limit - len(ids)))},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page playlistItemsResponse
		if err := c.get(ctx, "/playlistItems", params, &page); err != nil {
			return nil, fmt.Errorf("failed to fetch uploads of %s: %w", channelID, err)
		}
		for _, item := range page.Items {
			if item.ContentDetails.VideoID != "" {
				ids = append(ids, item.ContentDetails.VideoID)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" || len(page.Items) == 0 {
			break
		}
	}

	return c.GetVideos(ctx, ids[:min(limit, len(ids))])
}

// GetVideos fetches snippet, statistics and duration for ids in batches of
// 50. Results follow the order of ids; unavailable videos are skipped.
func (c *Client) GetVideos(ctx context.Context, ids []string) ([]aggregator.VideoRecord, error) {
	videos := make([]aggregator.VideoRecord, 0, len(ids))
	for _, batch := range batches(ids, maxPageSize) {
		params := url.Values{
			"part": {"snippet,statistics,contentDetails"},
			"id":   {strings.Join(batch, ",")},
		}

		var response videosResponse
		if err := c.get(ctx, "/videos", params, &response); err != nil {
			return nil, fmt.Errorf("failed to fetch videos: %w", err)
		}

		byID := make(map[string]aggregator.VideoRecord, len(response.Items))
		for _, item := range response.Items {
			byID[item.ID] = item.toRecord()
		}
		for _, id := range batch {
			if v, ok := byID[id]; ok {
				videos = append(videos, v)
			}
		}
	}
	return videos, nil
}

// SearchVideos returns up to limit videos matching query in relevance order.
func (c *Client) SearchVideos(ctx context.Context, query string, limit int) ([]aggregator.VideoRecord, error) {
	if limit <= 0 {
		limit = maxPageSize
	}

	ids := make([]string, 0, limit)
	pageToken := ""
	for len(ids) < limit {
		params := url.Values{
			"part":       {"snippet"},
			"type":       {"video"},
			"q":          {query},
			"maxResults": {strconv.Itoa(pageSize(limit - len(ids)))},
		}
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page searchResponse
		if err := c.get(ctx, "/search", params, &page); err != nil {
			return nil, fmt.Errorf("failed to search videos: %w", err)
		}
		for _, item := range page.Items {
			if item.ID.VideoID != "" {
				ids = append(ids, item.ID.VideoID)
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" || len(page.Items) == 0 {
			break
		}
	}

	return c.GetVideos(ctx, ids[:min(limit, len(ids))])
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	body, err := c.doRequest(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", strings.TrimPrefix(path, "/"), err)
	}
	return nil
}

// doRequest performs a GET against the API, consulting the cache first and
// retrying rate limits, server errors and transport failures with backoff.
func (c *Client) doRequest(ctx context.Context, path string, params url.Values) ([]byte, error) {
	cacheKey := apiPath + path + "?" + params.Encode()
	if c.cache != nil {
		cached, err := c.cache.Get(ctx, cacheKey)
		if err != nil {
			c.logger.Warn().Err(err).Msg("cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}
	query.Set("key", c.apiKey)
	requestURL := c.baseURL + apiPath + path + "?" + query.Encode()

	operation := func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, fmt.Errorf("YouTube API unreachable: %w", err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode == http.StatusOK {
			return body, nil
		}

		apiErr := c.handleAPIError(resp.StatusCode, body)
		if isRetryableStatus(resp.StatusCode) && !errors.Is(apiErr, ErrQuotaExceeded) && !errors.Is(apiErr, ErrInvalidAPIKey) {
			return nil, apiErr
		}
		return nil, backoff.Permanent(apiErr)
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.retry.InitialInterval
	bo.MaxInterval = c.retry.MaxInterval

	body, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(max(c.retry.MaxTries, 1)),
		backoff.WithMaxElapsedTime(c.retry.MaxElapsedTime),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.logger.Warn().Err(err).Str("path", path).Dur("retry_in", next).Msg("retrying YouTube request")
		}),
	)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, body); err != nil {
			c.logger.Warn().Err(err).Msg("cache write failed")
		}
	}
	return body, nil
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func pageSize(limit int) int {
	if limit <= 0 || limit > maxPageSize {
		return maxPageSize
	}
	return limit
}

func batches(ids []string, size int) [][]string {
	var out [][]string
	for start := 0; start < len(ids); start += size {
		out = append(out, ids[start:min(start+size, len(ids))])
	}
	return out
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// API response types (private - implementation detail)

type thumbnails struct {
	Default struct {
		URL string `json:"url"`
	} `json:"default"`
}

type searchResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ID struct {
			VideoID   string `json:"videoId"`
			ChannelID string `json:"channelId"`
		} `json:"id"`
		Snippet struct {
			ChannelID string `json:"channelId"`
			Title     string `json:"title"`
		} `json:"snippet"`
	} `json:"items"`
}

type channelItem struct {
	ID      string `json:"id"`
	Snippet struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		PublishedAt string     `json:"publishedAt"`
		Thumbnails  thumbnails `json:"thumbnails"`
	} `json:"snippet"`
	Statistics struct {
		SubscriberCount string `json:"subscriberCount"`
		ViewCount       string `json:"viewCount"`
		VideoCount      string `json:"videoCount"`
	} `json:"statistics"`
	ContentDetails struct {
		RelatedPlaylists struct {
			Uploads string `json:"uploads"`
		} `json:"relatedPlaylists"`
	} `json:"contentDetails"`
}

func (item channelItem) toRecord() aggregator.ChannelRecord {
	publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	return aggregator.ChannelRecord{
		ChannelID:   item.ID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Thumbnail:   item.Snippet.Thumbnails.Default.URL,
		PublishedAt: publishedAt,
		Stats: aggregator.ChannelStats{
			Subscribers: parseCount(item.Statistics.SubscriberCount),
			Views:       parseCount(item.Statistics.ViewCount),
			VideoCount:  parseCount(item.Statistics.VideoCount),
		},
	}
}

type channelsResponse struct {
	Items []channelItem `json:"items"`
}

type playlistItemsResponse struct {
	NextPageToken string `json:"nextPageToken"`
	Items         []struct {
		ContentDetails struct {
			VideoID string `json:"videoId"`
		} `json:"contentDetails"`
	} `json:"items"`
}

type videoItem struct {
	ID      string `json:"id"`
	Snippet struct {
		ChannelID   string   `json:"channelId"`
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
		PublishedAt string   `json:"publishedAt"`
	} `json:"snippet"`
	Statistics struct {
		ViewCount    string `json:"viewCount"`
		LikeCount    string `json:"likeCount"`
		CommentCount string `json:"commentCount"`
	} `json:"statistics"`
	ContentDetails struct {
		Duration string `json:"duration"`
	} `json:"contentDetails"`
}

func (item videoItem) toRecord() aggregator.VideoRecord {
	publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	duration := aggregator.ParseISODuration(item.ContentDetails.Duration)
	return aggregator.VideoRecord{
		VideoID:     item.ID,
		ChannelID:   item.Snippet.ChannelID,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Tags:        item.Snippet.Tags,
		PublishedAt: publishedAt,
		DurationSec: duration,
		IsShort:     aggregator.IsShort(duration),
		Stats: aggregator.VideoStats{
			Views:    parseCount(item.Statistics.ViewCount),
			Likes:    parseCount(item.Statistics.LikeCount),
			Comments: parseCount(item.Statistics.CommentCount),
		},
	}
}

type videosResponse struct {
	Items []videoItem `json:"items"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) handleAPIError(statusCode int, body []byte) error {
	var parsed errorResponse
	_ = json.Unmarshal(body, &parsed)
	msg := parsed.Error.Message

	switch {
	case strings.Contains(msg, "unregistered callers") || strings.Contains(msg, "API key"):
		return fmt.Errorf("%w - check TUBELENS_YOUTUBE_API_KEY", ErrInvalidAPIKey)
	case strings.Contains(strings.ToLower(msg), "quota"):
		return fmt.Errorf("%w - try again after the daily reset", ErrQuotaExceeded)
	}

	switch statusCode {
	case http.StatusBadRequest:
		if msg != "" {
			return fmt.Errorf("YouTube API rejected the request: %s", msg)
		}
		return fmt.Errorf("YouTube API rejected the request")
	case http.StatusUnauthorized:
		return fmt.Errorf("%w - YouTube API authentication failed", ErrInvalidAPIKey)
	case http.StatusForbidden:
		return fmt.Errorf("YouTube API access denied - check that the YouTube Data API is enabled for your key")
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusTooManyRequests:
		return fmt.Errorf("YouTube API rate limit exceeded - please try again later")
	case http.StatusServiceUnavailable:
		return fmt.Errorf("YouTube API temporarily unavailable - please try again in a few minutes")
	case http.StatusInternalServerError, http.StatusBadGateway, http.StatusGatewayTimeout:
		return fmt.Errorf("YouTube API server error - please try again later")
	default:
		return fmt.Errorf("YouTube API error (status %d) - please try again", statusCode)
	}
}
