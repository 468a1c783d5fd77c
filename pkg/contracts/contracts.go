// Package contracts holds sample responses of the external APIs tubelens
// talks to, in the exact shape the providers document. Client tests replay
// them to catch parsing drift.
package contracts

// YouTubeChannelSearchContract is a search.list response for type=channel.
const YouTubeChannelSearchContract = `{
  "kind": "youtube#searchListResponse",
  "etag": "q1",
  "regionCode": "US",
  "pageInfo": {"totalResults": 1, "resultsPerPage": 5},
  "items": [{
    "kind": "youtube#searchResult",
    "etag": "q2",
    "id": {"kind": "youtube#channel", "channelId": "UCX6OQ3DkcsbYNE6H8uQQuVA"},
    "snippet": {
      "publishedAt": "2012-02-20T00:43:50Z",
      "channelId": "UCX6OQ3DkcsbYNE6H8uQQuVA",
      "title": "MrBeast",
      "description": "SUBSCRIBE FOR A COOKIE!",
      "thumbnails": {"default": {"url": "https://yt3.ggpht.com/mrbeast=s88"}},
      "channelTitle": "MrBeast",
      "liveBroadcastContent": "none",
      "publishTime": "2012-02-20T00:43:50Z"
    }
  }]
}`

// YouTubeVideoSearchContract is a search.list response for type=video with
// a further page available.
const YouTubeVideoSearchContract = `{
  "kind": "youtube#searchListResponse",
  "etag": "s1",
  "nextPageToken": "CAIQAA",
  "regionCode": "US",
  "pageInfo": {"totalResults": 1000000, "resultsPerPage": 2},
  "items": [
    {"kind": "youtube#searchResult", "etag": "s2", "id": {"kind": "youtube#video", "videoId": "dQw4w9WgXcQ"},
     "snippet": {"publishedAt": "2009-10-25T06:57:33Z", "channelId": "UCuAXFkgsw1L7xaCfnd5JJOw", "title": "Never Gonna Give You Up"}},
    {"kind": "youtube#searchResult", "etag": "s3", "id": {"kind": "youtube#video", "videoId": "9bZkp7q19f0"},
     "snippet": {"publishedAt": "2012-07-15T07:46:32Z", "channelId": "UCrDkAvwZum-UTjHmzDI2iIw", "title": "Gangnam Style"}}
  ]
}`

// YouTubeChannelsContract is a channels.list response with snippet,
// statistics and contentDetails parts.
const YouTubeChannelsContract = `{
  "kind": "youtube#channelListResponse",
  "etag": "c1",
  "pageInfo": {"totalResults": 1, "resultsPerPage": 5},
  "items": [{
    "kind": "youtube#channel",
    "etag": "c2",
    "id": "UCX6OQ3DkcsbYNE6H8uQQuVA",
    "snippet": {
      "title": "MrBeast",
      "description": "SUBSCRIBE FOR A COOKIE!",
      "customUrl": "@mrbeast",
      "publishedAt": "2012-02-20T00:43:50Z",
      "thumbnails": {"default": {"url": "https://yt3.ggpht.com/mrbeast=s88", "width": 88, "height": 88}},
      "country": "US"
    },
    "contentDetails": {"relatedPlaylists": {"likes": "", "uploads": "UUX6OQ3DkcsbYNE6H8uQQuVA"}},
    "statistics": {
      "viewCount": "52000000000",
      "subscriberCount": "250000000",
      "hiddenSubscriberCount": false,
      "videoCount": "780"
    }
  }]
}`

// YouTubePlaylistItemsContract is a playlistItems.list response with the
// contentDetails part.
const YouTubePlaylistItemsContract = `{
  "kind": "youtube#playlistItemListResponse",
  "etag": "p1",
  "pageInfo": {"totalResults": 780, "resultsPerPage": 2},
  "items": [
    {"kind": "youtube#playlistItem", "etag": "p2", "id": "VVVY1",
     "contentDetails": {"videoId": "abc123DEF45", "videoPublishedAt": "2026-03-01T16:00:00Z"}},
    {"kind": "youtube#playlistItem", "etag": "p3", "id": "VVVY2",
     "contentDetails": {"videoId": "xyz789GHI01", "videoPublishedAt": "2026-02-22T16:00:00Z"}}
  ]
}`

// YouTubeVideosContract is a videos.list response with snippet, statistics
// and contentDetails parts. The second video hides its like count.
const YouTubeVideosContract = `{
  "kind": "youtube#videoListResponse",
  "etag": "v1",
  "items": [
    {
      "kind": "youtube#video",
      "etag": "v2",
      "id": "abc123DEF45",
      "snippet": {
        "publishedAt": "2026-03-01T16:00:00Z",
        "channelId": "UCX6OQ3DkcsbYNE6H8uQQuVA",
        "title": "I Built 100 Houses And Gave Them Away! 🏠",
        "description": "Thanks for watching #shorts",
        "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/abc123DEF45/default.jpg"}},
        "channelTitle": "MrBeast",
        "tags": ["mrbeast", "houses"],
        "categoryId": "24",
        "liveBroadcastContent": "none"
      },
      "contentDetails": {"duration": "PT1H2M3S", "dimension": "2d", "definition": "hd", "caption": "false"},
      "statistics": {"viewCount": "120000000", "likeCount": "3500000", "favoriteCount": "0", "commentCount": "95000"}
    },
    {
      "kind": "youtube#video",
      "etag": "v3",
      "id": "xyz789GHI01",
      "snippet": {
        "publishedAt": "2026-02-22T16:00:00Z",
        "channelId": "UCX6OQ3DkcsbYNE6H8uQQuVA",
        "title": "Would you do this for $10,000?",
        "description": ""
      },
      "contentDetails": {"duration": "PT58S"},
      "statistics": {"viewCount": "45000000", "favoriteCount": "0", "commentCount": "12000"}
    }
  ]
}`

// YouTubeQuotaErrorContract is the 403 body sent once the daily quota is spent.
const YouTubeQuotaErrorContract = `{
  "error": {
    "code": 403,
    "message": "The request cannot be completed because you have exceeded your <a href=\"/youtube/v3/getting-started#quota\">quota</a>.",
    "errors": [{"message": "quota exceeded", "domain": "youtube.quota", "reason": "quotaExceeded"}]
  }
}`

// OpenAIChatCompletionContract is a chat.completions response.
const OpenAIChatCompletionContract = `{
  "id": "chatcmpl-abc123",
  "object": "chat.completion",
  "created": 1741000000,
  "model": "gpt-4o-mini-2024-07-18",
  "choices": [{
    "index": 0,
    "message": {"role": "assistant", "content": "## Verdict\nThis keyword is a blue ocean.", "refusal": null},
    "logprobs": null,
    "finish_reason": "stop"
  }],
  "usage": {"prompt_tokens": 812, "completion_tokens": 420, "total_tokens": 1232}
}`

// OpenAIErrorContract is the 401 body for an invalid API key.
const OpenAIErrorContract = `{
  "error": {
    "message": "Incorrect API key provided: sk-test. You can find your API key at https://platform.openai.com/account/api-keys.",
    "type": "invalid_request_error",
    "param": null,
    "code": "invalid_api_key"
  }
}`
