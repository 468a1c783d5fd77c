package aggregator

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// emojiRanges covers Misc Symbols, Dingbats and the pictograph blocks
// U+1F300..U+1F9FF. It is a coarse presence test, not a full emoji grammar.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F300, Hi: 0x1F9FF, Stride: 1},
	},
}

var hashtagPattern = regexp.MustCompile(`#[\w가-힣]+`)

// ComputeMetaStats measures title, hashtag, emoji and tag habits. An empty
// collection yields zero stats.
func ComputeMetaStats(videos []VideoRecord) MetaStats {
	if len(videos) == 0 {
		return MetaStats{}
	}

	var duration, titleLen, tags int64
	var emojiVideos, hashtagVideos int
	for _, v := range videos {
		duration += v.DurationSec
		titleLen += int64(utf8.RuneCountInString(v.Title))
		tags += int64(len(v.Tags))

		if HasEmoji(v.Title) {
			emojiVideos++
		}
		if HasHashtag(v.Title) || HasHashtag(v.Description) {
			hashtagVideos++
		}
	}

	n := float64(len(videos))
	return MetaStats{
		AvgDuration:      float64(duration) / n,
		AvgTitleLength:   float64(titleLen) / n,
		EmojiUsageRate:   float64(emojiVideos) / n * 100,
		HashtagUsageRate: float64(hashtagVideos) / n * 100,
		TagsAvgCount:     float64(tags) / n,
	}
}

// HasEmoji reports whether s contains at least one rune in the common emoji ranges.
func HasEmoji(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.Is(emojiRanges, r)
	}) >= 0
}

// HasHashtag reports whether s contains a "#word" token.
func HasHashtag(s string) bool {
	return hashtagPattern.MatchString(s)
}

// ExtractHashtags returns every hashtag token in s, in order of appearance.
func ExtractHashtags(s string) []string {
	return hashtagPattern.FindAllString(s, -1)
}
