package aggregator

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ShortMaxDurationSec is the longest duration still counted as a Short.
const ShortMaxDurationSec = 60

var isoDurationPattern = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO 8601 duration such as "PT1H2M3S" to seconds.
// Unparseable input yields 0.
func ParseISODuration(s string) int64 {
	m := isoDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}

	units := []int64{86400, 3600, 60, 1}
	var total int64
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0
		}
		total += n * unit
	}
	return total
}

// IsShort reports whether a video of the given length counts as a Short.
func IsShort(durationSec int64) bool {
	return durationSec <= ShortMaxDurationSec
}

// FormatNumber abbreviates large counts: 1500 -> "1.5K", 2300000 -> "2.3M".
func FormatNumber(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatDuration renders seconds as H:MM:SS, or M:SS under an hour.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ratio divides and returns 0 for a zero denominator.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// daysBetween returns later-earlier in fractional days.
func daysBetween(later, earlier time.Time) float64 {
	return later.Sub(earlier).Hours() / 24
}
