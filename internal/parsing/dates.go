package parsing

import (
	"fmt"
	"math"
	"time"
)

// FormatPostedAt renders an absolute upstream timestamp as the
// human-relative string shown in listings. The result depends on now, so it
// must be recomputed whenever a response is built, never stored long-term.
func FormatPostedAt(posted, now time.Time) string {
	days := int(math.Floor(now.Sub(posted).Hours() / 24))
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 14:
		return "1 week ago"
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	case days < 60:
		return "1 month ago"
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

// ParseUpstreamTime interprets the two timestamp forms the upstreams use:
// ISO 8601 strings (with or without zone) and Unix seconds.
func ParseUpstreamTime(iso string) (time.Time, error) {
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, iso); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", iso)
}
