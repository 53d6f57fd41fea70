package siripush

import (
	"time"
)

func iso8601Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// clockTime renders a call time as wall-clock HH:MM:SS in the offset the
// upstream sent it with.
func clockTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("15:04:05")
}
