package utils

import (
	"time"
)

// Iso8601FromUnixSeconds converts Unix timestamp to ISO8601 format
func Iso8601FromUnixSeconds(sec int64) string {
	return time.Unix(sec, 0).UTC().Format(time.RFC3339)
}

// FeedAge returns how old a feed header timestamp is relative to now.
// A zero timestamp means the producer did not set one, and the age is 0.
func FeedAge(sec int64, now time.Time) time.Duration {
	if sec <= 0 {
		return 0
	}
	return now.Sub(time.Unix(sec, 0))
}
