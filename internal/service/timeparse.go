package service

import (
	"fmt"
	"strings"
	"time"
)

// Fractional seconds are accepted after the seconds field by time.Parse
// even when the layout does not mention them.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05-0700",
	"2006-01-02T15:04-0700",
	"2006-01-02 15:04-0700",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. A trailing "Z" is rewritten
// to "+00:00" first; a value without an offset is taken as UTC and a bare
// date means midnight UTC.
func ParseTimestamp(value string) (time.Time, error) {
	normalized := strings.TrimSpace(value)
	if strings.HasSuffix(normalized, "Z") {
		normalized = strings.TrimSuffix(normalized, "Z") + "+00:00"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, normalized); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// FormatTimestamp renders a stored timestamp for API responses, always in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
