package utils

import (
	"fmt"
	"time"
)

// timestampLayouts are tried in order. Devices in the field report ISO-8601
// with and without timezone offsets and fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp attempts to parse a device-reported timestamp with multiple
// ISO-8601 layouts. Layouts without an explicit offset are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}

	return time.Time{}, fmt.Errorf("failed to parse timestamp '%s': %w", value, lastErr)
}

// ParseTimestampOrNow parses the timestamp if one was reported, falling back
// to the current processing time when the field is absent or unparseable.
func ParseTimestampOrNow(value string) time.Time {
	if value == "" {
		return time.Now().UTC()
	}

	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Now().UTC()
	}

	return t
}
