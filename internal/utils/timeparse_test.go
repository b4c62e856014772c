package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Time
	}{
		{
			name:     "rfc3339 with zone",
			input:    "2026-03-01T10:30:45Z",
			expected: time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "offset",
			input:    "2026-03-01T10:30:45+02:00",
			expected: time.Date(2026, 3, 1, 8, 30, 45, 0, time.UTC),
		},
		{
			name:     "fractional seconds",
			input:    "2026-03-01T10:30:45.123456Z",
			expected: time.Date(2026, 3, 1, 10, 30, 45, 123456000, time.UTC),
		},
		{
			name:     "no zone",
			input:    "2026-03-01T10:30:45",
			expected: time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC),
		},
		{
			name:     "space separator",
			input:    "2026-03-01 10:30:45",
			expected: time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseTimestamp(tt.input)
			assert.NoError(t, err)
			assert.True(t, parsed.Equal(tt.expected), "expected %v, got %v", tt.expected, parsed)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	_, err := ParseTimestamp("not-a-timestamp")
	assert.Error(t, err)
}

func TestParseTimestampOrNow(t *testing.T) {
	// Empty and unparseable inputs fall back to processing time
	assert.WithinDuration(t, time.Now().UTC(), ParseTimestampOrNow(""), 5*time.Second)
	assert.WithinDuration(t, time.Now().UTC(), ParseTimestampOrNow("garbage"), 5*time.Second)

	parsed := ParseTimestampOrNow("2026-03-01T10:30:45Z")
	assert.Equal(t, time.Date(2026, 3, 1, 10, 30, 45, 0, time.UTC), parsed.UTC())
}
