package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

func TestParseSince(t *testing.T) {
	cases := map[string]time.Time{
		"today":      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		"01/03/2024": time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		"29/02/2024": time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		"6h":         time.Date(2024, 3, 15, 8, 30, 0, 0, time.UTC),
		"24 hours":   time.Date(2024, 3, 14, 14, 30, 0, 0, time.UTC),
		"7d":         time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		"1 day":      time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		"2 weeks":    time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		" 1W ":       time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
	}
	for input, want := range cases {
		got, err := ParseSince(input, now)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParseSinceRejects(t *testing.T) {
	for _, input := range []string{"", "yesterday", "30/02/2024", "0 days", "400 days", "53w", "3 months"} {
		_, err := ParseSince(input, now)
		assert.Error(t, err, input)
	}
}

func TestFormatAgo(t *testing.T) {
	assert.Equal(t, "today 09:05", FormatAgo(time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC), now))
	assert.Equal(t, "yesterday 22:00", FormatAgo(time.Date(2024, 3, 14, 22, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "5 days ago", FormatAgo(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), now))
	assert.Equal(t, "01/01/2024", FormatAgo(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC), now))
}

func TestFormatAgoUsesLocalDay(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*60*60)
	localNow := time.Date(2024, 3, 15, 12, 0, 0, 0, sydney)

	// 23:30 UTC on the 14th is 09:30 on the 15th in Sydney
	assert.Equal(t, "today 09:30", FormatAgo(time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC), localNow))
}
