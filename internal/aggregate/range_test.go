package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 15, 30, 0, 0, time.UTC)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantFrom time.Time
		wantTo   time.Time
	}{
		{
			name:     "today",
			input:    "today",
			wantFrom: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "empty defaults to today",
			input:    "",
			wantFrom: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "yesterday",
			input:    "yesterday",
			wantFrom: time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "explicit day",
			input:    "2025-01-06",
			wantFrom: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "inclusive span",
			input:    "2025-01-06:2025-01-08",
			wantFrom: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "single-day span",
			input:    "2025-01-06:2025-01-06",
			wantFrom: time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2025, 1, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.input, now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, r.From)
			assert.Equal(t, tt.wantTo, r.To)
		})
	}
}

func TestParseDateRangeErrors(t *testing.T) {
	for _, input := range []string{
		"14-03-2025",
		"2025-13-40",
		"2025-01-08:2025-01-06",
		"2025-01-06:bogus",
		"garbage",
	} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseDateRange(input, now)
			assert.Error(t, err)
		})
	}
}

func TestRangeString(t *testing.T) {
	single, err := ParseDateRange("2025-01-06", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", single.String())

	span, err := ParseDateRange("2025-01-06:2025-01-08", now)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06 to 2025-01-08", span.String())
}
