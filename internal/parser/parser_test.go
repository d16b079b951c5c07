package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/workflowr/internal/errors"
)

// =============================================================================
// Duration Tests
// =============================================================================

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"bare_number_is_minutes", "45", 45},
		{"minutes_suffix", "45m", 45},
		{"minutes_word", "90 minutes", 90},
		{"hours", "2h", 120},
		{"hours_word", "2 hours", 120},
		{"hours_and_minutes", "1h30m", 90},
		{"hours_and_minutes_spaced", "1h 30min", 90},
		{"fractional_hours", "1.5h", 90},
		{"fractional_minutes_round", "2.5", 3},
		{"go_duration_seconds", "90s", 2},
		{"case_insensitive", "1H", 60},
		{"whitespace", "  30m  ", 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMinutes(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMinutesInvalid(t *testing.T) {
	for _, input := range []string{"", "abc", "0", "0m", "-5", "20s", "h30", "45 30m", "10m 30m", "1.5 20min"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseMinutes(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDuration))
			assert.True(t, errors.IsUserError(err))
		})
	}
}

// =============================================================================
// Date Tests
// =============================================================================

// Wednesday 2026-03-11 14:30 UTC.
var refNow = time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"empty_is_now", "", refNow},
		{"today", "Today", refNow},
		{"tomorrow", "tomorrow", refNow.AddDate(0, 0, 1)},
		{"yesterday", "yesterday", refNow.AddDate(0, 0, -1)},
		{"iso", "2026-04-01", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)},
		{"this_week", "this week", time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"last_week", "last week", time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{"this_month", "this month", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"previous_month", "previous month", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{"last_year", "last year", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"last_day", "last day", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input, refNow)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestParseDateNaturalLanguage(t *testing.T) {
	got, err := ParseDate("in 15 days", refNow)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-26", got.Format("2006-01-02"))
}

func TestParseDateInvalid(t *testing.T) {
	_, err := ParseDate("definitely-not-a-date", refNow)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidDate))
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("tomorrow", refNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDay("zzzz qqqq", refNow)
	assert.Error(t, err)
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	in := time.Date(2026, 3, 11, 23, 59, 59, 0, loc)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, loc), StartOfDay(in))
}
