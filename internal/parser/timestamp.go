package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/workflowr/internal/errors"
)

// periodRegex matches period expressions like "this week", "last month".
var periodRegex = regexp.MustCompile(`(?i)^(this|current|last|previous)\s+(day|week|month|year)$`)

// ParseDate parses an invoice or filter date relative to now. It accepts
// ISO dates, "today", period starts ("this week", "last month") and
// anything go-dateparser understands ("in 15 days", "next friday").
func ParseDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	switch strings.ToLower(input) {
	case "", "now", "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	case "yesterday":
		return now.AddDate(0, 0, -1), nil
	}

	if t, err := time.ParseInLocation("2006-01-02", input, now.Location()); err == nil {
		return t, nil
	}

	if match := periodRegex.FindStringSubmatch(input); match != nil {
		return periodStart(match[1], match[2], now), nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil || result.Time.IsZero() {
		return time.Time{}, errors.NewUserErrorWithField("date", input,
			"Invalid date",
			"Try formats like '2026-01-31', 'today' or 'in 15 days'").
			Because(errors.ErrInvalidDate)
	}
	return result.Time, nil
}

// ParseDay is ParseDate truncated to local midnight.
func ParseDay(input string, now time.Time) (time.Time, error) {
	t, err := ParseDate(input, now)
	if err != nil {
		return t, err
	}
	return StartOfDay(t), nil
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func periodStart(modifier, period string, now time.Time) time.Time {
	previous := strings.EqualFold(modifier, "last") || strings.EqualFold(modifier, "previous")
	day := StartOfDay(now)

	switch strings.ToLower(period) {
	case "week":
		// Weeks start on Monday.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := day.AddDate(0, 0, 1-weekday)
		if previous {
			start = start.AddDate(0, 0, -7)
		}
		return start
	case "month":
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		if previous {
			start = start.AddDate(0, -1, 0)
		}
		return start
	case "year":
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		if previous {
			start = start.AddDate(-1, 0, 0)
		}
		return start
	default:
		if previous {
			return day.AddDate(0, 0, -1)
		}
		return day
	}
}
