// Package parser turns human input into minutes and dates.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/manav03panchal/workflowr/internal/errors"
)

// durationPattern matches "45", "45m", "2 hours", "1h30m", "1h 30min" and "1.5h".
var durationPattern = regexp.MustCompile(`(?i)^(\d+(?:\.\d+)?)\s*(h|hr|hrs|hour|hours|m|min|mins|minute|minutes)?\s*(?:(\d+)\s*(m|min|mins|minute|minutes))?$`)

// ParseMinutes parses a manual time entry into whole minutes. A bare number
// is minutes. A trailing minutes part is only allowed after an hours unit. Fractions are rounded to the nearest minute and the result
// must be positive.
func ParseMinutes(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, invalidDuration(input)
	}

	var d time.Duration
	if matches := durationPattern.FindStringSubmatch(input); matches != nil {
		unit := strings.ToLower(matches[2])
		value, _ := strconv.ParseFloat(matches[1], 64)
		d = unitToDuration(value, unit)
		if matches[3] != "" {
			if !isHours(unit) {
				return 0, invalidDuration(input)
			}
			extra, _ := strconv.ParseFloat(matches[3], 64)
			d += unitToDuration(extra, "m")
		}
	} else if parsed, err := time.ParseDuration(input); err == nil {
		d = parsed
	} else {
		return 0, invalidDuration(input)
	}

	minutes := int(math.Round(d.Minutes()))
	if minutes <= 0 {
		return 0, invalidDuration(input)
	}
	return minutes, nil
}

func unitToDuration(value float64, unit string) time.Duration {
	if isHours(unit) {
		return time.Duration(value * float64(time.Hour))
	}
	return time.Duration(value * float64(time.Minute))
}

func isHours(unit string) bool {
	switch unit {
	case "h", "hr", "hrs", "hour", "hours":
		return true
	}
	return false
}

func invalidDuration(input string) error {
	return errors.NewUserErrorWithField("duration", input,
		"Invalid duration",
		"Try formats like '45', '45m', '1h30m' or '1.5h'").
		Because(errors.ErrInvalidDuration)
}
