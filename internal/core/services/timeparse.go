package services

import (
	"fmt"
	"time"

	"github.com/sean-rowe/weather-bot/internal/core/domain"
)

// dateLayouts are the accepted date input formats, tried in order.
var dateLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"02.01.06",
	"2.1.2006",
}

// timeLayouts are the accepted time-of-day input formats, tried in order.
var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"15",
}

// ParseDateTime combines optional date and time-of-day inputs into one civil
// timestamp. A missing date defaults to today, a missing time to the current
// time of day, both taken from now. The result carries no timezone meaning;
// callers localize it to the relevant place.
func ParseDateTime(dateInput, timeInput string, now time.Time) (time.Time, error) {
	date := now

	if dateInput != "" {
		parsed, err := parseFirst(dateInput, dateLayouts)
		if err != nil {
			return time.Time{}, &domain.InputParseError{Input: dateInput, Cause: err}
		}
		date = parsed
	}

	clock := now

	if timeInput != "" {
		parsed, err := parseFirst(timeInput, timeLayouts)
		if err != nil {
			return time.Time{}, &domain.InputParseError{Input: timeInput, Cause: err}
		}
		clock = parsed
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC), nil
}

// parseFirst tries each layout in order and returns the first success.
func parseFirst(input string, layouts []string) (time.Time, error) {
	for _, layout := range layouts {
		if t, err := time.Parse(layout, input); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("input matches none of the accepted formats")
}
