package shared

import "time"

// ParseDate accepts RFC3339 or YYYY-MM-DD.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	return time.Parse("2006-01-02", value)
}

// Day truncates a timestamp to its calendar day in UTC.
func Day(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

// DateOrToday parses the value when present, otherwise returns today's day.
func DateOrToday(value string) (time.Time, error) {
	if value == "" {
		return Day(time.Now().UTC()), nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return time.Time{}, err
	}
	return Day(parsed), nil
}
