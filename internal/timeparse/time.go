// Package timeparse parses the date values accepted by criteria flags.
package timeparse

import (
	"fmt"
	"time"
)

// ParseDate parses the date formats accepted by the criteria flags in UTC.
// Supported formats:
//   - YYYY-MM-DD (assumes 00:00:00 UTC)
//   - YYYY-MM-DD HH:MM:SS (UTC)
//   - RFC3339: 2018-10-27T10:00:00Z (can specify any timezone)
//
// Returns the parsed time or an error if the format is invalid.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.DateTime, s); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid date format %q (expected YYYY-MM-DD, YYYY-MM-DD HH:MM:SS, or RFC3339)", s)
}

// Canonical validates a date string and returns it in the YYYY-MM-DD form
// used inside search query tokens.
func Canonical(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return t.UTC().Format(time.DateOnly), nil
}
