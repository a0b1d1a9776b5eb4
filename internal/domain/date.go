package domain

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar-date format used for every date column.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD string as a UTC civil date.
// time.Parse rejects impossible dates such as 2024-02-30.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q (want YYYY-MM-DD)", ErrValidation, s)
	}
	return t, nil
}

// ParseOptionalDate parses s, returning nil for the empty string.
func ParseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatOptionalDate renders t, or "" when nil.
func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

// Today truncates now to its UTC civil date.
func Today(now time.Time) time.Time {
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ReferenceDate picks the anchor for planned task dates: the contract date,
// else the start date, else the current date.
func ReferenceDate(contractDate, startDate *time.Time, now time.Time) time.Time {
	if d := CoalesceDate(contractDate, startDate); d != nil {
		return *d
	}
	return Today(now)
}
