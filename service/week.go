package service

import (
	"fmt"
	"time"
)

// DateLayout is the storage format of every calendar date.
const DateLayout = "2006-01-02"

// WeekStart returns midnight of the Monday of t's ISO week, in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, t.Location())
}

// WeekStartDate is WeekStart formatted as YYYY-MM-DD.
func WeekStartDate(t time.Time) string {
	return WeekStart(t).Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		return time.Time{}, validationf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// normalizeWeekStart accepts any date and returns the Monday of its week.
func normalizeWeekStart(s string, loc *time.Location) (string, error) {
	t, err := ParseDate(s, loc)
	if err != nil {
		return "", err
	}
	return WeekStartDate(t), nil
}

// daysBetween counts calendar days from a to b, both YYYY-MM-DD.
func daysBetween(a, b string) (int, error) {
	ta, err := time.Parse(DateLayout, a)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", a, err)
	}
	tb, err := time.Parse(DateLayout, b)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", b, err)
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
