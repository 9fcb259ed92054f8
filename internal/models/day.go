package models

import "time"

// NormalizeDay truncates a timestamp to midnight UTC.
func NormalizeDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayKey returns the day-granularity map key for a timestamp, e.g. "2021-11-03".
func DayKey(t time.Time) string {
	return NormalizeDay(t).Format("2006-01-02")
}
