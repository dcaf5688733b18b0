package models

import "time"

// DailyWindow is the rolling 24 hours ending at now.
const DailyWindow = 24 * time.Hour

// Window is a closed time range [From, To].
type Window struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// DailyWindowAt returns the rolling 24h window ending at now.
func DailyWindowAt(now time.Time) Window {
	return Window{From: now.Add(-DailyWindow), To: now}
}

// MonthlyWindowAt returns the calendar month-to-date window in UTC.
func MonthlyWindowAt(now time.Time) Window {
	utc := now.UTC()
	start := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Window{From: start, To: now}
}
