package reminder

import (
	"fmt"
	"strings"
	"time"

	"github.com/adhocore/gronx"
)

// ReminderTime is a time of day (hour and minute, no date, no seconds) at
// which pending doses should trigger an alert.
type ReminderTime struct {
	Hour   int
	Minute int
}

// ParseReminderTime parses a "HH:MM" string.
func ParseReminderTime(s string) (ReminderTime, error) {
	var t ReminderTime
	parsed, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return t, fmt.Errorf("invalid reminder time %q, expected HH:MM", s)
	}
	t.Hour = parsed.Hour()
	t.Minute = parsed.Minute()
	return t, nil
}

// String renders the time as "HH:MM".
func (t ReminderTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Valid reports whether the time denotes a real wall-clock time of day.
func (t ReminderTime) Valid() bool {
	return t.Hour >= 0 && t.Hour < 24 && t.Minute >= 0 && t.Minute < 60
}

// Before reports whether t is earlier in the day than o.
func (t ReminderTime) Before(o ReminderTime) bool {
	if t.Hour != o.Hour {
		return t.Hour < o.Hour
	}
	return t.Minute < o.Minute
}

// NextFireTime returns the next instant at which the given time of day
// occurs strictly after now: today if it has not passed yet, otherwise
// tomorrow. The result is always in now's location, recomputed from the
// calendar rather than a fixed 24h offset so it stays pinned to the wall
// clock across DST transitions.
func NextFireTime(now time.Time, t ReminderTime) time.Time {
	fire := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if fire.After(now) {
		return fire
	}
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), t.Hour, t.Minute, 0, 0, now.Location())
}

// NextMidnight returns the next 00:00:00 boundary strictly after now.
func NextMidnight(now time.Time) time.Time {
	tomorrow := now.AddDate(0, 0, 1)
	return time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
}

// DefaultSweepExpr fires the missed-dose sweep at every midnight boundary.
const DefaultSweepExpr = "0 0 * * *"

// ValidateSweepExpr checks a sweep cron expression. Exactly 5 fields are
// required (minute hour day-of-month month day-of-week).
func ValidateSweepExpr(expr string) error {
	if expr == "" {
		return fmt.Errorf("invalid sweep expression %q, expected 5-field cron format", expr)
	}
	if len(strings.Fields(expr)) != 5 {
		return fmt.Errorf("invalid sweep expression %q, expected 5-field cron format", expr)
	}
	if !gronx.IsValid(expr) {
		return fmt.Errorf("invalid sweep expression %q, expected 5-field cron format", expr)
	}
	return nil
}

// NextSweepTime returns the next occurrence of the sweep expression
// strictly after now. An invalid expression falls back to the next
// midnight boundary so the sweep timer always gets armed.
func NextSweepTime(expr string, now time.Time) time.Time {
	if expr == "" {
		expr = DefaultSweepExpr
	}
	next, err := gronx.NextTickAfter(expr, now, false)
	if err != nil {
		return NextMidnight(now)
	}
	return next
}
