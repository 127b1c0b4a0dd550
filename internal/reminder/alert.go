package reminder

import (
	"context"
	"time"
)

// Alert tags. A later alert with the same tag replaces the earlier one on
// channels that support it, so at most one alert per kind is visible and
// the due-reminder and auto-missed alerts never collide with each other.
const (
	TagDueReminder = "due-reminder"
	TagAutoMissed  = "auto-missed"
)

// DefaultAlertTimeout bounds how long an alert stays visible when the user
// does not interact with it.
const DefaultAlertTimeout = 30 * time.Second

// Alert is one user-facing notification. Delivery is best-effort: channels
// degrade to a silent no-op when unavailable.
type Alert struct {
	// Tag identifies the alert kind for replacement semantics.
	Tag string `json:"tag"`
	// Title is the short headline.
	Title string `json:"title"`
	// Body is the human-readable detail line.
	Body string `json:"body"`
	// Count is the number of events aggregated into this alert.
	Count int `json:"count"`
	// RequireInteraction keeps the alert visible until dismissed instead
	// of auto-expiring after Timeout.
	RequireInteraction bool `json:"require_interaction"`
	// Timeout is the auto-dismiss duration for non-interactive alerts.
	Timeout time.Duration `json:"timeout"`
}

// Notifier is the capability port for a notification delivery channel.
// The core depends only on this interface, never on a concrete mechanism.
type Notifier interface {
	// RequestPermission reports whether the channel may deliver alerts.
	// A false result is not an error; it degrades delivery to a no-op.
	RequestPermission(ctx context.Context) (bool, error)

	// Deliver shows the alert. Failures are presentation concerns; the
	// dispatcher logs and swallows them.
	Deliver(ctx context.Context, a Alert) error
}
