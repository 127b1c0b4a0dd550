package dosecli

import (
	"time"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version string `json:"version"`
}

// Settings is the daemon's reminder configuration as seen over RPC.
type Settings struct {
	Enabled bool     `json:"enabled"`
	Times   []string `json:"times"`
}

// UpdateSettingsParams is the input for settings.update. Nil fields leave
// the corresponding setting unchanged.
type UpdateSettingsParams struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Times   []string `json:"times,omitempty"`
}

// PendingResult is the response for reminders.pending.
type PendingResult struct {
	Reminders []medtrack.PendingReminder `json:"reminders"`
}

// RefreshResult is the response for reminders.refresh.
type RefreshResult struct {
	Pending int `json:"pending"`
}

// ArmedTimer is one live timer in the scheduler status.
type ArmedTimer struct {
	FiresAt time.Time `json:"fires_at"`
	Kind    string    `json:"kind"`
}

// SchedulerStatus is the response for scheduler.status.
type SchedulerStatus struct {
	Enabled    bool         `json:"enabled"`
	Generation int          `json:"generation"`
	Armed      []ArmedTimer `json:"armed"`
}

// HistoryEntry is one delivered notification from history.list.
type HistoryEntry struct {
	ID        string    `json:"id"`
	Tag       string    `json:"tag"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryResult is the response for history.list.
type HistoryResult struct {
	Entries []HistoryEntry `json:"entries"`
}

type historyParams struct {
	Limit int `json:"limit,omitempty"`
}
