package dosecli

import (
	"context"

	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// Version returns the daemon's version string.
func (c *Client) Version(ctx context.Context) (string, error) {
	var res VersionResult
	if err := c.call(ctx, "system.getVersion", nil, &res); err != nil {
		return "", err
	}
	return res.Version, nil
}

// Shutdown asks the daemon to exit.
func (c *Client) Shutdown(ctx context.Context) error {
	var res struct{}
	return c.call(ctx, "system.shutdown", nil, &res)
}

// Settings returns the daemon's reminder configuration.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var res Settings
	if err := c.call(ctx, "settings.get", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// UpdateSettings changes the reminder configuration. Nil fields are left
// unchanged. The daemon persists the new value and re-arms its timers
// before returning.
func (c *Client) UpdateSettings(ctx context.Context, p UpdateSettingsParams) (*Settings, error) {
	var res Settings
	if err := c.call(ctx, "settings.update", p, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SetEnabled toggles reminder notifications on or off.
func (c *Client) SetEnabled(ctx context.Context, enabled bool) (*Settings, error) {
	return c.UpdateSettings(ctx, UpdateSettingsParams{Enabled: &enabled})
}

// Pending returns the outstanding doses the daemon would remind about.
func (c *Client) Pending(ctx context.Context) ([]medtrack.PendingReminder, error) {
	var res PendingResult
	if err := c.call(ctx, "reminders.pending", nil, &res); err != nil {
		return nil, err
	}
	return res.Reminders, nil
}

// Refresh makes the daemon re-query the pending snapshot and re-arm its
// timers. It returns the number of pending doses found.
func (c *Client) Refresh(ctx context.Context) (int, error) {
	var res RefreshResult
	if err := c.call(ctx, "reminders.refresh", nil, &res); err != nil {
		return 0, err
	}
	return res.Pending, nil
}

// Sweep runs the missed-dose reconciliation immediately.
func (c *Client) Sweep(ctx context.Context) (*medtrack.SweepResult, error) {
	var res medtrack.SweepResult
	if err := c.call(ctx, "reminders.sweep", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SchedulerStatus returns the daemon's armed timers.
func (c *Client) SchedulerStatus(ctx context.Context) (*SchedulerStatus, error) {
	var res SchedulerStatus
	if err := c.call(ctx, "scheduler.status", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// History returns recently delivered notifications, newest first.
func (c *Client) History(ctx context.Context, limit int) ([]HistoryEntry, error) {
	var res HistoryResult
	if err := c.call(ctx, "history.list", historyParams{Limit: limit}, &res); err != nil {
		return nil, err
	}
	return res.Entries, nil
}
