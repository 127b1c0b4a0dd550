package reminder

import (
	"fmt"
	"sort"
)

// DefaultTimes are the reminder times used when no settings have been
// persisted yet (late morning and early evening doses).
func DefaultTimes() []ReminderTime {
	return []ReminderTime{{Hour: 11, Minute: 30}, {Hour: 18, Minute: 0}}
}

// Settings is the process-wide reminder configuration. It is loaded once at
// daemon startup and mutated only through UpdateSettings, which persists the
// new value before the scheduler is re-armed.
type Settings struct {
	Enabled bool
	Times   []ReminderTime
}

// DefaultSettings returns the fallback configuration used when persisted
// state is absent or corrupt: notifications on, default times.
func DefaultSettings() Settings {
	return Settings{Enabled: true, Times: DefaultTimes()}
}

// Normalized returns a copy with invalid entries dropped, duplicates
// removed, and times sorted ascending for display. Scheduling treats the
// members independently, so order only matters for coincident-fire
// tie-breaking and display.
func (s Settings) Normalized() Settings {
	out := Settings{Enabled: s.Enabled, Times: make([]ReminderTime, 0, len(s.Times))}
	seen := make(map[ReminderTime]struct{}, len(s.Times))
	for _, t := range s.Times {
		if !t.Valid() {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out.Times = append(out.Times, t)
	}
	sort.Slice(out.Times, func(i, j int) bool { return out.Times[i].Before(out.Times[j]) })
	return out
}

// TimeStrings renders the configured times as "HH:MM" strings.
func (s Settings) TimeStrings() []string {
	out := make([]string, len(s.Times))
	for i, t := range s.Times {
		out[i] = t.String()
	}
	return out
}

// ParseTimes converts "HH:MM" strings into reminder times, rejecting the
// whole set on the first malformed entry.
func ParseTimes(values []string) ([]ReminderTime, error) {
	out := make([]ReminderTime, 0, len(values))
	for _, v := range values {
		t, err := ParseReminderTime(v)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// SettingsStore persists reminder settings. Load must fall back to
// DefaultSettings (never fail fatally) on absent or corrupt state.
type SettingsStore interface {
	Load() (Settings, error)
	Save(Settings) error
}

// UpdateSettings validates and normalizes the requested configuration and
// persists it before returning. Re-arming the scheduler with a fresh
// pending snapshot is the caller's responsibility and a deliberately
// separate step, so persistence can be verified independent of timer side
// effects.
func UpdateSettings(store SettingsStore, enabled bool, times []ReminderTime) (Settings, error) {
	s := Settings{Enabled: enabled, Times: times}.Normalized()
	if err := store.Save(s); err != nil {
		return Settings{}, fmt.Errorf("persist reminder settings: %w", err)
	}
	return s, nil
}
