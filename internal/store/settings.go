// Package store persists the daemon's local state: the reminder settings
// file and the notification history database. Medication data itself lives
// in the external med-tracker service and is never stored here.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// settingsPayload is the on-disk JSON shape of the reminder settings.
type settingsPayload struct {
	NotificationsEnabled bool     `json:"notificationsEnabled"`
	ReminderTimes        []string `json:"reminderTimes"`
}

// SettingsFile stores reminder settings as a small JSON file. Writes go
// through a temp file and rename so a crash mid-write can never leave a
// torn file behind.
type SettingsFile struct {
	fs   afero.Fs
	path string
	log  logger.Logger
}

// NewSettingsFile creates a settings store at path on fs. Passing an
// afero.MemMapFs makes the store fully testable without touching disk.
func NewSettingsFile(fs afero.Fs, path string, log logger.Logger) *SettingsFile {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SettingsFile{fs: fs, path: path, log: log}
}

// Load reads the persisted settings. Absent or corrupt state falls back to
// the defaults and is never fatal; the fallback is logged so the condition
// is visible.
func (s *SettingsFile) Load() (reminder.Settings, error) {
	buf, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warning("could not read settings file, using defaults: %v", err)
		}
		return reminder.DefaultSettings(), nil
	}

	var payload settingsPayload
	if err := json.Unmarshal(buf, &payload); err != nil {
		s.log.Warning("settings file is corrupt, using defaults: %v", err)
		return reminder.DefaultSettings(), nil
	}
	times, err := reminder.ParseTimes(payload.ReminderTimes)
	if err != nil {
		s.log.Warning("settings file has malformed reminder times, using defaults: %v", err)
		return reminder.DefaultSettings(), nil
	}
	return reminder.Settings{
		Enabled: payload.NotificationsEnabled,
		Times:   times,
	}.Normalized(), nil
}

// Save persists the settings atomically.
func (s *SettingsFile) Save(settings reminder.Settings) error {
	payload := settingsPayload{
		NotificationsEnabled: settings.Enabled,
		ReminderTimes:        settings.TimeStrings(),
	}
	buf, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, buf, 0o644); err != nil {
		return err
	}
	return s.fs.Rename(tmp, s.path)
}

var _ reminder.SettingsStore = (*SettingsFile)(nil)
