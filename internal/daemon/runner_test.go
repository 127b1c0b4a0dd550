package daemon

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/afero"

	"github.com/dosewatch/dosewatch/internal/config"
	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/internal/store"
	"github.com/dosewatch/dosewatch/pkg/logger"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// newTestRunner assembles a runner against a fake med-tracker service,
// bypassing Run so no sockets are opened.
func newTestRunner(t *testing.T, pending []medtrack.PendingReminder) *Runner {
	t.Helper()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/api/schedules/pending-reminders":
			_ = json.NewEncoder(w).Encode(pending)
		case "/api/schedules/auto-mark-missed":
			_ = json.NewEncoder(w).Encode(medtrack.SweepResult{Message: "ok", UpdatedCount: 1})
		default:
			http.NotFound(w, req)
		}
	}))
	t.Cleanup(api.Close)

	log := logger.NewNopLogger()
	client := medtrack.NewClient(api.URL+"/api", api.Client())
	history, err := store.OpenHistory(":memory:")
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	t.Cleanup(func() { _ = history.Close() })

	hub := notify.NewHub(log)
	dispatcher := reminder.NewDispatcher(notify.NewMulti(log, hub), history, log)
	sweep := reminder.NewSweepTrigger(client, dispatcher, log)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	scheduler := reminder.NewScheduler(ctx, reminder.SchedulerConfig{
		Source:     client,
		Dispatcher: dispatcher,
		Sweep:      sweep,
		Log:        log,
	})

	r := &Runner{
		cfg:       &config.Config{},
		log:       log,
		version:   "test",
		client:    client,
		settings:  store.NewSettingsFile(afero.NewMemMapFs(), "/settings.json", log),
		history:   history,
		hub:       hub,
		scheduler: scheduler,
		sweep:     sweep,
		cancel:    cancel,
	}
	r.setCurrent(reminder.DefaultSettings())
	return r
}

func TestUpdateSettingsPersistsAndRearms(t *testing.T) {
	pending := []medtrack.PendingReminder{{}}
	r := newTestRunner(t, pending)
	ctx := context.Background()

	got, err := r.UpdateSettings(ctx, nil, []string{"08:00", "20:00"})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if len(got.Times) != 2 {
		t.Fatalf("times = %v", got.TimeStrings())
	}

	// Persisted value survives a reload.
	loaded, err := r.settings.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Times) != 2 || loaded.Times[0].String() != "08:00" {
		t.Errorf("persisted times = %v", loaded.TimeStrings())
	}

	// Two reminder timers plus the sweep timer.
	st := r.SchedulerStatus()
	if len(st.Armed) != 3 {
		t.Errorf("armed = %d, want 3", len(st.Armed))
	}
}

func TestUpdateSettingsDisableTearsDownReminders(t *testing.T) {
	r := newTestRunner(t, []medtrack.PendingReminder{{}})
	ctx := context.Background()

	disabled := false
	if _, err := r.UpdateSettings(ctx, &disabled, nil); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	st := r.SchedulerStatus()
	if len(st.Armed) != 0 {
		t.Errorf("armed = %d, want 0 when disabled", len(st.Armed))
	}
}

func TestRefreshWithNoPendingArmsSweepOnly(t *testing.T) {
	r := newTestRunner(t, nil)

	n, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if n != 0 {
		t.Errorf("pending = %d, want 0", n)
	}
	st := r.SchedulerStatus()
	if len(st.Armed) != 1 || st.Armed[0].Kind != reminder.KindSweep {
		t.Errorf("armed = %+v, want sweep only", st.Armed)
	}
}

func TestRunSweepRecordsHistory(t *testing.T) {
	r := newTestRunner(t, nil)
	ctx := context.Background()

	res, err := r.RunSweep(ctx)
	if err != nil {
		t.Fatalf("RunSweep: %v", err)
	}
	if res.UpdatedCount != 1 {
		t.Errorf("updated_count = %d", res.UpdatedCount)
	}
	entries, err := r.RecentHistory(ctx, 10)
	if err != nil {
		t.Fatalf("RecentHistory: %v", err)
	}
	if len(entries) != 1 || entries[0].Tag != reminder.TagAutoMissed {
		t.Errorf("history = %+v", entries)
	}
}
