// Package daemon wires the dosewatch components together and runs them:
// stores, med-tracker client, notifiers, scheduler, and the RPC surfaces.
package daemon

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/dosewatch/dosewatch/internal/config"
	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/internal/server"
	"github.com/dosewatch/dosewatch/internal/store"
	"github.com/dosewatch/dosewatch/pkg/logger"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// shutdownGrace lets an in-flight system.shutdown response reach the client
// before the transports close.
const shutdownGrace = 100 * time.Millisecond

// Runner owns the daemon's components and lifecycle.
type Runner struct {
	cfg     *config.Config
	log     logger.Logger
	version string

	client    *medtrack.Client
	settings  *store.SettingsFile
	history   *store.History
	hub       *notify.Hub
	desktop   *notify.Desktop
	scheduler *reminder.Scheduler
	sweep     *reminder.SweepTrigger

	mu      sync.RWMutex
	current reminder.Settings
	cancel  context.CancelFunc
}

// NewRunner creates a daemon runner. Nothing is opened until Run.
func NewRunner(cfg *config.Config, log logger.Logger, version string) *Runner {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Runner{cfg: cfg, log: log, version: version}
}

// Run starts the daemon and blocks until ctx is canceled or a surface
// fails. On return every component has been released.
func (r *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	r.cancel = cancel

	timeout := time.Duration(r.cfg.API.Timeout) * time.Second
	r.client = medtrack.NewClient(r.cfg.API.BaseURL, &http.Client{Timeout: timeout})

	r.settings = store.NewSettingsFile(afero.NewOsFs(), r.cfg.Daemon.SettingsPath, r.log)

	history, err := store.OpenHistory(r.cfg.Daemon.HistoryPath)
	if err != nil {
		return err
	}
	r.history = history
	defer r.history.Close()

	r.hub = notify.NewHub(r.log)
	dispatcher := reminder.NewDispatcher(r.buildNotifier(), r.history, r.log)
	if r.desktop != nil {
		defer r.desktop.Close()
	}
	r.sweep = reminder.NewSweepTrigger(r.client, dispatcher, r.log)

	r.scheduler = reminder.NewScheduler(ctx, reminder.SchedulerConfig{
		Source:     r.client,
		Dispatcher: dispatcher,
		Sweep:      r.sweep,
		SweepExpr:  r.cfg.Daemon.SweepExpr,
		Log:        r.log,
	})

	settings, err := r.settings.Load()
	if err != nil {
		return err
	}
	r.setCurrent(settings)
	r.arm(ctx, settings)

	srv := server.NewServer(r.log, server.Config{
		SocketPath: r.cfg.Daemon.SocketPath,
		WebAddr:    r.cfg.Daemon.WebAddr,
	}, server.NewRPCServer(r), r.hub)

	r.log.Info("dosewatch daemon %s starting", r.version)
	return srv.Start(ctx)
}

// buildNotifier assembles the notifier fan-out from the configured
// backends. The event hub is always included so web clients see alerts.
func (r *Runner) buildNotifier() *notify.Multi {
	channels := []reminder.Notifier{r.hub}
	for _, name := range r.cfg.Notifiers {
		switch name {
		case config.NotifierDesktop:
			r.desktop = notify.NewDesktop(r.log)
			channels = append(channels, r.desktop)
		case config.NotifierLog:
			channels = append(channels, notify.NewLogNotifier(r.log))
		}
	}
	return notify.NewMulti(r.log, channels...)
}

// arm configures the scheduler from the settings and a fresh pending
// snapshot. An unreachable med-tracker service degrades to an empty
// snapshot so the sweep timer still gets armed.
func (r *Runner) arm(ctx context.Context, settings reminder.Settings) int {
	var pending []medtrack.PendingReminder
	if settings.Enabled {
		var err error
		pending, err = r.client.PendingReminders(ctx)
		if err != nil {
			r.log.Warning("could not fetch pending doses, arming without reminders: %v", err)
			pending = nil
		}
	}
	r.scheduler.Configure(settings, pending)
	return len(pending)
}

func (r *Runner) setCurrent(s reminder.Settings) {
	r.mu.Lock()
	r.current = s
	r.mu.Unlock()
}

// Version implements server.Backend.
func (r *Runner) Version() string { return r.version }

// Settings implements server.Backend.
func (r *Runner) Settings() reminder.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// UpdateSettings persists the new configuration and re-arms the scheduler
// with a fresh pending snapshot.
func (r *Runner) UpdateSettings(ctx context.Context, enabled *bool, times []string) (reminder.Settings, error) {
	next := r.Settings()
	if enabled != nil {
		next.Enabled = *enabled
	}
	if times != nil {
		parsed, err := reminder.ParseTimes(times)
		if err != nil {
			return reminder.Settings{}, err
		}
		next.Times = parsed
	}
	saved, err := reminder.UpdateSettings(r.settings, next.Enabled, next.Times)
	if err != nil {
		return reminder.Settings{}, err
	}
	r.setCurrent(saved)
	r.arm(ctx, saved)
	return saved, nil
}

// Pending implements server.Backend.
func (r *Runner) Pending(ctx context.Context) ([]medtrack.PendingReminder, error) {
	return r.client.PendingReminders(ctx)
}

// Refresh re-queries the pending snapshot and re-arms the scheduler.
func (r *Runner) Refresh(ctx context.Context) (int, error) {
	settings := r.Settings()
	if !settings.Enabled {
		r.scheduler.Configure(settings, nil)
		return 0, nil
	}
	pending, err := r.client.PendingReminders(ctx)
	if err != nil {
		return 0, err
	}
	r.scheduler.Configure(settings, pending)
	return len(pending), nil
}

// RunSweep implements server.Backend.
func (r *Runner) RunSweep(ctx context.Context) (medtrack.SweepResult, error) {
	return r.sweep.Run(ctx)
}

// SchedulerStatus implements server.Backend.
func (r *Runner) SchedulerStatus() reminder.SchedulerStatus {
	return r.scheduler.Status()
}

// RecentHistory implements server.Backend.
func (r *Runner) RecentHistory(ctx context.Context, limit int) ([]store.HistoryEntry, error) {
	return r.history.Recent(ctx, limit)
}

// Shutdown stops the daemon after a short grace period.
func (r *Runner) Shutdown() {
	r.log.Info("shutdown requested over RPC")
	go func() {
		time.Sleep(shutdownGrace)
		r.cancel()
	}()
}

var _ server.Backend = (*Runner)(nil)
