package reminder

import (
	"context"
	"time"

	"github.com/dosewatch/dosewatch/pkg/logger"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// maxSleepCap bounds a single timer sleep so the scheduler re-evaluates the
// wall clock regularly and recovers from NTP steps, DST transitions, and
// system sleep (monotonic clock pause on macOS).
const maxSleepCap = 60 * time.Second

// PendingSource supplies the current snapshot of outstanding doses. The
// scheduler queries it at every reminder firing so an alert always reflects
// the latest state, not the snapshot it was configured with.
type PendingSource interface {
	PendingReminders(ctx context.Context) ([]medtrack.PendingReminder, error)
}

// SchedulerStatus is a point-in-time view of the scheduler state.
type SchedulerStatus struct {
	Enabled    bool         `json:"enabled"`
	Generation int          `json:"generation"`
	Armed      []ArmedTimer `json:"armed"`
}

type configureOp struct {
	settings Settings
	pending  int
	done     chan struct{}
}

type teardownOp struct {
	done chan struct{}
}

type statusOp struct {
	reply chan SchedulerStatus
}

// Scheduler owns the set of live timers: one per configured reminder time
// plus one sweep timer. It is a single-goroutine active object; Configure
// and Teardown replace the whole timer set synchronously inside that
// goroutine, so a canceled timer can never fire afterwards.
//
// The scheduler never polls. Callers re-configure it on every settings
// change and whenever the pending snapshot materially changes.
type Scheduler struct {
	ops   chan any
	fires chan fireBatch
	ctx   context.Context

	source     PendingSource
	dispatcher *Dispatcher
	sweep      *SweepTrigger
	log        logger.Logger
}

// SchedulerConfig carries the scheduler's collaborators.
type SchedulerConfig struct {
	// Source supplies fresh pending snapshots at fire time.
	Source PendingSource
	// Dispatcher emits the aggregate alerts.
	Dispatcher *Dispatcher
	// Sweep runs the daily reconciliation.
	Sweep *SweepTrigger
	// SweepExpr is the 5-field cron expression for the sweep timer.
	// Empty means the midnight default.
	SweepExpr string
	// Log receives scheduler diagnostics.
	Log logger.Logger
}

// NewScheduler creates and starts a scheduler. It begins idle (no timers
// armed) until the first Configure. Both internal goroutines exit when ctx
// is canceled.
func NewScheduler(ctx context.Context, cfg SchedulerConfig) *Scheduler {
	if cfg.Log == nil {
		cfg.Log = logger.NewNopLogger()
	}
	if cfg.SweepExpr == "" {
		cfg.SweepExpr = DefaultSweepExpr
	}
	s := &Scheduler{
		ops:        make(chan any, 16),
		fires:      make(chan fireBatch, 16),
		ctx:        ctx,
		source:     cfg.Source,
		dispatcher: cfg.Dispatcher,
		sweep:      cfg.Sweep,
		log:        cfg.Log,
	}
	go s.run(cfg.SweepExpr)
	go s.dispatchLoop()
	return s
}

// Configure tears down every armed timer and arms the set implied by the
// given settings and pending snapshot. Idempotent: configuring twice with
// identical arguments yields the same number of armed timers. It returns
// once the new timer set is live; arming never waits on external services.
func (s *Scheduler) Configure(settings Settings, pending []medtrack.PendingReminder) {
	op := configureOp{settings: settings, pending: len(pending), done: make(chan struct{})}
	select {
	case s.ops <- op:
		<-op.done
	case <-s.ctx.Done():
	}
}

// Teardown cancels every armed timer. Idempotent and safe to call from any
// state, including before the first Configure.
func (s *Scheduler) Teardown() {
	op := teardownOp{done: make(chan struct{})}
	select {
	case s.ops <- op:
		<-op.done
	case <-s.ctx.Done():
	}
}

// Status returns a snapshot of the armed timers.
func (s *Scheduler) Status() SchedulerStatus {
	op := statusOp{reply: make(chan SchedulerStatus, 1)}
	select {
	case s.ops <- op:
		select {
		case st := <-op.reply:
			return st
		case <-s.ctx.Done():
		}
	case <-s.ctx.Done():
	}
	return SchedulerStatus{}
}

// run is the timer-owning goroutine. It sleeps until the earliest armed
// timer (capped at maxSleepCap), collects coincident due timers into one
// batch, re-arms them, and hands the batch to the dispatch goroutine so
// external-call latency never delays arming the next firing.
func (s *Scheduler) run(sweepExpr string) {
	ts := newTimerSet(sweepExpr)
	enabled := false
	generation := 0

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	resetTimer := func() <-chan time.Time {
		if timer != nil {
			timer.Stop()
		}
		next, ok := ts.next()
		if !ok {
			// Idle, block on the ops channel only.
			return nil
		}
		dur := time.Until(next)
		if dur > maxSleepCap {
			dur = maxSleepCap
		}
		if dur < 0 {
			dur = 0
		}
		timer = time.NewTimer(dur)
		return timer.C
	}

	timerCh := resetTimer()

	for {
		select {
		case <-s.ctx.Done():
			return

		case op := <-s.ops:
			switch op := op.(type) {
			case configureOp:
				ts.rebuild(op.settings, op.pending > 0, time.Now())
				enabled = op.settings.Enabled
				generation++
				if s.dispatcher != nil {
					s.dispatcher.Reset()
				}
				s.log.Info("scheduler configured: generation=%d armed=%d enabled=%t pending=%d",
					generation, len(ts.heap), op.settings.Enabled, op.pending)
				close(op.done)
			case teardownOp:
				ts.clear()
				enabled = false
				s.log.Info("scheduler torn down, all timers canceled")
				close(op.done)
			case statusOp:
				op.reply <- SchedulerStatus{
					Enabled:    enabled,
					Generation: generation,
					Armed:      ts.armed(),
				}
			}
			timerCh = resetTimer()

		case <-timerCh:
			batch := ts.collectDue(time.Now())
			if len(batch.times) > 0 || batch.sweep {
				select {
				case s.fires <- batch:
				case <-s.ctx.Done():
					return
				}
			}
			timerCh = resetTimer()
		}
	}
}

// dispatchLoop serializes batch dispatch so coincident firings keep their
// order guarantee: reminder times in configuration order, sweep last.
func (s *Scheduler) dispatchLoop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case batch := <-s.fires:
			s.dispatchBatch(batch)
		}
	}
}

// dispatchBatch performs one batch's side effects. Every failure here
// degrades this firing only; the armed timer set is untouched.
func (s *Scheduler) dispatchBatch(batch fireBatch) {
	if len(batch.times) > 0 {
		events, err := s.source.PendingReminders(s.ctx)
		if err != nil {
			s.log.Warning("could not fetch pending doses for reminder firing: %v", err)
		} else if s.dispatcher != nil {
			s.dispatcher.NotifyDueReminders(s.ctx, events, batch.day)
		}
	}
	if batch.sweep && s.sweep != nil {
		// Run's error is already logged by the trigger; the next
		// scheduled sweep is the retry.
		_, _ = s.sweep.Run(s.ctx)
	}
}
