package reminder

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dosewatch/dosewatch/pkg/logger"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// HistorySink records delivered alerts for later inspection. Recording is
// observability only: failures are logged and never affect dispatch.
type HistorySink interface {
	RecordAlert(a Alert) error
}

// DispatchRecord describes the last alert sent for a given tag within the
// current scheduler generation. It is in-memory only and does not survive
// restarts.
type DispatchRecord struct {
	Day      string
	EventIDs []string
	SentAt   time.Time
}

// Dispatcher turns batches of due doses into aggregate alerts and hands
// them to the delivery channel. It asks for permission once per process
// and degrades to a silent no-op when the channel is unavailable or the
// user declined.
type Dispatcher struct {
	notifier Notifier
	history  HistorySink
	log      logger.Logger

	mu          sync.Mutex
	permAsked   bool
	permGranted bool
	last        map[string]DispatchRecord
}

// NewDispatcher creates a dispatcher delivering through n. history may be
// nil when no alert history should be kept.
func NewDispatcher(n Notifier, history HistorySink, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Dispatcher{
		notifier: n,
		history:  history,
		log:      log,
		last:     make(map[string]DispatchRecord),
	}
}

// NotifyDueReminders filters events to doses due on today that are still
// pending and, if any remain, emits exactly one aggregate alert carrying
// the count and the distinct labels in input order. A dose that stays
// pending across two firings is reported again each time; repetition of a
// legitimately still-due dose is intentional.
func (d *Dispatcher) NotifyDueReminders(ctx context.Context, events []medtrack.PendingReminder, today string) {
	var (
		ids    []string
		labels []string
		seen   = make(map[string]struct{})
	)
	for _, e := range events {
		if !e.DueOn(today) {
			continue
		}
		ids = append(ids, e.EventID())
		if _, dup := seen[e.Label()]; dup {
			continue
		}
		seen[e.Label()] = struct{}{}
		labels = append(labels, e.Label())
	}
	if len(ids) == 0 {
		return
	}

	body := fmt.Sprintf("Time to take %s.", labels[0])
	if len(ids) > 1 {
		body = fmt.Sprintf("%d doses pending: %s.", len(ids), strings.Join(labels, ", "))
	}
	d.send(ctx, Alert{
		Tag:     TagDueReminder,
		Title:   "Medication reminder",
		Body:    body,
		Count:   len(ids),
		Timeout: DefaultAlertTimeout,
	}, today, ids)
}

// NotifySweepResult reports a completed missed-dose sweep that changed at
// least one dose. It uses a distinct tag so it never replaces or collides
// with a due-reminder alert, and requires interaction because missed doses
// deserve an explicit look.
func (d *Dispatcher) NotifySweepResult(ctx context.Context, res medtrack.SweepResult, today string) {
	if res.UpdatedCount <= 0 {
		return
	}
	body := fmt.Sprintf("%d dose from previous days was marked missed.", res.UpdatedCount)
	if res.UpdatedCount > 1 {
		body = fmt.Sprintf("%d doses from previous days were marked missed.", res.UpdatedCount)
	}
	d.send(ctx, Alert{
		Tag:                TagAutoMissed,
		Title:              "Missed doses",
		Body:               body,
		Count:              res.UpdatedCount,
		RequireInteraction: true,
	}, today, nil)
}

func (d *Dispatcher) send(ctx context.Context, a Alert, day string, eventIDs []string) {
	if !d.permitted(ctx) {
		return
	}
	if err := d.notifier.Deliver(ctx, a); err != nil {
		d.log.Warning("alert delivery failed (tag=%s): %v", a.Tag, err)
		return
	}
	d.mu.Lock()
	d.last[a.Tag] = DispatchRecord{Day: day, EventIDs: eventIDs, SentAt: time.Now()}
	d.mu.Unlock()
	if d.history != nil {
		if err := d.history.RecordAlert(a); err != nil {
			d.log.Warning("failed to record alert history: %v", err)
		}
	}
}

// permitted resolves the delivery permission once and caches the answer.
func (d *Dispatcher) permitted(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.permAsked {
		return d.permGranted
	}
	granted, err := d.notifier.RequestPermission(ctx)
	if err != nil {
		d.log.Warning("notification permission check failed: %v", err)
		granted = false
	}
	d.permAsked = true
	d.permGranted = granted
	if !granted {
		d.log.Info("notifications not permitted, alerts will be dropped silently")
	}
	return granted
}

// LastDispatch returns the record of the last alert sent for tag.
func (d *Dispatcher) LastDispatch(tag string) (DispatchRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rec, ok := d.last[tag]
	return rec, ok
}

// Reset clears dispatch records. The scheduler calls it on every
// re-configure so records never outlive a scheduler generation.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	d.last = make(map[string]DispatchRecord)
	d.mu.Unlock()
}
