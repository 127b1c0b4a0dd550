package reminder

import (
	"context"
	"time"

	"github.com/dosewatch/dosewatch/pkg/logger"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// SweepService is the external reconciliation operation: it transitions
// every pending dose dated before today to missed and reports how many
// doses changed.
type SweepService interface {
	AutoMarkMissed(ctx context.Context) (*medtrack.SweepResult, error)
}

// SweepTrigger runs the daily missed-dose sweep and reports its outcome
// through the dispatcher. A failed sweep is logged and swallowed; the next
// scheduled firing is the retry mechanism, there is no backoff loop.
type SweepTrigger struct {
	svc        SweepService
	dispatcher *Dispatcher
	log        logger.Logger
}

// NewSweepTrigger creates a sweep trigger invoking svc and reporting
// non-empty results through d.
func NewSweepTrigger(svc SweepService, d *Dispatcher, log logger.Logger) *SweepTrigger {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &SweepTrigger{svc: svc, dispatcher: d, log: log}
}

// Run invokes the reconciliation exactly once. On success with a non-zero
// count it emits the auto-missed alert. The error return exists for manual
// (CLI-triggered) sweeps; the scheduler logs and discards it.
func (t *SweepTrigger) Run(ctx context.Context) (medtrack.SweepResult, error) {
	res, err := t.svc.AutoMarkMissed(ctx)
	if err != nil {
		t.log.Warning("missed-dose sweep failed, retrying at next scheduled sweep: %v", err)
		return medtrack.SweepResult{}, err
	}
	t.log.Info("missed-dose sweep complete, %d dose(s) updated", res.UpdatedCount)
	if res.UpdatedCount > 0 && t.dispatcher != nil {
		t.dispatcher.NotifySweepResult(ctx, *res, medtrack.DateOf(time.Now()))
	}
	return *res, nil
}
