package reminder

import (
	"container/heap"
	"sort"
	"time"
)

// TimerKind distinguishes the two kinds of armed timers.
type TimerKind string

// Timer kinds.
const (
	KindReminder TimerKind = "reminder"
	KindSweep    TimerKind = "midnight-sweep"
)

// sweepOrder sorts the sweep timer after any coincident reminder timer.
const sweepOrder = 1 << 30

// ArmedTimer is one live timer owned by the scheduler. Timers are destroyed
// and replaced on every re-configure, never mutated in place.
type ArmedTimer struct {
	FiresAt time.Time    `json:"fires_at"`
	Kind    TimerKind    `json:"kind"`
	Time    ReminderTime `json:"-"`

	// order is the timer's position in the configured time set, used only
	// to break ties between coincident firings.
	order int
}

// fireBatch is the set of coincident timers collected in one wake, in
// dispatch order: reminder times first (configuration order), sweep last.
type fireBatch struct {
	day   string
	times []ReminderTime
	sweep bool
}

// timerSet is the scheduler's timer state machine. It is not safe for
// concurrent use; the scheduler goroutine is its only owner, which is what
// makes cancellation race-free: a replaced heap cannot fire.
type timerSet struct {
	heap      timerHeap
	sweepExpr string
}

func newTimerSet(sweepExpr string) *timerSet {
	ts := &timerSet{sweepExpr: sweepExpr}
	heap.Init(&ts.heap)
	return ts
}

// rebuild discards every armed timer and arms the set implied by the given
// configuration:
//
//   - enabled=false arms nothing (fully idle);
//   - enabled=true always arms the sweep timer;
//   - reminder timers are armed only when there is at least one pending
//     dose to remind about.
func (ts *timerSet) rebuild(settings Settings, havePending bool, now time.Time) {
	ts.heap = ts.heap[:0]
	heap.Init(&ts.heap)
	if !settings.Enabled {
		return
	}
	if havePending {
		for i, t := range settings.Times {
			if !t.Valid() {
				continue
			}
			heapPush(&ts.heap, ArmedTimer{
				FiresAt: NextFireTime(now, t),
				Kind:    KindReminder,
				Time:    t,
				order:   i,
			})
		}
	}
	heapPush(&ts.heap, ArmedTimer{
		FiresAt: NextSweepTime(ts.sweepExpr, now),
		Kind:    KindSweep,
		order:   sweepOrder,
	})
}

// clear tears down every armed timer.
func (ts *timerSet) clear() {
	ts.heap = ts.heap[:0]
	heap.Init(&ts.heap)
}

// next returns the earliest fire instant, or false when nothing is armed.
func (ts *timerSet) next() (time.Time, bool) {
	if ts.heap.Len() == 0 {
		return time.Time{}, false
	}
	return ts.heap[0].FiresAt, true
}

// collectDue pops every timer due at now (in heap order), re-arms each one
// for its next occurrence recomputed from the wall clock, and returns the
// batch to dispatch. Recomputing via NextFireTime instead of adding a fixed
// 24h keeps reminder times pinned across DST transitions.
func (ts *timerSet) collectDue(now time.Time) fireBatch {
	batch := fireBatch{day: now.Format("2006-01-02")}
	var rearm []ArmedTimer
	for ts.heap.Len() > 0 && !ts.heap[0].FiresAt.After(now) {
		t := heapPop(&ts.heap)
		switch t.Kind {
		case KindReminder:
			batch.times = append(batch.times, t.Time)
			t.FiresAt = NextFireTime(now, t.Time)
		case KindSweep:
			batch.sweep = true
			t.FiresAt = NextSweepTime(ts.sweepExpr, now)
		}
		rearm = append(rearm, t)
	}
	for _, t := range rearm {
		heapPush(&ts.heap, t)
	}
	return batch
}

// armed returns a snapshot of the live timers sorted by firing order.
func (ts *timerSet) armed() []ArmedTimer {
	out := make([]ArmedTimer, len(ts.heap))
	copy(out, ts.heap)
	sort.Slice(out, func(i, j int) bool {
		if !out[i].FiresAt.Equal(out[j].FiresAt) {
			return out[i].FiresAt.Before(out[j].FiresAt)
		}
		return out[i].order < out[j].order
	})
	return out
}
