package reminder

import (
	"testing"
	"time"
)

func enabledSettings(times ...ReminderTime) Settings {
	return Settings{Enabled: true, Times: times}
}

func TestRebuildArmsOnePerTimePlusSweep(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	ts.rebuild(enabledSettings(ReminderTime{11, 30}, ReminderTime{18, 0}), true, now)

	armed := ts.armed()
	if len(armed) != 3 {
		t.Fatalf("armed %d timers, want 3 (two reminders + sweep)", len(armed))
	}
	if armed[0].Kind != KindReminder || !armed[0].FiresAt.Equal(time.Date(2024, 1, 1, 11, 30, 0, 0, time.UTC)) {
		t.Errorf("first timer = %+v", armed[0])
	}
	if armed[2].Kind != KindSweep || !armed[2].FiresAt.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("sweep timer = %+v", armed[2])
	}
}

func TestRebuildIdempotent(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	settings := enabledSettings(ReminderTime{11, 30}, ReminderTime{18, 0})

	ts.rebuild(settings, true, now)
	first := len(ts.armed())
	ts.rebuild(settings, true, now)
	second := len(ts.armed())

	if first != second {
		t.Errorf("re-configure accumulated timers: %d then %d", first, second)
	}
}

func TestRebuildDisabledArmsNothing(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	ts.rebuild(Settings{Enabled: false, Times: DefaultTimes()}, true, now)
	if got := len(ts.armed()); got != 0 {
		t.Errorf("disabled settings armed %d timers, want 0", got)
	}
}

// now = 2024-01-01T20:00, times 11:30/18:00, no pending doses: zero
// reminder timers, but the midnight sweep is still armed.
func TestRebuildEmptyPendingStillArmsSweep(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)

	ts.rebuild(enabledSettings(ReminderTime{11, 30}, ReminderTime{18, 0}), false, now)

	armed := ts.armed()
	if len(armed) != 1 {
		t.Fatalf("armed %d timers, want only the sweep", len(armed))
	}
	if armed[0].Kind != KindSweep {
		t.Errorf("armed timer kind = %s, want %s", armed[0].Kind, KindSweep)
	}
	if !armed[0].FiresAt.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("sweep fires at %v, want next midnight", armed[0].FiresAt)
	}
}

func TestClearTearsDownEverything(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	ts.rebuild(enabledSettings(ReminderTime{11, 30}), true, time.Now())
	ts.clear()
	if got := len(ts.armed()); got != 0 {
		t.Errorf("clear left %d timers armed", got)
	}
	// Idempotent from any state.
	ts.clear()
	if _, ok := ts.next(); ok {
		t.Error("next() should report nothing armed after clear")
	}
}

func TestCollectDueOrdersSweepLast(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	// Configure just before midnight so a 00:00 reminder and the midnight
	// sweep coincide.
	now := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
	ts.rebuild(enabledSettings(ReminderTime{0, 0}, ReminderTime{7, 0}), true, now)

	fire := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	batch := ts.collectDue(fire)

	if !batch.sweep {
		t.Fatal("sweep should be part of the batch")
	}
	if len(batch.times) != 1 || batch.times[0] != (ReminderTime{0, 0}) {
		t.Fatalf("batch times = %v", batch.times)
	}
	if batch.day != "2024-01-02" {
		t.Errorf("batch day = %q", batch.day)
	}

	// Everything due was re-armed for its next occurrence.
	armed := ts.armed()
	if len(armed) != 3 {
		t.Fatalf("after collect, %d timers armed, want 3", len(armed))
	}
	for _, a := range armed {
		if !a.FiresAt.After(fire) {
			t.Errorf("timer %+v not re-armed into the future", a)
		}
	}
}

func TestCollectDueCoincidentTimesConfigurationOrder(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	// Two identical configured times fire at the same instant; dispatch
	// order follows configuration order.
	ts.rebuild(enabledSettings(ReminderTime{9, 0}, ReminderTime{9, 0}), true, now)

	batch := ts.collectDue(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	if len(batch.times) != 2 {
		t.Fatalf("batch times = %v", batch.times)
	}
	if batch.sweep {
		t.Error("sweep should not fire at 09:00")
	}
}

func TestCollectDueNothingDue(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	ts.rebuild(enabledSettings(ReminderTime{9, 0}), true, now)

	batch := ts.collectDue(time.Date(2024, 1, 1, 8, 30, 0, 0, time.UTC))
	if len(batch.times) != 0 || batch.sweep {
		t.Errorf("nothing should be due at 08:30, got %+v", batch)
	}
	if got := len(ts.armed()); got != 2 {
		t.Errorf("armed count changed to %d", got)
	}
}

// Re-arming recomputes the next occurrence from the wall clock, so a
// reminder stays pinned to its time of day rather than drifting by a fixed
// 24h offset.
func TestCollectDueRearmsAtWallClockTime(t *testing.T) {
	ts := newTimerSet(DefaultSweepExpr)
	now := time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC)
	ts.rebuild(enabledSettings(ReminderTime{18, 0}), true, now)

	// Fire late: the process woke 10 minutes after the trigger.
	late := time.Date(2024, 1, 1, 18, 10, 0, 0, time.UTC)
	batch := ts.collectDue(late)
	if len(batch.times) != 1 {
		t.Fatalf("batch = %+v", batch)
	}

	armed := ts.armed()
	var next time.Time
	for _, a := range armed {
		if a.Kind == KindReminder {
			next = a.FiresAt
		}
	}
	want := time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("re-armed at %v, want wall-clock %v", next, want)
	}
}
