package store

import (
	"context"
	"testing"

	"github.com/dosewatch/dosewatch/internal/reminder"
)

func openTestHistory(t *testing.T) *History {
	t.Helper()
	h, err := OpenHistory(":memory:")
	if err != nil {
		t.Fatalf("OpenHistory: %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHistoryRecordAndRecent(t *testing.T) {
	h := openTestHistory(t)

	alerts := []reminder.Alert{
		{Tag: reminder.TagDueReminder, Title: "Medication reminder", Body: "Time to take Lisinopril.", Count: 1},
		{Tag: reminder.TagAutoMissed, Title: "Missed doses", Body: "2 doses from previous days were marked missed.", Count: 2},
	}
	for _, a := range alerts {
		if err := h.RecordAlert(a); err != nil {
			t.Fatalf("RecordAlert: %v", err)
		}
	}

	got, err := h.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d entries, want 2", len(got))
	}
	tags := map[string]bool{}
	for _, e := range got {
		tags[e.Tag] = true
		if e.ID == "" {
			t.Error("entry missing generated ID")
		}
		if e.CreatedAt.IsZero() {
			t.Error("entry missing timestamp")
		}
	}
	if !tags[reminder.TagDueReminder] || !tags[reminder.TagAutoMissed] {
		t.Errorf("unexpected tags: %v", tags)
	}
}

func TestHistoryRecentLimit(t *testing.T) {
	h := openTestHistory(t)

	for i := 0; i < 5; i++ {
		if err := h.RecordAlert(reminder.Alert{Tag: "due-reminder", Title: "t", Body: "b", Count: 1}); err != nil {
			t.Fatalf("RecordAlert: %v", err)
		}
	}
	got, err := h.Recent(context.Background(), 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Recent(3) returned %d entries", len(got))
	}

	// Non-positive limits use a sane default.
	got, err = h.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Recent(0) returned %d entries, want all 5", len(got))
	}
}
