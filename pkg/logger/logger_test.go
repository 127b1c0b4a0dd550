package logger

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestStandardLoggerPrefixes(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandardLogger(log.New(&buf, "", 0))

	l.Info("armed %d timers", 3)
	l.Warning("delivery failed")
	l.Error("sweep error: %s", "boom")

	out := buf.String()
	for _, want := range []string{
		"[INFO] armed 3 timers",
		"[WARNING] delivery failed",
		"[ERROR] sweep error: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	l := NewNopLogger()
	l.Info("ignored")
	l.Warning("ignored")
	l.Error("ignored")
	if err := l.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
}

func TestMockLoggerRecords(t *testing.T) {
	m := NewMockLogger()
	m.Info("a %d", 1)
	m.Warning("b")
	m.Error("c")

	if len(m.InfoCalls) != 1 || m.InfoCalls[0] != "a 1" {
		t.Errorf("InfoCalls = %v", m.InfoCalls)
	}
	if len(m.WarningCalls) != 1 || m.WarningCalls[0] != "b" {
		t.Errorf("WarningCalls = %v", m.WarningCalls)
	}
	if len(m.ErrorCalls) != 1 || m.ErrorCalls[0] != "c" {
		t.Errorf("ErrorCalls = %v", m.ErrorCalls)
	}
	_ = m.Close()
	if !m.CloseCalled {
		t.Error("CloseCalled not set")
	}
}

func TestMultiLoggerBroadcasts(t *testing.T) {
	a := NewMockLogger()
	b := NewMockLogger()
	m := NewMultiLogger(a, b)

	m.Info("hello")
	m.Error("bad")

	for _, mock := range []*MockLogger{a, b} {
		if len(mock.InfoCalls) != 1 || mock.InfoCalls[0] != "hello" {
			t.Errorf("backend InfoCalls = %v", mock.InfoCalls)
		}
		if len(mock.ErrorCalls) != 1 || mock.ErrorCalls[0] != "bad" {
			t.Errorf("backend ErrorCalls = %v", mock.ErrorCalls)
		}
	}
	if err := m.Close(); err != nil {
		t.Errorf("Close returned error: %v", err)
	}
	if !a.CloseCalled || !b.CloseCalled {
		t.Error("Close not propagated to all backends")
	}
}
