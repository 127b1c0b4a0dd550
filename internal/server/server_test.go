package server

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/internal/store"
	"github.com/dosewatch/dosewatch/pkg/logger"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

type fakeBackend struct {
	settings    reminder.Settings
	pending     []medtrack.PendingReminder
	pendingErr  error
	sweepResult medtrack.SweepResult
	history     []store.HistoryEntry
	shutdowns   int
	refreshes   int
}

func (b *fakeBackend) Version() string             { return "1.2.3" }
func (b *fakeBackend) Settings() reminder.Settings { return b.settings }
func (b *fakeBackend) Shutdown()                   { b.shutdowns++ }

func (b *fakeBackend) UpdateSettings(_ context.Context, enabled *bool, times []string) (reminder.Settings, error) {
	s := b.settings
	if enabled != nil {
		s.Enabled = *enabled
	}
	if times != nil {
		parsed, err := reminder.ParseTimes(times)
		if err != nil {
			return reminder.Settings{}, err
		}
		s.Times = parsed
	}
	b.settings = s.Normalized()
	return b.settings, nil
}

func (b *fakeBackend) Pending(context.Context) ([]medtrack.PendingReminder, error) {
	return b.pending, b.pendingErr
}

func (b *fakeBackend) Refresh(context.Context) (int, error) {
	b.refreshes++
	return len(b.pending), b.pendingErr
}

func (b *fakeBackend) RunSweep(context.Context) (medtrack.SweepResult, error) {
	return b.sweepResult, nil
}

func (b *fakeBackend) SchedulerStatus() reminder.SchedulerStatus {
	return reminder.SchedulerStatus{Enabled: b.settings.Enabled, Generation: 7}
}

func (b *fakeBackend) RecentHistory(_ context.Context, limit int) ([]store.HistoryEntry, error) {
	if limit > 0 && limit < len(b.history) {
		return b.history[:limit], nil
	}
	return b.history, nil
}

// testClient wires a jrpc2 client directly to the method map over an
// in-memory pipe, bypassing the socket listener.
func testClient(t *testing.T, b Backend) *jrpc2.Client {
	t.Helper()
	cliConn, srvConn := net.Pipe()
	srv := jrpc2.NewServer(NewRPCServer(b).Methods(), nil)
	srv.Start(channel.Line(srvConn, srvConn))
	cli := jrpc2.NewClient(channel.Line(cliConn, cliConn), nil)
	t.Cleanup(func() {
		_ = cli.Close()
		srv.Stop()
	})
	return cli
}

func TestSystemGetVersion(t *testing.T) {
	cli := testClient(t, &fakeBackend{})

	var res VersionResult
	if err := cli.CallResult(context.Background(), "system.getVersion", nil, &res); err != nil {
		t.Fatalf("system.getVersion: %v", err)
	}
	if res.Version != "1.2.3" {
		t.Errorf("version = %q", res.Version)
	}
}

func TestSettingsGetAndUpdate(t *testing.T) {
	b := &fakeBackend{settings: reminder.DefaultSettings()}
	cli := testClient(t, b)
	ctx := context.Background()

	var got SettingsResult
	if err := cli.CallResult(ctx, "settings.get", nil, &got); err != nil {
		t.Fatalf("settings.get: %v", err)
	}
	if !got.Enabled || len(got.Times) != 2 {
		t.Errorf("settings.get = %+v", got)
	}

	enabled := false
	params := UpdateSettingsParams{Enabled: &enabled, Times: []string{"21:00", "08:15"}}
	if err := cli.CallResult(ctx, "settings.update", params, &got); err != nil {
		t.Fatalf("settings.update: %v", err)
	}
	if got.Enabled {
		t.Error("update did not disable notifications")
	}
	if want := []string{"08:15", "21:00"}; len(got.Times) != 2 || got.Times[0] != want[0] || got.Times[1] != want[1] {
		t.Errorf("times = %v, want %v", got.Times, want)
	}
}

func TestSettingsUpdateRejectsMalformedTime(t *testing.T) {
	cli := testClient(t, &fakeBackend{settings: reminder.DefaultSettings()})

	var got SettingsResult
	err := cli.CallResult(context.Background(), "settings.update",
		UpdateSettingsParams{Times: []string{"25:99"}}, &got)
	if err == nil {
		t.Fatal("expected error for malformed time")
	}
	var rpcErr *jrpc2.Error
	if !jrpc2ErrorAs(err, &rpcErr) || rpcErr.Code != codeInvalidParams {
		t.Errorf("error = %v, want code %d", err, codeInvalidParams)
	}
}

func TestSettingsUpdateRequiresAField(t *testing.T) {
	cli := testClient(t, &fakeBackend{})

	var got SettingsResult
	err := cli.CallResult(context.Background(), "settings.update", UpdateSettingsParams{}, &got)
	if err == nil {
		t.Fatal("expected error for empty update")
	}
}

func TestRemindersPendingMapsUpstreamOutage(t *testing.T) {
	b := &fakeBackend{pendingErr: medtrack.ErrServiceUnavailable}
	cli := testClient(t, b)

	var res PendingResult
	err := cli.CallResult(context.Background(), "reminders.pending", nil, &res)
	if err == nil {
		t.Fatal("expected error when upstream is down")
	}
	var rpcErr *jrpc2.Error
	if !jrpc2ErrorAs(err, &rpcErr) || rpcErr.Code != codeUpstreamUnavailable {
		t.Errorf("error = %v, want code %d", err, codeUpstreamUnavailable)
	}
}

func TestRemindersRefreshReportsPendingCount(t *testing.T) {
	b := &fakeBackend{pending: []medtrack.PendingReminder{{}, {}}}
	cli := testClient(t, b)

	var res RefreshResult
	if err := cli.CallResult(context.Background(), "reminders.refresh", nil, &res); err != nil {
		t.Fatalf("reminders.refresh: %v", err)
	}
	if res.Pending != 2 {
		t.Errorf("pending = %d, want 2", res.Pending)
	}
	if b.refreshes != 1 {
		t.Errorf("refreshes = %d, want 1", b.refreshes)
	}
}

func TestRemindersSweep(t *testing.T) {
	b := &fakeBackend{sweepResult: medtrack.SweepResult{Message: "done", UpdatedCount: 3}}
	cli := testClient(t, b)

	var res medtrack.SweepResult
	if err := cli.CallResult(context.Background(), "reminders.sweep", nil, &res); err != nil {
		t.Fatalf("reminders.sweep: %v", err)
	}
	if res.UpdatedCount != 3 {
		t.Errorf("updated_count = %d, want 3", res.UpdatedCount)
	}
}

func TestSystemShutdown(t *testing.T) {
	b := &fakeBackend{}
	cli := testClient(t, b)

	var res EmptyResult
	if err := cli.CallResult(context.Background(), "system.shutdown", nil, &res); err != nil {
		t.Fatalf("system.shutdown: %v", err)
	}
	if b.shutdowns != 1 {
		t.Errorf("shutdowns = %d, want 1", b.shutdowns)
	}
}

func TestHistoryList(t *testing.T) {
	b := &fakeBackend{history: []store.HistoryEntry{
		{ID: "a", Tag: reminder.TagDueReminder},
		{ID: "b", Tag: reminder.TagAutoMissed},
	}}
	cli := testClient(t, b)

	var res HistoryResult
	if err := cli.CallResult(context.Background(), "history.list", HistoryParams{Limit: 1}, &res); err != nil {
		t.Fatalf("history.list: %v", err)
	}
	if len(res.Entries) != 1 || res.Entries[0].ID != "a" {
		t.Errorf("entries = %+v", res.Entries)
	}
}

func TestWebHealthz(t *testing.T) {
	ws := NewWebServer(logger.NewNopLogger(), "localhost:0",
		NewRPCServer(&fakeBackend{}), notify.NewHub(logger.NewNopLogger()))
	srv := httptest.NewServer(ws.handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

func TestWebBridgeServesRPC(t *testing.T) {
	ws := NewWebServer(logger.NewNopLogger(), "localhost:0",
		NewRPCServer(&fakeBackend{}), notify.NewHub(logger.NewNopLogger()))
	srv := httptest.NewServer(ws.handler())
	defer srv.Close()

	body := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"system.getVersion"}`)
	resp, err := srv.Client().Post(srv.URL+"/rpc", "application/json", body)
	if err != nil {
		t.Fatalf("POST /rpc: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		t.Errorf("status = %d", resp.StatusCode)
	}
}

// jrpc2ErrorAs unwraps err into a *jrpc2.Error.
func jrpc2ErrorAs(err error, target **jrpc2.Error) bool {
	e, ok := err.(*jrpc2.Error)
	if ok {
		*target = e
	}
	return ok
}
