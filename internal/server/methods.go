package server

import (
	"context"
	"errors"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/handler"

	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/internal/store"
	"github.com/dosewatch/dosewatch/pkg/medtrack"
)

// Custom JSON-RPC error codes for reminder operations.
const (
	codeUpstreamUnavailable = jrpc2.Code(-32001)
	codeInvalidParams       = jrpc2.Code(-32602)
)

// Backend is the daemon core the RPC surface drives. Implemented by the
// daemon runner; faked in tests.
type Backend interface {
	Version() string
	Settings() reminder.Settings
	UpdateSettings(ctx context.Context, enabled *bool, times []string) (reminder.Settings, error)
	Pending(ctx context.Context) ([]medtrack.PendingReminder, error)
	Refresh(ctx context.Context) (int, error)
	RunSweep(ctx context.Context) (medtrack.SweepResult, error)
	SchedulerStatus() reminder.SchedulerStatus
	RecentHistory(ctx context.Context, limit int) ([]store.HistoryEntry, error)
	Shutdown()
}

// VersionResult is the response for system.getVersion.
type VersionResult struct {
	Version string `json:"version"`
}

// SettingsResult is the response for settings.get and settings.update.
type SettingsResult struct {
	Enabled bool     `json:"enabled"`
	Times   []string `json:"times"`
}

// UpdateSettingsParams is the input for settings.update. Nil fields leave
// the corresponding setting unchanged.
type UpdateSettingsParams struct {
	Enabled *bool    `json:"enabled,omitempty"`
	Times   []string `json:"times,omitempty"`
}

// PendingResult is the response for reminders.pending.
type PendingResult struct {
	Reminders []medtrack.PendingReminder `json:"reminders"`
}

// RefreshResult is the response for reminders.refresh.
type RefreshResult struct {
	Pending int `json:"pending"`
}

// HistoryParams is the input for history.list.
type HistoryParams struct {
	Limit int `json:"limit,omitempty"`
}

// HistoryResult is the response for history.list.
type HistoryResult struct {
	Entries []store.HistoryEntry `json:"entries"`
}

// EmptyResult is a placeholder for methods that return no data.
type EmptyResult struct{}

// RPCServer exposes the daemon core over JSON-RPC 2.0.
type RPCServer struct {
	backend Backend
}

// NewRPCServer creates the RPC method surface over the given backend.
func NewRPCServer(backend Backend) *RPCServer {
	return &RPCServer{backend: backend}
}

// Methods returns the JSON-RPC method map served on every transport.
func (rs *RPCServer) Methods() handler.Map {
	return handler.Map{
		"system.getVersion": handler.New(rs.systemGetVersion),
		"system.shutdown":   handler.New(rs.systemShutdown),
		"settings.get":      handler.New(rs.settingsGet),
		"settings.update":   handler.New(rs.settingsUpdate),
		"reminders.pending": handler.New(rs.remindersPending),
		"reminders.refresh": handler.New(rs.remindersRefresh),
		"reminders.sweep":   handler.New(rs.remindersSweep),
		"scheduler.status":  handler.New(rs.schedulerStatus),
		"history.list":      handler.New(rs.historyList),
	}
}

func (rs *RPCServer) systemGetVersion(_ context.Context) (*VersionResult, error) {
	return &VersionResult{Version: rs.backend.Version()}, nil
}

// systemShutdown acknowledges before the daemon actually exits so the
// response can still be written.
func (rs *RPCServer) systemShutdown(_ context.Context) (*EmptyResult, error) {
	rs.backend.Shutdown()
	return &EmptyResult{}, nil
}

func (rs *RPCServer) settingsGet(_ context.Context) (*SettingsResult, error) {
	return settingsResult(rs.backend.Settings()), nil
}

func (rs *RPCServer) settingsUpdate(ctx context.Context, p *UpdateSettingsParams) (*SettingsResult, error) {
	if p.Enabled == nil && p.Times == nil {
		return nil, &jrpc2.Error{Code: codeInvalidParams, Message: "nothing to update"}
	}
	if p.Times != nil {
		if _, err := reminder.ParseTimes(p.Times); err != nil {
			return nil, &jrpc2.Error{Code: codeInvalidParams, Message: err.Error()}
		}
	}
	s, err := rs.backend.UpdateSettings(ctx, p.Enabled, p.Times)
	if err != nil {
		return nil, rpcError(err)
	}
	return settingsResult(s), nil
}

func (rs *RPCServer) remindersPending(ctx context.Context) (*PendingResult, error) {
	events, err := rs.backend.Pending(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	return &PendingResult{Reminders: events}, nil
}

// remindersRefresh re-queries the pending snapshot and re-arms the
// scheduler with it.
func (rs *RPCServer) remindersRefresh(ctx context.Context) (*RefreshResult, error) {
	n, err := rs.backend.Refresh(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	return &RefreshResult{Pending: n}, nil
}

func (rs *RPCServer) remindersSweep(ctx context.Context) (*medtrack.SweepResult, error) {
	res, err := rs.backend.RunSweep(ctx)
	if err != nil {
		return nil, rpcError(err)
	}
	return &res, nil
}

func (rs *RPCServer) schedulerStatus(_ context.Context) (*reminder.SchedulerStatus, error) {
	st := rs.backend.SchedulerStatus()
	return &st, nil
}

func (rs *RPCServer) historyList(ctx context.Context, p *HistoryParams) (*HistoryResult, error) {
	entries, err := rs.backend.RecentHistory(ctx, p.Limit)
	if err != nil {
		return nil, rpcError(err)
	}
	return &HistoryResult{Entries: entries}, nil
}

func settingsResult(s reminder.Settings) *SettingsResult {
	return &SettingsResult{Enabled: s.Enabled, Times: s.TimeStrings()}
}

// rpcError maps backend errors to JSON-RPC codes. Upstream outages get a
// dedicated code so clients can tell "service down" from "bad request".
func rpcError(err error) error {
	if errors.Is(err, medtrack.ErrServiceUnavailable) {
		return &jrpc2.Error{Code: codeUpstreamUnavailable, Message: err.Error()}
	}
	return err
}
