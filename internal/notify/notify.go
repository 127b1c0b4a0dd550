// Package notify provides concrete delivery channels behind the reminder
// core's Notifier port: freedesktop desktop notifications over D-Bus, a
// websocket broadcast hub for browser clients, a logger-backed channel, and
// a fan-out combining several channels.
package notify

import (
	"context"
	"errors"

	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// ErrNoChannel is returned when a fan-out has no permitted channel left.
var ErrNoChannel = errors.New("no notification channel available")

// Multi fans an alert out to several channels. Permission is granted when
// at least one channel grants it; delivery succeeds when at least one
// permitted channel accepts the alert.
type Multi struct {
	channels []reminder.Notifier
	active   []reminder.Notifier
	log      logger.Logger
}

// NewMulti combines the given channels.
func NewMulti(log logger.Logger, channels ...reminder.Notifier) *Multi {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Multi{channels: channels, log: log}
}

// RequestPermission probes every channel and remembers the permitted ones.
func (m *Multi) RequestPermission(ctx context.Context) (bool, error) {
	m.active = m.active[:0]
	for _, c := range m.channels {
		granted, err := c.RequestPermission(ctx)
		if err != nil {
			m.log.Warning("notification channel permission check failed: %v", err)
			continue
		}
		if granted {
			m.active = append(m.active, c)
		}
	}
	return len(m.active) > 0, nil
}

// Deliver sends the alert to every permitted channel.
func (m *Multi) Deliver(ctx context.Context, a reminder.Alert) error {
	if len(m.active) == 0 {
		return ErrNoChannel
	}
	delivered := false
	for _, c := range m.active {
		if err := c.Deliver(ctx, a); err != nil {
			m.log.Warning("notification channel delivery failed: %v", err)
			continue
		}
		delivered = true
	}
	if !delivered {
		return ErrNoChannel
	}
	return nil
}

var _ reminder.Notifier = (*Multi)(nil)
