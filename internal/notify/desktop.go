package notify

import (
	"context"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// D-Bus identifiers of the freedesktop notification service.
const (
	notifyDest   = "org.freedesktop.Notifications"
	notifyPath   = "/org/freedesktop/Notifications"
	notifyMethod = "org.freedesktop.Notifications.Notify"
)

// Desktop delivers alerts through the session bus notification service.
// It tracks the server-assigned notification ID per tag so a later alert
// with the same tag replaces the visible one instead of stacking.
type Desktop struct {
	appName string
	log     logger.Logger

	mu     sync.Mutex
	conn   *dbus.Conn
	lastID map[string]uint32
}

// NewDesktop creates a desktop notification channel.
func NewDesktop(log logger.Logger) *Desktop {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Desktop{
		appName: "dosewatch",
		log:     log,
		lastID:  make(map[string]uint32),
	}
}

// RequestPermission connects to the session bus. An unreachable bus (no
// desktop session, sandboxed host) denies permission without error so the
// dispatcher degrades silently.
func (d *Desktop) RequestPermission(ctx context.Context) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn != nil {
		return true, nil
	}
	conn, err := dbus.SessionBusPrivate(dbus.WithContext(ctx))
	if err != nil {
		d.log.Info("desktop notifications unavailable: %v", err)
		return false, nil
	}
	if err := conn.Auth(nil); err != nil {
		_ = conn.Close()
		d.log.Info("desktop notifications unavailable: %v", err)
		return false, nil
	}
	if err := conn.Hello(); err != nil {
		_ = conn.Close()
		d.log.Info("desktop notifications unavailable: %v", err)
		return false, nil
	}
	d.conn = conn
	return true, nil
}

// Deliver shows the alert via org.freedesktop.Notifications.Notify.
// Non-interactive alerts expire after the alert's timeout; interactive
// ones stay until dismissed.
func (d *Desktop) Deliver(ctx context.Context, a reminder.Alert) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return ErrNoChannel
	}

	// expire_timeout: 0 means never expire, values are milliseconds.
	expire := int32(0)
	if !a.RequireInteraction {
		timeout := a.Timeout
		if timeout <= 0 {
			timeout = reminder.DefaultAlertTimeout
		}
		expire = int32(timeout / time.Millisecond)
	}

	obj := d.conn.Object(notifyDest, dbus.ObjectPath(notifyPath))
	call := obj.CallWithContext(ctx, notifyMethod, 0,
		d.appName,
		d.lastID[a.Tag], // replaces_id: supersede the previous alert of this tag
		"",              // app_icon
		a.Title,
		a.Body,
		[]string{},
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(byte(1)),
		},
		expire,
	)
	if call.Err != nil {
		return call.Err
	}
	var id uint32
	if err := call.Store(&id); err != nil {
		return err
	}
	d.lastID[a.Tag] = id
	return nil
}

// Close releases the bus connection.
func (d *Desktop) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

var _ reminder.Notifier = (*Desktop)(nil)
