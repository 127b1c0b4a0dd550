package notify

import (
	"context"

	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// LogNotifier writes alerts to the daemon log. It is the fallback channel
// for headless hosts and always has permission.
type LogNotifier struct {
	log logger.Logger
}

// NewLogNotifier creates a logger-backed delivery channel.
func NewLogNotifier(log logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &LogNotifier{log: log}
}

// RequestPermission always grants.
func (n *LogNotifier) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// Deliver logs the alert.
func (n *LogNotifier) Deliver(ctx context.Context, a reminder.Alert) error {
	n.log.Info("alert [%s] %s: %s", a.Tag, a.Title, a.Body)
	return nil
}

var _ reminder.Notifier = (*LogNotifier)(nil)
