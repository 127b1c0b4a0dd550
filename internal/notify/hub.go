package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	cws "github.com/coder/websocket"

	"github.com/dosewatch/dosewatch/internal/reminder"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// writeTimeout bounds a single broadcast write so one stuck client cannot
// delay delivery to the others.
const writeTimeout = 5 * time.Second

// Hub broadcasts alerts to connected websocket clients (the daemon's
// /events endpoint). Clients that fail a write are dropped and must
// reconnect.
type Hub struct {
	log logger.Logger

	mu    sync.Mutex
	conns map[*cws.Conn]struct{}
}

// NewHub creates an empty broadcast hub.
func NewHub(log logger.Logger) *Hub {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Hub{log: log, conns: make(map[*cws.Conn]struct{})}
}

// Register adds a client connection to the broadcast set.
func (h *Hub) Register(c *cws.Conn) {
	h.mu.Lock()
	h.conns[c] = struct{}{}
	n := len(h.conns)
	h.mu.Unlock()
	h.log.Info("event stream client connected (%d total)", n)
}

// Unregister removes a client connection.
func (h *Hub) Unregister(c *cws.Conn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// RequestPermission always grants; an empty hub simply has nobody to tell.
func (h *Hub) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// Deliver broadcasts the alert as a JSON text message to every client.
func (h *Hub) Deliver(ctx context.Context, a reminder.Alert) error {
	buf, err := json.Marshal(a)
	if err != nil {
		return err
	}

	h.mu.Lock()
	targets := make([]*cws.Conn, 0, len(h.conns))
	for c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.Unlock()

	for _, c := range targets {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := c.Write(wctx, cws.MessageText, buf)
		cancel()
		if err != nil {
			h.log.Warning("dropping event stream client after write failure: %v", err)
			h.Unregister(c)
			_ = c.Close(cws.StatusAbnormalClosure, "write failed")
		}
	}
	return nil
}

// CloseAll disconnects every client, e.g. at daemon shutdown.
func (h *Hub) CloseAll() {
	h.mu.Lock()
	conns := make([]*cws.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*cws.Conn]struct{})
	h.mu.Unlock()
	for _, c := range conns {
		_ = c.Close(cws.StatusNormalClosure, "daemon shutting down")
	}
}

var _ reminder.Notifier = (*Hub)(nil)
