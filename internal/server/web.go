package server

import (
	"context"
	"net/http"
	"sync"

	cws "github.com/coder/websocket"
	"github.com/creachadair/jrpc2/jhttp"

	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// WebServer is the daemon's localhost HTTP surface: the JSON-RPC bridge at
// /rpc, the websocket alert stream at /events, and a liveness probe at
// /healthz.
type WebServer struct {
	addr   string
	log    logger.Logger
	hub    *notify.Hub
	bridge jhttp.Bridge
	mu     sync.Mutex
	server *http.Server
}

// NewWebServer builds the web surface over the given method map and hub.
func NewWebServer(log logger.Logger, addr string, rpc *RPCServer, hub *notify.Hub) *WebServer {
	return &WebServer{
		addr:   addr,
		log:    log,
		hub:    hub,
		bridge: jhttp.NewBridge(rpc.Methods(), nil),
	}
}

func (s *WebServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/rpc", s.bridge)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	return mux
}

// handleEvents upgrades the connection and registers it with the hub. The
// stream is write-only from the daemon's side; the read loop exists only to
// detect the client going away.
func (s *WebServer) handleEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := cws.Accept(w, r, nil)
	if err != nil {
		s.log.Warning("event stream upgrade failed: %v", err)
		return
	}
	s.hub.Register(conn)
	defer s.hub.Unregister(conn)

	ctx := r.Context()
	for {
		if _, _, err := conn.Read(ctx); err != nil {
			return
		}
	}
}

// Start runs the HTTP server and blocks until shutdown.
func (s *WebServer) Start() error {
	s.mu.Lock()
	s.server = &http.Server{
		Addr:    s.addr,
		Handler: s.handler(),
	}
	s.mu.Unlock()

	s.log.Info("web surface listening on %s", s.addr)
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains the HTTP server, disconnects event stream clients, and
// releases the bridge's goroutines.
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hub.CloseAll()
	s.bridge.Close()
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
