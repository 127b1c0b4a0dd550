// Package server exposes the daemon over JSON-RPC 2.0: a local socket for
// the CLI (Unix socket or named pipe, with TCP fallback) and a localhost
// web surface with an HTTP bridge and a websocket event stream.
package server

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"

	"github.com/dosewatch/dosewatch/internal/notify"
	"github.com/dosewatch/dosewatch/pkg/logger"
)

// Config holds the server's transport settings.
type Config struct {
	// SocketPath is the Unix socket location (ignored on Windows).
	SocketPath string
	// FallbackAddr is the TCP address used when the socket cannot be
	// created, e.g. "localhost:8954".
	FallbackAddr string
	// WebAddr is the web surface bind address, e.g. "localhost:8955".
	WebAddr string
}

// Server accepts CLI connections on the control socket and runs one jrpc2
// session per connection. The web surface is started alongside it.
type Server struct {
	log      logger.Logger
	cfg      Config
	rpc      *RPCServer
	ws       *WebServer
	mu       sync.Mutex
	listener net.Listener
}

// NewServer creates a server for the given method surface and event hub.
func NewServer(log logger.Logger, cfg Config, rpc *RPCServer, hub *notify.Hub) *Server {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if cfg.FallbackAddr == "" {
		cfg.FallbackAddr = "localhost:8954"
	}
	return &Server{
		log: log,
		cfg: cfg,
		rpc: rpc,
		ws:  NewWebServer(log, cfg.WebAddr, rpc, hub),
	}
}

// Start begins listening and blocks until ctx is canceled or the listener
// fails. The web surface runs in the background and is shut down with the
// socket listener.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		if err := s.ws.Start(); err != nil {
			s.log.Error("web surface failed: %v", err)
		}
	}()

	l, err := s.createListener()
	if err != nil {
		return err
	}
	s.log.Info("control socket listening on %s", l.Addr())

	s.mu.Lock()
	s.listener = l
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = s.Shutdown()
	}()

	for {
		conn, err := l.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Warning("accept failed: %v", err)
			continue
		}
		go s.serveConn(ctx, conn)
	}
}

// serveConn runs one jrpc2 session for the life of the connection.
func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	srv := jrpc2.NewServer(s.rpc.Methods(), nil)
	srv.Start(channel.Line(conn, conn))
	done := make(chan struct{})
	go func() {
		_ = srv.Wait()
		close(done)
	}()
	select {
	case <-ctx.Done():
		srv.Stop()
		<-done
	case <-done:
	}
}

// Shutdown closes the listener, the web surface, and the socket file.
func (s *Server) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			s.log.Warning("closing listener: %v", err)
		}
		s.listener = nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.ws.Shutdown(shutdownCtx); err != nil {
		s.log.Warning("shutting down web surface: %v", err)
	}

	s.removeSocket()
	return nil
}
