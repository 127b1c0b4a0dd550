//go:build !windows

package server

import (
	"fmt"
	"net"
	"os"
)

// createListener creates a Unix socket listener with TCP fallback.
// Transport priority: Unix socket > TCP.
func (s *Server) createListener() (net.Listener, error) {
	_ = os.Remove(s.cfg.SocketPath)
	l, err := net.ListenUnix("unix", &net.UnixAddr{
		Name: s.cfg.SocketPath,
		Net:  "unix",
	})
	if err != nil {
		s.log.Warning("unix socket unavailable (%v), falling back to tcp", err)
		tcpListener, tcpErr := net.Listen("tcp", s.cfg.FallbackAddr)
		if tcpErr != nil {
			return nil, fmt.Errorf("error listening: %w", tcpErr)
		}
		return tcpListener, nil
	}
	_ = os.Chmod(s.cfg.SocketPath, 0o600)
	return l, nil
}

func (s *Server) removeSocket() {
	if err := os.Remove(s.cfg.SocketPath); err != nil && !os.IsNotExist(err) {
		s.log.Warning("removing socket file: %v", err)
	}
}
