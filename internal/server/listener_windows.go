//go:build windows

package server

import (
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
)

// PipePath is the daemon's named pipe on Windows.
const PipePath = `\\.\pipe\dosewatchd`

// pipeSecurityDescriptor restricts pipe access to SYSTEM, built-in
// Administrators, and the Creator Owner. Other users on the machine cannot
// drive the daemon.
const pipeSecurityDescriptor = "D:(A;;GA;;;SY)(A;;GA;;;BA)(A;;GA;;;CO)"

// createListener creates a Windows named pipe listener with TCP fallback.
// Transport priority: named pipe > TCP.
func (s *Server) createListener() (net.Listener, error) {
	cfg := &winio.PipeConfig{
		SecurityDescriptor: pipeSecurityDescriptor,
	}
	l, err := winio.ListenPipe(PipePath, cfg)
	if err != nil {
		s.log.Warning("named pipe unavailable (%v), falling back to tcp", err)
		tcpListener, tcpErr := net.Listen("tcp", s.cfg.FallbackAddr)
		if tcpErr != nil {
			return nil, fmt.Errorf("error listening: %w", tcpErr)
		}
		return tcpListener, nil
	}
	return l, nil
}

// removeSocket is a no-op on Windows; the pipe disappears with its listener.
func (s *Server) removeSocket() {}
