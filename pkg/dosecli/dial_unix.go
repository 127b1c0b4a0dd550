//go:build !windows

package dosecli

import (
	"fmt"
	"net"
)

// dial connects via Unix socket with TCP fallback.
// Transport priority: Unix socket > TCP.
func dial(socketPath string) (net.Conn, error) {
	conn, unixErr := dialFunc("unix", socketPath)
	if unixErr != nil {
		conn, err := dialFunc("tcp", tcpAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to connect: unix socket error: %v; tcp error: %w", unixErr, err)
		}
		return conn, nil
	}
	return conn, nil
}
