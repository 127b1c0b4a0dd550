//go:build windows

package dosecli

import (
	"fmt"
	"net"
	"time"

	"github.com/Microsoft/go-winio"
)

// pipePath is the daemon's named pipe on Windows.
const pipePath = `\\.\pipe\dosewatchd`

// pipeTimeout bounds the wait for a busy pipe instance.
const pipeTimeout = 5 * time.Second

// dial connects via named pipe with TCP fallback.
// Transport priority: named pipe > TCP.
func dial(_ string) (net.Conn, error) {
	timeout := pipeTimeout
	conn, pipeErr := winio.DialPipe(pipePath, &timeout)
	if pipeErr != nil {
		conn, err := dialFunc("tcp", tcpAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to connect: named pipe error: %v; tcp error: %w", pipeErr, err)
		}
		return conn, nil
	}
	return conn, nil
}
