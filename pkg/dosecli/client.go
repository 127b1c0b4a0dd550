// Package dosecli is the client library for talking to a running dosewatch
// daemon over its control socket.
package dosecli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
)

// codeUpstreamUnavailable is the daemon's JSON-RPC code for "the med-tracker
// service is unreachable".
const codeUpstreamUnavailable = jrpc2.Code(-32001)

// ErrUpstreamUnavailable is returned when the daemon itself is fine but
// cannot reach the med-tracker service.
var ErrUpstreamUnavailable = errors.New("med-tracker service unavailable")

// dialFunc is swapped out in tests.
var dialFunc = net.Dial

// tcpAddress is the fallback address when the socket transport is not
// available, mirroring the daemon's fallback listener.
const tcpAddress = "localhost:8954"

// DefaultSocketPath is where the daemon listens by default.
func DefaultSocketPath() string {
	return filepath.Join(os.TempDir(), "dosewatch.sock")
}

// Client is a connection to the daemon.
type Client struct {
	rpc *jrpc2.Client
}

// Dial connects to the daemon. An empty socketPath uses the default
// location. The platform transport is tried first, then TCP fallback.
func Dial(socketPath string) (*Client, error) {
	if socketPath == "" {
		socketPath = DefaultSocketPath()
	}
	conn, err := dial(socketPath)
	if err != nil {
		return nil, err
	}
	return &Client{rpc: jrpc2.NewClient(channel.Line(conn, conn), nil)}, nil
}

// Close releases the connection.
func (c *Client) Close() error {
	return c.rpc.Close()
}

// call invokes a method and translates the daemon's error codes.
func (c *Client) call(ctx context.Context, method string, params, result any) error {
	err := c.rpc.CallResult(ctx, method, params, result)
	if err == nil {
		return nil
	}
	var rpcErr *jrpc2.Error
	if errors.As(err, &rpcErr) && rpcErr.Code == codeUpstreamUnavailable {
		return fmt.Errorf("%w: %s", ErrUpstreamUnavailable, rpcErr.Message)
	}
	return err
}
