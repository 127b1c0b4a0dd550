package dosecli

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/creachadair/jrpc2"
	"github.com/creachadair/jrpc2/channel"
	"github.com/creachadair/jrpc2/handler"
)

// startFakeDaemon wires dialFunc to an in-process jrpc2 server so Dial
// exercises the real transport path without a socket.
func startFakeDaemon(t *testing.T, methods handler.Map) {
	t.Helper()
	orig := dialFunc
	var servers []*jrpc2.Server
	dialFunc = func(network, addr string) (net.Conn, error) {
		cliConn, srvConn := net.Pipe()
		srv := jrpc2.NewServer(methods, nil)
		srv.Start(channel.Line(srvConn, srvConn))
		servers = append(servers, srv)
		return cliConn, nil
	}
	t.Cleanup(func() {
		dialFunc = orig
		for _, srv := range servers {
			srv.Stop()
		}
	})
}

func TestVersion(t *testing.T) {
	startFakeDaemon(t, handler.Map{
		"system.getVersion": handler.New(func(context.Context) (*VersionResult, error) {
			return &VersionResult{Version: "0.9.0"}, nil
		}),
	})

	c, err := Dial("")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	v, err := c.Version(context.Background())
	if err != nil {
		t.Fatalf("Version: %v", err)
	}
	if v != "0.9.0" {
		t.Errorf("version = %q", v)
	}
}

func TestUpdateSettingsRoundTrip(t *testing.T) {
	startFakeDaemon(t, handler.Map{
		"settings.update": handler.New(func(_ context.Context, p *UpdateSettingsParams) (*Settings, error) {
			s := &Settings{Enabled: true, Times: p.Times}
			if p.Enabled != nil {
				s.Enabled = *p.Enabled
			}
			return s, nil
		}),
	})

	c, err := Dial("")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	got, err := c.SetEnabled(context.Background(), false)
	if err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if got.Enabled {
		t.Error("expected disabled settings back")
	}
}

func TestUpstreamUnavailableTranslated(t *testing.T) {
	startFakeDaemon(t, handler.Map{
		"reminders.pending": handler.New(func(context.Context) (*PendingResult, error) {
			return nil, &jrpc2.Error{Code: codeUpstreamUnavailable, Message: "connection refused"}
		}),
	})

	c, err := Dial("")
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer c.Close()

	_, err = c.Pending(context.Background())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("err = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestDialFailsWhenNothingListens(t *testing.T) {
	orig := dialFunc
	dialFunc = func(network, addr string) (net.Conn, error) {
		return nil, errors.New("no daemon")
	}
	t.Cleanup(func() { dialFunc = orig })

	if _, err := Dial(""); err == nil {
		t.Error("expected Dial to fail when no transport is available")
	}
}
