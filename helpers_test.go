package pmAuth

import (
	"context"
	"testing"

	"github.com/MrEthical07/pmAuth/internal/testbackend"
	"github.com/MrEthical07/pmAuth/permission"
	"github.com/MrEthical07/pmAuth/session"
)

const testPassword = "secret1"

func testConfig(srv *testbackend.Server) Config {
	cfg := DefaultConfig()
	cfg.API.BaseURL = srv.URL()
	cfg.Metrics.Enabled = true
	return cfg
}

func buildTestClient(t *testing.T, srv *testbackend.Server, cfg Config, mutate func(*Builder)) *Client {
	t.Helper()

	b := New().WithConfig(cfg).WithHTTPClient(srv.Client())
	if mutate != nil {
		mutate(b)
	}
	c, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	c.Initialize(context.Background())
	return c
}

func newTestClient(t *testing.T, srv *testbackend.Server) *Client {
	t.Helper()
	return buildTestClient(t, srv, testConfig(srv), nil)
}

// loginAs creates an active account with role and signs the client in.
func loginAs(t *testing.T, c *Client, srv *testbackend.Server, role permission.Role) session.User {
	t.Helper()

	email := string(role) + "@example.com"
	srv.AddUser("User "+string(role), email, testPassword, string(role), "ACTIVE")
	user, err := c.Login(context.Background(), email, testPassword)
	if err != nil {
		t.Fatalf("Login as %s: %v", role, err)
	}
	return user
}

type captureSink struct {
	events chan AuditEvent
}

func newCaptureSink(buffer int) *captureSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &captureSink{events: make(chan AuditEvent, buffer)}
}

func (s *captureSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// drain returns every event delivered so far. The client must be closed first.
func (s *captureSink) drain() []AuditEvent {
	var out []AuditEvent
	for {
		select {
		case ev := <-s.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

func findEvent(events []AuditEvent, eventType string) (AuditEvent, bool) {
	for _, ev := range events {
		if ev.EventType == eventType {
			return ev, true
		}
	}
	return AuditEvent{}, false
}
