package pmAuth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrEthical07/pmAuth/internal/testbackend"
	"github.com/MrEthical07/pmAuth/permission"
)

func TestMetricsDisabledByDefault(t *testing.T) {
	srv := testbackend.New(t)
	cfg := testConfig(srv)
	cfg.Metrics.Enabled = false
	c := buildTestClient(t, srv, cfg, nil)
	loginAs(t, c, srv, permission.RoleStaff)

	snap := c.MetricsSnapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("disabled metrics recorded %+v", snap)
	}
}

func TestRequestLatencyHistogram(t *testing.T) {
	srv := testbackend.New(t)
	cfg := testConfig(srv)
	cfg.Metrics.EnableLatencyHistograms = true
	c := buildTestClient(t, srv, cfg, nil)
	loginAs(t, c, srv, permission.RoleAdmin)
	if _, err := c.ListUsers(context.Background()); err != nil {
		t.Fatalf("ListUsers: %v", err)
	}

	snap := c.MetricsSnapshot()
	if snap.Counters[MetricRequestLatency] != 2 {
		t.Fatalf("latency count = %d", snap.Counters[MetricRequestLatency])
	}
	var total uint64
	for _, n := range snap.Histograms[MetricRequestLatency] {
		total += n
	}
	if total != 2 {
		t.Fatalf("histogram total = %d", total)
	}
}

func TestRequestFailureCountsUnreachableBackend(t *testing.T) {
	srv := testbackend.New(t)
	cfg := DefaultConfig()
	cfg.API.BaseURL = "http://127.0.0.1:1"
	cfg.Metrics.Enabled = true
	c := buildTestClient(t, srv, cfg, nil)

	_, err := c.Login(context.Background(), "ann@example.com", testPassword)
	if err == nil {
		t.Fatalf("expected unreachable backend to fail")
	}
	if got := UserMessage(err, MessageLoginFailed); got != MessageLoginFailed {
		t.Fatalf("message = %q", got)
	}
	snap := c.MetricsSnapshot()
	if snap.Counters[MetricRequestFailure] != 1 || snap.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("counters = %v", snap.Counters)
	}
}

func TestUndecodableBodyIsMalformedNotRequestFailure(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	t.Cleanup(api.Close)

	cfg := DefaultConfig()
	cfg.API.BaseURL = api.URL
	cfg.Metrics.Enabled = true
	c, err := New().WithConfig(cfg).WithHTTPClient(api.Client()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	c.Initialize(context.Background())

	_, err = c.Login(context.Background(), "ann@example.com", testPassword)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if errors.Is(err, ErrRequestFailed) {
		t.Fatalf("malformed body reported as request failure: %v", err)
	}
	if auditErrorCode(err) != auditErrMalformedResponse {
		t.Fatalf("audit code = %q", auditErrorCode(err))
	}
	snap := c.MetricsSnapshot()
	if snap.Counters[MetricRequestFailure] != 0 || snap.Counters[MetricLoginFailure] != 1 {
		t.Fatalf("counters = %v", snap.Counters)
	}
}
