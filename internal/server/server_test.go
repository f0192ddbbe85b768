package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coast-guide/agent-fleet/internal/config"
	"github.com/coast-guide/agent-fleet/internal/metrics"
	"github.com/coast-guide/agent-fleet/internal/service"
	"github.com/coast-guide/agent-fleet/pkg/version"
)

type failingChecker struct{}

func (failingChecker) Name() string                { return "postgres" }
func (failingChecker) Check(context.Context) error { return errors.New("connection refused") }

func setupTestServer(t *testing.T, deps *Deps) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(newTestServer(t, deps, zap.NewNop()).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func newTestServer(t *testing.T, deps *Deps, log *zap.Logger) *Server {
	t.Helper()
	cfg, err := config.Load(config.SampleApp)
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	if deps == nil {
		deps, err = NewDeps(context.Background(), cfg)
		if err != nil {
			t.Fatalf("NewDeps() error: %v", err)
		}
	}
	t.Cleanup(func() { _ = deps.Close() })

	return New(cfg, log, deps)
}

func do(t *testing.T, method, url string, body io.Reader) (int, http.Header, string) {
	t.Helper()
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, resp.Header, string(b)
}

func TestStatusEndpoint(t *testing.T) {
	ts := setupTestServer(t, nil)

	for _, path := range []string{"/status", "/status?x=1", "/status?x=1&y=two"} {
		code, hdr, body := do(t, http.MethodGet, ts.URL+path, nil)
		if code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, code)
		}
		if body != `{"status":"healthy"}` {
			t.Errorf("GET %s: unexpected body %s", path, body)
		}
		if hdr.Get("Content-Type") != "application/json" {
			t.Errorf("GET %s: unexpected content type %s", path, hdr.Get("Content-Type"))
		}
		if hdr.Get("X-Request-ID") == "" {
			t.Errorf("GET %s: missing X-Request-ID", path)
		}
	}
}

func TestStatusIdempotent(t *testing.T) {
	ts := setupTestServer(t, nil)

	_, _, first := do(t, http.MethodGet, ts.URL+"/status", nil)
	for i := 0; i < 3; i++ {
		_, _, body := do(t, http.MethodGet, ts.URL+"/status", nil)
		if body != first {
			t.Fatalf("response %d differs: %q vs %q", i, body, first)
		}
	}
}

func TestUnknownPath(t *testing.T) {
	ts := setupTestServer(t, nil)

	code, _, body := do(t, http.MethodGet, ts.URL+"/unknown", nil)
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
	if body != `{"detail":"Not Found"}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestStatusWrongMethod(t *testing.T) {
	ts := setupTestServer(t, nil)

	code, hdr, body := do(t, http.MethodPost, ts.URL+"/status", strings.NewReader("{}"))
	if code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", code)
	}
	if body != `{"detail":"Method Not Allowed"}` {
		t.Errorf("unexpected body %s", body)
	}
	if got := hdr.Get("Allow"); got != http.MethodGet {
		t.Errorf("POST: Allow = %q, want GET", got)
	}

	code, hdr, _ = do(t, http.MethodHead, ts.URL+"/status", nil)
	if code != http.StatusMethodNotAllowed {
		t.Errorf("HEAD: expected 405, got %d", code)
	}
	if got := hdr.Get("Allow"); got != http.MethodGet {
		t.Errorf("HEAD: Allow = %q, want GET", got)
	}
}

func TestPanicRecoveredLoggedAndCounted(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	srv := newTestServer(t, nil, zap.New(core))
	srv.router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	counter := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "/boom", "500")
	before := testutil.ToFloat64(counter)

	code, _, _ := do(t, http.MethodGet, ts.URL+"/boom", nil)
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	if got := testutil.ToFloat64(counter) - before; got != 1 {
		t.Errorf("http_requests_total delta = %v, want 1", got)
	}

	entries := logs.FilterMessage("request").FilterField(zap.String("path", "/boom")).All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 request log for /boom, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["status"]; got != int64(http.StatusInternalServerError) {
		t.Errorf("logged status = %v, want 500", got)
	}
}

func TestUnknownPathMetricsLabel(t *testing.T) {
	ts := setupTestServer(t, nil)

	counter := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/unknown", "/a/b/c", "/status/extra"} {
		if code, _, _ := do(t, http.MethodGet, ts.URL+path, nil); code != http.StatusNotFound {
			t.Errorf("GET %s: expected 404, got %d", path, code)
		}
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("unmatched counter delta = %v, want 3", got)
	}
}

func TestBuildInfoGauge(t *testing.T) {
	ts := setupTestServer(t, nil)

	gauge := metrics.BuildInfo.WithLabelValues(config.SampleApp.Name, version.Version, version.Commit)
	if got := testutil.ToFloat64(gauge); got != 1 {
		t.Errorf("app_build_info = %v, want 1", got)
	}

	_, _, body := do(t, http.MethodGet, ts.URL+"/metrics", nil)
	want := `app_build_info{app="sample-app",commit="` + version.Commit + `",version="` + version.Version + `"} 1`
	if !strings.Contains(body, want) {
		t.Errorf("metrics output missing %s", want)
	}
}

func TestReadyWithoutDependencies(t *testing.T) {
	ts := setupTestServer(t, nil)

	code, _, body := do(t, http.MethodGet, ts.URL+"/ready", nil)
	if code != http.StatusOK {
		t.Errorf("expected 200, got %d", code)
	}
	if body != `{"status":"ok","checks":[]}` {
		t.Errorf("unexpected body %s", body)
	}
}

func TestReadyDegradedKeepsStatusHealthy(t *testing.T) {
	deps := NewStaticDeps(config.SampleApp, service.NewReadiness(time.Second, failingChecker{}))
	ts := setupTestServer(t, deps)

	code, _, _ := do(t, http.MethodGet, ts.URL+"/ready", nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("ready: expected 503, got %d", code)
	}
	code, _, body := do(t, http.MethodGet, ts.URL+"/status", nil)
	if code != http.StatusOK || body != `{"status":"healthy"}` {
		t.Errorf("status: got %d %s", code, body)
	}
}

func TestInfoAndMetrics(t *testing.T) {
	ts := setupTestServer(t, nil)

	code, _, body := do(t, http.MethodGet, ts.URL+"/", nil)
	if code != http.StatusOK || !strings.Contains(body, `"title":"Sample FastAPI application"`) {
		t.Errorf("info: got %d %s", code, body)
	}

	do(t, http.MethodGet, ts.URL+"/status", nil)
	code, _, body = do(t, http.MethodGet, ts.URL+"/metrics", nil)
	if code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", code)
	}
	if !strings.Contains(body, `http_requests_total{method="GET",path="/status",status="200"}`) {
		t.Errorf("metrics output missing /status counter")
	}
}

func TestNewDepsRejectsBadURL(t *testing.T) {
	cfg, err := config.Load(config.GraphWorkflow)
	if err != nil {
		t.Fatalf("config.Load() error: %v", err)
	}
	cfg.RedisURL = "memcached://localhost"
	if _, err := NewDeps(context.Background(), cfg); err == nil {
		t.Fatal("expected error for bad redis url")
	}
}
