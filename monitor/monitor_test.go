package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/sse"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Server.Port = 0
	s, err := New(cfg, metrics.New(), sse.NewComponent(EventsPath, logger.Nop()), logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Enabled {
		t.Error("monitor should be off by default")
	}
	if cfg.Server.Port != DefaultPort || cfg.KeepAlive != 15*time.Second || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.KeepAlive = -time.Second
	if _, err := New(cfg, nil, sse.NewComponent(EventsPath, logger.Nop()), logger.Nop()); err == nil {
		t.Error("negative keep-alive should be rejected")
	}
}

func TestRoutes(t *testing.T) {
	s := newTestService(t)
	for _, path := range []string{"/metrics", "/version"} {
		rr := httptest.NewRecorder()
		s.Engine().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, http.NoBody))
		if rr.Code != http.StatusOK {
			t.Errorf("%s: got %d", path, rr.Code)
		}
	}

	// Not started yet: the server reports down, the hub up.
	rr := httptest.NewRecorder()
	s.Engine().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))
	var health observability.ServiceHealth
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatal(err)
	}
	if health.Service != "monitor" || len(health.Components) != 2 {
		t.Errorf("unexpected health %+v", health)
	}
}

func TestEventsEndToEnd(t *testing.T) {
	hub := sse.NewComponent(EventsPath, logger.Nop())
	cfg := DefaultConfig()
	cfg.Server.Port = 0
	s, err := New(cfg, nil, hub, logger.Nop())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := hub.Start(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Start(ctx); err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = hub.Stop(ctx)
		_ = s.Stop(ctx)
	}()

	resp, err := http.Get(s.URL() + EventsPath)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	buf := make([]byte, 512)
	n, err := resp.Body.Read(buf)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(buf[:n]), "event: connected") {
		t.Errorf("expected connected event, got %q", buf[:n])
	}
}
