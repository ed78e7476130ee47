package user

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/stream"
)

func newTestClient(t *testing.T, h http.Handler, mutate ...func(*ClientConfig)) (*Client, *metrics.Registry) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	cfg := ClientConfig{BaseURL: srv.URL}
	for _, m := range mutate {
		m(&cfg)
	}
	reg := metrics.New()
	c, err := NewClient(cfg, WithMetrics(reg), WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	return c, reg
}

func TestClient_FetchUser(t *testing.T) {
	var gotPath, gotAccept, gotUA string
	c, reg := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotAccept, gotUA = r.URL.Path, r.Header.Get("Accept"), r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"id":3,"name":"User 3"}`)
	}))

	data, err := c.FetchUser(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":3,"name":"User 3"}` {
		t.Errorf("unexpected payload %s", data)
	}
	if gotPath != "/users/3" || gotAccept != "application/json" {
		t.Errorf("unexpected request %s accept=%s", gotPath, gotAccept)
	}
	if !strings.HasPrefix(gotUA, "rxfetch/") {
		t.Errorf("unexpected user agent %q", gotUA)
	}
	if got := testutil.ToFloat64(reg.FetchRequests.WithLabelValues(metrics.OutcomeSuccess)); got != 1 {
		t.Errorf("expected one success, got %v", got)
	}
	if got := testutil.ToFloat64(reg.FetchInFlight); got != 0 {
		t.Errorf("in-flight gauge not released: %v", got)
	}
}

func TestClient_FetchUserFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantMsg string
	}{
		{
			"server error",
			func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				fmt.Fprint(w, `{"error":{"code":"SERVICE_UNAVAILABLE","message":"user-api is unavailable"}}`)
			},
			"user-api is unavailable",
		},
		{
			"not found",
			func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNotFound) },
			"Not Found",
		},
		{
			"invalid json",
			func(w http.ResponseWriter, _ *http.Request) { fmt.Fprint(w, `{"id":`) },
			"not valid JSON",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, reg := newTestClient(t, tt.handler)
			data, err := c.FetchUser(context.Background(), 3)
			if data != nil {
				t.Errorf("expected no payload, got %s", data)
			}
			if !errors.Is(err, errors.ErrCodeFetchFailed) {
				t.Fatalf("expected FETCH_FAILED, got %v", err)
			}
			if !strings.Contains(errors.Message(err), tt.wantMsg) {
				t.Errorf("message %q should contain %q", errors.Message(err), tt.wantMsg)
			}
			if got := testutil.ToFloat64(reg.FetchRequests.WithLabelValues(metrics.OutcomeError)); got != 1 {
				t.Errorf("expected one error, got %v", got)
			}
		})
	}
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewClient(ClientConfig{BaseURL: url}, WithLogger(logger.Nop()))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.FetchUser(context.Background(), 1); !errors.Is(err, errors.ErrCodeFetchFailed) {
		t.Errorf("expected FETCH_FAILED, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}), func(cfg *ClientConfig) { cfg.Timeout = 20 * time.Millisecond })

	start := time.Now()
	if _, err := c.FetchUser(context.Background(), 1); !errors.Is(err, errors.ErrCodeFetchFailed) {
		t.Fatalf("expected FETCH_FAILED, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("timeout was not applied")
	}
}

// Disposing a MergeMap aborts the HTTP requests still in flight.
func TestClient_DisposeAbortsRequests(t *testing.T) {
	var (
		mu      sync.Mutex
		aborted = map[string]bool{}
		arrived = make(chan struct{}, 3)
	)
	c, reg := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		arrived <- struct{}{}
		<-r.Context().Done()
		mu.Lock()
		aborted[r.URL.Path] = true
		mu.Unlock()
	}))

	s := stream.MergeMap(stream.Of(1, 3, 4), func(id int) stream.Stream[Record] { return Fetch(c, id) })
	sub := s.Subscribe(context.Background(), stream.Observer[Record]{})
	for i := 0; i < 3; i++ {
		select {
		case <-arrived:
		case <-time.After(2 * time.Second):
			t.Fatal("requests did not reach the server")
		}
	}
	sub.Dispose()

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(aborted)
		mu.Unlock()
		if n == 3 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("only %d of 3 requests aborted", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
	deadline = time.Now().Add(2 * time.Second)
	for testutil.ToFloat64(reg.FetchRequests.WithLabelValues(metrics.OutcomeCanceled)) != 3 {
		if time.Now().After(deadline) {
			t.Fatal("expected three canceled fetches")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestClient_RateLimit(t *testing.T) {
	c, reg := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{}`)
	}), func(cfg *ClientConfig) { cfg.RateLimit, cfg.Burst = 100, 1 })

	for i := 0; i < 3; i++ {
		if _, err := c.FetchUser(context.Background(), i+1); err != nil {
			t.Fatal(err)
		}
	}
	if got := testutil.ToFloat64(reg.RateLimited.WithLabelValues(limiterName)); got < 1 {
		t.Errorf("expected rate limiter waits to be counted, got %v", got)
	}
}

func TestNewClient_Config(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ClientConfig
		wantErr bool
	}{
		{"defaults", ClientConfig{}, false},
		{"bad url", ClientConfig{BaseURL: "localhost"}, true},
		{"negative timeout", ClientConfig{BaseURL: DefaultBaseURL, Timeout: -1}, true},
		{"negative rate", ClientConfig{BaseURL: DefaultBaseURL, RateLimit: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
			if err == nil && c.http.BaseURL() != DefaultBaseURL {
				t.Errorf("expected default base url, got %s", c.http.BaseURL())
			}
		})
	}
}
