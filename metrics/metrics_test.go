package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry_Counters(t *testing.T) {
	r := NewRegistry(prometheus.NewRegistry())

	r.FetchRequests.WithLabelValues(OutcomeSuccess).Inc()
	r.FetchRequests.WithLabelValues(OutcomeSuccess).Inc()
	r.FetchRequests.WithLabelValues(OutcomeError).Inc()
	r.FetchInFlight.Inc()
	r.RateLimited.WithLabelValues("fetch").Inc()

	if got := testutil.ToFloat64(r.FetchRequests.WithLabelValues(OutcomeSuccess)); got != 2 {
		t.Errorf("expected 2 successes, got %v", got)
	}
	if got := testutil.ToFloat64(r.FetchRequests.WithLabelValues(OutcomeError)); got != 1 {
		t.Errorf("expected 1 error, got %v", got)
	}
	if got := testutil.ToFloat64(r.FetchInFlight); got != 1 {
		t.Errorf("expected 1 in flight, got %v", got)
	}
	if got := testutil.ToFloat64(r.RateLimited); got != 1 {
		t.Errorf("expected 1 rate-limited fetch, got %v", got)
	}
}

func TestNewRegistry_IsolatedRegistries(t *testing.T) {
	// Two registries in one process must not collide.
	a, b := New(), New()
	a.HTTPRequests.WithLabelValues("GET", "/users/:id", "200").Inc()
	if got := testutil.ToFloat64(b.HTTPRequests); got != 0 {
		t.Errorf("registries share state: %v", got)
	}
}

func TestHandler_ExposesMetrics(t *testing.T) {
	r := New()
	r.FetchDuration.WithLabelValues(OutcomeSuccess).Observe(0.02)
	r.HTTPDuration.WithLabelValues("GET", "/health").Observe(0.001)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, want := range []string{
		"rxfetch_fetch_duration_seconds_bucket",
		"rxfetch_http_request_duration_seconds_count",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected %s in exposition", want)
		}
	}
	if r.Gatherer() == nil {
		t.Error("expected a gatherer")
	}
}
