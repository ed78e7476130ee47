package user

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/rxfetch/errors"
	"github.com/kbukum/rxfetch/httpclient"
	"github.com/kbukum/rxfetch/logger"
	"github.com/kbukum/rxfetch/metrics"
	"github.com/kbukum/rxfetch/observability"
	"github.com/kbukum/rxfetch/resilience"
	"github.com/kbukum/rxfetch/version"
)

const limiterName = "user-fetch"

// Client fetches users from the HTTP user API.
type Client struct {
	http    *httpclient.Client
	metrics *metrics.Registry
	log     *logger.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithMetrics records Prometheus fetch metrics on reg.
func WithMetrics(reg *metrics.Registry) ClientOption {
	return func(c *Client) { c.metrics = reg }
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates a Client for the API at cfg.BaseURL.
func NewClient(cfg ClientConfig, opts ...ClientOption) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{log: logger.Get("user-client")}
	for _, opt := range opts {
		opt(c)
	}

	hc := httpclient.Config{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Headers: map[string]string{"User-Agent": version.UserAgent()},
	}
	if cfg.RateLimit > 0 {
		hc.RateLimiter = &resilience.RateLimiterConfig{
			Name:    limiterName,
			Rate:    cfg.RateLimit,
			Burst:   cfg.Burst,
			OnLimit: c.limited,
		}
	}
	h, err := httpclient.New(hc)
	if err != nil {
		return nil, errors.InvalidInput("fetch", err.Error()).WithCause(err)
	}
	c.http = h
	return c, nil
}

// FetchUser implements Fetcher with a single GET /users/{id}. Transport
// failures and non-2xx answers become FETCH_FAILED errors carrying the id.
func (c *Client) FetchUser(ctx context.Context, id int) (json.RawMessage, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanUserFetch,
		trace.WithAttributes(attribute.Int(observability.AttrUserID, id)))
	defer span.End()

	if c.metrics != nil {
		c.metrics.FetchInFlight.Inc()
		defer c.metrics.FetchInFlight.Dec()
	}

	start := time.Now()
	resp, err := c.http.Do(ctx, httpclient.Request{Path: fmt.Sprintf("/users/%d", id)})
	if err == nil && !json.Valid(resp.Body) {
		err = fmt.Errorf("user %d: response is not valid JSON", id)
	}
	outcome := outcomeOf(err)
	c.observe(outcome, time.Since(start))
	span.SetAttributes(attribute.String(observability.AttrOutcome, outcome))

	log := c.log.WithContext(ctx)
	if err != nil {
		observability.SetSpanError(ctx, err)
		log.Debug("user fetch failed", logger.MergeWithError(logger.Fields(
			logger.FieldUserID, id,
			logger.FieldOutcome, outcome,
		), err))
		return nil, errors.FetchFailed(id, err)
	}

	log.Debug("user fetched", logger.Fields(
		logger.FieldUserID, id,
		logger.FieldDuration, time.Since(start).Milliseconds(),
	))
	return resp.Body, nil
}

func (c *Client) observe(outcome string, d time.Duration) {
	if c.metrics == nil {
		return
	}
	c.metrics.FetchRequests.WithLabelValues(outcome).Inc()
	c.metrics.FetchDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func (c *Client) limited(name string) {
	if c.metrics != nil {
		c.metrics.RateLimited.WithLabelValues(name).Inc()
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case httpclient.IsCanceled(err):
		return metrics.OutcomeCanceled
	default:
		return metrics.OutcomeError
	}
}
