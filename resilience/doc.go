// Package resilience paces outbound calls with a token-bucket rate limiter.
//
// The fetch client can be configured to share one limiter across every
// concurrent request a MergeMap launches. Waiting honors the caller's
// context, so disposing a pipeline releases a request still queued for a
// token:
//
//	rl := resilience.NewRateLimiter(resilience.RateLimiterConfig{Rate: 5, Burst: 2})
//	if err := rl.Wait(ctx); err != nil {
//	    return err // ctx ended first
//	}
package resilience
