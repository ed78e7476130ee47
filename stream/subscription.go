package stream

import (
	"context"
	"sync"
)

// Subscription ties one activation to its disposer.
type Subscription struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// closedDone is what a nil Subscription reports: nothing is running.
var closedDone = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// newSubscription returns a Subscription for the activation running under
// ctx. The activation counts as disposed as soon as ctx ends, whether by
// Dispose or by the caller's context.
func newSubscription(ctx context.Context, cancel context.CancelFunc) *Subscription {
	s := &Subscription{cancel: cancel, done: make(chan struct{})}
	context.AfterFunc(ctx, s.Dispose)
	return s
}

// Dispose cancels the activation. Calling it more than once, or on a nil
// Subscription, has no further effect. Values already delivered are not
// affected.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		s.cancel()
		close(s.done)
	})
}

// Disposed reports whether the activation has been disposed, by Dispose or
// by its context ending. A nil Subscription counts as disposed.
func (s *Subscription) Disposed() bool {
	select {
	case <-s.Done():
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed once the activation is disposed.
func (s *Subscription) Done() <-chan struct{} {
	if s == nil {
		return closedDone
	}
	return s.done
}
